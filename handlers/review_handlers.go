package handlers

import (
	"errors"
	"strings"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/apperr"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/logging"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandlers struct {
	reviewRepo   *repositories.ReviewRepository
	resourceRepo *repositories.ResourceRepository
	validate     *validator.Validate
	log          logging.Logger
}

func NewReviewHandlers(reviewRepo *repositories.ReviewRepository, resourceRepo *repositories.ResourceRepository, log logging.Logger) *ReviewHandlers {
	return &ReviewHandlers{
		reviewRepo:   reviewRepo,
		resourceRepo: resourceRepo,
		validate:     validator.New(),
		log:          log,
	}
}

type reviewForm struct {
	Rating     int    `form:"rating" validate:"required,min=1,max=5"`
	ReviewText string `form:"review_text"`
}

// SubmitHandler upserts the caller's review of a resource. The rating is
// validated before any write happens.
func (h *ReviewHandlers) SubmitHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	var form reviewForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Please provide a valid rating (1-5 stars)")
	}
	if err := h.validate.Struct(form); err != nil {
		return badRequest(c, "Please provide a valid rating (1-5 stars)")
	}

	if _, err := h.resourceRepo.GetByID(uint(id)); err != nil {
		return notFoundOrInaccessible(c)
	}

	userID := currentUserID(c)

	// Only decides which message the user sees; the write itself is a
	// single upsert either way.
	_, err = h.reviewRepo.Get(uint(id), userID)
	created := errors.Is(err, apperr.ErrNotFound)

	review := models.Review{
		ResourceID: uint(id),
		UserID:     userID,
		Rating:     form.Rating,
		ReviewText: strings.TrimSpace(form.ReviewText),
	}
	if err := h.reviewRepo.Upsert(&review); err != nil {
		if errors.Is(err, apperr.ErrValidation) {
			return badRequest(c, "Please provide a valid rating (1-5 stars)")
		}
		h.log.Error(c.UserContext(), "failed to upsert review", "resource_id", id, "user_id", userID, "error", err)
		return message(c, fiber.StatusConflict, false, "Error submitting review. Please try again.")
	}

	msg := "Your review has been updated!"
	if created {
		msg = "Your review has been submitted!"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
	})
}

// DeleteHandler removes the caller's own review of a resource.
func (h *ReviewHandlers) DeleteHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	if err := h.reviewRepo.Delete(uint(id), currentUserID(c)); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return message(c, fiber.StatusNotFound, false, "Review not found")
		}
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Your review has been deleted!",
	})
}
