package handlers

import (
	"fmt"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/repositories"

	"github.com/gofiber/fiber/v2"
)

type AccountHandlers struct {
	userRepo     *repositories.UserRepository
	resourceRepo *repositories.ResourceRepository
	reviewRepo   *repositories.ReviewRepository
	downloadRepo *repositories.DownloadRepository
}

func NewAccountHandlers(
	userRepo *repositories.UserRepository,
	resourceRepo *repositories.ResourceRepository,
	reviewRepo *repositories.ReviewRepository,
	downloadRepo *repositories.DownloadRepository,
) *AccountHandlers {
	return &AccountHandlers{
		userRepo:     userRepo,
		resourceRepo: resourceRepo,
		reviewRepo:   reviewRepo,
		downloadRepo: downloadRepo,
	}
}

// DashboardHandler shows the caller's profile, uploads and download count.
func (h *AccountHandlers) DashboardHandler(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(currentUserID(c))
	if err != nil {
		return message(c, fiber.StatusUnauthorized, false, "Please login to continue")
	}

	resources, err := h.resourceRepo.ListByUser(user.ID)
	if err != nil {
		return internalError(c)
	}

	downloads, err := h.downloadRepo.CountByUser(user.ID)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"name":           user.Name,
			"phone":          user.Phone,
			"college":        user.College,
			"branch":         user.Branch,
			"semester":       user.Semester,
			"download_count": downloads,
		},
		"resources": resources,
	})
}

// ProfileHandler shows the caller's profile with activity counts.
func (h *AccountHandlers) ProfileHandler(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(currentUserID(c))
	if err != nil {
		return message(c, fiber.StatusUnauthorized, false, "Please login to continue")
	}

	uploads, err := h.resourceRepo.CountByUser(user.ID)
	if err != nil {
		return internalError(c)
	}
	reviews, err := h.reviewRepo.CountByUser(user.ID)
	if err != nil {
		return internalError(c)
	}
	downloads, err := h.downloadRepo.CountByUser(user.ID)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"name":           user.Name,
			"email":          user.Email,
			"phone":          user.Phone,
			"college":        user.College,
			"branch":         user.Branch,
			"semester":       user.Semester,
			"upload_count":   uploads,
			"review_count":   reviews,
			"download_count": downloads,
		},
	})
}

// StudentInfoHandler is the machine-readable account lookup. The route is
// role-gated; the USN is synthesized from the numeric id.
func (h *AccountHandlers) StudentInfoHandler(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(currentUserID(c))
	if err != nil {
		return message(c, fiber.StatusNotFound, false, "Student not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"student": fiber.Map{
			"name":       user.Name,
			"usn":        fmt.Sprintf("U%04d", user.ID),
			"email":      user.Email,
			"department": user.Branch,
			"semester":   user.Semester,
		},
	})
}
