package handlers

import (
	"time"

	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/logging"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/models"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/repositories"
	"github.com/chidanand512/Sapthagiri-NPS-University-Tech-Titens-Chidanand/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ResourceHandlers struct {
	userRepo     *repositories.UserRepository
	resourceRepo *repositories.ResourceRepository
	reviewRepo   *repositories.ReviewRepository
	downloadRepo *repositories.DownloadRepository
	blobs        *storage.Store
	validate     *validator.Validate
	log          logging.Logger
}

func NewResourceHandlers(
	userRepo *repositories.UserRepository,
	resourceRepo *repositories.ResourceRepository,
	reviewRepo *repositories.ReviewRepository,
	downloadRepo *repositories.DownloadRepository,
	blobs *storage.Store,
	log logging.Logger,
) *ResourceHandlers {
	return &ResourceHandlers{
		userRepo:     userRepo,
		resourceRepo: resourceRepo,
		reviewRepo:   reviewRepo,
		downloadRepo: downloadRepo,
		blobs:        blobs,
		validate:     validator.New(),
		log:          log,
	}
}

type resourceForm struct {
	Title        string `form:"title" validate:"required"`
	Subject      string `form:"subject" validate:"required"`
	Semester     string `form:"semester" validate:"required"`
	ResourceType string `form:"resource_type" validate:"required"`
	YearBatch    string `form:"year_batch" validate:"required"`
	Description  string `form:"description"`
	Tags         string `form:"tags"`
	Privacy      string `form:"privacy"`
}

// ResourceView is a resource annotated with uploader info, accessibility
// and the recomputed rating aggregate.
type ResourceView struct {
	models.Resource
	UploaderName    string  `json:"uploader_name"`
	UploaderCollege string  `json:"uploader_college"`
	UploaderBranch  string  `json:"uploader_branch"`
	Accessible      bool    `json:"accessible"`
	AvgRating       float64 `json:"avg_rating"`
	ReviewCount     int64   `json:"review_count"`
}

func (h *ResourceHandlers) view(resource models.Resource, requesterCollege string) (ResourceView, error) {
	rating, err := h.reviewRepo.Rating(resource.ID)
	if err != nil {
		return ResourceView{}, err
	}
	return ResourceView{
		Resource:        resource,
		UploaderName:    resource.User.Name,
		UploaderCollege: resource.User.College,
		UploaderBranch:  resource.User.Branch,
		Accessible:      resource.Privacy.AccessibleTo(resource.User.College, requesterCollege),
		AvgRating:       rating.Average,
		ReviewCount:     rating.Count,
	}, nil
}

// UploadHandler validates and stores a new upload: blob first, then the
// metadata row, with best-effort blob cleanup if the insert fails.
func (h *ResourceHandlers) UploadHandler(c *fiber.Ctx) error {
	var form resourceForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid form data")
	}
	if err := h.validate.Struct(form); err != nil {
		return badRequest(c, "Title, subject, semester, resource type and year/batch are required")
	}

	privacy := models.Privacy(form.Privacy)
	if form.Privacy == "" {
		privacy = models.PrivacyPublic
	}
	if !privacy.Valid() {
		return badRequest(c, "Privacy must be Public or Private")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Filename == "" {
		return badRequest(c, "No file selected!")
	}
	if !storage.AllowedExtension(fileHeader.Filename) {
		return badRequest(c, "Invalid file type! Allowed types: PDF, DOCX, PPT, Images, TXT, ZIP")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return internalError(c)
	}
	defer src.Close()

	storedName := storage.StoredName(fileHeader.Filename, time.Now())
	size, err := h.blobs.Save(storedName, src)
	if err != nil {
		h.log.Error(c.UserContext(), "failed to write blob", "filename", storedName, "error", err)
		return internalError(c)
	}

	resource := models.Resource{
		UserID:           currentUserID(c),
		Title:            form.Title,
		Subject:          form.Subject,
		Semester:         form.Semester,
		ResourceType:     form.ResourceType,
		YearBatch:        form.YearBatch,
		Description:      form.Description,
		Tags:             form.Tags,
		Filename:         storedName,
		OriginalFilename: storage.SanitizeFilename(fileHeader.Filename),
		FileSize:         size,
		Privacy:          privacy,
	}

	if err := h.resourceRepo.Create(&resource); err != nil {
		// Metadata insert failed: don't leave an orphaned blob behind.
		if rmErr := h.blobs.Remove(storedName); rmErr != nil {
			h.log.Warn(c.UserContext(), "failed to clean up blob after insert failure", "filename", storedName, "error", rmErr)
		}
		h.log.Error(c.UserContext(), "failed to insert resource", "error", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Resource uploaded successfully!",
		"resource": resource,
	})
}

// EditHandler updates the metadata of a resource owned by the caller.
// The stored file itself is never replaced.
func (h *ResourceHandlers) EditHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	resource, err := h.resourceRepo.GetOwned(uint(id), currentUserID(c))
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	var form resourceForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, "Invalid form data")
	}
	if err := h.validate.Struct(form); err != nil {
		return badRequest(c, "Title, subject, semester, resource type and year/batch are required")
	}

	privacy := models.Privacy(form.Privacy)
	if form.Privacy == "" {
		privacy = models.PrivacyPublic
	}
	if !privacy.Valid() {
		return badRequest(c, "Privacy must be Public or Private")
	}

	resource.Title = form.Title
	resource.Subject = form.Subject
	resource.Semester = form.Semester
	resource.ResourceType = form.ResourceType
	resource.YearBatch = form.YearBatch
	resource.Description = form.Description
	resource.Tags = form.Tags
	resource.Privacy = privacy

	if err := h.resourceRepo.Update(resource); err != nil {
		h.log.Error(c.UserContext(), "failed to update resource", "resource_id", resource.ID, "error", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Resource updated successfully!",
		"resource": resource,
	})
}

// DeleteHandler removes a resource owned by the caller: blob first, then
// the metadata row. A missing blob does not block the delete.
func (h *ResourceHandlers) DeleteHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	resource, err := h.resourceRepo.GetOwned(uint(id), currentUserID(c))
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	if err := h.blobs.Remove(resource.Filename); err != nil {
		h.log.Warn(c.UserContext(), "failed to remove blob, deleting metadata anyway", "filename", resource.Filename, "error", err)
	}

	if err := h.resourceRepo.Delete(resource.ID); err != nil {
		h.log.Error(c.UserContext(), "failed to delete resource", "resource_id", resource.ID, "error", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Resource deleted successfully!",
	})
}

// DownloadHandler gates the file behind the privacy rule, records the
// download and streams the blob under its original filename.
func (h *ResourceHandlers) DownloadHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	requester, err := h.userRepo.GetByID(currentUserID(c))
	if err != nil {
		return message(c, fiber.StatusUnauthorized, false, "Please login to continue")
	}

	resource, err := h.resourceRepo.GetByID(uint(id))
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	if !resource.Privacy.AccessibleTo(resource.User.College, requester.College) {
		return notFoundOrInaccessible(c)
	}

	// Best-effort telemetry: a ledger failure never blocks delivery.
	if err := h.downloadRepo.Append(resource.ID, requester.ID); err != nil {
		h.log.Warn(c.UserContext(), "failed to record download", "resource_id", resource.ID, "user_id", requester.ID, "error", err)
	}

	return c.Download(h.blobs.Path(resource.Filename), resource.OriginalFilename)
}

// ListAccessibleHandler lists every resource, annotated with accessibility
// for the caller. Inaccessible private resources stay listed.
func (h *ResourceHandlers) ListAccessibleHandler(c *fiber.Ctx) error {
	requester, err := h.userRepo.GetByID(currentUserID(c))
	if err != nil {
		return message(c, fiber.StatusUnauthorized, false, "Please login to continue")
	}

	resources, err := h.resourceRepo.ListAll()
	if err != nil {
		return internalError(c)
	}

	views := make([]ResourceView, 0, len(resources))
	for _, resource := range resources {
		v, err := h.view(resource, requester.College)
		if err != nil {
			return internalError(c)
		}
		views = append(views, v)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"resources": views,
		"user": fiber.Map{
			"name":     requester.Name,
			"college":  requester.College,
			"branch":   requester.Branch,
			"semester": requester.Semester,
		},
	})
}

// DetailHandler shows one resource with its reviews and the caller's own
// review. Accessibility is an annotation here, not a gate.
func (h *ResourceHandlers) DetailHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	requester, err := h.userRepo.GetByID(currentUserID(c))
	if err != nil {
		return message(c, fiber.StatusUnauthorized, false, "Please login to continue")
	}

	resource, err := h.resourceRepo.GetByID(uint(id))
	if err != nil {
		return notFoundOrInaccessible(c)
	}

	v, err := h.view(*resource, requester.College)
	if err != nil {
		return internalError(c)
	}

	reviews, err := h.reviewRepo.ListByResource(resource.ID)
	if err != nil {
		return internalError(c)
	}

	reviewViews := make([]fiber.Map, 0, len(reviews))
	for _, review := range reviews {
		reviewViews = append(reviewViews, fiber.Map{
			"id":            review.ID,
			"rating":        review.Rating,
			"review_text":   review.ReviewText,
			"reviewer_name": review.User.Name,
			"created_at":    review.CreatedAt,
			"updated_at":    review.UpdatedAt,
		})
	}

	response := fiber.Map{
		"success":  true,
		"resource": v,
		"reviews":  reviewViews,
	}
	if own, err := h.reviewRepo.Get(resource.ID, requester.ID); err == nil {
		response["user_review"] = own
	}

	return c.JSON(response)
}

// ListOwnHandler lists the caller's uploads with their rating aggregates.
func (h *ResourceHandlers) ListOwnHandler(c *fiber.Ctx) error {
	userID := currentUserID(c)

	resources, err := h.resourceRepo.ListByUser(userID)
	if err != nil {
		return internalError(c)
	}

	views := make([]fiber.Map, 0, len(resources))
	for _, resource := range resources {
		rating, err := h.reviewRepo.Rating(resource.ID)
		if err != nil {
			return internalError(c)
		}
		views = append(views, fiber.Map{
			"resource":     resource,
			"avg_rating":   rating.Average,
			"review_count": rating.Count,
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"resources": views,
	})
}

// DownloadHistoryHandler lists the caller's download events with resource
// and uploader details plus simple statistics.
func (h *ResourceHandlers) DownloadHistoryHandler(c *fiber.Ctx) error {
	userID := currentUserID(c)

	events, err := h.downloadRepo.ListByUser(userID)
	if err != nil {
		return internalError(c)
	}

	rows := make([]fiber.Map, 0, len(events))
	for _, event := range events {
		rating, err := h.reviewRepo.Rating(event.ResourceID)
		if err != nil {
			return internalError(c)
		}
		rows = append(rows, fiber.Map{
			"id":               event.ID,
			"download_date":    event.DownloadDate,
			"resource_id":      event.ResourceID,
			"title":            event.Resource.Title,
			"subject":          event.Resource.Subject,
			"resource_type":    event.Resource.ResourceType,
			"semester":         event.Resource.Semester,
			"year_batch":       event.Resource.YearBatch,
			"privacy":          event.Resource.Privacy,
			"uploader_name":    event.Resource.User.Name,
			"uploader_college": event.Resource.User.College,
			"avg_rating":       rating.Average,
			"review_count":     rating.Count,
		})
	}

	total, err := h.downloadRepo.CountByUser(userID)
	if err != nil {
		return internalError(c)
	}
	distinct, err := h.downloadRepo.DistinctResourceCountByUser(userID)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"downloads": rows,
		"stats": fiber.Map{
			"total_downloads":  total,
			"unique_resources": distinct,
		},
	})
}
