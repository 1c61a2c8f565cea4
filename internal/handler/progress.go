package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/andytrench/history-media-hunter/internal/middleware"
	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/internal/service"
)

type ProgressHandler struct {
	svc *service.ProgressService
}

func NewProgressHandler(svc *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

// ListByStudent handles GET /api/progress/:studentId
func (h *ProgressHandler) ListByStudent(c fiber.Ctx) error {
	studentID, errMsg := middleware.ValidateStudentID(c.Params("studentId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	records, err := h.svc.ListByStudent(c.Context(), studentID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch progress")
	}
	if records == nil {
		records = []model.WatchedRecord{}
	}
	return c.JSON(records)
}

// Save handles POST /api/progress
func (h *ProgressHandler) Save(c fiber.Ctx) error {
	var req model.ProgressRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	studentID, errMsg := middleware.ValidateStudentID(req.StudentID)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.StudentID = studentID

	if req.MediaID <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "studentId and mediaId are required")
	}

	rec, err := h.svc.Save(c.Context(), req)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save progress")
	}

	if Metrics.ProgressTotal != nil {
		Metrics.ProgressTotal.WithLabelValues("single").Inc()
	}
	return c.JSON(rec)
}

// BulkCredit handles POST /api/progress/bulk
func (h *ProgressHandler) BulkCredit(c fiber.Ctx) error {
	var req model.BulkCreditRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if req.MediaID <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "mediaId is required")
	}
	if req.Watched && req.MarkedBy == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "markedBy is required when marking watched")
	}

	resp, err := h.svc.CreditAll(c.Context(), req)
	if err != nil {
		// Partial completion: report what was applied rather than hiding it.
		if resp != nil && resp.StudentsUpdated > 0 {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fiber.Map{
					"code":            "PARTIAL_UPDATE",
					"message":         "Bulk credit failed partway",
					"studentsUpdated": resp.StudentsUpdated,
				},
			})
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to bulk save progress")
	}

	if Metrics.ProgressTotal != nil {
		Metrics.ProgressTotal.WithLabelValues("bulk").Inc()
		Metrics.BulkCreditStudents.Add(float64(resp.StudentsUpdated))
	}
	return c.JSON(resp)
}
