package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/andytrench/history-media-hunter/internal/middleware"
	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/internal/service"
)

type GradeHandler struct {
	svc *service.CatalogService
}

func NewGradeHandler(svc *service.CatalogService) *GradeHandler {
	return &GradeHandler{svc: svc}
}

// List handles GET /api/grades
func (h *GradeHandler) List(c fiber.Ctx) error {
	grades, err := h.svc.ListGrades(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch grades")
	}
	return c.JSON(grades)
}

// GetTree handles GET /api/grades/:gradeNum
func (h *GradeHandler) GetTree(c fiber.Ctx) error {
	gradeNum, errMsg := middleware.ValidateGradeNumber(c.Params("gradeNum"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if Metrics.GradeLoadsTotal != nil {
		Metrics.GradeLoadsTotal.WithLabelValues(gradeNum).Inc()
	}

	tree, err := h.svc.GetTree(c.Context(), gradeNum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Grade not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch grade data")
	}

	return c.JSON(tree)
}

// ListDisabled handles GET /api/media/disabled
func (h *GradeHandler) ListDisabled(c fiber.Ctx) error {
	items, err := h.svc.ListDisabled(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch disabled media")
	}
	if items == nil {
		items = []model.DisabledMedia{}
	}
	return c.JSON(items)
}
