package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/andytrench/history-media-hunter/internal/middleware"
	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/internal/service"
)

type ReportHandler struct {
	svc *service.ModerationService
}

func NewReportHandler(svc *service.ModerationService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Submit handles POST /api/reports
func (h *ReportHandler) Submit(c fiber.Ctx) error {
	var req model.ReportRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if req.MediaID <= 0 || req.ReporterID == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "mediaId and reporterId are required")
	}

	reportType, errMsg := middleware.ValidateReportType(req.ReportType)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.ReportType = reportType

	rep, err := h.svc.Submit(c.Context(), req)
	if err != nil {
		if strings.Contains(err.Error(), "invalid report type") {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create report")
	}

	if Metrics.ReportsTotal != nil {
		Metrics.ReportsTotal.WithLabelValues("submitted").Inc()
	}
	return c.JSON(rep)
}

// List handles GET /api/reports with an optional ?status= filter.
func (h *ReportHandler) List(c fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && status != model.ReportPending && status != model.ReportResolved {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "status must be pending or resolved")
	}

	reports, err := h.svc.List(c.Context(), status)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch reports")
	}
	if reports == nil {
		reports = []model.Report{}
	}
	return c.JSON(reports)
}

// Resolve handles PATCH /api/reports/:id
func (h *ReportHandler) Resolve(c fiber.Ctx) error {
	reportID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || reportID <= 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "report id must be a positive integer")
	}

	var req model.ReportResolveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if req.Status != model.ReportPending && req.Status != model.ReportResolved {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "status must be pending or resolved")
	}
	if req.ResolvedBy == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "resolvedBy is required")
	}

	rep, err := h.svc.Resolve(c.Context(), reportID, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Report not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update report")
	}

	if Metrics.ReportsTotal != nil {
		Metrics.ReportsTotal.WithLabelValues("resolved").Inc()
	}
	return c.JSON(rep)
}
