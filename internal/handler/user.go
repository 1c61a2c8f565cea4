package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/andytrench/history-media-hunter/internal/middleware"
	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /api/users
func (h *UserHandler) List(c fiber.Ctx) error {
	users, err := h.svc.List(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch users")
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(users)
}

// GetByUserID handles GET /api/users/:userId
func (h *UserHandler) GetByUserID(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateStudentID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	user, err := h.svc.Lookup(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch user")
	}

	return c.JSON(user)
}

// ListStudents handles GET /api/students
func (h *UserHandler) ListStudents(c fiber.Ctx) error {
	students, err := h.svc.ListStudents(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch students")
	}
	if students == nil {
		students = []model.StudentSummary{}
	}
	return c.JSON(students)
}
