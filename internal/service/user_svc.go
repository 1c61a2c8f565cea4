package service

import (
	"context"

	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/internal/repository"
)

type UserService struct {
	repo *repository.UserRepo
}

func NewUserService(repo *repository.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Lookup returns a single user by id.
func (s *UserService) Lookup(ctx context.Context, userID string) (*model.User, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// List returns all users with progress stats.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.ListWithStats(ctx)
}

// ListStudents returns the teacher dashboard's student rows.
func (s *UserService) ListStudents(ctx context.Context) ([]model.StudentSummary, error) {
	return s.repo.ListStudents(ctx)
}
