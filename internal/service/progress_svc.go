package service

import (
	"context"
	"fmt"

	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/internal/repository"
)

type ProgressService struct {
	repo  *repository.ProgressRepo
	users *repository.UserRepo
}

func NewProgressService(repo *repository.ProgressRepo, users *repository.UserRepo) *ProgressService {
	return &ProgressService{repo: repo, users: users}
}

// ListByStudent returns a student's full progress history.
func (s *ProgressService) ListByStudent(ctx context.Context, studentID string) ([]model.WatchedRecord, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// Save upserts one watched toggle. Last write wins per (student, media).
func (s *ProgressService) Save(ctx context.Context, req model.ProgressRequest) (*model.WatchedRecord, error) {
	return s.repo.Upsert(ctx, req)
}

// CreditAll marks a media item watched (or unwatched) for every registered
// student, recording who granted the credit. The per-student loop is
// sequential; a mid-loop failure returns the partial count alongside the
// error so the caller can report it rather than pretend nothing happened.
func (s *ProgressService) CreditAll(ctx context.Context, req model.BulkCreditRequest) (*model.BulkCreditResponse, error) {
	studentIDs, err := s.users.ListStudentIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	updated, err := s.repo.BulkUpsert(ctx, studentIDs, req.MediaID, req.Watched, creditNote(req.MarkedBy, req.Watched))
	resp := &model.BulkCreditResponse{
		Success:         err == nil,
		StudentsUpdated: updated,
		MediaID:         req.MediaID,
		Watched:         req.Watched,
	}
	if err != nil {
		return resp, err
	}
	return resp, nil
}

// creditNote is the attribution appended to each student's notes when a
// teacher marks an item watched for the class. Unmarking carries no note;
// the original grant stays in the history.
func creditNote(markedBy string, watched bool) string {
	if !watched {
		return ""
	}
	return fmt.Sprintf("[Credit given by %s]", markedBy)
}
