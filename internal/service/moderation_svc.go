package service

import (
	"context"
	"fmt"
	"log"

	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/internal/repository"
)

type ModerationService struct {
	reports *repository.ReportRepo
	grades  *repository.GradeRepo
	cache   *CacheService
}

func NewModerationService(reports *repository.ReportRepo, grades *repository.GradeRepo, cache *CacheService) *ModerationService {
	return &ModerationService{reports: reports, grades: grades, cache: cache}
}

// Submit files a report and disables the referenced media. The cached tree
// for the media's grade is invalidated so the next load sees the flag.
func (s *ModerationService) Submit(ctx context.Context, req model.ReportRequest) (*model.Report, error) {
	if !repository.ValidReportTypes[req.ReportType] {
		return nil, fmt.Errorf("invalid report type: %s", req.ReportType)
	}

	rep, err := s.reports.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidateTreeFor(ctx, rep.MediaID)
	return rep, nil
}

// List returns reports, optionally filtered by status.
func (s *ModerationService) List(ctx context.Context, status string) ([]model.Report, error) {
	return s.reports.List(ctx, status)
}

// Resolve closes a report and optionally re-enables the media. Either way
// the grade tree cache entry is dropped: the reported indicator shown to
// teachers changes even when the disabled flag does not.
func (s *ModerationService) Resolve(ctx context.Context, reportID int64, req model.ReportResolveRequest) (*model.Report, error) {
	rep, err := s.reports.Resolve(ctx, reportID, req)
	if err != nil {
		return nil, err
	}

	s.invalidateTreeFor(ctx, rep.MediaID)
	return rep, nil
}

func (s *ModerationService) invalidateTreeFor(ctx context.Context, mediaID int64) {
	if s.cache == nil {
		return
	}
	gradeNum, err := s.grades.GradeNumberForMedia(ctx, mediaID)
	if err != nil {
		log.Printf("cache: resolve grade for media %d: %v", mediaID, err)
		return
	}
	if err := s.cache.InvalidateGradeTree(ctx, gradeNum); err != nil {
		log.Printf("cache: invalidate grade %s: %v", gradeNum, err)
	}
}
