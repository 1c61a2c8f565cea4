package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/internal/repository"
)

type CatalogService struct {
	repo  *repository.GradeRepo
	cache *CacheService

	// Observability hooks, wired to the Prometheus cache counters at
	// startup. Nil hooks are skipped.
	OnCacheHit  func()
	OnCacheMiss func()
}

func NewCatalogService(repo *repository.GradeRepo, cache *CacheService) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

func (s *CatalogService) cacheHit() {
	if s.OnCacheHit != nil {
		s.OnCacheHit()
	}
}

func (s *CatalogService) cacheMiss() {
	if s.OnCacheMiss != nil {
		s.OnCacheMiss()
	}
}

// ListGrades returns all grades with counts, served from cache when warm.
func (s *CatalogService) ListGrades(ctx context.Context) ([]model.Grade, error) {
	if s.cache != nil {
		if data, err := s.cache.GetGradeList(ctx); err == nil && data != nil {
			var grades []model.Grade
			if err := json.Unmarshal(data, &grades); err == nil {
				s.cacheHit()
				return grades, nil
			}
		}
		s.cacheMiss()
	}

	grades, err := s.repo.ListGrades(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetGradeList(ctx, grades); err != nil {
			log.Printf("cache: set grade list error: %v", err)
		}
	}
	return grades, nil
}

// GetTree returns the full tree for one grade number, cache-aside.
func (s *CatalogService) GetTree(ctx context.Context, gradeNum string) (*model.GradeTree, error) {
	if s.cache != nil {
		if data, err := s.cache.GetGradeTree(ctx, gradeNum); err == nil && data != nil {
			var tree model.GradeTree
			if err := json.Unmarshal(data, &tree); err == nil {
				s.cacheHit()
				return &tree, nil
			}
		}
		s.cacheMiss()
	}

	tree, err := s.repo.GetTree(ctx, gradeNum)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetGradeTree(ctx, gradeNum, tree); err != nil {
			log.Printf("cache: set grade tree error: %v", err)
		}
	}
	return tree, nil
}

// ListDisabled returns the moderation queue of disabled media.
func (s *CatalogService) ListDisabled(ctx context.Context) ([]model.DisabledMedia, error) {
	return s.repo.ListDisabled(ctx)
}
