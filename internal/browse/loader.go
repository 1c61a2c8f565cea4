package browse

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/andytrench/history-media-hunter/internal/model"
)

// Loader resolves grade trees through an ordered source chain and caches
// the result per grade. A load never fails past this boundary: when every
// source fails the grade resolves to an empty category list and callers
// treat that as the uniform empty state.
type Loader struct {
	sources []Source
	log     zerolog.Logger

	mu    sync.Mutex
	trees map[string]*model.GradeTree
}

// NewLoader builds a loader over the given source chain, evaluated in
// order until one succeeds.
func NewLoader(log zerolog.Logger, sources ...Source) *Loader {
	return &Loader{
		sources: sources,
		log:     log,
		trees:   make(map[string]*model.GradeTree),
	}
}

// Load returns the tree for a grade, serving the cached copy when present.
// Two sequential calls without a force reload yield the same tree and the
// second touches no source.
func (l *Loader) Load(ctx context.Context, gradeID string) *model.GradeTree {
	l.mu.Lock()
	if tree, ok := l.trees[gradeID]; ok {
		l.mu.Unlock()
		return tree
	}
	l.mu.Unlock()

	return l.fetch(ctx, gradeID)
}

// ForceReload bypasses and replaces the cache entry for a grade. Used
// after a moderation action changes disabled state server-side.
func (l *Loader) ForceReload(ctx context.Context, gradeID string) *model.GradeTree {
	return l.fetch(ctx, gradeID)
}

// Reset drops every cached tree.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.trees = make(map[string]*model.GradeTree)
	l.mu.Unlock()
}

func (l *Loader) fetch(ctx context.Context, gradeID string) *model.GradeTree {
	tree := l.resolve(ctx, gradeID)

	l.mu.Lock()
	l.trees[gradeID] = tree
	l.mu.Unlock()
	return tree
}

func (l *Loader) resolve(ctx context.Context, gradeID string) *model.GradeTree {
	for _, src := range l.sources {
		tree, err := src.Load(ctx, gradeID)
		if err != nil {
			l.log.Warn().
				Str("source", src.Name()).
				Str("grade", gradeID).
				Err(err).
				Msg("grade source failed")
			continue
		}
		return normalize(tree, gradeID)
	}

	l.log.Error().Str("grade", gradeID).Msg("all grade sources failed")
	return emptyTree(gradeID)
}

func normalize(tree *model.GradeTree, gradeID string) *model.GradeTree {
	if tree.Grade == "" {
		tree.Grade = gradeID
	}
	if tree.Name == "" {
		if cfg, ok := model.GradeConfigs[gradeID]; ok {
			tree.Name = cfg.Name
			tree.CurriculumFocus = cfg.Focus
		}
	}
	if tree.Categories == nil {
		tree.Categories = []model.Category{}
	}
	return tree
}

func emptyTree(gradeID string) *model.GradeTree {
	tree := &model.GradeTree{Grade: gradeID, Categories: []model.Category{}}
	if cfg, ok := model.GradeConfigs[gradeID]; ok {
		tree.Name = cfg.Name
		tree.CurriculumFocus = cfg.Focus
	}
	return tree
}

// Counts tallies topics and media across a tree, for the header stats.
func Counts(tree *model.GradeTree) (topics, media int) {
	for _, cat := range tree.Categories {
		topics += len(cat.Topics)
		for _, t := range cat.Topics {
			media += len(t.Media)
		}
	}
	return topics, media
}
