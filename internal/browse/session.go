package browse

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/pkg/mediakey"
)

// Filters narrows the media shown on a topic. Zero value shows everything.
type Filters struct {
	Type           string // "" or a media type constant
	AgeAppropriate *bool  // nil means both
}

// Session is one user's browsing state: current position in the tree, the
// grade loader, the progress store and active filters. All state lives
// here rather than in package globals; rendering gets a Session and asks
// it questions.
type Session struct {
	User  *model.User
	Store *Store

	loader *Loader
	log    zerolog.Logger

	CurrentGrade    string
	CurrentCategory string
	CurrentTopic    string
	SearchQuery     string
	Filters         Filters
}

// NewSession builds a session for a user. A user without an id gets a
// generated one so anonymous progress still lands in a stable slot.
func NewSession(user *model.User, loader *Loader, store *Store, log zerolog.Logger) *Session {
	if user.UserID == "" {
		user.UserID = GenerateStudentID()
	}
	return &Session{
		User:         user,
		Store:        store,
		loader:       loader,
		log:          log,
		CurrentGrade: "5",
	}
}

// GenerateStudentID mints an id for a first-time visitor.
func GenerateStudentID() string {
	return "student_" + uuid.NewString()[:9]
}

// Init loads the student's watched state and the initial grade tree.
func (s *Session) Init(ctx context.Context) *model.GradeTree {
	s.Store.Load(ctx, s.User.UserID)
	return s.loader.Load(ctx, s.CurrentGrade)
}

// Reset returns the session to its initial state, dropping cached trees
// and navigation but keeping the user identity.
func (s *Session) Reset() {
	s.loader.Reset()
	s.CurrentGrade = "5"
	s.CurrentCategory = ""
	s.CurrentTopic = ""
	s.SearchQuery = ""
	s.Filters = Filters{}
}

// SelectGrade switches grades, clearing the narrower selection.
func (s *Session) SelectGrade(ctx context.Context, gradeID string) *model.GradeTree {
	s.CurrentGrade = gradeID
	s.CurrentCategory = ""
	s.CurrentTopic = ""
	return s.loader.Load(ctx, gradeID)
}

// ReloadGrade force-reloads the current grade, used after a moderation
// action changed disabled state server-side.
func (s *Session) ReloadGrade(ctx context.Context) *model.GradeTree {
	return s.loader.ForceReload(ctx, s.CurrentGrade)
}

// Tree returns the current grade's tree (cached load).
func (s *Session) Tree(ctx context.Context) *model.GradeTree {
	return s.loader.Load(ctx, s.CurrentGrade)
}

// VisibleTopics returns the current category's topics filtered by the
// search query. Linear scan; the catalog is small.
func (s *Session) VisibleTopics(ctx context.Context) []model.Topic {
	tree := s.Tree(ctx)

	var topics []model.Topic
	for _, cat := range tree.Categories {
		if s.CurrentCategory != "" && cat.ID != s.CurrentCategory {
			continue
		}
		topics = append(topics, cat.Topics...)
	}

	if q := strings.ToLower(strings.TrimSpace(s.SearchQuery)); q != "" {
		filtered := topics[:0]
		for _, t := range topics {
			if topicMatches(t, q) {
				filtered = append(filtered, t)
			}
		}
		topics = filtered
	}
	return topics
}

// VisibleMedia returns the current topic's media after the type,
// age-appropriateness and search filters.
func (s *Session) VisibleMedia(ctx context.Context) []model.Media {
	topic := s.findTopic(ctx)
	if topic == nil {
		return nil
	}

	var media []model.Media
	for _, m := range topic.Media {
		if s.Filters.Type != "" && m.Type != s.Filters.Type {
			continue
		}
		if s.Filters.AgeAppropriate != nil && m.AgeAppropriate != *s.Filters.AgeAppropriate {
			continue
		}
		if q := strings.ToLower(strings.TrimSpace(s.SearchQuery)); q != "" && !mediaMatches(m, q) {
			continue
		}
		media = append(media, m)
	}
	return media
}

// ToggleWatched flips an item's watched state and persists it.
func (s *Session) ToggleWatched(ctx context.Context, m *model.Media) (bool, error) {
	key := mediakey.ResolveMedia(m)
	next := !s.Store.Snapshot()[key]
	err := s.Store.Save(ctx, s.User.UserID, key, next)
	return next, err
}

// Breadcrumb returns the navigation trail for the current position.
func (s *Session) Breadcrumb(ctx context.Context) []string {
	tree := s.Tree(ctx)
	crumbs := []string{"Grade " + s.CurrentGrade}

	for _, cat := range tree.Categories {
		if cat.ID == s.CurrentCategory {
			crumbs = append(crumbs, cat.Name)
		}
		for _, t := range cat.Topics {
			if t.ID == s.CurrentTopic {
				crumbs = append(crumbs, t.Name)
			}
		}
	}

	if len(crumbs) == 1 {
		crumbs = append(crumbs, "All Topics")
	}
	return crumbs
}

func (s *Session) findTopic(ctx context.Context) *model.Topic {
	if s.CurrentTopic == "" {
		return nil
	}
	tree := s.Tree(ctx)
	for ci := range tree.Categories {
		cat := &tree.Categories[ci]
		for ti := range cat.Topics {
			if cat.Topics[ti].ID == s.CurrentTopic {
				return &cat.Topics[ti]
			}
		}
	}
	return nil
}

func topicMatches(t model.Topic, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) ||
		strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, sub := range t.Subtopics {
		if strings.Contains(strings.ToLower(sub), q) {
			return true
		}
	}
	return false
}

func mediaMatches(m model.Media, q string) bool {
	return strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Relevance), q)
}
