package browse

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/andytrench/history-media-hunter/internal/model"
)

func newTestSession(t *testing.T, tree *model.GradeTree) (*Session, *fakeSource) {
	t.Helper()
	src := &fakeSource{name: "fake", tree: tree}
	loader := NewLoader(zerolog.Nop(), src)
	store := NewStore(failingBackend{}, NewLocalSnapshot(t.TempDir()), zerolog.Nop())
	user := &model.User{UserID: "student_abc", Name: "Alex", Role: model.RoleStudent}
	return NewSession(user, loader, store, zerolog.Nop()), src
}

func browseTree() *model.GradeTree {
	return &model.GradeTree{
		Grade: "7",
		Name:  "US & NY History",
		Categories: []model.Category{
			{
				ID:   "revolution",
				Name: "American Revolution",
				Topics: []model.Topic{
					{
						ID:        "lexington",
						Name:      "Lexington and Concord",
						Subtopics: []string{"Minutemen", "Paul Revere"},
						Media: []model.Media{
							{ID: 1, Title: "April Morning", Type: model.MediaTypeMovie, Year: 1988, AgeAppropriate: true},
							{ID: 2, Title: "Liberty's Kids", Type: model.MediaTypeSeries, Year: 2002, AgeAppropriate: true},
							{ID: 3, Title: "The Patriot", Type: model.MediaTypeMovie, Year: 2000, AgeAppropriate: false},
						},
					},
				},
			},
			{
				ID:   "civil-war",
				Name: "Civil War",
				Topics: []model.Topic{
					{
						ID:    "gettysburg",
						Name:  "Gettysburg",
						Media: []model.Media{{ID: 4, Title: "Gettysburg", Type: model.MediaTypeMovie, Year: 1993, AgeAppropriate: true}},
					},
				},
			},
		},
	}
}

func TestNewSession_GeneratesStudentID(t *testing.T) {
	src := &fakeSource{name: "fake", tree: browseTree()}
	loader := NewLoader(zerolog.Nop(), src)
	store := NewStore(failingBackend{}, NewLocalSnapshot(t.TempDir()), zerolog.Nop())

	s := NewSession(&model.User{}, loader, store, zerolog.Nop())

	if !strings.HasPrefix(s.User.UserID, "student_") {
		t.Errorf("generated id = %q, want student_ prefix", s.User.UserID)
	}
	if len(s.User.UserID) != len("student_")+9 {
		t.Errorf("generated id length = %d", len(s.User.UserID))
	}
	if s.CurrentGrade != "5" {
		t.Errorf("initial grade = %q, want %q", s.CurrentGrade, "5")
	}
}

func TestSession_SelectGradeClearsNarrowerSelection(t *testing.T) {
	s, _ := newTestSession(t, browseTree())
	s.CurrentCategory = "revolution"
	s.CurrentTopic = "lexington"

	s.SelectGrade(context.Background(), "7")

	if s.CurrentGrade != "7" {
		t.Errorf("grade = %q, want 7", s.CurrentGrade)
	}
	if s.CurrentCategory != "" || s.CurrentTopic != "" {
		t.Error("category and topic should be cleared on grade change")
	}
}

func TestSession_VisibleTopics(t *testing.T) {
	s, _ := newTestSession(t, browseTree())

	all := s.VisibleTopics(context.Background())
	if len(all) != 2 {
		t.Fatalf("got %d topics without a category, want 2", len(all))
	}

	s.CurrentCategory = "civil-war"
	scoped := s.VisibleTopics(context.Background())
	if len(scoped) != 1 || scoped[0].ID != "gettysburg" {
		t.Errorf("scoped topics = %v", scoped)
	}
}

func TestSession_VisibleTopicsSearch(t *testing.T) {
	s, _ := newTestSession(t, browseTree())

	// Subtopic text is searched too.
	s.SearchQuery = "paul revere"
	topics := s.VisibleTopics(context.Background())
	if len(topics) != 1 || topics[0].ID != "lexington" {
		t.Errorf("search result = %v", topics)
	}

	s.SearchQuery = "zzz-no-match"
	if got := s.VisibleTopics(context.Background()); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestSession_VisibleMediaFilters(t *testing.T) {
	ageOK := true

	tests := []struct {
		name    string
		filters Filters
		search  string
		want    []int64
	}{
		{"no filters", Filters{}, "", []int64{1, 2, 3}},
		{"type filter", Filters{Type: model.MediaTypeMovie}, "", []int64{1, 3}},
		{"age filter", Filters{AgeAppropriate: &ageOK}, "", []int64{1, 2}},
		{"combined", Filters{Type: model.MediaTypeMovie, AgeAppropriate: &ageOK}, "", []int64{1}},
		{"search", Filters{}, "patriot", []int64{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t, browseTree())
			s.CurrentCategory = "revolution"
			s.CurrentTopic = "lexington"
			s.Filters = tt.filters
			s.SearchQuery = tt.search

			media := s.VisibleMedia(context.Background())
			var ids []int64
			for _, m := range media {
				ids = append(ids, m.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("ids = %v, want %v", ids, tt.want)
					break
				}
			}
		})
	}
}

func TestSession_VisibleMediaWithoutTopic(t *testing.T) {
	s, _ := newTestSession(t, browseTree())
	if got := s.VisibleMedia(context.Background()); got != nil {
		t.Errorf("expected nil without a selected topic, got %v", got)
	}
}

func TestSession_ToggleWatched(t *testing.T) {
	s, _ := newTestSession(t, browseTree())
	m := &model.Media{ID: 4, Title: "Gettysburg", Year: 1993}

	on, err := s.ToggleWatched(context.Background(), m)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !on {
		t.Error("first toggle should mark watched")
	}
	if !s.Store.IsWatched(m) {
		t.Error("store should report the item watched")
	}

	off, err := s.ToggleWatched(context.Background(), m)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if off {
		t.Error("second toggle should unmark")
	}
}

func TestSession_Breadcrumb(t *testing.T) {
	s, _ := newTestSession(t, browseTree())
	s.CurrentGrade = "7"

	got := s.Breadcrumb(context.Background())
	want := []string{"Grade 7", "All Topics"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("breadcrumb = %v, want %v", got, want)
	}

	s.CurrentCategory = "revolution"
	s.CurrentTopic = "lexington"
	got = s.Breadcrumb(context.Background())
	if len(got) != 3 || got[1] != "American Revolution" || got[2] != "Lexington and Concord" {
		t.Errorf("breadcrumb = %v", got)
	}
}

func TestSession_Reset(t *testing.T) {
	s, src := newTestSession(t, browseTree())
	s.SelectGrade(context.Background(), "7")
	s.CurrentCategory = "revolution"
	s.SearchQuery = "patriot"
	s.Filters.Type = model.MediaTypeMovie

	s.Reset()

	if s.CurrentGrade != "5" || s.CurrentCategory != "" || s.SearchQuery != "" || s.Filters.Type != "" {
		t.Errorf("session not reset: %+v", s)
	}

	// Cached trees are dropped, so the next load hits the source again.
	before := src.calls
	s.Tree(context.Background())
	if src.calls != before+1 {
		t.Error("reset should drop the loader cache")
	}
}
