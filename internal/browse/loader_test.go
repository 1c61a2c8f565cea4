package browse

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/andytrench/history-media-hunter/internal/model"
)

// fakeSource returns a canned tree (or error) and counts loads.
type fakeSource struct {
	name  string
	tree  *model.GradeTree
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Load(ctx context.Context, gradeID string) (*model.GradeTree, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.tree, nil
}

func sampleTree(grade string) *model.GradeTree {
	return &model.GradeTree{
		Grade: grade,
		Name:  "Sample",
		Categories: []model.Category{
			{
				ID:   "colonial-era",
				Name: "Colonial Era",
				Topics: []model.Topic{
					{
						ID:   "jamestown",
						Name: "Jamestown",
						Media: []model.Media{
							{ID: 1, Title: "The New World", Type: model.MediaTypeMovie, Year: 2005},
							{ID: 2, Title: "Colonial House", Type: model.MediaTypeSeries, Year: 2004},
						},
					},
				},
			},
		},
	}
}

func TestLoader_CachesPerGrade(t *testing.T) {
	src := &fakeSource{name: "fake", tree: sampleTree("7")}
	l := NewLoader(zerolog.Nop(), src)

	first := l.Load(context.Background(), "7")
	second := l.Load(context.Background(), "7")

	if src.calls != 1 {
		t.Errorf("source loaded %d times, want 1", src.calls)
	}
	if first != second {
		t.Error("cached load returned a different tree")
	}
}

func TestLoader_ForceReloadBypassesCache(t *testing.T) {
	src := &fakeSource{name: "fake", tree: sampleTree("7")}
	l := NewLoader(zerolog.Nop(), src)

	l.Load(context.Background(), "7")
	l.ForceReload(context.Background(), "7")

	if src.calls != 2 {
		t.Errorf("source loaded %d times, want 2", src.calls)
	}
}

func TestLoader_FallsThroughChain(t *testing.T) {
	primary := &fakeSource{name: "remote", err: errors.New("connection refused")}
	fallback := &fakeSource{name: "snapshot", tree: sampleTree("9")}
	l := NewLoader(zerolog.Nop(), primary, fallback)

	tree := l.Load(context.Background(), "9")

	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("calls = (%d, %d), want (1, 1)", primary.calls, fallback.calls)
	}
	if len(tree.Categories) != 1 {
		t.Errorf("got %d categories, want 1", len(tree.Categories))
	}
}

func TestLoader_EmptyTreeWhenAllSourcesFail(t *testing.T) {
	a := &fakeSource{name: "remote", err: errors.New("down")}
	b := &fakeSource{name: "snapshot", err: os.ErrNotExist}
	l := NewLoader(zerolog.Nop(), a, b)

	tree := l.Load(context.Background(), "10")

	if tree == nil {
		t.Fatal("expected a tree even on total failure")
	}
	if tree.Grade != "10" {
		t.Errorf("grade = %q, want %q", tree.Grade, "10")
	}
	if tree.Name != "Global History II" {
		t.Errorf("name = %q, want config default", tree.Name)
	}
	if tree.Categories == nil || len(tree.Categories) != 0 {
		t.Errorf("categories = %v, want empty non-nil slice", tree.Categories)
	}
}

func TestLoader_NormalizeFillsGradeMetadata(t *testing.T) {
	src := &fakeSource{name: "fake", tree: &model.GradeTree{}}
	l := NewLoader(zerolog.Nop(), src)

	tree := l.Load(context.Background(), "5")

	if tree.Grade != "5" {
		t.Errorf("grade = %q, want %q", tree.Grade, "5")
	}
	if tree.Name != "Western Hemisphere" {
		t.Errorf("name = %q, want config default", tree.Name)
	}
	if tree.Categories == nil {
		t.Error("nil categories should normalize to empty slice")
	}
}

func TestLoader_ResetDropsCache(t *testing.T) {
	src := &fakeSource{name: "fake", tree: sampleTree("7")}
	l := NewLoader(zerolog.Nop(), src)

	l.Load(context.Background(), "7")
	l.Reset()
	l.Load(context.Background(), "7")

	if src.calls != 2 {
		t.Errorf("source loaded %d times after reset, want 2", src.calls)
	}
}

func TestCounts(t *testing.T) {
	topics, media := Counts(sampleTree("7"))
	if topics != 1 {
		t.Errorf("topics = %d, want 1", topics)
	}
	if media != 2 {
		t.Errorf("media = %d, want 2", media)
	}
}

func writeFragment(t *testing.T, dir, name string, tree model.GradeTree) {
	t.Helper()
	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotSource_MergesExtendedGradeFragments(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "grade-11.json", model.GradeTree{
		Grade: "11",
		Categories: []model.Category{
			{ID: "founding", Name: "Founding Era"},
			{ID: "expansion", Name: "Westward Expansion"},
			{ID: "civil-war", Name: "Civil War"},
		},
	})
	writeFragment(t, dir, "grade-11-part2.json", model.GradeTree{
		Categories: []model.Category{
			{ID: "industrial", Name: "Industrial Age"},
			{ID: "modern", Name: "Modern Era"},
		},
	})

	src := NewSnapshotSource(dir)
	tree, err := src.Load(context.Background(), "11")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(tree.Categories) != 5 {
		t.Fatalf("got %d categories, want 5", len(tree.Categories))
	}
	// Fragment order is preserved: part 1 first, then part 2.
	if tree.Categories[0].ID != "founding" || tree.Categories[3].ID != "industrial" {
		t.Errorf("categories out of order: %s, %s", tree.Categories[0].ID, tree.Categories[3].ID)
	}
}

func TestSnapshotSource_ExtendedGradeWithoutPart2(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "grade-11.json", model.GradeTree{
		Grade:      "11",
		Categories: []model.Category{{ID: "founding", Name: "Founding Era"}},
	})

	src := NewSnapshotSource(dir)
	tree, err := src.Load(context.Background(), "11")
	if err != nil {
		t.Fatalf("missing part 2 should not be an error, got %v", err)
	}
	if len(tree.Categories) != 1 {
		t.Errorf("got %d categories, want 1", len(tree.Categories))
	}
}

func TestSnapshotSource_MissingFragment(t *testing.T) {
	src := NewSnapshotSource(t.TempDir())
	if _, err := src.Load(context.Background(), "9"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestSnapshotSource_FillsGradeNumber(t *testing.T) {
	dir := t.TempDir()
	writeFragment(t, dir, "grade-9.json", model.GradeTree{
		Categories: []model.Category{{ID: "ancient", Name: "Ancient Civilizations"}},
	})

	src := NewSnapshotSource(dir)
	tree, err := src.Load(context.Background(), "9")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tree.Grade != "9" {
		t.Errorf("grade = %q, want %q", tree.Grade, "9")
	}
}
