package browse

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/andytrench/history-media-hunter/internal/model"
)

func moderationServer(t *testing.T, fail bool) (*httptest.Server, *[]model.BulkCreditRequest) {
	t.Helper()
	var received []model.BulkCreditRequest

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/progress/bulk", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var req model.BulkCreditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		received = append(received, req)
		json.NewEncoder(w).Encode(model.BulkCreditResponse{
			Success:         true,
			StudentsUpdated: 12,
			MediaID:         req.MediaID,
			Watched:         req.Watched,
		})
	})
	mux.HandleFunc("POST /api/reports", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var req model.ReportRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(model.Report{
			ID:         7,
			MediaID:    req.MediaID,
			ReportType: req.ReportType,
			Status:     model.ReportPending,
		})
	})
	mux.HandleFunc("PATCH /api/reports/", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(model.Report{ID: 7, Status: model.ReportResolved, ResolvedBy: "ms.rivera"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &received
}

func testTeacher() *model.User {
	return &model.User{UserID: "teacher_1", Name: "Ms. Rivera", Role: model.RoleTeacher}
}

func TestCreditAll_RequiresModeratorRole(t *testing.T) {
	c := NewModerationClient("http://unused", nil)
	student := &model.User{UserID: "student_abc", Role: model.RoleStudent}

	_, err := c.CreditAll(context.Background(), student, nil, &model.Media{ID: 1}, true)
	if !errors.Is(err, ErrNotPermitted) {
		t.Errorf("err = %v, want ErrNotPermitted", err)
	}
}

func TestCreditAll_Success(t *testing.T) {
	srv, received := moderationServer(t, false)
	c := NewModerationClient(srv.URL, srv.Client())
	store := NewStore(failingBackend{}, NewLocalSnapshot(t.TempDir()), zerolog.Nop())

	resp, err := c.CreditAll(context.Background(), testTeacher(), store, &model.Media{ID: 42, Title: "Glory", Year: 1989}, true)
	if err != nil {
		t.Fatalf("credit all: %v", err)
	}
	if resp.StudentsUpdated != 12 {
		t.Errorf("students updated = %d, want 12", resp.StudentsUpdated)
	}
	if len(*received) != 1 || (*received)[0].MarkedBy != "Ms. Rivera" {
		t.Errorf("backend received %+v", *received)
	}
}

func TestCreditAll_DegradedFallbackCreditsSelf(t *testing.T) {
	srv, _ := moderationServer(t, true)
	c := NewModerationClient(srv.URL, srv.Client())
	store := NewStore(failingBackend{}, NewLocalSnapshot(t.TempDir()), zerolog.Nop())

	m := &model.Media{ID: 42, Title: "Glory", Year: 1989}
	resp, err := c.CreditAll(context.Background(), testTeacher(), store, m, true)

	if resp != nil {
		t.Errorf("expected nil response on degraded credit, got %+v", resp)
	}
	if !errors.Is(err, ErrDegradedCredit) {
		t.Fatalf("err = %v, want ErrDegradedCredit", err)
	}
	if !store.IsWatched(m) {
		t.Error("acting user should still be credited locally")
	}
}

func TestSubmitReport(t *testing.T) {
	srv, _ := moderationServer(t, false)
	c := NewModerationClient(srv.URL, srv.Client())

	rep, err := c.SubmitReport(context.Background(), model.ReportRequest{
		MediaID:    42,
		ReporterID: "student_abc",
		ReportType: "broken_link",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rep.Status != model.ReportPending {
		t.Errorf("status = %q, want pending", rep.Status)
	}
}

func TestSubmitReport_NoFallbackOnFailure(t *testing.T) {
	srv, _ := moderationServer(t, true)
	c := NewModerationClient(srv.URL, srv.Client())

	if _, err := c.SubmitReport(context.Background(), model.ReportRequest{MediaID: 42, ReportType: "other"}); err == nil {
		t.Error("expected an error when the backend rejects the report")
	}
}

func TestResolveReport_RequiresModeratorRole(t *testing.T) {
	c := NewModerationClient("http://unused", nil)
	student := &model.User{UserID: "student_abc", Role: model.RoleStudent}

	_, err := c.ResolveReport(context.Background(), student, 7, model.ReportResolveRequest{Status: model.ReportResolved})
	if !errors.Is(err, ErrNotPermitted) {
		t.Errorf("err = %v, want ErrNotPermitted", err)
	}
}

func TestModerationFlow_DisableThenReenable(t *testing.T) {
	tree := &model.GradeTree{
		Grade: "7",
		Categories: []model.Category{{
			ID: "revolution",
			Topics: []model.Topic{{
				ID:    "lexington",
				Media: []model.Media{{ID: 42, Title: "Glory", Disabled: false}},
			}},
		}},
	}
	src := &fakeSource{name: "fake", tree: tree}
	loader := NewLoader(zerolog.Nop(), src)

	item := &loader.Load(context.Background(), "7").Categories[0].Topics[0].Media[0]
	if VisibilityFor(item, model.RoleStudent) != VisibilityFull {
		t.Fatal("item should start active")
	}

	// A report disables the media server-side; the caller force-reloads.
	tree.Categories[0].Topics[0].Media[0].Disabled = true
	item = &loader.ForceReload(context.Background(), "7").Categories[0].Topics[0].Media[0]
	if VisibilityFor(item, model.RoleStudent) != VisibilityRedacted {
		t.Error("disabled item should be redacted for students")
	}
	if VisibilityFor(item, model.RoleTeacher) != VisibilityReported {
		t.Error("disabled item should be flagged for teachers")
	}

	// Resolution with re-enable flips it back.
	tree.Categories[0].Topics[0].Media[0].Disabled = false
	item = &loader.ForceReload(context.Background(), "7").Categories[0].Topics[0].Media[0]
	if VisibilityFor(item, model.RoleStudent) != VisibilityFull {
		t.Error("re-enabled item should be fully visible again")
	}
}

func TestResolveReport(t *testing.T) {
	srv, _ := moderationServer(t, false)
	c := NewModerationClient(srv.URL, srv.Client())

	rep, err := c.ResolveReport(context.Background(), testTeacher(), 7, model.ReportResolveRequest{
		Status:        model.ReportResolved,
		ResolvedBy:    "ms.rivera",
		ReenableMedia: true,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rep.Status != model.ReportResolved {
		t.Errorf("status = %q, want resolved", rep.Status)
	}
}
