package browse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/pkg/mediakey"
)

// SnapshotFile is the well-known name of the local watched-state snapshot.
const SnapshotFile = "curriculum-watched.json"

// Progress source labels, recorded at Load time and pinned for the session.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// ProgressBackend is the remote store behind the progress API.
type ProgressBackend interface {
	Fetch(ctx context.Context, studentID string) ([]model.WatchedRecord, error)
	Save(ctx context.Context, req model.ProgressRequest) error
}

// RemoteProgress talks to the progress API over HTTP.
type RemoteProgress struct {
	BaseURL string
	Client  *http.Client
}

func NewRemoteProgress(baseURL string, client *http.Client) *RemoteProgress {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteProgress{BaseURL: baseURL, Client: client}
}

func (r *RemoteProgress) Fetch(ctx context.Context, studentID string) ([]model.WatchedRecord, error) {
	url := fmt.Sprintf("%s/api/progress/%s", r.BaseURL, studentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch progress: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch progress: status %d", resp.StatusCode)
	}

	var records []model.WatchedRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return records, nil
}

func (r *RemoteProgress) Save(ctx context.Context, reqBody model.ProgressRequest) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	url := r.BaseURL + "/api/progress"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save progress: status %d", resp.StatusCode)
	}
	return nil
}

// LocalSnapshot persists the whole watched map as one JSON file, read
// wholesale on load and overwritten wholesale on save. It mirrors the
// single-slot localStorage of the web client.
type LocalSnapshot struct {
	path string
}

func NewLocalSnapshot(dir string) *LocalSnapshot {
	return &LocalSnapshot{path: filepath.Join(dir, SnapshotFile)}
}

func (l *LocalSnapshot) LoadAll() (map[string]bool, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}
	watched := make(map[string]bool)
	if err := json.Unmarshal(data, &watched); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return watched, nil
}

func (l *LocalSnapshot) SaveAll(watched map[string]bool) error {
	data, err := json.Marshal(watched)
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0o644)
}

// Store tracks one student's watched state. Remote is the primary backend;
// on remote failure Load falls back to the local snapshot, and Save falls
// back to rewriting it. The source chosen at Load time is pinned for the
// session: remote and local are never merged, and a remote store coming
// back mid-session is not picked up until the next Load.
type Store struct {
	remote ProgressBackend
	local  *LocalSnapshot
	log    zerolog.Logger

	mu      sync.Mutex
	watched map[string]bool
	source  string
}

func NewStore(remote ProgressBackend, local *LocalSnapshot, log zerolog.Logger) *Store {
	return &Store{
		remote:  remote,
		local:   local,
		log:     log,
		watched: make(map[string]bool),
		source:  SourceLocal,
	}
}

// Load populates the watched map for a student. From the remote store only
// watched=true entries are kept (absence means not watched); the local
// snapshot is trusted as written. A student with no state anywhere loads
// an empty map without error.
func (s *Store) Load(ctx context.Context, studentID string) map[string]bool {
	if records, err := s.remote.Fetch(ctx, studentID); err == nil {
		watched := make(map[string]bool)
		for _, rec := range records {
			if rec.Watched {
				watched[strconv.FormatInt(rec.MediaID, 10)] = true
			}
		}
		s.install(watched, SourceRemote)
		return s.Snapshot()
	} else {
		s.log.Warn().Err(err).Msg("remote progress unavailable, using local snapshot")
	}

	watched, err := s.local.LoadAll()
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Msg("local snapshot unreadable")
		}
		watched = make(map[string]bool)
	}
	s.install(watched, SourceLocal)
	return s.Snapshot()
}

// Save records a toggle. The in-memory map is updated before any
// persistence is attempted, so the caller-visible state is correct even
// when both the remote write and the snapshot rewrite fail.
func (s *Store) Save(ctx context.Context, studentID, key string, watched bool) error {
	s.mu.Lock()
	s.watched[key] = watched
	s.mu.Unlock()

	req := model.ProgressRequest{StudentID: studentID, Watched: watched}
	mediaID, numeric := parseMediaID(key)
	if numeric {
		req.MediaID = mediaID
		if err := s.remote.Save(ctx, req); err == nil {
			return nil
		} else {
			s.log.Warn().Err(err).Str("key", key).Msg("remote save failed, writing local snapshot")
		}
	}

	if err := s.local.SaveAll(s.Snapshot()); err != nil {
		return fmt.Errorf("local snapshot save: %w", err)
	}
	return nil
}

// IsWatched checks a media item against the loaded map, by database id
// first and derived key second, matching how keys were written over time.
func (s *Store) IsWatched(m *model.Media) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID > 0 && s.watched[strconv.FormatInt(m.ID, 10)] {
		return true
	}
	return s.watched[mediakey.Derive(m.Title, m.Year)]
}

// Source reports which backend the current session's state came from.
func (s *Store) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// WatchedCount returns the number of items currently marked watched.
func (s *Store) WatchedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, w := range s.watched {
		if w {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the in-memory watched map.
func (s *Store) Snapshot() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]bool, len(s.watched))
	for k, v := range s.watched {
		out[k] = v
	}
	return out
}

func (s *Store) install(watched map[string]bool, source string) {
	s.mu.Lock()
	s.watched = watched
	s.source = source
	s.mu.Unlock()
}

// parseMediaID reports whether a storage key is a database id. Derived
// title+year keys only exist client-side and cannot be synced remotely.
func parseMediaID(key string) (int64, bool) {
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
