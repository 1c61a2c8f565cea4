package browse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/andytrench/history-media-hunter/internal/model"
	"github.com/andytrench/history-media-hunter/pkg/mediakey"
)

// ErrNotPermitted is returned when a student attempts a teacher/admin
// operation.
var ErrNotPermitted = errors.New("operation requires teacher or admin role")

// ErrDegradedCredit wraps a bulk-credit backend failure after the fallback
// credited only the acting user. Callers must surface it; the class was
// not updated.
var ErrDegradedCredit = errors.New("bulk credit degraded: only your own progress was updated")

// ModerationClient drives the bulk-credit and report workflows against the
// backend on behalf of one session user.
type ModerationClient struct {
	BaseURL string
	Client  *http.Client
}

func NewModerationClient(baseURL string, client *http.Client) *ModerationClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ModerationClient{BaseURL: baseURL, Client: client}
}

// CreditAll marks a media item watched (or not) for every registered
// student. Teacher/admin only. If the backend call fails outright, the
// acting user's own store entry is credited instead and the returned error
// wraps ErrDegradedCredit so the caller can inform the user or retry.
func (c *ModerationClient) CreditAll(ctx context.Context, user *model.User, store *Store, m *model.Media, watched bool) (*model.BulkCreditResponse, error) {
	if !model.CanModerate(user.Role) {
		return nil, ErrNotPermitted
	}

	req := model.BulkCreditRequest{
		MediaID:  m.ID,
		Watched:  watched,
		MarkedBy: user.Name,
	}

	var resp model.BulkCreditResponse
	if err := c.post(ctx, "/api/progress/bulk", req, &resp); err != nil {
		key := mediakey.ResolveMedia(m)
		if saveErr := store.Save(ctx, user.UserID, key, watched); saveErr != nil {
			return nil, fmt.Errorf("%w: %w (self-credit also failed: %w)", ErrDegradedCredit, err, saveErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrDegradedCredit, err)
	}
	return &resp, nil
}

// SubmitReport files a report against a media item. Any role may report.
// There is no fallback: a failure surfaces to the caller with state
// unchanged, and on success the media is disabled server-side, so the
// caller should force-reload the grade tree.
func (c *ModerationClient) SubmitReport(ctx context.Context, req model.ReportRequest) (*model.Report, error) {
	var rep model.Report
	if err := c.post(ctx, "/api/reports", req, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// ResolveReport closes a report, optionally re-enabling the media.
// Teacher/admin only.
func (c *ModerationClient) ResolveReport(ctx context.Context, user *model.User, reportID int64, req model.ReportResolveRequest) (*model.Report, error) {
	if !model.CanModerate(user.Role) {
		return nil, ErrNotPermitted
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/reports/%d", c.BaseURL, reportID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("resolve report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolve report: status %d", resp.StatusCode)
	}

	var rep model.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

func (c *ModerationClient) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
