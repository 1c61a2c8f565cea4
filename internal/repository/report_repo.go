package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andytrench/history-media-hunter/internal/model"
)

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// ValidReportTypes are the allowed report classification values.
var ValidReportTypes = map[string]bool{
	"broken_link":   true,
	"inappropriate": true,
	"inaccurate":    true,
	"wrong_grade":   true,
	"other":         true,
}

// Create inserts a pending report and disables the referenced media in the
// same transaction, so a report is never visible without its side effect.
func (r *ReportRepo) Create(ctx context.Context, req model.ReportRequest) (*model.Report, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var rep model.Report
	err = tx.QueryRow(ctx, `
		INSERT INTO media_reports (media_id, reporter_id, reporter_name, report_type, notes)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''))
		RETURNING id, media_id, reporter_id, COALESCE(reporter_name, ''),
		          report_type, COALESCE(notes, ''), status, created_at`,
		req.MediaID, req.ReporterID, req.ReporterName, req.ReportType, req.Notes,
	).Scan(
		&rep.ID, &rep.MediaID, &rep.ReporterID, &rep.ReporterName,
		&rep.ReportType, &rep.Notes, &rep.Status, &rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Hide the media from students until a teacher reviews the report.
	_, err = tx.Exec(ctx, `UPDATE media SET disabled = true WHERE id = $1`, req.MediaID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &rep, nil
}

// List returns reports joined with media context, optionally filtered by
// status, newest first.
func (r *ReportRepo) List(ctx context.Context, status string) ([]model.Report, error) {
	query := `
		SELECT r.id, r.media_id, r.reporter_id, COALESCE(r.reporter_name, ''),
		       r.report_type, COALESCE(r.notes, ''), r.status,
		       COALESCE(r.resolved_by, ''), r.resolved_at, r.created_at,
		       m.title, m.type, t.name, c.name, g.grade_number
		FROM media_reports r
		JOIN media m ON m.id = r.media_id
		JOIN topics t ON t.id = m.topic_id
		JOIN categories c ON c.id = t.category_id
		JOIN grades g ON g.id = c.grade_id`
	args := []any{}
	if status != "" {
		query += ` WHERE r.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var rep model.Report
		err := rows.Scan(
			&rep.ID, &rep.MediaID, &rep.ReporterID, &rep.ReporterName,
			&rep.ReportType, &rep.Notes, &rep.Status,
			&rep.ResolvedBy, &rep.ResolvedAt, &rep.CreatedAt,
			&rep.MediaTitle, &rep.MediaType, &rep.TopicName,
			&rep.CategoryName, &rep.GradeNumber,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Resolve transitions a report to the given status, records who resolved
// it and when, and optionally re-enables the media in the same
// transaction. Returns pgx.ErrNoRows for an unknown report id.
func (r *ReportRepo) Resolve(ctx context.Context, reportID int64, req model.ReportResolveRequest) (*model.Report, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var rep model.Report
	err = tx.QueryRow(ctx, `
		UPDATE media_reports
		SET status = $1, resolved_by = $2, resolved_at = NOW()
		WHERE id = $3
		RETURNING id, media_id, reporter_id, COALESCE(reporter_name, ''),
		          report_type, COALESCE(notes, ''), status,
		          COALESCE(resolved_by, ''), resolved_at, created_at`,
		req.Status, req.ResolvedBy, reportID,
	).Scan(
		&rep.ID, &rep.MediaID, &rep.ReporterID, &rep.ReporterName,
		&rep.ReportType, &rep.Notes, &rep.Status,
		&rep.ResolvedBy, &rep.ResolvedAt, &rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if req.ReenableMedia {
		_, err = tx.Exec(ctx, `UPDATE media SET disabled = false WHERE id = $1`, rep.MediaID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &rep, nil
}
