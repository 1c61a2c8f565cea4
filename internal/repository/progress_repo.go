package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andytrench/history-media-hunter/internal/model"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// ListByStudent returns all progress rows for a student, joined with media
// context, newest first.
func (r *ProgressRepo) ListByStudent(ctx context.Context, studentID string) ([]model.WatchedRecord, error) {
	query := `
		SELECT sp.student_id, sp.media_id, sp.watched,
		       COALESCE(sp.notes, ''), COALESCE(sp.rating, 0),
		       sp.watch_date, sp.updated_at,
		       m.title, m.type, g.grade_number
		FROM student_progress sp
		JOIN media m ON m.id = sp.media_id
		JOIN topics t ON t.id = m.topic_id
		JOIN categories c ON c.id = t.category_id
		JOIN grades g ON g.id = c.grade_id
		WHERE sp.student_id = $1
		ORDER BY sp.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.WatchedRecord
	for rows.Next() {
		var rec model.WatchedRecord
		err := rows.Scan(
			&rec.StudentID, &rec.MediaID, &rec.Watched,
			&rec.Notes, &rec.Rating, &rec.WatchDate, &rec.UpdatedAt,
			&rec.MediaTitle, &rec.MediaType, &rec.GradeNumber,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Upsert writes a watched toggle for one (student, media) pair. Last write
// wins; the row is created on first toggle and flipped afterwards. Notes
// and rating are merged, never cleared by an absent value, and the watch
// date is only stamped when marking watched.
func (r *ProgressRepo) Upsert(ctx context.Context, req model.ProgressRequest) (*model.WatchedRecord, error) {
	query := `
		INSERT INTO student_progress (student_id, media_id, watched, notes, rating, watch_date, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, 0),
		        CASE WHEN $3 THEN NOW() END, NOW())
		ON CONFLICT (student_id, media_id) DO UPDATE SET
			watched = $3,
			notes = COALESCE(NULLIF($4, ''), student_progress.notes),
			rating = COALESCE(NULLIF($5, 0), student_progress.rating),
			watch_date = CASE WHEN $3 THEN NOW() ELSE student_progress.watch_date END,
			updated_at = NOW()
		RETURNING student_id, media_id, watched, COALESCE(notes, ''), COALESCE(rating, 0), watch_date, updated_at`

	var rec model.WatchedRecord
	err := r.pool.QueryRow(ctx, query,
		req.StudentID, req.MediaID, req.Watched, req.Notes, req.Rating,
	).Scan(
		&rec.StudentID, &rec.MediaID, &rec.Watched,
		&rec.Notes, &rec.Rating, &rec.WatchDate, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// BulkUpsert applies a watched value for one media item to every student in
// the given list, appending the attribution note when marking watched. The
// loop is sequential; on failure it returns the count applied so far along
// with the error so partial completion is visible to the caller.
func (r *ProgressRepo) BulkUpsert(ctx context.Context, studentIDs []string, mediaID int64, watched bool, note string) (int, error) {
	query := `
		INSERT INTO student_progress (student_id, media_id, watched, watch_date, updated_at, notes)
		VALUES ($1, $2, $3, CASE WHEN $3 THEN NOW() END, NOW(), NULLIF($4, ''))
		ON CONFLICT (student_id, media_id) DO UPDATE SET
			watched = $3,
			watch_date = CASE WHEN $3 THEN NOW() ELSE student_progress.watch_date END,
			updated_at = NOW(),
			notes = CASE WHEN $3 AND $4 <> ''
			        THEN COALESCE(student_progress.notes || ' ', '') || $4
			        ELSE student_progress.notes END`

	return applyToStudents(studentIDs, func(studentID string) error {
		_, err := r.pool.Exec(ctx, query, studentID, mediaID, watched, note)
		return err
	})
}

// applyToStudents runs one write per student in order, stopping at the
// first failure. The count of writes applied before the failure is
// returned alongside the error; partial completion is reported, never
// rolled back.
func applyToStudents(studentIDs []string, apply func(studentID string) error) (int, error) {
	updated := 0
	for _, studentID := range studentIDs {
		if err := apply(studentID); err != nil {
			return updated, fmt.Errorf("bulk upsert for student %s: %w", studentID, err)
		}
		updated++
	}
	return updated, nil
}
