package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andytrench/history-media-hunter/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindByUserID returns a single user by id.
func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, name, role, COALESCE(avatar_color, ''), last_active
		FROM users
		WHERE user_id = $1`, userID).Scan(
		&u.UserID, &u.Name, &u.Role, &u.AvatarColor, &u.LastActive,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListWithStats returns all users with their watched counts and grades
// touched, ordered by role then name.
func (r *UserRepo) ListWithStats(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT u.user_id, u.name, u.role, COALESCE(u.avatar_color, ''), u.last_active,
		       COALESCE(progress.watched_count, 0),
		       COALESCE(progress.grades_touched, 0),
		       progress.last_activity
		FROM users u
		LEFT JOIN (
			SELECT sp.student_id,
			       COUNT(*) FILTER (WHERE sp.watched = true) AS watched_count,
			       COUNT(DISTINCT g.id) AS grades_touched,
			       MAX(sp.updated_at) AS last_activity
			FROM student_progress sp
			JOIN media m ON m.id = sp.media_id
			JOIN topics t ON t.id = m.topic_id
			JOIN categories c ON c.id = t.category_id
			JOIN grades g ON g.id = c.grade_id
			GROUP BY sp.student_id
		) progress ON progress.student_id = u.user_id
		ORDER BY u.role, u.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(
			&u.UserID, &u.Name, &u.Role, &u.AvatarColor, &u.LastActive,
			&u.WatchedCount, &u.GradesTouched, &u.LastActivity,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListStudentIDs returns the ids of all users with the student role. Bulk
// credit iterates exactly this set.
func (r *UserRepo) ListStudentIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM users WHERE role = 'student'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListStudents returns student dashboard rows with progress stats and
// recently watched titles.
func (r *UserRepo) ListStudents(ctx context.Context) ([]model.StudentSummary, error) {
	query := `
		SELECT u.user_id, u.name, COALESCE(u.avatar_color, ''),
		       COALESCE(progress.watched_count, 0),
		       COALESCE(progress.grades_touched, 0),
		       progress.last_activity,
		       COALESCE(progress.recent_titles, '{}')
		FROM users u
		LEFT JOIN (
			SELECT sp.student_id,
			       COUNT(*) FILTER (WHERE sp.watched = true) AS watched_count,
			       COUNT(DISTINCT g.id) AS grades_touched,
			       MAX(sp.updated_at) AS last_activity,
			       array_agg(DISTINCT m.title ORDER BY m.title)
			           FILTER (WHERE sp.watched = true) AS recent_titles
			FROM student_progress sp
			JOIN media m ON m.id = sp.media_id
			JOIN topics t ON t.id = m.topic_id
			JOIN categories c ON c.id = t.category_id
			JOIN grades g ON g.id = c.grade_id
			GROUP BY sp.student_id
		) progress ON progress.student_id = u.user_id
		WHERE u.role = 'student'
		ORDER BY u.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.StudentSummary
	for rows.Next() {
		var s model.StudentSummary
		err := rows.Scan(
			&s.StudentID, &s.Name, &s.AvatarColor,
			&s.WatchedCount, &s.GradesTouched, &s.LastActivity, &s.RecentTitles,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
