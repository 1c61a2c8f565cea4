package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andytrench/history-media-hunter/internal/model"
)

type GradeRepo struct {
	pool *pgxpool.Pool
}

func NewGradeRepo(pool *pgxpool.Pool) *GradeRepo {
	return &GradeRepo{pool: pool}
}

// ListGrades returns all grades with category and media counts.
func (r *GradeRepo) ListGrades(ctx context.Context) ([]model.Grade, error) {
	query := `
		SELECT g.id, g.grade_number, g.name, g.curriculum_focus, g.last_updated,
		       COUNT(DISTINCT c.id) AS category_count,
		       COUNT(DISTINCT m.id) AS media_count
		FROM grades g
		LEFT JOIN categories c ON c.grade_id = g.id
		LEFT JOIN topics t ON t.category_id = c.id
		LEFT JOIN media m ON m.topic_id = t.id
		GROUP BY g.id
		ORDER BY g.grade_number::int`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		var g model.Grade
		err := rows.Scan(
			&g.ID, &g.GradeNumber, &g.Name, &g.CurriculumFocus, &g.LastUpdated,
			&g.CategoryCount, &g.MediaCount,
		)
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}

// GetTree assembles the full Category→Topic→Media tree for one grade
// number. Returns pgx.ErrNoRows if the grade doesn't exist.
func (r *GradeRepo) GetTree(ctx context.Context, gradeNum string) (*model.GradeTree, error) {
	var (
		gradeID int64
		tree    model.GradeTree
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, grade_number, name, curriculum_focus, last_updated
		FROM grades WHERE grade_number = $1`, gradeNum).Scan(
		&gradeID, &tree.Grade, &tree.Name, &tree.CurriculumFocus, &tree.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	categories, catIndex, err := r.loadCategories(ctx, gradeID)
	if err != nil {
		return nil, err
	}

	topicIndex, err := r.loadTopics(ctx, gradeID, categories, catIndex)
	if err != nil {
		return nil, err
	}

	if err := r.loadSubtopics(ctx, gradeID, categories, topicIndex); err != nil {
		return nil, err
	}
	if err := r.loadMedia(ctx, gradeID, categories, topicIndex); err != nil {
		return nil, err
	}

	tree.Categories = categories
	if tree.Categories == nil {
		tree.Categories = []model.Category{}
	}
	return &tree, nil
}

// topicRef locates a topic slice slot so subtopic and media rows can be
// appended in place.
type topicRef struct {
	cat   int
	topic int
}

func (r *GradeRepo) loadCategories(ctx context.Context, gradeID int64) ([]model.Category, map[int64]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, name, COALESCE(description, ''), sort_order
		FROM categories
		WHERE grade_id = $1
		ORDER BY sort_order`, gradeID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var categories []model.Category
	index := make(map[int64]int)
	for rows.Next() {
		var (
			id  int64
			cat model.Category
		)
		if err := rows.Scan(&id, &cat.ID, &cat.Name, &cat.Description, &cat.Order); err != nil {
			return nil, nil, err
		}
		cat.Topics = []model.Topic{}
		index[id] = len(categories)
		categories = append(categories, cat)
	}
	return categories, index, rows.Err()
}

func (r *GradeRepo) loadTopics(ctx context.Context, gradeID int64, categories []model.Category, catIndex map[int64]int) (map[int64]topicRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.category_id, t.slug, t.name, COALESCE(t.description, ''), t.sort_order
		FROM topics t
		JOIN categories c ON c.id = t.category_id
		WHERE c.grade_id = $1
		ORDER BY t.sort_order`, gradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topicIndex := make(map[int64]topicRef)
	for rows.Next() {
		var (
			id, categoryID int64
			topic          model.Topic
		)
		if err := rows.Scan(&id, &categoryID, &topic.ID, &topic.Name, &topic.Description, &topic.Order); err != nil {
			return nil, err
		}
		topic.Subtopics = []string{}
		topic.Media = []model.Media{}

		ci, ok := catIndex[categoryID]
		if !ok {
			continue
		}
		topicIndex[id] = topicRef{cat: ci, topic: len(categories[ci].Topics)}
		categories[ci].Topics = append(categories[ci].Topics, topic)
	}
	return topicIndex, rows.Err()
}

func (r *GradeRepo) loadSubtopics(ctx context.Context, gradeID int64, categories []model.Category, topicIndex map[int64]topicRef) error {
	rows, err := r.pool.Query(ctx, `
		SELECT s.topic_id, s.name
		FROM subtopics s
		JOIN topics t ON t.id = s.topic_id
		JOIN categories c ON c.id = t.category_id
		WHERE c.grade_id = $1
		ORDER BY s.sort_order`, gradeID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			topicID int64
			name    string
		)
		if err := rows.Scan(&topicID, &name); err != nil {
			return err
		}
		if ref, ok := topicIndex[topicID]; ok {
			topic := &categories[ref.cat].Topics[ref.topic]
			topic.Subtopics = append(topic.Subtopics, name)
		}
	}
	return rows.Err()
}

func (r *GradeRepo) loadMedia(ctx context.Context, gradeID int64, categories []model.Category, topicIndex map[int64]topicRef) error {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.topic_id, m.title, m.type, COALESCE(m.year, 0),
		       COALESCE(m.rating, ''), COALESCE(m.runtime, 0),
		       COALESCE(m.relevance, ''), COALESCE(m.notes, ''),
		       m.age_appropriate, COALESCE(m.content_type, ''),
		       COALESCE(m.disabled, false), m.links, m.lesson_plan
		FROM media m
		JOIN topics t ON t.id = m.topic_id
		JOIN categories c ON c.id = t.category_id
		WHERE c.grade_id = $1
		ORDER BY m.title`, gradeID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			topicID    int64
			m          model.Media
			linksJSON  []byte
			lessonJSON []byte
		)
		err := rows.Scan(
			&m.ID, &topicID, &m.Title, &m.Type, &m.Year,
			&m.Rating, &m.Runtime, &m.Relevance, &m.Notes,
			&m.AgeAppropriate, &m.ContentType, &m.Disabled,
			&linksJSON, &lessonJSON,
		)
		if err != nil {
			return err
		}
		if len(linksJSON) > 0 {
			if err := json.Unmarshal(linksJSON, &m.Links); err != nil {
				return err
			}
		}
		if len(lessonJSON) > 0 {
			var plan model.LessonPlan
			if err := json.Unmarshal(lessonJSON, &plan); err != nil {
				return err
			}
			m.LessonPlan = &plan
		}

		if ref, ok := topicIndex[topicID]; ok {
			topic := &categories[ref.cat].Topics[ref.topic]
			topic.Media = append(topic.Media, m)
		}
	}
	return rows.Err()
}

// SetDisabled flips a media item's disabled flag.
func (r *GradeRepo) SetDisabled(ctx context.Context, mediaID int64, disabled bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE media SET disabled = $2 WHERE id = $1`, mediaID, disabled)
	return err
}

// GradeNumberForMedia returns the grade number a media item belongs to,
// used for cache invalidation after moderation writes.
func (r *GradeRepo) GradeNumberForMedia(ctx context.Context, mediaID int64) (string, error) {
	var gradeNum string
	err := r.pool.QueryRow(ctx, `
		SELECT g.grade_number
		FROM media m
		JOIN topics t ON t.id = m.topic_id
		JOIN categories c ON c.id = t.category_id
		JOIN grades g ON g.id = c.grade_id
		WHERE m.id = $1`, mediaID).Scan(&gradeNum)
	return gradeNum, err
}

// ListDisabled returns the moderation queue of currently disabled media.
func (r *GradeRepo) ListDisabled(ctx context.Context) ([]model.DisabledMedia, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.title, m.type, m.disabled,
		       t.name, c.name, g.grade_number,
		       (SELECT COUNT(*) FROM media_reports r WHERE r.media_id = m.id)
		FROM media m
		JOIN topics t ON t.id = m.topic_id
		JOIN categories c ON c.id = t.category_id
		JOIN grades g ON g.id = c.grade_id
		WHERE m.disabled = true
		ORDER BY m.title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.DisabledMedia
	for rows.Next() {
		var d model.DisabledMedia
		err := rows.Scan(
			&d.ID, &d.Title, &d.Type, &d.Disabled,
			&d.TopicName, &d.CategoryName, &d.GradeNumber, &d.ReportCount,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
