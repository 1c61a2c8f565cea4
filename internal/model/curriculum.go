package model

import "time"

// Media types recognized by the catalog.
const (
	MediaTypeMovie       = "movie"
	MediaTypeDocumentary = "documentary"
	MediaTypeSeries      = "series"
	MediaTypeShort       = "short"
	MediaTypeEducational = "educational"
)

// Content classification values.
const (
	ContentEducational   = "educational"
	ContentEntertainment = "entertainment"
)

// Grade is a top-level curriculum scope (school grade level).
type Grade struct {
	ID              int64     `json:"-"`
	GradeNumber     string    `json:"grade"`
	Name            string    `json:"name"`
	CurriculumFocus string    `json:"curriculumFocus"`
	CategoryCount   int       `json:"categoryCount"`
	MediaCount      int       `json:"mediaCount"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// GradeTree is the full Category→Topic→Media hierarchy for one grade.
type GradeTree struct {
	Grade           string     `json:"grade"`
	Name            string     `json:"name"`
	CurriculumFocus string     `json:"curriculumFocus,omitempty"`
	LastUpdated     *time.Time `json:"lastUpdated,omitempty"`
	Categories      []Category `json:"categories"`
}

// Category groups topics beneath a grade. ID is a slug unique within the grade.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Order       int     `json:"order,omitempty"`
	Topics      []Topic `json:"topics"`
}

// Topic groups media beneath a category. ID is a slug unique within the category.
type Topic struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Order       int      `json:"order,omitempty"`
	Subtopics   []string `json:"subtopics"`
	Media       []Media  `json:"media"`
}

// Media is a watchable title cataloged under a topic. ID is the
// database-assigned id and is authoritative for identity when present;
// items that have never touched the database carry ID == 0 and are keyed
// by a derived title+year slug instead.
type Media struct {
	ID             int64       `json:"id,omitempty"`
	Title          string      `json:"title"`
	Type           string      `json:"type"`
	Year           int         `json:"year,omitempty"`
	Rating         string      `json:"rating,omitempty"`
	Runtime        int         `json:"runtime,omitempty"`
	Relevance      string      `json:"relevance,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	AgeAppropriate bool        `json:"ageAppropriate"`
	ContentType    string      `json:"contentType,omitempty"`
	Disabled       bool        `json:"disabled"`
	Links          MediaLinks  `json:"links"`
	LessonPlan     *LessonPlan `json:"lessonPlan,omitempty"`
}

// MediaLinks holds the outbound link set for a media item.
type MediaLinks struct {
	IMDb      string          `json:"imdb,omitempty"`
	YouTube   string          `json:"youtube,omitempty"`
	Streaming []StreamingLink `json:"streaming,omitempty"`
}

// StreamingLink is one streaming-service availability entry.
type StreamingLink struct {
	Service string `json:"service"`
	URL     string `json:"url"`
}

// LessonPlan is a printable lesson outline for a media item. When embedded
// on a Media record it overrides the generated defaults field-by-field.
type LessonPlan struct {
	Objectives          []string `json:"objectives,omitempty"`
	Connection          string   `json:"connection,omitempty"`
	BeforeViewing       []string `json:"preActivities,omitempty"`
	DiscussionQuestions []string `json:"discussionQuestions,omitempty"`
	Extensions          []string `json:"extensions,omitempty"`
}

// DisabledMedia is one row of the moderation queue listing.
type DisabledMedia struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	Disabled     bool   `json:"disabled"`
	TopicName    string `json:"topic_name"`
	CategoryName string `json:"category_name"`
	GradeNumber  string `json:"grade_number"`
	ReportCount  int    `json:"report_count"`
}
