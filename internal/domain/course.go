package domain

import "context"

// Scope traversal scope used when resolving the next lecture
type Scope string

const (
	// ScopeGlobal traverse the flattened course sequence
	ScopeGlobal Scope = "global"
	// ScopeSection traverse the current section only, no spill into the next one
	ScopeSection Scope = "section"
)

// LectureModel a single playable unit inside a section
type LectureModel struct {
	ID        int64  `json:"id"`
	SectionID int64  `json:"lecture_section_id"`
	Position  int    `json:"position"`
	Name      string `json:"name"`
}

// SectionModel ordered group of lectures
type SectionModel struct {
	ID       int64          `json:"id"`
	Position int            `json:"position"`
	Name     string         `json:"name"`
	Lectures []LectureModel `json:"lectures"`
}

// CourseModel canonical course document, sections keep upstream order
type CourseModel struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ImageURL    string         `json:"image_url"`
	Published   bool           `json:"is_published"`
	Sections    []SectionModel `json:"lecture_sections"`
}

// VideoModel playback descriptor attached to a lecture
type VideoModel struct {
	ID              int64  `json:"id"`
	LectureID       int64  `json:"lecture_id"`
	Name            string `json:"name"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds"`
}

// CatalogMeta pagination meta returned with course listings
type CatalogMeta struct {
	Total         int `json:"total"`
	Page          int `json:"page"`
	From          int `json:"from"`
	To            int `json:"to"`
	PerPage       int `json:"per_page"`
	NumberOfPages int `json:"number_of_pages"`
}

// CatalogQuery listing parameters forwarded upstream
type CatalogQuery struct {
	Page    int
	PerPage int
}

// CourseGateway upstream course API boundary
type CourseGateway interface {
	ListCourses(ctx context.Context, query *CatalogQuery) ([]*CourseModel, *CatalogMeta, error)
	GetEnrolledCourses(ctx context.Context, userID string) ([]*CourseModel, error)
	GetCourse(ctx context.Context, courseID int64) (*CourseModel, error)
	GetLecture(ctx context.Context, courseID, lectureID int64) (*LectureModel, error)
	GetVideo(ctx context.Context, courseID, lectureID, videoID int64) (*VideoModel, error)
	Enroll(ctx context.Context, courseID int64, userID string) error
}

// CourseUseCase catalog and course document operations
type CourseUseCase interface {
	ListCourses(ctx context.Context, query *CatalogQuery) ([]*CourseModel, *CatalogMeta, error)
	GetEnrolledCourses(ctx context.Context, userID string) ([]*CourseModel, error)
	GetCourse(ctx context.Context, courseID int64) (*CourseModel, error)
	GetLecture(ctx context.Context, courseID, lectureID int64) (*LectureModel, error)
	GetVideo(ctx context.Context, courseID, lectureID, videoID int64) (*VideoModel, error)
	Enroll(ctx context.Context, courseID int64, userID string) error
	NextLecture(ctx context.Context, courseID, currentLectureID int64, scope Scope) (*LectureModel, bool, error)
}
