package teachable

import "encoding/json"

// Raw wire shapes as upstream sends them. The API wraps the same entities in
// varying envelopes depending on the endpoint (and sometimes double-wraps),
// so each shape is decoded permissively here and normalized before anything
// leaves this package.

type lecturePayload struct {
	ID          int64  `json:"id"`
	SectionID   int64  `json:"lecture_section_id"`
	Position    int    `json:"position"`
	Name        string `json:"name"`
	IsCompleted bool   `json:"is_completed"`
}

type sectionPayload struct {
	ID       int64            `json:"id"`
	Position int              `json:"position"`
	Name     string           `json:"name"`
	Lectures []lecturePayload `json:"lectures"`
}

type coursePayload struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	ImageURL        string           `json:"image_url"`
	IsPublished     bool             `json:"is_published"`
	LectureSections []sectionPayload `json:"lecture_sections"`
}

// courseEnvelope single wrapper, may itself hold another wrapped course
type courseEnvelope struct {
	Course json.RawMessage `json:"course"`
}

type catalogMetaPayload struct {
	Total         int `json:"total"`
	Page          int `json:"page"`
	From          int `json:"from"`
	To            int `json:"to"`
	PerPage       int `json:"per_page"`
	NumberOfPages int `json:"number_of_pages"`
}

type catalogPayload struct {
	Courses []json.RawMessage  `json:"courses"`
	Meta    catalogMetaPayload `json:"meta"`
}

// catalogEnvelope the listing endpoint wraps the catalog in another
// "courses" layer
type catalogEnvelope struct {
	Courses json.RawMessage `json:"courses"`
}

type progressMetaPayload struct {
	Total int `json:"total"`
}

// progressPayload flat progress document: per-lecture completion flags plus
// an optional total
type progressPayload struct {
	LectureSections []sectionPayload     `json:"lecture_sections"`
	Meta            *progressMetaPayload `json:"meta"`
}

// progressEnvelope nested variant wrapping the flat document
type progressEnvelope struct {
	Progress json.RawMessage `json:"progress"`
}

type lectureEnvelope struct {
	Lecture json.RawMessage `json:"lecture"`
}

type videoPayload struct {
	ID              int64  `json:"id"`
	LectureID       int64  `json:"lecture_id"`
	Name            string `json:"name"`
	URL             string `json:"url"`
	DurationSeconds int    `json:"duration_seconds"`
}

type videoEnvelope struct {
	Video json.RawMessage `json:"video"`
}

type quizQuestionPayload struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type quizPayload struct {
	ID                string                `json:"_id"`
	TeachableCourseID int64                 `json:"teachableCourseId"`
	Title             string                `json:"title"`
	Questions         []quizQuestionPayload `json:"questions"`
}

type quizzesResponse struct {
	Quizzes []quizPayload `json:"quizzes"`
}

type quizResponse struct {
	Quiz quizPayload `json:"quiz"`
}

type quizSubmissionPayload struct {
	ID      string `json:"_id"`
	UserRef string `json:"userRef"`
	QuizRef string `json:"quizRef"`
	Answers []int  `json:"answers"`
	Score   int    `json:"score"`
	Passed  bool   `json:"passed"`
}

type submitQuizResponse struct {
	Score            int                    `json:"score"`
	Passed           bool                   `json:"passed"`
	Submission       *quizSubmissionPayload `json:"submission"`
	RetryAfterMs     int64                  `json:"retryAfterMs"`
	RetryAvailableAt string                 `json:"retryAvailableAt"`
}

type certificatePayload struct {
	ID        string `json:"_id"`
	UserRef   string `json:"userRef"`
	QuizRef   string `json:"quizRef"`
	PDFURL    string `json:"pdfUrl"`
	CreatedAt string `json:"createdAt"`
}

type certificateStatusResponse struct {
	Message     string              `json:"message"`
	Passed      bool                `json:"passed"`
	Certificate *certificatePayload `json:"certificate"`
}

type generateCertificateResponse struct {
	Message       string `json:"message"`
	CertificateID string `json:"certificateId"`
	PDFURL        string `json:"pdfUrl"`
}

type certificatesResponse struct {
	Certificates []certificatePayload `json:"certificates"`
}

type verifyCertificateResponse struct {
	Valid       bool                `json:"valid"`
	Certificate *certificatePayload `json:"certificate"`
}
