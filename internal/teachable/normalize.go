package teachable

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/sazonlab/campus-bff/internal/progress"
)

// normalizeCourse unwrap a course document regardless of envelope depth
// (course.course, course, or bare) and map it to the canonical model.
// Malformed bodies degrade to an empty course rather than failing hard.
func normalizeCourse(raw []byte) *domain.CourseModel {
	body := unwrapCourse(raw, 2)

	var payload coursePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return &domain.CourseModel{}
	}
	return courseFromPayload(&payload)
}

// unwrapCourse peel "course" wrappers up to depth times
func unwrapCourse(raw []byte, depth int) []byte {
	for i := 0; i < depth; i++ {
		var envelope courseEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Course) == 0 {
			return raw
		}
		raw = envelope.Course
	}
	return raw
}

func courseFromPayload(payload *coursePayload) *domain.CourseModel {
	course := &domain.CourseModel{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
		Published:   payload.IsPublished,
	}
	for _, section := range payload.LectureSections {
		course.Sections = append(course.Sections, sectionFromPayload(&section))
	}
	return course
}

func sectionFromPayload(payload *sectionPayload) domain.SectionModel {
	section := domain.SectionModel{
		ID:       payload.ID,
		Position: payload.Position,
		Name:     payload.Name,
	}
	for _, lecture := range payload.Lectures {
		sectionID := lecture.SectionID
		if sectionID == 0 {
			sectionID = payload.ID
		}
		section.Lectures = append(section.Lectures, domain.LectureModel{
			ID:        lecture.ID,
			SectionID: sectionID,
			Position:  lecture.Position,
			Name:      lecture.Name,
		})
	}
	return section
}

// normalizeProgress map a progress document (nested "progress" wrapper or
// flat) to the canonical snapshot. Completed lecture ids are derived by
// scanning the per-lecture is_completed flags; the total prefers the
// explicit meta.total over the counted lectures. A body without sections
// degrades to an empty snapshot, never an error.
func normalizeProgress(raw []byte) *domain.ProgressSnapshot {
	body := raw
	var envelope progressEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Progress) > 0 {
		body = envelope.Progress
	}

	var payload progressPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return &domain.ProgressSnapshot{}
	}

	var completed []int64
	counted := 0
	for _, section := range payload.LectureSections {
		for _, lecture := range section.Lectures {
			counted++
			if lecture.IsCompleted {
				completed = append(completed, lecture.ID)
			}
		}
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i] < completed[j] })

	total := counted
	if payload.Meta != nil && payload.Meta.Total > 0 {
		total = payload.Meta.Total
	}
	return &domain.ProgressSnapshot{
		Percent:             progress.Percent(len(completed), total),
		CompletedCount:      len(completed),
		TotalCount:          total,
		CompletedLectureIDs: completed,
	}
}

func normalizeLecture(raw []byte) *domain.LectureModel {
	body := raw
	var envelope lectureEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Lecture) > 0 {
		body = envelope.Lecture
	}
	var payload lecturePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return &domain.LectureModel{}
	}
	return &domain.LectureModel{
		ID:        payload.ID,
		SectionID: payload.SectionID,
		Position:  payload.Position,
		Name:      payload.Name,
	}
}

func normalizeVideo(raw []byte) *domain.VideoModel {
	body := raw
	var envelope videoEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Video) > 0 {
		body = envelope.Video
	}
	var payload videoPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return &domain.VideoModel{}
	}
	return &domain.VideoModel{
		ID:              payload.ID,
		LectureID:       payload.LectureID,
		Name:            payload.Name,
		URL:             payload.URL,
		DurationSeconds: payload.DurationSeconds,
	}
}

// normalizeCatalog handle the double-wrapped listing response
// (courses.courses + courses.meta) as well as the flat variant
func normalizeCatalog(raw []byte) ([]*domain.CourseModel, *domain.CatalogMeta) {
	body := raw
	var envelope catalogEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Courses) > 0 {
		// the inner document is either the catalog object or already the array
		var probe catalogPayload
		if err := json.Unmarshal(envelope.Courses, &probe); err == nil && probe.Courses != nil {
			body = envelope.Courses
		}
	}

	var payload catalogPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &domain.CatalogMeta{Page: 1}
	}

	courses := make([]*domain.CourseModel, 0, len(payload.Courses))
	for _, raw := range payload.Courses {
		courses = append(courses, normalizeCourse(raw))
	}
	meta := &domain.CatalogMeta{
		Total:         payload.Meta.Total,
		Page:          payload.Meta.Page,
		From:          payload.Meta.From,
		To:            payload.Meta.To,
		PerPage:       payload.Meta.PerPage,
		NumberOfPages: payload.Meta.NumberOfPages,
	}
	if meta.Page == 0 {
		meta.Page = 1
	}
	return courses, meta
}

// enrollmentItem listing of enrolled courses wraps each entry in an optional
// {course: ...} envelope
func normalizeEnrolled(raw []byte) []*domain.CourseModel {
	var payload struct {
		Courses []json.RawMessage `json:"courses"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	courses := make([]*domain.CourseModel, 0, len(payload.Courses))
	for _, item := range payload.Courses {
		courses = append(courses, normalizeCourse(item))
	}
	return courses
}

func quizFromPayload(payload *quizPayload) *domain.QuizModel {
	quiz := &domain.QuizModel{
		ID:       payload.ID,
		CourseID: payload.TeachableCourseID,
		Title:    payload.Title,
	}
	for _, question := range payload.Questions {
		quiz.Questions = append(quiz.Questions, domain.QuizQuestionModel{
			Prompt:  question.Prompt,
			Options: question.Options,
		})
	}
	return quiz
}

func quizResultFromResponse(response *submitQuizResponse) *domain.QuizResultModel {
	result := &domain.QuizResultModel{
		Score:      response.Score,
		Passed:     response.Passed,
		RetryAfter: time.Duration(response.RetryAfterMs) * time.Millisecond,
	}
	if response.Submission != nil {
		result.Submission = &domain.QuizSubmissionModel{
			ID:      response.Submission.ID,
			UserID:  response.Submission.UserRef,
			QuizID:  response.Submission.QuizRef,
			Score:   response.Submission.Score,
			Passed:  response.Submission.Passed,
			Answers: response.Submission.Answers,
		}
	}
	if response.RetryAvailableAt != "" {
		if at, err := time.Parse(time.RFC3339, response.RetryAvailableAt); err == nil {
			result.RetryAvailableAt = &at
		}
	}
	return result
}

func certificateFromPayload(payload *certificatePayload) *domain.CertificateModel {
	if payload == nil {
		return nil
	}
	return &domain.CertificateModel{
		ID:        payload.ID,
		UserID:    payload.UserRef,
		QuizID:    payload.QuizRef,
		PDFURL:    payload.PDFURL,
		CreatedAt: payload.CreatedAt,
	}
}
