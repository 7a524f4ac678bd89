package course

import (
	"sort"

	"github.com/sazonlab/campus-bff/internal/domain"
)

// GlobalSequence flatten a course into its full lecture order: sections sorted
// by position, lectures sorted by position inside each section, concatenated.
// Sorting is stable so ties keep the upstream order and repeated calls are
// deterministic. The result is a derived view, never stored.
func GlobalSequence(course *domain.CourseModel) []domain.LectureModel {
	if course == nil || len(course.Sections) == 0 {
		return nil
	}

	sections := make([]domain.SectionModel, len(course.Sections))
	copy(sections, course.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Position < sections[j].Position
	})

	var sequence []domain.LectureModel
	for _, section := range sections {
		sequence = append(sequence, sortedLectures(section)...)
	}
	return sequence
}

// NextLecture resolve the lecture following currentLectureID under the given
// scope. The second return value is false when there is no next lecture:
// end of scope, unknown lecture id or a course without sections all look the
// same to the caller. Pure function, the caller supplies a fresh course document.
func NextLecture(course *domain.CourseModel, currentLectureID int64, scope domain.Scope) (*domain.LectureModel, bool) {
	if scope == domain.ScopeSection {
		return nextInSection(course, currentLectureID)
	}
	return nextInSequence(GlobalSequence(course), currentLectureID)
}

// TotalLectures count lectures across all sections
func TotalLectures(course *domain.CourseModel) int {
	if course == nil {
		return 0
	}
	total := 0
	for _, section := range course.Sections {
		total += len(section.Lectures)
	}
	return total
}

func sortedLectures(section domain.SectionModel) []domain.LectureModel {
	lectures := make([]domain.LectureModel, len(section.Lectures))
	copy(lectures, section.Lectures)
	sort.SliceStable(lectures, func(i, j int) bool {
		return lectures[i].Position < lectures[j].Position
	})
	return lectures
}

func nextInSequence(sequence []domain.LectureModel, currentLectureID int64) (*domain.LectureModel, bool) {
	for i, lecture := range sequence {
		if lecture.ID == currentLectureID {
			if i+1 < len(sequence) {
				next := sequence[i+1]
				return &next, true
			}
			return nil, false
		}
	}
	return nil, false
}

// nextInSection stays inside the section holding the current lecture.
// Reaching the section's last lecture yields "no next" even when further
// sections follow, the asymmetry with the global scope is intentional.
func nextInSection(course *domain.CourseModel, currentLectureID int64) (*domain.LectureModel, bool) {
	if course == nil {
		return nil, false
	}
	for _, section := range course.Sections {
		for _, lecture := range section.Lectures {
			if lecture.ID == currentLectureID {
				return nextInSequence(sortedLectures(section), currentLectureID)
			}
		}
	}
	return nil, false
}
