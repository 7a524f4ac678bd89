package teachable

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(&Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, nil)
}

func TestGetCourse_NormalizesWrappedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/7", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"course":{"course":{"id":7,"name":"Costeo","lecture_sections":[
			{"id":1,"position":1,"lectures":[{"id":10,"position":1},{"id":11,"position":2}]}
		]}}}`))
	})

	course, err := client.GetCourse(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), course.ID)
	require.Len(t, course.Sections, 1)
	assert.Len(t, course.Sections[0].Lectures, 2)
}

func TestGetCourse_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetCourse(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrNoSuchCourse)
	assert.False(t, domain.IsTransportError(err))
}

func TestFetchProgress_Classification(t *testing.T) {
	t.Run("not found is benign", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := client.FetchProgress(context.Background(), 7, "user-1")
		assert.ErrorIs(t, err, domain.ErrProgressNotFound)
		assert.False(t, domain.IsTransportError(err))
	})

	t.Run("server error is transport failure", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.FetchProgress(context.Background(), 7, "user-1")
		assert.True(t, domain.IsTransportError(err))
	})

	t.Run("success normalizes flags", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/courses/7/progress/user-1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"progress":{"lecture_sections":[
				{"id":1,"lectures":[{"id":10,"is_completed":true},{"id":11,"is_completed":false}]}
			],"meta":{"total":4}}}`))
		})
		snapshot, err := client.FetchProgress(context.Background(), 7, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []int64{10}, snapshot.CompletedLectureIDs)
		assert.Equal(t, 4, snapshot.TotalCount)
		assert.Equal(t, 25, snapshot.Percent)
	})
}

func TestGetVideo_UnwrapsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/7/lectures/10/videos/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"video":{"id":3,"lecture_id":10,"name":"Intro","url":"https://cdn.example/v3.mp4","duration_seconds":312}}`))
	})

	video, err := client.GetVideo(context.Background(), 7, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), video.ID)
	assert.Equal(t, int64(10), video.LectureID)
	assert.Equal(t, "https://cdn.example/v3.mp4", video.URL)
	assert.Equal(t, 312, video.DurationSeconds)
}

func TestGetVideo_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetVideo(context.Background(), 7, 10, 3)
	assert.ErrorIs(t, err, domain.ErrNoSuchVideo)
	assert.False(t, domain.IsTransportError(err))
}

func TestCompleteLecture_SendsBody(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok"}`))
	})

	err := client.CompleteLecture(context.Background(), 7, 10, &domain.CompleteLectureInput{
		UserID:          "user-1",
		TeachableUserID: "t-99",
	})
	require.NoError(t, err)
	assert.Equal(t, "/courses/7/lectures/10/complete", gotPath)
}

func TestSubmitQuiz_ParsesResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"score":80,"passed":true,"submission":{"_id":"s1","score":80,"passed":true}}`))
	})

	result, err := client.SubmitQuiz(context.Background(), 7, "q1", &domain.SubmitQuizInput{
		UserID:  "user-1",
		Answers: []int{0, 1},
	})
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, 80, result.Score)
	require.NotNil(t, result.Submission)
	assert.Equal(t, "s1", result.Submission.ID)
}

func TestSubmitQuiz_ThrottledRetry(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"score":0,"passed":false,"retryAfterMs":30000,"retryAvailableAt":"2026-03-14T12:30:00Z"}`))
	})

	result, err := client.SubmitQuiz(context.Background(), 7, "q1", &domain.SubmitQuizInput{UserID: "user-1"})
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, int64(30000), result.RetryAfter.Milliseconds())
	require.NotNil(t, result.RetryAvailableAt)
}

func TestGetCertificateStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/7/status", r.URL.Path)
		assert.Equal(t, "user-1", r.URL.Query().Get("userId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok","passed":true,"certificate":{"_id":"c1","pdfUrl":"https://cdn/c1.pdf"}}`))
	})

	status, err := client.GetCertificateStatus(context.Background(), 7, "user-1")
	require.NoError(t, err)
	assert.True(t, status.Passed)
	require.NotNil(t, status.Certificate)
	assert.Equal(t, "c1", status.Certificate.ID)
}

func TestListCourses_PaginationParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "6", r.URL.Query().Get("per"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"courses":{"courses":[{"id":1}],"meta":{"total":7,"page":2}}}`))
	})

	courses, meta, err := client.ListCourses(context.Background(), &domain.CatalogQuery{Page: 2, PerPage: 6})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, 7, meta.Total)
	assert.Equal(t, 2, meta.Page)
}
