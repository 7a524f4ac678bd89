package teachable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sazonlab/campus-bff/internal/domain"
	"go.uber.org/zap"
)

// Config upstream connection options. Timeouts and retries live here at the
// transport boundary, the core engine never waits on its own.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	RetryCount int
}

// Client Teachable-style course API client. Implements every upstream
// gateway the use cases depend on; raw payloads are normalized before they
// leave this package.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

var _ domain.CourseGateway = &Client{}
var _ domain.ProgressGateway = &Client{}
var _ domain.QuizGateway = &Client{}
var _ domain.CertificateGateway = &Client{}

// NewClient ...
func NewClient(cfg *Config, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		httpClient.SetHeader("apiKey", cfg.APIKey)
	}
	return &Client{http: httpClient, logger: logger}
}

// ListCourses published course catalog with pagination meta
func (c *Client) ListCourses(ctx context.Context, query *domain.CatalogQuery) ([]*domain.CourseModel, *domain.CatalogMeta, error) {
	request := c.http.R().SetContext(ctx)
	if query != nil {
		if query.Page > 0 {
			request.SetQueryParam("page", fmt.Sprintf("%d", query.Page))
		}
		if query.PerPage > 0 {
			request.SetQueryParam("per", fmt.Sprintf("%d", query.PerPage))
		}
	}
	response, err := request.Get("/courses")
	if err != nil {
		return nil, nil, c.fail("ListCourses", err)
	}
	if !response.IsSuccess() {
		return nil, nil, c.fail("ListCourses", statusError(response))
	}
	courses, meta := normalizeCatalog(response.Body())
	return courses, meta, nil
}

// GetEnrolledCourses courses the learner is enrolled in
func (c *Client) GetEnrolledCourses(ctx context.Context, userID string) ([]*domain.CourseModel, error) {
	response, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/courses/enrolled/%s", userID))
	if err != nil {
		return nil, c.fail("GetEnrolledCourses", err)
	}
	if !response.IsSuccess() {
		return nil, c.fail("GetEnrolledCourses", statusError(response))
	}
	return normalizeEnrolled(response.Body()), nil
}

// GetCourse canonical course document
func (c *Client) GetCourse(ctx context.Context, courseID int64) (*domain.CourseModel, error) {
	response, err := c.http.R().SetContext(ctx).Get(fmt.Sprintf("/courses/%d", courseID))
	if err != nil {
		return nil, c.fail("GetCourse", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNoSuchCourse
	}
	if !response.IsSuccess() {
		return nil, c.fail("GetCourse", statusError(response))
	}
	return normalizeCourse(response.Body()), nil
}

// GetLecture single lecture document
func (c *Client) GetLecture(ctx context.Context, courseID, lectureID int64) (*domain.LectureModel, error) {
	response, err := c.http.R().SetContext(ctx).
		Get(fmt.Sprintf("/courses/%d/lectures/%d", courseID, lectureID))
	if err != nil {
		return nil, c.fail("GetLecture", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNoSuchLecture
	}
	if !response.IsSuccess() {
		return nil, c.fail("GetLecture", statusError(response))
	}
	return normalizeLecture(response.Body()), nil
}

// GetVideo playback descriptor for a lecture's video
func (c *Client) GetVideo(ctx context.Context, courseID, lectureID, videoID int64) (*domain.VideoModel, error) {
	response, err := c.http.R().SetContext(ctx).
		Get(fmt.Sprintf("/courses/%d/lectures/%d/videos/%d", courseID, lectureID, videoID))
	if err != nil {
		return nil, c.fail("GetVideo", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNoSuchVideo
	}
	if !response.IsSuccess() {
		return nil, c.fail("GetVideo", statusError(response))
	}
	return normalizeVideo(response.Body()), nil
}

// Enroll enroll the learner into a course
func (c *Client) Enroll(ctx context.Context, courseID int64, userID string) error {
	response, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"userId": userID}).
		Post(fmt.Sprintf("/courses/%d/enroll", courseID))
	if err != nil {
		return c.fail("Enroll", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return domain.ErrNoSuchCourse
	}
	if !response.IsSuccess() {
		return c.fail("Enroll", statusError(response))
	}
	return nil
}

// FetchProgress progress document for one learner on one course. A 404 is
// the benign "never started" state, not a failure.
func (c *Client) FetchProgress(ctx context.Context, courseID int64, userID string) (*domain.ProgressSnapshot, error) {
	response, err := c.http.R().SetContext(ctx).
		Get(fmt.Sprintf("/courses/%d/progress/%s", courseID, userID))
	if err != nil {
		return nil, c.fail("FetchProgress", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrProgressNotFound
	}
	if !response.IsSuccess() {
		return nil, c.fail("FetchProgress", statusError(response))
	}
	return normalizeProgress(response.Body()), nil
}

// CompleteLecture submit a completion fact upstream, success is the only
// payload contract
func (c *Client) CompleteLecture(ctx context.Context, courseID, lectureID int64, input *domain.CompleteLectureInput) error {
	response, err := c.http.R().SetContext(ctx).
		SetBody(input).
		Post(fmt.Sprintf("/courses/%d/lectures/%d/complete", courseID, lectureID))
	if err != nil {
		return c.fail("CompleteLecture", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return domain.ErrNoSuchLecture
	}
	if !response.IsSuccess() {
		return c.fail("CompleteLecture", statusError(response))
	}
	return nil
}

// GetQuizzes quizzes attached to a course
func (c *Client) GetQuizzes(ctx context.Context, courseID int64) ([]*domain.QuizModel, error) {
	response, err := c.http.R().SetContext(ctx).
		SetResult(&quizzesResponse{}).
		Get(fmt.Sprintf("/courses/%d/quizzes", courseID))
	if err != nil {
		return nil, c.fail("GetQuizzes", err)
	}
	if !response.IsSuccess() {
		return nil, c.fail("GetQuizzes", statusError(response))
	}
	payload := response.Result().(*quizzesResponse)
	quizzes := make([]*domain.QuizModel, 0, len(payload.Quizzes))
	for i := range payload.Quizzes {
		quizzes = append(quizzes, quizFromPayload(&payload.Quizzes[i]))
	}
	return quizzes, nil
}

// GetQuiz quiz content in its public form
func (c *Client) GetQuiz(ctx context.Context, courseID int64, quizID string) (*domain.QuizModel, error) {
	response, err := c.http.R().SetContext(ctx).
		SetResult(&quizResponse{}).
		Get(fmt.Sprintf("/courses/%d/quizzes/%s", courseID, quizID))
	if err != nil {
		return nil, c.fail("GetQuiz", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNoSuchQuiz
	}
	if !response.IsSuccess() {
		return nil, c.fail("GetQuiz", statusError(response))
	}
	payload := response.Result().(*quizResponse)
	return quizFromPayload(&payload.Quiz), nil
}

// SubmitQuiz forward answers for upstream grading
func (c *Client) SubmitQuiz(ctx context.Context, courseID int64, quizID string, input *domain.SubmitQuizInput) (*domain.QuizResultModel, error) {
	response, err := c.http.R().SetContext(ctx).
		SetBody(input).
		SetResult(&submitQuizResponse{}).
		Post(fmt.Sprintf("/courses/%d/quizzes/%s/submit", courseID, quizID))
	if err != nil {
		return nil, c.fail("SubmitQuiz", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNoSuchQuiz
	}
	// a throttled retry comes back as a client error carrying the retry window
	if !response.IsSuccess() && response.StatusCode() != http.StatusTooManyRequests {
		return nil, c.fail("SubmitQuiz", statusError(response))
	}
	payload := response.Result().(*submitQuizResponse)
	if response.StatusCode() == http.StatusTooManyRequests {
		var throttled submitQuizResponse
		if err := json.Unmarshal(response.Body(), &throttled); err == nil {
			payload = &throttled
		}
	}
	return quizResultFromResponse(payload), nil
}

// GetCertificateStatus pass/issuance state for one learner on one course
func (c *Client) GetCertificateStatus(ctx context.Context, courseID int64, userID string) (*domain.CertificateStatus, error) {
	response, err := c.http.R().SetContext(ctx).
		SetQueryParam("userId", userID).
		SetResult(&certificateStatusResponse{}).
		Get(fmt.Sprintf("/courses/%d/status", courseID))
	if err != nil {
		return nil, c.fail("GetCertificateStatus", err)
	}
	if !response.IsSuccess() {
		return nil, c.fail("GetCertificateStatus", statusError(response))
	}
	payload := response.Result().(*certificateStatusResponse)
	return &domain.CertificateStatus{
		Passed:      payload.Passed,
		Certificate: certificateFromPayload(payload.Certificate),
	}, nil
}

// GenerateCertificate mint a certificate upstream
func (c *Client) GenerateCertificate(ctx context.Context, courseID int64, userID string) (*domain.CertificateModel, error) {
	response, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"userId": userID}).
		SetResult(&generateCertificateResponse{}).
		Post(fmt.Sprintf("/courses/%d/certificate", courseID))
	if err != nil {
		return nil, c.fail("GenerateCertificate", err)
	}
	if !response.IsSuccess() {
		return nil, c.fail("GenerateCertificate", statusError(response))
	}
	payload := response.Result().(*generateCertificateResponse)
	return &domain.CertificateModel{
		ID:     payload.CertificateID,
		UserID: userID,
		PDFURL: payload.PDFURL,
	}, nil
}

// ListCertificates all certificates a learner has earned
func (c *Client) ListCertificates(ctx context.Context, userID string) ([]*domain.CertificateModel, error) {
	response, err := c.http.R().SetContext(ctx).
		SetResult(&certificatesResponse{}).
		Get(fmt.Sprintf("/courses/user/%s", userID))
	if err != nil {
		return nil, c.fail("ListCertificates", err)
	}
	if !response.IsSuccess() {
		return nil, c.fail("ListCertificates", statusError(response))
	}
	payload := response.Result().(*certificatesResponse)
	certificates := make([]*domain.CertificateModel, 0, len(payload.Certificates))
	for i := range payload.Certificates {
		certificates = append(certificates, certificateFromPayload(&payload.Certificates[i]))
	}
	return certificates, nil
}

// VerifyCertificate public verification by certificate id
func (c *Client) VerifyCertificate(ctx context.Context, certificateID string) (*domain.CertificateVerification, error) {
	response, err := c.http.R().SetContext(ctx).
		SetResult(&verifyCertificateResponse{}).
		Get(fmt.Sprintf("/courses/verify/%s", certificateID))
	if err != nil {
		return nil, c.fail("VerifyCertificate", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNoSuchCertificate
	}
	if !response.IsSuccess() {
		return nil, c.fail("VerifyCertificate", statusError(response))
	}
	payload := response.Result().(*verifyCertificateResponse)
	return &domain.CertificateVerification{
		Valid:       payload.Valid,
		Certificate: certificateFromPayload(payload.Certificate),
	}, nil
}

// Ping upstream reachability probe for the liveness endpoint
func (c *Client) Ping(ctx context.Context) error {
	response, err := c.http.R().SetContext(ctx).Get("/courses")
	if err != nil {
		return c.fail("Ping", err)
	}
	if response.IsError() && response.StatusCode() >= http.StatusInternalServerError {
		return c.fail("Ping", statusError(response))
	}
	return nil
}

func (c *Client) fail(op string, err error) error {
	if c.logger != nil {
		c.logger.Debug("Upstream call failed", zap.String("upstream.op", op), zap.Error(err))
	}
	return domain.NewTransportError(op, err)
}

func statusError(response *resty.Response) error {
	return fmt.Errorf("upstream returned %d: %s", response.StatusCode(), http.StatusText(response.StatusCode()))
}
