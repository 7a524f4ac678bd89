package certificate

import (
	"context"
	"testing"

	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProgress struct {
	snapshot *domain.ProgressSnapshot
	err      error
}

func (f *fakeProgress) Refresh(ctx context.Context, userID string, courseID int64) (*domain.ProgressSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeProgress) CompleteLecture(ctx context.Context, userID, teachableUserID string, courseID, lectureID int64) (*domain.ProgressSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeProgress) Snapshot(ctx context.Context, userID string, courseID int64) (*domain.ProgressSnapshot, error) {
	return f.snapshot, f.err
}

func (f *fakeProgress) IsCompleted(ctx context.Context, userID string, courseID, lectureID int64) (bool, error) {
	return false, f.err
}

type fakeCertGateway struct {
	status    *domain.CertificateStatus
	generated *domain.CertificateModel
	calls     int
}

func (f *fakeCertGateway) GetCertificateStatus(ctx context.Context, courseID int64, userID string) (*domain.CertificateStatus, error) {
	return f.status, nil
}

func (f *fakeCertGateway) GenerateCertificate(ctx context.Context, courseID int64, userID string) (*domain.CertificateModel, error) {
	f.calls++
	return f.generated, nil
}

func (f *fakeCertGateway) ListCertificates(ctx context.Context, userID string) ([]*domain.CertificateModel, error) {
	return nil, nil
}

func (f *fakeCertGateway) VerifyCertificate(ctx context.Context, certificateID string) (*domain.CertificateVerification, error) {
	return &domain.CertificateVerification{Valid: true}, nil
}

func complete() *fakeProgress {
	return &fakeProgress{snapshot: &domain.ProgressSnapshot{
		Percent: 100, CompletedCount: 3, TotalCount: 3,
	}}
}

func TestGenerate_IssuesWhenCompleteAndPassed(t *testing.T) {
	gateway := &fakeCertGateway{
		status:    &domain.CertificateStatus{Passed: true},
		generated: &domain.CertificateModel{ID: "cert-1", PDFURL: "https://cdn/cert-1.pdf"},
	}
	cu := NewCertificateUseCase(gateway, complete())

	cert, err := cu.Generate(context.Background(), 7, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "cert-1", cert.ID)
	assert.Equal(t, 1, gateway.calls)
}

func TestGenerate_ReturnsExistingCertificate(t *testing.T) {
	existing := &domain.CertificateModel{ID: "cert-0"}
	gateway := &fakeCertGateway{status: &domain.CertificateStatus{Passed: true, Certificate: existing}}
	cu := NewCertificateUseCase(gateway, complete())

	cert, err := cu.Generate(context.Background(), 7, "user-1")
	require.NoError(t, err)
	assert.Same(t, existing, cert)
	assert.Equal(t, 0, gateway.calls)
}

func TestGenerate_RejectsIncompleteCourse(t *testing.T) {
	gateway := &fakeCertGateway{status: &domain.CertificateStatus{Passed: true}}
	progress := &fakeProgress{snapshot: &domain.ProgressSnapshot{
		Percent: 40, CompletedCount: 2, TotalCount: 5,
	}}
	cu := NewCertificateUseCase(gateway, progress)

	_, err := cu.Generate(context.Background(), 7, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotEligible)
	assert.Equal(t, 0, gateway.calls)
}

func TestGenerate_RejectsUnpassedQuiz(t *testing.T) {
	gateway := &fakeCertGateway{status: &domain.CertificateStatus{Passed: false}}
	cu := NewCertificateUseCase(gateway, complete())

	_, err := cu.Generate(context.Background(), 7, "user-1")
	assert.ErrorIs(t, err, domain.ErrQuizNotPassed)
	assert.Equal(t, 0, gateway.calls)
}

func TestGenerate_NotStartedCourse(t *testing.T) {
	gateway := &fakeCertGateway{status: &domain.CertificateStatus{Passed: true}}
	progress := &fakeProgress{
		snapshot: &domain.ProgressSnapshot{},
		err:      domain.ErrProgressNotFound,
	}
	cu := NewCertificateUseCase(gateway, progress)

	_, err := cu.Generate(context.Background(), 7, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotEligible)
}
