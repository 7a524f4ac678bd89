package certificate

import (
	"context"
	"errors"

	"github.com/sazonlab/campus-bff/internal/domain"
	"go.elastic.co/apm"
)

// CertificateUseCaseImpl certificate issuance gated on completion plus a
// passing quiz record
type CertificateUseCaseImpl struct {
	CertificateGateway domain.CertificateGateway
	ProgressUseCase    domain.ProgressUseCase
}

var _ domain.CertificateUseCase = &CertificateUseCaseImpl{}

// NewCertificateUseCase ...
func NewCertificateUseCase(
	CertificateGateway domain.CertificateGateway,
	ProgressUseCase domain.ProgressUseCase,
) *CertificateUseCaseImpl {
	return &CertificateUseCaseImpl{CertificateGateway, ProgressUseCase}
}

// GetStatus pass/issuance state for the learner on one course
func (cu *CertificateUseCaseImpl) GetStatus(ctx context.Context, courseID int64, userID string) (*domain.CertificateStatus, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CertificateUseCaseImpl.GetStatus", "service")
	defer apmSpan.End()

	return cu.CertificateGateway.GetCertificateStatus(ctx, courseID, userID)
}

// Generate request a certificate, re-checking eligibility at call time.
// An already issued certificate is returned as-is instead of minting twice.
func (cu *CertificateUseCaseImpl) Generate(ctx context.Context, courseID int64, userID string) (*domain.CertificateModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CertificateUseCaseImpl.Generate", "service")
	defer apmSpan.End()

	snapshot, err := cu.ProgressUseCase.Refresh(ctx, userID, courseID)
	if err != nil && !errors.Is(err, domain.ErrProgressNotFound) {
		return nil, err
	}
	status, err := cu.CertificateGateway.GetCertificateStatus(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}
	if status.Certificate != nil {
		return status.Certificate, nil
	}
	if snapshot == nil || !snapshot.Complete() {
		return nil, domain.ErrNotEligible
	}
	if !CanRequestCertificate(snapshot, status) {
		return nil, domain.ErrQuizNotPassed
	}
	return cu.CertificateGateway.GenerateCertificate(ctx, courseID, userID)
}

// List all certificates the learner has earned
func (cu *CertificateUseCaseImpl) List(ctx context.Context, userID string) ([]*domain.CertificateModel, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CertificateUseCaseImpl.List", "service")
	defer apmSpan.End()

	return cu.CertificateGateway.ListCertificates(ctx, userID)
}

// Verify public verification by certificate id
func (cu *CertificateUseCaseImpl) Verify(ctx context.Context, certificateID string) (*domain.CertificateVerification, error) {
	apmSpan, _ := apm.StartSpan(ctx, "CertificateUseCaseImpl.Verify", "service")
	defer apmSpan.End()

	return cu.CertificateGateway.VerifyCertificate(ctx, certificateID)
}
