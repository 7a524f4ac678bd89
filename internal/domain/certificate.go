package domain

import "context"

// CertificateModel issued certificate record
type CertificateModel struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	QuizID    string `json:"quiz_id"`
	PDFURL    string `json:"pdf_url"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CertificateStatus pass/issuance state for one learner on one course
type CertificateStatus struct {
	Passed      bool              `json:"passed"`
	Certificate *CertificateModel `json:"certificate"`
}

// CertificateVerification public verification result
type CertificateVerification struct {
	Valid       bool              `json:"valid"`
	Certificate *CertificateModel `json:"certificate,omitempty"`
}

// CertificateGateway upstream certificate API boundary
type CertificateGateway interface {
	GetCertificateStatus(ctx context.Context, courseID int64, userID string) (*CertificateStatus, error)
	GenerateCertificate(ctx context.Context, courseID int64, userID string) (*CertificateModel, error)
	ListCertificates(ctx context.Context, userID string) ([]*CertificateModel, error)
	VerifyCertificate(ctx context.Context, certificateID string) (*CertificateVerification, error)
}

// CertificateUseCase certificate operations gated on completion and quiz pass
type CertificateUseCase interface {
	GetStatus(ctx context.Context, courseID int64, userID string) (*CertificateStatus, error)
	Generate(ctx context.Context, courseID int64, userID string) (*CertificateModel, error)
	List(ctx context.Context, userID string) ([]*CertificateModel, error)
	Verify(ctx context.Context, certificateID string) (*CertificateVerification, error)
}
