package certificate

import "github.com/sazonlab/campus-bff/internal/domain"

// CanRequestCertificate derived eligibility: the course must be fully
// completed and the quiz must have been passed. The pass/fail record is
// supplied by the upstream grader, this gate never grades anything.
func CanRequestCertificate(snapshot *domain.ProgressSnapshot, status *domain.CertificateStatus) bool {
	if snapshot == nil || !snapshot.Complete() {
		return false
	}
	return status != nil && status.Passed
}
