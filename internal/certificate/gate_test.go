package certificate

import (
	"testing"

	"github.com/sazonlab/campus-bff/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanRequestCertificate(t *testing.T) {
	complete := &domain.ProgressSnapshot{Percent: 100, CompletedCount: 3, TotalCount: 3}
	partial := &domain.ProgressSnapshot{Percent: 67, CompletedCount: 2, TotalCount: 3}

	passed := &domain.CertificateStatus{Passed: true}
	failed := &domain.CertificateStatus{Passed: false}

	assert.True(t, CanRequestCertificate(complete, passed))
	assert.False(t, CanRequestCertificate(complete, failed))
	assert.False(t, CanRequestCertificate(partial, passed))
	assert.False(t, CanRequestCertificate(complete, nil))
	assert.False(t, CanRequestCertificate(nil, passed))
}
