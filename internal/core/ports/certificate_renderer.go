package ports

import "github.com/captable/captable-api/internal/core/domain"

// CertificateRenderer renders a share certificate document for one issuance.
// Implementations are pure: same inputs, same layout, no state.
type CertificateRenderer interface {
	Render(sh *domain.Shareholder, iss *domain.ShareIssuance) ([]byte, error)
}
