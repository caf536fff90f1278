package service

import (
	"fmt"
	"time"
)

// Cached projections live under these keys. Issuance listings are scoped by
// role and identity: a shared key would leak one shareholder's data to
// another.
const (
	shareholdersCacheKey   = "shareholders_list"
	adminIssuancesCacheKey = "issuances_list_admin"

	cacheTTL = 5 * time.Minute
)

// issuancesCacheKey returns the per-shareholder listing key, scoped by the
// owning user id (not shareholder id).
func issuancesCacheKey(userID int64) string {
	return fmt.Sprintf("issuances_list_%d", userID)
}
