package ports

// IssuanceNotification carries the data needed to tell a shareholder that
// shares were issued to them.
type IssuanceNotification struct {
	Email          string
	ShareholderID  int64
	NumberOfShares int64
}

// Notifier is a fire-and-forget side channel. Enqueue must never block the
// calling use case and must never surface a delivery failure.
type Notifier interface {
	Enqueue(n IssuanceNotification)
}
