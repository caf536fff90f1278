package domain

// Shareholder is the equity-holder profile attached 1:1 to a shareholder-role
// User via UserID.
type Shareholder struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
