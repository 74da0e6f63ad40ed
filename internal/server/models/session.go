package models

import "time"

// Session is a capability token row. A token that exists and is unexpired
// authenticates exactly the referenced user.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
