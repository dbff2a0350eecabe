package models

import "time"

// Session is the server-side half of a bearer token. A token is only valid
// while its session row exists; logout deletes the row.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
