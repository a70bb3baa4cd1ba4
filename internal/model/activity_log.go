package model

import "time"

// ActivityLogEntry is one row of the append-only admin activity trail.
// Entries are never updated or deleted through the API.
type ActivityLogEntry struct {
	ID        int       `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
