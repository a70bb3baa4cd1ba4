package session

import (
	"testing"
	"time"
)

func TestExpiredAt(t *testing.T) {
	ttl := 24 * time.Hour
	login := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := &AdminSession{LoginTime: login}

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"just logged in", login, false},
		{"one second before ttl", login.Add(ttl - time.Second), false},
		{"exactly at ttl", login.Add(ttl), false},
		{"one second past ttl", login.Add(ttl + time.Second), true},
		{"long past ttl", login.Add(48 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ExpiredAt(tt.now, ttl); got != tt.expired {
				t.Errorf("ExpiredAt(%v) = %v, want %v", tt.now, got, tt.expired)
			}
		})
	}
}
