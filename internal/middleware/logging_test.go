package middleware

import "testing"

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/users/alice", "/api/users/:name"},
		{"/api/users/Dan Smith", "/api/users/:name"},
		{"/api/users", "/api/users"},
		{"/api/users/", "/api/users/"},
		{"/api/rankings", "/api/rankings"},
		{"/health/ready", "/health/ready"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.path); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
