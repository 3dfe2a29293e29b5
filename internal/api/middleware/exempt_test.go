package middleware

import (
	"net/http"
	"testing"
)

func TestExemptionTable_FirstMatchWins(t *testing.T) {
	table := ExemptionTable{
		{PathPrefix: "/api/user/"},
		{PathPrefix: "/", Method: http.MethodGet},
	}

	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/api/user/signup", true},
		{http.MethodPost, "/api/user/login", true},
		{http.MethodGet, "/api/memos", true},
		{http.MethodGet, "/api/memos/1", true},
		{http.MethodGet, "/health", true},
		{http.MethodPost, "/api/memos", false},
		{http.MethodPut, "/api/memos/1", false},
		{http.MethodDelete, "/api/comment/1", false},
		// The trailing slash keeps the carve-out to the exact namespace.
		{http.MethodPost, "/api/userdata", false},
		{http.MethodPost, "/api/user", false},
	}
	for _, tt := range tests {
		if got := table.Exempt(tt.method, tt.path); got != tt.want {
			t.Fatalf("Exempt(%s %s) = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
}

func TestExemptionTable_EmptyMeansAuthRequired(t *testing.T) {
	var table ExemptionTable
	if table.Exempt(http.MethodGet, "/anything") {
		t.Fatalf("empty table must require authentication everywhere")
	}
}
