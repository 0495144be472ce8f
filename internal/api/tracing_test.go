package api

import "testing"

func TestJobIDFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/v1/cards/abc123/start", "abc123"},
		{"/v1/cards/abc123", "abc123"},
		{"/v1/cards", ""},
		{"/v1/cards/", ""},
		{"/healthz", ""},
	}
	for _, tc := range cases {
		if got := jobIDFromPath(tc.path); got != tc.want {
			t.Errorf("jobIDFromPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
