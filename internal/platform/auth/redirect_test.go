package auth

import "testing"

func TestResolveRedirect(t *testing.T) {
	cases := []struct {
		name   string
		target string
		base   string
		want   string
	}{
		{"relative path", "/dashboard", "https://x.test", "https://x.test/dashboard"},
		{"same origin absolute", "https://x.test/foo", "https://x.test", "https://x.test/foo"},
		{"foreign origin", "https://evil.test/foo", "https://x.test", "https://x.test"},
		{"empty target", "", "https://x.test", "https://x.test"},
		{"scheme mismatch", "http://x.test/foo", "https://x.test", "https://x.test"},
		{"port mismatch", "https://x.test:8443/foo", "https://x.test", "https://x.test"},
		{"schemeless garbage", "javascript:alert(1)", "https://x.test", "https://x.test"},
		{"relative with query", "/dashboard?year=2024", "https://x.test", "https://x.test/dashboard?year=2024"},
		{"base with trailing slash", "/dashboard", "https://x.test/", "https://x.test/dashboard"},
	}

	for _, tc := range cases {
		got := ResolveRedirect(tc.target, tc.base)
		if got != tc.want {
			t.Errorf("%s: ResolveRedirect(%q, %q) = %q, want %q", tc.name, tc.target, tc.base, got, tc.want)
		}
	}
}
