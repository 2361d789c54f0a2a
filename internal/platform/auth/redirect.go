package auth

import (
	"net/url"
	"strings"
)

// ResolveRedirect clamps a post-login redirect target against the
// application base URL. Relative paths are resolved against the base URL;
// absolute URLs are accepted only when their origin matches the base URL's
// origin; everything else falls back to the base URL. This is an
// open-redirect guard, not an error path.
func ResolveRedirect(target, baseURL string) string {
	if target == "" {
		return baseURL
	}

	if strings.HasPrefix(target, "/") {
		return strings.TrimRight(baseURL, "/") + target
	}

	tu, err := url.Parse(target)
	if err != nil || tu.Scheme == "" || tu.Host == "" {
		return baseURL
	}
	bu, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}

	if tu.Scheme == bu.Scheme && tu.Host == bu.Host {
		return target
	}
	return baseURL
}
