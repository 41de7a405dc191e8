package hubuum

import (
	"fmt"
	"net/url"
	"strings"
)

// BaseURL is a validated, normalized API base address. It always uses the
// http or https scheme and its string form ends with exactly one trailing
// slash, so endpoint paths can be appended directly.
type BaseURL struct {
	u *url.URL
}

// ParseBaseURL validates and normalizes a base URL. Schemes other than http
// and https are rejected, as are URLs that cannot serve as a base (opaque or
// hostless URLs).
func ParseBaseURL(raw string) (BaseURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return BaseURL{}, fmt.Errorf("parsing base URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return BaseURL{}, &InvalidSchemeError{Scheme: u.Scheme}
	}

	if u.Opaque != "" || u.Host == "" {
		return BaseURL{}, fmt.Errorf("%w: %s", ErrURLNotBase, u.String())
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return BaseURL{u: u}, nil
}

// String returns the normalized URL, always with a single trailing slash.
func (b BaseURL) String() string {
	if b.u == nil {
		return ""
	}

	return b.u.String()
}

// JoinPath appends an endpoint path to the base, collapsing the leading
// slash so the base's trailing slash is the only separator.
func (b BaseURL) JoinPath(path string) string {
	return b.String() + strings.TrimPrefix(path, "/")
}
