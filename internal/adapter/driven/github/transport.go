package github

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/prcelebration/internal/domain/port/driven"
)

// mediaTypeV3 is the versioned accept header the notification endpoints are
// consumed with.
const mediaTypeV3 = "application/vnd.github.v3+json"

// tokenTransport stamps every outgoing request with the token-scheme
// Authorization header and the v3 Accept header.
type tokenTransport struct {
	base  http.RoundTripper
	token string
}

func newTokenTransport(base http.RoundTripper, token string) *tokenTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &tokenTransport{base: base, token: token}
}

// RoundTrip clones the request before mutating headers, as required by the
// http.RoundTripper contract.
func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "token "+t.token)
	r.Header.Set("Accept", mediaTypeV3)
	return t.base.RoundTrip(r)
}

// revalidateTransport sits above the cache and marks every request with
// Cache-Control: max-age=0. httpcache then treats stored responses as stale
// and revalidates them with If-None-Match instead of answering from memory,
// so each poll sees current notification and pull request state while
// unchanged resources still cost a 304.
type revalidateTransport struct {
	base http.RoundTripper
}

func (t *revalidateTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Cache-Control", "max-age=0")
	return t.base.RoundTrip(r)
}

// classifyError maps go-github and transport errors onto the driven error
// taxonomy. The original error is always kept as the cause.
func classifyError(resp *gh.Response, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &driven.RateLimitError{Reset: rateErr.Rate.Reset.Time, Err: err}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var reset time.Time
		if retryAfter := abuseErr.GetRetryAfter(); retryAfter > 0 {
			reset = time.Now().Add(retryAfter)
		}
		return &driven.RateLimitError{Reset: reset, Err: err}
	}

	var twoFactorErr *gh.TwoFactorAuthError
	if errors.As(err, &twoFactorErr) {
		return &driven.AuthError{StatusCode: http.StatusUnauthorized, Err: err}
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		status := respErr.Response.StatusCode
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return &driven.AuthError{StatusCode: status, Err: err}
		}
		return &driven.HTTPError{StatusCode: status, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &driven.MalformedResponseError{Err: err}
	}

	if resp != nil && resp.Response != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return &driven.MalformedResponseError{Err: err}
		}
		return &driven.HTTPError{StatusCode: resp.StatusCode, Err: err}
	}

	return &driven.NetworkError{Err: err}
}
