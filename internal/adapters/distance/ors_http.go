package distance

import (
	"context"
	"errors"
	"facility-distance-service/internal/domain"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type httpStatusError struct {
	Code int
	Body string
}

func (o *ORSDistanceProvider) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes req once. Responses with status >= 400 are returned as *httpStatusError.
func (o *ORSDistanceProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// classifyORSError maps an HTTP failure onto the failure taxonomy.
// Authentication and server errors are transport failures; other client
// errors mean ORS rejected the request itself.
func classifyORSError(err error) *domain.ResolveError {
	var he *httpStatusError
	if !errors.As(err, &he) {
		return &domain.ResolveError{Kind: domain.FailureTransport, Err: err}
	}

	switch {
	case he.Code == http.StatusUnauthorized, he.Code == http.StatusForbidden, he.Code >= 500:
		return &domain.ResolveError{Kind: domain.FailureTransport, Status: fmt.Sprintf("HTTP_%d", he.Code), Err: err}
	default:
		return &domain.ResolveError{Kind: domain.FailureMatrix, Status: fmt.Sprintf("HTTP_%d", he.Code), Err: err}
	}
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}
