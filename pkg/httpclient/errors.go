package httpclient

import (
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/SVO0808/SVO-STUDIO/pkg/errors"
)

// ParseResponseError reads the body of a non-2xx HTTP response from an
// upstream service and translates it into an appropriate AppError. The
// upstream catalog returns plain JSON without a structured error envelope, so
// only the status code and a body snippet are preserved.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10)) // 4 KB snippet
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(serviceName, "resource")
	case resp.StatusCode >= 500:
		return apperrors.Unavailable(fmt.Sprintf("%s returned status %d", serviceName, resp.StatusCode))
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(fmt.Sprintf("%s rejected request: %s", serviceName, string(bodyBytes)))
	default:
		return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, string(bodyBytes))
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
