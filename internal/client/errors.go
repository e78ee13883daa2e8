package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/khapa77/gong-dullabha/pkg/models"
)

// APIError is returned for any non-2xx response. Message holds the
// server-provided error text when there is one.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: HTTP %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// checkResponse turns an error response into an *APIError.
// The ESP32 answers some failures with text/plain, which is used verbatim.
func checkResponse(op string, resp *resty.Response) error {
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{Op: op, Status: resp.StatusCode()}
	if body, ok := resp.Error().(*models.ErrorResponse); ok && body != nil && body.Error != "" {
		apiErr.Message = body.Error
	} else if strings.HasPrefix(resp.Header().Get("Content-Type"), "text/plain") {
		apiErr.Message = strings.TrimSpace(resp.String())
	}
	return apiErr
}
