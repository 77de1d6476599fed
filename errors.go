package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError captures structured error metadata from a SpeleoDB response.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("speleodb: HTTP %d", e.Status)
	}
	return fmt.Sprintf("speleodb: %s (%d)", e.Detail, e.Status)
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	apiErr := APIError{Status: resp.StatusCode}
	if len(data) == 0 {
		apiErr.Detail = resp.Status
		return apiErr
	}
	// DRF reports failures as {"detail": ...}; SpeleoDB endpoints
	// occasionally use {"error": ...} instead.
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		apiErr.Detail = strings.TrimSpace(string(data))
		return apiErr
	}
	apiErr.Detail = payload.Detail
	if apiErr.Detail == "" {
		apiErr.Detail = payload.Error
	}
	if apiErr.Detail == "" {
		apiErr.Detail = resp.Status
	}
	return apiErr
}

// IsNotFound reports whether err is an APIError with HTTP 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is an APIError with HTTP 401.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsLocked reports whether err signals the project mutex is held by
// another user (HTTP 409).
func IsLocked(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
