package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/matynz/danger/internal/adapter/httpclient"
)

const apiName = "github"

// MapHTTPError maps GitHub API HTTP status codes to typed httpclient.Error.
// Permission and not-found errors must survive this mapping intact: the
// status submitter's fallback path dispatches on them.
func MapHTTPError(statusCode int, body []byte) *httpclient.Error {
	message := parseErrorMessage(statusCode, body)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &httpclient.Error{
			Type:       httpclient.ErrTypePermission,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			API:        apiName,
		}

	case http.StatusNotFound:
		return &httpclient.Error{
			Type:       httpclient.ErrTypeNotFound,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			API:        apiName,
		}

	case http.StatusTooManyRequests:
		return &httpclient.Error{
			Type:       httpclient.ErrTypeRateLimit,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  true,
			API:        apiName,
		}

	case http.StatusUnprocessableEntity:
		return &httpclient.Error{
			Type:       httpclient.ErrTypeInvalidRequest,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			API:        apiName,
		}

	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return &httpclient.Error{
			Type:       httpclient.ErrTypeServiceUnavailable,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  true,
			API:        apiName,
		}

	default:
		return &httpclient.Error{
			Type:       httpclient.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
			API:        apiName,
		}
	}
}

// parseErrorMessage extracts a user-friendly error message from GitHub's response.
func parseErrorMessage(statusCode int, body []byte) string {
	var errResp GitHubErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		// Include body preview for debugging non-JSON responses
		bodyPreview := string(body)
		if len(bodyPreview) > 100 {
			bodyPreview = bodyPreview[:100] + "..."
		}
		if bodyPreview == "" {
			return fmt.Sprintf("HTTP %d", statusCode)
		}
		return fmt.Sprintf("HTTP %d: %s", statusCode, bodyPreview)
	}

	if errResp.Message == "" {
		return fmt.Sprintf("HTTP %d", statusCode)
	}

	// If there are validation errors, append them
	if len(errResp.Errors) > 0 {
		var details []string
		for _, e := range errResp.Errors {
			if e.Message != "" {
				details = append(details, e.Message)
			} else if e.Field != "" {
				details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Code))
			}
		}
		if len(details) > 0 {
			return fmt.Sprintf("%s: %s", errResp.Message, strings.Join(details, "; "))
		}
	}

	return errResp.Message
}
