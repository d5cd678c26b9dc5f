package github

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matynz/danger/internal/adapter/httpclient"
)

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantType   httpclient.ErrorType
		wantRetry  bool
	}{
		{
			name:       "401 unauthorized",
			statusCode: 401,
			body:       `{"message": "Bad credentials"}`,
			wantType:   httpclient.ErrTypePermission,
			wantRetry:  false,
		},
		{
			name:       "403 forbidden",
			statusCode: 403,
			body:       `{"message": "Resource not accessible by integration"}`,
			wantType:   httpclient.ErrTypePermission,
			wantRetry:  false,
		},
		{
			name:       "404 not found",
			statusCode: 404,
			body:       `{"message": "Not Found"}`,
			wantType:   httpclient.ErrTypeNotFound,
			wantRetry:  false,
		},
		{
			name:       "429 rate limited",
			statusCode: 429,
			body:       `{"message": "API rate limit exceeded"}`,
			wantType:   httpclient.ErrTypeRateLimit,
			wantRetry:  true,
		},
		{
			name:       "422 validation failed",
			statusCode: 422,
			body:       `{"message": "Validation Failed"}`,
			wantType:   httpclient.ErrTypeInvalidRequest,
			wantRetry:  false,
		},
		{
			name:       "503 unavailable",
			statusCode: 503,
			body:       "",
			wantType:   httpclient.ErrTypeServiceUnavailable,
			wantRetry:  true,
		},
		{
			name:       "teapot is unknown",
			statusCode: 418,
			body:       "I'm a teapot",
			wantType:   httpclient.ErrTypeUnknown,
			wantRetry:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(tt.statusCode, []byte(tt.body))

			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, tt.wantRetry, err.Retryable)
			assert.Equal(t, tt.statusCode, err.StatusCode)
			assert.Equal(t, "github", err.API)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	t.Run("plain message", func(t *testing.T) {
		msg := parseErrorMessage(404, []byte(`{"message": "Not Found"}`))
		assert.Equal(t, "Not Found", msg)
	})

	t.Run("validation details appended", func(t *testing.T) {
		body := `{"message": "Validation Failed", "errors": [{"resource": "Status", "field": "state", "code": "invalid"}]}`
		msg := parseErrorMessage(422, []byte(body))
		assert.Equal(t, "Validation Failed: state: invalid", msg)
	})

	t.Run("non-JSON body included as preview", func(t *testing.T) {
		msg := parseErrorMessage(502, []byte("upstream connect error"))
		assert.Equal(t, "HTTP 502: upstream connect error", msg)
	})

	t.Run("empty body", func(t *testing.T) {
		msg := parseErrorMessage(500, nil)
		assert.Equal(t, "HTTP 500", msg)
	})
}
