package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PerformRequest executes an HTTP request against a gin engine and
// returns the recorded response.
func PerformRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// PerformRawRequest executes a request with a pre-built body, needed for
// multipart uploads where the caller sets the content type itself.
func PerformRawRequest(t *testing.T, engine *gin.Engine, method, path string, body io.Reader, contentType string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// APIResponse mirrors the standard response envelope for decoding in tests.
// Status carries the HTTP status code alongside the decoded body.
type APIResponse struct {
	Status  int             `json:"-"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

// APIError mirrors the error section of the response envelope
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// DecodeResponse unmarshals the response envelope from a recorder
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to decode response body: %s", w.Body.String())
	resp.Status = w.Code
	return resp
}

// AssertSuccess checks the status code and decodes a successful envelope,
// unmarshalling the data section into out when out is non-nil.
func AssertSuccess(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, out interface{}) {
	t.Helper()

	require.Equal(t, wantStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	resp := DecodeResponse(t, w)
	assert.True(t, resp.Success, "expected success envelope, body: %s", w.Body.String())
	// An empty data section is legal for responses carrying no payload
	if out != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, out), "failed to decode data section")
	}
}

// AssertError checks the status code and the error code of a failed envelope
func AssertError(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()

	require.Equal(t, wantStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	resp := DecodeResponse(t, w)
	assert.False(t, resp.Success, "expected error envelope, body: %s", w.Body.String())
	require.NotNil(t, resp.Error, "error envelope missing error section")
	assert.Equal(t, wantCode, resp.Error.Code)
}

// AuthHeader builds the Authorization header map for a bearer token
func AuthHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
