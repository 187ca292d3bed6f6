package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase represents a test case for HTTP handler testing.
type HTTPTestCase struct {
	Name    string
	Method  string
	Path    string
	Body    interface{}
	RawBody string
	Headers map[string]string
	// ExpectedStatus is checked when non-zero
	ExpectedStatus int
	Validate       func(t *testing.T, w *httptest.ResponseRecorder)
}

// RunHTTPTestCases runs a slice of HTTP test cases against an engine.
func RunHTTPTestCases(t *testing.T, engine *gin.Engine, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, engine, tc)
		})
	}
}

// RunHTTPTestCase serves a single HTTP test case through engine.
func RunHTTPTestCase(t *testing.T, engine *gin.Engine, tc HTTPTestCase) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch {
	case tc.RawBody != "":
		body = bytes.NewBufferString(tc.RawBody)
	case tc.Body != nil:
		body = ToJSONReader(t, tc.Body)
	}

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, tc.Path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "Unexpected status code: %s", w.Body.String())
	}
	if tc.Validate != nil {
		tc.Validate(t, w)
	}
	return w
}

// JSONBody parses the recorded body as a JSON object.
func JSONBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err, "Failed to parse JSON response: %s", w.Body.String())
	return result
}

// AssertErrorResponse asserts the response is a JSON error body carrying
// the given code and a non-empty error message.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedCode string) {
	t.Helper()

	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	resp := JSONBody(t, w)
	msg, ok := resp["error"].(string)
	require.True(t, ok, "Expected error string in response")
	assert.NotEmpty(t, msg)
	assert.Equal(t, expectedCode, resp["code"], "Unexpected error code")
}

// AssertPDFResponse asserts the response carries a PDF document.
func AssertPDFResponse(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	require.Greater(t, w.Body.Len(), 0)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")), "body is not a PDF")
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v interface{}) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
