// Package testutil holds fixtures and HTTP helpers shared by the label
// service tests: fake carrier data, gin contexts and response assertions.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestContext is a gin context bound to a response recorder.
type TestContext struct {
	Context  *gin.Context
	Recorder *httptest.ResponseRecorder
	Engine   *gin.Engine
}

// NewTestContext returns a context for GET /.
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()
	return NewRequestContext(t, http.MethodGet, "/", "")
}

// NewRequestContext returns a context for method and path. A non-empty
// body is sent as JSON.
func NewRequestContext(t *testing.T, method, path, body string) *TestContext {
	t.Helper()

	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	if body == "" {
		c.Request = httptest.NewRequest(method, path, nil)
	} else {
		c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	}

	return &TestContext{Context: c, Recorder: w, Engine: engine}
}

// SetRequestID stores id under the key the RequestID middleware uses.
func (tc *TestContext) SetRequestID(id string) {
	tc.Context.Set("request_id", id)
}

// SetHeader sets a request header.
func (tc *TestContext) SetHeader(key, value string) {
	tc.Context.Request.Header.Set(key, value)
}

// labelNamespace keeps test document IDs apart from real ones
var labelNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("shiplabel:test"))

// NewTestUUID returns the same document ID for the same seed.
func NewTestUUID(seed string) uuid.UUID {
	return uuid.NewSHA1(labelNamespace, []byte(seed))
}
