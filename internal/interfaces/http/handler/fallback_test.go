package handler

import (
	"net/http"
	"testing"

	"github.com/Pratham6392/shipment/internal/interfaces/http/dto"
	"github.com/Pratham6392/shipment/tests/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMethodNotAllowed(t *testing.T) {
	tc := testutil.NewTestContext(t)
	tc.SetRequestID("req-405")

	MethodNotAllowed(tc.Context)

	assert.Equal(t, http.StatusMethodNotAllowed, tc.Recorder.Code)
	assert.Equal(t, "POST, OPTIONS", tc.Recorder.Header().Get("Allow"))
	assert.JSONEq(t, `{"error":"Method not allowed","code":"METHOD_NOT_ALLOWED","request_id":"req-405"}`, tc.Recorder.Body.String())
}

func TestMethodNotAllowed_KeepsAllow(t *testing.T) {
	tc := testutil.NewTestContext(t)
	tc.Context.Writer.Header().Set("Allow", "POST")

	MethodNotAllowed(tc.Context)

	assert.Equal(t, "POST", tc.Recorder.Header().Get("Allow"))
}

func TestNotFound(t *testing.T) {
	tc := testutil.NewTestContext(t)
	tc.SetHeader("X-Request-ID", "hdr-404")

	NotFound(tc.Context)

	assert.Equal(t, http.StatusNotFound, tc.Recorder.Code)
	testutil.AssertErrorResponse(t, tc.Recorder, dto.ErrCodeNotFound)
	assert.Equal(t, "hdr-404", testutil.JSONBody(t, tc.Recorder)["request_id"])
}
