package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJsonResponse(t *testing.T) {
	recorder := httptest.NewRecorder()

	WriteJsonResponse(context.Background(), recorder,
		map[string]string{HeaderRequestID: "req-1"},
		map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusNotFound,
			"message":    "order not found",
		},
	)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, HeaderValueJson, recorder.Header().Get(HeaderContentType))
	assert.Equal(t, "req-1", recorder.Header().Get(HeaderRequestID))

	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, "order not found", body["message"])
}

func TestWriteJsonResponseDefaultsToOk(t *testing.T) {
	recorder := httptest.NewRecorder()

	WriteJsonResponse(context.Background(), recorder, map[string]string{},
		map[string]interface{}{"status": "success"})

	assert.Equal(t, http.StatusOK, recorder.Code)
}
