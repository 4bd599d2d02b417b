package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{Validation("debtor_name", "debtor name is required"), http.StatusBadRequest},
		{BadRequest("invalid request body"), http.StatusBadRequest},
		{InvalidAction("DEMOLISH"), http.StatusBadRequest},
		{InvalidDocumentType("EVICTION_NOTICE"), http.StatusBadRequest},
		{NotFound("case"), http.StatusNotFound},
		{Conflict("case was modified concurrently"), http.StatusConflict},
		{InvalidTransition("SEND_LBA2", "NEW"), http.StatusConflict},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.status, GetHTTPStatus(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := NotFound("case")

	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeConflict))
	assert.False(t, Is(fmt.Errorf("plain"), CodeNotFound))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, CodeInternalError, "failed to get case")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to get case")
}

func TestGetHTTPStatusPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(fmt.Errorf("plain")))
}
