package httperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.Len(t, env.Error, 1)
	return env
}

func TestWriteTypedError(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, NewNotAllowed("user already added as friends"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusMethodNotAllowed, env.Error[0].Status)
	assert.Equal(t, "Not allowed", env.Error[0].StatusMessage)
}

func TestWriteWrappedError(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, fmt.Errorf("loading user: %w", NewNotFound("user ID not found")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Not found", env.Error[0].StatusMessage)
}

func TestWriteUnclassifiedErrorDefaultsTo500(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, errors.New("something broke"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Internal server error", env.Error[0].StatusMessage)
}

func TestInvalidTokenStatus(t *testing.T) {
	err := NewInvalidToken("no value in auth header")
	assert.Equal(t, 498, err.Status)
	assert.True(t, IsStatus(err, StatusInvalidToken))
	assert.False(t, IsStatus(errors.New("plain"), StatusInvalidToken))
}

func TestErrorStringIncludesDetails(t *testing.T) {
	assert.Equal(t, "Unauthorized: password does not match", NewUnauthorized("password does not match").Error())
	assert.Equal(t, "Not found", NewNotFound("").Error())
}
