package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonitorErrorMessage(t *testing.T) {
	err := NewFetch("idealista", "unexpected status", stderrors.New("status 503"))
	assert.Equal(t, "[fetch] idealista: unexpected status - status 503", err.Error())

	err = NewValidation("criteria", "min greater than max")
	assert.Equal(t, "[validation] criteria: min greater than max", err.Error())
}

func TestIsType(t *testing.T) {
	base := NewStore("postgres", "insert failed", stderrors.New("connection reset"))
	wrapped := fmt.Errorf("cycle aborted: %w", base)

	assert.True(t, IsType(wrapped, ErrorTypeStore))
	assert.False(t, IsType(wrapped, ErrorTypeFetch))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeStore))
	assert.ErrorIs(t, wrapped, base.Err)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, NewFetch("x", "timeout", nil).IsRetryable())
	assert.False(t, NewRateLimit("x", 500*time.Second).IsRetryable())
	assert.False(t, NewExtraction("x", "missing price", nil).IsRetryable())
	assert.False(t, NewNotification("x", "smtp down", nil).IsRetryable())
}
