package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents network or HTTP status failures while retrieving a page
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeRateLimit represents a marketplace asking us to back off
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeExtraction represents a single candidate that could not be turned into a listing
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeNotification represents a failed delivery to a notification channel
	ErrorTypeNotification ErrorType = "notification"
	// ErrorTypeStore represents a persistence failure in the dedup store
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// MonitorError represents an error raised somewhere in the monitoring pipeline
type MonitorError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *MonitorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *MonitorError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable on the next cycle
func (e *MonitorError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch:
		return true
	case ErrorTypeRateLimit:
		return false
	case ErrorTypeExtraction:
		return false
	default:
		return false
	}
}

// IsType reports whether err, or anything it wraps, is a MonitorError of the given type
func IsType(err error, errType ErrorType) bool {
	var me *MonitorError
	if stderrors.As(err, &me) {
		return me.Type == errType
	}
	return false
}

// New creates a new MonitorError
func New(errType ErrorType, source, message string, err error) *MonitorError {
	return &MonitorError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(source, message string, err error) *MonitorError {
	return New(ErrorTypeFetch, source, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(source string, duration time.Duration) *MonitorError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, source, message, nil)
}

// NewExtraction creates a new extraction error
func NewExtraction(source, message string, err error) *MonitorError {
	return New(ErrorTypeExtraction, source, message, err)
}

// NewNotification creates a new notification error
func NewNotification(source, message string, err error) *MonitorError {
	return New(ErrorTypeNotification, source, message, err)
}

// NewStore creates a new store error
func NewStore(source, message string, err error) *MonitorError {
	return New(ErrorTypeStore, source, message, err)
}

// NewValidation creates a new validation error
func NewValidation(source, message string) *MonitorError {
	return New(ErrorTypeValidation, source, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *MonitorError {
	return New(ErrorTypeConfiguration, "", message, err)
}
