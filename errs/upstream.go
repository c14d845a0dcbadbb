package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party API & LLM Specific Errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUpstreamFailure    = errors.New("upstream request failed")
	ErrUpstreamShape      = errors.New("upstream response did not match the expected shape")
	ErrEmptyCompletion    = errors.New("upstream returned no content")
)

func NewServiceUnavailableError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s is not configured", service),
	}
}

func NewUpstreamError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpstreamFailure,
		Details:    fmt.Sprintf("%s failed", operation),
		Cause:      cause,
	}
}

func NewUpstreamShapeError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUpstreamShape,
		Details:    fmt.Sprintf("%s returned an unusable response", operation),
		Cause:      cause,
	}
}

func IsServiceUnavailableError(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

func IsUpstreamShapeError(err error) bool {
	return errors.Is(err, ErrUpstreamShape)
}
