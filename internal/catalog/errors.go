package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a collection could not be fetched.
type ErrorKind int

const (
	// NetworkError means the request could not be sent or completed.
	NetworkError ErrorKind = iota
	// HTTPError means the server answered with a non-success status.
	HTTPError
	// ParseError means the body was not a valid collection.
	ParseError
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkError:
		return "network"
	case HTTPError:
		return "http"
	case ParseError:
		return "parse"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FetchError is the only error type returned by FetchCollection and Decode.
type FetchError struct {
	Kind     ErrorKind
	Status   int // set for HTTPError
	Endpoint string
	Err      error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case HTTPError:
		return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.Status)
	case ParseError:
		return fmt.Sprintf("decode %s: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("request %s: %v", e.Endpoint, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError extracts a *FetchError from err. Foreign errors are
// reported as NetworkError so callers always get a classified failure.
func AsFetchError(err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Kind: NetworkError, Err: err}
}
