package types

import (
	"errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Status classifies the result of a backend call so callers can decide
// between skipping a resource and aborting the run.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusPermissionDenied
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusPermissionDenied:
		return "permission_denied"
	default:
		return "failed"
	}
}

// Classify maps an error from a Spanner or BigQuery call onto a Status.
// Spanner errors carry gRPC codes; BigQuery REST errors surface as
// *googleapi.Error with an HTTP status code.
func Classify(err error) Status {
	if err == nil {
		return StatusOK
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 404:
			return StatusNotFound
		case 403:
			return StatusPermissionDenied
		}
		return StatusFailed
	}

	switch status.Code(err) {
	case codes.NotFound:
		return StatusNotFound
	case codes.PermissionDenied:
		return StatusPermissionDenied
	}
	return StatusFailed
}
