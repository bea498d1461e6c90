package aws

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws/awserr"
)

const (
	ServiceOrganizations = "organizations"
	ServiceCostExplorer  = "costexplorer"
)

// RequestError records which AWS operation failed and on what resource.
// It wraps the SDK error unchanged so callers can still inspect it with
// errors.As.
type RequestError struct {
	Service  string
	Op       string
	Resource string
	Err      error
}

func NewRequestError(service, op, resource string, err error) *RequestError {
	return &RequestError{
		Service:  service,
		Op:       op,
		Resource: resource,
		Err:      err,
	}
}

func (e *RequestError) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("%s %s failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed for %s: %v", e.Service, e.Op, e.Resource, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Code returns the AWS error code of the underlying error, or an empty
// string if it did not come from the service.
func (e *RequestError) Code() string {
	var aerr awserr.Error
	if errors.As(e.Err, &aerr) {
		return aerr.Code()
	}
	return ""
}

// IsRequestError reports whether err was returned by the given operation.
func IsRequestError(err error, op string) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	return reqErr.Op == op
}
