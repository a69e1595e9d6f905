package provision

import (
	"errors"

	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
)

// isConflict reports whether err means the permission statement already
// exists. A conflict on AddPermission is a rerun, not a failure.
func isConflict(err error) bool {
	var conflict *lambdatypes.ResourceConflictException
	return errors.As(err, &conflict)
}

// isPolicyNotFound reports whether GetPolicy failed because the function
// has no resource policy yet.
func isPolicyNotFound(err error) bool {
	var notFound *lambdatypes.ResourceNotFoundException
	return errors.As(err, &notFound)
}

// errorCode extracts the provider error code for logging, separating
// throttling and conflicts from genuine failures in the operator log.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
