package s3

import (
	"errors"
	"net/http"
	"strings"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// errorCode returns the API error code carried by err, if any.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// statusCode returns the HTTP status of the response behind err, or 0.
func statusCode(err error) int {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}

// IsBucketAlreadyOwnedByYou checks if the error indicates the bucket exists and is owned by us.
func IsBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	return errorCode(err) == "BucketAlreadyOwnedByYou"
}

// IsBucketAlreadyExists reports that the name is taken by another account.
func IsBucketAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	var bae *types.BucketAlreadyExists
	if errors.As(err, &bae) {
		return true
	}

	return errorCode(err) == "BucketAlreadyExists"
}

// IsInvalidBucketName reports that S3 rejected the bucket name.
func IsInvalidBucketName(err error) bool {
	return err != nil && errorCode(err) == "InvalidBucketName"
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	switch errorCode(err) {
	case "NotFound", "NoSuchBucket", "404":
		return true
	}
	return statusCode(err) == http.StatusNotFound
}

// IsForbidden reports a 403 from HeadBucket or any AccessDenied answer.
func IsForbidden(err error) bool {
	if err == nil {
		return false
	}

	switch errorCode(err) {
	case "Forbidden", "AccessDenied", "403":
		return true
	}
	return statusCode(err) == http.StatusForbidden
}

// IsAccessDenied reports a permission failure on a mutating call.
func IsAccessDenied(err error) bool {
	return IsForbidden(err)
}

// credentialErrorCodes are returned when the signing identity itself is bad.
var credentialErrorCodes = map[string]bool{
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
	"InvalidToken":          true,
	"TokenRefreshRequired":  true,
}

// IsCredentialsError reports missing, invalid, or expired credentials.
func IsCredentialsError(err error) bool {
	if err == nil {
		return false
	}
	if credentialErrorCodes[errorCode(err)] {
		return true
	}
	// The SDK signer wraps provider failures without an exported type.
	return strings.Contains(err.Error(), "failed to retrieve credentials")
}
