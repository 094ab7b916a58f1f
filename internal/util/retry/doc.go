// Package retry polls an operation with bounded exponential backoff.
//
// [WithExponentialBackoff] is used to wait out eventual consistency, for
// example until a freshly created bucket answers HeadBucket. Errors wrapped
// with [Fatal] stop the loop immediately.
package retry
