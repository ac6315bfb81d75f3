// Package errors provides coded errors shared by the service and HTTP layers.
//
// Every failure the auth flows report carries an ErrorCode. The transport
// layer maps the code to an HTTP status with MapErrorCodeToHTTPStatus and
// copies Details (for example remaining_seconds on ACCOUNT_LOCKED) into the
// response body. Errors without a code are treated as INTERNAL_ERROR.
package errors
