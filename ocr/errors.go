package ocr

import "github.com/casevault/ocrbatch/errx"

// Error registry for the OCR client
var (
	ocrErrors = errx.NewRegistry("OCR")

	// ErrCallFailed is the terminal failure after the retry budget is spent
	// (or after a permanent, non-auth rejection).
	ErrCallFailed = ocrErrors.Register("CALL_FAILED", errx.TypeExternal, "OCR endpoint call failed")

	// ErrAuthFailed fails fast: retrying cannot change an authentication outcome.
	ErrAuthFailed = ocrErrors.Register("AUTH_FAILED", errx.TypeAuthorization, "OCR endpoint rejected the API key")

	// ErrTransient marks a retryable failure (5xx, timeout, connection error,
	// finish_reason other than "stop", empty completion).
	ErrTransient = ocrErrors.Register("TRANSIENT", errx.TypeUnavailable, "Transient OCR endpoint failure")

	// ErrBadResponse marks a structurally invalid response (no choices).
	ErrBadResponse = ocrErrors.Register("BAD_RESPONSE", errx.TypeExternal, "Malformed OCR endpoint response")
)

// IsRetryable reports whether the client may retry after this error.
func IsRetryable(err error) bool {
	return errx.IsCode(err, ErrTransient)
}

// IsAuthFailure reports whether the endpoint rejected the credentials.
func IsAuthFailure(err error) bool {
	return errx.IsCode(err, ErrAuthFailed)
}
