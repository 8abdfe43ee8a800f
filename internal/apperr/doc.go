// Package apperr is the error mapping layer. Domain and infrastructure
// failures are created here as go-errors envelopes carrying a category, an
// HTTP status and a stable machine-readable code; Resolve turns any error
// into the uniform wire body exactly once, at the transport boundary.
package apperr
