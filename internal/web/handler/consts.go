package handler

const (
	// RootPath is the root path of the route group.
	RootPath = "/"

	// RouterRootPath is the root path inside a fiber route group.
	RouterRootPath = ""

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// StatusKey is the JSON field carrying "ok" or "error" in responses.
	StatusKey = "status"
	// MessageKey is the JSON field carrying a human-readable error message.
	MessageKey = "message"
	// RedirectKey is the JSON field telling the SPA where to navigate.
	RedirectKey = "redirect"

	// StatusOK marks a successful response.
	StatusOK = "ok"
	// StatusError marks a failed response.
	StatusError = "error"

	// ErrInvalidID is the message for malformed or non-positive id parameters.
	ErrInvalidID = "Invalid id"
	// ErrInvalidBody is the message for unparseable request bodies.
	ErrInvalidBody = "Invalid request body"
	// ErrValidationPrefix prefixes validation error messages shown to the user.
	ErrValidationPrefix = "Validation failed: "
)
