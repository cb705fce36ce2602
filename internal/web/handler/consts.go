package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath is the prefix of all JSON endpoints.
	APIPath = RootPath + "api"

	// ErrNilACDFatalLogMsg is used if app or deps are nil.
	ErrNilACDFatalLogMsg = "app or handler dependencies are nil"

	// MsgInternalError is the public message of unexpected failures.
	MsgInternalError = "Internal server error"
	// MsgInvalidBody is returned when a request body cannot be parsed.
	MsgInvalidBody = "Invalid request body"
)
