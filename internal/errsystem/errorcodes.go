package errsystem

var (
	ErrBadPattern = errorType{
		Code:    "PF-0001",
		Message: "Failed to parse a glob pattern",
	}
	ErrChangeSource = errorType{
		Code:    "PF-0002",
		Message: "Failed to enumerate candidate paths",
	}
	ErrEmit = errorType{
		Code:    "PF-0003",
		Message: "Failed to write the result",
	}
	ErrConfig = errorType{
		Code:    "PF-0004",
		Message: "Invalid configuration",
	}
)
