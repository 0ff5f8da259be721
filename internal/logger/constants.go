package logger

// Default configuration values.
const (
	// DefaultLevel is the default logging level.
	DefaultLevel = InfoLevel
	// DefaultEncoding is the default log encoding format.
	DefaultEncoding = "console"
)

// DefaultOutputPaths keeps stdout free for previews and reports.
var DefaultOutputPaths = []string{"stderr"}

// Common field keys.
const (
	fieldComponent = "component"
	fieldError     = "error"
	fieldRunID     = "run_id"
)
