package commands

const (
	// DefaultHistoryLimit caps 'history list' output.
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit caps 'history search' output.
	DefaultHistorySearchLimit = 20

	// TimestampFormat is the display format for history timestamps.
	TimestampFormat = "2006-01-02 15:04:05"
)
