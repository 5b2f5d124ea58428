package domain

// Parser defaults
const (
	// DefaultMaxItems bounds the Earley chart of a single docstring.
	DefaultMaxItems = 1 << 20

	// DefaultDedent strips source indentation before parsing.
	DefaultDedent = true
)

// Performance defaults
const (
	// DefaultMaxGoroutines is the default number of files parsed concurrently.
	DefaultMaxGoroutines = 4

	// DefaultTimeoutSeconds is the default timeout in seconds for a whole run.
	DefaultTimeoutSeconds = 300
)

// DefaultIncludePatterns returns the glob patterns that select docstring files.
func DefaultIncludePatterns() []string {
	return []string{"**/*.txt", "**/*.docstring"}
}

// DefaultExcludePatterns returns the glob patterns skipped during collection.
func DefaultExcludePatterns() []string {
	return []string{"**/node_modules/**", "**/.venv/**", "**/venv/**"}
}
