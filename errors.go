package huffpack

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "huffpack: " + string(e) }

var (
	// ErrCorrupt is wrapped by every error caused by a malformed container.
	ErrCorrupt error = Error("container is corrupted")

	// ErrIO is wrapped by every error caused by an unreadable source or an
	// unwritable destination.
	ErrIO error = Error("I/O failure")

	// ErrNoCode is returned by Pack when a byte has no code in the table.
	ErrNoCode error = Error("byte value has no code")

	// ErrInputTooLarge is returned when some byte value occurs more often
	// than the container's widest count field can record.
	ErrInputTooLarge error = Error("input too large: a byte value occurs more than 2^32-1 times")
)
