package symspell

import "errors"

// Sentinel errors identifying the error kinds the engine raises.
// IoFailure and MalformedCountField are not distinct sentinels: the
// former surfaces as a plain false return from the loader methods (no
// partial state is guaranteed rolled back), the latter is logged and
// recovered from in place rather than propagated.
var (
	// ErrInvalidConfiguration is returned by New when a constructor
	// argument violates the engine's structural invariants (negative
	// maxEditDistance, prefixLength <= maxEditDistance, compactLevel
	// outside [0, 16], negative countThreshold).
	ErrInvalidConfiguration = errors.New("symspell: invalid configuration")

	// ErrArgumentRange is returned when a per-call argument is outside
	// its valid range, e.g. a Lookup maxEditDistance greater than the
	// engine's configured maximum.
	ErrArgumentRange = errors.New("symspell: argument out of range")

	// ErrDeserialization is returned by FromStream/FromBytes on a bad
	// magic header, unsupported version, or truncated stream.
	ErrDeserialization = errors.New("symspell: deserialization failed")
)
