package dynamics

import "errors"

// Sentinel errors for state construction and the update rules. All are
// raised before any mutation is committed; a caller seeing one of these has
// the state exactly as it was before the failing call.
var (
	// ErrUnsupportedDistribution indicates an unrecognized attitude
	// distribution name.
	ErrUnsupportedDistribution = errors.New("dynamics: unsupported distribution")

	// ErrInvalidWeight indicates a non-finite connection weight.
	ErrInvalidWeight = errors.New("dynamics: weight must be finite")

	// ErrInvalidConnectionMatrix indicates a connection entry outside [0,1]
	// or non-finite; connection strengths are Bernoulli probabilities.
	ErrInvalidConnectionMatrix = errors.New("dynamics: connection matrix entries must be finite and in [0,1]")

	// ErrNonFiniteInput indicates NaN or Inf in a matrix or vector handed
	// to an update rule.
	ErrNonFiniteInput = errors.New("dynamics: non-finite input")

	// ErrUnknownRule indicates an unrecognized update rule tag.
	ErrUnknownRule = errors.New("dynamics: unknown update rule")
)
