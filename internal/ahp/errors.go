package ahp

import "errors"

// ErrInvalidInput marks caller errors: duplicate criteria, non-positive or
// conflicting judgments, or a degenerate matrix that would divide by zero.
// Wrap checks go through errors.Is.
var ErrInvalidInput = errors.New("ahp: invalid input")
