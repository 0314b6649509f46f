package engine

import stderrors "errors"

// errorIs bridges to the standard library's errors.Is; the name errors
// is taken by the engine's own error package.
func errorIs(err, target error) bool {
	return stderrors.Is(err, target)
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
