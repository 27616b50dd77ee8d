package life

import "errors"

// ErrInvalidDimensions indicates a board construction with a non-positive
// height. Construction is the only operation on the board that can fail.
var ErrInvalidDimensions = errors.New("life: invalid board dimensions")
