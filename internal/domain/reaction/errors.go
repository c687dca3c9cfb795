package reaction

import "errors"

var ErrInvalidKind = errors.New("invalid reaction kind")
