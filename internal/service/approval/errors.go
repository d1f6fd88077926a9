package approval

import "errors"

// ErrNotPermitted is returned when the resolver denies an action.
var ErrNotPermitted = errors.New("you are not permitted to act on this record")
