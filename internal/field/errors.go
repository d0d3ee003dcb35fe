package field

import "errors"

// ErrPoolSize indicates an attempt to change the particle count of a store.
var ErrPoolSize = errors.New("field: particle count must stay constant")
