package ports

import "time"

// Clock is the engine's time source
type Clock interface {
	Now() time.Time
}
