package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current time. Purchase timestamps go through this
// interface so tests can pin them.
type Clock interface {
	Now() time.Time
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)

type SystemClock struct{}

func NewSystemClock() Clock {
	return SystemClock{}
}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
