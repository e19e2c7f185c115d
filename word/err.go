package word

import (
	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/translate"
)

var f = translate.From

// ErrRange reports a value outside the representable fractional range.
type ErrRange float64

func (err ErrRange) Error() string {
	return f("value %v outside fractional range", float64(err))
}

func (err ErrRange) Is(target error) (ok bool) {
	_, ok = target.(ErrRange)
	return
}
