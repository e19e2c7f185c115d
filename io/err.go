package io

import (
	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/translate"
)

var f = translate.From

// ErrUnmapped reports an I/O operation addressed outside every mapped range.
type ErrUnmapped uint16

func (err ErrUnmapped) Error() string {
	return f("i/o address %04x unmapped", uint16(err))
}

func (err ErrUnmapped) Is(target error) (ok bool) {
	_, ok = target.(ErrUnmapped)
	return
}
