package io

import (
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

// Field names a drum field. The set is closed: each field is a named
// asynchronous channel between one class of external device and the CPU.
type Field int

const (
	FIELD_LRI   = Field(0) // lri: long-range radar input
	FIELD_GFI   = Field(1) // gfi: gap-filler radar input
	FIELD_XTL   = Field(2) // xtl: cross-tell input
	FIELD_LOG   = Field(3) // log: program log output
	FIELD_COUNT = 4
)

// String returns the field name.
func (fld Field) String() (name string) {
	switch fld {
	case FIELD_LRI:
		name = "lri"
	case FIELD_GFI:
		name = "gfi"
	case FIELD_XTL:
		name = "xtl"
	case FIELD_LOG:
		name = "log"
	default:
		name = "invalid"
	}
	return
}

// StatusId returns the status channel raised by writes to this field.
func (fld Field) StatusId() StatusId {
	return StatusId(fld)
}

const (
	// DRUM_RPM is the drum rotation rate.
	DRUM_RPM = 2900.0
)

// Transfer is one entry of the drum transfer log.
type Transfer struct {
	Field     Field
	Address   uint16
	Value     word.Word
	Timestamp float64
}

// Drum is the field-partitioned magnetic drum. Fields are sparse,
// word-addressed stores; each carries a status channel raised on write
// and cleared only by explicit acknowledge.
type Drum struct {
	Verbose bool

	// Rotation is the simulated drum angle in degrees, consumed only
	// by external visualization.
	Rotation float64

	// Log records every field write in order.
	Log []Transfer

	data   [FIELD_COUNT]map[uint16]word.Word
	status [FIELD_COUNT]Status
}

// Reset clears all fields, status channels, the transfer log, and the
// rotation angle.
func (drum *Drum) Reset() {
	for fld := range Field(FIELD_COUNT) {
		drum.data[fld] = nil
		drum.status[fld].Clear()
	}
	drum.Log = nil
	drum.Rotation = 0
}

// WriteField stores a word into a field, appends a transfer-log entry,
// and raises the field's status channel. Never fails.
func (drum *Drum) WriteField(fld Field, address uint16, value word.Word, timestamp float64) {
	if drum.data[fld] == nil {
		drum.data[fld] = make(map[uint16]word.Word)
	}
	drum.data[fld][address] = value

	drum.Log = append(drum.Log, Transfer{
		Field:     fld,
		Address:   address,
		Value:     value,
		Timestamp: timestamp,
	})
	drum.status[fld].Raise()

	if drum.Verbose {
		log.Printf("drum: %v[%04x] <- %v at %v", fld, address, value, timestamp)
	}
}

// ReadField returns the last word written at an address, or ok=false if
// the address was never written. Does not touch the status channel.
func (drum *Drum) ReadField(fld Field, address uint16) (value word.Word, ok bool) {
	value, ok = drum.data[fld][address]
	return
}

// Addresses iterates a field's written words in address order.
func (drum *Drum) Addresses(fld Field) iter.Seq2[uint16, word.Word] {
	return func(yield func(uint16, word.Word) bool) {
		addrs := slices.Collect(maps.Keys(drum.data[fld]))
		slices.Sort(addrs)
		for _, address := range addrs {
			if !yield(address, drum.data[fld][address]) {
				return
			}
		}
	}
}

// ClearField drops a field's accumulated words. The transfer log and the
// status channel are untouched; acknowledge the channel separately.
func (drum *Drum) ClearField(fld Field) {
	drum.data[fld] = nil
}

// CheckStatus reports a status channel without consuming it. Channels not
// owned by the drum report false.
func (drum *Drum) CheckStatus(id StatusId) bool {
	if int(id) >= FIELD_COUNT {
		return false
	}
	return drum.status[id].Check()
}

// ClearStatus acknowledges a status channel.
func (drum *Drum) ClearStatus(id StatusId) {
	if int(id) >= FIELD_COUNT {
		return
	}
	drum.status[id].Clear()
}

// Tick advances the simulated rotation by dt seconds.
func (drum *Drum) Tick(dt float64) {
	drum.Rotation += dt * DRUM_RPM * 360.0 / 60.0
	for drum.Rotation >= 360.0 {
		drum.Rotation -= 360.0
	}
}
