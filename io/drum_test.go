package io

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

func TestDrumStatusProtocol(t *testing.T) {
	assert := assert.New(t)

	drum := &Drum{}
	value := word.Join(0x0005, 0x0005)

	// Write raises the field's channel immediately.
	assert.False(drum.CheckStatus(OD_LRI))
	drum.WriteField(FIELD_LRI, 3, value, 1.0)
	assert.True(drum.CheckStatus(OD_LRI))

	// Reads never touch the channel.
	got, ok := drum.ReadField(FIELD_LRI, 3)
	assert.True(ok)
	assert.Equal(value, got)
	assert.True(drum.CheckStatus(OD_LRI))

	// Only the explicit acknowledge clears it.
	drum.ClearStatus(OD_LRI)
	assert.False(drum.CheckStatus(OD_LRI))

	// The data survives the acknowledge.
	_, ok = drum.ReadField(FIELD_LRI, 3)
	assert.True(ok)

	// Channels are independent per field.
	drum.WriteField(FIELD_XTL, 0, value, 2.0)
	assert.True(drum.CheckStatus(OD_XTL))
	assert.False(drum.CheckStatus(OD_LRI))
	assert.False(drum.CheckStatus(OD_GFI))
}

func TestDrumReadAbsent(t *testing.T) {
	assert := assert.New(t)

	drum := &Drum{}
	_, ok := drum.ReadField(FIELD_GFI, 17)
	assert.False(ok)
	assert.False(drum.CheckStatus(OD_GFI))
}

func TestDrumTransferLog(t *testing.T) {
	assert := assert.New(t)

	drum := &Drum{}
	a := word.Join(1, 2)
	b := word.Join(3, 4)

	drum.WriteField(FIELD_LRI, 0, a, 0.5)
	drum.WriteField(FIELD_XTL, 9, b, 0.75)

	assert.Equal([]Transfer{
		{Field: FIELD_LRI, Address: 0, Value: a, Timestamp: 0.5},
		{Field: FIELD_XTL, Address: 9, Value: b, Timestamp: 0.75},
	}, drum.Log)
}

func TestDrumAddressesOrdered(t *testing.T) {
	assert := assert.New(t)

	drum := &Drum{}
	for _, address := range []uint16{9, 2, 5} {
		drum.WriteField(FIELD_LRI, address, word.Join(0, word.Half(address)), 0)
	}

	var got []uint16
	for address, value := range drum.Addresses(FIELD_LRI) {
		got = append(got, address)
		assert.Equal(word.Half(address), value.Right())
	}
	assert.Equal([]uint16{2, 5, 9}, got)
}

func TestDrumClearField(t *testing.T) {
	assert := assert.New(t)

	drum := &Drum{}
	drum.WriteField(FIELD_GFI, 1, word.Join(0, 1), 0)
	drum.ClearField(FIELD_GFI)

	_, ok := drum.ReadField(FIELD_GFI, 1)
	assert.False(ok)
	// Acknowledge stays a separate step.
	assert.True(drum.CheckStatus(OD_GFI))
	assert.Len(drum.Log, 1)
}

func TestDrumTick(t *testing.T) {
	assert := assert.New(t)

	drum := &Drum{}
	// One second at 2900 RPM: 48 1/3 turns, 120 degrees past whole turns.
	drum.Tick(1.0)
	assert.InDelta(120.0, drum.Rotation, 1e-6)

	drum.Reset()
	assert.Equal(0.0, drum.Rotation)
}

func TestFieldAt(t *testing.T) {
	assert := assert.New(t)

	fld, offset, ok := FieldAt(ADDR_LRI_BASE + 7)
	assert.True(ok)
	assert.Equal(FIELD_LRI, fld)
	assert.Equal(uint16(7), offset)

	fld, offset, ok = FieldAt(ADDR_LOG_BASE)
	assert.True(ok)
	assert.Equal(FIELD_LOG, fld)
	assert.Equal(uint16(0), offset)

	_, _, ok = FieldAt(ADDR_LIGHT_GUN)
	assert.False(ok)
	_, _, ok = FieldAt(ADDR_RTC)
	assert.False(ok)

	assert.True(InDisplayRange(ADDR_DISPLAY_END))
	assert.False(InDisplayRange(ADDR_LIGHT_GUN))
}
