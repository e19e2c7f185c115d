package io

import (
	"fmt"
	"iter"
	"maps"
)

// Fixed I/O address map. These conventions are part of the bit-exact
// contract with programs: a WRT in the display range routes to the
// display buffer, an RDS in a field range reads that drum field, and the
// real-time clock answers at its own dedicated address.
const (
	ADDR_DISPLAY_BASE = uint16(0x0000)
	ADDR_DISPLAY_END  = uint16(0x0fff)
	ADDR_LIGHT_GUN    = uint16(0x1000)
	ADDR_RTC          = uint16(0x1fff)
	ADDR_LRI_BASE     = uint16(0x2000)
	ADDR_GFI_BASE     = uint16(0x3000)
	ADDR_XTL_BASE     = uint16(0x4000)
	ADDR_LOG_BASE     = uint16(0x5000)

	// FIELD_SPAN is the width of each drum field window.
	FIELD_SPAN = uint16(0x1000)
)

var _io_defines = map[string]string{
	"ADDR_DISPLAY_BASE": fmt.Sprintf("0x%04x", ADDR_DISPLAY_BASE),
	"ADDR_DISPLAY_END":  fmt.Sprintf("0x%04x", ADDR_DISPLAY_END),
	"ADDR_LIGHT_GUN":    fmt.Sprintf("0x%04x", ADDR_LIGHT_GUN),
	"ADDR_RTC":          fmt.Sprintf("0x%04x", ADDR_RTC),
	"ADDR_LRI_BASE":     fmt.Sprintf("0x%04x", ADDR_LRI_BASE),
	"ADDR_GFI_BASE":     fmt.Sprintf("0x%04x", ADDR_GFI_BASE),
	"ADDR_XTL_BASE":     fmt.Sprintf("0x%04x", ADDR_XTL_BASE),
	"ADDR_LOG_BASE":     fmt.Sprintf("0x%04x", ADDR_LOG_BASE),
}

// Defines returns the address map as assembler predefines.
func Defines() iter.Seq2[string, string] {
	return maps.All(_io_defines)
}

// FieldAt decodes an I/O address into a drum field and its in-field
// offset. ok is false outside every field window.
func FieldAt(address uint16) (fld Field, offset uint16, ok bool) {
	switch {
	case address >= ADDR_LRI_BASE && address < ADDR_LRI_BASE+FIELD_SPAN:
		fld, offset, ok = FIELD_LRI, address-ADDR_LRI_BASE, true
	case address >= ADDR_GFI_BASE && address < ADDR_GFI_BASE+FIELD_SPAN:
		fld, offset, ok = FIELD_GFI, address-ADDR_GFI_BASE, true
	case address >= ADDR_XTL_BASE && address < ADDR_XTL_BASE+FIELD_SPAN:
		fld, offset, ok = FIELD_XTL, address-ADDR_XTL_BASE, true
	case address >= ADDR_LOG_BASE && address < ADDR_LOG_BASE+FIELD_SPAN:
		fld, offset, ok = FIELD_LOG, address-ADDR_LOG_BASE, true
	}
	return
}

// InDisplayRange reports whether an address falls in the display window.
func InDisplayRange(address uint16) bool {
	return address <= ADDR_DISPLAY_END
}
