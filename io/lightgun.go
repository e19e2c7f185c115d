package io

import (
	"log"
	"math"
)

// LightGun is the photomultiplier-style console gun. While armed at a
// screen position, any drawn object within the detection radius of that
// position registers a flash and records the object as selected.
//
// The flash follows the same discipline as a drum status channel:
// reading the selection never clears it, only ClearStatus does.
type LightGun struct {
	Verbose bool

	Armed bool
	X     float64
	Y     float64

	flash       Status
	selected    string
	hasSelected bool

	// Selection codes expose string target ids through the 16-bit
	// accumulator path. Assigned per id on first selection; 0 is none.
	codes    map[string]uint16
	nextCode uint16
}

// Arm points the gun at a position and arms the photomultiplier.
func (gun *LightGun) Arm(x, y float64) {
	gun.Armed = true
	gun.X = x
	gun.Y = y

	if gun.Verbose {
		log.Printf("gun: armed at (%v, %v)", x, y)
	}
}

// Disarm disarms the gun. A pending flash stays pending.
func (gun *LightGun) Disarm() {
	gun.Armed = false
}

// DrawEvent tests a drawn object against the armed beam. A hit records
// the object as selected, raises the flash, and reports true. A miss, or
// a disarmed gun, leaves all prior state untouched.
func (gun *LightGun) DrawEvent(id string, x, y, radius float64) (hit bool) {
	if !gun.Armed {
		return
	}

	if math.Hypot(x-gun.X, y-gun.Y) > radius {
		return
	}

	gun.selected = id
	gun.hasSelected = true
	gun.flash.Raise()
	hit = true

	if gun.codes == nil {
		gun.codes = make(map[string]uint16)
	}
	if _, known := gun.codes[id]; !known {
		gun.nextCode++
		gun.codes[id] = gun.nextCode
	}

	if gun.Verbose {
		log.Printf("gun: flash on %v at (%v, %v)", id, x, y)
	}

	return
}

// PollStatus reports a pending flash without consuming it.
func (gun *LightGun) PollStatus() bool {
	return gun.flash.Check()
}

// SelectedId returns the last selected target id, or ok=false if nothing
// was ever selected. Does not clear the flash.
func (gun *LightGun) SelectedId() (id string, ok bool) {
	return gun.selected, gun.hasSelected
}

// SelectedCode returns the numeric code of the current selection, 0 when
// nothing was ever selected.
func (gun *LightGun) SelectedCode() uint16 {
	if !gun.hasSelected {
		return 0
	}
	return gun.codes[gun.selected]
}

// ClearStatus acknowledges the flash. The recorded selection survives
// until the next hit replaces it.
func (gun *LightGun) ClearStatus() {
	gun.flash.Clear()
}

// Reset returns the gun to power-on state.
func (gun *LightGun) Reset() {
	gun.Armed = false
	gun.flash.Clear()
	gun.selected = ""
	gun.hasSelected = false
	gun.codes = nil
	gun.nextCode = 0
}
