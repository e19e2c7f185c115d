package io

// StatusId names a status channel. Drum fields raise their OD_* channel
// on every write; the light gun raises LIGHT_GUN on a detected flash.
type StatusId int

const (
	OD_LRI    = StatusId(0) // od_lri
	OD_GFI    = StatusId(1) // od_gfi
	OD_XTL    = StatusId(2) // od_xtl
	OD_LOG    = StatusId(3) // od_log
	LIGHT_GUN = StatusId(4) // light_gun
)

// String returns the channel name.
func (id StatusId) String() (name string) {
	switch id {
	case OD_LRI:
		name = "od_lri"
	case OD_GFI:
		name = "od_gfi"
	case OD_XTL:
		name = "od_xtl"
	case OD_LOG:
		name = "od_log"
	case LIGHT_GUN:
		name = "light_gun"
	default:
		name = "od_invalid"
	}
	return
}

// Status is a pending-event flag with explicit acknowledge. A raise marks
// data pending; checks observe without consuming; only a clear resets the
// flag. Every status channel in the machine is one of these.
type Status struct {
	pending bool
}

// Raise marks the channel pending.
func (st *Status) Raise() {
	st.pending = true
}

// Check reports whether the channel is pending. Never consumes.
func (st *Status) Check() bool {
	return st.pending
}

// Clear acknowledges the channel.
func (st *Status) Clear() {
	st.pending = false
}
