package emulator

import (
	"iter"
	"log"

	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/cpu"
	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/internal"
	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/io"
	"github.com/eric-rolph/an-fsq7-sage-simulator-sub001/word"
)

// Target is one simulated radar return, in fractional screen coordinates
// (|x| < 1, |y| < 1).
type Target struct {
	X float64
	Y float64
}

// Emulator state. CPU + drum + light gun + display buffer.
//
// The emulator is the machine-room wiring: it implements the CPU's I/O
// bus, routes bus addresses to the peripherals per the io address map,
// and exposes the host-side surfaces (radar injection, polling, the
// simulated clock).
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Drum io.Drum     // Magnetic drum buffering all external I/O.
	Gun  io.LightGun // Console light gun.

	// Display holds the last word written to each display address.
	Display map[uint16]word.Word

	// Time is the accumulated simulated time in seconds, stamped onto
	// drum transfers.
	Time float64

	lriNext uint16
	gfiNext uint16
	xtlNext uint16
}

// NewEmulator creates a new emulator with the CPU bus wired in.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Display: map[uint16]word.Word{},
	}
	emu.Cpu.Bus = emu

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		io.Defines(),
	)
}

// Reset returns the whole machine to power-on state and reloads the
// current program listing into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Reset()
	emu.Drum.Reset()
	emu.Gun.Reset()
	clear(emu.Display)
	emu.Time = 0
	emu.lriNext = 0
	emu.gfiNext = 0
	emu.xtlNext = 0

	for _, stmt := range emu.Program.Statements {
		err = emu.Banks.Write(stmt.Bank, stmt.Address, stmt.Code)
		if err != nil {
			return
		}
	}

	return
}

// LoadProgram installs a program listing and resets the machine.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	emu.Program = prog

	return emu.Reset()
}

// LineNo returns the source line number of the next instruction, 0 when
// the program counter is outside the listing.
func (emu *Emulator) LineNo() int {
	if stmt := emu.Program.Debug(emu.PBank, emu.P); stmt != nil {
		return stmt.LineNo
	}

	return 0
}

// Tick advances simulated time: the drum rotates and the real-time
// clock accrues ticks. Execution does not advance; use Step or Run.
func (emu *Emulator) Tick(dt float64) {
	emu.Time += dt
	emu.Cpu.AdvanceTime(dt)
	emu.Drum.Tick(dt)
}

// Step executes a single instruction, annotating any error with the
// source line it occurred on.
func (emu *Emulator) Step() (res cpu.StepResult, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	res, err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{LineNo: lineno, Err: err}
	}

	return
}

// Run executes instructions until halt, error, or budget exhaustion.
func (emu *Emulator) Run(max int) (count int, err error) {
	for count < max {
		var res cpu.StepResult
		res, err = emu.Step()
		if err != nil {
			return
		}
		count++
		if res.Halted {
			return
		}
	}

	return
}

// IoRead answers an RDS bus access per the address map.
func (emu *Emulator) IoRead(address uint16) (value word.Word, err error) {
	switch {
	case address == io.ADDR_LIGHT_GUN:
		value = word.Join(0, word.Half(emu.Gun.SelectedCode()))
	case io.InDisplayRange(address):
		value = emu.Display[address]
	default:
		fld, offset, ok := io.FieldAt(address)
		if !ok {
			err = io.ErrUnmapped(address)
			return
		}
		// Never-written drum addresses read as zero.
		value, _ = emu.Drum.ReadField(fld, offset)
	}

	return
}

// IoWrite routes a WRT bus access per the address map. Field writes are
// stamped with the current simulated time.
func (emu *Emulator) IoWrite(address uint16, value word.Word) (err error) {
	switch {
	case io.InDisplayRange(address):
		emu.Display[address] = value
		if emu.Verbose {
			log.Printf("emulator: display[%04x] <- %v", address, value)
		}
	default:
		fld, offset, ok := io.FieldAt(address)
		if !ok {
			err = io.ErrUnmapped(address)
			return
		}
		emu.Drum.WriteField(fld, offset, value, emu.Time)
	}

	return
}

// SimulateRadarInput packs each target's coordinates into a word and
// writes it to the next sequential long-range radar address. An empty
// sweep writes nothing, so it never raises od_lri.
func (emu *Emulator) SimulateRadarInput(targets []Target, timestamp float64) (err error) {
	for _, target := range targets {
		var code word.Word
		code, err = word.FromFractions(target.X, target.Y)
		if err != nil {
			return
		}
		emu.Drum.WriteField(io.FIELD_LRI, emu.lriNext, code, timestamp)
		emu.lriNext++
	}

	return
}

// SimulateGapFiller writes words to sequential gap-filler addresses.
func (emu *Emulator) SimulateGapFiller(words []word.Word, timestamp float64) {
	for _, code := range words {
		emu.Drum.WriteField(io.FIELD_GFI, emu.gfiNext, code, timestamp)
		emu.gfiNext++
	}
}

// SimulateCrossTell writes words to sequential cross-tell addresses.
func (emu *Emulator) SimulateCrossTell(words []word.Word, timestamp float64) {
	for _, code := range words {
		emu.Drum.WriteField(io.FIELD_XTL, emu.xtlNext, code, timestamp)
		emu.xtlNext++
	}
}

// PollResult is one batch of pending input, snapshotted and acknowledged
// by Poll.
type PollResult struct {
	RadarTargets []word.Word
	GapFiller    []word.Word
	CrossTell    []word.Word

	LightGunSelection string
	HasSelection      bool
}

// Sources iterates the pending sources by name. Only sources that were
// actually pending are yielded.
func (res *PollResult) Sources() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if len(res.RadarTargets) > 0 && !yield("radar_targets", res.RadarTargets) {
			return
		}
		if len(res.GapFiller) > 0 && !yield("gap_filler", res.GapFiller) {
			return
		}
		if len(res.CrossTell) > 0 && !yield("cross_tell", res.CrossTell) {
			return
		}
		if res.HasSelection && !yield("light_gun_selection", res.LightGunSelection) {
			return
		}
	}
}

// Poll checks every input status channel. For each raised channel the
// pending data is snapshotted, the backing field is drained, and the
// channel is acknowledged. Returns nil when nothing was pending.
//
// Data and channel move together: a raised channel guarantees its data
// is still buffered, and after the poll both are gone.
func (emu *Emulator) Poll() (res *PollResult) {
	res = &PollResult{}
	found := false

	collect := func(fld io.Field, into *[]word.Word, next *uint16) {
		if !emu.Drum.CheckStatus(fld.StatusId()) {
			return
		}
		for _, code := range emu.Drum.Addresses(fld) {
			*into = append(*into, code)
		}
		emu.Drum.ClearField(fld)
		emu.Drum.ClearStatus(fld.StatusId())
		*next = 0
		found = true
	}

	collect(io.FIELD_LRI, &res.RadarTargets, &emu.lriNext)
	collect(io.FIELD_GFI, &res.GapFiller, &emu.gfiNext)
	collect(io.FIELD_XTL, &res.CrossTell, &emu.xtlNext)

	if emu.Gun.PollStatus() {
		res.LightGunSelection, _ = emu.Gun.SelectedId()
		res.HasSelection = true
		emu.Gun.ClearStatus()
		found = true
	}

	if !found {
		res = nil
	} else if emu.Verbose {
		for name, data := range res.Sources() {
			log.Printf("emulator: poll %v: %v", name, data)
		}
	}

	return
}

// LogWords drains the program's log field output and acknowledges
// od_log. Returns nil when the program has logged nothing.
func (emu *Emulator) LogWords() (words []word.Word) {
	if !emu.Drum.CheckStatus(io.OD_LOG) {
		return
	}
	for _, code := range emu.Drum.Addresses(io.FIELD_LOG) {
		words = append(words, code)
	}
	emu.Drum.ClearField(io.FIELD_LOG)
	emu.Drum.ClearStatus(io.OD_LOG)

	return
}
