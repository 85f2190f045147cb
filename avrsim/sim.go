// avrsim/sim.go

// Package avrsim is an in-memory stand-in for the megaAVR data memory space
// covering the USART register files, the power-reduction registers, the
// port direction registers and the global interrupt flag. It implements
// usartx.Bus and usartx.InterruptController so the configuration engine runs
// unmodified against it, and it journals every register write so tests can
// assert exactly what was (or was not) programmed.
package avrsim

import "github.com/microhal/avr-usartx/usartx"

// memSize covers the highest per-unit register (USART3 at 0x130..0x136).
const memSize = 0x200

// RegWrite records one register write in program order.
type RegWrite struct {
	Addr uint16
	Val  byte
}

// Sim simulates the register file of all USART units.
//
// Data-register behaviour: a write to UDR appends to the unit's transmit
// log and reports the transmission complete immediately (TXC and UDRE set).
// A read from UDR pops the oldest host-injected byte; RXC tracks whether
// bytes are pending. Everything else is plain memory.
type Sim struct {
	mem    [memSize]byte
	writes []RegWrite

	intrEnabled bool
	disables    int
	restores    int

	ucsraOf map[uint16]usartx.Unit
	udrOf   map[uint16]usartx.Unit

	rx        [usartx.NumUnits]ring
	tx        [usartx.NumUnits][]byte
	busyReads [usartx.NumUnits]int
}

var (
	_ usartx.Bus                 = (*Sim)(nil)
	_ usartx.InterruptController = (*Sim)(nil)
)

// NewSim returns a simulator in reset state: all units idle (TXC and UDRE
// set, nothing received), every unit gated off in the power-reduction
// registers, global interrupts enabled.
func NewSim() *Sim {
	s := &Sim{
		intrEnabled: true,
		ucsraOf:     make(map[uint16]usartx.Unit, usartx.NumUnits),
		udrOf:       make(map[uint16]usartx.Unit, usartx.NumUnits),
	}
	for _, unit := range usartx.Units() {
		base := unit.Base()
		s.ucsraOf[base+usartx.RegUCSRA] = unit
		s.udrOf[base+usartx.RegUDR] = unit
		s.mem[base+usartx.RegUCSRA] = usartx.UCSRA_TXC | usartx.UCSRA_UDRE
	}
	// Gate the USART bits so a configuration run has something to clear.
	s.mem[usartx.AddrPRR0] = 1 << 1
	s.mem[usartx.AddrPRR1] = 1<<0 | 1<<1 | 1<<2
	return s
}

// Read8 implements usartx.Bus.
func (s *Sim) Read8(addr uint16) byte {
	if unit, ok := s.ucsraOf[addr]; ok && s.busyReads[unit] > 0 {
		// Transfer still in flight for another few polls.
		s.busyReads[unit]--
		return s.mem[addr] &^ usartx.UCSRA_TXC
	}
	if unit, ok := s.udrOf[addr]; ok {
		b, _ := s.rx[unit].Get()
		if s.rx[unit].Used() == 0 {
			s.mem[unit.Base()+usartx.RegUCSRA] &^= usartx.UCSRA_RXC
		}
		return b
	}
	return s.mem[addr]
}

// Write8 implements usartx.Bus. Every write lands in the journal.
func (s *Sim) Write8(addr uint16, v byte) {
	s.writes = append(s.writes, RegWrite{Addr: addr, Val: v})
	if unit, ok := s.udrOf[addr]; ok {
		s.tx[unit] = append(s.tx[unit], v)
		s.mem[unit.Base()+usartx.RegUCSRA] |= usartx.UCSRA_TXC | usartx.UCSRA_UDRE
		return
	}
	s.mem[addr] = v
}

// Disable implements usartx.InterruptController.
func (s *Sim) Disable() usartx.IntrState {
	prior := s.intrEnabled
	s.intrEnabled = false
	s.disables++
	return usartx.IntrState(prior)
}

// Restore implements usartx.InterruptController.
func (s *Sim) Restore(state usartx.IntrState) {
	s.intrEnabled = bool(state)
	s.restores++
}

// InterruptsEnabled reports the simulated global interrupt flag.
func (s *Sim) InterruptsEnabled() bool { return s.intrEnabled }

// DisableCalls returns how many times the interrupt mask was acquired.
func (s *Sim) DisableCalls() int { return s.disables }

// RestoreCalls returns how many times the interrupt mask was released.
func (s *Sim) RestoreCalls() int { return s.restores }

// FeedByte injects a received byte for the unit, as the wire would.
// It returns false when the pending queue is full.
func (s *Sim) FeedByte(unit usartx.Unit, b byte) bool {
	if !s.rx[unit].Put(b) {
		return false
	}
	s.mem[unit.Base()+usartx.RegUCSRA] |= usartx.UCSRA_RXC
	return true
}

// Transmitted returns every byte written to the unit's data register.
func (s *Sim) Transmitted(unit usartx.Unit) []byte { return s.tx[unit] }

// BusyFor makes the unit's status register report an in-flight transfer for
// the next n reads, then idle again.
func (s *Sim) BusyFor(unit usartx.Unit, n int) { s.busyReads[unit] = n }

// Writes returns the register write journal in program order.
func (s *Sim) Writes() []RegWrite { return s.writes }

// ResetJournal discards the journal without touching register state.
func (s *Sim) ResetJournal() { s.writes = nil }

// Peek reads raw memory without data-register side effects.
func (s *Sim) Peek(addr uint16) byte { return s.mem[addr] }

// Poke writes raw memory without journalling, for test setup.
func (s *Sim) Poke(addr uint16, v byte) { s.mem[addr] = v }
