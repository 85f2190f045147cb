// usartx/unit.go

package usartx

import "fmt"

// Unit identifies one of the independently addressable USART units.
// The set is closed and fixed by the silicon; NewUSART rejects anything
// outside it, so a USART value always refers to a real unit.
type Unit uint8

const (
	Unit0 Unit = iota
	Unit1
	Unit2
	Unit3

	// NumUnits is the number of USART units on the ATmega2560-class parts.
	NumUnits = 4
)

func (u Unit) String() string { return fmt.Sprintf("USART%d", uint8(u)) }

func (u Unit) valid() bool { return u < NumUnits }

// Base returns the unit's register-file base address.
func (u Unit) Base() uint16 { return units[u].base }

// Units lists every known unit in ordinal order.
func Units() []Unit {
	all := make([]Unit, NumUnits)
	for i := range all {
		all[i] = Unit(i)
	}
	return all
}

// unitInfo is the per-unit hardware wiring: register base, power gate
// location and the port bits carrying the XCK/TXD/RXD lines. Fixed by the
// datasheet, never constructed at runtime.
type unitInfo struct {
	base   uint16 // register file base address
	prr    uint16 // power-reduction register holding the unit's gate bit
	prrBit byte   // gate bit index within prr
	ddr    uint16 // direction register of the port carrying the serial pins
	xckBit byte   // external clock line bit index
	txdBit byte   // transmit line bit index
	rxdBit byte   // receive line bit index
}

var units = [NumUnits]unitInfo{
	Unit0: {base: 0x0C0, prr: AddrPRR0, prrBit: 1, ddr: AddrDDRE, xckBit: 2, txdBit: 1, rxdBit: 0},
	Unit1: {base: 0x0C8, prr: AddrPRR1, prrBit: 0, ddr: AddrDDRD, xckBit: 5, txdBit: 3, rxdBit: 2},
	Unit2: {base: 0x0D0, prr: AddrPRR1, prrBit: 1, ddr: AddrDDRH, xckBit: 2, txdBit: 1, rxdBit: 0},
	Unit3: {base: 0x130, prr: AddrPRR1, prrBit: 2, ddr: AddrDDRJ, xckBit: 2, txdBit: 1, rxdBit: 0},
}
