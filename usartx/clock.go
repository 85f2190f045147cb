// usartx/clock.go

package usartx

import "fmt"

// modeSettings drives the mode/clock state machine as data rather than
// branching logic. A multiplier of 0 marks an externally clocked mode with
// no divisor to program.
type modeSettings struct {
	sync        bool   // UMSEL0 set, asynchronous otherwise
	doubleSpeed bool   // U2X set (forced off in synchronous modes)
	multiplier  uint32 // baud divisor multiplier, 0 = externally clocked
}

var modeTable = [ModeSlaveSync + 1]modeSettings{
	ModeNormalAsync:      {sync: false, doubleSpeed: false, multiplier: 16},
	ModeDoubleSpeedAsync: {sync: false, doubleSpeed: true, multiplier: 8},
	ModeMasterSync:       {sync: true, doubleSpeed: false, multiplier: 2},
	ModeSlaveSync:        {sync: true, doubleSpeed: false, multiplier: 0},
}

// maxDivisor is the largest value the 12-bit UBRR register pair can hold.
const maxDivisor = 0xFFF

// Divisor computes the UBRR value for the given oscillator frequency, baud
// rate and mode: floor(osc / (mult × baud)) − 1. For ModeSlaveSync it
// returns 0 with no error since timing is supplied externally. A result
// outside 0..4095 is reported as *UnsupportedDivisorError and nothing may be
// programmed. Both frequencies must be positive.
func Divisor(oscHz, baud uint32, mode Mode) (uint16, error) {
	if mode > ModeSlaveSync {
		return 0, fmt.Errorf("%w: mode %d", ErrInvalidConfig, uint8(mode))
	}
	if baud == 0 {
		return 0, fmt.Errorf("%w: baud rate must be positive", ErrInvalidConfig)
	}
	if oscHz == 0 {
		return 0, fmt.Errorf("%w: oscillator frequency must be positive", ErrInvalidConfig)
	}
	mult := modeTable[mode].multiplier
	if mult == 0 {
		return 0, nil
	}
	div := int64(oscHz)/(int64(mult)*int64(baud)) - 1
	if div < 0 || div > maxDivisor {
		return 0, &UnsupportedDivisorError{
			Mode:         mode,
			BaudRate:     baud,
			OscillatorHz: oscHz,
			Divisor:      div,
		}
	}
	return uint16(div), nil
}

// selectMode programs the clock-source and double-speed bits and sets the
// XCK line direction: driven in master-sync, released in slave-sync,
// untouched in the asynchronous modes.
func (u *USART) selectMode(mode Mode) {
	s := modeTable[mode]
	base := u.info.base

	if s.sync {
		setBits(u.bus, base+RegUCSRC, UCSRC_UMSEL0)
		clearBits(u.bus, base+RegUCSRC, UCSRC_UMSEL1)
	} else {
		clearBits(u.bus, base+RegUCSRC, UCSRC_UMSEL1|UCSRC_UMSEL0)
	}
	writeBit(u.bus, base+RegUCSRA, UCSRA_U2X, s.doubleSpeed)

	switch mode {
	case ModeMasterSync:
		setBits(u.bus, u.info.ddr, 1<<u.info.xckBit)
	case ModeSlaveSync:
		clearBits(u.bus, u.info.ddr, 1<<u.info.xckBit)
	}
}

// setPolarity programs UCPOL. The bit is meaningful only in synchronous
// modes; asynchronous modes must keep it low.
func (u *USART) setPolarity(mode Mode, pol Polarity) {
	addr := u.info.base + RegUCSRC
	if !modeTable[mode].sync {
		clearBits(u.bus, addr, UCSRC_UCPOL)
		return
	}
	writeBit(u.bus, addr, UCSRC_UCPOL, pol == PolarityTxFalling)
}

// programDivisor writes the 12-bit divisor split at bit 8 into the
// UBRRL/UBRRH pair. The high register only implements its low nibble.
func (u *USART) programDivisor(div uint16) {
	u.bus.Write8(u.info.base+RegUBRRL, byte(div))
	u.bus.Write8(u.info.base+RegUBRRH, byte(div>>8)&0x0F)
}
