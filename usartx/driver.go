// usartx/driver.go

package usartx

import (
	"context"
	"time"
)

// DefaultOscillatorHz matches the 16 MHz crystal on the common dev boards.
// Override with WithOscillator or take the value from a boards descriptor.
const DefaultOscillatorHz = 16_000_000

// defaultQuiesceLimit bounds the quiescence busy-wait. Generous enough for
// a full frame at the slowest supported baud on real silicon.
const defaultQuiesceLimit = 10000

// USART owns exclusive access to one unit's register file. Construct with
// NewUSART; the zero value is not usable.
type USART struct {
	unit Unit
	info unitInfo
	bus  Bus
	intr InterruptController

	oscHz        uint32
	quiesceLimit int
}

// Option adjusts a USART at construction time.
type Option func(*USART)

// WithOscillator sets the system oscillator frequency used for divisor
// derivation.
func WithOscillator(hz uint32) Option {
	return func(u *USART) { u.oscHz = hz }
}

// WithQuiesceLimit bounds the quiescence busy-wait to n status polls.
// n <= 0 selects an unbounded wait, which blocks forever if the hardware
// never reports idle.
func WithQuiesceLimit(n int) Option {
	return func(u *USART) { u.quiesceLimit = n }
}

// NewUSART returns a driver for the given unit. The unit set is closed;
// anything outside it is rejected with ErrInvalidUnit so that a constructed
// USART always resolves to a real register file.
func NewUSART(unit Unit, bus Bus, intr InterruptController, opts ...Option) (*USART, error) {
	if !unit.valid() {
		return nil, ErrInvalidUnit
	}
	u := &USART{
		unit:         unit,
		info:         units[unit],
		bus:          bus,
		intr:         intr,
		oscHz:        DefaultOscillatorHz,
		quiesceLimit: defaultQuiesceLimit,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Unit returns the unit this driver addresses.
func (u *USART) Unit() Unit { return u.unit }

// OscillatorHz returns the oscillator frequency used for divisor derivation.
func (u *USART) OscillatorHz() uint32 { return u.oscHz }

// Initialize configures the unit: mode, clock divisor and frame format.
//
// All configuration errors are detected before any register is touched and
// before interrupts are masked. Once the sequence starts it runs to
// completion: quiescence wait, interrupt mask, power gate, mode/clock,
// divisor (skipped for slave-sync), frame, interrupt restore. The global
// interrupt mask is always returned to its prior state.
func (u *USART) Initialize(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	fb, err := FrameEncoding(cfg.DataSize, cfg.Parity, cfg.StopBits)
	if err != nil {
		return err
	}
	div, err := Divisor(u.oscHz, cfg.BaudRate, cfg.Mode)
	if err != nil {
		return err
	}

	if err := u.waitQuiescent(); err != nil {
		return err
	}

	state := u.intr.Disable()
	defer u.intr.Restore(state)

	u.powerOn()
	u.selectMode(cfg.Mode)
	u.setPolarity(cfg.Mode, cfg.Polarity)
	if modeTable[cfg.Mode].multiplier != 0 {
		u.programDivisor(div)
	}
	u.applyFrame(fb)
	return nil
}

// powerOn clears the unit's gate bit in the power-reduction register so its
// register file responds. Safe to repeat.
func (u *USART) powerOn() {
	clearBits(u.bus, u.info.prr, 1<<u.info.prrBit)
}

// waitQuiescent busy-polls the status register until the line is idle:
// transmit complete set and no unread receive pending. The wait is bounded
// by the configured poll limit (unbounded when the limit is <= 0).
func (u *USART) waitQuiescent() error {
	addr := u.info.base + RegUCSRA
	for i := 0; u.quiesceLimit <= 0 || i < u.quiesceLimit; i++ {
		v := u.bus.Read8(addr)
		if v&UCSRA_TXC != 0 && v&UCSRA_RXC == 0 {
			return nil
		}
	}
	return ErrNotQuiescent
}

// EnableTransceiver turns on the receiver and transmitter.
func (u *USART) EnableTransceiver() {
	setBits(u.bus, u.info.base+RegUCSRB, UCSRB_RXEN|UCSRB_TXEN)
}

// DisableTransceiver turns off the receiver and transmitter.
func (u *USART) DisableTransceiver() {
	clearBits(u.bus, u.info.base+RegUCSRB, UCSRB_RXEN|UCSRB_TXEN)
}

// EnableTransferInterrupts unmasks the RX/TX complete interrupt sources so
// an interrupt handler can track ongoing transfers.
func (u *USART) EnableTransferInterrupts() {
	setBits(u.bus, u.info.base+RegUCSRB, UCSRB_RXCIE|UCSRB_TXCIE)
}

// DisableTransferInterrupts masks the RX/TX complete interrupt sources.
func (u *USART) DisableTransferInterrupts() {
	clearBits(u.bus, u.info.base+RegUCSRB, UCSRB_RXCIE|UCSRB_TXCIE)
}

// WriteByte pushes one byte through the data register, polling UDRE until
// the register accepts it. The poll is bounded by the quiesce limit.
func (u *USART) WriteByte(c byte) error {
	base := u.info.base
	for i := 0; u.quiesceLimit <= 0 || i < u.quiesceLimit; i++ {
		if u.bus.Read8(base+RegUCSRA)&UCSRA_UDRE != 0 {
			u.bus.Write8(base+RegUDR, c)
			return nil
		}
	}
	return ErrNotReady
}

// ReadByte returns one received byte, or ErrNoData when the receive flag is
// clear. It never blocks.
func (u *USART) ReadByte() (byte, error) {
	base := u.info.base
	if u.bus.Read8(base+RegUCSRA)&UCSRA_RXC == 0 {
		return 0, ErrNoData
	}
	return u.bus.Read8(base + RegUDR), nil
}

// ReadByteContext polls for a received byte until one arrives or ctx is
// done.
func (u *USART) ReadByteContext(ctx context.Context) (byte, error) {
	for {
		if b, err := u.ReadByte(); err == nil {
			return b, nil
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
		time.Sleep(0) // polite yield
	}
}

// Flush polls until the transmit-complete flag reports the shifter idle or
// ctx is done. Like the quiescence gate, the poll count is bounded by the
// configured quiesce limit (unbounded when the limit is <= 0) and
// exhaustion returns ErrNotQuiescent.
func (u *USART) Flush(ctx context.Context) error {
	addr := u.info.base + RegUCSRA
	for i := 0; u.quiesceLimit <= 0 || i < u.quiesceLimit; i++ {
		if u.bus.Read8(addr)&UCSRA_TXC != 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		time.Sleep(0)
	}
	return ErrNotQuiescent
}
