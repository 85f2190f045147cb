// usartx/usartx.go

// Package usartx configures megaAVR USART units at register level: mode and
// clock selection, baud divisor generation, frame format and safe
// reconfiguration under asynchronous interrupts. All register access flows
// through the Bus interface, so the same engine drives real hardware behind a
// memory-mapped bus or the in-memory simulator in package avrsim.
//
// Initialize is the primary entry point. It waits for the unit to go quiet,
// disables global interrupts for the duration of the multi-register update,
// ungates the unit's clock in the power-reduction register, programs mode,
// divisor and frame, and restores the interrupt mask before returning.
package usartx

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUnit reports a unit identifier outside the known set.
	ErrInvalidUnit = errors.New("usartx: unknown unit")

	// ErrInvalidConfig reports a Config field outside its supported range.
	ErrInvalidConfig = errors.New("usartx: invalid configuration")

	// ErrNotQuiescent reports that a transfer was still in flight when the
	// bounded quiescence wait gave up. Hardware gives no upper bound here;
	// surfacing an error instead of hanging is a deliberate choice, see
	// WithQuiesceLimit.
	ErrNotQuiescent = errors.New("usartx: transfer still in flight")

	// ErrNotReady reports that the data register did not become writable.
	ErrNotReady = errors.New("usartx: data register not ready")

	// ErrNoData reports an empty receive register.
	ErrNoData = errors.New("usartx: no received data")
)

// UnsupportedDivisorError reports a baud rate whose clock divisor does not
// fit the 12-bit UBRR register pair for the given mode and oscillator.
// Initialize returns it before any register has been written.
type UnsupportedDivisorError struct {
	Mode         Mode
	BaudRate     uint32
	OscillatorHz uint32
	Divisor      int64
}

func (e *UnsupportedDivisorError) Error() string {
	return fmt.Sprintf("usartx: baud %d unachievable at %d Hz in %s mode (divisor %d outside 0..4095)",
		e.BaudRate, e.OscillatorHz, e.Mode, e.Divisor)
}

// Mode selects synchronous/asynchronous and master/slave operation.
type Mode uint8

const (
	// ModeNormalAsync is standard asynchronous operation (divisor ×16).
	ModeNormalAsync Mode = iota
	// ModeDoubleSpeedAsync is asynchronous operation with the U2X double
	// speed bit set (divisor ×8).
	ModeDoubleSpeedAsync
	// ModeMasterSync is synchronous operation with the XCK clock line
	// driven by this unit (divisor ×2).
	ModeMasterSync
	// ModeSlaveSync is synchronous operation clocked externally; the XCK
	// line is released as an input and no divisor is programmed.
	ModeSlaveSync
)

func (m Mode) String() string {
	switch m {
	case ModeNormalAsync:
		return "normal-async"
	case ModeDoubleSpeedAsync:
		return "double-speed-async"
	case ModeMasterSync:
		return "master-sync"
	case ModeSlaveSync:
		return "slave-sync"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Parity defines the parity setting used for the serial frame.
type Parity uint8

const (
	// ParityNone disables parity generation and checking.
	ParityNone Parity = iota
	// ParityEven sets even parity (total number of 1 bits is even).
	ParityEven
	// ParityOdd sets odd parity (total number of 1 bits is odd).
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	}
	return fmt.Sprintf("Parity(%d)", uint8(p))
}

// StopBits is the number of stop bits per frame (1 or 2).
type StopBits uint8

const (
	OneStopBit  StopBits = 1
	TwoStopBits StopBits = 2
)

// DataSize is the number of data bits per frame (5..9).
type DataSize uint8

const (
	Data5Bits DataSize = 5
	Data6Bits DataSize = 6
	Data7Bits DataSize = 7
	Data8Bits DataSize = 8
	Data9Bits DataSize = 9
)

// Polarity selects the XCK edge used for transmit in synchronous modes.
// It is ignored (and UCPOL forced low) in asynchronous modes.
type Polarity uint8

const (
	// PolarityTxRising transmits on the rising XCK edge, samples on falling.
	PolarityTxRising Polarity = iota
	// PolarityTxFalling transmits on the falling XCK edge, samples on rising.
	PolarityTxFalling
)

// Config describes one requested USART setup. It exists only for the
// duration of an Initialize call.
type Config struct {
	Mode     Mode
	BaudRate uint32
	StopBits StopBits
	DataSize DataSize
	Parity   Parity
	Polarity Polarity
}

func (c Config) validate() error {
	if c.Mode > ModeSlaveSync {
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, uint8(c.Mode))
	}
	if c.BaudRate == 0 {
		return fmt.Errorf("%w: baud rate must be positive", ErrInvalidConfig)
	}
	if c.DataSize < Data5Bits || c.DataSize > Data9Bits {
		return fmt.Errorf("%w: data size %d", ErrInvalidConfig, uint8(c.DataSize))
	}
	if c.Parity > ParityOdd {
		return fmt.Errorf("%w: parity %d", ErrInvalidConfig, uint8(c.Parity))
	}
	if c.StopBits != OneStopBit && c.StopBits != TwoStopBits {
		return fmt.Errorf("%w: stop bits %d", ErrInvalidConfig, uint8(c.StopBits))
	}
	if c.Polarity > PolarityTxFalling {
		return fmt.Errorf("%w: polarity %d", ErrInvalidConfig, uint8(c.Polarity))
	}
	return nil
}
