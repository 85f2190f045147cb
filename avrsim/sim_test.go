package avrsim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/microhal/avr-usartx/usartx"
)

func TestRing(t *testing.T) {
	var r ring
	_, ok := r.Get()
	require.False(t, ok)

	for i := byte(0); i < ringSize; i++ {
		require.True(t, r.Put(i))
	}
	require.False(t, r.Put(0xFF)) // full
	require.Equal(t, ringSize, r.Used())

	for i := byte(0); i < ringSize; i++ {
		v, ok := r.Get()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok = r.Get()
	require.False(t, ok)

	// Wraparound keeps FIFO order.
	for round := 0; round < 5; round++ {
		for i := byte(0); i < 40; i++ {
			require.True(t, r.Put(i))
		}
		for i := byte(0); i < 40; i++ {
			v, ok := r.Get()
			require.True(t, ok)
			require.Equal(t, i, v)
		}
	}
}

func TestSimResetState(t *testing.T) {
	s := NewSim()
	for _, unit := range usartx.Units() {
		ucsra := s.Peek(unit.Base() + usartx.RegUCSRA)
		require.NotZero(t, ucsra&usartx.UCSRA_TXC, unit)
		require.NotZero(t, ucsra&usartx.UCSRA_UDRE, unit)
		require.Zero(t, ucsra&usartx.UCSRA_RXC, unit)
	}
	require.True(t, s.InterruptsEnabled())
	require.Empty(t, s.Writes())
}

func TestSimDataRegister(t *testing.T) {
	s := NewSim()
	base := usartx.Unit0.Base()

	// Transmit side: UDR writes are logged and complete immediately.
	s.Write8(base+usartx.RegUDR, 'h')
	s.Write8(base+usartx.RegUDR, 'i')
	require.Equal(t, []byte("hi"), s.Transmitted(usartx.Unit0))
	require.NotZero(t, s.Peek(base+usartx.RegUCSRA)&usartx.UCSRA_TXC)

	// Receive side: feeding raises RXC, draining clears it.
	require.True(t, s.FeedByte(usartx.Unit0, 'x'))
	require.True(t, s.FeedByte(usartx.Unit0, 'y'))
	require.NotZero(t, s.Peek(base+usartx.RegUCSRA)&usartx.UCSRA_RXC)
	require.Equal(t, byte('x'), s.Read8(base+usartx.RegUDR))
	require.NotZero(t, s.Peek(base+usartx.RegUCSRA)&usartx.UCSRA_RXC)
	require.Equal(t, byte('y'), s.Read8(base+usartx.RegUDR))
	require.Zero(t, s.Peek(base+usartx.RegUCSRA)&usartx.UCSRA_RXC)

	// Units do not share queues.
	require.True(t, s.FeedByte(usartx.Unit1, 'q'))
	require.Zero(t, s.Peek(base+usartx.RegUCSRA)&usartx.UCSRA_RXC)
}

func TestSimJournal(t *testing.T) {
	s := NewSim()
	s.Write8(0x10, 0xAA)
	s.Write8(0x11, 0xBB)
	require.Equal(t, []RegWrite{{0x10, 0xAA}, {0x11, 0xBB}}, s.Writes())
	s.ResetJournal()
	require.Empty(t, s.Writes())
	require.Equal(t, byte(0xAA), s.Peek(0x10)) // state survives
}

func TestSimBusyFor(t *testing.T) {
	s := NewSim()
	addr := usartx.Unit0.Base() + usartx.RegUCSRA
	s.BusyFor(usartx.Unit0, 2)
	require.Zero(t, s.Read8(addr)&usartx.UCSRA_TXC)
	require.Zero(t, s.Read8(addr)&usartx.UCSRA_TXC)
	require.NotZero(t, s.Read8(addr)&usartx.UCSRA_TXC) // idle again
}

func TestSimInterruptNesting(t *testing.T) {
	s := NewSim()
	outer := s.Disable()
	require.False(t, s.InterruptsEnabled())
	inner := s.Disable()
	s.Restore(inner)
	// Inner restore must not re-enable: interrupts were already off.
	require.False(t, s.InterruptsEnabled())
	s.Restore(outer)
	require.True(t, s.InterruptsEnabled())
	require.Equal(t, 2, s.DisableCalls())
	require.Equal(t, 2, s.RestoreCalls())
}
