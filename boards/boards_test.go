package boards

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	require.NotEmpty(t, All())
}

func TestFindByName(t *testing.T) {
	b, err := FindByName("arduino-mega")
	require.NoError(t, err)
	require.Equal(t, uint32(16_000_000), b.OscillatorHz)
	require.Equal(t, 4, b.Units)

	_, err = FindByName("no-such-board")
	require.ErrorIs(t, err, ErrUnknownBoard)
}

func TestFindByChip(t *testing.T) {
	b, err := FindByChip("atmega328p")
	require.NoError(t, err)
	require.Equal(t, "arduino-uno", b.Name)
	require.Equal(t, 1, b.Units)

	b, err = FindByChip("ATMEGA2560")
	require.NoError(t, err)
	require.Equal(t, "arduino-mega", b.Name)

	_, err = FindByChip("rp2040")
	require.ErrorIs(t, err, ErrUnknownBoard)
}

func TestDefault(t *testing.T) {
	b := Default()
	require.Equal(t, "arduino-mega", b.Name)
}
