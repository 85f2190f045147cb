// usartx/frame.go

package usartx

// FrameBits is the decoded register encoding of one frame format: the
// three-bit character size (UCSZ2 in UCSRB, UCSZ1:0 in UCSRC), the parity
// pair and the stop-bit select. The three fields are independent; the order
// in which they are written is not observable.
type FrameBits struct {
	UCSZ2, UCSZ1, UCSZ0 bool
	UPM1, UPM0          bool
	USBS                bool
}

// UCSZ[2:0] character size encoding per the datasheet.
var sizeTable = map[DataSize][3]bool{
	Data5Bits: {false, false, false},
	Data6Bits: {false, false, true},
	Data7Bits: {false, true, false},
	Data8Bits: {false, true, true},
	Data9Bits: {true, true, true},
}

// UPM[1:0] parity encoding.
var parityTable = map[Parity][2]bool{
	ParityNone: {false, false},
	ParityEven: {true, false},
	ParityOdd:  {true, true},
}

// FrameEncoding maps a (data size, parity, stop bits) triple to its register
// bit fields. All 30 combinations of the supported values are legal.
func FrameEncoding(size DataSize, parity Parity, stop StopBits) (FrameBits, error) {
	sz, ok := sizeTable[size]
	if !ok {
		return FrameBits{}, ErrInvalidConfig
	}
	pm, ok := parityTable[parity]
	if !ok {
		return FrameBits{}, ErrInvalidConfig
	}
	if stop != OneStopBit && stop != TwoStopBits {
		return FrameBits{}, ErrInvalidConfig
	}
	return FrameBits{
		UCSZ2: sz[0], UCSZ1: sz[1], UCSZ0: sz[2],
		UPM1: pm[0], UPM0: pm[1],
		USBS: stop == TwoStopBits,
	}, nil
}

// applyFrame writes the three frame fields. UCSZ2 lives in UCSRB, the rest
// in UCSRC.
func (u *USART) applyFrame(fb FrameBits) {
	base := u.info.base
	writeBit(u.bus, base+RegUCSRB, UCSRB_UCSZ2, fb.UCSZ2)
	writeBit(u.bus, base+RegUCSRC, UCSRC_UCSZ1, fb.UCSZ1)
	writeBit(u.bus, base+RegUCSRC, UCSRC_UCSZ0, fb.UCSZ0)
	writeBit(u.bus, base+RegUCSRC, UCSRC_UPM1, fb.UPM1)
	writeBit(u.bus, base+RegUCSRC, UCSRC_UPM0, fb.UPM0)
	writeBit(u.bus, base+RegUCSRC, UCSRC_USBS, fb.USBS)
}
