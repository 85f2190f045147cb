// usartx/registers.go

package usartx

// Each USART unit owns a seven-byte register file. Offsets are relative to
// the unit's base address (byte 3 is reserved on the megaAVR parts).
const (
	RegUCSRA uint16 = 0 // status: transfer flags, double speed
	RegUCSRB uint16 = 1 // control B: transceiver/interrupt enables, UCSZ2
	RegUCSRC uint16 = 2 // control C: mode, parity, stop, UCSZ1:0, polarity
	RegUBRRL uint16 = 4 // divisor low byte
	RegUBRRH uint16 = 5 // divisor high nibble (12 significant bits total)
	RegUDR   uint16 = 6 // data register (single-byte transfer)
)

// UCSRA status register bits.
const (
	UCSRA_RXC  byte = 1 << 7 // receive complete (unread data pending)
	UCSRA_TXC  byte = 1 << 6 // transmit complete (shifter idle)
	UCSRA_UDRE byte = 1 << 5 // data register empty
	UCSRA_U2X  byte = 1 << 1 // double transmission speed
)

// UCSRB control register bits.
const (
	UCSRB_RXCIE byte = 1 << 7 // receive complete interrupt enable
	UCSRB_TXCIE byte = 1 << 6 // transmit complete interrupt enable
	UCSRB_RXEN  byte = 1 << 4 // receiver enable
	UCSRB_TXEN  byte = 1 << 3 // transmitter enable
	UCSRB_UCSZ2 byte = 1 << 2 // character size high bit
)

// UCSRC control register bits.
const (
	UCSRC_UMSEL1 byte = 1 << 7 // mode select high (always 0 for USART)
	UCSRC_UMSEL0 byte = 1 << 6 // mode select low (0 async, 1 sync)
	UCSRC_UPM1   byte = 1 << 5 // parity mode high
	UCSRC_UPM0   byte = 1 << 4 // parity mode low
	UCSRC_USBS   byte = 1 << 3 // stop bit select (0 one, 1 two)
	UCSRC_UCSZ1  byte = 1 << 2 // character size mid bit
	UCSRC_UCSZ0  byte = 1 << 1 // character size low bit
	UCSRC_UCPOL  byte = 1 << 0 // clock polarity (sync modes only)
)

// Shared registers outside the per-unit files.
const (
	AddrPRR0 uint16 = 0x64 // power reduction register 0
	AddrPRR1 uint16 = 0x65 // power reduction register 1

	AddrDDRD uint16 = 0x2A  // port D direction (USART1 pins)
	AddrDDRE uint16 = 0x2D  // port E direction (USART0 pins)
	AddrDDRH uint16 = 0x101 // port H direction (USART2 pins)
	AddrDDRJ uint16 = 0x104 // port J direction (USART3 pins)
)
