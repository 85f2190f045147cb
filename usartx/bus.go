// usartx/bus.go

package usartx

// Bus is the 8-bit register access contract the engine drives. On target
// hardware it maps straight onto the data memory space; in tests it is
// backed by the avrsim register file. The engine never does raw address
// arithmetic outside the resolver table.
type Bus interface {
	Read8(addr uint16) byte
	Write8(addr uint16, v byte)
}

func setBits(b Bus, addr uint16, mask byte) {
	b.Write8(addr, b.Read8(addr)|mask)
}

func clearBits(b Bus, addr uint16, mask byte) {
	b.Write8(addr, b.Read8(addr)&^mask)
}

// writeBit sets or clears a single bit field via read-modify-write.
func writeBit(b Bus, addr uint16, mask byte, on bool) {
	if on {
		setBits(b, addr, mask)
	} else {
		clearBits(b, addr, mask)
	}
}
