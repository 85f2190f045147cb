// avrsim/ring.go

package avrsim

// Choose a power-of-two size so uint8 wraparound gives cheap modulo.
const ringSize uint8 = 64

// ring is a small byte ring holding host-injected bytes until the driver
// reads them out of the data register.
type ring struct {
	buf  [ringSize]byte
	head uint8
	tail uint8
}

// Used returns how many bytes are pending.
func (r *ring) Used() uint8 {
	return r.head - r.tail
}

// Put stores a byte. If the ring is already full, it returns false.
func (r *ring) Put(val byte) bool {
	if r.Used() == ringSize {
		return false
	}
	r.buf[(r.head+1)%ringSize] = val
	r.head++
	return true
}

// Get returns the oldest pending byte, or (0, false) when empty.
func (r *ring) Get() (byte, bool) {
	if r.Used() == 0 {
		return 0, false
	}
	v := r.buf[(r.tail+1)%ringSize]
	r.tail++
	return v, true
}

// Clear resets the ring to empty.
func (r *ring) Clear() {
	r.head = 0
	r.tail = 0
}
