// usartx/guard.go

package usartx

// IntrState is the prior global-interrupt enable flag returned by Disable.
// Passing it back to Restore makes nesting and restoration an explicit data
// dependency instead of an ambient side effect: a caller that disabled
// interrupts while they were already off restores them to off.
type IntrState bool

// InterruptController is the global interrupt mask contract. Disable and
// Restore must be strictly paired; Initialize brackets the whole
// reconfiguration sequence with one pair so no interrupt handler can observe
// a half-programmed divisor or inconsistent mode bits.
type InterruptController interface {
	Disable() IntrState
	Restore(IntrState)
}
