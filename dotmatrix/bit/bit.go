// Package bit holds small helpers for composing words out of bytes and for
// poking at single bits of a register value.
package bit

// Combine builds a 16 bit word out of its two halves, high byte first.
func Combine(high, low uint8) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// High returns the most significant byte of a word.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Low returns the least significant byte of a word.
func Low(value uint16) uint8 {
	return uint8(value)
}

// IsSet reports whether the bit at index is 1.
func IsSet(index, value uint8) bool {
	return (value>>index)&1 == 1
}

// Set returns value with the bit at index forced to 1.
func Set(index, value uint8) uint8 {
	return value | 1<<index
}

// Reset returns value with the bit at index forced to 0.
func Reset(index, value uint8) uint8 {
	return value &^ (1 << index)
}

// SetTo sets or resets the bit at index depending on on.
func SetTo(index, value uint8, on bool) uint8 {
	if on {
		return Set(index, value)
	}
	return Reset(index, value)
}

// Value returns the bit at index as 0 or 1.
func Value(index, value uint8) uint8 {
	return (value >> index) & 1
}

// SwapNibbles exchanges the upper and lower four bits of value.
func SwapNibbles(value uint8) uint8 {
	return value<<4 | value>>4
}
