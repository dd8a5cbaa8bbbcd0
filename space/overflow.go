package space

import (
	"fmt"
	"math"
)

// CheckMulOverflow checks if multiplying two non-negative ints would overflow.
// Returns an error if overflow would occur.
func CheckMulOverflow(a, b int) error {
	if a < 0 || b < 0 {
		return fmt.Errorf("multiplication of negative sizes: %d * %d", a, b)
	}
	if a == 0 || b == 0 {
		return nil // No overflow when either is zero
	}
	if a > math.MaxInt/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds int max", a, b)
	}
	return nil
}

// SafeMul multiplies two non-negative ints and returns the result if no
// overflow occurs. Returns 0 and an error otherwise.
func SafeMul(a, b int) (int, error) {
	if err := CheckMulOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// Product computes the product of all dimension sizes with overflow checking.
// An empty slice has product 1 (the scalar extent).
func Product(dims []int) (int, error) {
	total := 1
	for i, dim := range dims {
		if dim < 0 {
			return 0, fmt.Errorf("negative size %d at dimension %d", dim, i)
		}
		if err := CheckMulOverflow(total, dim); err != nil {
			return 0, fmt.Errorf("extent overflow at dimension %d: %w", i, err)
		}
		total *= dim
	}
	return total, nil
}
