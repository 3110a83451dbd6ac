package vim

import "math"

// maxCount caps accumulated counts well below overflow.
const maxCount = math.MaxInt32

// CountState tracks count prefix accumulation during parsing.
type CountState struct {
	// Value is the accumulated count value.
	Value int

	// Active indicates if a count is being accumulated.
	Active bool
}

// Reset clears the count state.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds a digit to the count.
// Returns true if the digit was accepted; '0' cannot start a count.
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.Active && digit == 0 {
		return false
	}
	c.Active = true
	if c.Value > (maxCount-digit)/10 {
		c.Value = maxCount
		return true
	}
	c.Value = c.Value*10 + digit
	return true
}

// IsCountStart returns true if the character could start a count.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// CombineCounts multiplies a pre-operator and a post-operator count.
// Zero means the count was not given; the result is zero only when neither
// count was given. e.g. "2d3w" deletes six words.
func CombineCounts(count1, count2 int) int {
	if count1 <= 0 && count2 <= 0 {
		return 0
	}
	count1, count2 = max(count1, 1), max(count2, 1)
	if count1 > maxCount/count2 {
		return maxCount
	}
	return count1 * count2
}
