// Package sequence builds ordered integer sequences by transforming and
// filtering a range.
package sequence

// Limit is the exclusive upper bound of the range the package-level
// sequences are derived from.
const Limit = 10

var (
	// Squares holds x*x for every x in [0, Limit).
	Squares = Map(Range(0, Limit), Square)

	// EvenSquares holds x*x for every even x in [0, Limit).
	EvenSquares = Map(Filter(Range(0, Limit), IsEven), Square)
)

// Range returns the integers in [start, end) in ascending order.
// An empty slice is returned when end <= start.
func Range(start, end int) []int {
	if end <= start {
		return []int{}
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// Map applies f to every element of in, preserving order.
func Map[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

// Filter keeps the elements of in for which keep returns true, preserving order.
func Filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Square returns x*x.
func Square(x int) int {
	return x * x
}

// IsEven reports whether x is divisible by two.
func IsEven(x int) bool {
	return x%2 == 0
}
