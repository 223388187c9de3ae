package numeric

// Fibonacci returns the n-th term of the Fibonacci sequence, seeded by
// F(0)=0 and F(1)=1.
//
// It uses naive double recursion and runs in exponential time.
// Any n <= 1 is returned as is, so negative input is echoed back.
func Fibonacci(n int) int {
	if n <= 1 {
		return n
	}
	return Fibonacci(n-1) + Fibonacci(n-2)
}
