package showcase

import "context"

// Showcase defines the operations exposed to the CLI and the HTTP adapter.
type Showcase interface {
	Banner() []string
	Fibonacci(n int) FibonacciTerm
	Greet(in GreetRequest) GreetResponse
	Sequences() SequencesResponse
	Document(ctx context.Context) Document
}
