package showcase

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"code-showcase/internal/domain/numeric"
	"code-showcase/internal/domain/person"
	"code-showcase/internal/domain/sequence"
	"code-showcase/pkg/logger"
)

const (
	// Greeting is the first line printed by the program entry.
	Greeting = "Hello, World!"
	// BannerTerm is the Fibonacci index printed by the program entry.
	BannerTerm = 10
)

// Usecase ties the standalone samples together for the transport layers.
type Usecase struct {
	log *zap.Logger
}

// New creates a new Usecase.
func New(log *zap.Logger) *Usecase {
	return &Usecase{log: log}
}

// Banner returns the two lines printed when the program runs without arguments.
func (uc *Usecase) Banner() []string {
	return []string{Greeting, FormatFibonacci(uc.Fibonacci(BannerTerm))}
}

// Fibonacci computes the n-th term.
func (uc *Usecase) Fibonacci(n int) FibonacciTerm {
	uc.log.Debug("computing fibonacci term", zap.Int("n", n))
	return FibonacciTerm{N: n, Value: numeric.Fibonacci(n)}
}

// FormatFibonacci renders a term as "Fibonacci(n) = value".
func FormatFibonacci(t FibonacciTerm) string {
	return fmt.Sprintf("Fibonacci(%d) = %d", t.N, t.Value)
}

// Greet builds a person from the request and returns its greeting.
func (uc *Usecase) Greet(in GreetRequest) GreetResponse {
	p := person.New(in.Name, in.Email)
	return GreetResponse{Greeting: p.Greet()}
}

// Sequences returns copies of the derived sequences.
func (uc *Usecase) Sequences() SequencesResponse {
	return SequencesResponse{
		Squares:     slices.Clone(sequence.Squares),
		EvenSquares: slices.Clone(sequence.EvenSquares),
	}
}

// Document assembles the sample data document.
func (uc *Usecase) Document(ctx context.Context) Document {
	logger.WithContext(ctx, uc.log).Debug("building sample document")

	seqs := uc.Sequences()
	return Document{
		Greeting:    Greeting,
		Fibonacci:   uc.Fibonacci(BannerTerm),
		Squares:     seqs.Squares,
		EvenSquares: seqs.EvenSquares,
	}
}
