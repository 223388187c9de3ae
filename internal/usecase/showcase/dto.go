package showcase

// FibonacciTerm pairs an index with its Fibonacci value.
type FibonacciTerm struct {
	N     int `json:"n" yaml:"n"`
	Value int `json:"value" yaml:"value"`
}

// GreetRequest carries the fields a person is constructed from.
type GreetRequest struct {
	Name  string
	Email string
}

// GreetResponse carries the greeting produced by the person.
type GreetResponse struct {
	Greeting string
}

// SequencesResponse holds the derived sequences over [0, sequence.Limit).
type SequencesResponse struct {
	Squares     []int `json:"squares" yaml:"squares"`
	EvenSquares []int `json:"even_squares" yaml:"even_squares"`
}

// Document is the sample data document served at /api/data.
type Document struct {
	Greeting    string        `json:"greeting" yaml:"greeting"`
	Fibonacci   FibonacciTerm `json:"fibonacci" yaml:"fibonacci"`
	Squares     []int         `json:"squares" yaml:"squares"`
	EvenSquares []int         `json:"even_squares" yaml:"even_squares"`
}
