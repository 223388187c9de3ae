package person

// Person represents a person with a display name and an email address.
// Both fields are set at construction time and never change afterwards.
type Person struct {
	name  string // name is the display name used in greetings
	email string // email is the contact address, not validated
}

// New creates a Person. No validation is applied to either field.
func New(name, email string) Person {
	return Person{name: name, email: email}
}

// Name returns the display name.
func (p Person) Name() string {
	return p.name
}

// Email returns the email address.
func (p Person) Email() string {
	return p.email
}

// Greet returns a greeting that introduces the person by name.
func (p Person) Greet() string {
	return "Hello, I'm " + p.name
}
