package contact

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ErrMissingField is returned when a required field is blank
var ErrMissingField = errors.New("missing required field")

// Contact represents a person in the address book
type Contact struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Phone string `json:"phone" yaml:"phone"`
}

// Fields holds the mutable part of a contact
type Fields struct {
	Name  string
	Email string
	Phone string
}

// Fields returns the mutable fields of the contact
func (c Contact) Fields() Fields {
	return Fields{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

// WithFields returns a copy of the contact with its fields replaced wholesale
func (c Contact) WithFields(f Fields) Contact {
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	return c
}

// Validate checks that every field is present. The first blank field is
// reported, in the order name, email, phone.
func (f Fields) Validate() error {
	switch {
	case strings.TrimSpace(f.Name) == "":
		return fmt.Errorf("%w: name", ErrMissingField)
	case strings.TrimSpace(f.Email) == "":
		return fmt.Errorf("%w: email", ErrMissingField)
	case strings.TrimSpace(f.Phone) == "":
		return fmt.Errorf("%w: phone", ErrMissingField)
	}
	return nil
}

// New creates a contact with a freshly generated ID
func New(f Fields) Contact {
	return Contact{ID: NewID()}.WithFields(f)
}

// NewID generates a collision-resistant identifier
func NewID() string {
	return uuid.New().String()
}

// Matches reports whether term occurs in the name, email or phone,
// ignoring case
func (c Contact) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term) ||
		strings.Contains(c.Phone, term)
}

// Filter returns the contacts matching term. An empty term matches everything.
// The input slice is never modified.
func Filter(contacts []Contact, term string) []Contact {
	filtered := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if term == "" || c.Matches(term) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Initials derives a short badge from a display name: the first letter of
// the first and last words.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return "?"
	}

	first := firstRune(words[0])
	if len(words) == 1 {
		return string(first)
	}
	return string(first) + string(firstRune(words[len(words)-1]))
}

func firstRune(word string) rune {
	for _, r := range word {
		return unicode.ToUpper(r)
	}
	return '?'
}

// Index returns the position of the contact with the given ID, or -1
func Index(contacts []Contact, id string) int {
	for i, c := range contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
