// Package fixture declares types exercising the Go type provider.
package fixture

import (
	"time"
)

// Level is an enumeration declared out of alphabetical order.
type Level int

const (
	LevelLow Level = iota
	LevelHigh
	LevelMedium
)

const defaultLevel = LevelLow

// Audit is embedded into Account.
type Audit struct {
	CreatedBy string
	CreatedAt time.Time
	revision  int
}

// Account is the root type of the provider tests.
type Account struct {
	Audit

	ID       int64
	Owner    *Profile
	Tags     []string
	Scores   [3]int
	Labels   map[string]string
	Level    Level
	History  History
	Notifier Notifier
	Page     Page[Entry]
	secret   string
}

// History is a named ordered sequence.
type History []Entry

// Entry is a single History element.
type Entry struct {
	At   time.Time
	Note string
}

// Profile exposes Go-style accessors over unexported state.
type Profile struct {
	name   string
	email  string
	Active bool
}

// GetName returns the display name.
func (p *Profile) GetName() string { return p.name }

// SetName sets the display name.
func (p *Profile) SetName(name string) { p.name = name }

// WithEmail sets the email and returns the profile.
func (p *Profile) WithEmail(email string) *Profile {
	p.email = email
	return p
}

// IsActive reports whether the profile is active.
func (p Profile) IsActive() bool { return p.Active }

// Primary returns the primary entry of the profile.
func (p *Profile) Primary() Entry { return Entry{Note: p.name} }

// Match compares the name ignoring everything else.
func (p *Profile) Match(other Profile, strict bool) bool { return p.name == other.name && strict }

// Notifier is an interface-typed member.
type Notifier interface {
	Notify(msg string) error
	Channel() string
}

// Page is a generic container.
type Page[T any] struct {
	Items []T
	Total int
}

// Alias is a type alias of Entry.
type Alias = Entry
