package life

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPlayers is returned when a Variant has fewer than one participant.
var ErrNoPlayers = errors.New("variant has no players")

// ErrNoSpells is returned when a Variant enables no spells.
var ErrNoSpells = errors.New("variant has no spells")

// Variant selects the spells a Game dispatches over and how many participants
// it tracks.
type Variant struct {
	Name        string
	Description string
	Spells      []string
	Players     int
}

// Validate checks the Variant's structural invariants.
//
// Postcondition: Returns nil or an error describing every violation.
func (v Variant) Validate() error {
	var errs []error
	if strings.TrimSpace(v.Name) == "" {
		errs = append(errs, errors.New("variant name must not be empty"))
	}
	if v.Players < 1 {
		errs = append(errs, fmt.Errorf("%w: players must be >= 1, got %d", ErrNoPlayers, v.Players))
	}
	if len(v.Spells) == 0 {
		errs = append(errs, ErrNoSpells)
	}
	return errors.Join(errs...)
}

// String returns "<name> [spells] x<players>".
func (v Variant) String() string {
	return fmt.Sprintf("%s [%s] x%d", v.Name, strings.Join(v.Spells, " "), v.Players)
}
