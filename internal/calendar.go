package internal

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

var ErrMalformedCalendar = errors.New("malformed calendar")

//go:embed calendar.yaml
var defaultCalendar []byte

// One tournament on the calendar. The tournament itself is
// created fresh for every season.
type CalendarEntry struct {
	Name    string `yaml:"name"`
	Court   string `yaml:"court"`
	Variant string `yaml:"variant"`
}

// The tournaments that are played in the same week. A player
// can only enter one of them.
type Week []CalendarEntry

type Calendar struct {
	Weeks []Week `yaml:"weeks"`
}

// Reads a calendar from YAML. Every week needs at least one
// tournament and every tournament a name, a known court and a
// known variant.
func LoadCalendar(r io.Reader) (*Calendar, error) {
	calendar := &Calendar{}
	if err := yaml.NewDecoder(r).Decode(calendar); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCalendar, err)
	}

	if err := calendar.Validate(); err != nil {
		return nil, err
	}

	return calendar, nil
}

// Returns the built-in 34 week calendar
func DefaultCalendar() *Calendar {
	calendar, err := LoadCalendar(bytes.NewReader(defaultCalendar))
	if err != nil {
		panic(err)
	}
	return calendar
}

func (c *Calendar) Validate() error {
	if len(c.Weeks) == 0 {
		return fmt.Errorf("%w: no weeks", ErrMalformedCalendar)
	}

	for i, week := range c.Weeks {
		if len(week) == 0 {
			return fmt.Errorf("%w: week %d has no tournaments", ErrMalformedCalendar, i+1)
		}
		for _, entry := range week {
			if entry.Name == "" {
				return fmt.Errorf("%w: unnamed tournament in week %d", ErrMalformedCalendar, i+1)
			}
			if _, err := ParseCourt(entry.Court); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrMalformedCalendar, entry.Name, err)
			}
			if _, err := ParseVariant(entry.Variant); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrMalformedCalendar, entry.Name, err)
			}
		}
	}

	return nil
}

// Creates the tournaments of the week in calendar order
func (w Week) NewTournaments() ([]*Tournament, error) {
	tournaments := make([]*Tournament, 0, len(w))
	for _, entry := range w {
		court, err := ParseCourt(entry.Court)
		if err != nil {
			return nil, err
		}
		variant, err := ParseVariant(entry.Variant)
		if err != nil {
			return nil, err
		}
		t, err := NewTournament(entry.Name, court, variant)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

// Returns the number of tournaments of each tier on the calendar
func (c *Calendar) CountByVariant() map[Variant]int {
	counts := make(map[Variant]int, len(Variants))
	for _, week := range c.Weeks {
		for _, entry := range week {
			if v, err := ParseVariant(entry.Variant); err == nil {
				counts[v] += 1
			}
		}
	}
	return counts
}
