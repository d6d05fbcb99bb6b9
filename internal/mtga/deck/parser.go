package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// cardLine matches an Arena decklist line: "4 Lightning Bolt" with an
// optional trailing "(M21) 123" printing annotation, which is ignored.
var cardLine = regexp.MustCompile(`^(\d+)\s+([^(]+?)(?:\s+\(([A-Z0-9]+)\)(?:\s+\S+)?)?$`)

type parseSection int

const (
	sectionMain parseSection = iota
	sectionSide
	sectionCompanion
)

// Parse reads a decklist in Arena export format. Sections are
// introduced by the headers "Companion", "Deck" and "Sideboard"; a
// blank line after the mainboard also starts the sideboard. Each card
// line is "<count> <name>", optionally annotated with a set code and
// collector number, which are stripped.
func Parse(input string) (*Deck, error) {
	d := &Deck{}
	section := sectionMain
	seenContent := false

	for i, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		switch line {
		case "Companion":
			section = sectionCompanion
			continue
		case "Deck":
			section = sectionMain
			continue
		case "Sideboard":
			section = sectionSide
			continue
		case "":
			// Leading blank lines are ignored; a blank line after the
			// mainboard separates it from the sideboard.
			if seenContent {
				section = sectionSide
			}
			continue
		}

		m := cardLine.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: expected `<count> <card name>`, found %q: %w", i+1, line, ErrParse)
		}
		amount, err := strconv.Atoi(m[1])
		if err != nil || amount <= 0 {
			return nil, fmt.Errorf("line %d: invalid count %q: %w", i+1, m[1], ErrParse)
		}
		name := strings.TrimSpace(m[2])

		seenContent = true
		switch section {
		case sectionCompanion:
			d.Companion = name
		case sectionMain:
			d.Mainboard = append(d.Mainboard, Entry{Name: name, Amount: amount})
		case sectionSide:
			d.Sideboard = append(d.Sideboard, Entry{Name: name, Amount: amount})
		}
	}

	if len(d.Mainboard) == 0 && len(d.Sideboard) == 0 {
		return nil, fmt.Errorf("no cards found in decklist: %w", ErrParse)
	}
	return d, nil
}
