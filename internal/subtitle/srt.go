// Package subtitle parses and validates SRT-formatted transcript text.
package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// Cue is one subtitle frame: a time range and its text lines joined by newlines.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// Parse reads SRT text into cues.
//
//	1
//	00:00:00,000 --> 00:00:05,000
//	Speaker 1: line of dialogue
//
// Sequence numbers are ignored; blank lines separate cues. Returns an error
// only when a timestamp line is malformed; text-only oddities are tolerated
// since engine output is not byte-perfect.
func Parse(text string) ([]Cue, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var cues []Cue
	var current *Cue

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isDigitsOnly(line) {
			continue
		}
		if strings.Contains(line, "-->") {
			parts := strings.SplitN(line, "-->", 2)
			start, err := ParseTimestamp(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("cue %d: %w", len(cues)+1, err)
			}
			end, err := ParseTimestamp(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("cue %d: %w", len(cues)+1, err)
			}
			if current != nil {
				cues = append(cues, *current)
			}
			current = &Cue{Start: start, End: end}
			continue
		}
		if current != nil {
			if current.Text != "" {
				current.Text += "\n"
			}
			current.Text += line
		}
	}
	if current != nil {
		cues = append(cues, *current)
	}
	return cues, nil
}

// ParseTimestamp parses HH:MM:SS,mmm (comma or dot before milliseconds, which
// may be omitted) into seconds.
func ParseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	ms := 0.0
	if i := strings.IndexAny(s, ",."); i >= 0 {
		frac := s[i+1:]
		s = s[:i]
		if frac != "" {
			n, err := strconv.Atoi(frac)
			if err != nil {
				return 0, fmt.Errorf("bad milliseconds in timestamp %q", s)
			}
			// Interpret the fraction by its digit count: "5" is 0.5s, "050" is 50ms.
			divisor := 1.0
			for range frac {
				divisor *= 10
			}
			ms = float64(n) / divisor
		}
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("bad timestamp %q", s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("bad timestamp %q", s)
	}
	return float64(h*3600+m*60+sec) + ms, nil
}

// Validate checks that the text parses as SRT and that cue timestamps are
// monotonically non-decreasing (well-formed subtitle markup).
func Validate(text string) error {
	cues, err := Parse(text)
	if err != nil {
		return err
	}
	if len(cues) == 0 {
		return fmt.Errorf("no cues in transcript")
	}
	prev := -1.0
	for i, c := range cues {
		if c.End < c.Start {
			return fmt.Errorf("cue %d ends (%v) before it starts (%v)", i+1, c.End, c.Start)
		}
		if c.Start < prev {
			return fmt.Errorf("cue %d starts at %v, before previous cue start %v", i+1, c.Start, prev)
		}
		prev = c.Start
	}
	return nil
}

func isDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
