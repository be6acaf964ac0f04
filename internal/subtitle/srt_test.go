package subtitle

import "testing"

const sample = `1
00:00:00,000 --> 00:00:05,000
Speaker 1: Welcome back to the channel.

2
00:00:05,000 --> 00:00:10,500
Speaker 1: Today we talk about
vector search.
`

func TestParse(t *testing.T) {
	cues, err := Parse(sample)
	if err != nil {
		t.Fatal(err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Start != 0 || cues[0].End != 5 {
		t.Errorf("cue 0 = [%v, %v]", cues[0].Start, cues[0].End)
	}
	if cues[1].Start != 5 || cues[1].End != 10.5 {
		t.Errorf("cue 1 = [%v, %v]", cues[1].Start, cues[1].End)
	}
	if cues[1].Text != "Speaker 1: Today we talk about\nvector search." {
		t.Errorf("cue 1 text=%q", cues[1].Text)
	}
}

func TestParse_Empty(t *testing.T) {
	cues, err := Parse("   \n  ")
	if err != nil {
		t.Fatal(err)
	}
	if cues != nil {
		t.Errorf("expected nil cues, got %v", cues)
	}
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"00:00:00,000", 0},
		{"00:10:00,000", 600},
		{"01:02:05,250", 3725.25},
		{"00:00:01.5", 1.5},
		{"00:00:03", 3},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if err != nil {
			t.Errorf("%s: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "10:00", "00:70:00,000", "abc"} {
		if _, err := ParseTimestamp(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(sample); err != nil {
		t.Errorf("valid srt rejected: %v", err)
	}
}

func TestValidate_NonMonotonic(t *testing.T) {
	bad := `1
00:00:10,000 --> 00:00:15,000
later text

2
00:00:00,000 --> 00:00:05,000
earlier text
`
	if err := Validate(bad); err == nil {
		t.Error("non-monotonic cues should fail validation")
	}
}

func TestValidate_NoCues(t *testing.T) {
	if err := Validate("just some prose without timestamps"); err == nil {
		t.Error("text without cues should fail validation")
	}
}
