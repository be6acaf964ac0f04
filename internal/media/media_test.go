package media

import "testing"

func TestVideoIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=abc123&t=30s", "abc123"},
		{"https://youtu.be/xyz789", "xyz789"},
	}
	for _, tc := range cases {
		got, err := VideoIDFromURL(tc.url)
		if err != nil {
			t.Errorf("%s: %v", tc.url, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.url, got, tc.want)
		}
	}
}

func TestVideoIDFromURL_NoID(t *testing.T) {
	if _, err := VideoIDFromURL("https://example.com/"); err == nil {
		t.Error("expected error for url without video id")
	}
}

func TestParseProbeDuration(t *testing.T) {
	d, err := ParseProbeDuration("1500.123456\n")
	if err != nil {
		t.Fatal(err)
	}
	if d != 1500.123456 {
		t.Errorf("d=%v", d)
	}
	if _, err := ParseProbeDuration("N/A\n"); err == nil {
		t.Error("N/A should error")
	}
	if _, err := ParseProbeDuration(""); err == nil {
		t.Error("empty should error")
	}
	if _, err := ParseProbeDuration("-5"); err == nil {
		t.Error("negative should error")
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := formatSeconds(600); got != "600.000" {
		t.Errorf("formatSeconds(600)=%s", got)
	}
	if got := formatSeconds(0.5); got != "0.500" {
		t.Errorf("formatSeconds(0.5)=%s", got)
	}
}
