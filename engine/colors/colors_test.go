package colors

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"ff000080", Color{1, 0, 0, 128.0 / 255}},
		{"#00ff00", Color{0, 1, 0, 1}},
		{"000000ff", Black},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "zz0000ff", "0000000000"} {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) succeeded, want error", in)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := Color{1, 0.5, 0, 1}
	got, err := ParseHex(c.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if got.Hex() != c.Hex() {
		t.Errorf("Hex round trip = %s, want %s", got.Hex(), c.Hex())
	}
}

func TestLerp(t *testing.T) {
	got := Black.Lerp(White, 0.5)
	want := Color{0.5, 0.5, 0.5, 1}
	if got != want {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}
