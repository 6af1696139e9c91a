package bignum

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Zero", "0", "0"},
		{"Empty", "", "0"},
		{"Sign only", "-", "0"},
		{"Negative zero", "-0000", "0"},
		{"Plus sign", "+15", "15"},
		{"Negative", "-15", "-15"},
		{"Leading zeros", "000123", "123"},
		{"Signed leading zeros", "-000123", "-123"},
		{"Leading whitespace", " \t\n42", "42"},
		{"Large", strings.Repeat("9", 500), strings.Repeat("9", 500)},
		{"Power of ten", "1" + strings.Repeat("0", 80), "1" + strings.Repeat("0", 80)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got.String() != tt.expected {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse_StoresLeastSignificantFirst(t *testing.T) {
	t.Parallel()
	x := MustParse("1203")
	want := digits{3, 0, 2, 1}
	if len(x.digits) != len(want) {
		t.Fatalf("got %v, want %v", x.digits, want)
	}
	for i := range want {
		if x.digits[i] != want[i] {
			t.Fatalf("got %v, want %v", x.digits, want)
		}
	}
}

func TestParse_InvalidCharacter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input  string
		offset int
		char   rune
	}{
		{"12a3", 2, 'a'},
		{"--5", 1, '-'},
		{"+-5", 1, '-'},
		{"1 2", 1, ' '},
		{"42 ", 2, ' '},
		{"0x10", 1, 'x'},
		{"3.14", 1, '.'},
		{"  -00é", 5, 'é'},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.input)
			if !errors.Is(err, ErrInvalidCharacter) {
				t.Fatalf("Parse(%q) error = %v, want ErrInvalidCharacter", tt.input, err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Offset != tt.offset || pe.Char != tt.char {
				t.Errorf("ParseError{Offset: %d, Char: %q}, want {%d, %q}", pe.Offset, pe.Char, tt.offset, tt.char)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("abc")
}

func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()
	inputs := []string{"0", "-1", "1", "10", "-1000000000000000000000001", "31415926535897932384626433"}
	for _, s := range inputs {
		x := MustParse(s)
		if x.String() != s {
			t.Errorf("format(parse(%q)) = %q", s, x.String())
		}
		if y := MustParse(x.String()); !Equal(x, y) {
			t.Errorf("parse(format(x)) != x for %s", s)
		}
	}
}

func TestTextMarshaling(t *testing.T) {
	t.Parallel()
	type payload struct {
		Value Int `json:"value"`
	}
	data, err := json.Marshal(payload{Value: MustParse("-1234567890123456789012")})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"value":"-1234567890123456789012"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"value":"00420"}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Value.String() != "420" {
		t.Errorf("Unmarshal produced %s", p.Value)
	}
	if err := json.Unmarshal([]byte(`{"value":"4x"}`), &p); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("expected ErrInvalidCharacter, got %v", err)
	}
}
