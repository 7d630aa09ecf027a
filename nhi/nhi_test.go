package nhi

import (
	"errors"
	"testing"
)

func TestValidation(t *testing.T) {
	valid := []string{
		"ZZZ0016",
		"ZZZ0008",
		"ABC1235",
		"AAA4000", // check digit 11-1=10 becomes 0
		"zzz0016",
		" ZZZ0016 ",
		"ZZZ00AX",
		"ABC12DV",
		"abc12dv",
	}
	invalid := []string{
		"",
		" ",
		"ZZZ0017",
		"ZZZ0001",
		"ZZZ00AC",
		"ABC12DW",
		"ZZZ001",
		"ZZZ00165",
		"1234567",
		"ZZZZZZZ",
		"AIA0000", // 'I' never appears in an issued identifier
		"AOA0000",
		"ABC12IA",
		"ABC12AO",
	}
	for _, id := range valid {
		if IsValid(id) == false {
			t.Errorf("%s reported as invalid", id)
		}
	}
	for _, id := range invalid {
		if IsValid(id) == true {
			t.Errorf("%s reported as valid", id)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	tests := map[string]error{
		"ZZZ0016": nil,
		"ZZZ00AX": nil,
		"ZZZ001":  ErrPatternMismatch,
		"ZZZ0":    ErrPatternMismatch,
		"ZZZZ016": ErrPatternMismatch,
		"AIA0000": ErrPatternMismatch,
		"ABC12ID": ErrPatternMismatch,
		"ZZZ0017": ErrChecksumInvalid,
		"ZZZ00AC": ErrChecksumInvalid,
	}
	for id, expected := range tests {
		_, err := Validate(id)
		if expected == nil {
			if err != nil {
				t.Errorf("%s: expected success, got: %v", id, err)
			}
			continue
		}
		if !errors.Is(err, expected) {
			t.Errorf("%s: expected error %v, got: %v", id, expected, err)
		}
	}
}

// a weighted sum divisible by the modulus can never have a valid check
// character, whatever the final character is
func TestZeroRemainderAlwaysInvalid(t *testing.T) {
	for d := byte('0'); d <= '9'; d++ {
		id := "AAA100" + string(d) // sum 22, divisible by 11
		if _, err := Validate(id); !errors.Is(err, ErrChecksumInvalid) {
			t.Errorf("%s: expected checksum failure, got: %v", id, err)
		}
	}
	for _, c := range []string{"A", "B", "M", "X", "Z"} {
		id := "AAA10A" + c // sum 24, divisible by 24
		if _, err := Validate(id); !errors.Is(err, ErrChecksumInvalid) {
			t.Errorf("%s: expected checksum failure, got: %v", id, err)
		}
	}
}

func TestCaseInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"zzz0016", "ZZZ0016"},
		{"abc12dv", "ABC12DV"},
		{"zzz0001", "ZZZ0001"},
		{"abcde", "ABCDE"},
	}
	for _, pair := range pairs {
		n1, err1 := Validate(pair[0])
		n2, err2 := Validate(pair[1])
		if n1 != n2 {
			t.Errorf("normalized forms differ: %s vs %s", n1, n2)
		}
		if (err1 == nil) != (err2 == nil) {
			t.Errorf("%s and %s validated differently: %v vs %v", pair[0], pair[1], err1, err2)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"zzz0016":   "ZZZ0016",
		" zzz0016 ": "ZZZ0016",
		"ZZZ0016":   "ZZZ0016",
		"":          "",
	}
	for input, expected := range tests {
		if Normalize(input) != expected {
			t.Errorf("failed to normalize %s. expected: %s. got: %s", input, expected, Normalize(input))
		}
		if Normalize(Normalize(input)) != Normalize(input) {
			t.Errorf("normalization of %s not idempotent", input)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"ZZZ0016":  FormatLegacy,
		"zzz0016":  FormatLegacy,
		"ZZZ00AX":  FormatCurrent,
		"abc12dv":  FormatCurrent,
		"ZZZZZZZ":  FormatCurrent, // tentative only; fails the full pattern
		"ZZZ00":    FormatUnknown,
		"":         FormatUnknown,
		"  ZZZ  ":  FormatUnknown,
		"ZZZ0016X": FormatLegacy, // classified, but fails the full pattern
	}
	for id, expected := range tests {
		if f := DetectFormat(id); f != expected {
			t.Errorf("%s: expected format %s, got %s", id, expected, f)
		}
	}
}

func TestFormatHints(t *testing.T) {
	if FormatLegacy.Pattern() != "^[a-zA-Z]{3}[0-9]{4}$" {
		t.Errorf("wrong legacy pattern hint: %s", FormatLegacy.Pattern())
	}
	if FormatCurrent.Pattern() != "^[a-zA-Z]{3}[0-9]{2}[a-zA-Z]{2}$" {
		t.Errorf("wrong current pattern hint: %s", FormatCurrent.Pattern())
	}
}

func TestPatternOnlyValidation(t *testing.T) {
	passes := []string{
		"ZZZ0001", // bad check digit, right shape
		"ZZZ00AC",
		"ZZZ0016",
	}
	fails := []string{
		"ZZZ001",
		"AIA0000",
		"1234567",
	}
	for _, id := range passes {
		if _, err := ValidatePattern(id); err != nil {
			t.Errorf("%s: expected pattern-only success, got: %v", id, err)
		}
	}
	for _, id := range fails {
		if _, err := ValidatePattern(id); !errors.Is(err, ErrPatternMismatch) {
			t.Errorf("%s: expected pattern failure, got: %v", id, err)
		}
	}
}

func TestLetterValues(t *testing.T) {
	tests := map[byte]int{
		'A': 1,
		'H': 8,
		'J': 9, // 'I' is skipped
		'N': 13,
		'P': 14, // 'O' is skipped
		'V': 20,
		'X': 22,
		'Z': 24,
	}
	for c, expected := range tests {
		if v := letterValue(c); v != expected {
			t.Errorf("letter %c: expected value %d, got %d", c, expected, v)
		}
	}
}
