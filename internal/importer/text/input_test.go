package text

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/badele/textanalyzer/internal/types"
)

func TestReadInputStripsTrailingNewline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"LF", "hello world\n", "hello world"},
		{"CRLF", "hello world\r\n", "hello world"},
		{"NoNewline", "hello", "hello"},
		{"OnlyOneStripped", "a\n\n", "a\n"},
		{"NewlineOnly", "\n", ""},
		{"Multiline", "one\ntwo\n", "one\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ReadInput(strings.NewReader(tt.input), InputOptions{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if in.Text != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, in.Text)
			}
		})
	}
}

func TestReadInputEmptyIsInputError(t *testing.T) {
	_, err := ReadInput(strings.NewReader(""), InputOptions{Source: "stdin"})
	if err == nil {
		t.Fatalf("Expected error on empty input")
	}

	if !errors.Is(err, types.ErrInput) {
		t.Errorf("Expected ErrInput, got %v", err)
	}

	var inputErr *types.InputError
	if !errors.As(err, &inputErr) || inputErr.Source != "stdin" {
		t.Errorf("Expected InputError from stdin, got %#v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestReadInputReaderFailure(t *testing.T) {
	_, err := ReadInput(failingReader{}, InputOptions{})
	if !errors.Is(err, types.ErrInput) {
		t.Fatalf("Expected ErrInput, got %v", err)
	}
}

func TestReadInputBoundsLength(t *testing.T) {
	in, err := ReadInput(strings.NewReader("abcdefghij"), InputOptions{MaxLen: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Text != "abcd" || !in.Truncated {
		t.Errorf("Expected truncated 'abcd', got %q truncated=%v", in.Text, in.Truncated)
	}

	in, err = ReadInput(strings.NewReader("abcd"), InputOptions{MaxLen: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Truncated {
		t.Errorf("Expected input of exactly MaxLen not to be truncated")
	}
}

func TestReadInputSingleLine(t *testing.T) {
	in, err := ReadInput(strings.NewReader("first line\nsecond line\n"), InputOptions{SingleLine: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Text != "first line" {
		t.Errorf("Expected only the first line, got %q", in.Text)
	}
}

func TestReadInputConvertsEncoding(t *testing.T) {
	// 0x82 is "é" in CP437, 0xE9 is "é" in ISO-8859-1
	tests := []struct {
		name     string
		encoding string
		input    []byte
		expected string
	}{
		{"CP437", "cp437", []byte{'c', 'a', 'f', 0x82}, "café"},
		{"ISO88591", "iso-8859-1", []byte{'c', 'a', 'f', 0xE9}, "café"},
		{"UTF8BOM", "utf8", append([]byte{0xEF, 0xBB, 0xBF}, "café"...), "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ReadInput(strings.NewReader(string(tt.input)), InputOptions{Encoding: tt.encoding})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if in.Text != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, in.Text)
			}
		})
	}
}

func TestReadInputUnsupportedEncoding(t *testing.T) {
	_, err := ReadInput(strings.NewReader("x"), InputOptions{Encoding: "ebcdic"})
	if !errors.Is(err, types.ErrInput) {
		t.Fatalf("Expected ErrInput for unsupported encoding, got %v", err)
	}
}

func TestReadInputNewlineDoesNotCountAgainstMaxLen(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		truncated bool
	}{
		{"ExactLF", "abcd\n", "abcd", false},
		{"ExactCRLF", "abcd\r\n", "abcd", false},
		{"OverByOne", "abcde\n", "abcd", true},
		{"NewlineThenMore", "abcd\nefgh", "abcd", true},
		{"CRLFThenMore", "abcd\r\nx", "abcd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ReadInput(strings.NewReader(tt.input), InputOptions{MaxLen: 4})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if in.Text != tt.expected || in.Truncated != tt.truncated {
				t.Errorf("Expected %q truncated=%v, got %q truncated=%v",
					tt.expected, tt.truncated, in.Text, in.Truncated)
			}

			if in.Size != len(tt.expected) {
				t.Errorf("Expected size %d, got %d", len(tt.expected), in.Size)
			}
		})
	}
}

func TestReadInputCutKeepsValidUTF8(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"TwoByteRune", "aé", 2, "a"},
		{"ThreeByteRune", "ab€cd", 4, "ab"},
		{"RuneFits", "aéb", 3, "aé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ReadInput(strings.NewReader(tt.input), InputOptions{MaxLen: tt.maxLen})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !utf8.ValidString(in.Text) {
				t.Fatalf("Expected valid UTF-8, got %q", in.Text)
			}

			if in.Text != tt.expected || !in.Truncated {
				t.Errorf("Expected truncated %q, got %q truncated=%v", tt.expected, in.Text, in.Truncated)
			}
		})
	}
}

func TestReadInputSingleByteEncodingCutsAtMaxLen(t *testing.T) {
	in, err := ReadInput(strings.NewReader(string([]byte{'c', 'a', 'f', 0xE9, 's'})),
		InputOptions{MaxLen: 4, Encoding: "iso-8859-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if in.Text != "café" || !in.Truncated {
		t.Errorf("Expected truncated \"café\", got %q truncated=%v", in.Text, in.Truncated)
	}
}
