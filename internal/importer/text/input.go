package text

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/badele/textanalyzer/internal/types"
)

const DefaultMaxInputLen = 200000

// Supported input encodings
var Encodings = []string{"utf8", "cp437", "cp850", "iso-8859-1"}

var errNoInput = errors.New("no input")

// UTF-8 BOM (Byte Order Mark) sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type InputOptions struct {
	Source   string // name used in error messages
	MaxLen   int
	Encoding string
	// SingleLine stops at the first newline, as an interactive prompt does.
	SingleLine bool
}

type Input struct {
	Text      string
	Size      int  // bytes kept before decoding
	Truncated bool // input was longer than MaxLen
}

// ReadInput reads at most MaxLen bytes from r, converts them to UTF-8 and
// strips one trailing newline. The newline does not count against MaxLen.
// Reading nothing at all is an input error.
func ReadInput(r io.Reader, opts InputOptions) (*Input, error) {
	if opts.MaxLen <= 0 {
		opts.MaxLen = DefaultMaxInputLen
	}

	// room for a trailing "\r\n" plus one byte to detect overflow
	limit := int64(opts.MaxLen) + 3
	lr := io.LimitReader(r, limit)

	var data []byte
	var err error
	if opts.SingleLine {
		data, err = bufio.NewReader(lr).ReadBytes('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
	} else {
		data, err = io.ReadAll(lr)
	}
	if err != nil {
		return nil, &types.InputError{Source: opts.Source, Err: err}
	}
	if len(data) == 0 {
		return nil, &types.InputError{Source: opts.Source, Err: errNoInput}
	}

	in := &Input{}
	if int64(len(data)) < limit {
		data = stripNewline(data)
	}
	if len(data) > opts.MaxLen {
		cut := opts.MaxLen
		if isUTF8(opts.Encoding) {
			cut = runeCut(data, opts.MaxLen)
		}
		data = stripNewline(data[:cut])
		in.Truncated = true
	}
	in.Size = len(data)

	utf8Data, err := ConvertToUTF8(data, opts.Encoding)
	if err != nil {
		return nil, &types.InputError{Source: opts.Source, Err: err}
	}

	in.Text = string(utf8Data)
	return in, nil
}

func isUTF8(enc string) bool {
	return enc == "" || enc == "utf8"
}

func stripNewline(data []byte) []byte {
	if bytes.HasSuffix(data, []byte("\r\n")) {
		return data[:len(data)-2]
	}
	return bytes.TrimSuffix(data, []byte("\n"))
}

// stripUTF8BOM removes the UTF-8 BOM if present at the beginning of the data
func stripUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && bytes.Equal(data[:3], utf8BOM) {
		return data[3:]
	}
	return data
}

// ConvertToUTF8 converts byte data from a source encoding to UTF-8.
// An empty encoding is treated as "utf8".
func ConvertToUTF8(data []byte, sourceEncoding string) ([]byte, error) {
	if isUTF8(sourceEncoding) {
		return stripUTF8BOM(data), nil
	}

	var decoder *encoding.Decoder

	switch sourceEncoding {
	case "cp437":
		decoder = charmap.CodePage437.NewDecoder()
	case "cp850":
		decoder = charmap.CodePage850.NewDecoder()
	case "iso-8859-1":
		decoder = charmap.ISO8859_1.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", sourceEncoding)
	}

	reader := transform.NewReader(bytes.NewReader(data), decoder)
	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("encoding conversion error: %w", err)
	}

	return stripUTF8BOM(utf8Data), nil
}
