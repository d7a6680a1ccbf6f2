package internal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding selects how outc converts a number to output characters.
type Encoding int

// Output encodings.
const (
	// Latin1 writes the low 8 bits of the value as the ISO 8859-1 character
	// with that code, encoded as UTF-8.
	Latin1 Encoding = iota
	// Windows1252 is like Latin1 but decodes bytes 0x80-0x9F through the
	// Windows-1252 code page.
	Windows1252
	// UTF8 writes the whole value as a Unicode code point. Values that are
	// not valid code points are written as U+FFFD.
	UTF8
	// Raw writes the low 8 bits of the value as a single byte.
	Raw
)

var encodingNames = [...]string{"latin1", "windows1252", "utf8", "raw"}

func (e Encoding) String() string {
	if e < Latin1 || e > Raw {
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
	return encodingNames[e]
}

// ParseEncoding returns the encoding with the given name. The empty string
// names Latin1.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "", "latin1", "iso8859-1", "iso-8859-1":
		return Latin1, nil
	case "windows1252", "windows-1252", "cp1252":
		return Windows1252, nil
	case "utf8", "utf-8":
		return UTF8, nil
	case "raw", "binary":
		return Raw, nil
	}
	return 0, fmt.Errorf("whitespace: unknown output encoding %q", name)
}

// writeChar writes v as a character.
func writeChar(w *bufio.Writer, enc Encoding, v int64) error {
	var err error
	switch enc {
	case Latin1:
		_, err = w.WriteRune(charmap.ISO8859_1.DecodeByte(byte(v)))
	case Windows1252:
		_, err = w.WriteRune(charmap.Windows1252.DecodeByte(byte(v)))
	case UTF8:
		r := rune(v)
		if int64(r) != v || !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		_, err = w.WriteRune(r)
	default:
		err = w.WriteByte(byte(v))
	}
	return err
}

// writeNum writes v in decimal.
func writeNum(w *bufio.Writer, v int64) error {
	var buf [20]byte
	_, err := w.Write(strconv.AppendInt(buf[:0], v, 10))
	return err
}

// readChar reads exactly one byte. End of input is io.ErrUnexpectedEOF.
func readChar(r *bufio.Reader) (int64, error) {
	b, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return int64(b), nil
}

// readNum reads one line and parses it as a decimal integer, ignoring
// surrounding space. A final line without a linefeed is accepted; end of
// input before any character is io.ErrUnexpectedEOF.
func readNum(r *bufio.Reader) (int64, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return 0, err
		}
		if line == "" {
			return 0, io.ErrUnexpectedEOF
		}
	}
	return strconv.ParseInt(strings.TrimSpace(line), 10, 64)
}
