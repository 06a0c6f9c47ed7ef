package object

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/arloliu/xwire/buffer"
	"github.com/arloliu/xwire/errs"
)

// String payload encoding tags, per §4.7/§6.2.
const (
	stringEncLatin1  = 0
	stringEncUTF16LE = 1
	stringEncUTF8    = 2
)

// asciiSampleSize bounds how many leading runes the encoder inspects
// when deciding between UTF-8 and UTF-16LE for a non-Latin-1 string.
const asciiSampleSize = 64

// asciiRatioNumerator/Denominator set the fraction of the leading sample
// that must be ASCII for the encoder to prefer UTF-8 over UTF-16LE: a
// strict majority, since UTF-8 costs one byte per ASCII codepoint against
// UTF-16LE's two.
const asciiRatioNumerator, asciiRatioDenominator = 1, 2

// WriteString writes a string payload: the var_uint36_small header
// `(byte_length << 2) | encoding_tag` followed by the raw encoded bytes,
// per §4.7. The encoder picks Latin-1 when every codepoint fits in
// 0x00-0xFF, UTF-8 when the ASCII ratio of a leading sample exceeds the
// threshold, and UTF-16LE otherwise.
func WriteString(buf *buffer.Buffer, s string) error {
	if !utf8.ValidString(s) {
		return errs.NewEncodingError("string payload: input is not valid UTF-8")
	}

	switch chooseStringEncoding(s) {
	case stringEncLatin1:
		data := make([]byte, 0, len(s))
		for _, r := range s {
			data = append(data, byte(r))
		}

		writeStringHeader(buf, len(data), stringEncLatin1)
		buf.WriteBytes(data)

	case stringEncUTF16LE:
		units := utf16.Encode([]rune(s))
		data := make([]byte, 0, len(units)*2)
		for _, u := range units {
			data = append(data, byte(u), byte(u>>8))
		}

		writeStringHeader(buf, len(data), stringEncUTF16LE)
		buf.WriteBytes(data)

	default:
		data := []byte(s)
		writeStringHeader(buf, len(data), stringEncUTF8)
		buf.WriteBytes(data)
	}

	return nil
}

func writeStringHeader(buf *buffer.Buffer, byteLength int, encTag uint64) {
	buf.WriteVarUint36Small(uint64(byteLength)<<2 | encTag)
}

// chooseStringEncoding implements §4.7's selection rule.
func chooseStringEncoding(s string) int {
	latin1 := true

	for _, r := range s {
		if r > 0xFF {
			latin1 = false
			break
		}
	}

	if latin1 {
		return stringEncLatin1
	}

	sample := s
	runeCount := 0
	asciiCount := 0

	for _, r := range sample {
		if runeCount >= asciiSampleSize {
			break
		}

		runeCount++

		if r < 0x80 {
			asciiCount++
		}
	}

	if runeCount > 0 && asciiCount*asciiRatioDenominator > runeCount*asciiRatioNumerator {
		return stringEncUTF8
	}

	return stringEncUTF16LE
}

// ReadString reads a string payload written by WriteString.
func ReadString(buf *buffer.Buffer) (string, error) {
	header, err := buf.ReadVarUint36Small()
	if err != nil {
		return "", err
	}

	byteLength := int(header >> 2)
	encTag := header & 0x3

	data, err := buf.ReadBytes(byteLength)
	if err != nil {
		return "", err
	}

	switch encTag {
	case stringEncLatin1:
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}

		return string(runes), nil

	case stringEncUTF16LE:
		if len(data)%2 != 0 {
			return "", errs.NewInvalidDataError("string payload: odd-length UTF-16LE data")
		}

		units := make([]uint16, len(data)/2)
		hasSurrogate := false

		for i := range units {
			units[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
			if units[i] >= 0xD800 && units[i] <= 0xDFFF {
				hasSurrogate = true
			}
		}

		if !hasSurrogate {
			// Zero-copy-eligible view: every unit is a standalone BMP
			// codepoint, so decoding is a direct widen with no surrogate
			// pairing needed.
			runes := make([]rune, len(units))
			for i, u := range units {
				runes[i] = rune(u)
			}

			return string(runes), nil
		}

		return string(utf16.Decode(units)), nil

	case stringEncUTF8:
		if !utf8.Valid(data) {
			return "", errs.NewInvalidDataError("string payload: invalid UTF-8 bytes")
		}

		return string(data), nil

	default:
		return "", errs.NewInvalidDataError("string payload: unsupported encoding tag")
	}
}

// WriteBinary writes a binary blob payload: var_uint32(length) then raw
// bytes, per §4.7.
func WriteBinary(buf *buffer.Buffer, data []byte) {
	buf.WriteVarUint32(uint32(len(data)))
	buf.WriteBytes(data)
}

// ReadBinary reads a binary blob payload written by WriteBinary.
func ReadBinary(buf *buffer.Buffer) ([]byte, error) {
	n, err := buf.ReadVarUint32()
	if err != nil {
		return nil, err
	}

	return buf.ReadBytes(int(n))
}
