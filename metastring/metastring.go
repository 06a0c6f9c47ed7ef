// Package metastring implements the compact identifier codec xwire uses
// for namespaces, type names, and field names (§4.3). Five sub-encodings
// trade bit width for alphabet coverage; Encode picks the cheapest one
// that can represent the input, the same way VarStringEncoder in mebo
// picks a length-prefix width for its payload, generalized here to a
// five-way choice over bit-packed alphabets instead of a single byte
// length.
package metastring

import (
	"unicode/utf8"

	"github.com/arloliu/xwire/errs"
)

// Encoding identifies which of the five MetaString sub-encodings produced
// a given blob.
type Encoding uint8

const (
	EncodingUTF8 Encoding = iota
	EncodingLowerSpecial
	EncodingLowerUpperDigitSpecial
	EncodingFirstToLowerSpecial
	EncodingAllToLowerSpecial
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF8"
	case EncodingLowerSpecial:
		return "LowerSpecial"
	case EncodingLowerUpperDigitSpecial:
		return "LowerUpperDigitSpecial"
	case EncodingFirstToLowerSpecial:
		return "FirstToLowerSpecial"
	case EncodingAllToLowerSpecial:
		return "AllToLowerSpecial"
	default:
		return "Invalid"
	}
}

// MaxLength is the maximum decoded length a MetaString may represent,
// per §3.1.
const MaxLength = 32767

// DefaultSpecial1 and DefaultSpecial2 are the per-context special
// characters used when the caller has no more specific pair in mind
// (e.g. encoding a free-standing identifier rather than a namespace or
// field name). Namespaces conventionally use '.' and '_'; field names
// conventionally use '$' and '|'.
const (
	DefaultSpecial1 = '.'
	DefaultSpecial2 = '_'
)

// MetaString is the encoded form of a short identifier: the sub-encoding
// tag, the packed bytes, and the two context special characters used by
// the LowerUpperDigitSpecial family (§3.1).
type MetaString struct {
	Encoding           Encoding
	Data               []byte
	Special1, Special2 byte
}

// Encode picks the cheapest sub-encoding that represents s exactly and
// returns the encoded MetaString, per the auto-mode selection rules in
// §4.3.
func Encode(s string, special1, special2 byte) (MetaString, error) {
	if len(s) > MaxLength {
		return MetaString{}, errs.NewEncodingError("identifier exceeds max length")
	}

	if !isLatin1(s) {
		if !utf8.ValidString(s) {
			return MetaString{}, errs.NewEncodingError("input is neither Latin-1 nor valid UTF-8")
		}

		return MetaString{Encoding: EncodingUTF8, Data: []byte(s)}, nil
	}

	// raw holds the UTF-8 bytes of s: a non-ASCII Latin-1 character takes
	// two bytes here, matches neither alphabet, and falls through to UTF8.
	raw := []byte(s)

	eligibleLowerSpecial := true
	eligibleLUDS := true
	digitCount := 0
	upperCount := 0
	firstUpperOnly := len(raw) > 0 && raw[0] >= 'A' && raw[0] <= 'Z'

	for i, ch := range raw {
		if _, ok := lowerSpecialCode(ch); !ok {
			eligibleLowerSpecial = false
		}

		if _, ok := ludsCode(ch, special1, special2); !ok {
			eligibleLUDS = false
		}

		switch {
		case ch >= '0' && ch <= '9':
			digitCount++
		case ch >= 'A' && ch <= 'Z':
			upperCount++

			if i != 0 {
				firstUpperOnly = false
			}
		}
	}

	switch {
	case eligibleLowerSpecial:
		return encodeLowerSpecial(raw), nil
	case eligibleLUDS && digitCount > 0:
		return encodeLUDS(raw, special1, special2), nil
	case eligibleLUDS && firstUpperOnly && upperCount == 1:
		return encodeFirstToLower(raw, special1, special2), nil
	case eligibleLUDS && (len(raw)+upperCount)*5 < len(raw)*6:
		return encodeAllToLower(raw), nil
	case eligibleLUDS:
		return encodeLUDS(raw, special1, special2), nil
	default:
		return MetaString{Encoding: EncodingUTF8, Data: []byte(s)}, nil
	}
}

func isLatin1(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}

	return true
}

func encodeLowerSpecial(raw []byte) MetaString {
	codes := make([]int, len(raw))
	for i, ch := range raw {
		codes[i], _ = lowerSpecialCode(ch)
	}

	return MetaString{Encoding: EncodingLowerSpecial, Data: packBits(codes, 5)}
}

func encodeLUDS(raw []byte, special1, special2 byte) MetaString {
	codes := make([]int, len(raw))
	for i, ch := range raw {
		codes[i], _ = ludsCode(ch, special1, special2)
	}

	return MetaString{
		Encoding: EncodingLowerUpperDigitSpecial,
		Data:     packBits(codes, 6),
		Special1: special1, Special2: special2,
	}
}

func encodeFirstToLower(raw []byte, special1, special2 byte) MetaString {
	lowered := make([]byte, len(raw))
	copy(lowered, raw)
	lowered[0] = lowered[0] - 'A' + 'a'

	codes := make([]int, len(lowered))
	for i, ch := range lowered {
		codes[i], _ = ludsCode(ch, special1, special2)
	}

	return MetaString{
		Encoding: EncodingFirstToLowerSpecial,
		Data:     packBits(codes, 6),
		Special1: special1, Special2: special2,
	}
}

func encodeAllToLower(raw []byte) MetaString {
	transformed := make([]byte, 0, len(raw)+4)

	for _, ch := range raw {
		if ch >= 'A' && ch <= 'Z' {
			transformed = append(transformed, '|', ch-'A'+'a')
		} else {
			transformed = append(transformed, ch)
		}
	}

	codes := make([]int, len(transformed))
	for i, ch := range transformed {
		codes[i], _ = lowerSpecialCode(ch)
	}

	return MetaString{Encoding: EncodingAllToLowerSpecial, Data: packBits(codes, 5)}
}

// Decode reverses Encode, reconstructing the original identifier.
func Decode(ms MetaString) (string, error) {
	switch ms.Encoding {
	case EncodingUTF8:
		if !utf8.ValidString(string(ms.Data)) {
			return "", errs.NewEncodingError("invalid UTF-8 in MetaString data")
		}

		return string(ms.Data), nil

	case EncodingLowerSpecial:
		return decodeWithTable(ms.Data, 5, func(code int) (byte, bool) { return lowerSpecialChar(code) })

	case EncodingLowerUpperDigitSpecial:
		return decodeWithTable(ms.Data, 6, func(code int) (byte, bool) { return ludsChar(code, ms.Special1, ms.Special2) })

	case EncodingFirstToLowerSpecial:
		s, err := decodeWithTable(ms.Data, 6, func(code int) (byte, bool) { return ludsChar(code, ms.Special1, ms.Special2) })
		if err != nil {
			return "", err
		}

		if s == "" {
			return s, nil
		}

		b := []byte(s)
		b[0] = b[0] - 'a' + 'A'

		return string(b), nil

	case EncodingAllToLowerSpecial:
		s, err := decodeWithTable(ms.Data, 5, func(code int) (byte, bool) { return lowerSpecialChar(code) })
		if err != nil {
			return "", err
		}

		return unescapeAllToLower(s), nil

	default:
		return "", errs.NewInvalidDataError("unknown MetaString encoding tag")
	}
}

func decodeWithTable(data []byte, bitsPerChar int, toChar func(int) (byte, bool)) (string, error) {
	codes := unpackBits(data, bitsPerChar)

	out := make([]byte, len(codes))
	for i, c := range codes {
		ch, ok := toChar(c)
		if !ok {
			return "", errs.NewEncodingError("invalid character code in MetaString data")
		}

		out[i] = ch
	}

	if len(out) > MaxLength {
		return "", errs.NewInvalidDataError("decoded MetaString exceeds max length")
	}

	return string(out), nil
}

func unescapeAllToLower(s string) string {
	out := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '|' && i+1 < len(s) {
			i++
			out = append(out, s[i]-'a'+'A')

			continue
		}

		out = append(out, s[i])
	}

	return string(out)
}
