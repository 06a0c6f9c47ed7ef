package metastring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, s string, special1, special2 byte, wantEncoding Encoding) {
	t.Helper()
	require := require.New(t)

	ms, err := Encode(s, special1, special2)
	require.NoError(err)
	require.Equal(wantEncoding, ms.Encoding)

	got, err := Decode(ms)
	require.NoError(err)
	require.Equal(s, got)
}

func TestEncodeDecodeLowerSpecial(t *testing.T) {
	roundTrip(t, "com.example", '.', '_', EncodingLowerSpecial)
	roundTrip(t, "", '.', '_', EncodingLowerSpecial)
	roundTrip(t, "a", '.', '_', EncodingLowerSpecial)
}

func TestEncodeDecodeLUDS(t *testing.T) {
	roundTrip(t, "com.example2", '.', '_', EncodingLowerUpperDigitSpecial)
	roundTrip(t, "v2.Field_1", '.', '_', EncodingLowerUpperDigitSpecial)
}

func TestEncodeDecodeFirstToLower(t *testing.T) {
	roundTrip(t, "Namespace", '.', '_', EncodingFirstToLowerSpecial)
	roundTrip(t, "Field", '.', '_', EncodingFirstToLowerSpecial)
}

func TestEncodeDecodeAllToLower(t *testing.T) {
	roundTrip(t, "someFieldName", '.', '_', EncodingAllToLowerSpecial)
}

func TestEncodeDecodeUTF8Fallback(t *testing.T) {
	roundTrip(t, "Helloéÿ", '.', '_', EncodingUTF8)
	roundTrip(t, "日本語", '.', '_', EncodingUTF8)
}

func TestEncodeRejectsOverlongInput(t *testing.T) {
	require := require.New(t)

	huge := make([]byte, MaxLength+1)
	for i := range huge {
		huge[i] = 'a'
	}

	_, err := Encode(string(huge), '.', '_')
	require.Error(err)
}

func TestPackBitsBoundaries(t *testing.T) {
	require := require.New(t)

	for n := 0; n < 40; n++ {
		codes := make([]int, n)
		for i := range codes {
			codes[i] = i % 31
		}

		packed := packBits(codes, 5)
		got := unpackBits(packed, 5)

		require.Equal(codes, got, "n=%d", n)
	}
}

func TestDecodeUnknownEncoding(t *testing.T) {
	require := require.New(t)

	_, err := Decode(MetaString{Encoding: Encoding(99), Data: []byte{1, 2, 3}})
	require.Error(err)
}
