package object

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xwire/buffer"
)

func roundTripString(t *testing.T, s string) string {
	t.Helper()
	require := require.New(t)

	buf := buffer.New()
	require.NoError(WriteString(buf, s))

	got, err := ReadString(buf)
	require.NoError(err)

	return got
}

func TestStringRoundTripLatin1(t *testing.T) {
	require := require.New(t)

	s := "Helloéÿ"
	require.Equal(stringEncLatin1, chooseStringEncoding(s))
	require.Equal(s, roundTripString(t, s))
}

func TestStringRoundTripUTF8(t *testing.T) {
	require := require.New(t)

	s := "abc世界"
	require.Equal(stringEncUTF8, chooseStringEncoding(s))
	require.Equal(s, roundTripString(t, s))
}

func TestStringRoundTripUTF16(t *testing.T) {
	require := require.New(t)

	s := "你好世界a"
	require.Equal(stringEncUTF16LE, chooseStringEncoding(s))
	require.Equal(s, roundTripString(t, s))
}

func TestStringRoundTripLongASCIIPrefix(t *testing.T) {
	require := require.New(t)

	s := strings.Repeat("a", 64) + "世"
	require.Equal(stringEncUTF8, chooseStringEncoding(s))
	require.Equal(s, roundTripString(t, s))
}

func TestBinaryRoundTrip(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	data := []byte{1, 2, 3, 4, 5}
	WriteBinary(buf, data)

	got, err := ReadBinary(buf)
	require.NoError(err)
	require.Equal(data, got)
}
