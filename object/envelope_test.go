package object

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/xwire/buffer"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	WriteEnvelope(buf, false, true)

	isNull, err := ReadEnvelope(buf, true)
	require.NoError(err)
	require.False(isNull)
}

func TestEnvelopeNullShortCircuits(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	WriteEnvelope(buf, true, false)

	isNull, err := ReadEnvelope(buf, false)
	require.NoError(err)
	require.True(isNull)
}

func TestEnvelopeXLangMismatch(t *testing.T) {
	require := require.New(t)

	buf := buffer.New()
	WriteEnvelope(buf, false, true)

	_, err := ReadEnvelope(buf, false)
	require.Error(err)
}
