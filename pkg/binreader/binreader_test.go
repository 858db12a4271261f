package binreader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadIntegers(t *testing.T) {
	buf := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03}
	r := New(buf)

	u16, err := r.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(1), u16)

	u32, err := r.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(2), u32)

	u64, err := r.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(3), u64)
}

func TestTruncated(t *testing.T) {
	r := New([]byte{0x00})
	_, err := r.Uint16()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestSkipAndBytes(t *testing.T) {
	r := New([]byte{1, 2, 3, 4, 5})
	require.NoError(t, r.Skip(2))
	b, err := r.Bytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 4}, b)
	require.Equal(t, 4, r.Offset())

	require.Error(t, r.Skip(10))
}
