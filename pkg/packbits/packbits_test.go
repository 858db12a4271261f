package packbits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLiteralRun(t *testing.T) {
	// header 2 => 3 literal bytes follow
	src := []byte{2, 0x11, 0x22, 0x33}
	dst := make([]byte, 3)
	n := Decode(src, 0, len(src), dst, 0, len(dst))
	require.Equal(t, 3, n)
	require.Equal(t, []byte{0x11, 0x22, 0x33}, dst)
}

func TestRepeatRun(t *testing.T) {
	// header -3 (0xFD) => repeat next byte 4 times
	src := []byte{0xFD, 0xAA}
	dst := make([]byte, 4)
	n := Decode(src, 0, len(src), dst, 0, len(dst))
	require.Equal(t, 4, n)
	require.Equal(t, []byte{0xAA, 0xAA, 0xAA, 0xAA}, dst)
}

func TestNoOpHeader(t *testing.T) {
	src := []byte{0x80, 1, 0xFF} // -128 no-op, then literal run of 2
	dst := make([]byte, 2)
	n := Decode(src, 0, len(src), dst, 0, len(dst))
	require.Equal(t, 2, n)
	require.Equal(t, []byte{1, 0xFF}, dst)
}

func TestDestinationTruncation(t *testing.T) {
	src := []byte{4, 1, 2, 3, 4, 5} // literal run of 5, only room for 3
	dst := make([]byte, 3)
	n := Decode(src, 0, len(src), dst, 0, len(dst))
	require.Equal(t, 3, n)
	require.Equal(t, []byte{1, 2, 3}, dst)
}

func TestUnderLongScanlineLeavesRemainderUntouched(t *testing.T) {
	src := []byte{0, 0xAA} // one literal byte only
	dst := []byte{9, 9, 9}
	n := Decode(src, 0, len(src), dst, 0, len(dst))
	require.Equal(t, 1, n)
	require.Equal(t, []byte{0xAA, 9, 9}, dst)
}

// encode mirrors a conforming PackBits encoder closely enough to exercise
// the round-trip property from spec §8.
func encode(data []byte) []byte {
	var out []byte
	i := 0
	for i < len(data) {
		runLen := 1
		for i+runLen < len(data) && data[i+runLen] == data[i] && runLen < 128 {
			runLen++
		}
		if runLen >= 2 {
			out = append(out, byte(int8(1-runLen)), data[i])
			i += runLen
			continue
		}
		// literal run: gather until next repeat of length >= 2
		litStart := i
		i++
		for i < len(data) && i-litStart < 128 {
			if i+1 < len(data) && data[i] == data[i+1] {
				break
			}
			i++
		}
		out = append(out, byte(i-litStart-1))
		out = append(out, data[litStart:i]...)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	original := []byte{1, 1, 1, 1, 2, 3, 4, 5, 5, 5, 9}
	enc := encode(original)

	dst := make([]byte, len(original))
	n := Decode(enc, 0, len(enc), dst, 0, len(dst))
	require.Equal(t, len(original), n)
	require.Equal(t, original, dst)
}
