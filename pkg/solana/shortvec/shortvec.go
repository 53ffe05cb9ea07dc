// Package shortvec implements the compact-u16 length prefix used by the
// Solana wire format.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

const maxEncodedLen = 3

// EncodeLen encodes the specified len into the writer.
//
// If len > math.MaxUint16, an error is returned.
func EncodeLen(w io.Writer, len int) (n int, err error) {
	if len < 0 || len > math.MaxUint16 {
		return 0, errors.Errorf("len %d outside of [0, %d]", len, math.MaxUint16)
	}

	buf := make([]byte, 0, maxEncodedLen)
	for {
		b := byte(len & 0x7f)
		len >>= 7
		if len == 0 {
			buf = append(buf, b)
			break
		}
		buf = append(buf, b|0x80)
	}

	return w.Write(buf)
}

// DecodeLen decodes a shortvec encoded len from the reader. At most three
// bytes are consumed.
func DecodeLen(r io.Reader) (val int, err error) {
	b := make([]byte, 1)

	for offset := 0; offset < maxEncodedLen; offset++ {
		if _, err := io.ReadFull(r, b); err != nil {
			return 0, errors.Wrap(err, "failed to read shortvec byte")
		}

		val |= int(b[0]&0x7f) << (offset * 7)
		if b[0]&0x80 == 0 {
			if val > math.MaxUint16 {
				return 0, errors.Errorf("shortvec value %d exceeds %d", val, math.MaxUint16)
			}
			return val, nil
		}
	}

	return 0, errors.Errorf("invalid size (max %d)", maxEncodedLen)
}
