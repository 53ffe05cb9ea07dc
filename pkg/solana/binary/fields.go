package binary

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"
)

var (
	ErrInvalidBool   = errors.New("invalid bool value")
	ErrInvalidOption = errors.New("invalid option tag")
)

// WriteKey writes key as 32 raw bytes, zero padding a short or absent key.
func WriteKey(enc *bin.Encoder, key ed25519.PublicKey) error {
	var raw [ed25519.PublicKeySize]byte
	copy(raw[:], key)
	return enc.WriteBytes(raw[:], false)
}

// ReadKey copies the next 32 bytes out of the decoder's buffer.
func ReadKey(dec *bin.Decoder) (ed25519.PublicKey, error) {
	raw, err := dec.ReadNBytes(ed25519.PublicKeySize)
	if err != nil {
		return nil, err
	}
	return append(ed25519.PublicKey(nil), raw...), nil
}

// ReadBool only accepts 0 and 1.
func ReadBool(dec *bin.Decoder) (bool, error) {
	b, err := dec.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.Wrapf(ErrInvalidBool, "got %d", b)
}

func readOption(dec *bin.Decoder) (bool, error) {
	b, err := dec.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, errors.Wrapf(ErrInvalidOption, "got %d", b)
}

func WriteOptionalKey(enc *bin.Encoder, key ed25519.PublicKey) error {
	if err := enc.WriteOption(len(key) > 0); err != nil || len(key) == 0 {
		return err
	}
	return WriteKey(enc, key)
}

func ReadOptionalKey(dec *bin.Decoder) (ed25519.PublicKey, error) {
	ok, err := readOption(dec)
	if err != nil || !ok {
		return nil, err
	}
	return ReadKey(dec)
}

func WriteOptionalUint32(enc *bin.Encoder, v *uint32) error {
	if err := enc.WriteOption(v != nil); err != nil || v == nil {
		return err
	}
	return enc.WriteUint32(*v, bin.LE)
}

func ReadOptionalUint32(dec *bin.Decoder) (*uint32, error) {
	ok, err := readOption(dec)
	if err != nil || !ok {
		return nil, err
	}
	v, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func WriteOptionalUint64(enc *bin.Encoder, v *uint64) error {
	if err := enc.WriteOption(v != nil); err != nil || v == nil {
		return err
	}
	return enc.WriteUint64(*v, bin.LE)
}

func ReadOptionalUint64(dec *bin.Decoder) (*uint64, error) {
	ok, err := readOption(dec)
	if err != nil || !ok {
		return nil, err
	}
	v, err := dec.ReadUint64(bin.LE)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
