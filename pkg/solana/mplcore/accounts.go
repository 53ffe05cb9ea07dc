package mplcore

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"

	"github.com/code-payments/token-fusion/pkg/solana/binary"
)

type UpdateAuthorityType uint8

const (
	UpdateAuthorityNone UpdateAuthorityType = iota
	UpdateAuthorityAddress
	UpdateAuthorityCollection
)

// UpdateAuthority is either absent, an address, or the collection the asset
// belongs to.
type UpdateAuthority struct {
	Type    UpdateAuthorityType
	Address ed25519.PublicKey
}

// BaseAssetV1 is the fixed part of an asset account. Plugin data that may
// follow it is ignored.
type BaseAssetV1 struct {
	Owner           ed25519.PublicKey
	UpdateAuthority UpdateAuthority
	Name            string
	Uri             string
	Seq             *uint64
}

// Collection returns the asset's collection, or nil if it has none.
func (obj *BaseAssetV1) Collection() ed25519.PublicKey {
	if obj.UpdateAuthority.Type != UpdateAuthorityCollection {
		return nil
	}
	return obj.UpdateAuthority.Address
}

func (obj *BaseAssetV1) Marshal() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer don't fail.
	_ = obj.MarshalWithEncoder(bin.NewBorshEncoder(&buf))
	return buf.Bytes()
}

func (obj *BaseAssetV1) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint8(uint8(KeyAssetV1)); err != nil {
		return err
	}
	if err := binary.WriteKey(enc, obj.Owner); err != nil {
		return err
	}
	if err := enc.WriteUint8(uint8(obj.UpdateAuthority.Type)); err != nil {
		return err
	}
	if obj.UpdateAuthority.Type != UpdateAuthorityNone {
		if err := binary.WriteKey(enc, obj.UpdateAuthority.Address); err != nil {
			return err
		}
	}
	if err := enc.WriteString(obj.Name); err != nil {
		return err
	}
	if err := enc.WriteString(obj.Uri); err != nil {
		return err
	}
	return binary.WriteOptionalUint64(enc, obj.Seq)
}

func (obj *BaseAssetV1) Unmarshal(data []byte) error {
	if err := obj.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return ErrInvalidAccountData
	}
	return nil
}

func (obj *BaseAssetV1) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	key, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	if Key(key) != KeyAssetV1 {
		return ErrInvalidAccountData
	}

	if obj.Owner, err = binary.ReadKey(dec); err != nil {
		return err
	}

	authorityType, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	obj.UpdateAuthority = UpdateAuthority{Type: UpdateAuthorityType(authorityType)}
	switch obj.UpdateAuthority.Type {
	case UpdateAuthorityNone:
	case UpdateAuthorityAddress, UpdateAuthorityCollection:
		if obj.UpdateAuthority.Address, err = binary.ReadKey(dec); err != nil {
			return err
		}
	default:
		return ErrInvalidAccountData
	}

	if obj.Name, err = dec.ReadString(); err != nil {
		return err
	}
	if obj.Uri, err = dec.ReadString(); err != nil {
		return err
	}
	obj.Seq, err = binary.ReadOptionalUint64(dec)
	return err
}

func (obj *BaseAssetV1) String() string {
	return fmt.Sprintf(
		"BaseAssetV1{owner=%s,name=%q,uri=%q}",
		base58.Encode(obj.Owner),
		obj.Name,
		obj.Uri,
	)
}

// BaseCollectionV1 is the fixed part of a collection account.
type BaseCollectionV1 struct {
	UpdateAuthority ed25519.PublicKey
	Name            string
	Uri             string
	NumMinted       uint32
	CurrentSize     uint32
}

func (obj *BaseCollectionV1) Marshal() []byte {
	var buf bytes.Buffer
	_ = obj.MarshalWithEncoder(bin.NewBorshEncoder(&buf))
	return buf.Bytes()
}

func (obj *BaseCollectionV1) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint8(uint8(KeyCollectionV1)); err != nil {
		return err
	}
	if err := binary.WriteKey(enc, obj.UpdateAuthority); err != nil {
		return err
	}
	if err := enc.WriteString(obj.Name); err != nil {
		return err
	}
	if err := enc.WriteString(obj.Uri); err != nil {
		return err
	}
	if err := enc.WriteUint32(obj.NumMinted, bin.LE); err != nil {
		return err
	}
	return enc.WriteUint32(obj.CurrentSize, bin.LE)
}

func (obj *BaseCollectionV1) Unmarshal(data []byte) error {
	if err := obj.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return ErrInvalidAccountData
	}
	return nil
}

func (obj *BaseCollectionV1) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	key, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	if Key(key) != KeyCollectionV1 {
		return ErrInvalidAccountData
	}

	if obj.UpdateAuthority, err = binary.ReadKey(dec); err != nil {
		return err
	}
	if obj.Name, err = dec.ReadString(); err != nil {
		return err
	}
	if obj.Uri, err = dec.ReadString(); err != nil {
		return err
	}
	if obj.NumMinted, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	obj.CurrentSize, err = dec.ReadUint32(bin.LE)
	return err
}

func (obj *BaseCollectionV1) String() string {
	return fmt.Sprintf(
		"BaseCollectionV1{update_authority=%s,name=%q,uri=%q,num_minted=%d,current_size=%d}",
		base58.Encode(obj.UpdateAuthority),
		obj.Name,
		obj.Uri,
		obj.NumMinted,
		obj.CurrentSize,
	)
}
