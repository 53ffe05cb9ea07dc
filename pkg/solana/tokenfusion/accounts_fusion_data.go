package tokenfusion

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/token-fusion/pkg/solana/binary"
)

const (
	FusionDataAccountSize = (8 + // discriminator
		32 + // authority
		32 + // collection
		32 + // token_mint
		1 + // paused
		MaxAssetDataSize + // asset_data
		FeeDataSize) // fee_data
)

var FusionDataAccountDiscriminator = []byte{188, 143, 154, 238, 143, 150, 224, 92}

type FusionDataAccount struct {
	Authority  ed25519.PublicKey
	Collection ed25519.PublicKey
	TokenMint  ed25519.PublicKey
	Paused     bool
	AssetData  AssetDataV1
	FeeData    FeeDataV1
}

func (obj *FusionDataAccount) Marshal() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer don't fail.
	_ = obj.MarshalWithEncoder(bin.NewBorshEncoder(&buf))
	return buf.Bytes()
}

func (obj *FusionDataAccount) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteBytes(FusionDataAccountDiscriminator, false); err != nil {
		return err
	}
	for _, key := range []ed25519.PublicKey{obj.Authority, obj.Collection, obj.TokenMint} {
		if err := binary.WriteKey(enc, key); err != nil {
			return err
		}
	}
	if err := enc.WriteBool(obj.Paused); err != nil {
		return err
	}
	if err := obj.AssetData.MarshalWithEncoder(enc); err != nil {
		return err
	}
	return obj.FeeData.MarshalWithEncoder(enc)
}

// Unmarshal decodes the account. Bytes after the encoded value are the
// unused part of the allocated space and must lie within it.
func (obj *FusionDataAccount) Unmarshal(data []byte) error {
	if len(data) > FusionDataAccountSize {
		return ErrInvalidAccountData
	}
	if !bytes.HasPrefix(data, FusionDataAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	if err := obj.UnmarshalWithDecoder(bin.NewBorshDecoder(data)); err != nil {
		return errors.Wrap(ErrInvalidAccountData, err.Error())
	}
	return nil
}

func (obj *FusionDataAccount) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	discriminator, err := dec.ReadNBytes(len(FusionDataAccountDiscriminator))
	if err != nil {
		return err
	}
	if !bytes.Equal(discriminator, FusionDataAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	for _, key := range []*ed25519.PublicKey{&obj.Authority, &obj.Collection, &obj.TokenMint} {
		if *key, err = binary.ReadKey(dec); err != nil {
			return err
		}
	}
	if obj.Paused, err = binary.ReadBool(dec); err != nil {
		return err
	}
	if err = obj.AssetData.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	return obj.FeeData.UnmarshalWithDecoder(dec)
}

func (obj *FusionDataAccount) String() string {
	return fmt.Sprintf(
		"FusionData{authority=%s,collection=%s,token_mint=%s,paused=%t,asset_data=%s,fee_data=%s}",
		base58.Encode(obj.Authority),
		base58.Encode(obj.Collection),
		base58.Encode(obj.TokenMint),
		obj.Paused,
		obj.AssetData.String(),
		obj.FeeData.String(),
	)
}
