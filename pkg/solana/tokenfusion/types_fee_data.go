package tokenfusion

import (
	"crypto/ed25519"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"

	"github.com/code-payments/token-fusion/pkg/solana/binary"
)

const (
	FeeDataSize = (8 + // escrow_amount
		8 + // fee_amount
		8 + // burn_amount
		8 + // sol_fee_amount
		1 + 32) // fee_recipient
)

// FeeDataV1 holds the token amounts moved by a fusion. All amounts are in
// base units.
type FeeDataV1 struct {
	// Tokens locked in escrow per asset and returned on fusion from the asset.
	EscrowAmount uint64
	// Tokens sent to the fee recipient on fusion into an asset.
	FeeAmount uint64
	// Tokens burned on fusion into an asset.
	BurnAmount uint64
	// Lamports sent to the fee recipient on fusion into an asset.
	SolFeeAmount uint64
	FeeRecipient ed25519.PublicKey
}

func (obj *FeeDataV1) Validate() error {
	if (obj.FeeAmount > 0 || obj.SolFeeAmount > 0) && len(obj.FeeRecipient) == 0 {
		return ErrInvalidFeeRecipient
	}
	return nil
}

// IsFeeCharged reports whether fusing into an asset pays the fee recipient.
func (obj *FeeDataV1) IsFeeCharged() bool {
	return (obj.FeeAmount > 0 || obj.SolFeeAmount > 0) && len(obj.FeeRecipient) > 0
}

// TokensRequired is the user token balance needed to fuse into one asset.
func (obj *FeeDataV1) TokensRequired() (uint64, bool) {
	total := obj.EscrowAmount + obj.FeeAmount
	if total < obj.EscrowAmount {
		return 0, false
	}
	withBurn := total + obj.BurnAmount
	if withBurn < total {
		return 0, false
	}
	return withBurn, true
}

func (obj *FeeDataV1) Clone() FeeDataV1 {
	cloned := *obj
	if obj.FeeRecipient != nil {
		cloned.FeeRecipient = append(ed25519.PublicKey(nil), obj.FeeRecipient...)
	}
	return cloned
}

func (obj *FeeDataV1) String() string {
	feeRecipient := "none"
	if len(obj.FeeRecipient) > 0 {
		feeRecipient = base58.Encode(obj.FeeRecipient)
	}

	return fmt.Sprintf(
		"FeeDataV1{escrow_amount=%d,fee_amount=%d,burn_amount=%d,sol_fee_amount=%d,fee_recipient=%s}",
		obj.EscrowAmount,
		obj.FeeAmount,
		obj.BurnAmount,
		obj.SolFeeAmount,
		feeRecipient,
	)
}

func (obj *FeeDataV1) MarshalWithEncoder(enc *bin.Encoder) error {
	for _, amount := range []uint64{obj.EscrowAmount, obj.FeeAmount, obj.BurnAmount, obj.SolFeeAmount} {
		if err := enc.WriteUint64(amount, bin.LE); err != nil {
			return err
		}
	}
	return binary.WriteOptionalKey(enc, obj.FeeRecipient)
}

func (obj *FeeDataV1) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	for _, amount := range []*uint64{&obj.EscrowAmount, &obj.FeeAmount, &obj.BurnAmount, &obj.SolFeeAmount} {
		if *amount, err = dec.ReadUint64(bin.LE); err != nil {
			return err
		}
	}
	obj.FeeRecipient, err = binary.ReadOptionalKey(dec)
	return err
}
