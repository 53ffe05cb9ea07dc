package fusion

import (
	"crypto/ed25519"

	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
)

type changeKind uint8

const (
	changeNone changeKind = iota
	changeSet
	changeClear
)

// OptionalChange updates an optional on-chain field. The zero value leaves
// the field unchanged.
type OptionalChange[T any] struct {
	kind  changeKind
	value T
}

// SetOptional sets an optional field to value.
func SetOptional[T any](value T) OptionalChange[T] {
	return OptionalChange[T]{kind: changeSet, value: value}
}

// ClearOptional clears an optional field.
func ClearOptional[T any]() OptionalChange[T] {
	return OptionalChange[T]{kind: changeClear}
}

func (c OptionalChange[T]) IsUnchanged() bool { return c.kind == changeNone }
func (c OptionalChange[T]) IsSet() bool       { return c.kind == changeSet }
func (c OptionalChange[T]) IsCleared() bool   { return c.kind == changeClear }

// Value is the value being set. It is the zero value unless IsSet.
func (c OptionalChange[T]) Value() T {
	return c.value
}

// UpdateArgs lists the fields to change. Nil pointers and unchanged optional
// fields keep their on-chain values.
type UpdateArgs struct {
	MaxSupply  OptionalChange[uint32]
	NextIndex  *uint64
	NamePrefix *string
	UriPrefix  *string
	UriSuffix  *string

	EscrowAmount *uint64
	FeeAmount    *uint64
	BurnAmount   *uint64
	SolFeeAmount *uint64
	FeeRecipient OptionalChange[ed25519.PublicKey]
}

// IsEmpty reports whether no field would change.
func (a *UpdateArgs) IsEmpty() bool {
	return a.MaxSupply.IsUnchanged() &&
		a.NextIndex == nil &&
		a.NamePrefix == nil &&
		a.UriPrefix == nil &&
		a.UriSuffix == nil &&
		a.EscrowAmount == nil &&
		a.FeeAmount == nil &&
		a.BurnAmount == nil &&
		a.SolFeeAmount == nil &&
		a.FeeRecipient.IsUnchanged()
}

// Merge applies the changes on top of copies of the current asset and fee
// data. The inputs are not modified.
func (a *UpdateArgs) Merge(assetData *tokenfusion.AssetDataV1, feeData *tokenfusion.FeeDataV1) (tokenfusion.AssetDataV1, tokenfusion.FeeDataV1) {
	mergedAsset := assetData.Clone()
	mergedFee := feeData.Clone()

	switch {
	case a.MaxSupply.IsSet():
		maxSupply := a.MaxSupply.Value()
		mergedAsset.MaxSupply = &maxSupply
	case a.MaxSupply.IsCleared():
		mergedAsset.MaxSupply = nil
	}
	mergeValue(&mergedAsset.NextIndex, a.NextIndex)
	mergeValue(&mergedAsset.NamePrefix, a.NamePrefix)
	mergeValue(&mergedAsset.UriPrefix, a.UriPrefix)
	mergeValue(&mergedAsset.UriSuffix, a.UriSuffix)

	mergeValue(&mergedFee.EscrowAmount, a.EscrowAmount)
	mergeValue(&mergedFee.FeeAmount, a.FeeAmount)
	mergeValue(&mergedFee.BurnAmount, a.BurnAmount)
	mergeValue(&mergedFee.SolFeeAmount, a.SolFeeAmount)
	switch {
	case a.FeeRecipient.IsSet():
		mergedFee.FeeRecipient = append(ed25519.PublicKey(nil), a.FeeRecipient.Value()...)
	case a.FeeRecipient.IsCleared():
		mergedFee.FeeRecipient = nil
	}

	return mergedAsset, mergedFee
}

func mergeValue[T any](dst *T, change *T) {
	if change != nil {
		*dst = *change
	}
}
