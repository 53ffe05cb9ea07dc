package tokenfusion

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetDataV1_Validate(t *testing.T) {
	valid := AssetDataV1{
		NextIndex:  1,
		NamePrefix: "Sinner #",
		UriPrefix:  "https://meta.sindao.org/metadata/",
		UriSuffix:  ".json",
	}
	require.NoError(t, valid.Validate())

	atLimits := AssetDataV1{
		NextIndex:  1,
		NamePrefix: strings.Repeat("n", MaxAssetNamePrefixLength),
		UriPrefix:  strings.Repeat("u", MaxAssetUriPrefixLength),
		UriSuffix:  strings.Repeat("s", MaxAssetUriSuffixLength),
	}
	require.NoError(t, atLimits.Validate())

	for _, mutate := range []func(*AssetDataV1){
		func(a *AssetDataV1) { a.NamePrefix += "n" },
		func(a *AssetDataV1) { a.UriPrefix += "u" },
		func(a *AssetDataV1) { a.UriSuffix += "s" },
	} {
		invalid := atLimits.Clone()
		mutate(&invalid)
		assert.True(t, errors.Is(invalid.Validate(), ErrExceededLengthError))
	}

	zeroIndex := valid.Clone()
	zeroIndex.NextIndex = 0
	assert.Equal(t, ErrInvalidNextAssetIndex, zeroIndex.Validate())
}

func TestAssetDataV1_NextAsset(t *testing.T) {
	a := AssetDataV1{
		NextIndex:  42,
		NamePrefix: "Sinner #",
		UriPrefix:  "https://meta.sindao.org/metadata/",
		UriSuffix:  ".json",
	}
	assert.Equal(t, "Sinner #42", a.NextAssetName())
	assert.Equal(t, "https://meta.sindao.org/metadata/42.json", a.NextAssetURI())
}

func TestAssetDataV1_Clone(t *testing.T) {
	maxSupply := uint32(10)
	a := AssetDataV1{MaxSupply: &maxSupply, NextIndex: 1}

	cloned := a.Clone()
	*cloned.MaxSupply = 20
	assert.EqualValues(t, 10, *a.MaxSupply)
	assert.Contains(t, a.String(), "max_supply=10")

	a.MaxSupply = nil
	assert.Contains(t, a.String(), "max_supply=none")
}

func TestFeeDataV1_Validate(t *testing.T) {
	recipient, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	noFees := FeeDataV1{EscrowAmount: 100_000_000_000}
	assert.NoError(t, noFees.Validate())
	assert.False(t, noFees.IsFeeCharged())

	tokenFee := FeeDataV1{EscrowAmount: 1, FeeAmount: 1}
	assert.Equal(t, ErrInvalidFeeRecipient, tokenFee.Validate())

	solFee := FeeDataV1{SolFeeAmount: 1}
	assert.Equal(t, ErrInvalidFeeRecipient, solFee.Validate())

	solFee.FeeRecipient = recipient
	assert.NoError(t, solFee.Validate())
	assert.True(t, solFee.IsFeeCharged())

	// A recipient without fees is allowed but unused.
	idle := FeeDataV1{FeeRecipient: recipient}
	assert.NoError(t, idle.Validate())
	assert.False(t, idle.IsFeeCharged())
}

func TestFeeDataV1_TokensRequired(t *testing.T) {
	f := FeeDataV1{
		EscrowAmount: 100_000_000_000,
		FeeAmount:    5,
		BurnAmount:   7,
	}
	required, ok := f.TokensRequired()
	require.True(t, ok)
	assert.EqualValues(t, 100_000_000_012, required)

	overflow := FeeDataV1{EscrowAmount: ^uint64(0), FeeAmount: 1}
	_, ok = overflow.TokensRequired()
	assert.False(t, ok)

	overflow = FeeDataV1{EscrowAmount: ^uint64(0) - 1, FeeAmount: 1, BurnAmount: 1}
	_, ok = overflow.TokensRequired()
	assert.False(t, ok)
}
