package tokenfusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFusionErrorCodes(t *testing.T) {
	assert.EqualValues(t, 6000, ErrIncorrectOwner)
	assert.EqualValues(t, 6009, ErrInvalidNextAssetIndex)
	assert.EqualValues(t, 6010, ErrCollectionKeyMismatch)
	assert.EqualValues(t, 6020, ErrIncorrectCollectionMint)
	assert.EqualValues(t, 6023, ErrFusionPaused)
	assert.EqualValues(t, 6024, ErrInvalidTokenAmounts)
	assert.EqualValues(t, 6025, ErrMaxSupplyReached)
	assert.EqualValues(t, 6026, ErrInvalidProtocolFeeWallet)
	assert.EqualValues(t, 6027, ErrInvalidFeeRecipient)
}

func TestGetFusionError(t *testing.T) {
	e, ok := GetFusionError(6023)
	assert.True(t, ok)
	assert.Equal(t, ErrFusionPaused, e)
	assert.Equal(t, "Fusion paused", e.Error())

	for code := uint32(6000); code <= 6027; code++ {
		e, ok := GetFusionError(code)
		assert.True(t, ok, code)
		assert.NotContains(t, e.Error(), "unknown", code)
	}

	_, ok = GetFusionError(5999)
	assert.False(t, ok)
	_, ok = GetFusionError(6028)
	assert.False(t, ok)
	_, ok = GetFusionError(AnchorErrConstraintHasOne)
	assert.False(t, ok)

	assert.Equal(t, "unknown fusion error: 7000", FusionError(7000).Error())
}
