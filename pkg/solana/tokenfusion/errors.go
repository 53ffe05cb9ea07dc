package tokenfusion

import "fmt"

// FusionError is a custom error code returned by the program.
type FusionError uint32

const (
	ErrIncorrectOwner FusionError = iota + 6000
	ErrUninitialized
	ErrMintMismatch
	ErrIndexGreaterThanLength
	ErrNumericalOverflowError
	ErrTooManyCreators
	ErrIncorrectCollectionAuthority
	ErrMetadataAccountMustBeEmpty
	ErrExceededLengthError
	ErrInvalidNextAssetIndex
	ErrCollectionKeyMismatch
	ErrTokenKeyMismatch
	ErrInstructionBuilderFailed
	ErrMissingCollectionAuthorityRecord
	ErrMissingMetadataDelegateRecord
	ErrInvalidTokenStandard
	ErrMissingTokenAccount
	ErrMissingTokenRecord
	ErrMissingInstructionsSysvar
	ErrMissingSplAtaProgram
	ErrIncorrectCollectionMint
	ErrMissingCollectionMint
	ErrMetadataAccountIsEmpty
	ErrFusionPaused
	ErrInvalidTokenAmounts
	ErrMaxSupplyReached
	ErrInvalidProtocolFeeWallet
	ErrInvalidFeeRecipient
)

// Anchor framework errors the program can surface.
const (
	AnchorErrConstraintHasOne      uint32 = 2001
	AnchorErrConstraintSeeds       uint32 = 2006
	AnchorErrAccountNotInitialized uint32 = 3012
)

var fusionErrorMessages = map[FusionError]string{
	ErrIncorrectOwner:                   "Account does not have correct owner",
	ErrUninitialized:                    "Account is not initialized",
	ErrMintMismatch:                     "Mint Mismatch",
	ErrIndexGreaterThanLength:           "Index greater than length",
	ErrNumericalOverflowError:           "Numerical overflow error",
	ErrTooManyCreators:                  "Can only provide up to 4 creators",
	ErrIncorrectCollectionAuthority:     "Incorrect collection NFT authority",
	ErrMetadataAccountMustBeEmpty:       "The metadata account has data in it, and this must be empty to mint a new NFT",
	ErrExceededLengthError:              "Value longer than expected maximum value",
	ErrInvalidNextAssetIndex:            "Next asset index should be gt 0",
	ErrCollectionKeyMismatch:            "Collection public key mismatch",
	ErrTokenKeyMismatch:                 "Token public key mismatch",
	ErrInstructionBuilderFailed:         "Instruction could not be created",
	ErrMissingCollectionAuthorityRecord: "Missing collection authority record",
	ErrMissingMetadataDelegateRecord:    "Missing metadata delegate record",
	ErrInvalidTokenStandard:             "Invalid token standard",
	ErrMissingTokenAccount:              "Missing token account",
	ErrMissingTokenRecord:               "Missing token record",
	ErrMissingInstructionsSysvar:        "Missing instructions sysvar account",
	ErrMissingSplAtaProgram:             "Missing SPL ATA program",
	ErrIncorrectCollectionMint:          "Incorrect collection mint",
	ErrMissingCollectionMint:            "Missing collection mint metadata",
	ErrMetadataAccountIsEmpty:           "The metadata account is empty",
	ErrFusionPaused:                     "Fusion paused",
	ErrInvalidTokenAmounts:              "Invalid token amounts",
	ErrMaxSupplyReached:                 "Max supply reached",
	ErrInvalidProtocolFeeWallet:         "Invalid protocol fee wallet",
	ErrInvalidFeeRecipient:              "Fee recipient is required when fees are charged",
}

func (e FusionError) Error() string {
	if msg, ok := fusionErrorMessages[e]; ok {
		return msg
	}
	return fmt.Sprintf("unknown fusion error: %d", uint32(e))
}

// GetFusionError maps a custom program error code to a FusionError.
func GetFusionError(code uint32) (FusionError, bool) {
	e := FusionError(code)
	if _, ok := fusionErrorMessages[e]; !ok {
		return 0, false
	}
	return e, true
}
