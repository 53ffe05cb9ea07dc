package tokenfusion

import (
	"crypto/ed25519"

	"github.com/code-payments/token-fusion/pkg/solana"
)

var fusionFromV1InstructionDiscriminator = []byte{
	220, 177, 173, 234, 227, 206, 111, 187,
}

// FusionFromV1InstructionAccounts are the accounts used to burn an asset and
// release its escrowed tokens back to the user.
type FusionFromV1InstructionAccounts struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey

	FusionData   ed25519.PublicKey
	AuthorityPda ed25519.PublicKey
	User         ed25519.PublicKey
	Asset        ed25519.PublicKey
	Collection   ed25519.PublicKey
	TokenMint    ed25519.PublicKey
	Escrow       ed25519.PublicKey
	UserAta      ed25519.PublicKey
	FeeAccount   ed25519.PublicKey
	LogWrapper   ed25519.PublicKey
}

func NewFusionFromV1Instruction(
	accounts *FusionFromV1InstructionAccounts,
) solana.Instruction {
	program := programOrDefault(accounts.Program)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: instructionData(fusionFromV1InstructionDiscriminator, nil),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.FusionData,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuthorityPda,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.User,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Asset,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Collection,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenMint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Escrow,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserAta,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.FeeAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  MPL_CORE_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  getOptionalAccountMetaAddress(program, accounts.LogWrapper),
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
