package tokenfusion

import (
	"crypto/ed25519"

	"github.com/code-payments/token-fusion/pkg/solana"
)

var destroyV1InstructionDiscriminator = []byte{
	239, 99, 81, 125, 255, 222, 125, 92,
}

// DestroyV1InstructionAccounts are the accounts used to close the fusion.
// Escrowed tokens are returned to the authority's associated account.
type DestroyV1InstructionAccounts struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey

	FusionData   ed25519.PublicKey
	AuthorityPda ed25519.PublicKey
	Authority    ed25519.PublicKey
	TokenMint    ed25519.PublicKey
	Escrow       ed25519.PublicKey
	AuthorityAta ed25519.PublicKey
	Collection   ed25519.PublicKey
	LogWrapper   ed25519.PublicKey
}

func NewDestroyV1Instruction(
	accounts *DestroyV1InstructionAccounts,
) solana.Instruction {
	program := programOrDefault(accounts.Program)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: instructionData(destroyV1InstructionDiscriminator, nil),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.FusionData,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuthorityPda,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Authority,
				IsWritable: true,
				IsSigner:   true,
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
				PublicKey:  accounts.AuthorityAta,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Collection,
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
