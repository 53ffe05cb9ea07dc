package tokenfusion

import (
	"crypto/ed25519"

	"github.com/code-payments/token-fusion/pkg/solana"
)

var fusionIntoV1InstructionDiscriminator = []byte{
	33, 19, 30, 8, 103, 30, 102, 247,
}

// FusionIntoV1InstructionAccounts are the accounts used to fuse tokens into
// a newly minted asset. The asset is a fresh keypair that must sign.
type FusionIntoV1InstructionAccounts struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey

	FusionData      ed25519.PublicKey
	AuthorityPda    ed25519.PublicKey
	User            ed25519.PublicKey
	Asset           ed25519.PublicKey
	Collection      ed25519.PublicKey
	TokenMint       ed25519.PublicKey
	Escrow          ed25519.PublicKey
	UserAta         ed25519.PublicKey
	FeeRecipient    ed25519.PublicKey
	FeeRecipientAta ed25519.PublicKey
	FeeSolAccount   ed25519.PublicKey
	LogWrapper      ed25519.PublicKey
}

func NewFusionIntoV1Instruction(
	accounts *FusionIntoV1InstructionAccounts,
) solana.Instruction {
	program := programOrDefault(accounts.Program)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: instructionData(fusionIntoV1InstructionDiscriminator, nil),

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
				PublicKey:  accounts.User,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Asset,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Collection,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenMint,
				IsWritable: true,
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
				PublicKey:  getOptionalAccountMetaAddress(program, accounts.FeeRecipient),
				IsWritable: len(accounts.FeeRecipient) > 0,
				IsSigner:   false,
			},
			{
				PublicKey:  getOptionalAccountMetaAddress(program, accounts.FeeRecipientAta),
				IsWritable: len(accounts.FeeRecipientAta) > 0,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.FeeSolAccount,
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
