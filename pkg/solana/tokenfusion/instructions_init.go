package tokenfusion

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"

	"github.com/code-payments/token-fusion/pkg/solana"
)

var initV1InstructionDiscriminator = []byte{
	152, 240, 247, 186, 91, 13, 124, 136,
}

type InitV1InstructionArgs struct {
	AssetData AssetDataV1
	FeeData   FeeDataV1
}

func (obj *InitV1InstructionArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := obj.AssetData.MarshalWithEncoder(enc); err != nil {
		return err
	}
	return obj.FeeData.MarshalWithEncoder(enc)
}

func (obj *InitV1InstructionArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	if err := obj.AssetData.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	return obj.FeeData.UnmarshalWithDecoder(dec)
}

type InitV1InstructionAccounts struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey

	FusionData   ed25519.PublicKey
	AuthorityPda ed25519.PublicKey
	Authority    ed25519.PublicKey
	Payer        ed25519.PublicKey
	TokenMint    ed25519.PublicKey
	Escrow       ed25519.PublicKey
	Collection   ed25519.PublicKey
	LogWrapper   ed25519.PublicKey
}

func NewInitV1Instruction(
	accounts *InitV1InstructionAccounts,
	args *InitV1InstructionArgs,
) solana.Instruction {
	program := programOrDefault(accounts.Program)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: instructionData(initV1InstructionDiscriminator, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.FusionData,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.AuthorityPda,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Authority,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Payer,
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
