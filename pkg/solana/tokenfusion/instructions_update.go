package tokenfusion

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"

	"github.com/code-payments/token-fusion/pkg/solana"
)

var updateV1InstructionDiscriminator = []byte{
	207, 157, 187, 63, 205, 149, 31, 165,
}

// UpdateV1InstructionArgs replace the asset and fee data in full.
type UpdateV1InstructionArgs struct {
	AssetData AssetDataV1
	FeeData   FeeDataV1
}

// Same layout as the init args.
func (obj *UpdateV1InstructionArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := obj.AssetData.MarshalWithEncoder(enc); err != nil {
		return err
	}
	return obj.FeeData.MarshalWithEncoder(enc)
}

func (obj *UpdateV1InstructionArgs) UnmarshalWithDecoder(dec *bin.Decoder) error {
	if err := obj.AssetData.UnmarshalWithDecoder(dec); err != nil {
		return err
	}
	return obj.FeeData.UnmarshalWithDecoder(dec)
}

type UpdateV1InstructionAccounts struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey

	FusionData ed25519.PublicKey
	Authority  ed25519.PublicKey
}

func NewUpdateV1Instruction(
	accounts *UpdateV1InstructionAccounts,
	args *UpdateV1InstructionArgs,
) solana.Instruction {
	data := instructionData(updateV1InstructionDiscriminator, args)
	return newAuthorityInstruction(accounts.Program, data, accounts.FusionData, accounts.Authority)
}

// newAuthorityInstruction builds the instructions that only touch the fusion
// data account under the authority's signature.
func newAuthorityInstruction(program ed25519.PublicKey, data []byte, fusionData, authority ed25519.PublicKey) solana.Instruction {
	return solana.Instruction{
		Program: programOrDefault(program),

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  fusionData,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  authority,
				IsWritable: true,
				IsSigner:   true,
			},
		},
	}
}
