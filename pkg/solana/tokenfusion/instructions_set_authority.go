package tokenfusion

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"

	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/binary"
)

var setAuthorityV1InstructionDiscriminator = []byte{
	108, 174, 157, 222, 103, 150, 173, 66,
}

const (
	SetAuthorityV1InstructionArgsSize = 32 // new_authority
)

type SetAuthorityV1InstructionArgs struct {
	NewAuthority ed25519.PublicKey
}

func (obj *SetAuthorityV1InstructionArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	return binary.WriteKey(enc, obj.NewAuthority)
}

func (obj *SetAuthorityV1InstructionArgs) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	obj.NewAuthority, err = binary.ReadKey(dec)
	return err
}

type SetAuthorityV1InstructionAccounts struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey

	FusionData ed25519.PublicKey
	Authority  ed25519.PublicKey
}

func NewSetAuthorityV1Instruction(
	accounts *SetAuthorityV1InstructionAccounts,
	args *SetAuthorityV1InstructionArgs,
) solana.Instruction {
	data := instructionData(setAuthorityV1InstructionDiscriminator, args)
	return newAuthorityInstruction(accounts.Program, data, accounts.FusionData, accounts.Authority)
}
