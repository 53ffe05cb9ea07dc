package tokenfusion

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"

	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/binary"
)

var setPauseV1InstructionDiscriminator = []byte{
	72, 174, 209, 198, 115, 3, 4, 128,
}

const (
	SetPauseV1InstructionArgsSize = 1 // paused
)

type SetPauseV1InstructionArgs struct {
	Paused bool
}

func (obj *SetPauseV1InstructionArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	return enc.WriteBool(obj.Paused)
}

func (obj *SetPauseV1InstructionArgs) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	obj.Paused, err = binary.ReadBool(dec)
	return err
}

type SetPauseV1InstructionAccounts struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey

	FusionData ed25519.PublicKey
	Authority  ed25519.PublicKey
}

func NewSetPauseV1Instruction(
	accounts *SetPauseV1InstructionAccounts,
	args *SetPauseV1InstructionArgs,
) solana.Instruction {
	data := instructionData(setPauseV1InstructionDiscriminator, args)
	return newAuthorityInstruction(accounts.Program, data, accounts.FusionData, accounts.Authority)
}
