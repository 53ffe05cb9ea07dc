package tokenfusion

import (
	"bytes"
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"

	"github.com/code-payments/token-fusion/pkg/solana"
)

// Absent optional accounts are passed as the program id.
func getOptionalAccountMetaAddress(program, account ed25519.PublicKey) ed25519.PublicKey {
	if len(account) > 0 {
		return account
	}
	return program
}

func getOptionalAccount(program, account ed25519.PublicKey) ed25519.PublicKey {
	if bytes.Equal(account, program) {
		return nil
	}
	return account
}

// instructionData borsh encodes args, if any, after the discriminator.
func instructionData(discriminator []byte, args bin.BinaryMarshaler) []byte {
	var buf bytes.Buffer
	buf.Write(discriminator)
	if args != nil {
		// Writes to a bytes.Buffer don't fail.
		_ = args.MarshalWithEncoder(bin.NewBorshEncoder(&buf))
	}
	return buf.Bytes()
}

// getInstruction returns the compiled instruction at idx after checking it
// targets the program with the expected discriminator and enough accounts.
func getInstruction(txn solana.Transaction, idx int, program ed25519.PublicKey, discriminator []byte, minAccounts int) (*bin.Decoder, []ed25519.PublicKey, error) {
	if idx < 0 || idx >= len(txn.Message.Instructions) {
		return nil, nil, ErrInvalidInstructionData
	}

	instruction := txn.Message.Instructions[idx]

	programAccount := txn.Message.Accounts[instruction.ProgramIndex]
	if !bytes.Equal(programOrDefault(program), programAccount) {
		return nil, nil, ErrInvalidProgram
	}

	if !bytes.HasPrefix(instruction.Data, discriminator) {
		return nil, nil, ErrInvalidInstructionData
	}

	if len(instruction.Accounts) < minAccounts {
		return nil, nil, ErrInvalidInstructionData
	}

	accounts := make([]ed25519.PublicKey, len(instruction.Accounts))
	for i, index := range instruction.Accounts {
		accounts[i] = txn.Message.Accounts[index]
	}

	return bin.NewBorshDecoder(instruction.Data[len(discriminator):]), accounts, nil
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
