// Decoding of compiled fusion instructions back into their builder inputs.
//
// Absent optional accounts decode as nil.

package tokenfusion

import (
	"crypto/ed25519"

	"github.com/code-payments/token-fusion/pkg/solana"
)

func InitV1InstructionFromLegacyInstruction(txn solana.Transaction, idx int, program ed25519.PublicKey) (*InitV1InstructionArgs, *InitV1InstructionAccounts, error) {
	program = programOrDefault(program)

	d, keys, err := getInstruction(txn, idx, program, initV1InstructionDiscriminator, 12)
	if err != nil {
		return nil, nil, err
	}

	var args InitV1InstructionArgs
	var accounts InitV1InstructionAccounts

	// Instruction Args
	if err := args.UnmarshalWithDecoder(d); err != nil || d.HasRemaining() {
		return nil, nil, ErrInvalidInstructionData
	}

	// Instruction Accounts
	accounts.Program = program
	accounts.FusionData = keys[0]
	accounts.AuthorityPda = keys[1]
	accounts.Authority = keys[2]
	accounts.Payer = keys[3]
	accounts.TokenMint = keys[4]
	accounts.Escrow = keys[5]
	accounts.Collection = keys[6]
	accounts.LogWrapper = getOptionalAccount(program, keys[11])

	return &args, &accounts, nil
}

func FusionIntoV1InstructionFromLegacyInstruction(txn solana.Transaction, idx int, program ed25519.PublicKey) (*FusionIntoV1InstructionAccounts, error) {
	program = programOrDefault(program)

	d, keys, err := getInstruction(txn, idx, program, fusionIntoV1InstructionDiscriminator, 16)
	if err != nil {
		return nil, err
	}
	if d.HasRemaining() {
		return nil, ErrInvalidInstructionData
	}

	return &FusionIntoV1InstructionAccounts{
		Program:         program,
		FusionData:      keys[0],
		AuthorityPda:    keys[1],
		User:            keys[2],
		Asset:           keys[3],
		Collection:      keys[4],
		TokenMint:       keys[5],
		Escrow:          keys[6],
		UserAta:         keys[7],
		FeeRecipient:    getOptionalAccount(program, keys[8]),
		FeeRecipientAta: getOptionalAccount(program, keys[9]),
		FeeSolAccount:   keys[10],
		LogWrapper:      getOptionalAccount(program, keys[15]),
	}, nil
}

func FusionFromV1InstructionFromLegacyInstruction(txn solana.Transaction, idx int, program ed25519.PublicKey) (*FusionFromV1InstructionAccounts, error) {
	program = programOrDefault(program)

	d, keys, err := getInstruction(txn, idx, program, fusionFromV1InstructionDiscriminator, 14)
	if err != nil {
		return nil, err
	}
	if d.HasRemaining() {
		return nil, ErrInvalidInstructionData
	}

	return &FusionFromV1InstructionAccounts{
		Program:      program,
		FusionData:   keys[0],
		AuthorityPda: keys[1],
		User:         keys[2],
		Asset:        keys[3],
		Collection:   keys[4],
		TokenMint:    keys[5],
		Escrow:       keys[6],
		UserAta:      keys[7],
		FeeAccount:   keys[8],
		LogWrapper:   getOptionalAccount(program, keys[13]),
	}, nil
}

func UpdateV1InstructionFromLegacyInstruction(txn solana.Transaction, idx int, program ed25519.PublicKey) (*UpdateV1InstructionArgs, *UpdateV1InstructionAccounts, error) {
	program = programOrDefault(program)

	d, keys, err := getInstruction(txn, idx, program, updateV1InstructionDiscriminator, 2)
	if err != nil {
		return nil, nil, err
	}

	var args UpdateV1InstructionArgs

	// Instruction Args
	if err := args.UnmarshalWithDecoder(d); err != nil || d.HasRemaining() {
		return nil, nil, ErrInvalidInstructionData
	}

	return &args, &UpdateV1InstructionAccounts{
		Program:    program,
		FusionData: keys[0],
		Authority:  keys[1],
	}, nil
}

func SetPauseV1InstructionFromLegacyInstruction(txn solana.Transaction, idx int, program ed25519.PublicKey) (*SetPauseV1InstructionArgs, *SetPauseV1InstructionAccounts, error) {
	program = programOrDefault(program)

	d, keys, err := getInstruction(txn, idx, program, setPauseV1InstructionDiscriminator, 2)
	if err != nil {
		return nil, nil, err
	}
	if d.Remaining() != SetPauseV1InstructionArgsSize {
		return nil, nil, ErrInvalidInstructionData
	}

	var args SetPauseV1InstructionArgs
	if err := args.UnmarshalWithDecoder(d); err != nil {
		return nil, nil, ErrInvalidInstructionData
	}

	return &args, &SetPauseV1InstructionAccounts{
		Program:    program,
		FusionData: keys[0],
		Authority:  keys[1],
	}, nil
}

func SetAuthorityV1InstructionFromLegacyInstruction(txn solana.Transaction, idx int, program ed25519.PublicKey) (*SetAuthorityV1InstructionArgs, *SetAuthorityV1InstructionAccounts, error) {
	program = programOrDefault(program)

	d, keys, err := getInstruction(txn, idx, program, setAuthorityV1InstructionDiscriminator, 2)
	if err != nil {
		return nil, nil, err
	}
	if d.Remaining() != SetAuthorityV1InstructionArgsSize {
		return nil, nil, ErrInvalidInstructionData
	}

	var args SetAuthorityV1InstructionArgs
	if err := args.UnmarshalWithDecoder(d); err != nil {
		return nil, nil, ErrInvalidInstructionData
	}

	return &args, &SetAuthorityV1InstructionAccounts{
		Program:    program,
		FusionData: keys[0],
		Authority:  keys[1],
	}, nil
}

func DestroyV1InstructionFromLegacyInstruction(txn solana.Transaction, idx int, program ed25519.PublicKey) (*DestroyV1InstructionAccounts, error) {
	program = programOrDefault(program)

	d, keys, err := getInstruction(txn, idx, program, destroyV1InstructionDiscriminator, 12)
	if err != nil {
		return nil, err
	}
	if d.HasRemaining() {
		return nil, ErrInvalidInstructionData
	}

	return &DestroyV1InstructionAccounts{
		Program:      program,
		FusionData:   keys[0],
		AuthorityPda: keys[1],
		Authority:    keys[2],
		TokenMint:    keys[3],
		Escrow:       keys[4],
		AuthorityAta: keys[5],
		Collection:   keys[6],
		LogWrapper:   getOptionalAccount(program, keys[11]),
	}, nil
}
