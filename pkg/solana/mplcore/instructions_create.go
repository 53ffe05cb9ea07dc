package mplcore

import (
	"crypto/ed25519"

	bin "github.com/gagliardetto/binary"

	"github.com/code-payments/token-fusion/pkg/solana"
)

type CreateV1InstructionArgs struct {
	DataState DataState
	Name      string
	Uri       string
}

func (obj *CreateV1InstructionArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint8(uint8(obj.DataState)); err != nil {
		return err
	}
	if err := enc.WriteString(obj.Name); err != nil {
		return err
	}
	if err := enc.WriteString(obj.Uri); err != nil {
		return err
	}
	return enc.WriteOption(false) // plugins
}

// CreateV1InstructionAccounts are the accounts used to create an asset.
// Optional accounts are left empty when unused.
type CreateV1InstructionAccounts struct {
	Asset           ed25519.PublicKey
	Collection      ed25519.PublicKey
	Authority       ed25519.PublicKey
	Payer           ed25519.PublicKey
	Owner           ed25519.PublicKey
	UpdateAuthority ed25519.PublicKey
	LogWrapper      ed25519.PublicKey
}

func NewCreateV1Instruction(
	accounts *CreateV1InstructionAccounts,
	args *CreateV1InstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: instructionData(instructionTypeCreateV1, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Asset,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  getOptionalAccountMetaAddress(accounts.Collection),
				IsWritable: len(accounts.Collection) > 0,
				IsSigner:   false,
			},
			{
				PublicKey:  getOptionalAccountMetaAddress(accounts.Authority),
				IsWritable: false,
				IsSigner:   len(accounts.Authority) > 0,
			},
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  getOptionalAccountMetaAddress(accounts.Owner),
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  getOptionalAccountMetaAddress(accounts.UpdateAuthority),
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  getOptionalAccountMetaAddress(accounts.LogWrapper),
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

type CreateCollectionV1InstructionArgs struct {
	Name string
	Uri  string
}

func (obj *CreateCollectionV1InstructionArgs) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteString(obj.Name); err != nil {
		return err
	}
	if err := enc.WriteString(obj.Uri); err != nil {
		return err
	}
	return enc.WriteOption(false) // plugins
}

type CreateCollectionV1InstructionAccounts struct {
	Collection      ed25519.PublicKey
	UpdateAuthority ed25519.PublicKey
	Payer           ed25519.PublicKey
}

func NewCreateCollectionV1Instruction(
	accounts *CreateCollectionV1InstructionAccounts,
	args *CreateCollectionV1InstructionArgs,
) solana.Instruction {
	return solana.Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: instructionData(instructionTypeCreateCollectionV1, args),

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Collection,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  getOptionalAccountMetaAddress(accounts.UpdateAuthority),
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
