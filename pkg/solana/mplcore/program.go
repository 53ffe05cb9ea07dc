// Package mplcore binds the subset of the Metaplex Core program used to
// deploy fusion collections and read asset ownership.
package mplcore

import (
	"bytes"
	"crypto/ed25519"
	"errors"

	bin "github.com/gagliardetto/binary"
	"github.com/mr-tron/base58"
)

var (
	ErrInvalidAccountData = errors.New("unexpected account data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
)

type Key uint8

const (
	KeyUninitialized Key = iota
	KeyAssetV1
	KeyHashedAssetV1
	KeyPluginHeaderV1
	KeyPluginRegistryV1
	KeyCollectionV1
)

type instructionType uint8

const (
	instructionTypeCreateV1           instructionType = 0
	instructionTypeCreateCollectionV1 instructionType = 1
)

// DataState selects whether asset data lives in account state or in the
// ledger.
type DataState uint8

const (
	DataStateAccountState DataState = iota
	DataStateLedgerState
)

func instructionData(typ instructionType, args bin.BinaryMarshaler) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(typ))
	// Writes to a bytes.Buffer don't fail.
	_ = args.MarshalWithEncoder(bin.NewBorshEncoder(&buf))
	return buf.Bytes()
}

func getOptionalAccountMetaAddress(account ed25519.PublicKey) ed25519.PublicKey {
	if len(account) > 0 {
		return account
	}
	return PROGRAM_ID
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
