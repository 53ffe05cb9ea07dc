package tokenfusion

import (
	"crypto/ed25519"
	"errors"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("5KH8Y5eFJDjhqdQki5BEiomaCBEmkmAMALS6iBS4P4EV")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID               = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
	SPL_TOKEN_PROGRAM_ID            = ed25519.PublicKey(mustBase58Decode("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	SPL_ASSOCIATED_TOKEN_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"))
	MPL_CORE_PROGRAM_ID             = ed25519.PublicKey(mustBase58Decode("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d"))
	SPL_NOOP_PROGRAM_ID             = ed25519.PublicKey(mustBase58Decode("noopb9bkMVfRPU8AsbpTUg8AQkHtKwMYZiFUjNRtMmV"))
)

// The program charges a flat SOL fee on every fusion into an asset, paid to
// a fixed wallet.
var PROTOCOL_FEE_WALLET = ed25519.PublicKey(mustBase58Decode("GjF4LqmEhV33riVyAwHwiEeAHx4XXFn2yMY3fmMigoP3"))

const ProtocolFeeLamports uint64 = 10_000_000

const (
	MaxAssetNamePrefixLength = 10
	MaxAssetUriPrefixLength  = 200
	MaxAssetUriSuffixLength  = 5
)

func programOrDefault(program ed25519.PublicKey) ed25519.PublicKey {
	if len(program) == 0 {
		return PROGRAM_ID
	}
	return program
}
