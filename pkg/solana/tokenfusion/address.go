package tokenfusion

import (
	"crypto/ed25519"

	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/token"
)

var (
	FusionDataPrefix = []byte("fusion_data")
	AuthorityPrefix  = []byte("authority")
)

type GetFusionDataAddressArgs struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey
}

func GetFusionDataAddress(args *GetFusionDataAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		FusionDataPrefix,
	)
}

type GetAuthorityAddressArgs struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey
}

func GetAuthorityAddress(args *GetAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		AuthorityPrefix,
	)
}

type GetEscrowAddressArgs struct {
	// Program defaults to PROGRAM_ID when empty.
	Program ed25519.PublicKey
	Mint    ed25519.PublicKey
}

// GetEscrowAddress returns the token account holding escrowed tokens, which
// is the associated account of the authority PDA for the mint.
func GetEscrowAddress(args *GetEscrowAddressArgs) (ed25519.PublicKey, uint8, error) {
	authority, _, err := GetAuthorityAddress(&GetAuthorityAddressArgs{
		Program: args.Program,
	})
	if err != nil {
		return nil, 0, err
	}

	return token.GetAssociatedAccountAndBump(authority, args.Mint)
}
