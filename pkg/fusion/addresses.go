package fusion

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/token-fusion/pkg/solana/token"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
)

// Addresses are the program derived accounts of a fusion deployment. They
// are recomputed from the program id rather than stored.
type Addresses struct {
	Program       ed25519.PublicKey
	FusionData    ed25519.PublicKey
	FusionBump    uint8
	Authority     ed25519.PublicKey
	AuthorityBump uint8
}

// DeriveAddresses derives the fusion data and authority accounts of program.
func DeriveAddresses(program ed25519.PublicKey) (*Addresses, error) {
	fusionData, fusionBump, err := tokenfusion.GetFusionDataAddress(&tokenfusion.GetFusionDataAddressArgs{
		Program: program,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving fusion data address")
	}

	authority, authorityBump, err := tokenfusion.GetAuthorityAddress(&tokenfusion.GetAuthorityAddressArgs{
		Program: program,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving authority address")
	}

	return &Addresses{
		Program:       program,
		FusionData:    fusionData,
		FusionBump:    fusionBump,
		Authority:     authority,
		AuthorityBump: authorityBump,
	}, nil
}

// Escrow is the authority owned token account holding escrowed tokens.
func (a *Addresses) Escrow(mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	escrow, _, err := tokenfusion.GetEscrowAddress(&tokenfusion.GetEscrowAddressArgs{
		Program: a.Program,
		Mint:    mint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving escrow address")
	}
	return escrow, nil
}

func (a *Addresses) String() string {
	return fmt.Sprintf(
		"Addresses{program=%s,fusion_data=%s,authority=%s}",
		base58.Encode(a.Program),
		base58.Encode(a.FusionData),
		base58.Encode(a.Authority),
	)
}

// associatedAccount derives the owner's token account, wrapping derivation
// failures with the account's role.
func associatedAccount(role string, owner, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	address, err := token.GetAssociatedAccount(owner, mint)
	if err != nil {
		return nil, errors.Wrapf(err, "error deriving %s token account", role)
	}
	return address, nil
}
