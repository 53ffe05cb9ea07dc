package main

import (
	"crypto/ed25519"
	"math/big"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/system"
	"github.com/code-payments/token-fusion/pkg/solana/token"
)

func newTokenCmd() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the SPL token fused into assets",
	}

	var (
		mintKeypair string
		owner       string
		decimals    uint8
		supply      uint64
		mint        bool
	)
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy an SPL token mint and mint its supply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "token deploy")
			defer end()

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			mintKey, err := loadOrGenerateKeypair(mintKeypair)
			if err != nil {
				return err
			}
			mintAddress := mintKey.Public().(ed25519.PublicKey)

			exists, err := s.service.Accessor().AccountExists(ctx, mintAddress)
			if err != nil {
				return err
			}
			if exists {
				return errors.Errorf("token %s already deployed", encodeKey(mintAddress))
			}

			tokenOwner := s.publicKey()
			if len(owner) > 0 {
				if tokenOwner, err = parsePublicKey("owner", owner); err != nil {
					return err
				}
			}

			instructions, ownerAccount, err := deployTokenInstructions(s, mintAddress, tokenOwner, decimals, supply, mint)
			if err != nil {
				return err
			}

			sig, err := s.submit(ctx, instructions, mintKey)
			if err != nil {
				return err
			}
			s.log.WithField("mint", encodeKey(mintAddress)).Info("token deployed")

			r := signatureRecord(sig).
				with("token_mint", encodeKey(mintAddress)).
				with("decimals", decimals)
			if mint {
				r = r.
					with("owner_account", encodeKey(ownerAccount)).
					with("supply", supply)
			}
			return getPrinter().Print(r)
		},
	}
	deployCmd.Flags().StringVar(&mintKeypair, "mint-keypair", "", "Keypair file of the mint (generated when empty)")
	deployCmd.Flags().StringVar(&owner, "owner", "", "Wallet receiving the minted supply (default signer)")
	deployCmd.Flags().Uint8VarP(&decimals, "decimals", "d", 9, "Token decimals")
	deployCmd.Flags().Uint64VarP(&supply, "supply", "t", 1_000_000, "Token supply in whole tokens")
	deployCmd.Flags().BoolVarP(&mint, "mint", "m", true, "Mint the supply")

	tokenCmd.AddCommand(deployCmd)
	return tokenCmd
}

// deployTokenInstructions creates and initializes the mint, with the signer
// as mint authority, and optionally mints the supply scaled by decimals into
// the owner's associated account.
func deployTokenInstructions(s *session, mint, owner ed25519.PublicKey, decimals uint8, supply uint64, mintSupply bool) ([]solana.Instruction, ed25519.PublicKey, error) {
	lamports, err := s.client.GetMinimumBalanceForRentExemption(token.MintSize)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error getting mint rent")
	}

	instructions := []solana.Instruction{
		system.CreateAccount(s.publicKey(), mint, token.ProgramKey, lamports, token.MintSize),
		token.InitializeMint2(mint, s.publicKey(), nil, decimals),
	}
	if !mintSupply {
		return instructions, nil, nil
	}

	amount, err := baseUnits(supply, decimals)
	if err != nil {
		return nil, nil, err
	}

	createAta, ownerAccount, err := token.CreateAssociatedTokenAccount(s.publicKey(), owner, mint)
	if err != nil {
		return nil, nil, err
	}

	instructions = append(
		instructions,
		createAta,
		token.MintTo(mint, ownerAccount, s.publicKey(), amount),
	)
	return instructions, ownerAccount, nil
}

// baseUnits scales a whole token amount by 10^decimals.
func baseUnits(amount uint64, decimals uint8) (uint64, error) {
	scaled := new(big.Int).Mul(
		new(big.Int).SetUint64(amount),
		new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil),
	)
	if !scaled.IsUint64() {
		return 0, errors.Errorf("%d tokens with %d decimals overflows u64", amount, decimals)
	}
	return scaled.Uint64(), nil
}
