package main

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/token-fusion/pkg/fusion"
	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/mplcore"
)

// newDeployCmd deploys a token and a collection and initializes the fusion
// over them in one go, for local and devnet setups.
func newDeployCmd() *cobra.Command {
	var data assetDataFlags

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a token and collection, then initialize the fusion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "deploy")
			defer end()

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			_, exists, err := s.service.Accessor().FetchSafe(ctx)
			if err != nil {
				return err
			}
			if exists {
				fmt.Fprintln(cmd.OutOrStdout(), fusion.ErrAlreadyInitialized.Error())
				return nil
			}

			mintKey, err := loadOrGenerateKeypair("")
			if err != nil {
				return err
			}
			collectionKey, err := loadOrGenerateKeypair("")
			if err != nil {
				return err
			}
			mint := mintKey.Public().(ed25519.PublicKey)
			collection := collectionKey.Public().(ed25519.PublicKey)

			instructions, _, err := deployTokenInstructions(s, mint, s.publicKey(), 9, 1_000_000, true)
			if err != nil {
				return err
			}
			if _, err := s.submit(ctx, instructions, mintKey); err != nil {
				return errors.Wrap(err, "error deploying token")
			}

			createCollection := mplcore.NewCreateCollectionV1Instruction(
				&mplcore.CreateCollectionV1InstructionAccounts{
					Collection:      collection,
					UpdateAuthority: s.service.Addresses().Authority,
					Payer:           s.publicKey(),
				},
				&mplcore.CreateCollectionV1InstructionArgs{
					Name: "STF Collection",
					Uri:  "https://stf.org/collection.json",
				},
			)
			if _, err := s.submit(ctx, []solana.Instruction{createCollection}, collectionKey); err != nil {
				return errors.Wrap(err, "error deploying collection")
			}

			initArgs := &fusion.InitArgs{
				TokenMint:  mint,
				Collection: collection,
			}
			if initArgs.AssetData, initArgs.FeeData, err = data.initData(s.publicKey()); err != nil {
				return err
			}

			result, err := s.service.Init(ctx, s.signer, initArgs)
			if err != nil {
				return err
			}
			return getPrinter().Print(resultRecord(result))
		},
	}
	data.register(cmd, true)
	return cmd
}
