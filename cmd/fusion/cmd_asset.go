package main

import (
	"crypto/ed25519"

	"github.com/spf13/cobra"

	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/mplcore"
)

func newAssetCmd() *cobra.Command {
	assetCmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage MPL Core assets",
	}

	var (
		assetKeypair string
		collection   string
		owner        string
		name         string
		uri          string
	)
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy an MPL Core asset",
		Long: "Deploy an MPL Core asset, optionally into a collection. The signer must be " +
			"the collection's update authority.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "asset deploy")
			defer end()

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			assetKey, err := loadOrGenerateKeypair(assetKeypair)
			if err != nil {
				return err
			}
			asset := assetKey.Public().(ed25519.PublicKey)

			var collectionAddress ed25519.PublicKey
			if len(collection) > 0 {
				if collectionAddress, err = parsePublicKey("collection", collection); err != nil {
					return err
				}
			}

			assetOwner := s.publicKey()
			if len(owner) > 0 {
				if assetOwner, err = parsePublicKey("owner", owner); err != nil {
					return err
				}
			}

			instruction := mplcore.NewCreateV1Instruction(
				&mplcore.CreateV1InstructionAccounts{
					Asset:      asset,
					Collection: collectionAddress,
					Authority:  s.publicKey(),
					Payer:      s.publicKey(),
					Owner:      assetOwner,
				},
				&mplcore.CreateV1InstructionArgs{
					DataState: mplcore.DataStateAccountState,
					Name:      name,
					Uri:       uri,
				},
			)

			sig, err := s.submit(ctx, []solana.Instruction{instruction}, assetKey)
			if err != nil {
				return err
			}
			s.log.WithField("asset", encodeKey(asset)).Info("asset deployed")

			return getPrinter().Print(signatureRecord(sig).
				with("asset", encodeKey(asset)).
				with("collection", encodeKey(collectionAddress)).
				with("owner", encodeKey(assetOwner)))
		},
	}
	deployCmd.Flags().StringVar(&assetKeypair, "asset-keypair", "", "Keypair file of the asset (generated when empty)")
	deployCmd.Flags().StringVar(&collection, "collection", "", "Collection the asset belongs to")
	deployCmd.Flags().StringVar(&owner, "owner", "", "Asset owner (default signer)")
	deployCmd.Flags().StringVarP(&name, "name", "n", "STF Asset", "Asset name")
	deployCmd.Flags().StringVarP(&uri, "uri", "u", "https://stf.org/asset.json", "Asset URI")

	showCmd := &cobra.Command{
		Use:   "show <asset>",
		Short: "Show an MPL Core asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "asset show")
			defer end()

			s, err := newSession(ctx, false)
			if err != nil {
				return err
			}

			address, err := parsePublicKey("asset", args[0])
			if err != nil {
				return err
			}

			asset, err := s.service.Accessor().Asset(ctx, address)
			if err != nil {
				return err
			}

			return getPrinter().Print(record{}.
				with("asset", encodeKey(address)).
				with("owner", encodeKey(asset.Owner)).
				with("collection", encodeKey(asset.Collection())).
				with("name", asset.Name).
				with("uri", asset.Uri))
		},
	}

	assetCmd.AddCommand(deployCmd, showCmd)
	return assetCmd
}
