package main

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/token-fusion/pkg/fusion"
	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/mplcore"
)

func newCollectionCmd() *cobra.Command {
	collectionCmd := &cobra.Command{
		Use:   "collection",
		Short: "Manage the MPL Core collection assets are minted into",
	}

	var (
		collectionKeypair string
		updateAuthority   string
		name              string
		uri               string
	)
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy an MPL Core collection",
		Long: "Deploy an MPL Core collection. The fusion authority PDA is the default update " +
			"authority so the program can mint assets into the collection.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "collection deploy")
			defer end()

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			collectionKey, err := loadOrGenerateKeypair(collectionKeypair)
			if err != nil {
				return err
			}
			collection := collectionKey.Public().(ed25519.PublicKey)

			exists, err := s.service.Accessor().AccountExists(ctx, collection)
			if err != nil {
				return err
			}
			if exists {
				return errors.Errorf("collection %s already deployed", encodeKey(collection))
			}

			authority := s.service.Addresses().Authority
			if len(updateAuthority) > 0 {
				if authority, err = parsePublicKey("update-authority", updateAuthority); err != nil {
					return err
				}
			}

			instruction := mplcore.NewCreateCollectionV1Instruction(
				&mplcore.CreateCollectionV1InstructionAccounts{
					Collection:      collection,
					UpdateAuthority: authority,
					Payer:           s.publicKey(),
				},
				&mplcore.CreateCollectionV1InstructionArgs{
					Name: name,
					Uri:  uri,
				},
			)

			sig, err := s.submit(ctx, []solana.Instruction{instruction}, collectionKey)
			if err != nil {
				return err
			}
			s.log.WithField("collection", encodeKey(collection)).Info("collection deployed")

			return getPrinter().Print(signatureRecord(sig).
				with("collection", encodeKey(collection)).
				with("update_authority", encodeKey(authority)).
				with("name", name).
				with("uri", uri))
		},
	}
	deployCmd.Flags().StringVar(&collectionKeypair, "collection-keypair", "", "Keypair file of the collection (generated when empty)")
	deployCmd.Flags().StringVar(&updateAuthority, "update-authority", "", "Collection update authority (default fusion authority PDA)")
	deployCmd.Flags().StringVarP(&name, "name", "n", "STF Collection", "Collection name")
	deployCmd.Flags().StringVarP(&uri, "uri", "u", "https://stf.org/collection.json", "Collection URI")

	var showCollection string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show an MPL Core collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "collection show")
			defer end()

			s, err := newSession(ctx, false)
			if err != nil {
				return err
			}

			address, err := requiredPublicKey("collection", showCollection, fusion.CollectionConfigEnvName)
			if err != nil {
				return err
			}

			collection, err := s.service.Accessor().Collection(ctx, address)
			if err != nil {
				return err
			}

			return getPrinter().Print(record{}.
				with("collection", encodeKey(address)).
				with("update_authority", encodeKey(collection.UpdateAuthority)).
				with("name", collection.Name).
				with("uri", collection.Uri).
				with("minted", collection.NumMinted).
				with("size", collection.CurrentSize))
		},
	}
	showCmd.Flags().StringVar(&showCollection, "collection", "", "Collection address (default $"+fusion.CollectionConfigEnvName+")")

	collectionCmd.AddCommand(deployCmd, showCmd)
	return collectionCmd
}
