package main

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/token-fusion/pkg/fusion"
	"github.com/code-payments/token-fusion/pkg/pointer"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
)

func newFusionCmd() *cobra.Command {
	fusionCmd := &cobra.Command{
		Use:   "fusion",
		Short: "Initialize and administer the token fusion",
	}

	fusionCmd.AddCommand(
		newFusionInitCmd(),
		newFusionUpdateCmd(),
		newFusionPauseCmd("pause", true),
		newFusionPauseCmd("unpause", false),
		newFusionShowCmd(),
		newFusionSetAuthorityCmd(),
		newFusionDestroyCmd(),
	)
	return fusionCmd
}

// assetDataFlags are the asset and fee fields shared by init and update.
type assetDataFlags struct {
	maxSupply      uint32
	unlimited      bool
	nextIndex      uint64
	namePrefix     string
	uriPrefix      string
	uriSuffix      string
	escrowAmount   uint64
	feeAmount      uint64
	burnAmount     uint64
	solFeeAmount   uint64
	feeRecipient   string
	noFeeRecipient bool
}

func (f *assetDataFlags) register(cmd *cobra.Command, defaults bool) {
	var (
		maxSupply    uint32
		nextIndex    uint64
		namePrefix   string
		escrowAmount uint64
		feeAmount    uint64
		burnAmount   uint64
		solFeeAmount uint64
	)
	if defaults {
		maxSupply = 100
		nextIndex = 1
		namePrefix = "STF #"
		escrowAmount = 100_000_000_000
		feeAmount = 20_000_000_000
		burnAmount = 30_000_000_000
		solFeeAmount = 13_370_000
	}

	cmd.Flags().Uint32Var(&f.maxSupply, "max-supply", maxSupply, "Maximum number of assets")
	cmd.Flags().BoolVar(&f.unlimited, "unlimited", false, "Remove the maximum supply")
	cmd.Flags().Uint64Var(&f.nextIndex, "next-index", nextIndex, "Index of the next minted asset")
	cmd.Flags().StringVar(&f.namePrefix, "name-prefix", namePrefix, "Asset name prefix")
	cmd.Flags().StringVar(&f.uriPrefix, "uri-prefix", "", "Asset metadata URI prefix (default $"+fusion.MetadataBaseUriConfigEnvName+")")
	cmd.Flags().StringVar(&f.uriSuffix, "uri-suffix", "", "Asset metadata URI suffix")
	cmd.Flags().Uint64Var(&f.escrowAmount, "escrow-amount", escrowAmount, "Tokens escrowed per asset, in base units")
	cmd.Flags().Uint64Var(&f.feeAmount, "fee-amount", feeAmount, "Tokens paid to the fee recipient per fusion, in base units")
	cmd.Flags().Uint64Var(&f.burnAmount, "burn-amount", burnAmount, "Tokens burned per fusion, in base units")
	cmd.Flags().Uint64Var(&f.solFeeAmount, "sol-fee-amount", solFeeAmount, "Lamports paid to the fee recipient per fusion")
	cmd.Flags().StringVar(&f.feeRecipient, "fee-recipient", "", "Wallet receiving fees (init default signer)")
	cmd.Flags().BoolVar(&f.noFeeRecipient, "no-fee-recipient", false, "Remove the fee recipient")
}

// initData builds the init data. Without a fee recipient flag the fees go to
// defaultRecipient.
func (f *assetDataFlags) initData(defaultRecipient ed25519.PublicKey) (tokenfusion.AssetDataV1, tokenfusion.FeeDataV1, error) {
	if f.feeRecipientConflict() {
		return tokenfusion.AssetDataV1{}, tokenfusion.FeeDataV1{}, errors.New("--fee-recipient and --no-fee-recipient are exclusive")
	}

	assetData := tokenfusion.AssetDataV1{
		NextIndex:  f.nextIndex,
		NamePrefix: f.namePrefix,
		UriPrefix:  f.uriPrefix,
		UriSuffix:  f.uriSuffix,
	}
	if !f.unlimited {
		maxSupply := f.maxSupply
		assetData.MaxSupply = &maxSupply
	}

	feeData := tokenfusion.FeeDataV1{
		EscrowAmount: f.escrowAmount,
		FeeAmount:    f.feeAmount,
		BurnAmount:   f.burnAmount,
		SolFeeAmount: f.solFeeAmount,
	}
	switch {
	case len(f.feeRecipient) > 0:
		recipient, err := parsePublicKey("fee-recipient", f.feeRecipient)
		if err != nil {
			return tokenfusion.AssetDataV1{}, tokenfusion.FeeDataV1{}, err
		}
		feeData.FeeRecipient = recipient
	case !f.noFeeRecipient:
		feeData.FeeRecipient = defaultRecipient
	}

	return assetData, feeData, nil
}

// updateArgs includes only the flags the user changed.
func (f *assetDataFlags) updateArgs(changed func(string) bool) (*fusion.UpdateArgs, error) {
	if f.feeRecipientConflict() {
		return nil, errors.New("--fee-recipient and --no-fee-recipient are exclusive")
	}
	if f.unlimited && changed("max-supply") {
		return nil, errors.New("--max-supply and --unlimited are exclusive")
	}

	args := &fusion.UpdateArgs{
		NextIndex:    pointer.Uint64IfValid(changed("next-index"), f.nextIndex),
		NamePrefix:   pointer.StringIfValid(changed("name-prefix"), f.namePrefix),
		UriPrefix:    pointer.StringIfValid(changed("uri-prefix"), f.uriPrefix),
		UriSuffix:    pointer.StringIfValid(changed("uri-suffix"), f.uriSuffix),
		EscrowAmount: pointer.Uint64IfValid(changed("escrow-amount"), f.escrowAmount),
		FeeAmount:    pointer.Uint64IfValid(changed("fee-amount"), f.feeAmount),
		BurnAmount:   pointer.Uint64IfValid(changed("burn-amount"), f.burnAmount),
		SolFeeAmount: pointer.Uint64IfValid(changed("sol-fee-amount"), f.solFeeAmount),
	}

	switch {
	case f.unlimited:
		args.MaxSupply = fusion.ClearOptional[uint32]()
	case changed("max-supply"):
		args.MaxSupply = fusion.SetOptional(f.maxSupply)
	}

	switch {
	case f.noFeeRecipient:
		args.FeeRecipient = fusion.ClearOptional[ed25519.PublicKey]()
	case changed("fee-recipient"):
		recipient, err := parsePublicKey("fee-recipient", f.feeRecipient)
		if err != nil {
			return nil, err
		}
		args.FeeRecipient = fusion.SetOptional(recipient)
	}

	return args, nil
}

func (f *assetDataFlags) feeRecipientConflict() bool {
	return f.noFeeRecipient && len(f.feeRecipient) > 0
}

func newFusionInitCmd() *cobra.Command {
	var (
		data       assetDataFlags
		tokenMint  string
		collection string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the token fusion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "fusion init")
			defer end()

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			initArgs := &fusion.InitArgs{}
			if initArgs.TokenMint, err = configuredPublicKey("token-mint", tokenMint, fusion.TokenMintConfigEnvName); err != nil {
				return err
			}
			if initArgs.Collection, err = configuredPublicKey("collection", collection, fusion.CollectionConfigEnvName); err != nil {
				return err
			}
			if initArgs.AssetData, initArgs.FeeData, err = data.initData(s.publicKey()); err != nil {
				return err
			}

			result, err := s.service.Init(ctx, s.signer, initArgs)
			if errors.Is(err, fusion.ErrAlreadyInitialized) {
				fmt.Fprintln(cmd.OutOrStdout(), fusion.ErrAlreadyInitialized.Error())
				return nil
			} else if err != nil {
				return err
			}

			return getPrinter().Print(resultRecord(result))
		},
	}
	cmd.Flags().StringVar(&tokenMint, "token-mint", "", "Token mint (default $"+fusion.TokenMintConfigEnvName+")")
	cmd.Flags().StringVar(&collection, "collection", "", "Collection (default $"+fusion.CollectionConfigEnvName+")")
	data.register(cmd, true)
	return cmd
}

func newFusionUpdateCmd() *cobra.Command {
	var data assetDataFlags

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the asset and fee data of the fusion",
		Long:  "Update the asset and fee data of the fusion. Only the flags given are changed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "fusion update")
			defer end()

			updateArgs, err := data.updateArgs(cmd.Flags().Changed)
			if err != nil {
				return err
			}

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			result, err := s.service.Update(ctx, s.signer, updateArgs)
			if err != nil {
				return err
			}
			return getPrinter().Print(resultRecord(result))
		},
	}
	data.register(cmd, false)
	return cmd
}

func newFusionPauseCmd(use string, paused bool) *cobra.Command {
	short := "Pause fusions into and from assets"
	if !paused {
		short = "Resume fusions into and from assets"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "fusion "+use)
			defer end()

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			result, err := s.service.SetPause(ctx, s.signer, paused)
			if err != nil {
				return err
			}
			return getPrinter().Print(resultRecord(result))
		},
	}
}

func newFusionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the fusion state and derived accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "fusion show")
			defer end()

			s, err := newSession(ctx, false)
			if err != nil {
				return err
			}

			overview, err := s.service.Show(ctx)
			if errors.Is(err, fusion.ErrAccountNotFound) {
				return errors.New("fusion is not initialized")
			} else if err != nil {
				return err
			}
			return getPrinter().Print(overviewRecord(overview))
		},
	}
}

func newFusionSetAuthorityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-authority <new-authority>",
		Short: "Transfer the fusion authority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "fusion set-authority")
			defer end()

			newAuthority, err := parsePublicKey("new-authority", args[0])
			if err != nil {
				return err
			}

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			result, err := s.service.SetAuthority(ctx, s.signer, newAuthority)
			if err != nil {
				return err
			}
			return getPrinter().Print(resultRecord(result))
		},
	}
}

func newFusionDestroyCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Close the fusion and return the escrow to the authority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("destroy closes the fusion permanently, pass --yes to confirm")
			}

			ctx, end := application.StartCommand(cmd.Context(), "fusion destroy")
			defer end()

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			result, err := s.service.Destroy(ctx, s.signer)
			if err != nil {
				return err
			}
			return getPrinter().Print(resultRecord(result))
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the fusion should be destroyed")
	return cmd
}
