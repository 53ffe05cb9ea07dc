package main

import (
	"github.com/spf13/cobra"

	"github.com/code-payments/token-fusion/pkg/fusion"
)

func newFuseCmd() *cobra.Command {
	fuseCmd := &cobra.Command{
		Use:   "fuse",
		Short: "Fuse tokens into assets and back",
	}

	intoCmd := &cobra.Command{
		Use:   "into",
		Short: "Lock tokens in escrow and mint an asset to the signer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "fuse into")
			defer end()

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			result, err := s.service.FuseInto(ctx, s.signer)
			if err != nil {
				return err
			}
			return getPrinter().Print(fuseRecord(result))
		},
	}

	fromCmd := &cobra.Command{
		Use:   "from <asset>",
		Short: "Burn an asset and release its escrowed tokens to the signer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, end := application.StartCommand(cmd.Context(), "fuse from")
			defer end()

			asset, err := parsePublicKey("asset", args[0])
			if err != nil {
				return err
			}

			s, err := newSession(ctx, true)
			if err != nil {
				return err
			}

			result, err := s.service.FuseFrom(ctx, s.signer, asset)
			if err != nil {
				return err
			}
			return getPrinter().Print(fuseRecord(result))
		},
	}

	fuseCmd.AddCommand(intoCmd, fromCmd)
	return fuseCmd
}

func fuseRecord(result *fusion.FuseResult) record {
	r := record{}.with("asset", encodeKey(result.Asset))
	return append(r, resultRecord(&result.Result)...)
}
