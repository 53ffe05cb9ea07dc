package main

import (
	"github.com/spf13/cobra"

	"github.com/code-payments/token-fusion/pkg/app"
)

// rootCmd wires the CLI surface using Cobra. Persistent flags select the
// cluster and the signing keypair; subcommands deploy the supporting token,
// collection and assets and drive the fusion program.
var rootCmd = &cobra.Command{
	Use:   "fusion-cli",
	Short: "Token fusion deployment CLI",
	Long:  "Deploy the token and collection used by a token fusion, then initialize, administer and use the fusion.",

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Load(flagConfig, flagVerbose)
		if err != nil {
			return err
		}
		application = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if application != nil {
			application.Shutdown()
		}
	},
}

var (
	flagCluster string
	flagKeypair string
	flagConfig  string
	flagOutput  string
	flagVerbose bool

	application *app.App
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagCluster, "cluster", "c", "localnet", "Solana cluster: localnet|devnet|mainnet")
	rootCmd.PersistentFlags().StringVarP(&flagKeypair, "keypair", "k", "", "Path to a solana-keygen keypair file (default $KEYPAIR or ~/.config/solana/id.json)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", outputText, "Output format: text|json")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(
		newTokenCmd(),
		newCollectionCmd(),
		newAssetCmd(),
		newFusionCmd(),
		newFuseCmd(),
		newDeployCmd(),
	)
}
