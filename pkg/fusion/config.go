package fusion

import (
	"crypto/ed25519"
	"strings"
	"time"

	"github.com/code-payments/token-fusion/pkg/config"
	"github.com/code-payments/token-fusion/pkg/config/env"
	"github.com/code-payments/token-fusion/pkg/config/memory"
	"github.com/code-payments/token-fusion/pkg/config/wrapper"
	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
)

const (
	envConfigPrefix = "FUSION_"

	ProgramIdConfigEnvName = envConfigPrefix + "PROGRAM_ID"

	TokenMintConfigEnvName = envConfigPrefix + "TOKEN_MINT"

	CollectionConfigEnvName = envConfigPrefix + "COLLECTION"

	MetadataBaseUriConfigEnvName = envConfigPrefix + "METADATA_BASE_URI"
	defaultMetadataBaseUri       = ""

	// Suffix of the per-cluster priority fee, eg. FUSION_DEVNET_PRIORITY_MICRO_LAMPORTS
	priorityMicroLamportsConfigEnvSuffix = "_PRIORITY_MICRO_LAMPORTS"
	defaultPriorityMicroLamports         = 10_000

	ComputeUnitLimitConfigEnvName = envConfigPrefix + "COMPUTE_UNIT_LIMIT"
	defaultComputeUnitLimit       = 0

	CommitmentConfigEnvName = envConfigPrefix + "COMMITMENT"

	ConfirmationTimeoutConfigEnvName = envConfigPrefix + "CONFIRMATION_TIMEOUT"
	defaultConfirmationTimeout       = time.Minute

	ConfirmationPollIntervalConfigEnvName = envConfigPrefix + "CONFIRMATION_POLL_INTERVAL"
	defaultConfirmationPollInterval       = solana.PollRate

	CheckAssetOwnerConfigEnvName = envConfigPrefix + "CHECK_ASSET_OWNER"
	defaultCheckAssetOwner       = true
)

type conf struct {
	programId                config.PublicKey
	tokenMint                config.PublicKey
	collection               config.PublicKey
	metadataBaseUri          config.String
	priorityMicroLamports    config.Uint64
	computeUnitLimit         config.Uint64
	commitment               config.String
	confirmationTimeout      config.Duration
	confirmationPollInterval config.Duration
	checkAssetOwner          config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// PriorityMicroLamportsConfigEnvName is the env var holding the priority fee
// for a cluster.
func PriorityMicroLamportsConfigEnvName(cluster solana.Cluster) string {
	return envConfigPrefix + strings.ToUpper(string(cluster)) + priorityMicroLamportsConfigEnvSuffix
}

// WithEnvConfigs returns configuration pulled from environment variables.
// Cluster dependent defaults follow the cluster being targeted.
func WithEnvConfigs(cluster solana.Cluster) ConfigProvider {
	return func() *conf {
		return &conf{
			programId:                env.NewPublicKeyConfig(ProgramIdConfigEnvName, tokenfusion.PROGRAM_ID),
			tokenMint:                env.NewPublicKeyConfig(TokenMintConfigEnvName, nil),
			collection:               env.NewPublicKeyConfig(CollectionConfigEnvName, nil),
			metadataBaseUri:          env.NewStringConfig(MetadataBaseUriConfigEnvName, defaultMetadataBaseUri),
			priorityMicroLamports:    env.NewUint64Config(PriorityMicroLamportsConfigEnvName(cluster), defaultPriorityMicroLamports),
			computeUnitLimit:         env.NewUint64Config(ComputeUnitLimitConfigEnvName, defaultComputeUnitLimit),
			commitment:               env.NewStringConfig(CommitmentConfigEnvName, cluster.DefaultCommitment().Commitment),
			confirmationTimeout:      env.NewDurationConfig(ConfirmationTimeoutConfigEnvName, defaultConfirmationTimeout),
			confirmationPollInterval: env.NewDurationConfig(ConfirmationPollIntervalConfigEnvName, defaultConfirmationPollInterval),
			checkAssetOwner:          env.NewBoolConfig(CheckAssetOwnerConfigEnvName, defaultCheckAssetOwner),
		}
	}
}

type testOverrides struct {
	programId                ed25519.PublicKey
	priorityMicroLamports    uint64
	computeUnitLimit         uint64
	confirmationTimeout      time.Duration
	confirmationPollInterval time.Duration
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		programId := overrides.programId
		if len(programId) == 0 {
			programId = tokenfusion.PROGRAM_ID
		}
		confirmationTimeout := overrides.confirmationTimeout
		if confirmationTimeout == 0 {
			confirmationTimeout = time.Second
		}
		confirmationPollInterval := overrides.confirmationPollInterval
		if confirmationPollInterval == 0 {
			confirmationPollInterval = time.Millisecond
		}

		return &conf{
			programId:                wrapper.NewPublicKeyConfig(memory.NewConfig(programId), tokenfusion.PROGRAM_ID),
			tokenMint:                wrapper.NewPublicKeyConfig(memory.NewConfig(nil), nil),
			collection:               wrapper.NewPublicKeyConfig(memory.NewConfig(nil), nil),
			metadataBaseUri:          wrapper.NewStringConfig(memory.NewConfig(nil), defaultMetadataBaseUri),
			priorityMicroLamports:    wrapper.NewUint64Config(memory.NewConfig(overrides.priorityMicroLamports), 0),
			computeUnitLimit:         wrapper.NewUint64Config(memory.NewConfig(overrides.computeUnitLimit), 0),
			commitment:               wrapper.NewStringConfig(memory.NewConfig(solana.CommitmentConfirmed.Commitment), solana.CommitmentConfirmed.Commitment),
			confirmationTimeout:      wrapper.NewDurationConfig(memory.NewConfig(confirmationTimeout), time.Second),
			confirmationPollInterval: wrapper.NewDurationConfig(memory.NewConfig(confirmationPollInterval), time.Millisecond),
			checkAssetOwner:          wrapper.NewBoolConfig(memory.NewConfig(true), true),
		}
	}
}
