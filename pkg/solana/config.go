package solana

import (
	"strings"

	"github.com/pkg/errors"
)

// Environment is the default public RPC endpoint of a cluster.
type Environment string

const (
	EnvironmentLocal Environment = "http://localhost:8899"
	EnvironmentDev   Environment = "https://api.devnet.solana.com"
	EnvironmentProd  Environment = "https://api.mainnet-beta.solana.com"
)

// Cluster names a Solana network the tooling can target.
type Cluster string

const (
	ClusterLocalnet Cluster = "localnet"
	ClusterDevnet   Cluster = "devnet"
	ClusterMainnet  Cluster = "mainnet"
)

var ErrUnknownCluster = errors.New("unknown cluster")

// ParseCluster accepts the cluster names used by the CLI, plus the
// "mainnet-beta" alias.
func ParseCluster(name string) (Cluster, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "localnet", "localhost":
		return ClusterLocalnet, nil
	case "devnet":
		return ClusterDevnet, nil
	case "mainnet", "mainnet-beta":
		return ClusterMainnet, nil
	}
	return "", errors.Wrapf(ErrUnknownCluster, "%q", name)
}

// DefaultEnvironment returns the public endpoint used when no RPC override is
// configured.
func (c Cluster) DefaultEnvironment() Environment {
	switch c {
	case ClusterDevnet:
		return EnvironmentDev
	case ClusterMainnet:
		return EnvironmentProd
	default:
		return EnvironmentLocal
	}
}

// DefaultCommitment is the level transactions are confirmed at. Public
// clusters use processed to keep the CLI responsive.
func (c Cluster) DefaultCommitment() Commitment {
	if c == ClusterLocalnet {
		return CommitmentConfirmed
	}
	return CommitmentProcessed
}

// SupportsAirdrop reports whether payers may be funded by airdrop.
func (c Cluster) SupportsAirdrop() bool {
	return c == ClusterLocalnet
}
