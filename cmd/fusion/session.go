package main

import (
	"context"
	"crypto/ed25519"
	"os"
	"path/filepath"
	"strings"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/token-fusion/pkg/fusion"
	"github.com/code-payments/token-fusion/pkg/solana"
)

const (
	rpcEnvPrefix = "SOLANA_"
	rpcEnvSuffix = "_RPC"

	keypairEnvName = "KEYPAIR"

	lamportsPerSol = 1_000_000_000

	// Localnet payers below the threshold are topped up by airdrop.
	airdropThreshold = lamportsPerSol
	airdropAmount    = 2 * lamportsPerSol
)

// session is the per command wiring of cluster, RPC client, fusion service
// and signer.
type session struct {
	log     *logrus.Entry
	cluster solana.Cluster
	client  solana.Client
	service *fusion.Service
	signer  ed25519.PrivateKey
}

func newSession(ctx context.Context, requireSigner bool) (*session, error) {
	cluster, err := solana.ParseCluster(flagCluster)
	if err != nil {
		return nil, err
	}

	endpoint := rpcEndpoint(cluster)
	client := solana.New(endpoint)

	service, err := fusion.NewService(client, fusion.WithEnvConfigs(cluster))
	if err != nil {
		return nil, errors.Wrap(err, "error creating fusion service")
	}

	log := application.Logger().WithFields(logrus.Fields{
		"cluster": string(cluster),
		"rpc":     endpoint,
		"program": base58.Encode(service.Addresses().Program),
	})

	s := &session{
		log:     log,
		cluster: cluster,
		client:  client,
		service: service,
	}

	if !requireSigner {
		return s, nil
	}

	s.signer, err = loadKeypair(keypairPath())
	if err != nil {
		return nil, err
	}
	s.log = s.log.WithField("signer", base58.Encode(s.publicKey()))

	if cluster.SupportsAirdrop() {
		if err := s.fund(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *session) publicKey() ed25519.PublicKey {
	return s.signer.Public().(ed25519.PublicKey)
}

// fund airdrops SOL to the signer when its balance is low.
func (s *session) fund(ctx context.Context) error {
	balance, err := s.client.GetBalance(s.publicKey(), solana.CommitmentConfirmed)
	if err != nil && !errors.Is(err, solana.ErrNoBalance) {
		return errors.Wrap(err, "error getting signer balance")
	}
	if balance >= airdropThreshold {
		return nil
	}

	s.log.WithField("lamports", airdropAmount).Info("requesting airdrop")

	sig, err := s.client.RequestAirdrop(s.publicKey(), airdropAmount, solana.CommitmentConfirmed)
	if err != nil {
		return errors.Wrap(err, "error requesting airdrop")
	}
	return s.service.Assembler().Await(ctx, sig)
}

// submit assembles instructions outside the fusion program under the
// cluster's priority settings and waits for confirmation.
func (s *session) submit(ctx context.Context, instructions []solana.Instruction, signers ...ed25519.PrivateKey) (solana.Signature, error) {
	assembler := s.service.Assembler()
	txn := assembler.Assemble(ctx, s.publicKey(), instructions...)
	return assembler.Submit(ctx, txn, append([]ed25519.PrivateKey{s.signer}, signers...)...)
}

func rpcEndpoint(cluster solana.Cluster) string {
	name := rpcEnvPrefix + strings.ToUpper(string(cluster)) + rpcEnvSuffix
	if endpoint := os.Getenv(name); len(endpoint) > 0 {
		return endpoint
	}
	return string(cluster.DefaultEnvironment())
}

func keypairPath() string {
	if len(flagKeypair) > 0 {
		return flagKeypair
	}
	if path := os.Getenv(keypairEnvName); len(path) > 0 {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "id.json"
	}
	return filepath.Join(home, ".config", "solana", "id.json")
}

// loadKeypair reads a solana-keygen JSON file.
func loadKeypair(path string) (ed25519.PrivateKey, error) {
	key, err := solanago.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading keypair %s", path)
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("keypair %s has invalid length %d", path, len(key))
	}
	return ed25519.PrivateKey(key), nil
}

// loadOrGenerateKeypair loads path when set, otherwise generates a new key.
func loadOrGenerateKeypair(path string) (ed25519.PrivateKey, error) {
	if len(path) > 0 {
		return loadKeypair(path)
	}

	_, key, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrap(err, "error generating keypair")
	}
	return key, nil
}
