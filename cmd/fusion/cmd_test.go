package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/token-fusion/pkg/fusion"
	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
	"github.com/code-payments/token-fusion/pkg/testutil"
)

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool)
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func generateKey(t *testing.T) ed25519.PublicKey {
	return testutil.NewRandomPublicKey(t)
}

func TestUpdateArgs(t *testing.T) {
	recipient := generateKey(t)

	flags := &assetDataFlags{
		maxSupply:    10,
		nextIndex:    7,
		namePrefix:   "New #",
		feeAmount:    5,
		feeRecipient: base58.Encode(recipient),
	}

	args, err := flags.updateArgs(changedSet("max-supply", "name-prefix", "fee-amount", "fee-recipient"))
	require.NoError(t, err)

	assert.True(t, args.MaxSupply.IsSet())
	assert.EqualValues(t, 10, args.MaxSupply.Value())
	assert.Nil(t, args.NextIndex)
	require.NotNil(t, args.NamePrefix)
	assert.Equal(t, "New #", *args.NamePrefix)
	assert.Nil(t, args.UriPrefix)
	require.NotNil(t, args.FeeAmount)
	assert.EqualValues(t, 5, *args.FeeAmount)
	assert.Nil(t, args.EscrowAmount)
	assert.True(t, args.FeeRecipient.IsSet())
	assert.EqualValues(t, recipient, args.FeeRecipient.Value())

	args, err = (&assetDataFlags{unlimited: true, noFeeRecipient: true}).updateArgs(changedSet("unlimited", "no-fee-recipient"))
	require.NoError(t, err)
	assert.True(t, args.MaxSupply.IsCleared())
	assert.True(t, args.FeeRecipient.IsCleared())

	args, err = (&assetDataFlags{}).updateArgs(changedSet())
	require.NoError(t, err)
	assert.True(t, args.IsEmpty())
}

func TestUpdateArgs_Conflicts(t *testing.T) {
	_, err := (&assetDataFlags{unlimited: true, maxSupply: 3}).updateArgs(changedSet("max-supply", "unlimited"))
	assert.Error(t, err)

	_, err = (&assetDataFlags{noFeeRecipient: true, feeRecipient: base58.Encode(generateKey(t))}).updateArgs(changedSet("fee-recipient"))
	assert.Error(t, err)

	_, err = (&assetDataFlags{feeRecipient: "not-a-key"}).updateArgs(changedSet("fee-recipient"))
	assert.Error(t, err)
}

func TestInitData(t *testing.T) {
	signer := generateKey(t)

	flags := &assetDataFlags{
		maxSupply:    100,
		nextIndex:    1,
		namePrefix:   "STF #",
		uriPrefix:    "https://meta.example.org/",
		escrowAmount: 100_000_000_000,
		feeAmount:    20_000_000_000,
		burnAmount:   30_000_000_000,
		solFeeAmount: 13_370_000,
	}

	assetData, feeData, err := flags.initData(signer)
	require.NoError(t, err)
	require.NotNil(t, assetData.MaxSupply)
	assert.EqualValues(t, 100, *assetData.MaxSupply)
	assert.Equal(t, "STF #1", assetData.NextAssetName())
	assert.Equal(t, "https://meta.example.org/1", assetData.NextAssetURI())
	assert.EqualValues(t, signer, feeData.FeeRecipient)
	assert.NoError(t, feeData.Validate())

	flags.unlimited = true
	flags.noFeeRecipient = true
	assetData, feeData, err = flags.initData(signer)
	require.NoError(t, err)
	assert.Nil(t, assetData.MaxSupply)
	assert.Nil(t, feeData.FeeRecipient)
	assert.Equal(t, tokenfusion.ErrInvalidFeeRecipient, feeData.Validate())
}

func TestBaseUnits(t *testing.T) {
	amount, err := baseUnits(1_000_000, 9)
	require.NoError(t, err)
	assert.EqualValues(t, uint64(1_000_000_000_000_000), amount)

	amount, err = baseUnits(42, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 42, amount)

	_, err = baseUnits(1_000_000_000_000, 9)
	assert.Error(t, err)
}

func TestParsePublicKey(t *testing.T) {
	key := generateKey(t)

	parsed, err := parsePublicKey("owner", base58.Encode(key))
	require.NoError(t, err)
	assert.EqualValues(t, key, parsed)

	_, err = parsePublicKey("owner", base58.Encode(key[:31]))
	assert.Error(t, err)

	_, err = parsePublicKey("owner", "0OIl")
	assert.Error(t, err)
}

func TestConfiguredPublicKey(t *testing.T) {
	key := generateKey(t)
	t.Setenv(fusion.CollectionConfigEnvName, base58.Encode(key))

	parsed, err := configuredPublicKey("collection", "", fusion.CollectionConfigEnvName)
	require.NoError(t, err)
	assert.EqualValues(t, key, parsed)

	t.Setenv(fusion.CollectionConfigEnvName, "")
	parsed, err = configuredPublicKey("collection", "", fusion.CollectionConfigEnvName)
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = requiredPublicKey("collection", "", fusion.CollectionConfigEnvName)
	assert.Error(t, err)
}

func TestRpcEndpoint(t *testing.T) {
	t.Setenv("SOLANA_DEVNET_RPC", "")
	assert.Equal(t, string(solana.EnvironmentDev), rpcEndpoint(solana.ClusterDevnet))

	t.Setenv("SOLANA_DEVNET_RPC", "https://rpc.example.org")
	assert.Equal(t, "https://rpc.example.org", rpcEndpoint(solana.ClusterDevnet))
}

func TestLoadKeypair(t *testing.T) {
	private, path := writeKeypair(t)

	loaded, err := loadKeypair(path)
	require.NoError(t, err)
	assert.Equal(t, private, loaded)

	_, err = loadKeypair(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	generated, err := loadOrGenerateKeypair("")
	require.NoError(t, err)
	assert.Len(t, generated, ed25519.PrivateKeySize)
}

func TestPrinter(t *testing.T) {
	maxSupply := uint32(100)
	state := &fusion.FusionData{
		Address: generateKey(t),
		FusionDataAccount: tokenfusion.FusionDataAccount{
			Authority:  generateKey(t),
			Collection: generateKey(t),
			TokenMint:  generateKey(t),
			AssetData: tokenfusion.AssetDataV1{
				MaxSupply:  &maxSupply,
				NextIndex:  3,
				NamePrefix: "STF #",
				UriPrefix:  "https://meta.example.org/",
			},
			FeeData: tokenfusion.FeeDataV1{
				EscrowAmount: 100,
			},
		},
	}
	r := resultRecord(&fusion.Result{State: state})

	var text bytes.Buffer
	require.NoError(t, Printer{format: outputText, out: &text}.Print(r))
	assert.Contains(t, text.String(), "next_asset_name:     STF #3\n")
	assert.Contains(t, text.String(), "fee_recipient:       none\n")

	var out bytes.Buffer
	require.NoError(t, Printer{format: outputJSON, out: &out}.Print(r))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "100", decoded["max_supply"])
	assert.Equal(t, "https://meta.example.org/3", decoded["next_asset_uri"])
	assert.Equal(t, false, decoded["paused"])

	closed := resultRecord(&fusion.Result{})
	require.Len(t, closed, 2)
	assert.Equal(t, "closed", closed[1].Value)

	assert.Error(t, Printer{format: "yaml", out: &out}.Print(r))
}
