package main

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/token-fusion/pkg/fusion"
	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
	"github.com/code-payments/token-fusion/pkg/testutil"
)

func writeKeypair(t *testing.T) (ed25519.PrivateKey, string) {
	private := testutil.NewRandomAccount(t)

	raw := make([]int, len(private))
	for i, b := range private {
		raw[i] = int(b)
	}
	encoded, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, encoded, 0o600))
	return private, path
}

// newInitializedClusterServer serves a funded signer and an existing fusion
// data account, recording the RPC methods called.
func newInitializedClusterServer(t *testing.T) (string, func() map[string]int) {
	var mu sync.Mutex
	calls := make(map[string]int)

	var program ed25519.PublicKey
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string `json:"method"`
			ID     int    `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		mu.Lock()
		calls[req.Method]++
		mu.Unlock()

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
		}
		rpcContext := map[string]interface{}{"slot": 1}

		switch req.Method {
		case "getBalance":
			resp["result"] = map[string]interface{}{
				"context": rpcContext,
				"value":   10 * lamportsPerSol,
			}
		case "getAccountInfo":
			account := tokenfusion.FusionDataAccount{
				Authority:  testutil.NewRandomPublicKey(t),
				Collection: testutil.NewRandomPublicKey(t),
				TokenMint:  testutil.NewRandomPublicKey(t),
				AssetData:  tokenfusion.AssetDataV1{NextIndex: 1},
			}
			resp["result"] = map[string]interface{}{
				"context": rpcContext,
				"value": map[string]interface{}{
					"lamports":   1_000_000,
					"owner":      base58.Encode(program),
					"data":       []string{base64.StdEncoding.EncodeToString(account.Marshal()), "base64"},
					"executable": false,
				},
			}
		default:
			resp["error"] = map[string]interface{}{"code": -32601, "message": "unexpected method " + req.Method}
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	service, err := fusion.NewService(solana.New(server.URL), fusion.WithEnvConfigs(solana.ClusterLocalnet))
	require.NoError(t, err)
	program = service.Addresses().Program

	return server.URL, func() map[string]int {
		mu.Lock()
		defer mu.Unlock()

		copied := make(map[string]int, len(calls))
		for k, v := range calls {
			copied[k] = v
		}
		return copied
	}
}

func TestAlreadyInitializedIsNotAnError(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
	}{
		{
			name: "fusion init",
			args: []string{
				"fusion", "init",
				"--token-mint", base58.Encode(testutil.NewRandomPublicKey(t)),
				"--collection", base58.Encode(testutil.NewRandomPublicKey(t)),
			},
		},
		{
			name: "deploy",
			args: []string{"deploy"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			endpoint, calls := newInitializedClusterServer(t)
			t.Setenv("SOLANA_LOCALNET_RPC", endpoint)

			var out bytes.Buffer
			rootCmd.SetOut(&out)
			t.Cleanup(func() { rootCmd.SetOut(nil) })

			_, keypair := writeKeypair(t)
			rootCmd.SetArgs(append(tc.args,
				"--cluster", "localnet",
				"--keypair", keypair,
				"--config", filepath.Join(t.TempDir(), "missing.yaml"),
			))
			require.NoError(t, rootCmd.ExecuteContext(context.Background()))

			assert.Equal(t, fusion.ErrAlreadyInitialized.Error()+"\n", out.String())

			called := calls()
			assert.NotZero(t, called["getAccountInfo"])
			assert.Zero(t, called["requestAirdrop"])
			assert.Zero(t, called["sendTransaction"])
		})
	}
}
