package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureStatus(t *testing.T) {
	zero, one := 0, 1

	testCases := []struct {
		s         SignatureStatus
		confirmed bool
		finalized bool
	}{
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: "random",
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusProcessed,
			},
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &one,
				ConfirmationStatus: "",
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusConfirmed,
			},
			confirmed: true,
		},
		{
			s: SignatureStatus{
				Slot:               10,
				ErrorResult:        nil,
				Confirmations:      &zero,
				ConfirmationStatus: confirmationStatusFinalized,
			},
			confirmed: true,
			finalized: true,
		},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.confirmed, tc.s.Confirmed())
		assert.Equal(t, tc.finalized, tc.s.Finalized())
	}
}

func TestSignatureStatus_Reached(t *testing.T) {
	zero := 0

	processed := SignatureStatus{Confirmations: &zero, ConfirmationStatus: confirmationStatusProcessed}
	assert.True(t, processed.Reached(CommitmentProcessed))
	assert.False(t, processed.Reached(CommitmentConfirmed))
	assert.False(t, processed.Reached(CommitmentFinalized))

	confirmed := SignatureStatus{Confirmations: &zero, ConfirmationStatus: confirmationStatusConfirmed}
	assert.True(t, confirmed.Reached(CommitmentConfirmed))
	assert.False(t, confirmed.Reached(CommitmentFinalized))

	rooted := SignatureStatus{ConfirmationStatus: confirmationStatusFinalized}
	assert.True(t, rooted.Reached(CommitmentFinalized))

	assert.False(t, rooted.Reached(Commitment{Commitment: "max"}))
}

func TestParseCommitment(t *testing.T) {
	for level, expected := range map[string]Commitment{
		"processed": CommitmentProcessed,
		"confirmed": CommitmentConfirmed,
		"finalized": CommitmentFinalized,
	} {
		actual, err := ParseCommitment(level)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}

	_, err := ParseCommitment("recent")
	assert.Error(t, err)
}

type rpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     int               `json:"id"`
}

type rpcHandler func(req rpcRequest) (result interface{}, rpcErr map[string]interface{})

// newTestServer serves JSON-RPC requests and counts calls per method.
func newTestServer(t *testing.T, handler rpcHandler) (Client, map[string]int) {
	var mu sync.Mutex
	calls := make(map[string]int)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		mu.Lock()
		calls[req.Method]++
		mu.Unlock()

		result, rpcErr := handler(req)

		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
		}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)

	return NewWithRPCOptions(server.URL, nil, nil), calls
}

func TestClient_GetAccountInfo(t *testing.T) {
	owner, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	exists, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	client, _ := newTestServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		var account string
		require.NoError(t, json.Unmarshal(req.Params[0], &account))

		if account != base58.Encode(exists) {
			return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": nil}, nil
		}

		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 1},
			"value": map[string]interface{}{
				"lamports":   1461600,
				"owner":      base58.Encode(owner),
				"data":       []string{base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), "base64"},
				"executable": false,
			},
		}, nil
	})

	info, err := client.GetAccountInfo(exists, CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, info.Data)
	assert.EqualValues(t, owner, info.Owner)
	assert.EqualValues(t, 1461600, info.Lamports)

	missing, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, err = client.GetAccountInfo(missing, CommitmentConfirmed)
	assert.Equal(t, ErrNoAccountInfo, err)
}

func TestClient_ReadsRetryRateLimits(t *testing.T) {
	var attempts int
	client, calls := newTestServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		attempts++
		if attempts == 1 {
			return nil, map[string]interface{}{"code": 429, "message": "Too many requests"}
		}
		return map[string]interface{}{"context": map[string]interface{}{"slot": 1}, "value": 5000}, nil
	})

	account, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	balance, err := client.GetBalance(account, CommitmentConfirmed)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, balance)
	assert.Equal(t, 2, calls["getBalance"])
}

func TestClient_SubmitTransaction_PreflightFailure(t *testing.T) {
	client, calls := newTestServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		var config map[string]interface{}
		require.NoError(t, json.Unmarshal(req.Params[1], &config))
		assert.Equal(t, false, config["skipPreflight"])
		assert.Equal(t, "confirmed", config["preflightCommitment"])

		return nil, map[string]interface{}{
			"code":    -32002,
			"message": "Transaction simulation failed: Error processing Instruction 1: custom program error: 0x1787",
			"data": map[string]interface{}{
				"err": map[string]interface{}{
					"InstructionError": []interface{}{1, map[string]interface{}{"Custom": 6023}},
				},
				"logs": []string{
					"Program log: AnchorError occurred. Error Code: FusionPaused. Error Number: 6023. Error Message: Fusion paused.",
				},
			},
		}
	})

	keys := generateKeys(t, 2)
	txn := NewTransaction(public(keys[0]), NewInstruction(public(keys[1]), []byte{1}))
	require.NoError(t, txn.Sign(keys[0]))

	sig, err := client.SubmitTransaction(txn, CommitmentConfirmed)
	assert.Equal(t, txn.Signature(), sig)

	txErr, ok := err.(*TransactionError)
	require.True(t, ok, "%T", err)
	require.NotNil(t, txErr.InstructionError())
	assert.Equal(t, 1, txErr.InstructionError().Index)
	assert.Equal(t, CustomError(6023), *txErr.InstructionError().CustomError())
	assert.Len(t, txErr.Logs, 1)

	assert.Equal(t, 1, calls["sendTransaction"])
}

func TestClient_SubmitTransaction_NotRetried(t *testing.T) {
	client, calls := newTestServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return nil, map[string]interface{}{"code": -32005, "message": "Node is unhealthy"}
	})

	keys := generateKeys(t, 2)
	txn := NewTransaction(public(keys[0]), NewInstruction(public(keys[1]), []byte{1}))
	require.NoError(t, txn.Sign(keys[0]))

	_, err := client.SubmitTransaction(txn, CommitmentConfirmed)
	require.Error(t, err)
	assert.Equal(t, 1, calls["sendTransaction"])
}

func TestClient_GetSignatureStatuses(t *testing.T) {
	client, _ := newTestServer(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return map[string]interface{}{
			"context": map[string]interface{}{"slot": 10},
			"value": []interface{}{
				map[string]interface{}{
					"slot":               9,
					"confirmations":      nil,
					"confirmationStatus": "finalized",
					"err":                nil,
				},
				nil,
				map[string]interface{}{
					"slot":               9,
					"confirmations":      1,
					"confirmationStatus": "confirmed",
					"err": map[string]interface{}{
						"InstructionError": []interface{}{0, map[string]interface{}{"Custom": 2001}},
					},
				},
			},
		}, nil
	})

	statuses, err := client.GetSignatureStatuses(make([]Signature, 3))
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	require.NotNil(t, statuses[0])
	assert.True(t, statuses[0].Finalized())
	assert.Nil(t, statuses[0].ErrorResult)

	assert.Nil(t, statuses[1])

	require.NotNil(t, statuses[2])
	require.NotNil(t, statuses[2].ErrorResult)
	assert.Equal(t, CustomError(2001), *statuses[2].ErrorResult.InstructionError().CustomError())
}
