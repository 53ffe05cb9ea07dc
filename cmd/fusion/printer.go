package main

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/token-fusion/pkg/fusion"
	"github.com/code-payments/token-fusion/pkg/solana"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// field is a single labelled value of command output.
type field struct {
	Key   string
	Value interface{}
}

// record is ordered command output. Text output keeps the order, JSON output
// is an object keyed by label.
type record []field

func (r record) with(key string, value interface{}) record {
	return append(r, field{Key: key, Value: value})
}

func (r record) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(r))
	for _, f := range r {
		m[f.Key] = f.Value
	}
	return json.Marshal(m)
}

// Printer centralizes output formatting across subcommands. It respects the
// root --output flag.
type Printer struct {
	format string
	out    io.Writer
}

func getPrinter() Printer { return Printer{format: flagOutput, out: os.Stdout} }

func (p Printer) Print(r record) error {
	switch p.format {
	case outputJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case outputText, "":
		for _, f := range r {
			if _, err := fmt.Fprintf(p.out, "%-20s %v\n", f.Key+":", f.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("invalid --output: %s (use text|json)", p.format)
	}
}

func encodeKey(key ed25519.PublicKey) string {
	if len(key) == 0 {
		return ""
	}
	return base58.Encode(key)
}

func signatureRecord(sig solana.Signature) record {
	return record{}.with("signature", sig.String())
}

func stateRecord(state *fusion.FusionData) record {
	r := record{}
	if state == nil {
		return r.with("fusion_data", "closed")
	}

	maxSupply := "unlimited"
	if state.AssetData.MaxSupply != nil {
		maxSupply = fmt.Sprint(*state.AssetData.MaxSupply)
	}

	feeRecipient := encodeKey(state.FeeData.FeeRecipient)
	if len(feeRecipient) == 0 {
		feeRecipient = "none"
	}

	return r.
		with("fusion_data", encodeKey(state.Address)).
		with("authority", encodeKey(state.Authority)).
		with("collection", encodeKey(state.Collection)).
		with("token_mint", encodeKey(state.TokenMint)).
		with("paused", state.Paused).
		with("max_supply", maxSupply).
		with("next_index", state.AssetData.NextIndex).
		with("next_asset_name", state.AssetData.NextAssetName()).
		with("next_asset_uri", state.AssetData.NextAssetURI()).
		with("escrow_amount", state.FeeData.EscrowAmount).
		with("fee_amount", state.FeeData.FeeAmount).
		with("burn_amount", state.FeeData.BurnAmount).
		with("sol_fee_amount", state.FeeData.SolFeeAmount).
		with("fee_recipient", feeRecipient)
}

func resultRecord(result *fusion.Result) record {
	return append(signatureRecord(result.Signature), stateRecord(result.State)...)
}

func overviewRecord(overview *fusion.Overview) record {
	r := record{}.
		with("program", encodeKey(overview.Addresses.Program)).
		with("authority_pda", encodeKey(overview.Addresses.Authority)).
		with("escrow", encodeKey(overview.Escrow)).
		with("escrow_balance", overview.EscrowBalance)
	r = append(r, stateRecord(overview.State)...)

	if overview.Collection != nil {
		r = r.
			with("collection_name", overview.Collection.Name).
			with("collection_minted", overview.Collection.NumMinted).
			with("collection_size", overview.Collection.CurrentSize)
	}
	return r
}
