package fusion

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/token-fusion/pkg/metrics"
	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/mplcore"
	"github.com/code-payments/token-fusion/pkg/solana/token"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
)

const (
	accessorMetricsStructName = "fusion.accessor"
)

var errUnexpectedOwner = errors.New("account has an unexpected owner")

// FusionData is a decoded fusion data account.
type FusionData struct {
	Address ed25519.PublicKey
	tokenfusion.FusionDataAccount
}

// Accessor reads fusion state from the network. Nothing is cached, so every
// call observes the latest state at the configured commitment.
type Accessor interface {
	// Fetch returns the fusion data account, ErrAccountNotFound if it has not
	// been initialized, or a *DecodeError if its data cannot be decoded.
	Fetch(ctx context.Context) (*FusionData, error)

	// FetchSafe is Fetch with absence reported through the bool rather than
	// an error.
	FetchSafe(ctx context.Context) (*FusionData, bool, error)

	// AccountExists reports whether any account exists at address.
	AccountExists(ctx context.Context, address ed25519.PublicKey) (bool, error)

	// TokenBalance returns the balance of a token account of mint.
	TokenBalance(ctx context.Context, account, mint ed25519.PublicKey) (uint64, error)

	// LamportBalance returns the lamports held by account.
	LamportBalance(ctx context.Context, account ed25519.PublicKey) (uint64, error)

	// Asset returns the MPL Core asset at address, or ErrAssetNotFound.
	Asset(ctx context.Context, address ed25519.PublicKey) (*mplcore.BaseAssetV1, error)

	// Collection returns the MPL Core collection at address, or
	// ErrCollectionNotFound.
	Collection(ctx context.Context, address ed25519.PublicKey) (*mplcore.BaseCollectionV1, error)
}

type rpcAccessor struct {
	log        *logrus.Entry
	client     solana.Client
	addresses  *Addresses
	commitment solana.Commitment
}

// NewAccessor returns an Accessor reading through client.
func NewAccessor(client solana.Client, addresses *Addresses, commitment solana.Commitment) Accessor {
	return &rpcAccessor{
		log:        logrus.StandardLogger().WithField("type", "fusion/accessor"),
		client:     client,
		addresses:  addresses,
		commitment: commitment,
	}
}

// Fetch implements Accessor.Fetch
func (a *rpcAccessor) Fetch(ctx context.Context) (*FusionData, error) {
	tracer := metrics.TraceMethodCall(ctx, accessorMetricsStructName, "Fetch")
	defer tracer.End()

	data, err := a.fetch(ctx)
	if err != nil && err != ErrAccountNotFound {
		tracer.OnError(err)
	}
	return data, err
}

// FetchSafe implements Accessor.FetchSafe
func (a *rpcAccessor) FetchSafe(ctx context.Context) (*FusionData, bool, error) {
	data, err := a.Fetch(ctx)
	if err == ErrAccountNotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (a *rpcAccessor) fetch(ctx context.Context) (*FusionData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := a.log.WithFields(logrus.Fields{
		"method":  "fetch",
		"address": base58.Encode(a.addresses.FusionData),
	})

	info, err := a.client.GetAccountInfo(a.addresses.FusionData, a.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		log.WithError(err).Warn("failure getting fusion data account")
		return nil, errors.Wrap(err, "error getting fusion data account")
	}

	if !bytes.Equal(info.Owner, a.addresses.Program) {
		return nil, &DecodeError{Address: a.addresses.FusionData, Err: errUnexpectedOwner}
	}

	data := &FusionData{Address: a.addresses.FusionData}
	if err := data.Unmarshal(info.Data); err != nil {
		log.WithError(err).Warn("fusion data account has an unexpected layout")
		return nil, &DecodeError{Address: a.addresses.FusionData, Err: err}
	}
	return data, nil
}

// AccountExists implements Accessor.AccountExists
func (a *rpcAccessor) AccountExists(ctx context.Context, address ed25519.PublicKey) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := a.client.GetAccountInfo(address, a.commitment)
	if err == solana.ErrNoAccountInfo {
		return false, nil
	} else if err != nil {
		return false, errors.Wrap(err, "error getting account info")
	}
	return true, nil
}

// TokenBalance implements Accessor.TokenBalance
func (a *rpcAccessor) TokenBalance(ctx context.Context, account, mint ed25519.PublicKey) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	tokenAccount, err := token.NewClient(a.client, mint).GetAccount(account, a.commitment)
	if err != nil {
		return 0, err
	}
	return tokenAccount.Amount, nil
}

// LamportBalance implements Accessor.LamportBalance
func (a *rpcAccessor) LamportBalance(ctx context.Context, account ed25519.PublicKey) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	balance, err := a.client.GetBalance(account, a.commitment)
	if err == solana.ErrNoBalance || err == solana.ErrNoAccountInfo {
		return 0, nil
	} else if err != nil {
		return 0, errors.Wrap(err, "error getting balance")
	}
	return balance, nil
}

// Asset implements Accessor.Asset
func (a *rpcAccessor) Asset(ctx context.Context, address ed25519.PublicKey) (*mplcore.BaseAssetV1, error) {
	info, err := a.getMplCoreAccount(ctx, address)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAssetNotFound
	} else if err != nil {
		return nil, err
	}

	var asset mplcore.BaseAssetV1
	if err := asset.Unmarshal(info.Data); err != nil {
		return nil, &DecodeError{Address: address, Err: err}
	}
	return &asset, nil
}

// Collection implements Accessor.Collection
func (a *rpcAccessor) Collection(ctx context.Context, address ed25519.PublicKey) (*mplcore.BaseCollectionV1, error) {
	info, err := a.getMplCoreAccount(ctx, address)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrCollectionNotFound
	} else if err != nil {
		return nil, err
	}

	var collection mplcore.BaseCollectionV1
	if err := collection.Unmarshal(info.Data); err != nil {
		return nil, &DecodeError{Address: address, Err: err}
	}
	return &collection, nil
}

func (a *rpcAccessor) getMplCoreAccount(ctx context.Context, address ed25519.PublicKey) (solana.AccountInfo, error) {
	if err := ctx.Err(); err != nil {
		return solana.AccountInfo{}, err
	}

	info, err := a.client.GetAccountInfo(address, a.commitment)
	if err == solana.ErrNoAccountInfo {
		return solana.AccountInfo{}, err
	} else if err != nil {
		return solana.AccountInfo{}, errors.Wrap(err, "error getting account info")
	}

	if !bytes.Equal(info.Owner, mplcore.PROGRAM_ID) {
		return solana.AccountInfo{}, &DecodeError{Address: address, Err: errUnexpectedOwner}
	}
	return info, nil
}
