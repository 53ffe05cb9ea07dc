package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/token-fusion/pkg/solana"
)

type accountInfoClient struct {
	solana.Client

	accounts map[string]solana.AccountInfo
}

func (c *accountInfoClient) GetAccountInfo(address ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	info, ok := c.accounts[string(address)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func TestClient(t *testing.T) {
	keys := generateKeys(t, 5)
	mint, owner, ata, foreign, missing := keys[0], keys[1], keys[2], keys[3], keys[4]

	account := Account{
		Mint:   mint,
		Owner:  owner,
		Amount: 100_000_000_000,
		State:  AccountStateInitialized,
	}
	mintState := Mint{
		MintAuthority: owner,
		Supply:        100_000_000_000,
		Decimals:      9,
		IsInitialized: true,
	}

	sc := &accountInfoClient{
		accounts: map[string]solana.AccountInfo{
			string(mint):    {Owner: ProgramKey, Data: mintState.Marshal()},
			string(ata):     {Owner: ProgramKey, Data: account.Marshal()},
			string(foreign): {Owner: owner, Data: account.Marshal()},
		},
	}

	c := NewClient(sc, mint)
	assert.Equal(t, mint, c.Token())

	actual, err := c.GetAccount(ata, solana.CommitmentConfirmed)
	require.NoError(t, err)
	assert.EqualValues(t, 100_000_000_000, actual.Amount)
	assert.Equal(t, owner, actual.Owner)

	_, err = c.GetAccount(missing, solana.CommitmentConfirmed)
	assert.Equal(t, ErrAccountNotFound, err)

	_, err = c.GetAccount(foreign, solana.CommitmentConfirmed)
	assert.Equal(t, ErrInvalidTokenAccount, err)

	// The mint itself is not a token account.
	_, err = c.GetAccount(mint, solana.CommitmentConfirmed)
	assert.Equal(t, ErrInvalidTokenAccount, err)

	actualMint, err := c.GetMint(solana.CommitmentConfirmed)
	require.NoError(t, err)
	assert.EqualValues(t, 9, actualMint.Decimals)
	assert.EqualValues(t, owner, actualMint.MintAuthority)

	_, err = NewClient(sc, ata).GetMint(solana.CommitmentConfirmed)
	assert.Equal(t, ErrInvalidMint, err)

	_, err = NewClient(sc, foreign).GetMint(solana.CommitmentConfirmed)
	assert.Equal(t, ErrInvalidMint, err)

	_, err = NewClient(sc, missing).GetMint(solana.CommitmentConfirmed)
	assert.Equal(t, ErrAccountNotFound, err)
}
