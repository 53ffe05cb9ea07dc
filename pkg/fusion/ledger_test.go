package fusion

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/code-payments/token-fusion/pkg/solana"
	compute_budget "github.com/code-payments/token-fusion/pkg/solana/computebudget"
	"github.com/code-payments/token-fusion/pkg/solana/mplcore"
	"github.com/code-payments/token-fusion/pkg/solana/system"
	"github.com/code-payments/token-fusion/pkg/solana/token"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
)

const (
	codeAlreadyInUse      uint32 = 0
	codeInsufficientFunds uint32 = 1
)

// memoryLedger is a solana.Client that executes fusion transactions against
// in memory accounts. Transactions apply atomically: a failing instruction
// leaves every account untouched.
type memoryLedger struct {
	sync.Mutex

	program  ed25519.PublicKey
	accounts ledgerState
	statuses map[solana.Signature]*solana.SignatureStatus
	slot     uint64

	submitErr     error
	neverConfirm  bool
	statusErr     error
	submitCalls   int
	statusQueries int
	submitted     []solana.Transaction
}

func newMemoryLedger(program ed25519.PublicKey) *memoryLedger {
	return &memoryLedger{
		program:  program,
		accounts: make(ledgerState),
		statuses: make(map[solana.Signature]*solana.SignatureStatus),
	}
}

func (l *memoryLedger) GetAccountInfo(address ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	l.Lock()
	defer l.Unlock()

	info, ok := l.accounts[string(address)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	info.Data = append([]byte(nil), info.Data...)
	return info, nil
}

func (l *memoryLedger) GetBalance(address ed25519.PublicKey, _ solana.Commitment) (uint64, error) {
	l.Lock()
	defer l.Unlock()

	info, ok := l.accounts[string(address)]
	if !ok {
		return 0, solana.ErrNoBalance
	}
	return info.Lamports, nil
}

func (l *memoryLedger) GetLatestBlockhash() (solana.Blockhash, error) {
	l.Lock()
	defer l.Unlock()

	l.slot++

	var blockhash solana.Blockhash
	binary.BigEndian.PutUint64(blockhash[:], l.slot)
	return blockhash, nil
}

func (l *memoryLedger) GetMinimumBalanceForRentExemption(size uint64) (uint64, error) {
	return rentExemptLamports(size), nil
}

func (l *memoryLedger) GetSignatureStatuses(sigs []solana.Signature) ([]*solana.SignatureStatus, error) {
	l.Lock()
	defer l.Unlock()

	l.statusQueries++
	if l.statusErr != nil {
		return nil, l.statusErr
	}

	statuses := make([]*solana.SignatureStatus, len(sigs))
	for i, sig := range sigs {
		if status, ok := l.statuses[sig]; ok {
			cloned := *status
			statuses[i] = &cloned
		}
	}
	return statuses, nil
}

func (l *memoryLedger) GetTokenAccountBalance(address ed25519.PublicKey, _ solana.Commitment) (uint64, uint64, error) {
	l.Lock()
	defer l.Unlock()

	account, ok := l.accounts.tokenAccount(address)
	if !ok {
		return 0, 0, solana.ErrNoBalance
	}
	return account.Amount, 9, nil
}

func (l *memoryLedger) RequestAirdrop(address ed25519.PublicKey, lamports uint64, _ solana.Commitment) (solana.Signature, error) {
	l.Lock()
	defer l.Unlock()

	l.slot++
	l.accounts.credit(address, lamports)

	var sig solana.Signature
	binary.BigEndian.PutUint64(sig[:], l.slot)
	l.statuses[sig] = l.newStatus()
	return sig, nil
}

func (l *memoryLedger) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	l.Lock()
	defer l.Unlock()

	l.submitCalls++
	l.submitted = append(l.submitted, txn)

	if l.submitErr != nil {
		return solana.Signature{}, l.submitErr
	}

	if err := txn.VerifySignatures(); err != nil {
		return solana.Signature{}, solana.NewTransactionError(solana.TransactionErrorSignatureFailure)
	}

	sig := txn.Signature()

	working := l.accounts.clone()
	for i := range txn.Message.Instructions {
		if err := l.execute(working, txn, i); err != nil {
			return sig, err
		}
	}

	l.accounts = working
	l.statuses[sig] = l.newStatus()
	return sig, nil
}

func (l *memoryLedger) newStatus() *solana.SignatureStatus {
	confirmations := 1
	status := &solana.SignatureStatus{
		Slot:               l.slot,
		Confirmations:      &confirmations,
		ConfirmationStatus: solana.CommitmentConfirmed.Commitment,
	}
	if l.neverConfirm {
		confirmations = 0
		status.ConfirmationStatus = solana.CommitmentProcessed.Commitment
	}
	return status
}

func (l *memoryLedger) submitCount() int {
	l.Lock()
	defer l.Unlock()
	return l.submitCalls
}

func (l *memoryLedger) setLamports(address ed25519.PublicKey, lamports uint64) {
	l.Lock()
	defer l.Unlock()

	info := l.accounts[string(address)]
	if info.Owner == nil {
		info.Owner = system.ProgramKey[:]
	}
	info.Lamports = lamports
	l.accounts[string(address)] = info
}

func (l *memoryLedger) lamports(address ed25519.PublicKey) uint64 {
	l.Lock()
	defer l.Unlock()
	return l.accounts[string(address)].Lamports
}

// setTokenBalance creates or updates the owner's associated token account.
func (l *memoryLedger) setTokenBalance(owner, mint ed25519.PublicKey, amount uint64) ed25519.PublicKey {
	l.Lock()
	defer l.Unlock()

	address, err := token.GetAssociatedAccount(owner, mint)
	if err != nil {
		panic(err)
	}
	l.accounts.putTokenAccount(address, &token.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
		State:  token.AccountStateInitialized,
	})
	return address
}

// tokenBalance returns the balance of the token account at address, or -1
// if it does not exist.
func (l *memoryLedger) tokenBalance(address ed25519.PublicKey) int64 {
	l.Lock()
	defer l.Unlock()

	account, ok := l.accounts.tokenAccount(address)
	if !ok {
		return -1
	}
	return int64(account.Amount)
}

func (l *memoryLedger) setCollection(address ed25519.PublicKey, collection *mplcore.BaseCollectionV1) {
	l.Lock()
	defer l.Unlock()
	l.accounts.put(address, mplcore.PROGRAM_ID, collection.Marshal())
}

func (l *memoryLedger) setAsset(address ed25519.PublicKey, asset *mplcore.BaseAssetV1) {
	l.Lock()
	defer l.Unlock()
	l.accounts.put(address, mplcore.PROGRAM_ID, asset.Marshal())
}

func (l *memoryLedger) setRaw(address, owner ed25519.PublicKey, data []byte) {
	l.Lock()
	defer l.Unlock()
	l.accounts.put(address, owner, data)
}

func (l *memoryLedger) collection(address ed25519.PublicKey) (*mplcore.BaseCollectionV1, bool) {
	l.Lock()
	defer l.Unlock()
	return l.accounts.collection(address)
}

func (l *memoryLedger) asset(address ed25519.PublicKey) (*mplcore.BaseAssetV1, bool) {
	l.Lock()
	defer l.Unlock()
	return l.accounts.asset(address)
}

func (l *memoryLedger) execute(state ledgerState, txn solana.Transaction, index int) error {
	m := txn.Message
	program := m.Accounts[m.Instructions[index].ProgramIndex]

	switch {
	case bytes.Equal(program, compute_budget.ProgramKey):
		return nil
	case bytes.Equal(program, token.AssociatedTokenAccountProgramKey):
		return l.executeCreateAssociatedAccount(state, m, index)
	case bytes.Equal(program, l.program):
		return l.executeFusion(state, txn, index)
	default:
		return solana.NewTransactionError(solana.TransactionErrorProgramAccountNotFound)
	}
}

func (l *memoryLedger) executeCreateAssociatedAccount(state ledgerState, m solana.Message, index int) error {
	decompiled, err := token.DecompileCreateAssociatedAccount(m, index)
	if err != nil {
		return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
	}

	if _, exists := state[string(decompiled.Address)]; exists {
		return newProgramError(index, codeAlreadyInUse, "account already in use")
	}

	expected, err := token.GetAssociatedAccount(decompiled.Owner, decompiled.Mint)
	if err != nil || !bytes.Equal(expected, decompiled.Address) {
		return newInstructionError(index, solana.InstructionErrorInvalidSeeds)
	}

	state.putTokenAccount(decompiled.Address, &token.Account{
		Mint:  decompiled.Mint,
		Owner: decompiled.Owner,
		State: token.AccountStateInitialized,
	})
	return nil
}

func (l *memoryLedger) executeFusion(state ledgerState, txn solana.Transaction, index int) error {
	data := txn.Message.Instructions[index].Data

	switch tokenfusion.GetInstructionType(data) {
	case tokenfusion.InstructionTypeInitV1:
		args, accounts, err := tokenfusion.InitV1InstructionFromLegacyInstruction(txn, index, l.program)
		if err != nil {
			return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
		}
		return l.executeInit(state, index, args, accounts)

	case tokenfusion.InstructionTypeFusionIntoV1:
		accounts, err := tokenfusion.FusionIntoV1InstructionFromLegacyInstruction(txn, index, l.program)
		if err != nil {
			return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
		}
		return l.executeFusionInto(state, index, accounts)

	case tokenfusion.InstructionTypeFusionFromV1:
		accounts, err := tokenfusion.FusionFromV1InstructionFromLegacyInstruction(txn, index, l.program)
		if err != nil {
			return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
		}
		return l.executeFusionFrom(state, index, accounts)

	case tokenfusion.InstructionTypeUpdateV1:
		args, accounts, err := tokenfusion.UpdateV1InstructionFromLegacyInstruction(txn, index, l.program)
		if err != nil {
			return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
		}
		return l.executeAuthorityChange(state, index, accounts.FusionData, accounts.Authority, func(fusion *tokenfusion.FusionDataAccount) error {
			if args.AssetData.NextIndex == 0 {
				return newFusionError(index, tokenfusion.ErrInvalidNextAssetIndex)
			}
			fusion.AssetData = args.AssetData
			fusion.FeeData = args.FeeData
			return nil
		})

	case tokenfusion.InstructionTypeSetPauseV1:
		args, accounts, err := tokenfusion.SetPauseV1InstructionFromLegacyInstruction(txn, index, l.program)
		if err != nil {
			return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
		}
		return l.executeAuthorityChange(state, index, accounts.FusionData, accounts.Authority, func(fusion *tokenfusion.FusionDataAccount) error {
			fusion.Paused = args.Paused
			return nil
		})

	case tokenfusion.InstructionTypeSetAuthorityV1:
		args, accounts, err := tokenfusion.SetAuthorityV1InstructionFromLegacyInstruction(txn, index, l.program)
		if err != nil {
			return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
		}
		return l.executeAuthorityChange(state, index, accounts.FusionData, accounts.Authority, func(fusion *tokenfusion.FusionDataAccount) error {
			fusion.Authority = args.NewAuthority
			return nil
		})

	case tokenfusion.InstructionTypeDestroyV1:
		accounts, err := tokenfusion.DestroyV1InstructionFromLegacyInstruction(txn, index, l.program)
		if err != nil {
			return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
		}
		return l.executeDestroy(state, index, accounts)
	}

	return newInstructionError(index, solana.InstructionErrorInvalidInstructionData)
}

func (l *memoryLedger) executeInit(state ledgerState, index int, args *tokenfusion.InitV1InstructionArgs, accounts *tokenfusion.InitV1InstructionAccounts) error {
	if _, exists := state[string(accounts.FusionData)]; exists {
		return newProgramError(index, codeAlreadyInUse, "account already in use")
	}
	if args.AssetData.NextIndex == 0 {
		return newFusionError(index, tokenfusion.ErrInvalidNextAssetIndex)
	}
	if _, ok := state.collection(accounts.Collection); !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}

	state.putFusionData(accounts.FusionData, l.program, &tokenfusion.FusionDataAccount{
		Authority:  accounts.Authority,
		Collection: accounts.Collection,
		TokenMint:  accounts.TokenMint,
		AssetData:  args.AssetData,
		FeeData:    args.FeeData,
	})

	if _, ok := state.tokenAccount(accounts.Escrow); !ok {
		state.putTokenAccount(accounts.Escrow, &token.Account{
			Mint:  accounts.TokenMint,
			Owner: accounts.AuthorityPda,
			State: token.AccountStateInitialized,
		})
	}
	return nil
}

func (l *memoryLedger) executeFusionInto(state ledgerState, index int, accounts *tokenfusion.FusionIntoV1InstructionAccounts) error {
	fusion, ok := state.fusionData(accounts.FusionData)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	if fusion.Paused {
		return newFusionError(index, tokenfusion.ErrFusionPaused)
	}
	if !bytes.Equal(accounts.FeeSolAccount, tokenfusion.PROTOCOL_FEE_WALLET) {
		return newFusionError(index, tokenfusion.ErrInvalidProtocolFeeWallet)
	}
	if !bytes.Equal(accounts.Collection, fusion.Collection) {
		return newFusionError(index, tokenfusion.ErrCollectionKeyMismatch)
	}
	if !bytes.Equal(accounts.TokenMint, fusion.TokenMint) {
		return newFusionError(index, tokenfusion.ErrTokenKeyMismatch)
	}

	collection, ok := state.collection(accounts.Collection)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	if maxSupply := fusion.AssetData.MaxSupply; maxSupply != nil && collection.CurrentSize >= *maxSupply {
		return newFusionError(index, tokenfusion.ErrMaxSupplyReached)
	}
	if _, exists := state[string(accounts.Asset)]; exists {
		return newProgramError(index, codeAlreadyInUse, "account already in use")
	}

	fee := fusion.FeeData
	if err := state.burnTokens(index, accounts.UserAta, fee.BurnAmount); err != nil {
		return err
	}
	if err := state.transferTokens(index, accounts.UserAta, accounts.Escrow, fee.EscrowAmount); err != nil {
		return err
	}
	if fee.IsFeeCharged() {
		if err := state.transferTokens(index, accounts.UserAta, accounts.FeeRecipientAta, fee.FeeAmount); err != nil {
			return err
		}
		if err := state.transferLamports(index, accounts.User, fee.FeeRecipient, fee.SolFeeAmount); err != nil {
			return err
		}
	}
	if err := state.transferLamports(index, accounts.User, accounts.FeeSolAccount, tokenfusion.ProtocolFeeLamports); err != nil {
		return err
	}

	state.put(accounts.Asset, mplcore.PROGRAM_ID, (&mplcore.BaseAssetV1{
		Owner: accounts.User,
		UpdateAuthority: mplcore.UpdateAuthority{
			Type:    mplcore.UpdateAuthorityCollection,
			Address: accounts.Collection,
		},
		Name: fusion.AssetData.NextAssetName(),
		Uri:  fusion.AssetData.NextAssetURI(),
	}).Marshal())

	collection.NumMinted++
	collection.CurrentSize++
	state.put(accounts.Collection, mplcore.PROGRAM_ID, collection.Marshal())

	fusion.AssetData.NextIndex++
	state.putFusionData(accounts.FusionData, l.program, fusion)
	return nil
}

func (l *memoryLedger) executeFusionFrom(state ledgerState, index int, accounts *tokenfusion.FusionFromV1InstructionAccounts) error {
	fusion, ok := state.fusionData(accounts.FusionData)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	if fusion.Paused {
		return newFusionError(index, tokenfusion.ErrFusionPaused)
	}
	if !bytes.Equal(accounts.FeeAccount, tokenfusion.PROTOCOL_FEE_WALLET) {
		return newFusionError(index, tokenfusion.ErrInvalidProtocolFeeWallet)
	}

	asset, ok := state.asset(accounts.Asset)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	if !bytes.Equal(asset.Owner, accounts.User) {
		return newFusionError(index, tokenfusion.ErrIncorrectOwner)
	}
	if !bytes.Equal(asset.Collection(), fusion.Collection) {
		return newFusionError(index, tokenfusion.ErrCollectionKeyMismatch)
	}

	if err := state.transferLamports(index, accounts.User, accounts.FeeAccount, tokenfusion.ProtocolFeeLamports); err != nil {
		return err
	}

	if _, ok := state.tokenAccount(accounts.UserAta); !ok {
		state.putTokenAccount(accounts.UserAta, &token.Account{
			Mint:  fusion.TokenMint,
			Owner: accounts.User,
			State: token.AccountStateInitialized,
		})
	}
	if err := state.transferTokens(index, accounts.Escrow, accounts.UserAta, fusion.FeeData.EscrowAmount); err != nil {
		return err
	}

	delete(state, string(accounts.Asset))
	if collection, ok := state.collection(accounts.Collection); ok {
		collection.CurrentSize--
		state.put(accounts.Collection, mplcore.PROGRAM_ID, collection.Marshal())
	}
	return nil
}

func (l *memoryLedger) executeAuthorityChange(state ledgerState, index int, address, authority ed25519.PublicKey, change func(*tokenfusion.FusionDataAccount) error) error {
	fusion, ok := state.fusionData(address)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	if !bytes.Equal(fusion.Authority, authority) {
		return newAnchorError(index, tokenfusion.AnchorErrConstraintHasOne, "A has one constraint was violated")
	}

	if err := change(fusion); err != nil {
		return err
	}
	state.putFusionData(address, l.program, fusion)
	return nil
}

func (l *memoryLedger) executeDestroy(state ledgerState, index int, accounts *tokenfusion.DestroyV1InstructionAccounts) error {
	fusion, ok := state.fusionData(accounts.FusionData)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	if !bytes.Equal(fusion.Authority, accounts.Authority) {
		return newAnchorError(index, tokenfusion.AnchorErrConstraintHasOne, "A has one constraint was violated")
	}

	if escrow, ok := state.tokenAccount(accounts.Escrow); ok {
		if _, exists := state.tokenAccount(accounts.AuthorityAta); !exists {
			state.putTokenAccount(accounts.AuthorityAta, &token.Account{
				Mint:  fusion.TokenMint,
				Owner: accounts.Authority,
				State: token.AccountStateInitialized,
			})
		}
		if err := state.transferTokens(index, accounts.Escrow, accounts.AuthorityAta, escrow.Amount); err != nil {
			return err
		}
		delete(state, string(accounts.Escrow))
	}

	// close = authority
	state.close(accounts.FusionData, accounts.Authority)
	return nil
}

// ledgerState maps raw addresses to accounts.
type ledgerState map[string]solana.AccountInfo

func (s ledgerState) clone() ledgerState {
	cloned := make(ledgerState, len(s))
	for k, v := range s {
		v.Data = append([]byte(nil), v.Data...)
		cloned[k] = v
	}
	return cloned
}

func (s ledgerState) put(address, owner ed25519.PublicKey, data []byte) {
	info, ok := s[string(address)]
	if !ok {
		info.Lamports = rentExemptLamports(uint64(len(data)))
	}
	info.Owner = owner
	info.Data = data
	s[string(address)] = info
}

func (s ledgerState) credit(address ed25519.PublicKey, lamports uint64) {
	info := s[string(address)]
	if info.Owner == nil {
		info.Owner = system.ProgramKey[:]
	}
	info.Lamports += lamports
	s[string(address)] = info
}

// close deletes the account at address and refunds its lamports to
// destination.
func (s ledgerState) close(address, destination ed25519.PublicKey) {
	info, ok := s[string(address)]
	if !ok {
		return
	}
	delete(s, string(address))
	s.credit(destination, info.Lamports)
}

func (s ledgerState) transferLamports(index int, from, to ed25519.PublicKey, lamports uint64) error {
	if lamports == 0 {
		return nil
	}

	info := s[string(from)]
	if info.Lamports < lamports {
		return newProgramError(index, codeInsufficientFunds, "insufficient lamports")
	}
	info.Lamports -= lamports
	s[string(from)] = info

	s.credit(to, lamports)
	return nil
}

func (s ledgerState) tokenAccount(address ed25519.PublicKey) (*token.Account, bool) {
	info, ok := s[string(address)]
	if !ok || !bytes.Equal(info.Owner, token.ProgramKey) {
		return nil, false
	}

	var account token.Account
	if !account.Unmarshal(info.Data) {
		return nil, false
	}
	return &account, true
}

func (s ledgerState) putTokenAccount(address ed25519.PublicKey, account *token.Account) {
	s.put(address, token.ProgramKey, account.Marshal())
}

func (s ledgerState) burnTokens(index int, address ed25519.PublicKey, amount uint64) error {
	if amount == 0 {
		return nil
	}

	account, ok := s.tokenAccount(address)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	if account.Amount < amount {
		return newProgramError(index, codeInsufficientFunds, "insufficient funds")
	}

	account.Amount -= amount
	s.putTokenAccount(address, account)
	return nil
}

func (s ledgerState) transferTokens(index int, from, to ed25519.PublicKey, amount uint64) error {
	if amount == 0 {
		return nil
	}

	source, ok := s.tokenAccount(from)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	dest, ok := s.tokenAccount(to)
	if !ok {
		return newAnchorError(index, tokenfusion.AnchorErrAccountNotInitialized, "account not initialized")
	}
	if source.Amount < amount {
		return newProgramError(index, codeInsufficientFunds, "insufficient funds")
	}

	source.Amount -= amount
	s.putTokenAccount(from, source)

	// Re-read in case both sides are the same account.
	dest, _ = s.tokenAccount(to)
	dest.Amount += amount
	s.putTokenAccount(to, dest)
	return nil
}

func (s ledgerState) fusionData(address ed25519.PublicKey) (*tokenfusion.FusionDataAccount, bool) {
	info, ok := s[string(address)]
	if !ok {
		return nil, false
	}

	var fusion tokenfusion.FusionDataAccount
	if err := fusion.Unmarshal(info.Data); err != nil {
		return nil, false
	}
	return &fusion, true
}

func (s ledgerState) putFusionData(address, program ed25519.PublicKey, fusion *tokenfusion.FusionDataAccount) {
	data := make([]byte, tokenfusion.FusionDataAccountSize)
	copy(data, fusion.Marshal())
	s.put(address, program, data)
}

func (s ledgerState) collection(address ed25519.PublicKey) (*mplcore.BaseCollectionV1, bool) {
	info, ok := s[string(address)]
	if !ok || !bytes.Equal(info.Owner, mplcore.PROGRAM_ID) {
		return nil, false
	}

	var collection mplcore.BaseCollectionV1
	if err := collection.Unmarshal(info.Data); err != nil {
		return nil, false
	}
	return &collection, true
}

func (s ledgerState) asset(address ed25519.PublicKey) (*mplcore.BaseAssetV1, bool) {
	info, ok := s[string(address)]
	if !ok || !bytes.Equal(info.Owner, mplcore.PROGRAM_ID) {
		return nil, false
	}

	var asset mplcore.BaseAssetV1
	if err := asset.Unmarshal(info.Data); err != nil {
		return nil, false
	}
	return &asset, true
}

func rentExemptLamports(size uint64) uint64 {
	return (128 + size) * 6960
}

func newProgramError(index int, code uint32, message string) *solana.TransactionError {
	txErr := solana.NewCustomTransactionError(index, code)
	txErr.Logs = []string{fmt.Sprintf("Program log: Error: %s", message)}
	return txErr
}

func newAnchorError(index int, code uint32, message string) *solana.TransactionError {
	txErr := solana.NewCustomTransactionError(index, code)
	txErr.Logs = []string{
		fmt.Sprintf("Program log: AnchorError occurred. Error Number: %d. Error Message: %s.", code, message),
	}
	return txErr
}

func newFusionError(index int, fusionErr tokenfusion.FusionError) *solana.TransactionError {
	return newAnchorError(index, uint32(fusionErr), fusionErr.Error())
}

func newInstructionError(index int, key solana.InstructionErrorKey) *solana.TransactionError {
	return solana.NewTransactionError(solana.TransactionErrorKey(fmt.Sprintf("instruction %d: %s", index, key)))
}
