package fusion

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/token-fusion/pkg/config"
	"github.com/code-payments/token-fusion/pkg/metrics"
	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/mplcore"
	"github.com/code-payments/token-fusion/pkg/solana/token"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
)

const (
	serviceMetricsStructName = "fusion.service"

	operationEventName = "FusionOperation"
)

var (
	ErrMissingTokenMint  = errors.New("token mint not provided or configured")
	ErrMissingCollection = errors.New("collection not provided or configured")
	errFeeOverflow       = errors.New("fee data amounts overflow")
)

// Result is the outcome of a state changing operation. State is the fusion
// data fetched after confirmation, nil once the fusion is destroyed.
type Result struct {
	Signature solana.Signature
	State     *FusionData
}

// FuseResult is the outcome of a fusion into or from an asset.
type FuseResult struct {
	Result
	Asset ed25519.PublicKey
}

// InitArgs describe a new fusion. TokenMint and Collection default to the
// configured values, as does an empty AssetData.UriPrefix.
type InitArgs struct {
	TokenMint  ed25519.PublicKey
	Collection ed25519.PublicKey
	AssetData  tokenfusion.AssetDataV1
	FeeData    tokenfusion.FeeDataV1
}

// Overview is a read only snapshot of a fusion and its derived accounts.
type Overview struct {
	Addresses     *Addresses
	State         *FusionData
	Escrow        ed25519.PublicKey
	EscrowBalance uint64
	Collection    *mplcore.BaseCollectionV1
}

// Service runs fusion operations. Each state changing operation builds its
// instructions, submits them as one transaction and fetches the resulting
// state.
type Service struct {
	log       *logrus.Entry
	conf      *conf
	addresses *Addresses
	accessor  Accessor
	assembler *Assembler
}

// NewService returns a Service for the configured program.
func NewService(client solana.Client, configProvider ConfigProvider) (*Service, error) {
	conf := configProvider()
	ctx := context.Background()

	addresses, err := DeriveAddresses(conf.programId.Get(ctx))
	if err != nil {
		return nil, err
	}

	commitment, err := solana.ParseCommitment(conf.commitment.Get(ctx))
	if err != nil {
		return nil, err
	}

	return &Service{
		log:       logrus.StandardLogger().WithField("type", "fusion/service"),
		conf:      conf,
		addresses: addresses,
		accessor:  NewAccessor(client, addresses, commitment),
		assembler: NewAssembler(client, configProvider),
	}, nil
}

// Addresses returns the derived program accounts.
func (s *Service) Addresses() *Addresses {
	return s.addresses
}

// Accessor returns the state reader used by the service.
func (s *Service) Accessor() Accessor {
	return s.accessor
}

// Assembler returns the transaction assembler used by the service, for
// callers submitting instructions of other programs under the same cluster
// settings.
func (s *Service) Assembler() *Assembler {
	return s.assembler
}

// Init creates the fusion data account. ErrAlreadyInitialized is returned,
// without submitting anything, when the account already exists.
func (s *Service) Init(ctx context.Context, authority ed25519.PrivateKey, args *InitArgs) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, serviceMetricsStructName, "Init")
	defer tracer.End()

	result, err := s.init(ctx, authority, args)
	s.observe(ctx, tracer, "init", result, err)
	return result, err
}

func (s *Service) init(ctx context.Context, authority ed25519.PrivateKey, args *InitArgs) (*Result, error) {
	authorityKey := authority.Public().(ed25519.PublicKey)

	log := s.log.WithFields(logrus.Fields{
		"method":    "Init",
		"authority": base58.Encode(authorityKey),
	})

	tokenMint, err := s.keyOrConfigured(ctx, args.TokenMint, s.conf.tokenMint, "token mint")
	if err != nil {
		return nil, err
	} else if len(tokenMint) == 0 {
		return nil, ErrMissingTokenMint
	}

	collection, err := s.keyOrConfigured(ctx, args.Collection, s.conf.collection, "collection")
	if err != nil {
		return nil, err
	} else if len(collection) == 0 {
		return nil, ErrMissingCollection
	}

	assetData := args.AssetData.Clone()
	if len(assetData.UriPrefix) == 0 {
		assetData.UriPrefix = s.conf.metadataBaseUri.Get(ctx)
	}

	if err := assetData.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid asset data")
	}
	if err := args.FeeData.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid fee data")
	}

	_, exists, err := s.accessor.FetchSafe(ctx)
	if err != nil {
		return nil, err
	} else if exists {
		log.Info("fusion already initialized")
		return nil, ErrAlreadyInitialized
	}

	escrow, err := s.addresses.Escrow(tokenMint)
	if err != nil {
		return nil, err
	}

	instructions := []solana.Instruction{
		tokenfusion.NewInitV1Instruction(
			&tokenfusion.InitV1InstructionAccounts{
				Program:      s.addresses.Program,
				FusionData:   s.addresses.FusionData,
				AuthorityPda: s.addresses.Authority,
				Authority:    authorityKey,
				Payer:        authorityKey,
				TokenMint:    tokenMint,
				Escrow:       escrow,
				Collection:   collection,
			},
			&tokenfusion.InitV1InstructionArgs{
				AssetData: assetData,
				FeeData:   args.FeeData,
			},
		),
	}

	createFeeAccount, err := s.feeRecipientAccountInstructions(ctx, authorityKey, args.FeeData.FeeRecipient, tokenMint)
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, createFeeAccount...)

	return s.submitAndFetch(ctx, authorityKey, instructions, authority)
}

// FuseInto moves the fusion's token amounts out of the user's token account
// and mints a new asset to the user.
func (s *Service) FuseInto(ctx context.Context, user ed25519.PrivateKey) (*FuseResult, error) {
	tracer := metrics.TraceMethodCall(ctx, serviceMetricsStructName, "FuseInto")
	defer tracer.End()

	result, err := s.fuseInto(ctx, user)
	var base *Result
	if result != nil {
		base = &result.Result
	}
	s.observe(ctx, tracer, "fuse_into", base, err)
	return result, err
}

func (s *Service) fuseInto(ctx context.Context, user ed25519.PrivateKey) (*FuseResult, error) {
	userKey := user.Public().(ed25519.PublicKey)

	log := s.log.WithFields(logrus.Fields{
		"method": "FuseInto",
		"user":   base58.Encode(userKey),
	})

	state, err := s.accessor.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, ErrPaused
	}

	escrow, err := s.addresses.Escrow(state.TokenMint)
	if err != nil {
		return nil, err
	}
	userAta, err := associatedAccount("user", userKey, state.TokenMint)
	if err != nil {
		return nil, err
	}

	requiredTokens, ok := state.FeeData.TokensRequired()
	if !ok {
		return nil, errFeeOverflow
	}
	if err := s.checkTokenBalance(ctx, userAta, state.TokenMint, requiredTokens); err != nil {
		return nil, err
	}

	requiredLamports := state.FeeData.SolFeeAmount + tokenfusion.ProtocolFeeLamports
	if requiredLamports < state.FeeData.SolFeeAmount {
		return nil, errFeeOverflow
	}
	if err := s.checkLamportBalance(ctx, userKey, requiredLamports); err != nil {
		return nil, err
	}

	assetKey, asset, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrap(err, "error generating asset key")
	}

	accounts := &tokenfusion.FusionIntoV1InstructionAccounts{
		Program:       s.addresses.Program,
		FusionData:    s.addresses.FusionData,
		AuthorityPda:  s.addresses.Authority,
		User:          userKey,
		Asset:         assetKey,
		Collection:    state.Collection,
		TokenMint:     state.TokenMint,
		Escrow:        escrow,
		UserAta:       userAta,
		FeeSolAccount: tokenfusion.PROTOCOL_FEE_WALLET,
	}

	var instructions []solana.Instruction
	if len(state.FeeData.FeeRecipient) > 0 {
		accounts.FeeRecipient = state.FeeData.FeeRecipient
		accounts.FeeRecipientAta, err = associatedAccount("fee recipient", state.FeeData.FeeRecipient, state.TokenMint)
		if err != nil {
			return nil, err
		}

		// The fee recipient's token account must exist before the fusion
		// instruction runs.
		instructions, err = s.feeRecipientAccountInstructions(ctx, userKey, state.FeeData.FeeRecipient, state.TokenMint)
		if err != nil {
			return nil, err
		}
	}
	instructions = append(instructions, tokenfusion.NewFusionIntoV1Instruction(accounts))

	log.WithFields(logrus.Fields{
		"asset": base58.Encode(assetKey),
		"name":  state.AssetData.NextAssetName(),
	}).Debug("fusing tokens into asset")

	result, err := s.submitAndFetch(ctx, userKey, instructions, user, asset)
	if err != nil {
		return &FuseResult{Asset: assetKey}, err
	}
	return &FuseResult{Result: *result, Asset: assetKey}, nil
}

// FuseFrom burns the user's asset and returns the escrowed tokens to the
// user. A paused fusion is left for the program to reject, so callers see
// the program's own error.
func (s *Service) FuseFrom(ctx context.Context, user ed25519.PrivateKey, asset ed25519.PublicKey) (*FuseResult, error) {
	tracer := metrics.TraceMethodCall(ctx, serviceMetricsStructName, "FuseFrom")
	defer tracer.End()

	result, err := s.fuseFrom(ctx, user, asset)
	var base *Result
	if result != nil {
		base = &result.Result
	}
	s.observe(ctx, tracer, "fuse_from", base, err)
	return result, err
}

func (s *Service) fuseFrom(ctx context.Context, user ed25519.PrivateKey, asset ed25519.PublicKey) (*FuseResult, error) {
	userKey := user.Public().(ed25519.PublicKey)

	state, err := s.accessor.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.conf.checkAssetOwner.Get(ctx) {
		if err := s.checkAssetOwner(ctx, state, userKey, asset); err != nil {
			return nil, err
		}
	}

	if err := s.checkLamportBalance(ctx, userKey, tokenfusion.ProtocolFeeLamports); err != nil {
		return nil, err
	}

	escrow, err := s.addresses.Escrow(state.TokenMint)
	if err != nil {
		return nil, err
	}
	userAta, err := associatedAccount("user", userKey, state.TokenMint)
	if err != nil {
		return nil, err
	}

	instruction := tokenfusion.NewFusionFromV1Instruction(&tokenfusion.FusionFromV1InstructionAccounts{
		Program:      s.addresses.Program,
		FusionData:   s.addresses.FusionData,
		AuthorityPda: s.addresses.Authority,
		User:         userKey,
		Asset:        asset,
		Collection:   state.Collection,
		TokenMint:    state.TokenMint,
		Escrow:       escrow,
		UserAta:      userAta,
		FeeAccount:   tokenfusion.PROTOCOL_FEE_WALLET,
	})

	result, err := s.submitAndFetch(ctx, userKey, []solana.Instruction{instruction}, user)
	if err != nil {
		return &FuseResult{Asset: asset}, err
	}
	return &FuseResult{Result: *result, Asset: asset}, nil
}

// Update merges args into the current asset and fee data and submits the
// result. Fields not named in args keep their on-chain values.
func (s *Service) Update(ctx context.Context, authority ed25519.PrivateKey, args *UpdateArgs) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, serviceMetricsStructName, "Update")
	defer tracer.End()

	result, err := s.update(ctx, authority, args)
	s.observe(ctx, tracer, "update", result, err)
	return result, err
}

func (s *Service) update(ctx context.Context, authority ed25519.PrivateKey, args *UpdateArgs) (*Result, error) {
	authorityKey := authority.Public().(ed25519.PublicKey)

	if args.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	state, err := s.accessor.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	assetData, feeData := args.Merge(&state.AssetData, &state.FeeData)
	if err := assetData.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid asset data")
	}
	if err := feeData.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid fee data")
	}

	instructions := []solana.Instruction{
		tokenfusion.NewUpdateV1Instruction(
			&tokenfusion.UpdateV1InstructionAccounts{
				Program:    s.addresses.Program,
				FusionData: s.addresses.FusionData,
				Authority:  authorityKey,
			},
			&tokenfusion.UpdateV1InstructionArgs{
				AssetData: assetData,
				FeeData:   feeData,
			},
		),
	}

	if args.FeeRecipient.IsSet() {
		createFeeAccount, err := s.feeRecipientAccountInstructions(ctx, authorityKey, feeData.FeeRecipient, state.TokenMint)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, createFeeAccount...)
	}

	return s.submitAndFetch(ctx, authorityKey, instructions, authority)
}

// SetPause pauses or resumes fusions.
func (s *Service) SetPause(ctx context.Context, authority ed25519.PrivateKey, paused bool) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, serviceMetricsStructName, "SetPause")
	defer tracer.End()

	authorityKey := authority.Public().(ed25519.PublicKey)
	instruction := tokenfusion.NewSetPauseV1Instruction(
		&tokenfusion.SetPauseV1InstructionAccounts{
			Program:    s.addresses.Program,
			FusionData: s.addresses.FusionData,
			Authority:  authorityKey,
		},
		&tokenfusion.SetPauseV1InstructionArgs{
			Paused: paused,
		},
	)

	result, err := s.submitAndFetch(ctx, authorityKey, []solana.Instruction{instruction}, authority)
	s.observe(ctx, tracer, "set_pause", result, err)
	return result, err
}

// SetAuthority hands control of the fusion to newAuthority.
func (s *Service) SetAuthority(ctx context.Context, authority ed25519.PrivateKey, newAuthority ed25519.PublicKey) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, serviceMetricsStructName, "SetAuthority")
	defer tracer.End()

	if len(newAuthority) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid new authority length %d", len(newAuthority))
	}

	authorityKey := authority.Public().(ed25519.PublicKey)
	instruction := tokenfusion.NewSetAuthorityV1Instruction(
		&tokenfusion.SetAuthorityV1InstructionAccounts{
			Program:    s.addresses.Program,
			FusionData: s.addresses.FusionData,
			Authority:  authorityKey,
		},
		&tokenfusion.SetAuthorityV1InstructionArgs{
			NewAuthority: newAuthority,
		},
	)

	result, err := s.submitAndFetch(ctx, authorityKey, []solana.Instruction{instruction}, authority)
	s.observe(ctx, tracer, "set_authority", result, err)
	return result, err
}

// Destroy closes the fusion. Escrowed tokens are moved to the authority's
// token account.
func (s *Service) Destroy(ctx context.Context, authority ed25519.PrivateKey) (*Result, error) {
	tracer := metrics.TraceMethodCall(ctx, serviceMetricsStructName, "Destroy")
	defer tracer.End()

	result, err := s.destroy(ctx, authority)
	s.observe(ctx, tracer, "destroy", result, err)
	return result, err
}

func (s *Service) destroy(ctx context.Context, authority ed25519.PrivateKey) (*Result, error) {
	authorityKey := authority.Public().(ed25519.PublicKey)

	state, err := s.accessor.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	escrow, err := s.addresses.Escrow(state.TokenMint)
	if err != nil {
		return nil, err
	}
	authorityAta, err := associatedAccount("authority", authorityKey, state.TokenMint)
	if err != nil {
		return nil, err
	}

	instruction := tokenfusion.NewDestroyV1Instruction(&tokenfusion.DestroyV1InstructionAccounts{
		Program:      s.addresses.Program,
		FusionData:   s.addresses.FusionData,
		AuthorityPda: s.addresses.Authority,
		Authority:    authorityKey,
		TokenMint:    state.TokenMint,
		Escrow:       escrow,
		AuthorityAta: authorityAta,
		Collection:   state.Collection,
	})

	return s.submitAndFetch(ctx, authorityKey, []solana.Instruction{instruction}, authority)
}

// Show returns the current fusion state with its derived accounts, escrow
// balance and collection counters.
func (s *Service) Show(ctx context.Context) (*Overview, error) {
	tracer := metrics.TraceMethodCall(ctx, serviceMetricsStructName, "Show")
	defer tracer.End()

	overview, err := s.show(ctx)
	if err != nil {
		tracer.OnError(err)
	}
	return overview, err
}

func (s *Service) show(ctx context.Context) (*Overview, error) {
	state, err := s.accessor.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	escrow, err := s.addresses.Escrow(state.TokenMint)
	if err != nil {
		return nil, err
	}

	balance, err := s.accessor.TokenBalance(ctx, escrow, state.TokenMint)
	if err == token.ErrAccountNotFound {
		balance = 0
	} else if err != nil {
		return nil, errors.Wrap(err, "error getting escrow balance")
	}

	overview := &Overview{
		Addresses:     s.addresses,
		State:         state,
		Escrow:        escrow,
		EscrowBalance: balance,
	}

	collection, err := s.accessor.Collection(ctx, state.Collection)
	if err == nil {
		overview.Collection = collection
	} else if err != ErrCollectionNotFound {
		s.log.WithError(err).WithField("method", "Show").Warn("failure getting collection")
	}

	return overview, nil
}

// keyOrConfigured returns key when provided, otherwise the configured value. A
// configured value that fails to parse is an error rather than a missing key.
func (s *Service) keyOrConfigured(ctx context.Context, key ed25519.PublicKey, configured config.PublicKey, name string) (ed25519.PublicKey, error) {
	if len(key) > 0 {
		return key, nil
	}

	value, err := configured.GetSafe(ctx)
	if err != nil {
		s.log.WithError(err).WithField("config", name).Warn("invalid configured value")
		return nil, errors.Wrapf(err, "invalid configured %s", name)
	}
	return value, nil
}

func (s *Service) submitAndFetch(ctx context.Context, payer ed25519.PublicKey, instructions []solana.Instruction, signers ...ed25519.PrivateKey) (*Result, error) {
	txn := s.assembler.Assemble(ctx, payer, instructions...)

	sig, err := s.assembler.Submit(ctx, txn, signers...)
	if err != nil {
		return nil, err
	}

	state, _, err := s.accessor.FetchSafe(ctx)
	if err != nil {
		return &Result{Signature: sig}, errors.Wrap(err, "transaction confirmed but state could not be fetched")
	}
	return &Result{Signature: sig, State: state}, nil
}

// feeRecipientAccountInstructions creates the fee recipient's token account
// when it does not exist yet.
func (s *Service) feeRecipientAccountInstructions(ctx context.Context, payer, feeRecipient, mint ed25519.PublicKey) ([]solana.Instruction, error) {
	if len(feeRecipient) == 0 {
		return nil, nil
	}

	address, err := associatedAccount("fee recipient", feeRecipient, mint)
	if err != nil {
		return nil, err
	}

	exists, err := s.accessor.AccountExists(ctx, address)
	if err != nil {
		return nil, err
	} else if exists {
		return nil, nil
	}

	instruction, _, err := token.CreateAssociatedTokenAccount(payer, feeRecipient, mint)
	if err != nil {
		return nil, errors.Wrap(err, "error creating fee recipient token account instruction")
	}
	return []solana.Instruction{instruction}, nil
}

func (s *Service) checkTokenBalance(ctx context.Context, account, mint ed25519.PublicKey, required uint64) error {
	if required == 0 {
		return nil
	}

	balance, err := s.accessor.TokenBalance(ctx, account, mint)
	if err == token.ErrAccountNotFound {
		balance = 0
	} else if err != nil {
		return errors.Wrap(err, "error getting token balance")
	}

	if balance < required {
		return &InsufficientFundsError{
			Funds:     FundsTokens,
			Account:   account,
			Required:  required,
			Available: balance,
		}
	}
	return nil
}

func (s *Service) checkLamportBalance(ctx context.Context, account ed25519.PublicKey, required uint64) error {
	balance, err := s.accessor.LamportBalance(ctx, account)
	if err != nil {
		return err
	}

	if balance < required {
		return &InsufficientFundsError{
			Funds:     FundsLamports,
			Account:   account,
			Required:  required,
			Available: balance,
		}
	}
	return nil
}

func (s *Service) checkAssetOwner(ctx context.Context, state *FusionData, user, address ed25519.PublicKey) error {
	asset, err := s.accessor.Asset(ctx, address)
	if err != nil {
		return err
	}

	if !bytes.Equal(asset.Owner, user) {
		return ErrAssetNotOwned
	}
	if !bytes.Equal(asset.Collection(), state.Collection) {
		return ErrAssetNotInCollection
	}
	return nil
}

func (s *Service) observe(ctx context.Context, tracer *metrics.MethodTracer, operation string, result *Result, err error) {
	event := map[string]interface{}{
		"operation": operation,
		"program":   base58.Encode(s.addresses.Program),
		"success":   err == nil,
	}
	if result != nil && result.Signature != (solana.Signature{}) {
		event["signature"] = result.Signature.String()
	}
	if code, ok := ProgramErrorCode(err); ok {
		event["program_error"] = code
	}
	metrics.RecordEvent(ctx, operationEventName, event)

	if err != nil && err != ErrAlreadyInitialized {
		tracer.OnError(err)
	}
}
