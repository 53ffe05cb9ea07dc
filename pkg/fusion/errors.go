package fusion

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/token-fusion/pkg/solana"
	"github.com/code-payments/token-fusion/pkg/solana/tokenfusion"
)

var (
	// ErrAccountNotFound indicates the fusion data account has not been
	// initialized.
	ErrAccountNotFound = errors.New("fusion data account not found")

	// ErrAlreadyInitialized indicates init was requested for a fusion that
	// already exists.
	ErrAlreadyInitialized = errors.New("fusion already initialized")

	// ErrPaused is returned when the fusion is paused, whether detected before
	// submission or reported by the program.
	ErrPaused = errors.New("fusion paused")

	// ErrAuthorityMismatch is reported when the program rejects a signer that
	// is not the fusion authority.
	ErrAuthorityMismatch = errors.New("signer is not the fusion authority")

	// ErrAssetNotOwned indicates the user does not own the asset being fused
	// back into tokens.
	ErrAssetNotOwned = errors.New("asset not owned by user")

	ErrAssetNotFound      = errors.New("asset not found")
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrAssetNotInCollection indicates the asset does not belong to the
	// fusion's collection.
	ErrAssetNotInCollection = errors.New("asset not in fusion collection")

	ErrNothingToUpdate = errors.New("no fields to update")
)

// DecodeError indicates an account exists but its data does not match the
// expected layout.
type DecodeError struct {
	Address ed25519.PublicKey
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode account %s: %v", base58.Encode(e.Address), e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Funds identifies what an InsufficientFundsError ran short of.
type Funds string

const (
	FundsTokens   Funds = "tokens"
	FundsLamports Funds = "lamports"
)

// InsufficientFundsError is returned by balance checks performed before a
// transaction is submitted.
type InsufficientFundsError struct {
	Funds     Funds
	Account   ed25519.PublicKey
	Required  uint64
	Available uint64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient %s in %s: required %d, available %d",
		e.Funds,
		base58.Encode(e.Account),
		e.Required,
		e.Available,
	)
}

// SubmissionError indicates the transaction could not be prepared or sent.
// The transaction may or may not have reached the network, so it must not be
// resent blindly.
type SubmissionError struct {
	Stage string
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction submission failed at %s: %v", e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// SimulationError indicates the network or the program rejected the
// transaction. Code and Message are the program's own values when the
// failure is a custom program error.
type SimulationError struct {
	Signature        solana.Signature
	InstructionIndex int
	Code             uint32
	IsCustom         bool
	Message          string
	Logs             []string
}

func (e *SimulationError) Error() string {
	if e.IsCustom {
		return fmt.Sprintf("instruction %d failed with program error %d: %s", e.InstructionIndex, e.Code, e.Message)
	}
	return fmt.Sprintf("transaction rejected: %s", e.Message)
}

// Is maps well known program error codes onto the package sentinels.
func (e *SimulationError) Is(target error) bool {
	if !e.IsCustom {
		return false
	}

	switch target {
	case ErrPaused:
		return e.Code == uint32(tokenfusion.ErrFusionPaused)
	case ErrAuthorityMismatch:
		return e.Code == tokenfusion.AnchorErrConstraintHasOne
	}
	return false
}

// ConfirmationTimeoutError indicates a broadcast transaction was not observed
// at the requested commitment within the confirmation window. It may still
// land.
type ConfirmationTimeoutError struct {
	Signature solana.Signature
	Err       error
}

func (e *ConfirmationTimeoutError) Error() string {
	msg := fmt.Sprintf("transaction %s not confirmed in time", e.Signature)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfirmationTimeoutError) Unwrap() error {
	return e.Err
}

// IsPaused reports whether err indicates the fusion is paused.
func IsPaused(err error) bool {
	return errors.Is(err, ErrPaused)
}

// ProgramErrorCode extracts the custom program error code from err.
func ProgramErrorCode(err error) (uint32, bool) {
	var simErr *SimulationError
	if errors.As(err, &simErr) && simErr.IsCustom {
		return simErr.Code, true
	}
	return 0, false
}

func newSimulationError(sig solana.Signature, txErr *solana.TransactionError) *SimulationError {
	simErr := &SimulationError{
		Signature: sig,
		Message:   txErr.Error(),
		Logs:      txErr.Logs,
	}

	instructionErr := txErr.InstructionError()
	if instructionErr == nil {
		return simErr
	}

	simErr.InstructionIndex = instructionErr.Index
	if custom := instructionErr.CustomError(); custom != nil && *custom >= 0 {
		simErr.IsCustom = true
		simErr.Code = uint32(*custom)
		simErr.Message = programErrorMessage(simErr.Code, txErr.Logs)
	}
	return simErr
}

// programErrorMessage prefers the fusion program's own message, then the
// anchor error message found in the logs.
func programErrorMessage(code uint32, logs []string) string {
	if fusionErr, ok := tokenfusion.GetFusionError(code); ok {
		return fusionErr.Error()
	}

	const marker = "Error Message: "
	for _, line := range logs {
		if i := strings.Index(line, marker); i >= 0 {
			return strings.TrimSuffix(line[i+len(marker):], ".")
		}
	}
	return solana.CustomError(code).Error()
}
