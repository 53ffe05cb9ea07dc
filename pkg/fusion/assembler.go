package fusion

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/token-fusion/pkg/metrics"
	"github.com/code-payments/token-fusion/pkg/retry"
	"github.com/code-payments/token-fusion/pkg/retry/backoff"
	"github.com/code-payments/token-fusion/pkg/solana"
	compute_budget "github.com/code-payments/token-fusion/pkg/solana/computebudget"
)

const (
	assemblerMetricsStructName = "fusion.assembler"

	confirmationLatencyMetricName = "Fusion/ConfirmationLatency"
)

var (
	errSignatureNotFound       = errors.New("signature not found")
	errConfirmationsNotReached = errors.New("confirmations not reached")
	errStatusUnavailable       = errors.New("signature status unavailable")
)

// Assembler turns instructions into signed transactions, submits them and
// waits for confirmation. Submission is never retried: a transaction that
// may have reached the network is reported to the caller instead.
type Assembler struct {
	log    *logrus.Entry
	conf   *conf
	client solana.Client
}

// NewAssembler returns an Assembler submitting through client.
func NewAssembler(client solana.Client, configProvider ConfigProvider) *Assembler {
	return &Assembler{
		log:    logrus.StandardLogger().WithField("type", "fusion/assembler"),
		conf:   configProvider(),
		client: client,
	}
}

// Assemble builds an unsigned transaction paid for by payer. Compute budget
// instructions come first when a priority fee or unit limit is configured.
func (a *Assembler) Assemble(ctx context.Context, payer ed25519.PublicKey, instructions ...solana.Instruction) solana.Transaction {
	var ixns []solana.Instruction

	if limit := a.conf.computeUnitLimit.Get(ctx); limit > 0 {
		ixns = append(ixns, compute_budget.SetComputeUnitLimit(uint32(limit)))
	}
	if priority := a.conf.priorityMicroLamports.Get(ctx); priority > 0 {
		ixns = append(ixns, compute_budget.SetComputeUnitPrice(priority))
	}
	ixns = append(ixns, instructions...)

	return solana.NewTransaction(payer, ixns...)
}

// Submit signs txn with a fresh blockhash, sends it and waits for it to reach
// the configured commitment.
//
// Failures are reported as *SubmissionError, *SimulationError or
// *ConfirmationTimeoutError.
func (a *Assembler) Submit(ctx context.Context, txn solana.Transaction, signers ...ed25519.PrivateKey) (solana.Signature, error) {
	tracer := metrics.TraceMethodCall(ctx, assemblerMetricsStructName, "Submit")
	defer tracer.End()

	sig, err := a.submit(ctx, txn, signers...)
	if err != nil {
		tracer.OnError(err)
	}
	return sig, err
}

func (a *Assembler) submit(ctx context.Context, txn solana.Transaction, signers ...ed25519.PrivateKey) (solana.Signature, error) {
	log := a.log.WithField("method", "Submit")

	commitment, err := solana.ParseCommitment(a.conf.commitment.Get(ctx))
	if err != nil {
		return solana.Signature{}, &SubmissionError{Stage: "configuration", Err: err}
	}

	if err := ctx.Err(); err != nil {
		return solana.Signature{}, &SubmissionError{Stage: "blockhash", Err: err}
	}

	blockhash, err := a.client.GetLatestBlockhash()
	if err != nil {
		log.WithError(err).Warn("failure getting latest blockhash")
		return solana.Signature{}, &SubmissionError{Stage: "blockhash", Err: err}
	}
	txn.SetBlockhash(blockhash)

	if err := txn.Sign(signers...); err != nil {
		return solana.Signature{}, &SubmissionError{Stage: "signing", Err: err}
	}
	if err := txn.VerifySignatures(); err != nil {
		return solana.Signature{}, &SubmissionError{Stage: "signing", Err: err}
	}

	sig := txn.Signature()
	log = log.WithField("signature", sig.String())

	// A cancelled context still leaves the broadcast transaction on the
	// network, so it is checked only before sending.
	if err := ctx.Err(); err != nil {
		return sig, &SubmissionError{Stage: "send", Err: err}
	}

	start := time.Now()
	_, err = a.client.SubmitTransaction(txn, commitment)
	if err != nil {
		var txErr *solana.TransactionError
		if errors.As(err, &txErr) {
			simErr := newSimulationError(sig, txErr)
			log.WithError(simErr).Info("transaction rejected in simulation")
			return sig, simErr
		}

		log.WithError(err).Warn("failure submitting transaction")
		return sig, &SubmissionError{Stage: "send", Err: err}
	}

	log.Debug("transaction submitted, awaiting confirmation")

	if err := a.awaitConfirmation(ctx, sig, commitment); err != nil {
		return sig, err
	}

	metrics.RecordDuration(ctx, confirmationLatencyMetricName, time.Since(start))
	log.Debug("transaction confirmed")
	return sig, nil
}

// Await waits for a transaction that was sent by other means, such as an
// airdrop, to reach the configured commitment.
func (a *Assembler) Await(ctx context.Context, sig solana.Signature) error {
	commitment, err := solana.ParseCommitment(a.conf.commitment.Get(ctx))
	if err != nil {
		return err
	}
	return a.awaitConfirmation(ctx, sig, commitment)
}

// awaitConfirmation polls the signature status until it reaches commitment,
// fails, or the confirmation window closes.
func (a *Assembler) awaitConfirmation(ctx context.Context, sig solana.Signature, commitment solana.Commitment) error {
	log := a.log.WithFields(logrus.Fields{
		"method":    "awaitConfirmation",
		"signature": sig.String(),
	})

	timeout := a.conf.confirmationTimeout.Get(ctx)
	interval := a.conf.confirmationPollInterval.Get(ctx)
	deadline := time.Now().Add(timeout)

	var failure *SimulationError
	_, err := retry.Retry(
		func() error {
			statuses, err := a.client.GetSignatureStatuses([]solana.Signature{sig})
			if err != nil {
				log.WithError(err).Debug("failure getting signature status")
				return errStatusUnavailable
			}

			if len(statuses) == 0 || statuses[0] == nil {
				return errSignatureNotFound
			}

			status := statuses[0]
			if status.ErrorResult != nil {
				failure = newSimulationError(sig, status.ErrorResult)
				return nil
			}
			if !status.Reached(commitment) {
				return errConfirmationsNotReached
			}
			return nil
		},
		retry.RetriableErrors(errSignatureNotFound, errConfirmationsNotReached, errStatusUnavailable),
		retry.Context(ctx),
		retry.Deadline(deadline),
		retry.Backoff(backoff.Constant(interval), interval),
	)

	if failure != nil {
		log.WithError(failure).Info("transaction failed on chain")
		return failure
	}
	if err != nil {
		log.WithError(err).Info("transaction not confirmed within the confirmation window")
		return &ConfirmationTimeoutError{Signature: sig, Err: ctx.Err()}
	}
	return nil
}
