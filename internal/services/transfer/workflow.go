package transfer

import (
	"context"
	"sync"

	"finch/internal/validation"
)

// Instrument selects the submission path for a transfer attempt.
type Instrument string

const (
	InstrumentAccount Instrument = "ACCOUNT"
	InstrumentCard    Instrument = "CARD"
	InstrumentUPI     Instrument = "UPI"
)

// Snapshot captures the sender's account at workflow start. The balance
// is used for local validation only; the server re-checks it at
// submission and remains the sole arbiter.
type Snapshot struct {
	AccountNumber    string
	AvailableBalance float64
}

// Workflow drives a single transfer attempt through recipient
// verification, constraint checking and conditional PIN confirmation
// before delegating to the gateway. One workflow corresponds to one
// attempt: it resets itself on success and is discarded on cancel.
type Workflow struct {
	mu        sync.Mutex
	sender    Snapshot
	directory Directory
	gateway   Gateway

	recipient  string
	state      VerificationState
	seq        uint64 // bumped on every recipient edit; guards stale lookups
	amount     float64
	instrument Instrument
	cardID     uint
	pin        string
	remarks    string
	submitting bool
}

// NewWorkflow creates a workflow for one transfer attempt.
func NewWorkflow(sender Snapshot, directory Directory, gateway Gateway) *Workflow {
	return &Workflow{
		sender:     sender,
		directory:  directory,
		gateway:    gateway,
		state:      Idle(),
		instrument: InstrumentAccount,
	}
}

// SetRecipient records a new recipient identifier. Any edit invalidates
// a prior verification: the state returns to idle and in-flight lookup
// results for the old value will be discarded on arrival.
func (w *Workflow) SetRecipient(identifier string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if identifier == w.recipient {
		return
	}
	w.recipient = identifier
	w.state = Idle()
	w.seq++
}

func (w *Workflow) SetAmount(amount float64)   { w.mu.Lock(); w.amount = amount; w.mu.Unlock() }
func (w *Workflow) SetInstrument(i Instrument) { w.mu.Lock(); w.instrument = i; w.mu.Unlock() }
func (w *Workflow) SetCard(cardID uint)        { w.mu.Lock(); w.cardID = cardID; w.mu.Unlock() }
func (w *Workflow) SetPIN(pin string)          { w.mu.Lock(); w.pin = pin; w.mu.Unlock() }
func (w *Workflow) SetRemarks(remarks string)  { w.mu.Lock(); w.remarks = remarks; w.mu.Unlock() }

// State returns the current verification state.
func (w *Workflow) State() VerificationState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// AvailableBalance returns the sender balance currently on display.
func (w *Workflow) AvailableBalance() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sender.AvailableBalance
}

// Verify runs a recipient lookup and applies the result, unless the
// recipient was edited while the lookup was in flight. Self-transfers
// are always rejected, regardless of what the directory would say.
// Lookup failures degrade to rejected: an ambiguous or erroring lookup
// never allows submission.
func (w *Workflow) Verify(ctx context.Context) VerificationState {
	w.mu.Lock()
	identifier := w.recipient

	if !validation.IsPlausibleRecipient(identifier) {
		state := w.state
		w.mu.Unlock()
		return state
	}
	if identifier == w.sender.AccountNumber {
		w.state = Rejected("cannot transfer to your own account")
		state := w.state
		w.mu.Unlock()
		return state
	}

	w.state = Checking()
	seq := w.seq
	w.mu.Unlock()

	beneficiary, err := w.directory.VerifyRecipient(ctx, identifier)

	w.mu.Lock()
	defer w.mu.Unlock()

	// Stale result: the recipient changed while this lookup was pending.
	if w.seq != seq {
		return w.state
	}

	switch {
	case err != nil:
		w.state = Rejected("recipient could not be verified")
	case beneficiary.AccountNumber == w.sender.AccountNumber:
		w.state = Rejected("cannot transfer to your own account")
	default:
		w.state = Verified(*beneficiary)
	}
	return w.state
}

// Validate runs every pre-submission check. It never touches the
// network: all errors here are local.
func (w *Workflow) Validate() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateLocked()
}

func (w *Workflow) validateLocked() error {
	if w.recipient == "" {
		return ErrRecipientRequired
	}
	switch w.state.Status() {
	case StatusRejected:
		return ErrRecipientRejected
	case StatusChecking:
		// Submitting now could race a stale verification result.
		return ErrVerificationPending
	}
	if w.amount <= 0 {
		return ErrInvalidAmount
	}
	if w.amount > w.sender.AvailableBalance {
		return ErrInsufficientBalance
	}
	if w.instrument == InstrumentCard {
		if w.cardID == 0 {
			return ErrCardRequired
		}
		if !validation.IsValidPIN(w.pin) {
			return ErrInvalidPIN
		}
	}
	return nil
}

// Submit dispatches the confirmed request through the gateway. While a
// submission is in flight further submissions are refused, so a double
// click cannot double-charge. On success the workflow resets for the
// next attempt and adopts the balance the gateway reports; on failure
// everything except the PIN is preserved so the user can correct and
// retry. There are no automatic retries.
func (w *Workflow) Submit(ctx context.Context, senderUserID uint) (*Receipt, error) {
	w.mu.Lock()
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if err := w.validateLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}

	req := SubmitRequest{
		ToAccountNumber: w.recipient,
		Amount:          w.amount,
		Remarks:         w.remarks,
		CardID:          w.cardID,
		PIN:             w.pin,
	}
	if b, ok := w.state.Beneficiary(); ok && b.AccountNumber != "" {
		req.ToAccountNumber = b.AccountNumber
	}
	instrument := w.instrument
	w.submitting = true
	w.mu.Unlock()

	var receipt *Receipt
	var err error
	switch instrument {
	case InstrumentAccount:
		receipt, err = w.gateway.SubmitTransfer(ctx, senderUserID, req)
	case InstrumentCard:
		receipt, err = w.gateway.SubmitCardPayment(ctx, senderUserID, req)
	case InstrumentUPI:
		receipt, err = w.gateway.CreatePaymentRequest(ctx, senderUserID, req)
	default:
		err = ErrUnsupportedInstrument
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		w.pin = "" // one-time credential, never kept across attempts
		if err.Error() == "" {
			return nil, ErrSubmissionFailed
		}
		return nil, err
	}

	if receipt.FromBalanceAfter != nil {
		// Displayed balance comes from the authoritative response, not
		// from local arithmetic.
		w.sender.AvailableBalance = *receipt.FromBalanceAfter
	}
	w.resetLocked()
	return receipt, nil
}

func (w *Workflow) resetLocked() {
	w.recipient = ""
	w.state = Idle()
	w.seq++
	w.amount = 0
	w.instrument = InstrumentAccount
	w.cardID = 0
	w.pin = ""
	w.remarks = ""
}
