package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) VerifyRecipient(ctx context.Context, identifier string) (*Beneficiary, error) {
	args := m.Called(ctx, identifier)
	if b := args.Get(0); b != nil {
		return b.(*Beneficiary), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SubmitTransfer(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	args := m.Called(ctx, senderUserID, req)
	if r := args.Get(0); r != nil {
		return r.(*Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) SubmitCardPayment(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	args := m.Called(ctx, senderUserID, req)
	if r := args.Get(0); r != nil {
		return r.(*Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) CreatePaymentRequest(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	args := m.Called(ctx, senderUserID, req)
	if r := args.Get(0); r != nil {
		return r.(*Receipt), args.Error(1)
	}
	return nil, args.Error(1)
}

// blockingDirectory lets a test hold a lookup open while the workflow
// moves on, to exercise the stale-response guard.
type blockingDirectory struct {
	entered chan struct{}
	release chan struct{}
	result  *Beneficiary
}

func (d *blockingDirectory) VerifyRecipient(ctx context.Context, identifier string) (*Beneficiary, error) {
	close(d.entered)
	<-d.release
	return d.result, nil
}

func newWorkflow(t *testing.T, balance float64) (*Workflow, *MockDirectory, *MockGateway) {
	t.Helper()
	dir := new(MockDirectory)
	gw := new(MockGateway)
	wf := NewWorkflow(Snapshot{AccountNumber: "BK1234567", AvailableBalance: balance}, dir, gw)
	return wf, dir, gw
}

func TestWorkflow_Verify(t *testing.T) {
	t.Run("successful lookup verifies recipient", func(t *testing.T) {
		wf, dir, _ := newWorkflow(t, 5000)
		dir.On("VerifyRecipient", mock.Anything, "BK7654321").
			Return(&Beneficiary{FullName: "Ravi Kumar", Username: "ravi", AccountNumber: "BK7654321"}, nil)

		wf.SetRecipient("BK7654321")
		state := wf.Verify(context.Background())

		assert.Equal(t, StatusVerified, state.Status())
		b, ok := state.Beneficiary()
		require.True(t, ok)
		assert.Equal(t, "Ravi Kumar", b.FullName)
		dir.AssertExpectations(t)
	})

	t.Run("own account number is rejected without a lookup", func(t *testing.T) {
		wf, dir, _ := newWorkflow(t, 5000)
		// Even a directory that would vouch for the identifier must not
		// be consulted: self-transfer is always rejected.
		wf.SetRecipient("BK1234567")
		state := wf.Verify(context.Background())

		assert.Equal(t, StatusRejected, state.Status())
		dir.AssertNotCalled(t, "VerifyRecipient", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure degrades to rejected", func(t *testing.T) {
		wf, dir, _ := newWorkflow(t, 5000)
		dir.On("VerifyRecipient", mock.Anything, "BK0000001").
			Return(nil, ErrRecipientNotFound)

		wf.SetRecipient("BK0000001")
		state := wf.Verify(context.Background())

		assert.Equal(t, StatusRejected, state.Status())
	})

	t.Run("implausible identifier never reaches the directory", func(t *testing.T) {
		wf, dir, _ := newWorkflow(t, 5000)

		wf.SetRecipient("BK12")
		state := wf.Verify(context.Background())

		assert.Equal(t, StatusIdle, state.Status())
		dir.AssertNotCalled(t, "VerifyRecipient", mock.Anything, mock.Anything)
	})

	t.Run("editing the recipient returns the state to idle", func(t *testing.T) {
		wf, dir, _ := newWorkflow(t, 5000)
		dir.On("VerifyRecipient", mock.Anything, "BK7654321").
			Return(&Beneficiary{AccountNumber: "BK7654321"}, nil)

		wf.SetRecipient("BK7654321")
		wf.Verify(context.Background())
		require.Equal(t, StatusVerified, wf.State().Status())

		wf.SetRecipient("BK7654322")
		assert.Equal(t, StatusIdle, wf.State().Status())
	})
}

// A lookup answered after the recipient was edited must not update the
// state: only the response matching the current value may.
func TestWorkflow_StaleLookupDiscarded(t *testing.T) {
	dir := &blockingDirectory{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		result:  &Beneficiary{FullName: "Stale Person", AccountNumber: "BK7654321"},
	}
	wf := NewWorkflow(Snapshot{AccountNumber: "BK1234567", AvailableBalance: 5000}, dir, new(MockGateway))

	wf.SetRecipient("BK7654321")

	done := make(chan struct{})
	go func() {
		wf.Verify(context.Background())
		close(done)
	}()

	<-dir.entered
	// The user edits the field while the first lookup is still pending.
	wf.SetRecipient("BK9999999")
	close(dir.release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("verify did not return")
	}

	state := wf.State()
	assert.Equal(t, StatusIdle, state.Status(), "stale result must be discarded")
	_, ok := state.Beneficiary()
	assert.False(t, ok)
}

// blockingGateway holds a submission open so a test can issue a second
// one while the first is still in flight.
type blockingGateway struct {
	entered chan struct{}
	release chan struct{}
	receipt *Receipt
}

func (g *blockingGateway) SubmitTransfer(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	close(g.entered)
	<-g.release
	return g.receipt, nil
}

func (g *blockingGateway) SubmitCardPayment(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	return nil, errors.New("unexpected card submission")
}

func (g *blockingGateway) CreatePaymentRequest(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	return nil, errors.New("unexpected payment request")
}

func TestWorkflow_SecondSubmitRefusedWhileFirstInFlight(t *testing.T) {
	dir := new(MockDirectory)
	dir.On("VerifyRecipient", mock.Anything, "BK7654321").
		Return(&Beneficiary{AccountNumber: "BK7654321"}, nil)
	gw := &blockingGateway{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		receipt: &Receipt{Reference: "txn-1", Amount: 1000},
	}
	wf := NewWorkflow(Snapshot{AccountNumber: "BK1234567", AvailableBalance: 5000}, dir, gw)

	wf.SetRecipient("BK7654321")
	wf.Verify(context.Background())
	wf.SetAmount(1000)

	firstDone := make(chan error, 1)
	go func() {
		_, err := wf.Submit(context.Background(), 1)
		firstDone <- err
	}()

	<-gw.entered
	// The double click lands while the first submission is still with
	// the gateway.
	_, err := wf.Submit(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(gw.release)
	select {
	case err := <-firstDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("first submission did not return")
	}
}

func TestWorkflow_SubmitRefusedWhileVerificationPending(t *testing.T) {
	dir := &blockingDirectory{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		result:  &Beneficiary{AccountNumber: "BK7654321"},
	}
	gw := new(MockGateway)
	gw.On("SubmitTransfer", mock.Anything, uint(1), mock.Anything).
		Return(&Receipt{Reference: "txn-2", Amount: 1000}, nil)
	wf := NewWorkflow(Snapshot{AccountNumber: "BK1234567", AvailableBalance: 5000}, dir, gw)

	wf.SetRecipient("BK7654321")
	wf.SetAmount(1000)

	done := make(chan struct{})
	go func() {
		wf.Verify(context.Background())
		close(done)
	}()

	<-dir.entered
	// The lookup is still out; submitting now could race its result.
	_, err := wf.Submit(context.Background(), 1)
	assert.ErrorIs(t, err, ErrVerificationPending)

	close(dir.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("verify did not return")
	}

	// Once the verification lands the same submission goes through.
	_, err = wf.Submit(context.Background(), 1)
	assert.NoError(t, err)
}

func TestWorkflow_ValidationBlocksBeforeGateway(t *testing.T) {
	verified := func(t *testing.T, balance float64) (*Workflow, *MockGateway) {
		wf, dir, gw := newWorkflow(t, balance)
		dir.On("VerifyRecipient", mock.Anything, "BK7654321").
			Return(&Beneficiary{AccountNumber: "BK7654321"}, nil)
		wf.SetRecipient("BK7654321")
		wf.Verify(context.Background())
		return wf, gw
	}

	t.Run("amount above snapshot balance", func(t *testing.T) {
		wf, gw := verified(t, 5000)
		wf.SetAmount(6000)

		_, err := wf.Submit(context.Background(), 1)

		assert.ErrorIs(t, err, ErrInsufficientBalance)
		gw.AssertNotCalled(t, "SubmitTransfer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero amount", func(t *testing.T) {
		wf, gw := verified(t, 5000)
		wf.SetAmount(0)

		_, err := wf.Submit(context.Background(), 1)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		gw.AssertNotCalled(t, "SubmitTransfer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("two digit card PIN", func(t *testing.T) {
		wf, gw := verified(t, 5000)
		wf.SetAmount(1000)
		wf.SetInstrument(InstrumentCard)
		wf.SetCard(7)
		wf.SetPIN("12")

		_, err := wf.Submit(context.Background(), 1)

		assert.ErrorIs(t, err, ErrInvalidPIN)
		gw.AssertNotCalled(t, "SubmitCardPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("card instrument without a card", func(t *testing.T) {
		wf, gw := verified(t, 5000)
		wf.SetAmount(1000)
		wf.SetInstrument(InstrumentCard)

		_, err := wf.Submit(context.Background(), 1)

		assert.ErrorIs(t, err, ErrCardRequired)
		gw.AssertNotCalled(t, "SubmitCardPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejected recipient", func(t *testing.T) {
		wf, dir, gw := newWorkflow(t, 5000)
		dir.On("VerifyRecipient", mock.Anything, "BK0000001").
			Return(nil, ErrRecipientNotFound)
		wf.SetRecipient("BK0000001")
		wf.Verify(context.Background())
		wf.SetAmount(1000)

		_, err := wf.Submit(context.Background(), 1)

		assert.ErrorIs(t, err, ErrRecipientRejected)
		gw.AssertNotCalled(t, "SubmitTransfer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty recipient", func(t *testing.T) {
		wf, _, gw := newWorkflow(t, 5000)
		wf.SetAmount(1000)

		_, err := wf.Submit(context.Background(), 1)

		assert.ErrorIs(t, err, ErrRecipientRequired)
		gw.AssertNotCalled(t, "SubmitTransfer", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorkflow_SuccessAdoptsServerBalance(t *testing.T) {
	wf, dir, gw := newWorkflow(t, 5000)
	dir.On("VerifyRecipient", mock.Anything, "BK7654321").
		Return(&Beneficiary{AccountNumber: "BK7654321"}, nil)
	after := 4000.0
	gw.On("SubmitTransfer", mock.Anything, uint(1), mock.MatchedBy(func(req SubmitRequest) bool {
		return req.ToAccountNumber == "BK7654321" && req.Amount == 1000
	})).Return(&Receipt{Reference: "TXN-1", ToAccountNumber: "BK7654321", Amount: 1000, FromBalanceAfter: &after}, nil)

	wf.SetRecipient("BK7654321")
	wf.Verify(context.Background())
	wf.SetAmount(1000)
	wf.SetRemarks("rent")

	receipt, err := wf.Submit(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "TXN-1", receipt.Reference)

	// The displayed balance is exactly what the server reported, and the
	// workflow is reset for the next attempt.
	assert.Equal(t, 4000.0, wf.AvailableBalance())
	assert.Equal(t, StatusIdle, wf.State().Status())
	gw.AssertExpectations(t)
}

func TestWorkflow_FailurePreservesFieldsExceptPIN(t *testing.T) {
	wf, dir, gw := newWorkflow(t, 5000)
	dir.On("VerifyRecipient", mock.Anything, "BK7654321").
		Return(&Beneficiary{AccountNumber: "BK7654321"}, nil)
	gw.On("SubmitCardPayment", mock.Anything, uint(1), mock.Anything).
		Return(nil, errors.New("card issuer declined the payment"))

	wf.SetRecipient("BK7654321")
	wf.Verify(context.Background())
	wf.SetAmount(1000)
	wf.SetInstrument(InstrumentCard)
	wf.SetCard(7)
	wf.SetPIN("4321")

	_, err := wf.Submit(context.Background(), 1)
	assert.EqualError(t, err, "card issuer declined the payment")

	// Verification and amount survive the failure, the one-time PIN
	// does not: resubmitting without re-entering it fails locally.
	assert.Equal(t, StatusVerified, wf.State().Status())
	_, err = wf.Submit(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidPIN)
}

func TestWorkflow_UPIEndsAtQRDisplay(t *testing.T) {
	wf, dir, gw := newWorkflow(t, 5000)
	dir.On("VerifyRecipient", mock.Anything, "ravi@finch").
		Return(&Beneficiary{Username: "ravi"}, nil)
	gw.On("CreatePaymentRequest", mock.Anything, uint(1), mock.Anything).
		Return(&Receipt{Reference: "abc", Amount: 750, QRPayload: "upi://pay?pa=me%40finch&am=750.00"}, nil)

	wf.SetRecipient("ravi@finch")
	wf.Verify(context.Background())
	wf.SetAmount(750)
	wf.SetInstrument(InstrumentUPI)

	receipt, err := wf.Submit(context.Background(), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.QRPayload)

	// No ledger mutation: the balance on display is unchanged.
	assert.Equal(t, 5000.0, wf.AvailableBalance())
}
