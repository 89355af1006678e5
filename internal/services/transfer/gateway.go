package transfer

import (
	"context"
)

// bankGateway adapts the ledger, card and UPI services into the Gateway
// the workflow submits through.
type bankGateway struct {
	transfers Service
	cards     CardCharger
	upi       RequestCreator
}

// NewGateway builds the production gateway used by the transfer handlers.
func NewGateway(transfers Service, cards CardCharger, upi RequestCreator) Gateway {
	return &bankGateway{
		transfers: transfers,
		cards:     cards,
		upi:       upi,
	}
}

func (g *bankGateway) SubmitTransfer(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	tx, balanceAfter, err := g.transfers.Transfer(ctx, senderUserID, req.ToAccountNumber, req.Amount, req.Remarks)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		Reference:        tx.Reference,
		ToAccountNumber:  req.ToAccountNumber,
		Amount:           tx.Amount,
		FromBalanceAfter: &balanceAfter,
	}, nil
}

func (g *bankGateway) SubmitCardPayment(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	tx, err := g.cards.Pay(ctx, senderUserID, req.CardID, req.ToAccountNumber, req.Amount, req.Remarks, req.PIN)
	if err != nil {
		return nil, err
	}
	// Card payments settle against the card, not the bank balance, so no
	// post-transfer balance comes back here.
	return &Receipt{
		Reference:       tx.Reference,
		ToAccountNumber: req.ToAccountNumber,
		Amount:          tx.Amount,
	}, nil
}

func (g *bankGateway) CreatePaymentRequest(ctx context.Context, senderUserID uint, req SubmitRequest) (*Receipt, error) {
	amount := req.Amount
	pr, err := g.upi.CreatePaymentRequest(ctx, senderUserID, &amount, req.Remarks)
	if err != nil {
		return nil, err
	}
	// Terminal action: the flow ends at QR display, no ledger mutation.
	return &Receipt{
		Reference: pr.Code,
		Amount:    amount,
		QRPayload: pr.Payload,
	}, nil
}
