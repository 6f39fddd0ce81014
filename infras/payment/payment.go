package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/shared/constant"
	"lodge/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrAmount    = "amount"
	otelAttrReference = "reference"
)

type ChargeRequest struct {
	BookingID   string
	AmountINR   int64
	Description string
}

type ChargeResult struct {
	Reference string
	Approved  bool
	PaidAt    time.Time
}

// Gateway charges a booking's total amount. The sandbox implementation approves
// every charge after a configurable delay, which mirrors how the hosted
// checkout behaves in test mode.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

type sandboxGateway struct {
	config *config.Config
	otel   otel.Otel
}

func NewSandboxGateway(config *config.Config, otl otel.Otel) Gateway {
	return &sandboxGateway{
		config: config,
		otel:   otl,
	}
}

func (g *sandboxGateway) Charge(ctx context.Context, req ChargeRequest) (res ChargeResult, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".Charge")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrAmount, req.AmountINR)

	if req.AmountINR <= 0 {
		return ChargeResult{}, fmt.Errorf("invalid charge amount: %d", req.AmountINR)
	}

	delay := time.Duration(g.config.External.Payment.ApprovalDelayMS) * time.Millisecond

	select {
	case <-ctx.Done():
		return ChargeResult{}, fmt.Errorf("charge aborted: %w", ctx.Err())
	case <-time.After(delay):
	}

	res = ChargeResult{
		Reference: uuid.New().String(),
		Approved:  true,
		PaidAt:    timezone.Now(),
	}

	scope.SetAttribute(otelAttrReference, res.Reference)

	log.Info().
		Str("booking_id", req.BookingID).
		Str("reference", res.Reference).
		Int64("amount_inr", req.AmountINR).
		Msg("sandbox payment approved")

	return res, nil
}
