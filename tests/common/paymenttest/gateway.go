//go:build unit || e2e

package paymenttest

import (
	"context"
	"fmt"
	"sync"

	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/commands"
)

// FakeGateway is an in-memory stand-in for the payment provider. Tests
// create intents through the normal command flow and settle them by hand.
type FakeGateway struct {
	mu      sync.Mutex
	intents map[string]*commands.PaymentIntent
	seq     int

	// CreateErr / GetErr force the next call to fail when set.
	CreateErr error
	GetErr    error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{intents: make(map[string]*commands.PaymentIntent)}
}

func (g *FakeGateway) CreateExtensionIntent(_ context.Context, req commands.ExtensionIntentRequest) (*commands.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.CreateErr != nil {
		err := g.CreateErr
		g.CreateErr = nil
		return nil, err
	}

	g.seq++
	intent := &commands.PaymentIntent{
		ID:           fmt.Sprintf("pi_fake_%04d", g.seq),
		ClientSecret: fmt.Sprintf("pi_fake_%04d_secret", g.seq),
		Status:       "requires_payment_method",
		AmountCents:  req.AmountCents,
		Currency:     req.Currency,
		Metadata: map[string]string{
			commands.IntentMetaBookingID: req.BookingID.String(),
			commands.IntentMetaNewEnd:    req.NewEnd,
			commands.IntentMetaKind:      commands.IntentKindExtension,
		},
	}
	g.intents[intent.ID] = intent
	return clone(intent), nil
}

func (g *FakeGateway) GetIntent(_ context.Context, id string) (*commands.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.GetErr != nil {
		err := g.GetErr
		g.GetErr = nil
		return nil, err
	}

	intent, ok := g.intents[id]
	if !ok {
		return nil, errs.New(fmt.Sprintf("unknown payment intent %s", id))
	}
	return clone(intent), nil
}

// Settle marks an intent as succeeded, simulating the customer paying.
func (g *FakeGateway) Settle(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if intent, ok := g.intents[id]; ok {
		intent.Status = commands.IntentStatusSucceeded
	}
}

// Register seeds an intent directly, bypassing Create. Useful for replay
// and mismatch scenarios.
func (g *FakeGateway) Register(intent *commands.PaymentIntent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.intents[intent.ID] = clone(intent)
}

func clone(in *commands.PaymentIntent) *commands.PaymentIntent {
	out := *in
	out.Metadata = make(map[string]string, len(in.Metadata))
	for k, v := range in.Metadata {
		out.Metadata[k] = v
	}
	return &out
}
