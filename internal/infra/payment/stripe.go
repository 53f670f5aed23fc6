package payment

import (
	"context"
	"strconv"

	"boxrent/internal/pkg/config"
	"boxrent/internal/pkg/errs"
	"boxrent/internal/usecase/commands"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

var errStripeRequest = errs.New("stripe request failed")

// StripeGateway creates and fetches payment intents for booking
// extensions. The API key is set process-wide, which is how the
// stripe-go client expects to be configured.
type StripeGateway struct {
	currency string
}

func NewStripeGateway(cfg config.StripeConfig) commands.PaymentGateway {
	stripe.Key = cfg.APIKey
	return &StripeGateway{currency: cfg.Currency}
}

func (g *StripeGateway) CreateExtensionIntent(ctx context.Context, req commands.ExtensionIntentRequest) (*commands.PaymentIntent, error) {
	currency := req.Currency
	if currency == "" {
		currency = g.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(commands.IntentMetaBookingID, req.BookingID.String())
	params.AddMetadata(commands.IntentMetaNewEnd, req.NewEnd)
	params.AddMetadata(commands.IntentMetaKind, commands.IntentKindExtension)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "create payment intent amount="+strconv.FormatInt(req.AmountCents, 10)), errStripeRequest)
	}

	return toIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, id string) (*commands.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "get payment intent "+id), errStripeRequest)
	}

	return toIntent(pi), nil
}

func toIntent(pi *stripe.PaymentIntent) *commands.PaymentIntent {
	return &commands.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
}
