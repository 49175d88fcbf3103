package domain

import "github.com/shopspring/decimal"

type (
	// A CheckoutPreference is the payment processor's server-created,
	// redirect-backed payment request.
	CheckoutPreference struct {
		Items             []PreferenceItem
		Payer             PreferencePayer
		ExternalReference string
	}

	PreferenceItem struct {
		ItemID     string
		Title      string
		UnitPrice  decimal.Decimal
		Quantity   int
		PictureURL string
	}

	PreferencePayer struct {
		Name    string
		Surname string
		Email   string
		TaxID   string
	}

	// A Payment is the processor's record fetched while handling a
	// webhook notification.
	Payment struct {
		PaymentID         string
		Status            string
		ExternalReference string
	}

	// A PaymentNotification carries the processor's webhook callback
	// together with the signature material to verify it.
	PaymentNotification struct {
		PaymentID string
		RequestID string
		Timestamp string
		Signature string
	}
)
