// Package payment integrates the Mercado Pago checkout-preference
// and payments APIs.
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
	"github.com/cheiadearte/storefront/pkg/retry"
)

var _ port.PaymentGateway = (*Client)(nil)

var (
	ErrNoCheckoutURL    = errors.New("preference response carries no checkout url")
	ErrInvalidSignature = errors.New("invalid notification signature")
)

const (
	requestTimeout   = 10 * time.Second
	readAttempts     = 2
	readRetryDelay   = 300 * time.Millisecond
	currencyBRL      = "BRL"
	maxInstallments  = 12
	excludedMethodID = "ticket"
)

type (
	preferenceRequest struct {
		Items             []preferenceItem  `json:"items"`
		Payer             *preferencePayer  `json:"payer,omitempty"`
		BackURLs          backURLs          `json:"back_urls"`
		AutoReturn        string            `json:"auto_return"`
		StatementDesc     string            `json:"statement_descriptor"`
		PaymentMethods    paymentMethods    `json:"payment_methods"`
		ExternalReference string            `json:"external_reference"`
	}

	preferenceItem struct {
		ID         string  `json:"id"`
		Title      string  `json:"title"`
		UnitPrice  float64 `json:"unit_price"`
		Quantity   int     `json:"quantity"`
		CurrencyID string  `json:"currency_id"`
		PictureURL string  `json:"picture_url,omitempty"`
	}

	preferencePayer struct {
		Name           string         `json:"name,omitempty"`
		Surname        string         `json:"surname,omitempty"`
		Email          string         `json:"email,omitempty"`
		Identification identification `json:"identification"`
	}

	identification struct {
		Type   string `json:"type"`
		Number string `json:"number"`
	}

	backURLs struct {
		Success string `json:"success"`
		Failure string `json:"failure"`
		Pending string `json:"pending"`
	}

	paymentMethods struct {
		ExcludedPaymentTypes []paymentType `json:"excluded_payment_types"`
		Installments         int           `json:"installments"`
	}

	paymentType struct {
		ID string `json:"id"`
	}

	preferenceResponse struct {
		InitPoint string `json:"init_point"`
		Message   string `json:"message"`
	}

	paymentResponse struct {
		ID                json.Number `json:"id"`
		Status            string      `json:"status"`
		ExternalReference string      `json:"external_reference"`
	}
)

type Config struct {
	APIURL        string
	AccessToken   string
	WebhookSecret string
	BackURLBase   string
	StatementDesc string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func New(cfg Config) Client {
	return Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// CreatePreference registers a checkout preference and returns the
// hosted checkout URL the customer is redirected to.
func (c Client) CreatePreference(
	ctx context.Context, pref domain.CheckoutPreference,
) (string, error) {
	const op = "payment.Client.CreatePreference"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if c.cfg.AccessToken == "" {
		return "", fmt.Errorf("%s: access token is not configured", op)
	}

	body, err := json.Marshal(c.buildRequest(pref))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.cfg.APIURL+"/checkout/preferences", bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	var decoded preferenceResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if decoded.InitPoint == "" {
		if decoded.Message != "" {
			return "", fmt.Errorf("%s: %s: %w",
				op, decoded.Message, ErrNoCheckoutURL)
		}
		return "", fmt.Errorf("%s: %w", op, ErrNoCheckoutURL)
	}
	return decoded.InitPoint, nil
}

// ReadPayment fetches the payment back from the processor so
// webhook handling never trusts client-supplied state.
func (c Client) ReadPayment(
	ctx context.Context, paymentID string,
) (domain.Payment, error) {
	const op = "payment.Client.ReadPayment"

	if err := ctx.Err(); err != nil {
		return domain.Payment{}, fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.Config{
		MaxAttempts: readAttempts,
		Backoff:     retry.LinearBackoff(readRetryDelay),
	}
	decoded, err := retry.DoWithResult(ctx, retryCfg,
		func() (paymentResponse, error) {
			return c.getPayment(ctx, paymentID)
		})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Payment{
		PaymentID:         decoded.ID.String(),
		Status:            decoded.Status,
		ExternalReference: decoded.ExternalReference,
	}, nil
}

func (c Client) getPayment(
	ctx context.Context, paymentID string,
) (paymentResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.cfg.APIURL+"/v1/payments/"+paymentID, nil,
	)
	if err != nil {
		return paymentResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return paymentResponse{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return paymentResponse{}, fmt.Errorf("unexpected status: %s", res.Status)
	}

	var decoded paymentResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return paymentResponse{}, err
	}
	return decoded, nil
}

// VerifyNotification checks the webhook signature the processor
// sends in the x-signature header: an HMAC-SHA256 over the manifest
// "id:<data.id>;request-id:<request-id>;ts:<ts>;" keyed with the
// configured webhook secret.
func (c Client) VerifyNotification(n domain.PaymentNotification) error {
	const op = "payment.Client.VerifyNotification"

	if c.cfg.WebhookSecret == "" {
		return fmt.Errorf("%s: webhook secret is not configured", op)
	}

	if n.Signature == "" || n.Timestamp == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;",
		strings.ToLower(n.PaymentID), n.RequestID, n.Timestamp)

	mac := hmac.New(sha256.New, []byte(c.cfg.WebhookSecret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(n.Signature)) {
		return fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	return nil
}

func (c Client) buildRequest(
	pref domain.CheckoutPreference,
) preferenceRequest {
	req := preferenceRequest{
		BackURLs: backURLs{
			Success: c.cfg.BackURLBase + "/sucesso",
			Failure: c.cfg.BackURLBase + "/erro",
			Pending: c.cfg.BackURLBase + "/pendente",
		},
		AutoReturn:    "approved",
		StatementDesc: c.cfg.StatementDesc,
		PaymentMethods: paymentMethods{
			ExcludedPaymentTypes: []paymentType{{ID: excludedMethodID}},
			Installments:         maxInstallments,
		},
		ExternalReference: pref.ExternalReference,
	}

	for _, item := range pref.Items {
		req.Items = append(req.Items, preferenceItem{
			ID:         item.ItemID,
			Title:      item.Title,
			UnitPrice:  item.UnitPrice.InexactFloat64(),
			Quantity:   item.Quantity,
			CurrencyID: currencyBRL,
			PictureURL: item.PictureURL,
		})
	}

	if pref.Payer.Email != "" || pref.Payer.TaxID != "" {
		req.Payer = &preferencePayer{
			Name:    pref.Payer.Name,
			Surname: pref.Payer.Surname,
			Email:   pref.Payer.Email,
			Identification: identification{
				Type:   "CPF",
				Number: pref.Payer.TaxID,
			},
		}
	}
	return req
}
