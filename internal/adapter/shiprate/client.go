// Package shiprate integrates the Melhor Envio shipment-calculate
// API as the remote carrier-rate provider.
package shiprate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
	"github.com/cheiadearte/storefront/pkg/retry"
	"github.com/shopspring/decimal"
)

var _ port.RateProvider = (*Client)(nil)

const (
	defaultDimensionCM  = 10
	defaultWeightGrams  = 100
	gramsPerKilogram    = 1000
	calculateTimeout    = 10 * time.Second
	calculateAttempts   = 2
	calculateRetryDelay = 300 * time.Millisecond
)

type (
	calculateRequest struct {
		From     postalCode       `json:"from"`
		To       postalCode       `json:"to"`
		Products []requestProduct `json:"products"`
	}

	postalCode struct {
		PostalCode string `json:"postal_code"`
	}

	requestProduct struct {
		ID             string  `json:"id"`
		Width          float64 `json:"width"`
		Height         float64 `json:"height"`
		Length         float64 `json:"length"`
		Weight         float64 `json:"weight"`
		InsuranceValue float64 `json:"insurance_value"`
		Quantity       int     `json:"quantity"`
	}

	rateOption struct {
		ID           json.Number `json:"id"`
		Name         string      `json:"name"`
		Price        string      `json:"price"`
		DeliveryTime int         `json:"delivery_time"`
		Company      rateCompany `json:"company"`
		Error        string      `json:"error"`
	}

	rateCompany struct {
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
)

type Config struct {
	APIURL    string
	Token     string
	OriginCEP string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func New(cfg Config) Client {
	return Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: calculateTimeout},
	}
}

// CalculateRates queries the carrier API for the given destination
// and parcels. Options carrying an error marker or no price are
// filtered out. A missing token or origin configuration yields zero
// options without calling the API.
func (c Client) CalculateRates(
	ctx context.Context, destinationCEP string, parcels []domain.Parcel,
) ([]domain.ShippingOption, error) {
	const op = "shiprate.Client.CalculateRates"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if c.cfg.Token == "" || c.cfg.OriginCEP == "" {
		log.Warn("carrier token or origin CEP is not configured")
		return nil, nil
	}

	body, err := json.Marshal(c.buildRequest(destinationCEP, parcels))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.Config{
		MaxAttempts: calculateAttempts,
		Backoff:     retry.LinearBackoff(calculateRetryDelay),
	}
	options, err := retry.DoWithResult(ctx, retryCfg,
		func() ([]rateOption, error) {
			return c.post(ctx, body)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c.toDomain(options), nil
}

func (c Client) buildRequest(
	destinationCEP string, parcels []domain.Parcel,
) calculateRequest {
	req := calculateRequest{
		From: postalCode{domain.SanitizeCEP(c.cfg.OriginCEP)},
		To:   postalCode{domain.SanitizeCEP(destinationCEP)},
	}
	for _, p := range parcels {
		req.Products = append(req.Products, requestProduct{
			ID:             p.ProductID,
			Width:          defaultDimension(p.WidthCM),
			Height:         defaultDimension(p.HeightCM),
			Length:         defaultDimension(p.LengthCM),
			Weight:         weightKG(p.WeightGrams),
			InsuranceValue: p.InsuredValue.InexactFloat64(),
			Quantity:       p.Quantity,
		})
	}
	return req
}

func (c Client) post(
	ctx context.Context, body []byte,
) ([]rateOption, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", res.Status)
	}

	var options []rateOption
	if err := json.NewDecoder(res.Body).Decode(&options); err != nil {
		return nil, err
	}
	return options, nil
}

func (c Client) toDomain(
	options []rateOption,
) (converted []domain.ShippingOption) {
	const op = "shiprate.Client.toDomain"

	for _, o := range options {
		if o.Error != "" || o.Price == "" {
			continue
		}
		price, err := decimal.NewFromString(o.Price)
		if err != nil {
			slog.Warn("skipping option with unparsable price",
				"op", op, "name", o.Name, "price", o.Price)
			continue
		}
		converted = append(converted, domain.ShippingOption{
			OptionID:     o.ID.String(),
			Name:         o.Name,
			Price:        price,
			DeliveryDays: o.DeliveryTime,
			Company: domain.ShippingCompany{
				Name:       o.Company.Name,
				PictureURL: o.Company.Picture,
			},
			Source: domain.ShippingSourceCarrier,
		})
	}
	return converted
}

func defaultDimension(cm float64) float64 {
	if cm <= 0 {
		return defaultDimensionCM
	}
	return cm
}

func weightKG(grams float64) float64 {
	if grams <= 0 {
		grams = defaultWeightGrams
	}
	return grams / gramsPerKilogram
}
