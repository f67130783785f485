package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const mercadoPagoAPIURL = "https://api.mercadopago.com"

// MercadoPagoGateway implements PaymentGateway over the Mercado Pago
// REST API.
type MercadoPagoGateway struct {
	httpClient  *http.Client
	accessToken string
	apiURL      string
}

func NewMercadoPagoGateway(accessToken string) *MercadoPagoGateway {
	return &MercadoPagoGateway{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		accessToken: accessToken,
		apiURL:      mercadoPagoAPIURL,
	}
}

type mpPreferenceRequest struct {
	Items []mpItem `json:"items"`
	Payer struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"payer"`
	BackURLs struct {
		Success string `json:"success"`
		Failure string `json:"failure"`
		Pending string `json:"pending"`
	} `json:"back_urls"`
	AutoReturn        string `json:"auto_return"`
	ExternalReference string `json:"external_reference"`
	NotificationURL   string `json:"notification_url"`
}

type mpItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type mpPreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type mpPaymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
}

func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error) {
	body := mpPreferenceRequest{
		Items: []mpItem{{
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  req.UnitPrice,
			CurrencyID: req.Currency,
		}},
		AutoReturn:        "approved",
		ExternalReference: req.ExternalReference,
		NotificationURL:   req.NotificationURL,
	}
	body.Payer.Email = req.PayerEmail
	body.Payer.Name = req.PayerName
	body.BackURLs.Success = req.SuccessURL
	body.BackURLs.Failure = req.FailureURL
	body.BackURLs.Pending = req.PendingURL

	respBody, err := g.do(ctx, http.MethodPost, "/checkout/preferences", body)
	if err != nil {
		return nil, err
	}

	var pref mpPreferenceResponse
	if err := json.Unmarshal(respBody, &pref); err != nil {
		return nil, fmt.Errorf("failed to parse preference response: %w", err)
	}
	return &Preference{ID: pref.ID, InitPoint: pref.InitPoint}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (*PaymentInfo, error) {
	respBody, err := g.do(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}

	var payment mpPaymentResponse
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("failed to parse payment response: %w", err)
	}
	return &PaymentInfo{
		ID:                payment.ID.String(),
		Status:            payment.Status,
		ExternalReference: payment.ExternalReference,
	}, nil
}

func (g *MercadoPagoGateway) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.apiURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
