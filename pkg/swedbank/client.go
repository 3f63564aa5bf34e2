package swedbank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway endpoints per payment instrument.
const (
	SwishEndpoint = "/psp/swish/payments"
	CardEndpoint  = "/psp/creditcard/payments"
)

// StateCompleted is the gateway's terminal success state. Every other state
// is treated as not-yet-complete or failed.
const StateCompleted = "Completed"

// Config holds the gateway connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a thin JSON/bearer client for the Swedbank Pay API. One gateway
// call per operation: calls carry a timeout and are never retried here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new gateway client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Price is one priced instrument line, amounts in currency minor units.
type Price struct {
	Type      string `json:"type"`
	Amount    int64  `json:"amount"`
	VatAmount int64  `json:"vatAmount"`
}

// URLs are the redirect and callback targets for a payment.
type URLs struct {
	HostURLs          []string `json:"hostUrls"`
	CompleteURL       string   `json:"completeUrl"`
	TermsOfServiceURL string   `json:"termsOfServiceUrl,omitempty"`
	PaymentURL        string   `json:"paymentUrl,omitempty"`
	CallbackURL       string   `json:"callbackUrl,omitempty"`
}

// PayeeInfo identifies the merchant and the individual payment.
type PayeeInfo struct {
	PayeeID        string `json:"payeeId"`
	PayeeReference string `json:"payeeReference"`
	PayeeName      string `json:"payeeName"`
}

// PrefillInfo pre-populates the payment UI.
type PrefillInfo struct {
	Msisdn string `json:"msisdn,omitempty"`
}

// PaymentBody is the payment object of a create request.
type PaymentBody struct {
	Operation   string       `json:"operation"`
	Intent      string       `json:"intent"`
	Currency    string       `json:"currency"`
	Description string       `json:"description"`
	UserAgent   string       `json:"userAgent"`
	Language    string       `json:"language"`
	Prices      []Price      `json:"prices"`
	URLs        URLs         `json:"urls"`
	PayeeInfo   PayeeInfo    `json:"payeeInfo"`
	PrefillInfo *PrefillInfo `json:"prefillInfo,omitempty"`
}

// PaymentPayload is the full create-payment request.
type PaymentPayload struct {
	Payment PaymentBody `json:"payment"`
}

// Operation is one of the next-step operations the gateway offers after a
// payment is created (e.g. a redirect link).
type Operation struct {
	Method      string `json:"method"`
	Href        string `json:"href"`
	Rel         string `json:"rel"`
	ContentType string `json:"contentType"`
}

// PaymentCreated is the create-payment response.
type PaymentCreated struct {
	Payment struct {
		ID string `json:"id"`
	} `json:"payment"`
	Operations []Operation `json:"operations"`
}

// CardInfo is the card authorization data returned for card payments. The
// masked PAN is the only card number form the gateway exposes.
type CardInfo struct {
	CardBrand string `json:"cardBrand"`
	CardType  string `json:"cardType"`
	MaskedPan string `json:"maskedPan"`
}

// ReversalTransaction is the transaction object of a reversal request.
type ReversalTransaction struct {
	Amount         int64  `json:"amount"`
	VatAmount      int64  `json:"vatAmount"`
	Description    string `json:"description"`
	PayeeReference string `json:"payeeReference"`
}

// ReversalPayload is the full reversal request.
type ReversalPayload struct {
	Transaction ReversalTransaction `json:"transaction"`
}

type transactionState struct {
	Transaction struct {
		State string `json:"state"`
	} `json:"transaction"`
}

// CreatePayment posts a new payment and returns its gateway identity and
// next-step operations.
func (c *Client) CreatePayment(ctx context.Context, token, endpoint string, payload PaymentPayload) (*PaymentCreated, error) {
	var created PaymentCreated
	if err := c.post(ctx, token, endpoint, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SaleState returns the state of a Swish sale transaction.
func (c *Client) SaleState(ctx context.Context, token, paymentID string) (string, error) {
	var res struct {
		Sales struct {
			SaleList []transactionState `json:"saleList"`
		} `json:"sales"`
	}
	if err := c.get(ctx, token, paymentID+"/sales", &res); err != nil {
		return "", err
	}
	if len(res.Sales.SaleList) == 0 {
		return "", fmt.Errorf("no sale transactions for payment %s", paymentID)
	}
	return res.Sales.SaleList[0].Transaction.State, nil
}

// CaptureState returns the state of a card capture transaction.
func (c *Client) CaptureState(ctx context.Context, token, paymentID string) (string, error) {
	var res struct {
		Captures struct {
			CaptureList []transactionState `json:"captureList"`
		} `json:"captures"`
	}
	if err := c.get(ctx, token, paymentID+"/captures", &res); err != nil {
		return "", err
	}
	if len(res.Captures.CaptureList) == 0 {
		return "", fmt.Errorf("no capture transactions for payment %s", paymentID)
	}
	return res.Captures.CaptureList[0].Transaction.State, nil
}

// CardAuthorization returns the card data of the payment's authorization.
func (c *Client) CardAuthorization(ctx context.Context, token, paymentID string) (*CardInfo, error) {
	var res struct {
		Authorizations struct {
			AuthorizationList []CardInfo `json:"authorizationList"`
		} `json:"authorizations"`
	}
	if err := c.get(ctx, token, paymentID+"/authorizations", &res); err != nil {
		return nil, err
	}
	if len(res.Authorizations.AuthorizationList) == 0 {
		return nil, fmt.Errorf("no authorizations for payment %s", paymentID)
	}
	return &res.Authorizations.AuthorizationList[0], nil
}

// Reverse posts a reversal for a captured payment and returns the reversal
// transaction state.
func (c *Client) Reverse(ctx context.Context, token, paymentID string, payload ReversalPayload) (string, error) {
	var res struct {
		Reversal transactionState `json:"reversal"`
	}
	if err := c.post(ctx, token, paymentID+"/reversals", payload, &res); err != nil {
		return "", err
	}
	return res.Reversal.Transaction.State, nil
}

func (c *Client) post(ctx context.Context, token, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal gateway payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, token, out)
}

func (c *Client) get(ctx context.Context, token, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(endpoint), nil)
	if err != nil {
		return err
	}
	return c.do(req, token, out)
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + endpoint
}

func (c *Client) do(req *http.Request, token string, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("gateway response read: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("gateway %s %s returned %d", req.Method, req.URL.Path, res.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("gateway response decode: %w", err)
	}
	return nil
}
