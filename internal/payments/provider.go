package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/electrostorehq/backend/pkg/config"
	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
)

// ProviderOrderRequest asks the payment gateway to open an order.
type ProviderOrderRequest struct {
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
}

// ProviderOrder is the gateway's handle for a pending payment.
type ProviderOrder struct {
	ID          string `json:"id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// Provider is the payment gateway surface the service depends on.
type Provider interface {
	CreateOrder(ctx context.Context, req ProviderOrderRequest) (*ProviderOrder, error)
	VerifySignature(providerOrderID, paymentID, signature string) bool
}

type razorpayProvider struct {
	cfg    config.PaymentConfig
	client *http.Client
}

// NewProvider builds the gateway client from configuration.
func NewProvider(cfg config.PaymentConfig) Provider {
	return &razorpayProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *razorpayProvider) CreateOrder(ctx context.Context, req ProviderOrderRequest) (*ProviderOrder, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode gateway order")
	}

	url := strings.TrimRight(p.cfg.BaseURL, "/") + "/orders"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build gateway request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(p.cfg.KeyID, p.cfg.Secret)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway unreachable")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read gateway response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("payment gateway returned %d", resp.StatusCode))
	}

	var order ProviderOrder
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode gateway order")
	}
	if order.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "gateway order carries no id")
	}
	return &order, nil
}

// VerifySignature checks the gateway callback signature, an HMAC-SHA256 of
// "<providerOrderID>|<paymentID>" keyed with the API secret.
func (p *razorpayProvider) VerifySignature(providerOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(p.cfg.Secret))
	mac.Write([]byte(providerOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
