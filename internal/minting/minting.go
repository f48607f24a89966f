package minting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/logger"
)

// Minter is the external collaborator that converts a ticket URI into a
// durable receipt. It is invoked once per successful purchase; a failure
// must abort the purchase.
type Minter interface {
	MintReceipt(uri string) (string, error)
}

type mintRequest struct {
	URI string `json:"uri"`
}

type mintResponse struct {
	ReceiptID string `json:"receiptId"`
}

// HTTPMinter calls a remote minting service over HTTP.
type HTTPMinter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPMinter(endpoint string) *HTTPMinter {
	return &HTTPMinter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *HTTPMinter) MintReceipt(uri string) (string, error) {
	body, err := json.Marshal(mintRequest{URI: uri})
	if err != nil {
		return "", fmt.Errorf("encode mint request: %w", err)
	}

	resp, err := m.client.Post(m.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("call minting service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("minting service returned status %d", resp.StatusCode)
	}

	var decoded mintResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode mint response: %w", err)
	}
	if decoded.ReceiptID == "" {
		return "", fmt.Errorf("minting service returned an empty receipt id")
	}
	return decoded.ReceiptID, nil
}

// LogMinter issues sequential local receipts and logs each mint. It is
// used when no minting endpoint is configured. Mint calls arrive under
// the campaign's serialization discipline, so the counter needs no lock
// of its own.
type LogMinter struct {
	issued int
}

func NewLogMinter() *LogMinter { return &LogMinter{} }

func (m *LogMinter) MintReceipt(uri string) (string, error) {
	m.issued++
	receipt := fmt.Sprintf("local-receipt-%d", m.issued)
	logger.Infof("minted %s for uri %q", receipt, uri)
	return receipt, nil
}
