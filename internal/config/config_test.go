package config

import (
	"errors"
	"testing"
	"time"

	"raffle/internal/models"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RAFFLE_OPERATOR_ADDRESS", "operator-1")
	t.Setenv("RAFFLE_SALE_START", "2026-09-01T00:00:00Z")
	t.Setenv("RAFFLE_SALE_END", "2026-09-08T00:00:00Z")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.ManagerAddress != "operator-1" {
		t.Errorf("expected manager to default to the operator, got %q", cfg.ManagerAddress)
	}
	if cfg.TicketPrice != 1000 || cfg.MaxSpend != 9000 {
		t.Errorf("unexpected price defaults: price %d, max spend %d", cfg.TicketPrice, cfg.MaxSpend)
	}
}

func TestLoadSeparateManager(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAFFLE_MANAGER_ADDRESS", "manager-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ManagerAddress != "manager-1" {
		t.Errorf("expected manager-1, got %q", cfg.ManagerAddress)
	}
}

func TestCampaignConversion(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAFFLE_CAMPAIGN_NAME", "launch raffle")
	t.Setenv("RAFFLE_TOTAL_TICKETS", "50")
	t.Setenv("RAFFLE_TOTAL_WINNERS", "5")
	t.Setenv("RAFFLE_MINTING_ENDPOINT", "http://mint.local/receipts")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	campaign, err := cfg.Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}

	wantStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if !campaign.SaleStart.Equal(wantStart) {
		t.Errorf("expected sale start %v, got %v", wantStart, campaign.SaleStart)
	}
	if campaign.Name != "launch raffle" || campaign.TotalTickets != 50 || campaign.TotalWinners != 5 {
		t.Errorf("unexpected campaign config: %+v", campaign)
	}
	if campaign.MintingHandle != "http://mint.local/receipts" {
		t.Errorf("expected minting handle to carry the endpoint, got %q", campaign.MintingHandle)
	}
	if err := campaign.Validate(); err != nil {
		t.Errorf("expected converted config to validate, got %v", err)
	}
}

func TestCampaignRejectsBadTimestamps(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAFFLE_SALE_START", "not-a-timestamp")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := cfg.Campaign(); err == nil {
		t.Fatal("expected an error for a malformed sale start")
	}
}

func TestCampaignValidationFlowsThrough(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RAFFLE_TOTAL_TICKETS", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	campaign, err := cfg.Campaign()
	if err != nil {
		t.Fatalf("Campaign failed: %v", err)
	}
	if err := campaign.Validate(); !errors.Is(err, models.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
