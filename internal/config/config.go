package config

import (
	"fmt"
	"time"

	"raffle/internal/models"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment (and a
// .env file when one is present).
type Config struct {
	ListenAddr string `env:"RAFFLE_LISTEN_ADDR" envDefault:":8080"`
	Verbose    bool   `env:"RAFFLE_LOG_VERBOSE" envDefault:"false"`

	// OperatorAddress authorizes draws and cancellation. ManagerAddress
	// is the identity excluded from purchasing; it defaults to the
	// operator.
	OperatorAddress string `env:"RAFFLE_OPERATOR_ADDRESS,required"`
	ManagerAddress  string `env:"RAFFLE_MANAGER_ADDRESS"`

	CampaignName string `env:"RAFFLE_CAMPAIGN_NAME" envDefault:"raffle"`
	Organizer    string `env:"RAFFLE_ORGANIZER"`
	Description  string `env:"RAFFLE_DESCRIPTION"`
	SaleStart    string `env:"RAFFLE_SALE_START,required"`
	SaleEnd      string `env:"RAFFLE_SALE_END,required"`
	TicketPrice  uint64 `env:"RAFFLE_TICKET_PRICE" envDefault:"1000"`
	MaxSpend     uint64 `env:"RAFFLE_MAX_SPEND" envDefault:"9000"`
	TotalTickets int    `env:"RAFFLE_TOTAL_TICKETS" envDefault:"100"`
	TotalWinners int    `env:"RAFFLE_TOTAL_WINNERS" envDefault:"3"`

	// MintingEndpoint is the minting service URL. Empty selects the
	// local log-only minter.
	MintingEndpoint string `env:"RAFFLE_MINTING_ENDPOINT"`

	// JournalPath is the sqlite file for the notification journal.
	// Empty disables journalling.
	JournalPath string `env:"RAFFLE_JOURNAL_PATH" envDefault:"raffle.db"`
}

// Load reads the configuration from the environment. A missing .env file
// is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ManagerAddress == "" {
		cfg.ManagerAddress = cfg.OperatorAddress
	}
	return cfg, nil
}

// Campaign converts the process configuration into the immutable
// campaign configuration, parsing the sale window timestamps.
func (c Config) Campaign() (models.CampaignConfig, error) {
	saleStart, err := time.Parse(time.RFC3339, c.SaleStart)
	if err != nil {
		return models.CampaignConfig{}, fmt.Errorf("parse sale start: %w", err)
	}
	saleEnd, err := time.Parse(time.RFC3339, c.SaleEnd)
	if err != nil {
		return models.CampaignConfig{}, fmt.Errorf("parse sale end: %w", err)
	}
	return models.CampaignConfig{
		Name:          c.CampaignName,
		Organizer:     c.Organizer,
		Description:   c.Description,
		SaleStart:     saleStart,
		SaleEnd:       saleEnd,
		TicketPrice:   c.TicketPrice,
		MaxSpend:      c.MaxSpend,
		TotalTickets:  c.TotalTickets,
		TotalWinners:  c.TotalWinners,
		MintingHandle: c.MintingEndpoint,
	}, nil
}
