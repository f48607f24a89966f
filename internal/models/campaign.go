package models

import (
	"fmt"
	"time"
)

// Minimum and maximum ticket supply a campaign may be configured with.
// The supply must be strictly inside this range.
const (
	MinTotalTickets = 1
	MaxTotalTickets = 25000
)

// CampaignConfig holds the immutable parameters of a raffle campaign.
// It is fixed at creation time and never changes afterwards.
type CampaignConfig struct {
	Name          string    `json:"name"`
	Organizer     string    `json:"organizer"`
	Description   string    `json:"description"`
	SaleStart     time.Time `json:"saleStart"`
	SaleEnd       time.Time `json:"saleEnd"`
	TicketPrice   uint64    `json:"ticketPrice"`
	MaxSpend      uint64    `json:"maxSpend"`
	TotalTickets  int       `json:"totalTickets"`
	TotalWinners  int       `json:"totalWinners"`
	MintingHandle string    `json:"mintingHandle"`
}

// Validate checks the configuration invariants. A campaign must never be
// constructed from a configuration that fails any of them.
func (c CampaignConfig) Validate() error {
	if !c.SaleStart.Before(c.SaleEnd) {
		return fmt.Errorf("%w: sale start %s is not before sale end %s",
			ErrInvalidConfig, c.SaleStart.Format(time.RFC3339), c.SaleEnd.Format(time.RFC3339))
	}
	if c.TotalTickets <= MinTotalTickets || c.TotalTickets >= MaxTotalTickets {
		return fmt.Errorf("%w: total tickets %d outside (%d, %d)",
			ErrInvalidConfig, c.TotalTickets, MinTotalTickets, MaxTotalTickets)
	}
	if c.TotalTickets <= c.TotalWinners {
		return fmt.Errorf("%w: total tickets %d must exceed total winners %d",
			ErrInvalidConfig, c.TotalTickets, c.TotalWinners)
	}
	return nil
}

// BuyLimit returns how many tickets a single buyer may purchase,
// i.e. floor(maxSpend / ticketPrice).
func (c CampaignConfig) BuyLimit() int {
	if c.TicketPrice == 0 {
		return 0
	}
	return int(c.MaxSpend / c.TicketPrice)
}

// CampaignStatus is a read-only snapshot of a campaign's counters,
// as served by the query surface.
type CampaignStatus struct {
	Config       CampaignConfig `json:"config"`
	Finished     bool           `json:"finished"`
	TotalSold    int            `json:"totalSold"`
	Undrawn      int            `json:"undrawn"`
	Drawn        int            `json:"drawn"`
	Remaining    int            `json:"remaining"`
	SoldRevenue  uint64         `json:"soldRevenue"`
	TotalRevenue uint64         `json:"totalRevenue"`
}

// BuyerStatus reports a single buyer's purchase history.
type BuyerStatus struct {
	Address     string `json:"address"`
	TicketCount int    `json:"ticketCount"`
	TotalSpend  uint64 `json:"totalSpend"`
}
