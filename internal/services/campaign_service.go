package services

import (
	"fmt"
	"sync"
	"time"

	"raffle/internal/events"
	"raffle/internal/minting"
	"raffle/internal/models"

	"github.com/google/logger"
)

// CampaignService is the raffle campaign state machine. It owns every
// mutable collection of the campaign and serializes all operations,
// mutating and querying alike, behind a single mutex: one writer at a
// time, never an interleaving between two operations.
type CampaignService struct {
	mu sync.Mutex

	config  models.CampaignConfig
	owner   string
	manager string

	minter minting.Minter
	sink   events.Sink
	seeds  SeedSource
	now    func() time.Time

	// finished is set by cancellation only. A campaign whose tickets
	// have all been drawn remains not finished; further draws simply
	// fail on the empty-pool precondition.
	finished bool

	// soldTickets holds purchased, undrawn ticket numbers in purchase
	// order. drawnTickets holds winners in draw order, most recent
	// last. A ticket number appears at most once across the two.
	soldTickets  []int
	drawnTickets []int

	ticketOwner map[int]string
	ticketURI   map[int]string
	purchases   map[string]int
}

// CampaignDeps carries the campaign's collaborators and roles. Owner
// authorizes draws and cancellation; Manager is excluded from
// purchasing. The two usually name the same identity but are tracked
// separately. Zero-value fields fall back to defaults: the wall clock, a
// fresh round counter, a log-only minter, and a log sink.
type CampaignDeps struct {
	Owner   string
	Manager string
	Minter  minting.Minter
	Sink    events.Sink
	Seeds   SeedSource
	Now     func() time.Time
}

// NewCampaignService validates the configuration and creates the
// campaign with all collections empty. On success a CampaignCreated
// notification is emitted.
func NewCampaignService(config models.CampaignConfig, deps CampaignDeps) (*CampaignService, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if deps.Minter == nil {
		deps.Minter = minting.NewLogMinter()
	}
	if deps.Sink == nil {
		deps.Sink = events.NewLogSink()
	}
	if deps.Seeds == nil {
		deps.Seeds = NewRoundCounter(0)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &CampaignService{
		config:       config,
		owner:        deps.Owner,
		manager:      deps.Manager,
		minter:       deps.Minter,
		sink:         deps.Sink,
		seeds:        deps.Seeds,
		now:          deps.Now,
		soldTickets:  make([]int, 0, config.TotalTickets),
		drawnTickets: make([]int, 0, config.TotalWinners),
		ticketOwner:  make(map[int]string),
		ticketURI:    make(map[int]string),
		purchases:    make(map[string]int),
	}

	s.sink.Publish(events.CampaignCreated{
		Finished:      s.finished,
		MintingHandle: config.MintingHandle,
	})
	return s, nil
}

// BuyTicket sells the given ticket number to the buyer. Preconditions
// are checked in a fixed order and the first failure wins: sale window,
// finished flag, existing owner, manager exclusion, per-buyer limit,
// supply. On success the sale is recorded, the minting collaborator is
// invoked, and the receipt id is returned.
//
// If minting fails, every sale-side mutation is rolled back before the
// error is returned, so a retried purchase for the same ticket number
// can succeed.
func (s *CampaignService) BuyTicket(buyer string, ticketNumber int, uri string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.After(s.config.SaleStart) || !now.Before(s.config.SaleEnd) {
		return "", models.ErrSaleNotOpen
	}
	if s.finished {
		return "", models.ErrCampaignFinished
	}
	if _, taken := s.ticketOwner[ticketNumber]; taken {
		return "", models.ErrTicketTaken
	}
	if buyer == s.manager {
		return "", models.ErrManagerPurchase
	}
	if s.purchases[buyer] >= s.config.BuyLimit() {
		return "", models.ErrBuyLimitReached
	}
	if len(s.soldTickets) >= s.config.TotalTickets {
		return "", models.ErrSoldOut
	}

	s.soldTickets = append(s.soldTickets, ticketNumber)
	s.ticketURI[ticketNumber] = uri
	s.ticketOwner[ticketNumber] = buyer
	s.purchases[buyer]++

	receipt, err := s.minter.MintReceipt(uri)
	if err != nil {
		s.soldTickets = s.soldTickets[:len(s.soldTickets)-1]
		delete(s.ticketURI, ticketNumber)
		delete(s.ticketOwner, ticketNumber)
		s.purchases[buyer]--
		return "", fmt.Errorf("mint receipt for ticket %d: %w", ticketNumber, err)
	}

	s.sink.Publish(events.TicketBought{
		TicketNumber: ticketNumber,
		ReceiptID:    receipt,
		URI:          uri,
	})
	return receipt, nil
}

// checkDrawAllowed verifies the shared draw preconditions. Caller must
// hold the lock.
func (s *CampaignService) checkDrawAllowed(caller string) error {
	if caller != s.owner {
		return models.ErrNotOwner
	}
	if s.finished {
		return models.ErrCampaignFinished
	}
	if !s.now().After(s.config.SaleEnd) {
		return models.ErrSaleStillOpen
	}
	if len(s.soldTickets) == 0 {
		return models.ErrNoTicketsSold
	}
	return nil
}

// removeSoldAt takes the ticket at index i out of the undrawn pool and
// appends it to the drawn pool. The removal shifts every later element
// one position earlier, preserving the relative order of the remainder.
// Caller must hold the lock.
func (s *CampaignService) removeSoldAt(i int) (int, error) {
	if i < 0 || i >= len(s.soldTickets) {
		return 0, fmt.Errorf("%w: index %d, pool length %d",
			models.ErrRemovalOutOfRange, i, len(s.soldTickets))
	}
	ticket := s.soldTickets[i]
	copy(s.soldTickets[i:], s.soldTickets[i+1:])
	s.soldTickets = s.soldTickets[:len(s.soldTickets)-1]
	s.drawnTickets = append(s.drawnTickets, ticket)
	return ticket, nil
}

// DrawTicketManual draws the named ticket. Owner-only; the sale window
// must have ended and the undrawn pool must be non-empty.
//
// The scan verifies that exactly one pool entry matches. Uniqueness is
// already enforced at purchase time, so more than one match signals a
// corrupted pool and the draw is rejected rather than taking the first
// occurrence.
func (s *CampaignService) DrawTicketManual(caller string, ticketNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDrawAllowed(caller); err != nil {
		return err
	}

	matchIndex := -1
	matches := 0
	for i, t := range s.soldTickets {
		if t == ticketNumber {
			matchIndex = i
			matches++
		}
	}
	if matches == 0 {
		return models.ErrTicketNotFound
	}
	if matches > 1 {
		return fmt.Errorf("%w: ticket %d appears %d times",
			models.ErrDuplicateTicket, ticketNumber, matches)
	}

	if _, err := s.removeSoldAt(matchIndex); err != nil {
		return err
	}

	logger.Infof("ticket %d drawn manually from index %d", ticketNumber, matchIndex)
	s.sink.Publish(events.TicketDrawn{
		RemovalIndex: matchIndex,
		TicketNumber: ticketNumber,
	})
	return nil
}

// DrawTicketAuto draws a pseudo-randomly selected ticket and returns its
// number. Same preconditions as DrawTicketManual. The index comes from
// the campaign's weak generator applied to the next seed.
func (s *CampaignService) DrawTicketAuto(caller string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDrawAllowed(caller); err != nil {
		return 0, err
	}

	index := drawIndex(s.seeds.Seed(), len(s.soldTickets))
	ticket, err := s.removeSoldAt(index)
	if err != nil {
		return 0, err
	}

	logger.Infof("ticket %d drawn automatically from index %d", ticket, index)
	s.sink.Publish(events.TicketDrawn{
		RemovalIndex: index,
		TicketNumber: ticket,
	})
	return ticket, nil
}

// Cancel finishes the campaign. Owner-only, allowed only while the
// campaign is not finished, strictly before the sale end, and only if no
// ticket has ever been sold. There is no un-cancel.
func (s *CampaignService) Cancel(caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller != s.owner {
		return models.ErrNotOwner
	}
	if s.finished {
		return models.ErrCampaignFinished
	}
	if len(s.soldTickets)+len(s.drawnTickets) > 0 {
		return models.ErrTicketsSold
	}
	if !s.now().Before(s.config.SaleEnd) {
		return models.ErrSaleEnded
	}

	s.finished = true
	logger.Infof("campaign %q cancelled", s.config.Name)
	s.sink.Publish(events.CampaignDeleted{Finished: s.finished})
	return nil
}

// Config returns the immutable campaign configuration.
func (s *CampaignService) Config() models.CampaignConfig {
	return s.config
}

// Finished reports whether the campaign has been cancelled.
func (s *CampaignService) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// CurrentWinner returns the most recently drawn ticket.
func (s *CampaignService) CurrentWinner() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.drawnTickets) == 0 {
		return 0, models.ErrNoWinner
	}
	return s.drawnTickets[len(s.drawnTickets)-1], nil
}

// CurrentWinnerOwner returns the buyer who owns the most recently drawn
// ticket. Ownership persists after a draw, so the lookup cannot miss
// unless no ticket has been drawn.
func (s *CampaignService) CurrentWinnerOwner() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.drawnTickets) == 0 {
		return "", models.ErrNoWinner
	}
	return s.ticketOwner[s.drawnTickets[len(s.drawnTickets)-1]], nil
}

// TotalSold returns the number of tickets ever sold, drawn or not.
func (s *CampaignService) TotalSold() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.soldTickets) + len(s.drawnTickets)
}

// UndrawnCount returns the size of the sold-undrawn pool.
func (s *CampaignService) UndrawnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.soldTickets)
}

// DrawnCount returns the number of winners drawn so far.
func (s *CampaignService) DrawnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drawnTickets)
}

// RemainingTickets returns how many tickets are still unsold.
func (s *CampaignService) RemainingTickets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.TotalTickets - len(s.soldTickets) - len(s.drawnTickets)
}

// BuyerTicketCount returns how many tickets the buyer has purchased.
func (s *CampaignService) BuyerTicketCount(buyer string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purchases[buyer]
}

// BuyerSpend returns the buyer's cumulative spend.
func (s *CampaignService) BuyerSpend(buyer string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(s.purchases[buyer]) * s.config.TicketPrice
}

// TicketURI returns the URI recorded for the ticket at purchase time.
func (s *CampaignService) TicketURI(ticketNumber int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uri, ok := s.ticketURI[ticketNumber]
	if !ok {
		return "", models.ErrUnknownTicket
	}
	return uri, nil
}

// SoldRevenue returns the revenue collected from sold tickets.
func (s *CampaignService) SoldRevenue() uint64 {
	return uint64(s.TotalSold()) * s.config.TicketPrice
}

// TotalRevenue returns the revenue a full sell-out would collect.
func (s *CampaignService) TotalRevenue() uint64 {
	return uint64(s.config.TotalTickets) * s.config.TicketPrice
}

// SoldTickets returns a copy of the sold-undrawn pool in purchase order.
func (s *CampaignService) SoldTickets() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.soldTickets))
	copy(out, s.soldTickets)
	return out
}

// DrawnTickets returns a copy of the drawn pool in draw order.
func (s *CampaignService) DrawnTickets() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.drawnTickets))
	copy(out, s.drawnTickets)
	return out
}

// Status assembles the campaign counters into one consistent snapshot,
// taken under the same lock as every mutation.
func (s *CampaignService) Status() models.CampaignStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	totalSold := len(s.soldTickets) + len(s.drawnTickets)
	return models.CampaignStatus{
		Config:       s.config,
		Finished:     s.finished,
		TotalSold:    totalSold,
		Undrawn:      len(s.soldTickets),
		Drawn:        len(s.drawnTickets),
		Remaining:    s.config.TotalTickets - totalSold,
		SoldRevenue:  uint64(totalSold) * s.config.TicketPrice,
		TotalRevenue: uint64(s.config.TotalTickets) * s.config.TicketPrice,
	}
}
