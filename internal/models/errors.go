package models

import "errors"

// Validation errors are fatal to construction: the campaign never comes
// into existence.
var ErrInvalidConfig = errors.New("invalid campaign configuration")

// Precondition errors. Every rejection is synchronous and leaves no
// partial mutation behind; the caller may retry with different arguments
// or after time passes.
var (
	ErrSaleNotOpen      = errors.New("current time is outside the sale window")
	ErrCampaignFinished = errors.New("campaign is finished")
	ErrTicketTaken      = errors.New("ticket already has an owner")
	ErrManagerPurchase  = errors.New("the manager may not purchase tickets")
	ErrBuyLimitReached  = errors.New("buyer has reached the spend limit")
	ErrSoldOut          = errors.New("all tickets have been sold")
	ErrNotOwner         = errors.New("caller is not the campaign owner")
	ErrSaleStillOpen    = errors.New("sale window has not ended")
	ErrNoTicketsSold    = errors.New("no undrawn tickets available")
	ErrTicketNotFound   = errors.New("ticket not found in the undrawn pool")
	ErrTicketsSold      = errors.New("tickets have already been sold")
	ErrSaleEnded        = errors.New("sale window has already ended")
	ErrNoWinner         = errors.New("no ticket has been drawn yet")
	ErrUnknownTicket    = errors.New("ticket has never been sold")
)

// Invariant-violation errors signal a corrupted internal state. They are
// unreachable under correct operation; when triggered the operation
// aborts rather than attempting recovery.
var (
	ErrDuplicateTicket   = errors.New("undrawn pool contains a duplicate ticket")
	ErrRemovalOutOfRange = errors.New("removal index outside the undrawn pool")
)
