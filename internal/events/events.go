package events

import (
	"sync"

	"github.com/google/logger"
)

// Notification is an observable event emitted by a campaign, exactly once
// per triggering operation, after the state mutation it reports.
type Notification interface {
	Kind() string
}

// CampaignCreated is emitted once when a campaign is constructed.
type CampaignCreated struct {
	Finished      bool   `json:"finished"`
	MintingHandle string `json:"mintingHandle"`
}

// TicketBought is emitted after a successful purchase.
type TicketBought struct {
	TicketNumber int    `json:"ticketNumber"`
	ReceiptID    string `json:"receiptId"`
	URI          string `json:"uri"`
}

// TicketDrawn is emitted after a successful draw. RemovalIndex is the
// position the ticket occupied in the undrawn pool at the time of
// removal.
type TicketDrawn struct {
	RemovalIndex int `json:"removalIndex"`
	TicketNumber int `json:"ticketNumber"`
}

// CampaignDeleted is emitted when a campaign is cancelled.
type CampaignDeleted struct {
	Finished bool `json:"finished"`
}

func (CampaignCreated) Kind() string { return "CampaignCreated" }
func (TicketBought) Kind() string    { return "TicketBought" }
func (TicketDrawn) Kind() string     { return "TicketDrawn" }
func (CampaignDeleted) Kind() string { return "CampaignDeleted" }

// Sink receives campaign notifications. Sinks are observers: they must
// not fail the operation that emitted the notification.
type Sink interface {
	Publish(n Notification)
}

// LogSink writes every notification to the process log.
type LogSink struct{}

func NewLogSink() *LogSink { return &LogSink{} }

func (s *LogSink) Publish(n Notification) {
	logger.Infof("notification %s: %+v", n.Kind(), n)
}

// MultiSink fans a notification out to several sinks in order.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (s *MultiSink) Publish(n Notification) {
	for _, sink := range s.sinks {
		sink.Publish(n)
	}
}

// CaptureSink records notifications in memory, for tests and inspection.
type CaptureSink struct {
	mu       sync.Mutex
	captured []Notification
}

func NewCaptureSink() *CaptureSink { return &CaptureSink{} }

func (s *CaptureSink) Publish(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.captured = append(s.captured, n)
}

// Captured returns a copy of the notifications received so far.
func (s *CaptureSink) Captured() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.captured))
	copy(out, s.captured)
	return out
}
