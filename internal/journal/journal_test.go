package journal

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"raffle/internal/events"

	"github.com/google/logger"
)

func TestMain(m *testing.M) {
	defer logger.Init("journal-test", false, false, io.Discard).Close()
	os.Exit(m.Run())
}

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return j
}

func TestJournalAppendsInEmissionOrder(t *testing.T) {
	j := openTestJournal(t)

	j.Publish(events.CampaignCreated{MintingHandle: "mint-service"})
	j.Publish(events.TicketBought{TicketNumber: 4, ReceiptID: "r-1", URI: "uri://4"})
	j.Publish(events.TicketDrawn{RemovalIndex: 0, TicketNumber: 4})

	records, err := j.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	wantKinds := []string{"CampaignCreated", "TicketBought", "TicketDrawn"}
	for i, kind := range wantKinds {
		if records[i].Kind != kind {
			t.Errorf("record %d: expected kind %s, got %s", i, kind, records[i].Kind)
		}
	}

	var bought events.TicketBought
	if err := json.Unmarshal([]byte(records[1].Payload), &bought); err != nil {
		t.Fatalf("decode TicketBought payload: %v", err)
	}
	if bought.TicketNumber != 4 || bought.ReceiptID != "r-1" || bought.URI != "uri://4" {
		t.Errorf("unexpected TicketBought payload: %+v", bought)
	}
}

func TestJournalRecordsByKind(t *testing.T) {
	j := openTestJournal(t)

	j.Publish(events.TicketBought{TicketNumber: 1, ReceiptID: "r-1", URI: "uri://1"})
	j.Publish(events.TicketBought{TicketNumber: 2, ReceiptID: "r-2", URI: "uri://2"})
	j.Publish(events.TicketDrawn{RemovalIndex: 1, TicketNumber: 2})

	records, err := j.RecordsByKind("TicketBought")
	if err != nil {
		t.Fatalf("RecordsByKind failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 TicketBought records, got %d", len(records))
	}
}
