package events

import "testing"

func TestCaptureSinkRecordsInOrder(t *testing.T) {
	sink := NewCaptureSink()
	sink.Publish(CampaignCreated{MintingHandle: "mint"})
	sink.Publish(TicketBought{TicketNumber: 3, ReceiptID: "r-1", URI: "uri://3"})
	sink.Publish(TicketDrawn{RemovalIndex: 0, TicketNumber: 3})

	captured := sink.Captured()
	if len(captured) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(captured))
	}
	wantKinds := []string{"CampaignCreated", "TicketBought", "TicketDrawn"}
	for i, kind := range wantKinds {
		if captured[i].Kind() != kind {
			t.Errorf("notification %d: expected kind %s, got %s", i, kind, captured[i].Kind())
		}
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	first := NewCaptureSink()
	second := NewCaptureSink()
	multi := NewMultiSink(first, second)

	multi.Publish(CampaignDeleted{Finished: true})

	for i, sink := range []*CaptureSink{first, second} {
		captured := sink.Captured()
		if len(captured) != 1 {
			t.Fatalf("sink %d: expected 1 notification, got %d", i, len(captured))
		}
		deleted, ok := captured[0].(CampaignDeleted)
		if !ok || !deleted.Finished {
			t.Errorf("sink %d: unexpected notification %+v", i, captured[0])
		}
	}
}
