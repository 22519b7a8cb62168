package stream

import (
	"testing"
	"time"

	"github.com/mfalcone/seizgraph/pkg/pubsub"
	"github.com/mfalcone/seizgraph/pkg/seiz"
)

func TestPublishSubscribeRoundTrip(t *testing.T) {
	addr := "inproc://stream-roundtrip"

	p, err := NewPublisher(addr, "snapshots")
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer p.Close()

	s, err := NewSubscriber(addr, "snapshots")
	if err != nil {
		t.Fatalf("NewSubscriber failed: %v", err)
	}
	defer s.Close()
	if err := s.SetRecvDeadline(2 * time.Second); err != nil {
		t.Fatalf("SetRecvDeadline failed: %v", err)
	}

	// PUB/SUB needs a moment to complete the handshake before the
	// first message is deliverable.
	time.Sleep(100 * time.Millisecond)

	sent := pubsub.Event{
		Scenario: "rumor",
		Model:    "seiz-sm",
		Snapshot: seiz.Snapshot{Step: 12, S: 70, E: 10, I: 15, Z: 5},
	}
	if err := p.Publish(sent); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got, err := s.Recv()
	if err != nil {
		t.Fatalf("Recv failed: %v", err)
	}
	if got.Scenario != "rumor" || got.Model != "seiz-sm" {
		t.Errorf("got event %+v", got)
	}
	if got.Snapshot != sent.Snapshot {
		t.Errorf("snapshot = %+v, want %+v", got.Snapshot, sent.Snapshot)
	}
}

func TestSubscriberTopicFilter(t *testing.T) {
	addr := "inproc://stream-topic-filter"

	p, err := NewPublisher(addr, "run-a")
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer p.Close()

	s, err := NewSubscriber(addr, "run-b")
	if err != nil {
		t.Fatalf("NewSubscriber failed: %v", err)
	}
	defer s.Close()
	if err := s.SetRecvDeadline(300 * time.Millisecond); err != nil {
		t.Fatalf("SetRecvDeadline failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if err := p.Publish(pubsub.Event{Scenario: "a", Model: "seiz"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	// Topic "run-a" must be filtered out by the "run-b" subscription.
	if ev, err := s.Recv(); err == nil {
		t.Errorf("expected recv timeout, got event %+v", ev)
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	p, err := NewPublisher("inproc://stream-no-subs", "snapshots")
	if err != nil {
		t.Fatalf("NewPublisher failed: %v", err)
	}
	defer p.Close()

	// PUB drops messages when nobody listens; must not error.
	if err := p.Publish(pubsub.Event{Scenario: "lonely", Model: "seiz"}); err != nil {
		t.Errorf("Publish with no subscribers failed: %v", err)
	}
}
