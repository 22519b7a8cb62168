// Package stream publishes simulation snapshots over nanomsg PUB/SUB so
// external dashboards can watch a run live.
//
// Wire format: each message is the topic, a single space, then the JSON
// encoded event. SUB sockets filter on the topic prefix.
package stream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"
	"go.nanomsg.org/mangos/v3/protocol/sub"

	// Register all transports
	_ "go.nanomsg.org/mangos/v3/transport/all"

	"github.com/mfalcone/seizgraph/pkg/pubsub"
)

// Publisher streams events on a PUB socket.
type Publisher struct {
	sock  mangos.Socket
	topic []byte
}

// NewPublisher creates a PUB socket bound to addr, e.g.
// "tcp://*:9400" or "inproc://run" in tests.
func NewPublisher(addr, topic string) (*Publisher, error) {
	sock, err := pub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create PUB socket: %w", err)
	}
	if err := sock.SetOption(mangos.OptionSendDeadline, 2*time.Second); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to set send deadline: %w", err)
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to bind PUB socket: %w", err)
	}
	return &Publisher{sock: sock, topic: []byte(topic)}, nil
}

// Publish sends one event to all connected subscribers.
func (p *Publisher) Publish(event pubsub.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	frame := make([]byte, 0, len(p.topic)+1+len(payload))
	frame = append(frame, p.topic...)
	frame = append(frame, ' ')
	frame = append(frame, payload...)

	if err := p.sock.Send(frame); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close closes the underlying socket.
func (p *Publisher) Close() error {
	return p.sock.Close()
}

// Subscriber receives events published by a Publisher.
type Subscriber struct {
	sock  mangos.Socket
	topic []byte
}

// NewSubscriber dials addr and subscribes to the given topic prefix.
// An empty topic receives everything.
func NewSubscriber(addr, topic string) (*Subscriber, error) {
	sock, err := sub.NewSocket()
	if err != nil {
		return nil, fmt.Errorf("failed to create SUB socket: %w", err)
	}
	if err := sock.SetOption(mangos.OptionSubscribe, []byte(topic)); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	if err := sock.Dial(addr); err != nil {
		sock.Close()
		return nil, fmt.Errorf("failed to connect SUB socket: %w", err)
	}
	return &Subscriber{sock: sock, topic: []byte(topic)}, nil
}

// SetRecvDeadline bounds how long Recv blocks.
func (s *Subscriber) SetRecvDeadline(d time.Duration) error {
	return s.sock.SetOption(mangos.OptionRecvDeadline, d)
}

// Recv blocks until the next event arrives and decodes it.
func (s *Subscriber) Recv() (pubsub.Event, error) {
	var event pubsub.Event

	frame, err := s.sock.Recv()
	if err != nil {
		return event, fmt.Errorf("failed to receive event: %w", err)
	}

	idx := bytes.IndexByte(frame, ' ')
	if idx < 0 {
		return event, fmt.Errorf("malformed frame: no topic separator")
	}

	if err := json.Unmarshal(frame[idx+1:], &event); err != nil {
		return event, fmt.Errorf("failed to decode event: %w", err)
	}
	return event, nil
}

// Close closes the underlying socket.
func (s *Subscriber) Close() error {
	return s.sock.Close()
}
