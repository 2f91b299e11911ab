// Package notify broadcasts a "model-ready" event once initialization
// finishes successfully, so downstream analysis engines waiting on a PUB
// socket can start without polling a shared filesystem location.
package notify

import (
	"encoding/json"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/pub"
	_ "go.nanomsg.org/mangos/v3/transport/all"
)

// ModelReady is the payload published once a model finishes construction
// and validation.
type ModelReady struct {
	RunID      string `json:"run_id"`
	ModelName  string `json:"model_name"`
	GateCount  int    `json:"gate_count"`
	TopEvents  int    `json:"top_events"`
	FaultTrees int    `json:"fault_trees"`
}

// Publisher wraps a PUB socket that broadcasts ModelReady events. A nil
// *Publisher is valid and publishes nothing, matching this package's
// "notification is optional" stance.
type Publisher struct {
	sock mangos.Socket
}

// Listen opens a PUB socket bound to addr. Pass "" to disable
// notification entirely.
func Listen(addr string) (*Publisher, error) {
	if addr == "" {
		return nil, nil
	}
	sock, err := pub.NewSocket()
	if err != nil {
		return nil, err
	}
	if err := sock.SetOption(mangos.OptionSendDeadline, 500*time.Millisecond); err != nil {
		sock.Close()
		return nil, err
	}
	if err := sock.Listen(addr); err != nil {
		sock.Close()
		return nil, err
	}
	return &Publisher{sock: sock}, nil
}

// Publish sends a ModelReady event. A nil Publisher is a silent no-op.
func (p *Publisher) Publish(ev ModelReady) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.sock.Send(data)
}

// Close shuts down the socket. A nil Publisher is a silent no-op.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.sock.Close()
}
