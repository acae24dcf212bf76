// Package mqtt publishes messages to an mqtt broker.
package mqtt

import (
	"errors"
	"fmt"
	"time"

	mqttlib "github.com/eclipse/paho.mqtt.golang"
	"github.com/womat/debug"
)

const (
	// quiesce is the specified number of milliseconds to wait for existing work to be completed.
	quiesce = 250
	// timeout limits connecting and publishing.
	timeout = 5 * time.Second
)

var ErrTimeout = errors.New("mqtt broker did not respond in time")

// Handler contains the handler of the mqtt broker.
type Handler struct {
	handler mqttlib.Client
}

// Message contains the properties of the mqtt message.
type Message struct {
	Topic    string
	Payload  []byte
	Qos      byte
	Retained bool
}

// New generate a new mqtt broker client.
func New() *Handler {
	return &Handler{}
}

// NewWithClient returns a handler publishing through an already created client.
func NewWithClient(c mqttlib.Client) *Handler {
	return &Handler{handler: c}
}

// Connect connects to the mqtt broker.
// If no broker is defined, no mqtt message are send.
func (m *Handler) Connect(broker string) error {
	if broker == "" {
		return nil
	}

	opts := mqttlib.NewClientOptions().
		AddBroker(broker).
		SetClientID(fmt.Sprintf("stmcraft-%d", time.Now().UnixNano())).
		SetConnectTimeout(timeout)
	m.handler = mqttlib.NewClient(opts)
	return m.ReConnect()
}

// ReConnect reconnects to the defined mqtt broker.
func (m *Handler) ReConnect() error {
	return wait(m.handler.Connect())
}

// Enabled reports whether a broker is connected or configured.
func (m *Handler) Enabled() bool {
	return m.handler != nil
}

// Disconnect will end the connection to the broker.
func (m *Handler) Disconnect() error {
	if m.handler == nil {
		return nil
	}

	m.handler.Disconnect(quiesce)
	return nil
}

// Publish sends the message and waits for the broker to acknowledge it.
// If no handler or topic is defined, the message will be ignored.
func (m *Handler) Publish(msg Message) error {
	if m.handler == nil || msg.Topic == "" {
		return nil
	}

	if !m.handler.IsConnected() {
		debug.DebugLog.Printf("mqtt broker isn't connected, reconnect it")

		if err := m.ReConnect(); err != nil {
			return fmt.Errorf("can't reconnect to mqtt broker: %w", err)
		}
	}

	debug.DebugLog.Printf("publishing %v bytes to topic %v", len(msg.Payload), msg.Topic)
	if err := wait(m.handler.Publish(msg.Topic, msg.Qos, msg.Retained, msg.Payload)); err != nil {
		return fmt.Errorf("publishing topic %v: %w", msg.Topic, err)
	}

	return nil
}

func wait(t mqttlib.Token) error {
	if !t.WaitTimeout(timeout) {
		return ErrTimeout
	}
	return t.Error()
}
