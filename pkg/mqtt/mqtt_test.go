package mqtt

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/womat/debug"
	"stmcraft/pkg/mqtt/mqtttest"
)

func TestMain(m *testing.M) {
	debug.SetDebug(os.Stderr, debug.Standard)
	os.Exit(m.Run())
}

func TestHandlerWithoutBroker(t *testing.T) {
	h := New()

	if err := h.Connect(""); err != nil {
		t.Fatalf("Connect(\"\") error = %v", err)
	}
	if h.Enabled() {
		t.Error("Enabled() = true without broker")
	}
	if err := h.Publish(Message{Topic: "stmcraft/leds", Payload: []byte("[]")}); err != nil {
		t.Errorf("Publish() error = %v, want nil when disabled", err)
	}
	if err := h.Disconnect(); err != nil {
		t.Errorf("Disconnect() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestPublish - Delivery, reconnect and timeout
// ---------------------------------------------------------------------------

func TestPublish(t *testing.T) {
	t.Parallel()

	refused := errors.New("connection refused")
	msg := Message{Topic: "stmcraft/leds", Payload: []byte(`[{"green":1,"red":2,"blue":3}]`), Retained: true}

	tests := []struct {
		name          string
		client        *mqtttest.Client
		msg           Message
		wantErr       error
		wantConnects  int
		wantPublished int
	}{
		{
			name:          "connected",
			client:        &mqtttest.Client{Connected: true},
			msg:           msg,
			wantPublished: 1,
		},
		{
			name:          "reconnects first",
			client:        &mqtttest.Client{},
			msg:           msg,
			wantConnects:  1,
			wantPublished: 1,
		},
		{
			name:         "reconnect fails",
			client:       &mqtttest.Client{Err: refused},
			msg:          msg,
			wantErr:      refused,
			wantConnects: 1,
		},
		{
			name:    "broker never answers",
			client:  &mqtttest.Client{Connected: true, Stall: true},
			msg:     msg,
			wantErr: ErrTimeout,
		},
		{
			name:   "no topic",
			client: &mqtttest.Client{Connected: true},
			msg:    Message{Payload: []byte("[]")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewWithClient(tt.client)
			if !h.Enabled() {
				t.Fatal("Enabled() = false with client")
			}

			err := h.Publish(tt.msg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Publish() error = %v, want %v", err, tt.wantErr)
			}
			if tt.client.Connects != tt.wantConnects {
				t.Errorf("Connects = %d, want %d", tt.client.Connects, tt.wantConnects)
			}
			if len(tt.client.Published) != tt.wantPublished {
				t.Fatalf("Published = %+v, want %d messages", tt.client.Published, tt.wantPublished)
			}
			if tt.wantPublished == 0 {
				return
			}

			got := tt.client.Published[0]
			if got.Topic != tt.msg.Topic || got.Qos != tt.msg.Qos || got.Retained != tt.msg.Retained || !bytes.Equal(got.Payload, tt.msg.Payload) {
				t.Errorf("Published[0] = %+v, want %+v", got, tt.msg)
			}
		})
	}
}

func TestDisconnect(t *testing.T) {
	t.Parallel()

	c := &mqtttest.Client{Connected: true}
	if err := NewWithClient(c).Disconnect(); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}
	if c.IsConnected() {
		t.Error("client still connected after Disconnect()")
	}
}
