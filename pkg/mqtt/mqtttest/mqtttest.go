// Package mqtttest provides an in-memory mqtt client.
package mqtttest

import (
	"sync"
	"time"

	mqttlib "github.com/eclipse/paho.mqtt.golang"
)

// Published is a message received by Client.
type Published struct {
	Topic    string
	Qos      byte
	Retained bool
	Payload  []byte
}

// Client implements mqttlib.Client without a broker.
// Connect and Publish fail with Err if set. With Stall set their tokens never complete.
type Client struct {
	mu sync.Mutex

	Connected bool
	Connects  int
	Stall     bool
	Err       error
	Published []Published
}

var _ mqttlib.Client = (*Client)(nil)

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Connected
}

func (c *Client) IsConnectionOpen() bool {
	return c.IsConnected()
}

func (c *Client) Connect() mqttlib.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Connects++
	if !c.Stall && c.Err == nil {
		c.Connected = true
	}
	return c.token()
}

func (c *Client) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Connected = false
}

func (c *Client) Publish(topic string, qos byte, retained bool, payload interface{}) mqttlib.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Stall || c.Err != nil {
		return c.token()
	}

	var b []byte
	switch p := payload.(type) {
	case []byte:
		b = p
	case string:
		b = []byte(p)
	}
	c.Published = append(c.Published, Published{Topic: topic, Qos: qos, Retained: retained, Payload: b})
	return c.token()
}

func (c *Client) Subscribe(string, byte, mqttlib.MessageHandler) mqttlib.Token {
	return c.token()
}

func (c *Client) SubscribeMultiple(map[string]byte, mqttlib.MessageHandler) mqttlib.Token {
	return c.token()
}

func (c *Client) Unsubscribe(...string) mqttlib.Token {
	return c.token()
}

func (c *Client) AddRoute(string, mqttlib.MessageHandler) {}

func (c *Client) OptionsReader() mqttlib.ClientOptionsReader {
	return mqttlib.ClientOptionsReader{}
}

func (c *Client) token() *Token {
	t := &Token{err: c.Err, done: make(chan struct{})}
	if !c.Stall {
		close(t.done)
	}
	return t
}

// Token is the token returned by Client. A stalled token never completes,
// Wait and WaitTimeout return false at once instead of blocking.
type Token struct {
	err  error
	done chan struct{}
}

func (t *Token) Wait() bool {
	return t.WaitTimeout(0)
}

func (t *Token) WaitTimeout(time.Duration) bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Token) Done() <-chan struct{} {
	return t.done
}

func (t *Token) Error() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}
