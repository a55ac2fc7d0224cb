package nats

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// Client is a thin publish-only NATS client. The pipeline emits run
// events; nothing here consumes.
type Client struct {
	conn *nats.Conn
}

// NewClient connects to the NATS server at url.
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	return &Client{conn: conn}, nil
}

// Publish sends a message to the specified subject.
func (c *Client) Publish(subject string, data []byte) error {
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close flushes and closes the NATS connection.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Flush()
		c.conn.Close()
	}
}
