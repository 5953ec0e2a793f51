// Package hostbridge is the typed surface the presentation layer uses to read
// host runtime metadata and to check that the host process is alive.
//
// A Client is built from a Transport. Construction fetches the capability
// object (the version strings) once; the accessors then answer synchronously.
// Ping is the only operation that suspends the caller.
package hostbridge

import (
	"context"
	"fmt"
)

// AckToken is the value a successful Ping resolves to.
const AckToken = "pong"

// VersionInfo holds the version strings supplied by the host.
type VersionInfo struct {
	Chrome   string `json:"chrome" mapstructure:"chrome" validate:"required"`
	Node     string `json:"node" mapstructure:"node" validate:"required"`
	Electron string `json:"electron" mapstructure:"electron" validate:"required"`
}

// Transport carries requests to the host process.
type Transport interface {
	Versions(ctx context.Context) (VersionInfo, error)
	Ping(ctx context.Context) (string, error)
}

// HostBridge is what the presentation layer consumes.
type HostBridge interface {
	ChromeVersion() string
	NodeVersion() string
	HostRuntimeVersion() string
	Ping(ctx context.Context) (string, error)
}

// Client implements HostBridge over a Transport.
type Client struct {
	versions  VersionInfo
	transport Transport
}

var _ HostBridge = (*Client)(nil)

// Connect asks the host for its capability object and returns a Client bound to it.
// A nil transport means the bridge was never injected.
func Connect(ctx context.Context, t Transport) (*Client, error) {
	if t == nil {
		return nil, ErrBridgeUnavailable
	}
	v, err := t.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host versions: %w", err)
	}
	return &Client{versions: v, transport: t}, nil
}

// ChromeVersion returns the browser-engine version of the embedding runtime.
func (c *Client) ChromeVersion() string { return c.versions.Chrome }

// NodeVersion returns the embedded script-runtime version.
func (c *Client) NodeVersion() string { return c.versions.Node }

// HostRuntimeVersion returns the application-shell version.
func (c *Client) HostRuntimeVersion() string { return c.versions.Electron }

// Versions returns all three version strings.
func (c *Client) Versions() VersionInfo { return c.versions }

// Ping performs one liveness round trip. It blocks until the host answers or
// ctx is done. Any answer other than AckToken is an error.
func (c *Client) Ping(ctx context.Context) (string, error) {
	if c == nil || c.transport == nil {
		return "", ErrBridgeUnavailable
	}
	ack, err := c.transport.Ping(ctx)
	if err != nil {
		return "", err
	}
	if ack != AckToken {
		return "", &UnexpectedAckError{Got: ack}
	}
	return ack, nil
}
