package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"tabsgo/hostbridge"
)

// Client connects to the bridge Unix socket. It implements hostbridge.Transport.
type Client struct {
	sockPath string
}

var _ hostbridge.Transport = (*Client)(nil)

// NewClient creates a Client for the socket at sockPath.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath}
}

// Versions asks the host for its version strings.
func (c *Client) Versions(ctx context.Context) (hostbridge.VersionInfo, error) {
	resp, err := c.send(ctx, TypeVersions)
	if err != nil {
		return hostbridge.VersionInfo{}, fmt.Errorf("versions request failed: %w", err)
	}
	if resp.Type != TypeVersions || resp.Versions == nil {
		return hostbridge.VersionInfo{}, fmt.Errorf("bridge returned %q without versions", resp.Type)
	}
	return *resp.Versions, nil
}

// Ping sends a liveness request and returns the host's acknowledgement.
func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, TypePing)
	if err != nil {
		return "", fmt.Errorf("ping request failed: %w", err)
	}
	if resp.Type != TypePong {
		return "", fmt.Errorf("bridge answered ping with %q", resp.Type)
	}
	return resp.Value, nil
}

// send opens a connection, writes the request, reads one response, and closes.
func (c *Client) send(ctx context.Context, typ string) (*BridgeResponse, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.sockPath)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to host bridge at %s: %w: %w (is the host running?)", c.sockPath, hostbridge.ErrHostUnreachable, err)
	}
	defer conn.Close()

	// Unblock reads and writes when the caller gives up.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	req := BridgeRequest{ID: uuid.NewString(), Type: typ}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	data = append(data, '\n')

	if _, err := conn.Write(data); err != nil {
		return nil, c.ioError(ctx, "write", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, c.ioError(ctx, "read", err)
		}
		return nil, fmt.Errorf("%w: bridge closed connection", hostbridge.ErrHostUnreachable)
	}

	var resp BridgeResponse
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}
	if resp.Type == TypeError {
		return nil, &RemoteError{Code: resp.Code, Message: resp.Message}
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	return &resp, nil
}

func (c *Client) ioError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s aborted: %w", op, ctxErr)
	}
	return fmt.Errorf("%s failed: %w: %w", op, hostbridge.ErrHostUnreachable, err)
}
