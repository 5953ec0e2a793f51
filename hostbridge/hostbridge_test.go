package hostbridge

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	versions    VersionInfo
	versionsErr error
	ack         string
	pingErr     error
	pings       int
}

func (f *fakeTransport) Versions(context.Context) (VersionInfo, error) {
	return f.versions, f.versionsErr
}

func (f *fakeTransport) Ping(context.Context) (string, error) {
	f.pings++
	return f.ack, f.pingErr
}

func TestConnect_NilTransport(t *testing.T) {
	c, err := Connect(context.Background(), nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrBridgeUnavailable)
}

func TestConnect_Accessors(t *testing.T) {
	ft := &fakeTransport{versions: VersionInfo{Chrome: "1.2.3", Node: "4.5.6", Electron: "7.8.9"}}

	c, err := Connect(context.Background(), ft)
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", c.ChromeVersion())
	assert.Equal(t, "4.5.6", c.NodeVersion())
	assert.Equal(t, "7.8.9", c.HostRuntimeVersion())
	assert.Equal(t, ft.versions, c.Versions())
	assert.Zero(t, ft.pings, "accessors must not round-trip")
}

func TestConnect_VersionsError(t *testing.T) {
	ft := &fakeTransport{versionsErr: fmt.Errorf("dial: %w", ErrHostUnreachable)}

	_, err := Connect(context.Background(), ft)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHostUnreachable)
}

func TestPing_TwiceYieldsToken(t *testing.T) {
	ft := &fakeTransport{ack: AckToken}
	c, err := Connect(context.Background(), ft)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ack, err := c.Ping(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "pong", ack)
	}
	assert.Equal(t, 2, ft.pings)
}

func TestPing_UnexpectedAck(t *testing.T) {
	c, err := Connect(context.Background(), &fakeTransport{ack: "ping"})
	require.NoError(t, err)

	_, err = c.Ping(context.Background())
	var ackErr *UnexpectedAckError
	require.True(t, errors.As(err, &ackErr))
	assert.Equal(t, "ping", ackErr.Got)
}

func TestPing_TransportErrorPropagates(t *testing.T) {
	c, err := Connect(context.Background(), &fakeTransport{pingErr: ErrHostUnreachable})
	require.NoError(t, err)

	_, err = c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrHostUnreachable)
}

func TestPing_NilClient(t *testing.T) {
	var c *Client
	_, err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrBridgeUnavailable)
}
