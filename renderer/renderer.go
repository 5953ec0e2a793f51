// Package renderer is the presentation layer: it shows the host's version
// strings and checks the host is alive once at startup.
package renderer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"tabsgo/hostbridge"
)

// FormatVersions renders the sentence written into the info region.
func FormatVersions(v hostbridge.VersionInfo) string {
	return fmt.Sprintf("This app is using Chrome (v%s), Node.js (v%s), and Electron (v%s)", v.Chrome, v.Node, v.Electron)
}

// Renderer drives the info region and the startup ping.
type Renderer struct {
	bridge   hostbridge.HostBridge
	controls *Controls
	log      logrus.FieldLogger
}

// New creates a Renderer. The bridge and the info region are required.
func New(bridge hostbridge.HostBridge, controls *Controls, log logrus.FieldLogger) (*Renderer, error) {
	if c, ok := bridge.(*hostbridge.Client); bridge == nil || (ok && c == nil) {
		return nil, hostbridge.ErrBridgeUnavailable
	}
	if controls == nil || controls.Info == nil {
		return nil, errors.New("renderer needs an info element")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Renderer{
		bridge:   bridge,
		controls: controls,
		log:      log.WithField("component", "renderer"),
	}, nil
}

// Start writes the version sentence, then dispatches the ping. The write has
// completed before the ping is sent.
func (r *Renderer) Start(ctx context.Context) *PingTask {
	r.controls.Info.SetText(FormatVersions(hostbridge.VersionInfo{
		Chrome:   r.bridge.ChromeVersion(),
		Node:     r.bridge.NodeVersion(),
		Electron: r.bridge.HostRuntimeVersion(),
	}))
	return startPing(ctx, r.bridge, r.log)
}

// PingTask is an in-flight ping whose outcome the caller can observe.
type PingTask struct {
	done chan struct{}
	ack  string
	err  error
}

func startPing(ctx context.Context, bridge hostbridge.HostBridge, log logrus.FieldLogger) *PingTask {
	t := &PingTask{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.ack, t.err = bridge.Ping(ctx)
		if t.err != nil {
			log.WithError(t.err).Error("ping failed")
			return
		}
		log.Info(t.ack)
	}()
	return t
}

// Done is closed once the ping has completed.
func (t *PingTask) Done() <-chan struct{} {
	return t.done
}

// Result returns the outcome. Only meaningful after Done is closed.
func (t *PingTask) Result() (string, error) {
	return t.ack, t.err
}

// Wait blocks until the ping completes or ctx is done.
func (t *PingTask) Wait(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		return t.ack, t.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
