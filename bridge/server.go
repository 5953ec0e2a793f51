package bridge

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// BridgeServer listens on a Unix socket and answers requests via a HostRouter.
type BridgeServer struct {
	router   HostRouter
	log      logrus.FieldLogger
	listener net.Listener
	sockPath string
	wg       sync.WaitGroup

	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
}

// NewBridgeServer creates a BridgeServer bound to sockPath.
func NewBridgeServer(sockPath string, router HostRouter, log logrus.FieldLogger) (*BridgeServer, error) {
	if err := os.MkdirAll(filepath.Dir(sockPath), 0o755); err != nil {
		return nil, err
	}
	// Remove stale socket file.
	_ = os.Remove(sockPath)

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		return nil, err
	}

	return &BridgeServer{
		router:   router,
		log:      log.WithField("component", "bridge"),
		listener: listener,
		sockPath: sockPath,
		conns:    make(map[net.Conn]struct{}),
	}, nil
}

// Addr returns the socket path the server listens on.
func (s *BridgeServer) Addr() string {
	return s.sockPath
}

// Serve accepts connections and handles them. Blocks until the listener is closed.
func (s *BridgeServer) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Listener was closed.
			return err
		}
		if !s.track(conn) {
			_ = conn.Close()
			continue
		}
		go s.handleConn(conn)
	}
}

// Close shuts down the server: closes the listener and every open connection,
// waits for handlers, removes the socket.
func (s *BridgeServer) Close() {
	_ = s.listener.Close()

	s.mu.Lock()
	s.closed = true
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	_ = os.Remove(s.sockPath)
}

// track registers conn unless the server is closing.
func (s *BridgeServer) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *BridgeServer) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *BridgeServer) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer s.untrack(conn)
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4*1024), 1024*1024)

	for scanner.Scan() {
		resp := handleRequest(s.router, scanner.Bytes(), s.log)

		data, err := json.Marshal(resp)
		if err != nil {
			data, _ = json.Marshal(BridgeResponse{
				ID:      resp.ID,
				Type:    TypeError,
				Code:    -1,
				Message: err.Error(),
			})
		}
		data = append(data, '\n')

		if _, err := conn.Write(data); err != nil {
			return
		}
	}
}

// handleRequest decodes one request and routes it. Shared by the socket and
// WebSocket transports.
func handleRequest(router HostRouter, data []byte, log logrus.FieldLogger) BridgeResponse {
	var req BridgeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return BridgeResponse{
			Type:    TypeError,
			Code:    CodeParseError,
			Message: "parse error: " + err.Error(),
		}
	}

	switch req.Type {
	case TypeVersions:
		v := router.Versions()
		return BridgeResponse{
			ID:       req.ID,
			Type:     TypeVersions,
			Versions: &v,
		}

	case TypePing:
		log.WithField("id", req.ID).Debug("ping")
		return BridgeResponse{
			ID:    req.ID,
			Type:  TypePong,
			Value: router.Ping(),
		}

	default:
		log.Warnf("bridge: unknown request type: %s", req.Type)
		return BridgeResponse{
			ID:      req.ID,
			Type:    TypeError,
			Code:    CodeUnknownRequest,
			Message: "unknown request type: " + req.Type,
		}
	}
}
