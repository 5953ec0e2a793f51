package bridge

import (
	"fmt"

	"tabsgo/hostbridge"
)

// Request and response types on the wire.
const (
	TypeVersions = "Versions"
	TypePing     = "Ping"
	TypePong     = "Pong"
	TypeError    = "Error"
)

// JSON-RPC style error codes.
const (
	CodeParseError     = -32700
	CodeUnknownRequest = -32601
)

// BridgeRequest is the wire format for requests sent to the host.
type BridgeRequest struct {
	ID   string `json:"id,omitempty"` // echoed back in the response
	Type string `json:"type"`         // "Versions", "Ping"
}

// BridgeResponse is the wire format for responses sent by the host.
type BridgeResponse struct {
	ID       string                  `json:"id,omitempty"`
	Type     string                  `json:"type"`               // "Versions", "Pong", "Error"
	Versions *hostbridge.VersionInfo `json:"versions,omitempty"` // set for Versions
	Value    string                  `json:"value,omitempty"`    // acknowledgement token for Pong
	Code     int                     `json:"code,omitempty"`     // error code
	Message  string                  `json:"message,omitempty"`  // error message
}

// HostRouter answers bridge requests. Implemented by the host app.
type HostRouter interface {
	Versions() hostbridge.VersionInfo
	Ping() string
}

// RemoteError is an Error response from the host.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("bridge error (code %d): %s", e.Code, e.Message)
}
