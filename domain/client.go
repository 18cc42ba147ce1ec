// Package domain contains core concepts of the chat system.
// This file defines client identity and session lifecycle.
// No runtime, network, or UI logic should be added here.
package domain

import "fmt"

// ClientID is issued once per accepted connection, starting at 1.
type ClientID int64

func (id ClientID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

type SessionState int32

const (
	Connecting SessionState = iota
	Connected
	Disconnected
)

func (s SessionState) String() string {
	switch s {
	case Connecting:
		return "CONNECTING"
	case Connected:
		return "CONNECTED"
	case Disconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}
