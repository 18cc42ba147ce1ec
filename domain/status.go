package domain

import (
	"fmt"
	"time"
)

type StatusKind string

const (
	ServerStarted      StatusKind = "SERVER_STARTED"
	ServerStopped      StatusKind = "SERVER_STOPPED"
	ClientConnected    StatusKind = "CLIENT_CONNECTED"
	ClientDisconnected StatusKind = "CLIENT_DISCONNECTED"
	AcceptFailed       StatusKind = "ACCEPT_FAILED"
	DeliveryFailed     StatusKind = "DELIVERY_FAILED"
)

// StatusEvent is a server lifecycle notification meant for display layers.
type StatusEvent struct {
	Kind       StatusKind
	ClientID   ClientID
	RemoteAddr string
	Port       int
	Err        error
	At         time.Time
}

func NewStatusEvent(kind StatusKind) StatusEvent {
	return StatusEvent{Kind: kind, At: time.Now().UTC()}
}

func (e StatusEvent) WithClient(id ClientID, remoteAddr string) StatusEvent {
	e.ClientID = id
	e.RemoteAddr = remoteAddr
	return e
}

func (e StatusEvent) WithErr(err error) StatusEvent {
	e.Err = err
	return e
}

func (e StatusEvent) WithPort(port int) StatusEvent {
	e.Port = port
	return e
}

func (e StatusEvent) String() string {
	switch e.Kind {
	case ServerStarted:
		return fmt.Sprintf("Server runs on port %d.", e.Port)
	case ServerStopped:
		return "Server stopped."
	case ClientConnected:
		return fmt.Sprintf("Client %d connected, IP: %s", e.ClientID, e.RemoteAddr)
	case ClientDisconnected:
		return fmt.Sprintf("Client %d disconnected, IP: %s", e.ClientID, e.RemoteAddr)
	case AcceptFailed:
		return fmt.Sprintf("Accept failed: %v", e.Err)
	case DeliveryFailed:
		return fmt.Sprintf("Delivery to client %d failed: %v", e.ClientID, e.Err)
	default:
		return string(e.Kind)
	}
}
