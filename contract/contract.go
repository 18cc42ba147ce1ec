//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"line-chat/domain"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Connection is one duplex line stream.
// ReadLine is called by a single reader; WriteLine may be called concurrently
// and every line is written as a whole.
type Connection interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// RegistryEntry is one element of a registry snapshot.
type RegistryEntry struct {
	ID   domain.ClientID
	Conn Connection
}

type IRegistry interface {
	Add(id domain.ClientID, conn Connection)
	Remove(id domain.ClientID)
	Snapshot() []RegistryEntry
	Len() int
}

type IBroadcaster interface {
	// Broadcast returns the number of recipients the line was written to.
	Broadcast(msg domain.Message) int
}

type StatusSink interface {
	Consume(ctx context.Context, e domain.StatusEvent) error
}

type TranscriptSink interface {
	Append(line string)
}
