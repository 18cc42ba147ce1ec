package errors

import "fmt"

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrOnlyCensoredFiles = fmt.Errorf("censored directory contains directories")
	ErrEmptyWords        = fmt.Errorf("no words have been found")

	ErrBind             = fmt.Errorf("unable to bind listener")
	ErrListenerClosed   = fmt.Errorf("listener is closed")
	ErrNotListening     = fmt.Errorf("listener is not bound")
	ErrConnect          = fmt.Errorf("unable to connect to server")
	ErrAlreadyConnected = fmt.Errorf("client is already connected")
	ErrNotConnected     = fmt.Errorf("client is not connected")
	ErrClientClosed     = fmt.Errorf("client connection is closed")
	ErrEmptyMessage     = fmt.Errorf("message is blank")
	ErrInvalidCharacter = fmt.Errorf("replacement must be a single character")
)
