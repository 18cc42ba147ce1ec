//go:build tools
// +build tools

// Package tools pins mockgen so `go generate ./contract` works on a fresh checkout.
package line_chat

import (
	_ "go.uber.org/mock/mockgen"
)
