package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"line-chat/client"
	"line-chat/errors"
	"line-chat/projection"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const subscriptionBuffer = 64

func main() {
	code, err := run(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run connects once, prints every received line and sends every stdin line
// until stdin ends, the server goes away or the process is signaled.
func run(in io.Reader, out io.Writer) (int, error) {
	_ = godotenv.Load()
	config, err := LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	transcript := projection.NewTranscript()
	received := transcript.Subscribe(subscriptionBuffer)
	chat := client.NewChatClient(log, transcript)
	if err := chat.Connect(ctx, config.ServerHost, config.ServerPort); err != nil {
		return exitRuntime, err
	}

	printed := make(chan struct{})
	go func() {
		defer close(printed)
		printTranscript(out, transcript, received, config.Colours)
	}()
	defer func() {
		_ = chat.Close()
		transcript.Close()
		<-printed
	}()

	inputDone := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			text := scanner.Text()
			err := chat.Send(text)
			if stderrors.Is(err, errors.ErrEmptyMessage) {
				continue
			}
			if err != nil {
				inputDone <- err
				return
			}
			fmt.Fprintln(out, renderSelf(text, config.Colours))
		}
		inputDone <- scanner.Err()
	}()

	select {
	case <-ctx.Done():
		log.Info("Interrupted, closing connection")
	case <-chat.Done():
		log.Info("Server closed the connection")
	case err := <-inputDone:
		if err != nil {
			return exitRuntime, err
		}
	}
	return exitOK, nil
}
