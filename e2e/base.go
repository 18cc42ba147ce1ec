// Package e2e drives an in-process chat server through real TCP clients.
package e2e

import (
	"context"
	"fmt"
	"line-chat/client"
	"line-chat/observability"
	"line-chat/projection"
	"line-chat/runtime"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const (
	WaitFor = 2 * time.Second
	Tick    = 5 * time.Millisecond
)

type BaseChatSuite struct {
	suite.Suite
	Config   Config
	port     int
	listener *runtime.Listener
	registry *runtime.Registry
	served   chan struct{}
}

// Participant is one connected ChatClient and what it received.
type Participant struct {
	Name       string
	Client     *client.ChatClient
	Transcript *projection.Transcript
}

func (s *BaseChatSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// SetupTest starts a fresh server so client ids start at 1 in every test.
func (s *BaseChatSuite) SetupTest() {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	s.registry = runtime.NewRegistry()
	monitor := observability.NewMonitor()
	broadcaster := runtime.NewBroadcaster(log, s.registry, monitor, nil)
	s.listener = runtime.NewListener(log, s.registry, broadcaster, monitor, nil, 0)
	s.Require().NoError(s.listener.Listen("127.0.0.1", 0))
	s.port = s.listener.Addr().(*net.TCPAddr).Port

	s.served = make(chan struct{})
	go func() {
		defer close(s.served)
		_ = s.listener.Serve()
	}()
}

func (s *BaseChatSuite) TearDownTest() {
	_ = s.listener.Close()
	<-s.served
}

// Step prints a colorized header for the current scenario step.
func (s *BaseChatSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Join connects a new participant and waits for the server to register it,
// so ids follow the order of Join calls.
func (s *BaseChatSuite) Join(name string) *Participant {
	p := newParticipant(name)
	before := s.registry.Len()

	ctx, cancel := context.WithTimeout(context.Background(), WaitFor)
	defer cancel()
	s.Require().NoError(p.Client.Connect(ctx, "127.0.0.1", s.port), "connecting %s", name)
	s.T().Cleanup(func() { _ = p.Client.Close() })

	s.Require().Eventually(func() bool { return s.registry.Len() == before+1 }, WaitFor, Tick)
	return p
}

// Leave closes p and waits for the server to forget it.
func (s *BaseChatSuite) Leave(p *Participant) {
	before := s.registry.Len()
	s.Require().NoError(p.Client.Close())
	s.Require().Eventually(func() bool { return s.registry.Len() == before-1 }, WaitFor, Tick)
}

// Expect waits until p received exactly lines.
func (s *BaseChatSuite) Expect(p *Participant, lines ...string) {
	s.Require().Eventually(func() bool { return p.Transcript.Len() >= len(lines) }, WaitFor, Tick,
		"%s received %v", p.Name, p.Transcript.Lines())
	got := p.Transcript.Lines()
	if s.Config.Verbose {
		s.T().Logf("%s transcript:\n  %s", p.Name, strings.Join(got, "\n  "))
	}
	s.Require().Equal(lines, got, p.Name)
}

// ExpectSilence checks that p received nothing beyond its first count lines.
func (s *BaseChatSuite) ExpectSilence(p *Participant, count int) {
	time.Sleep(100 * time.Millisecond)
	s.Require().Equal(count, p.Transcript.Len(), "%s received %v", p.Name, p.Transcript.Lines())
}

func newParticipant(name string) *Participant {
	transcript := projection.NewTranscript()
	return &Participant{
		Name:       name,
		Client:     client.NewChatClient(logs.GetLoggerFromLevel(slog.LevelDebug), transcript),
		Transcript: transcript,
	}
}
