// Package projection keeps the local view a client builds from the lines
// it receives. It never writes to the network.
package projection

import (
	"line-chat/contract"
	"sync"
)

var _ contract.TranscriptSink = (*Transcript)(nil)

// Transcript is the ordered, append-only list of lines received by one client.
// Subscribers are notified of each append without ever blocking the writer;
// a subscriber that falls behind misses lines but the transcript stays complete.
type Transcript struct {
	mu          sync.Mutex
	lines       []string
	subscribers []chan string
	closed      bool
}

func NewTranscript() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	for _, sub := range t.subscribers {
		select {
		case sub <- line:
		default:
		}
	}
}

// Lines returns a copy of every line received so far.
func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lines...)
}

// Since returns a copy of the lines from index offset on, nil when there are none.
func (t *Transcript) Since(offset int) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(t.lines) {
		return nil
	}
	return append([]string(nil), t.lines[offset:]...)
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines)
}

// Subscribe returns a channel receiving every line appended from now on.
// The channel is closed by Close.
func (t *Transcript) Subscribe(buffer int) <-chan string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan string, buffer)
	if t.closed {
		close(ch)
		return ch
	}
	t.subscribers = append(t.subscribers, ch)
	return ch
}

// Close ends every subscription. Appends after Close are still recorded.
func (t *Transcript) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	for _, sub := range t.subscribers {
		close(sub)
	}
	t.subscribers = nil
}
