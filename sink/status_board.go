package sink

import (
	"context"
	"io"
	"line-chat/contract"
	"line-chat/domain"
	"strconv"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
)

var _ contract.StatusSink = (*StatusBoard)(nil)

// StatusBoard keeps every status line the server produced, in arrival order.
type StatusBoard struct {
	mu     sync.Mutex
	events []domain.StatusEvent
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{}
}

func (b *StatusBoard) Consume(_ context.Context, e domain.StatusEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return nil
}

// Lines returns a copy of the rendered status lines.
func (b *StatusBoard) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := make([]string, 0, len(b.events))
	for _, e := range b.events {
		lines = append(lines, e.String())
	}
	return lines
}

// Render prints the board as a borderless table.
func (b *StatusBoard) Render(w io.Writer) {
	b.mu.Lock()
	events := append([]domain.StatusEvent(nil), b.events...)
	b.mu.Unlock()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Time", "Kind", "Status"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, e := range events {
		table.Append([]string{
			strconv.Itoa(i + 1),
			e.At.Format(time.TimeOnly),
			string(e.Kind),
			e.String(),
		})
	}
	table.Render()
}
