package main

import (
	"fmt"
	"io"
	"line-chat/projection"
)

// printTranscript prints every transcript line exactly once, in order.
// wake only signals that lines arrived: dropped notifications are caught up
// from the transcript itself, and a final pass runs once wake is closed.
func printTranscript(out io.Writer, transcript *projection.Transcript, wake <-chan string, colours bool) {
	printed := 0
	flush := func() {
		for _, line := range transcript.Since(printed) {
			fmt.Fprintln(out, render(line, colours))
			printed++
		}
	}
	for range wake {
		flush()
	}
	flush()
}
