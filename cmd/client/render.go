package main

import (
	"strings"

	"github.com/gookit/color"
)

const selfPrefix = "Me"

// render colours the "Client <id>" prefix of a received line.
func render(line string, colours bool) string {
	prefix, text, found := strings.Cut(line, ": ")
	if !colours || !found {
		return line
	}
	return color.New(color.FgCyan, color.OpBold).Render(prefix) + ": " + text
}

func renderSelf(text string, colours bool) string {
	if !colours {
		return selfPrefix + ": " + text
	}
	return color.New(color.FgGreen).Render(selfPrefix) + ": " + text
}
