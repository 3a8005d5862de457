package ui

import (
	"fmt"
	"io"
)

// consoleWrapper sends diagnostic console commands to a connected board
type consoleWrapper struct {
	writer io.Writer
}

func (c *consoleWrapper) Debug() {
	fmt.Fprint(c.writer, "D\n")
}

func (c *consoleWrapper) Parameters() {
	fmt.Fprint(c.writer, "P\n")
}

func (c *consoleWrapper) Verbose() {
	fmt.Fprint(c.writer, "V\n")
}
