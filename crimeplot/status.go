// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/crypto/ssh/terminal"
)

// A StatusReporter shows progress on a single, continually updated
// line of a terminal. If the output is not a terminal, progress
// updates are dropped and messages are printed as plain lines.
type StatusReporter struct {
	w      io.Writer
	update chan<- statusUpdate
	done   chan bool
}

type statusUpdate struct {
	progress float64
	message  string
}

// NewStatusReporter returns a StatusReporter that writes to standard
// error.
func NewStatusReporter() *StatusReporter {
	sr := &StatusReporter{w: os.Stderr}
	if os.Getenv("TERM") == "dumb" || !terminal.IsTerminal(int(os.Stderr.Fd())) {
		return sr
	}
	update := make(chan statusUpdate)
	sr.update = update
	go sr.loop(update)
	return sr
}

// Progress sets the status line to msg with frac of the work done.
func (sr *StatusReporter) Progress(msg string, frac float64) {
	if sr.update != nil {
		sr.update <- statusUpdate{message: msg, progress: frac}
	}
}

// Message prints msg above the status line.
func (sr *StatusReporter) Message(msg string) {
	if sr.update == nil {
		fmt.Fprintln(sr.w, msg)
	} else {
		sr.update <- statusUpdate{message: msg, progress: -1}
	}
}

// Stop clears the status line and stops the reporter.
func (sr *StatusReporter) Stop() {
	if sr.update != nil {
		sr.done = make(chan bool)
		close(sr.update)
		<-sr.done
		sr.update = nil
	}
}

func (sr *StatusReporter) loop(updates <-chan statusUpdate) {
	const resetLine = "\r\x1b[2K"
	const wrapOff = "\x1b[?7l"
	const wrapOn = "\x1b[?7h"

	tick := time.NewTicker(time.Second / 4)
	defer tick.Stop()

	t0 := time.Now()
	var progress float64
	var msg string
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				fmt.Fprint(sr.w, resetLine)
				close(sr.done)
				return
			}
			if update.progress == -1 {
				fmt.Fprint(sr.w, resetLine)
				fmt.Fprintln(sr.w, update.message)
				break
			}
			progress, msg = update.progress, update.message

		case <-tick.C:
		}

		fmt.Fprintf(sr.w, "%s%s%s%s", resetLine, wrapOff, statusLine(msg, progress, time.Since(t0)), wrapOn)
	}
}

// statusLine formats a progress line for work that is frac done after
// elapsed time. The time left is estimated from the average rate.
func statusLine(msg string, frac float64, elapsed time.Duration) string {
	eta := "ETA unknown"
	if frac > 0 {
		left := time.Duration(float64(elapsed) * (1 - frac) / frac)
		left -= left % time.Second
		if left < 0 {
			left = 0
		}
		eta = "ETA " + left.String()
	}
	return fmt.Sprintf("[%3.0f%%] %s, %s", 100*frac, msg, eta)
}
