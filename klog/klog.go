// Copyright (c) 2025-present deep.rent GmbH (https://deep.rent)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package klog wraps log/slog with the handful of options the kernel's
// diagnostic logging needs. ChronOS logs are off the hot dispatch path by
// design (thread creation at Debug, panicking callbacks at Error, run
// start and stop at Info) so the wrapper stays deliberately small next to the
// teacher's general-purpose logger package, trading the multi-handler
// fan-out and runtime level parsing for a single always-present
// "component" attribute that tags every kernel log line with the
// subsystem that emitted it (table, scheduler, run).
package klog

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the log record encoding.
type Format uint8

const (
	FormatText Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

type config struct {
	level  slog.Level
	format Format
	writer io.Writer
}

// Option configures a logger built by New.
type Option func(*config)

// WithLevel sets the minimum level a record must meet to be emitted.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat selects text or JSON encoding.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithWriter sets the output destination. A nil writer is ignored.
func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.writer = w
		}
	}
}

// New builds a *slog.Logger. Defaults: slog.LevelInfo, text format,
// os.Stderr — chosen over stdout since kernel diagnostics should not
// interleave with anything a host application writes to stdout.
func New(opts ...Option) *slog.Logger {
	c := config{level: slog.LevelInfo, format: FormatText, writer: os.Stderr}
	for _, opt := range opts {
		opt(&c)
	}
	ho := &slog.HandlerOptions{Level: c.level}
	var h slog.Handler
	if c.format == FormatJSON {
		h = slog.NewJSONHandler(c.writer, ho)
	} else {
		h = slog.NewTextHandler(c.writer, ho)
	}
	return slog.New(h)
}

const levelSilent = slog.Level(100)

// Silent returns a logger that discards everything, used as the kernel's
// default when no logger option is supplied.
func Silent() *slog.Logger {
	return New(WithWriter(io.Discard), WithLevel(levelSilent))
}

// Component returns the slog.Attr every kernel log record is tagged with,
// naming the subsystem (e.g. "scheduler", "tick", "gateway") that emitted
// the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
