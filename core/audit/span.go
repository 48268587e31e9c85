// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"encoding/base64"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Span represents an HTTP exchange in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	Destination TrafficDestination
	RequestID   string
	Method      string
	URL         string
	StatusCode  int
	Error       error
	Size        int
	Cached      bool
}

// TrafficDestination describes the logical destination of an HTTP exchange.
type TrafficDestination string

// Constants for traffic destinations.
const (
	ToUser    TrafficDestination = "user"
	ToBackend TrafficDestination = "backend"
)

// ServerTimingName returns the metric name used in the Server-Timing header.
//
// base64 without trailing '=' keeps the name a valid token.
func (span Span) ServerTimingName() string {
	return string(span.Destination) + "$" + span.Method + "$" + base64.RawURLEncoding.EncodeToString([]byte(span.URL))
}

// Begin starts timing the span and registers a Server-Timing metric if the
// context carries a timing header.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http."+string(span.Destination))
	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(span.ServerTimingName())
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixNano())/float64(time.Millisecond), 'f', -1, 64),
		}
	}

	return ctx
}

// End stops timing the span. Calling it more than once is a no-op.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()

	if span.metric != nil {
		span.metric.Duration = span.duration
	}

	span.task = nil
}

// Duration reports how long the span ran. Zero until End is called.
func (span Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span as a single debug event.
//
// Failed backend exchanges are raised to warn so they show at the default level.
func (span Span) Log() {
	var event *zerolog.Event

	if span.Error != nil && span.Destination == ToBackend {
		event = log.Warn()
	} else {
		event = log.Debug()
	}

	event.Str("sys", "http")
	event.Str("method", span.Method)
	event.Str("url", span.URL)
	event.Int("status_code", span.StatusCode)
	event.Str("len", humanizeSize(span.Size))
	event.Dur("dur", span.duration)
	event.Str("destination", string(span.Destination))
	event.Str("request_id", span.RequestID)

	if span.Cached {
		event.Bool("cached", true)
	}

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	switch {
	case x < bytesInKB:
		return strconv.Itoa(x)
	case x < bytesInMB:
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	case x < bytesInGB:
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	default:
		return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
	}
}
