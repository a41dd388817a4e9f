package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu      sync.Mutex
	topic   string
	batches [][]AggregatedLogEntry
	err     error
}

func (p *capturePublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
	p.batches = append(p.batches, payload.([]AggregatedLogEntry))
	return p.err
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info")

	l.Debug("hidden")
	l.With(String("component", "test")).Error("section failed",
		String("section", "news"),
		Int("attempt", 1),
		Float64("ratio", 0.5),
		Error(errors.New("boom")),
	)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var got map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &got))
	assert.Equal(t, "error", got["level"])
	assert.Equal(t, "section failed", got["message"])
	assert.Equal(t, "test", got["component"])
	assert.Equal(t, "news", got["section"])
	assert.Equal(t, 0.5, got["ratio"])
	assert.Equal(t, "boom", got["error"])
}

func TestCollector_DeduplicatesAndFlushesOnClose(t *testing.T) {
	pub := &capturePublisher{}
	c := NewLogCollector(&CollectionConfig{TimeInterval: time.Hour, CountThreshold: 10, Topic: "findoc.logs", Publisher: pub})

	c.AddLog("error", "fetch failed", map[string]interface{}{"symbol": "AAPL"}, "a.go:1")
	c.AddLog("error", "fetch failed", map[string]interface{}{"symbol": "AAPL"}, "a.go:1")
	c.AddLog("error", "fetch failed", map[string]interface{}{"symbol": "MSFT"}, "a.go:1")
	assert.Equal(t, 2, c.Pending())

	c.Close()

	require.Len(t, pub.batches, 1)
	assert.Equal(t, "findoc.logs", pub.topic)
	counts := map[any]int{}
	for _, e := range pub.batches[0] {
		counts[e.Fields["symbol"]] = e.Count
	}
	assert.Equal(t, map[any]int{"AAPL": 2, "MSFT": 1}, counts)
}

func TestCollector_ThresholdFlush(t *testing.T) {
	pub := &capturePublisher{}
	var failed []error
	var mu sync.Mutex
	pub.err = errors.New("broker down")
	c := NewLogCollector(&CollectionConfig{
		TimeInterval:   time.Hour,
		CountThreshold: 2,
		Publisher:      pub,
		OnPublishError: func(err error) {
			mu.Lock()
			failed = append(failed, err)
			mu.Unlock()
		},
	})

	c.AddLog("error", "a", nil, "x")
	c.AddLog("error", "b", nil, "x")
	assert.Equal(t, 0, c.Pending())
	c.Close()

	require.Len(t, pub.batches, 1)
	assert.Len(t, pub.batches[0], 2)
	mu.Lock()
	assert.Len(t, failed, 1)
	mu.Unlock()
}

func TestLogger_ErrorGoesToCollector(t *testing.T) {
	pub := &capturePublisher{}
	l := NewWithWriter(&bytes.Buffer{}, "info")
	child := l.With(String("component", "yahoo"))
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, Publisher: pub})

	child.Error("upstream failed", String("symbol", "AAPL"))
	child.Warn("not collected")
	l.RemoveCollector()

	require.Len(t, pub.batches, 1)
	require.Len(t, pub.batches[0], 1)
	assert.Equal(t, "upstream failed", pub.batches[0][0].Message)
	assert.Contains(t, pub.batches[0][0].Caller, "logger_test.go")
}
