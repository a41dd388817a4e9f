package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestLimiter(capacity, refill float64) (*Limiter, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(capacity, refill)
	l.now = c.now
	return l, c
}

func TestAllow_BurstThenReject(t *testing.T) {
	l, _ := newTestLimiter(3, 1)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestAllow_Refill(t *testing.T) {
	l, c := newTestLimiter(2, 2)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	c.t = c.t.Add(500 * time.Millisecond)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	c.t = c.t.Add(time.Hour)
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestAllow_KeysIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, 0)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 2, l.Len())
}

func TestEvictIdle(t *testing.T) {
	l, c := newTestLimiter(1, 1)
	l.Allow("old")

	c.t = c.t.Add(time.Hour)
	l.evictIdle(c.t)

	assert.Equal(t, 0, l.Len())
}
