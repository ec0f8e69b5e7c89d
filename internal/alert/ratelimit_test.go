package alert

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock 测试用假时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(clock Clock) *RateLimiter {
	return NewRateLimiter(30*time.Minute, time.Hour, 10, clock)
}

func TestRateLimiter_CooldownSuppressesDuplicate(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	assert.True(t, limiter.Allow("elder-1", "fall_detected"))
	assert.False(t, limiter.Allow("elder-1", "fall_detected"))

	// 冷却期内仍被抑制
	clock.Advance(29 * time.Minute)
	assert.False(t, limiter.Allow("elder-1", "fall_detected"))
}

func TestRateLimiter_CooldownExpires(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	assert.True(t, limiter.Allow("elder-1", "fall_detected"))

	clock.Advance(31 * time.Minute)
	assert.True(t, limiter.Allow("elder-1", "fall_detected"))
}

func TestRateLimiter_DifferentTypesIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	assert.True(t, limiter.Allow("elder-1", "fall_detected"))
	assert.True(t, limiter.Allow("elder-1", "no_eating"))
	assert.True(t, limiter.Allow("elder-1", "emergency_button"))
}

func TestRateLimiter_DifferentEldersIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	assert.True(t, limiter.Allow("elder-1", "fall_detected"))
	assert.True(t, limiter.Allow("elder-2", "fall_detected"))
}

func TestRateLimiter_HourlyCap(t *testing.T) {
	clock := newFakeClock()
	limiter := NewRateLimiter(time.Minute, time.Hour, 3, clock)

	// 不同类型绕过冷却，但总量受上限约束
	assert.True(t, limiter.Allow("elder-1", "type_a"))
	assert.True(t, limiter.Allow("elder-1", "type_b"))
	assert.True(t, limiter.Allow("elder-1", "type_c"))
	assert.False(t, limiter.Allow("elder-1", "type_d"))

	// 其他老人不受影响
	assert.True(t, limiter.Allow("elder-2", "type_a"))
}

func TestRateLimiter_HourlyCapReleasesAfterWindow(t *testing.T) {
	clock := newFakeClock()
	limiter := NewRateLimiter(time.Minute, time.Hour, 3, clock)

	limiter.Allow("elder-1", "type_a")
	limiter.Allow("elder-1", "type_b")
	limiter.Allow("elder-1", "type_c")
	assert.False(t, limiter.Allow("elder-1", "type_d"))

	// 窗口过期后记录被清理
	clock.Advance(61 * time.Minute)
	assert.True(t, limiter.Allow("elder-1", "type_d"))
}

func TestRateLimiter_ZeroCapMeansUnlimited(t *testing.T) {
	clock := newFakeClock()
	limiter := NewRateLimiter(time.Minute, time.Hour, 0, clock)

	for i := 0; i < 20; i++ {
		assert.True(t, limiter.Allow("elder-1", string(rune('a'+i))))
	}
}

func TestRateLimiter_ConcurrentRequestsOnlyOnePasses(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	const goroutines = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow("elder-1", "fall_detected") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// 判定和记录是原子操作：并发下恰好一个通过
	assert.Equal(t, 1, allowed)
}
