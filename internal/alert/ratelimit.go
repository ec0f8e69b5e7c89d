package alert

import (
	"strings"
	"sync"
	"time"
)

// RateLimiter 报警频率限制器（防止报警疲劳）
// 按 (elderID, alertType) 记录发送时间；同 key 在冷却期内的新报警被抑制。
// 记录只保存在进程内，每次写入前清理超过保留窗口的条目。
// 读取-清理-判定-记录整体在锁内完成，并发请求不会同时通过
type RateLimiter struct {
	mu         sync.Mutex
	history    map[string][]time.Time
	cooldown   time.Duration
	window     time.Duration
	maxPerHour int
	clock      Clock
}

// NewRateLimiter 创建频率限制器
// cooldown: 同类型报警的最小间隔；window: 记录保留窗口；
// maxPerHour: 每个老人窗口内的报警总数上限（0 表示不限制）
func NewRateLimiter(cooldown, window time.Duration, maxPerHour int, clock Clock) *RateLimiter {
	if clock == nil {
		clock = NewRealClock()
	}
	return &RateLimiter{
		history:    make(map[string][]time.Time),
		cooldown:   cooldown,
		window:     window,
		maxPerHour: maxPerHour,
		clock:      clock,
	}
}

// Allow 判定是否允许发送，允许时同时记录本次发送（原子操作）
// 返回 false 表示被频率限制
func (l *RateLimiter) Allow(elderID, alertType string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	key := elderID + ":" + alertType

	// 清理该老人所有 key 的过期记录
	cutoff := now.Add(-l.window)
	prefix := elderID + ":"
	total := 0
	for k, timestamps := range l.history {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		pruned := timestamps[:0]
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				pruned = append(pruned, ts)
			}
		}
		if len(pruned) == 0 {
			delete(l.history, k)
			continue
		}
		l.history[k] = pruned
		total += len(pruned)
	}

	// 同类型冷却期检查
	cooldownCutoff := now.Add(-l.cooldown)
	for _, ts := range l.history[key] {
		if ts.After(cooldownCutoff) {
			return false
		}
	}

	// 每小时总量上限
	if l.maxPerHour > 0 && total >= l.maxPerHour {
		return false
	}

	l.history[key] = append(l.history[key], now)
	return true
}
