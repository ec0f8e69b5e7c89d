package alert

import "time"

// Clock 时钟接口（测试中注入假时钟）
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// NewRealClock 返回系统时钟
func NewRealClock() Clock {
	return realClock{}
}
