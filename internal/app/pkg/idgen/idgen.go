package idgen

import (
	"strconv"
	"sync"
	"time"
)

// Generator 进程内单调递增的字符串 ID 生成器
// ID 格式: prefix-毫秒时间戳-序列号，同一毫秒内序列号递增
// 用于 FIFO 队列的 MessageDeduplicationId
type Generator struct {
	mu       sync.Mutex
	prefix   string
	lastTime int64
	sequence int64
	now      func() time.Time
}

// NewGenerator 创建 ID 生成器
func NewGenerator(prefix string) *Generator {
	return &Generator{
		prefix: prefix,
		now:    time.Now,
	}
}

// Next 生成下一个 ID
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.lastTime {
		// 同一毫秒或时钟回拨，沿用上次时间戳并递增序列号
		ms = g.lastTime
		g.sequence++
	} else {
		g.sequence = 0
	}
	g.lastTime = ms

	return g.prefix + "-" + strconv.FormatInt(ms, 10) + "-" + strconv.FormatInt(g.sequence, 10)
}
