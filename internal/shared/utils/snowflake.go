package utils

import (
	"fmt"
	"sync"
	"time"
)

// 对局 id 布局：41 位毫秒时间 | 10 位节点 | 12 位序号。
const (
	idEpoch = int64(1735689600000) // 2025-01-01 UTC

	seqWidth  = 12
	nodeWidth = 10

	maxNodeID = 1<<nodeWidth - 1
	seqMask   = 1<<seqWidth - 1

	// 回拨超过这个幅度直接报错，小幅回拨借用上一毫秒
	maxBackwardMs = 50
)

// IDGen 按节点生成对局 id，同节点内严格递增。
type IDGen struct {
	node int64

	mu   sync.Mutex
	last int64
	seq  int64
	now  func() int64
}

func NewIDGen(node int64) (*IDGen, error) {
	if node < 0 || node > maxNodeID {
		return nil, fmt.Errorf("id node %d not in [0,%d]", node, maxNodeID)
	}
	return &IDGen{node: node, now: func() int64 { return time.Now().UnixMilli() }}, nil
}

func (g *IDGen) Next() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now()
	if ms < g.last {
		if g.last-ms > maxBackwardMs {
			return 0, fmt.Errorf("clock moved backwards by %dms", g.last-ms)
		}
		ms = g.last
	}
	if ms == g.last {
		g.seq = (g.seq + 1) & seqMask
		if g.seq == 0 {
			for ms <= g.last {
				ms = g.now()
			}
		}
	} else {
		g.seq = 0
	}
	g.last = ms
	return pack(ms, g.node, g.seq), nil
}

func pack(ms, node, seq int64) int64 {
	return (ms-idEpoch)<<(nodeWidth+seqWidth) | node<<seqWidth | seq
}

// IDTime 还原 id 的生成时间，排查对局时用。
func IDTime(id int64) time.Time {
	return time.UnixMilli(id>>(nodeWidth+seqWidth) + idEpoch)
}

func IDNode(id int64) int64 {
	return id >> seqWidth & maxNodeID
}

var (
	defaultGenOnce sync.Once
	defaultGen     *IDGen
)

// NextMatchID 节点 0 的进程级生成器，未注入生成器时兜底。
func NextMatchID() (int64, error) {
	defaultGenOnce.Do(func() { defaultGen, _ = NewIDGen(0) })
	return defaultGen.Next()
}
