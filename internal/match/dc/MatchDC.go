package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"GoldenAges/internal/match/app/port"
	"GoldenAges/internal/match/entity"
	"GoldenAges/modules/kit/logx"
)

const (
	defaultFlushEvery = 3000 * time.Millisecond
	retryBackoff      = 200 * time.Millisecond
	saveTimeout       = 5 * time.Second
)

var errRepoNil = errors.New("match repository is nil")

// MatchDC 单个对局的写回缓存：actor 只负责生成快照，落库在独立协程里串行完成，
// 只保留最新版本的快照。
type MatchDC struct {
	repo       port.MatchRepository
	results    port.ResultRepository
	entity     *entity.Match
	flushEvery time.Duration
	log        logx.Logger

	mu      sync.Mutex
	pending *entity.MatchPersistSnapshot
	version uint64
	saved   uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

type Option func(*MatchDC)

func WithFlushEvery(d time.Duration) Option {
	return func(dc *MatchDC) {
		if d > 0 {
			dc.flushEvery = d
		}
	}
}

func WithResultRepository(r port.ResultRepository) Option {
	return func(dc *MatchDC) { dc.results = r }
}

func WithLogger(l logx.Logger) Option {
	return func(dc *MatchDC) {
		if l != nil {
			dc.log = l
		}
	}
}

func NewMatchDC(repo port.MatchRepository, opts ...Option) *MatchDC {
	d := &MatchDC{
		repo:       repo,
		flushEvery: defaultFlushEvery,
		log:        logx.Nop(),
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, o := range opts {
		o(d)
	}
	go d.writerLoop()
	return d
}

func (d *MatchDC) Load(ctx context.Context, id entity.MatchID) (*entity.Match, error) {
	if d.repo == nil {
		return nil, errRepoNil
	}
	m, err := d.repo.LoadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.version = m.LoadedVersion()
	d.saved = m.LoadedVersion()
	d.mu.Unlock()
	d.entity = m
	return m, nil
}

// Attach 挂上新建的对局，下一次 Flush 会写入首份快照。
func (d *MatchDC) Attach(m *entity.Match) {
	d.entity = m
}

func (d *MatchDC) Flush(ctx context.Context) error {
	if !d.IsDirty() {
		return nil
	}
	if d.repo == nil {
		return errRepoNil
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return nil
	}
	d.enqueueLatest(s)
	return nil
}

func (d *MatchDC) IsDirty() bool {
	if d.entity == nil {
		return false
	}
	return d.entity.Dirty()
}

func (d *MatchDC) Entity() *entity.Match {
	return d.entity
}

func (d *MatchDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// SavedVersion 已成功落库的最大快照版本。
func (d *MatchDC) SavedVersion() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saved
}

// Close 刷出最后一份快照并等待写库协程退出。
func (d *MatchDC) Close(ctx context.Context) error {
	_ = d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *MatchDC) buildNextSnapshot() (*entity.MatchPersistSnapshot, bool) {
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.entity.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *MatchDC) enqueueLatest(s *entity.MatchPersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.replacePendingLocked(s)
	d.mu.Unlock()
	d.signal()
}

// replacePendingLocked 新快照覆盖旧快照，但旧快照上还没写出去的名次要继承下来。
func (d *MatchDC) replacePendingLocked(s *entity.MatchPersistSnapshot) {
	if d.pending != nil && d.pending.Version >= s.Version {
		if len(d.pending.Results) == 0 && len(s.Results) > 0 {
			d.pending.Results = s.Results
		}
		return
	}
	if d.pending != nil && len(s.Results) == 0 {
		s.Results = d.pending.Results
	}
	d.pending = s
}

func (d *MatchDC) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *MatchDC) popPending() *entity.MatchPersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

// requeueOnError 写库失败时放回；已有更新的快照时只继承名次。
func (d *MatchDC) requeueOnError(s *entity.MatchPersistSnapshot) {
	d.mu.Lock()
	d.replacePendingLocked(s)
	d.mu.Unlock()
	d.signal()
}

func (d *MatchDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending(false)
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}

func (d *MatchDC) consumePending(closing bool) {
	attempts := 0
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		if err := d.save(s); err != nil {
			attempts++
			logx.ReportSysErrorWithLoggerContext(context.Background(), d.log,
				logx.NewSysLog("match.dc.save", err),
				zap.Int64("match_id", int64(s.MatchID)),
				zap.Uint64("version", s.Version),
				zap.Int("attempt", attempts),
			)
			// 关闭阶段有限重试，避免进程无法退出
			if closing && attempts >= 5 {
				return
			}
			d.requeueOnError(s)
			time.Sleep(retryBackoff)
			continue
		}
		attempts = 0
	}
}

func (d *MatchDC) save(s *entity.MatchPersistSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if len(s.Results) > 0 && d.results != nil {
		if err := d.results.SaveResults(ctx, s.Results); err != nil {
			return err
		}
		s.Results = nil
	}
	if err := d.repo.Save(ctx, s); err != nil {
		return err
	}

	d.mu.Lock()
	if s.Version > d.saved {
		d.saved = s.Version
	}
	d.mu.Unlock()
	return nil
}
