package session

import (
	"sync"

	"GoldenAges/internal/shared/transport/ws"
)

const KickedMsg = "session.kicked"

// Manager 维护 uid 与 ws 连接的一对一绑定，同一 uid 重复登录会踢掉旧连接。
type Manager interface {
	Bind(uid int, conn ws.WSConn)
	UnbindConn(conn ws.WSConn)
	UnbindUID(uid int)
	GetConn(uid int) (ws.WSConn, bool)
	GetUID(conn ws.WSConn) (int, bool)
	// PushTo 向在线的 uid 推送，不在线的跳过，返回实际送达数。
	PushTo(uids []int, name string, data any) int
}

type SessMgr struct {
	sync.RWMutex
	uid2conn map[int]ws.WSConn
	conn2uid map[ws.WSConn]int
	watched  map[ws.WSConn]struct{}
}

func NewSessMgr() *SessMgr {
	return &SessMgr{
		uid2conn: make(map[int]ws.WSConn),
		conn2uid: make(map[ws.WSConn]int),
		watched:  make(map[ws.WSConn]struct{}),
	}
}

func (s *SessMgr) Bind(uid int, conn ws.WSConn) {
	if conn == nil {
		return
	}
	s.Lock()
	// 每条连接只起一个 watcher，连接关闭后自动解绑
	if _, ok := s.watched[conn]; !ok {
		s.watched[conn] = struct{}{}
		go s.watchConnDone(conn)
	}
	// 同一连接换 uid 时清掉旧绑定
	if prev, ok := s.conn2uid[conn]; ok && prev != uid && s.uid2conn[prev] == conn {
		delete(s.uid2conn, prev)
	}
	oldConn := s.uid2conn[uid]
	s.uid2conn[uid] = conn
	s.conn2uid[conn] = uid
	s.Unlock()

	if oldConn != nil && oldConn != conn {
		oldConn.Push(KickedMsg, nil)
		oldConn.Close()
	}
}

func (s *SessMgr) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	s.UnbindConn(conn)
}

func (s *SessMgr) UnbindConn(conn ws.WSConn) {
	s.Lock()
	defer s.Unlock()
	uid, ok := s.conn2uid[conn]
	delete(s.watched, conn)
	delete(s.conn2uid, conn)
	if ok && s.uid2conn[uid] == conn {
		delete(s.uid2conn, uid)
	}
}

func (s *SessMgr) UnbindUID(uid int) {
	s.Lock()
	defer s.Unlock()
	if conn, ok := s.uid2conn[uid]; ok {
		delete(s.conn2uid, conn)
	}
	delete(s.uid2conn, uid)
}

func (s *SessMgr) GetConn(uid int) (ws.WSConn, bool) {
	s.RLock()
	defer s.RUnlock()
	conn, ok := s.uid2conn[uid]
	return conn, ok
}

func (s *SessMgr) GetUID(conn ws.WSConn) (int, bool) {
	s.RLock()
	defer s.RUnlock()
	uid, ok := s.conn2uid[conn]
	return uid, ok
}

func (s *SessMgr) PushTo(uids []int, name string, data any) int {
	s.RLock()
	conns := make([]ws.WSConn, 0, len(uids))
	for _, uid := range uids {
		if c, ok := s.uid2conn[uid]; ok {
			conns = append(conns, c)
		}
	}
	s.RUnlock()

	for _, c := range conns {
		c.Push(name, data)
	}
	return len(conns)
}
