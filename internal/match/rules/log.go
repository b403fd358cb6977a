package rules

import "fmt"

func (s *State) logf(seat int, format string, args ...any) {
	e := LogEntry{Seat: seat, Message: fmt.Sprintf(format, args...)}
	if p := s.player(seat); p != nil {
		e.Color = p.Color
	}
	s.Log = append(s.Log, e)
	if over := len(s.Log) - MaxLogEntries; over > 0 {
		s.Log = append([]LogEntry(nil), s.Log[over:]...)
	}
}
