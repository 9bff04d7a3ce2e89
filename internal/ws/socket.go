package ws

import "sync"

// rawConn is the slice of a websocket connection a Socket wraps. Satisfied by
// *websocket.Conn.
type rawConn interface {
	WriteJSON(v any) error
	ReadMessage() (messageType int, p []byte, err error)
	SetReadLimit(limit int64)
	Close() error
}

// Socket serializes writes to the underlying connection. gorilla/websocket
// supports at most one concurrent writer per connection, and a registered
// socket has two: its own read loop replying to queries and the registry
// pushing to it by user id.
type Socket struct {
	mu   sync.Mutex
	conn rawConn
}

func NewSocket(conn rawConn) *Socket {
	return &Socket{conn: conn}
}

func (s *Socket) WriteJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *Socket) ReadMessage() (int, []byte, error) {
	return s.conn.ReadMessage()
}

func (s *Socket) SetReadLimit(limit int64) {
	s.conn.SetReadLimit(limit)
}

func (s *Socket) Close() error {
	return s.conn.Close()
}
