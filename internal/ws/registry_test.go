package ws

import (
	"testing"

	"github.com/rs/zerolog"
)

type fakeConn struct {
	closed   int
	messages []any
}

func (c *fakeConn) WriteJSON(v any) error {
	c.messages = append(c.messages, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed++
	return nil
}

func TestRegistry_RegisterReplacesAndClosesPrior(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	first := &fakeConn{}
	second := &fakeConn{}

	r.Register("user_1", first)
	r.Register("user_1", second)

	if first.closed != 1 {
		t.Fatalf("expected first socket closed exactly once, got %d", first.closed)
	}
	if second.closed != 0 {
		t.Fatalf("second socket must stay open")
	}

	r.Send("user_1", "hello")
	if len(first.messages) != 0 {
		t.Fatalf("evicted socket must not receive messages: %v", first.messages)
	}
	if len(second.messages) != 1 || second.messages[0] != "hello" {
		t.Fatalf("expected message on second socket, got %v", second.messages)
	}
}

func TestRegistry_StaleUnregisterKeepsNewerSocket(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	first := &fakeConn{}
	second := &fakeConn{}

	r.Register("user_1", first)
	r.Register("user_1", second)

	// The evicted socket's close event fires after the replacement is in
	// place; it must not remove the newer registration.
	r.Unregister("user_1", first)

	r.Send("user_1", "still here")
	if len(second.messages) != 1 {
		t.Fatalf("newer socket lost its registration")
	}
}

func TestRegistry_UnregisterRemovesOwnSocket(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	conn := &fakeConn{}

	r.Register("user_1", conn)
	r.Unregister("user_1", conn)

	r.Send("user_1", "gone")
	if len(conn.messages) != 0 {
		t.Fatalf("unregistered socket must not receive messages")
	}
}

func TestRegistry_SendToOfflineUserIsNoOp(t *testing.T) {
	r := NewRegistry(zerolog.Nop())

	// Must not panic or error; the user is simply offline.
	r.Send("nobody", "dropped")
}

func TestRegistry_IsolatesUsers(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	amy := &fakeConn{}
	bob := &fakeConn{}

	r.Register("amy", amy)
	r.Register("bob", bob)

	r.Send("amy", "for amy")

	if len(amy.messages) != 1 {
		t.Fatalf("amy should have one message, got %d", len(amy.messages))
	}
	if len(bob.messages) != 0 {
		t.Fatalf("bob must not see amy's messages")
	}
	if amy.closed != 0 || bob.closed != 0 {
		t.Fatalf("registering distinct users must not close anything")
	}
}
