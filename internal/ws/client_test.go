package ws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/timekeep/timer-system/internal/core/domain"
)

type fakeHub struct {
	unregistered int
}

func (h *fakeHub) Unregister(_ string, _ Conn) {
	h.unregistered++
}

type stubTimers struct {
	timers []domain.Timer
	err    error
	calls  []bool
}

func (s *stubTimers) Start(_ context.Context, _, _ string) (*domain.Timer, error) {
	return nil, nil
}

func (s *stubTimers) Stop(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubTimers) List(_ context.Context, _ string, activeOnly bool) ([]domain.Timer, error) {
	s.calls = append(s.calls, activeOnly)
	if s.err != nil {
		return nil, s.err
	}
	if activeOnly {
		var active []domain.Timer
		for _, t := range s.timers {
			if t.IsActive {
				active = append(active, t)
			}
		}
		return active, nil
	}
	return s.timers, nil
}

func newTestClient(conn *Socket, timers *stubTimers) *Client {
	return &Client{
		userID: "user_1",
		conn:   conn,
		hub:    &fakeHub{},
		timers: timers,
		log:    zerolog.Nop(),
	}
}

func sampleTimers() []domain.Timer {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	return []domain.Timer{
		{ID: "t1", UserID: "user_1", Description: "running", Start: start, IsActive: true},
		{ID: "t2", UserID: "user_1", Description: "done", Start: start, End: &end, IsActive: false},
	}
}

func TestClient_AllTimersQuery(t *testing.T) {
	raw := &fakeRawConn{}
	client := newTestClient(NewSocket(raw), &stubTimers{timers: sampleTimers()})

	if err := client.handleMessage(context.Background(), []byte(`{"type":"all_timers"}`)); err != nil {
		t.Fatalf("handleMessage returned error: %v", err)
	}

	sent := raw.sent()
	if len(sent) != 1 {
		t.Fatalf("expected one reply, got %d", len(sent))
	}
	reply, ok := sent[0].(timersReply)
	if !ok {
		t.Fatalf("unexpected reply type %T", sent[0])
	}
	if reply.Type != MessageAllTimers {
		t.Fatalf("expected type %q, got %q", MessageAllTimers, reply.Type)
	}
	if len(reply.Timers) != 2 {
		t.Fatalf("expected both timers, got %d", len(reply.Timers))
	}

	running := reply.Timers[0]
	if running.ID != "t1" || !running.IsActive || running.End != nil {
		t.Fatalf("unexpected running timer payload: %+v", running)
	}
	if running.Start != time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixMilli() {
		t.Fatalf("start must be a millisecond epoch, got %d", running.Start)
	}

	done := reply.Timers[1]
	if done.End == nil || done.IsActive {
		t.Fatalf("unexpected completed timer payload: %+v", done)
	}
}

func TestClient_ActiveTimersQuery(t *testing.T) {
	raw := &fakeRawConn{}
	client := newTestClient(NewSocket(raw), &stubTimers{timers: sampleTimers()})

	if err := client.handleMessage(context.Background(), []byte(`{"type":"active_timers"}`)); err != nil {
		t.Fatalf("handleMessage returned error: %v", err)
	}

	reply := raw.sent()[0].(timersReply)
	if reply.Type != MessageActiveTimers {
		t.Fatalf("expected type %q, got %q", MessageActiveTimers, reply.Type)
	}
	if len(reply.Timers) != 1 || reply.Timers[0].ID != "t1" {
		t.Fatalf("expected only the active timer, got %+v", reply.Timers)
	}
}

func TestClient_EmptyTimerSetStillReplies(t *testing.T) {
	raw := &fakeRawConn{}
	client := newTestClient(NewSocket(raw), &stubTimers{})

	if err := client.handleMessage(context.Background(), []byte(`{"type":"all_timers"}`)); err != nil {
		t.Fatalf("handleMessage returned error: %v", err)
	}

	reply := raw.sent()[0].(timersReply)
	if reply.Timers == nil || len(reply.Timers) != 0 {
		t.Fatalf("expected an empty (non-null) timers array, got %#v", reply.Timers)
	}
}

func TestClient_MalformedMessageIsDropped(t *testing.T) {
	raw := &fakeRawConn{}
	timers := &stubTimers{}
	client := newTestClient(NewSocket(raw), timers)

	if err := client.handleMessage(context.Background(), []byte("not-json")); err != nil {
		t.Fatalf("malformed frames must not error: %v", err)
	}
	if len(raw.sent()) != 0 {
		t.Fatalf("malformed frames must produce no reply, got %v", raw.sent())
	}
	if len(timers.calls) != 0 {
		t.Fatalf("malformed frames must not reach the datastore")
	}
}

func TestClient_UnknownTypeIsDropped(t *testing.T) {
	raw := &fakeRawConn{}
	client := newTestClient(NewSocket(raw), &stubTimers{})

	if err := client.handleMessage(context.Background(), []byte(`{"type":"reboot"}`)); err != nil {
		t.Fatalf("unknown types must not error: %v", err)
	}
	if len(raw.sent()) != 0 {
		t.Fatalf("unknown types must produce no reply, got %v", raw.sent())
	}
}

func TestClient_DatastoreFailureSurfaces(t *testing.T) {
	raw := &fakeRawConn{}
	client := newTestClient(NewSocket(raw), &stubTimers{err: errors.New("datastore down")})

	if err := client.handleMessage(context.Background(), []byte(`{"type":"all_timers"}`)); err == nil {
		t.Fatalf("expected infrastructure failure to surface")
	}
	if len(raw.sent()) != 0 {
		t.Fatalf("no reply expected on failure")
	}
}

func TestClient_EvictedSocketReplyIsDropped(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	evictedRaw := &fakeRawConn{}
	evicted := NewSocket(evictedRaw)
	replacementRaw := &fakeRawConn{}

	r.Register("user_1", evicted)
	r.Register("user_1", NewSocket(replacementRaw))

	// The evicted socket finishes a query that was in flight when the
	// replacement connected. Its reply must die with its own connection,
	// not land on the replacement, and the read loop must not error.
	client := &Client{
		userID: "user_1",
		conn:   evicted,
		hub:    r,
		timers: &stubTimers{timers: sampleTimers()},
		log:    zerolog.Nop(),
	}
	if err := client.handleMessage(context.Background(), []byte(`{"type":"all_timers"}`)); err != nil {
		t.Fatalf("dropped reply must not error: %v", err)
	}

	if len(replacementRaw.sent()) != 0 {
		t.Fatalf("reply leaked to the replacement socket: %v", replacementRaw.sent())
	}
	if len(evictedRaw.sent()) != 0 {
		t.Fatalf("evicted socket must not accept writes after close")
	}
}
