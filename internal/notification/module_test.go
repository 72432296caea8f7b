package notification

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"orpaynter_backend/internal/email"
	"orpaynter_backend/internal/events"
	"orpaynter_backend/internal/scheduler"
	"orpaynter_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type testConfig struct {
	recipient string
}

func (c testConfig) GetEmergencyCallbackEmail() string           { return c.recipient }
func (c testConfig) GetEmergencyCallbackCooldown() time.Duration { return time.Minute }

type testSender struct {
	mu    sync.Mutex
	sent  []email.EmergencyCallback
	to    []string
	fails error
}

func (s *testSender) SendEmergencyCallbackEmail(_ context.Context, to string, cb email.EmergencyCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails != nil {
		return s.fails
	}
	s.to = append(s.to, to)
	s.sent = append(s.sent, cb)
	return nil
}

type testQueue struct {
	payloads []scheduler.EmergencyCallbackPayload
	err      error
}

func (q *testQueue) EnqueueEmergencyCallback(_ context.Context, p scheduler.EmergencyCallbackPayload) error {
	if q.err != nil {
		return q.err
	}
	q.payloads = append(q.payloads, p)
	return nil
}

type brokenGuard struct{}

func (brokenGuard) Acquire(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func (brokenGuard) Release(context.Context, string) error {
	return errors.New("redis: connection refused")
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter("production", io.Discard)
}

func callbackEvent(phone string) events.EmergencyCallbackRequested {
	return events.EmergencyCallbackRequested{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       uuid.New(),
		LeadScore:    92,
		ContactName:  "Sam Lee",
		ContactPhone: phone,
	}
}

func TestInlineSendAndCooldown(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, nil, testConfig{recipient: "oncall@example.com"}, testLogger())
	ctx := context.Background()

	if err := m.Handle(ctx, callbackEvent("+16502530000")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Handle(ctx, callbackEvent("+16502530000")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Handle(ctx, callbackEvent("+16502530001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("expected the repeat contact to be suppressed, got %d alerts", len(sender.sent))
	}
	if sender.to[0] != "oncall@example.com" || sender.sent[0].ContactName != "Sam Lee" {
		t.Fatalf("unexpected alert %+v to %s", sender.sent[0], sender.to[0])
	}
}

func TestQueueTakesPrecedenceOverInlineSend(t *testing.T) {
	sender := &testSender{}
	queue := &testQueue{}
	m := New(sender, queue, NewMemoryCallbackGuard(), testConfig{recipient: "oncall@example.com"}, testLogger())

	e := callbackEvent("")
	if err := m.Handle(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.payloads) != 1 || queue.payloads[0].LeadID != e.LeadID.String() {
		t.Fatalf("expected one enqueued payload for the lead, got %+v", queue.payloads)
	}
	if len(sender.sent) != 0 {
		t.Fatal("expected no inline send when a queue is configured")
	}
}

func TestEnqueueFailureIsReturned(t *testing.T) {
	queue := &testQueue{err: errors.New("redis down")}
	m := New(&testSender{}, queue, nil, testConfig{}, testLogger())

	if err := m.Handle(context.Background(), callbackEvent("+16502530000")); err == nil {
		t.Fatal("expected enqueue error")
	}
}

func TestFailedSendReleasesCooldown(t *testing.T) {
	sender := &testSender{fails: errors.New("smtp: 421 service not available")}
	m := New(sender, nil, nil, testConfig{recipient: "oncall@example.com"}, testLogger())
	ctx := context.Background()

	if err := m.Handle(ctx, callbackEvent("+16502530000")); err == nil {
		t.Fatal("expected send error")
	}

	sender.fails = nil
	if err := m.Handle(ctx, callbackEvent("+16502530000")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected the retry from the same contact to be delivered, got %d alerts", len(sender.sent))
	}

	if err := m.Handle(ctx, callbackEvent("+16502530000")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatal("expected cooldown to apply after a successful send")
	}
}

func TestFailedEnqueueReleasesCooldown(t *testing.T) {
	queue := &testQueue{err: errors.New("redis down")}
	m := New(&testSender{}, queue, NewMemoryCallbackGuard(), testConfig{}, testLogger())
	ctx := context.Background()

	if err := m.Handle(ctx, callbackEvent("+16502530000")); err == nil {
		t.Fatal("expected enqueue error")
	}

	queue.err = nil
	e := callbackEvent("+16502530000")
	if err := m.Handle(ctx, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.payloads) != 1 || queue.payloads[0].LeadID != e.LeadID.String() {
		t.Fatalf("expected the retry to be enqueued, got %+v", queue.payloads)
	}
}

func TestFailedSendReleasesRedisCooldown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sender := &testSender{fails: errors.New("smtp: timeout")}
	m := New(sender, nil, NewRedisCallbackGuard(client), testConfig{recipient: "oncall@example.com"}, testLogger())

	if err := m.Handle(context.Background(), callbackEvent("+16502530000")); err == nil {
		t.Fatal("expected send error")
	}
	if mr.Exists(guardKeyPrefix + "phone:+16502530000") {
		t.Fatal("expected cooldown key to be deleted after failed send")
	}
}

func TestGuardFailureStillAlerts(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, brokenGuard{}, testConfig{recipient: "oncall@example.com"}, testLogger())

	if err := m.Handle(context.Background(), callbackEvent("+16502530000")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatal("expected alert when the guard is unavailable")
	}
}

func TestNoRecipientSkipsInlineSend(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, nil, testConfig{}, testLogger())

	if err := m.Handle(context.Background(), callbackEvent("+16502530000")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("expected no alert without recipient")
	}
}

func TestRegisterHandlersWiresBus(t *testing.T) {
	sender := &testSender{}
	bus := events.NewInMemoryBus(testLogger())
	m := New(sender, nil, nil, testConfig{recipient: "oncall@example.com"}, testLogger())
	m.RegisterHandlers(bus)

	if err := bus.PublishSync(context.Background(), callbackEvent("+16502530000")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bus.PublishSync(context.Background(), events.LeadQualified{LeadID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one alert, got %d", len(sender.sent))
	}
}

func TestCallbackKey(t *testing.T) {
	leadID := uuid.New()
	cases := []struct {
		name string
		e    events.EmergencyCallbackRequested
		want string
	}{
		{"phone", events.EmergencyCallbackRequested{LeadID: leadID, ContactPhone: "+16502530000", ContactEmail: "a@b.c"}, "phone:+16502530000"},
		{"email", events.EmergencyCallbackRequested{LeadID: leadID, ContactEmail: " Sam@Example.com "}, "email:sam@example.com"},
		{"lead", events.EmergencyCallbackRequested{LeadID: leadID}, "lead:" + leadID.String()},
	}
	for _, tc := range cases {
		if got := callbackKey(tc.e); got != tc.want {
			t.Errorf("%s: callbackKey = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRedisCallbackGuard(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	guard := NewRedisCallbackGuard(client)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "phone:+16502530000", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first acquire to win, got %v %v", ok, err)
	}
	ok, err = guard.Acquire(ctx, "phone:+16502530000", time.Minute)
	if err != nil || ok {
		t.Fatalf("expected second acquire to lose, got %v %v", ok, err)
	}
	if ttl := mr.TTL(guardKeyPrefix + "phone:+16502530000"); ttl != time.Minute {
		t.Fatalf("expected ttl of one minute, got %v", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	ok, err = guard.Acquire(ctx, "phone:+16502530000", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected acquire after cooldown to win, got %v %v", ok, err)
	}
}

func TestMemoryCallbackGuardExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	guard := NewMemoryCallbackGuard()
	guard.now = func() time.Time { return now }
	ctx := context.Background()

	if ok, _ := guard.Acquire(ctx, "k", time.Minute); !ok {
		t.Fatal("expected first acquire to win")
	}
	if ok, _ := guard.Acquire(ctx, "k", time.Minute); ok {
		t.Fatal("expected second acquire to lose")
	}
	now = now.Add(time.Minute)
	if ok, _ := guard.Acquire(ctx, "k", time.Minute); !ok {
		t.Fatal("expected acquire after expiry to win")
	}
}
