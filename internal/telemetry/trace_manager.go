package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentbay/agentbay-go/internal/idgen"
)

// MaxLogLength truncates any single telemetry field to this many bytes
// before it is sent.
const MaxLogLength = 8192

// MaxErrorCount is how many consecutive send failures are tolerated before
// a token refresh is attempted. The refresh is not forced: it is still
// skipped while the cached token is not yet stale.
const MaxErrorCount = 5

// pendingLockTimeout bounds how long SendTrack/SendTrace will wait to
// acquire the pending-queue lock before dropping the event instead of
// blocking the caller.
const pendingLockTimeout = 2 * time.Second

var (
	instance     *Manager
	instanceOnce sync.Once
)

// Manager is the process-wide telemetry singleton. It is never initialized
// as a package-load side effect; callers obtain it via Instance() and may
// Shutdown() it explicitly.
type Manager struct {
	buffer *Buffer

	pendingMu sync.Mutex // acquired with a bounded retry loop, not blocking forever

	traceMu         sync.Mutex
	traceIDMap      map[string]string
	parentSpanIDMap map[string]string

	tokenManager *TokenManager
	httpClient   *http.Client

	credMu    sync.RWMutex
	token     *StsToken
	slsInfo   *TraceSlsInfo
	errCount  int
	instance_ string
}

// Instance returns the process-wide Manager, creating it on first use.
func Instance() *Manager {
	instanceOnce.Do(func() {
		instance = newManager()
	})
	return instance
}

func newManager() *Manager {
	return &Manager{
		buffer:          NewBuffer(DefaultQueueCapacity),
		traceIDMap:      make(map[string]string),
		parentSpanIDMap: make(map[string]string),
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		tokenManager:    NewTokenManager(nil),
		instance_:       uuid.NewString(),
	}
}

// SendTrack enqueues a tracking event under owner with the given fields.
func (m *Manager) SendTrack(owner string, fields map[string]any) {
	item := m.buildLogItem(owner, fields)
	m.dispatch(item)
}

// SendTrace enqueues a trace event, threading trace/span/parent ids through
// a per-(bizIndex,extra) key. If isStart is true, any previously recorded
// trace/parent for that key is discarded first.
func (m *Manager) SendTrace(owner string, fields map[string]any, spanName, bizIndex, extra string, isStart bool) {
	key := bizIndex + extra

	m.traceMu.Lock()
	if isStart {
		delete(m.traceIDMap, key)
		delete(m.parentSpanIDMap, key)
	}
	traceID, ok := m.traceIDMap[key]
	if !ok {
		traceID = genTraceID()
		m.traceIDMap[key] = traceID
	}
	spanID := genSpanID()
	parentSpanID, ok := m.parentSpanIDMap[key]
	if !ok {
		parentSpanID = spanID
	}
	m.parentSpanIDMap[key] = spanID
	m.traceMu.Unlock()

	merged := make(map[string]any, len(fields)+5)
	for k, v := range fields {
		merged[k] = v
	}
	merged["traceId"] = traceID
	merged["parentSpanId"] = parentSpanID
	merged["spanId"] = spanID
	merged["spanName"] = spanName
	merged["is_start"] = isStart

	item := m.buildLogItem(owner, merged)
	m.dispatch(item)
}

func (m *Manager) buildLogItem(owner string, fields map[string]any) LogItem {
	ext := make(map[string]string, len(fields)+4)
	ext["uuid"] = uuid.NewString()
	ext["os"] = runtime.GOOS
	ext["appName"] = "agentbay"
	ext["ts"] = fmt.Sprintf("%d", time.Now().UnixMilli())
	ext["sw"] = "golang"

	for k, v := range fields {
		ext[k] = truncate(stringify(v))
	}
	return LogItem{Owner: owner, Ext: ext}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

func truncate(s string) string {
	if len(s) <= MaxLogLength {
		return s
	}
	return s[:MaxLogLength]
}

// dispatch tries to send item immediately; on failure it is queued for the
// next flush.
func (m *Manager) dispatch(item LogItem) {
	if err := m.trySend(item); err != nil {
		m.enqueue(item)
	}
}

func (m *Manager) enqueue(item LogItem) {
	if !m.acquirePending(pendingLockTimeout) {
		slog.Warn("telemetry: dropping event, pending queue lock unavailable")
		return
	}
	defer m.pendingMu.Unlock()
	m.buffer.Push(item)
}

// acquirePending spins on TryLock until it succeeds or timeout elapses.
func (m *Manager) acquirePending(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if m.pendingMu.TryLock() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (m *Manager) trySend(item LogItem) error {
	m.credMu.RLock()
	token, info := m.token, m.slsInfo
	m.credMu.RUnlock()

	if token == nil || info == nil {
		return fmt.Errorf("telemetry: no credentials yet")
	}

	err := m.putLogs(info, []LogItem{item})
	if err != nil {
		m.credMu.Lock()
		m.errCount++
		count := m.errCount
		m.credMu.Unlock()

		if IsAuthError(err) || count > MaxErrorCount {
			m.refreshToken(false)
		}
	} else {
		m.credMu.Lock()
		m.errCount = 0
		m.credMu.Unlock()
	}
	return err
}

func (m *Manager) putLogs(info *TraceSlsInfo, items []LogItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("telemetry: encode log items: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, info.LogStoreURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telemetry: build putlogs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telemetry: putlogs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry: putlogs returned status %d", resp.StatusCode)
	}
	return nil
}

// RefreshToken requests a new STS token. Unless force is true, the request
// is skipped when the cached token is not yet considered invalid.
func (m *Manager) RefreshToken(ctx context.Context, force bool) error {
	return m.refreshTokenCtx(ctx, force)
}

func (m *Manager) refreshToken(force bool) {
	_ = m.refreshTokenCtx(context.Background(), force)
}

func (m *Manager) refreshTokenCtx(ctx context.Context, force bool) error {
	if !force && !m.tokenManager.IsInvalid() {
		return nil
	}

	token, info, err := m.tokenManager.RequestToken(ctx)
	if err != nil {
		slog.Warn("telemetry: token refresh failed", "error", err)
		return err
	}

	m.credMu.Lock()
	m.token = token
	m.slsInfo = info
	m.errCount = 0
	m.credMu.Unlock()

	m.flushPending()
	return nil
}

// flushPending drains the queue and sends every item outside the lock.
func (m *Manager) flushPending() {
	items := m.buffer.Drain()
	for _, item := range items {
		if err := m.trySend(item); err != nil {
			slog.Warn("telemetry: re-queueing event after flush send failure", "error", err)
			m.enqueue(item)
		}
	}
}

// Shutdown flushes any pending events and clears cached credentials. It does
// not reset the singleton itself; later events find no credentials and are
// queued, and no token is requested for them until RefreshToken is called.
func (m *Manager) Shutdown() {
	m.flushPending()
	m.credMu.Lock()
	m.token = nil
	m.slsInfo = nil
	m.credMu.Unlock()
}

// QueueLen reports how many events are currently pending (for tests/metrics).
func (m *Manager) QueueLen() int { return m.buffer.Len() }

// Dropped reports how many events have been dropped due to overflow.
func (m *Manager) Dropped() int64 { return m.buffer.Dropped() }

func genTraceID() string { return traceIDFunc() }
func genSpanID() string  { return spanIDFunc() }

// traceIDFunc/spanIDFunc are indirected through vars so tests can stub
// deterministic ids without touching crypto/rand call sites directly.
var (
	traceIDFunc = idgen.TraceID
	spanIDFunc  = idgen.SpanID
)
