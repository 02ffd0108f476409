package telemetry

import "testing"

func TestSendTraceReusesTraceIDAndChainsParentSpan(t *testing.T) {
	m := newManager()

	var seen []map[string]any
	origTrace, origSpan := traceIDFunc, spanIDFunc
	calls := 0
	spanIDFunc = func() string {
		calls++
		return "span-" + string(rune('0'+calls))
	}
	traceIDFunc = func() string { return "fixed-trace-id" }
	defer func() { traceIDFunc, spanIDFunc = origTrace, origSpan }()

	capture := func(item LogItem) { seen = append(seen, map[string]any{"traceId": item.Ext["traceId"], "spanId": item.Ext["spanId"], "parentSpanId": item.Ext["parentSpanId"]}) }

	m.SendTrace("owner", map[string]any{}, "span-a", "biz-1", "", true)
	capture(mustLastPending(t, m))

	m.SendTrace("owner", map[string]any{}, "span-b", "biz-1", "", false)
	capture(mustLastPending(t, m))

	if seen[0]["traceId"] != seen[1]["traceId"] {
		t.Fatalf("traceId changed across calls in the same key: %v vs %v", seen[0]["traceId"], seen[1]["traceId"])
	}
	if seen[1]["parentSpanId"] != seen[0]["spanId"] {
		t.Fatalf("second call's parentSpanId = %v, want first call's spanId %v", seen[1]["parentSpanId"], seen[0]["spanId"])
	}
}

func TestSendTraceIsStartResetsChain(t *testing.T) {
	m := newManager()
	m.SendTrace("owner", map[string]any{}, "span-a", "biz-2", "", false)
	first := mustLastPending(t, m)

	m.SendTrace("owner", map[string]any{}, "span-a", "biz-2", "", true)
	second := mustLastPending(t, m)

	if first.Ext["traceId"] == "" || second.Ext["traceId"] == "" {
		t.Fatal("expected non-empty traceId on both calls")
	}
	if first.Ext["traceId"] == second.Ext["traceId"] {
		t.Fatal("isStart=true should discard the previous traceId for the same key")
	}
}

// mustLastPending drains the single pending item pushed by dispatch's
// enqueue path (trySend always fails with no credentials in these tests).
func mustLastPending(t *testing.T, m *Manager) LogItem {
	t.Helper()
	items := m.buffer.Drain()
	if len(items) != 1 {
		t.Fatalf("expected exactly 1 pending item, got %d", len(items))
	}
	return items[0]
}
