package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/agentbay/agentbay-go/internal/metrics"
)

// parseContextStatus decodes the doubly-encoded ContextStatus payload: the
// outer layer is a JSON array of {type, data} envelopes; each envelope's
// "data" field is itself a JSON string holding an array of items.
func parseContextStatus(raw string) ([]*ContextStatusItem, error) {
	if raw == "" {
		return nil, nil
	}

	var outer []struct {
		Type string `json:"type"`
		Data string `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &outer); err != nil {
		return nil, fmt.Errorf("malformed ContextStatus outer envelope: %w", err)
	}

	var items []*ContextStatusItem
	for _, env := range outer {
		if env.Data == "" {
			continue
		}
		var inner []*ContextStatusItem
		if err := json.Unmarshal([]byte(env.Data), &inner); err != nil {
			return nil, fmt.Errorf("malformed ContextStatus inner payload: %w", err)
		}
		items = append(items, inner...)
	}
	return items, nil
}

// SessionContextManager is the per-session view of context-sync state,
// exposed as Session.Context. It is distinct from Client.Contexts, which
// performs CRUD on contexts independent of any session.
type SessionContextManager struct {
	session *Session
}

// Info fetches and parses the session's current ContextStatus.
func (m *SessionContextManager) Info(ctx context.Context, contextID, path, taskType string) *ContextInfoResult {
	params := map[string]string{"SessionId": m.session.SessionID}
	if contextID != "" {
		params["ContextId"] = contextID
	}
	if path != "" {
		params["Path"] = path
	}
	if taskType != "" {
		params["TaskType"] = taskType
	}

	env, err := m.session.client.rpc.Invoke(ctx, "GetContextInfo", m.session.client.apiKey, params)
	if err != nil {
		return &ContextInfoResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &ContextInfoResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var data struct {
		ContextStatus string `json:"ContextStatus"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &ContextInfoResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed GetContextInfo data: %v", err))}
	}

	items, err := parseContextStatus(data.ContextStatus)
	if err != nil {
		return &ContextInfoResult{ResultMeta: transportFailureMeta(env.RequestID, err.Error())}
	}
	return &ContextInfoResult{ResultMeta: successMeta(env.RequestID), Items: items}
}

// Sync triggers a SyncContext and then polls Info until every
// upload/download item reaches a terminal status, or the retry budget is
// exhausted. It never raises ClearanceTimeoutError-style errors: running
// out of retries while items are still pending is reported as
// SyncSuccess=false, matching the source's "log and move on" behavior.
func (m *SessionContextManager) Sync(ctx context.Context, contextID, path, mode string, maxRetries int, retryInterval time.Duration) *ContextSyncResult {
	if maxRetries <= 0 {
		maxRetries = 150
	}
	if retryInterval <= 0 {
		retryInterval = 1500 * time.Millisecond
	}

	params := map[string]string{"SessionId": m.session.SessionID}
	if contextID != "" {
		params["ContextId"] = contextID
	}
	if path != "" {
		params["Path"] = path
	}
	if mode != "" {
		params["Mode"] = mode
	}

	start := time.Now()
	env, err := m.session.client.rpc.Invoke(ctx, "SyncContext", m.session.client.apiKey, params)
	if err != nil {
		return &ContextSyncResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &ContextSyncResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		info := m.Info(ctx, contextID, path, "")
		if !info.Success {
			return &ContextSyncResult{ResultMeta: info.ResultMeta}
		}

		allTerminal := true
		anyFailed := false
		for _, item := range info.Items {
			if item.TaskType != "upload" && item.TaskType != "download" {
				continue
			}
			switch item.Status {
			case "Success":
			case "Failed":
				anyFailed = true
			default:
				allTerminal = false
				slog.Warn("agentbay: unrecognized context sync status, treating as pending",
					"status", item.Status, "context_id", item.ContextID, "path", item.Path)
			}
		}

		if allTerminal {
			metrics.ContextSyncPollDuration.Observe(time.Since(start).Seconds())
			return &ContextSyncResult{ResultMeta: successMeta(env.RequestID), SyncSuccess: !anyFailed}
		}

		select {
		case <-ctx.Done():
			return &ContextSyncResult{ResultMeta: successMeta(env.RequestID), SyncSuccess: false}
		case <-time.After(retryInterval):
		}
	}

	return &ContextSyncResult{ResultMeta: successMeta(env.RequestID), SyncSuccess: false}
}
