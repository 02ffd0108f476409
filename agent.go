package agentbay

import "context"

// AgentService forwards opaque agent-task arguments to the remote
// agent-server tool family without interpreting their payloads, matching
// the treatment of UI/browser automation as "forward opaque option blobs."
type AgentService struct {
	session *Session
}

func (a *AgentService) ExecuteTask(ctx context.Context, args map[string]any) *ToolResult {
	return a.session.CallTool(ctx, "execute_task", args)
}

func (a *AgentService) FluxStatus(ctx context.Context, taskID string) *ToolResult {
	return a.session.CallTool(ctx, "flux_status", map[string]any{"task_id": taskID})
}

func (a *AgentService) TerminateTask(ctx context.Context, taskID string) *ToolResult {
	return a.session.CallTool(ctx, "terminate_task", map[string]any{"task_id": taskID})
}
