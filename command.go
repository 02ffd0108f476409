package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
)

// CommandService wraps the remote shell/code-execution tool family.
type CommandService struct {
	session *Session
}

// CommandOutput is the typed result of ExecuteCommand.
type CommandOutput struct {
	Success      bool   `json:"success"`
	Output       string `json:"output"`
	ErrorMessage string `json:"error_message"`
}

// CommandResult wraps ExecuteCommand.
type CommandResult struct {
	ResultMeta
	Output *CommandOutput
}

func (c *CommandService) ExecuteCommand(ctx context.Context, command string, timeoutMs int64) *CommandResult {
	if timeoutMs <= 0 {
		timeoutMs = 60000
	}
	res := c.session.CallTool(ctx, "execute_command", map[string]any{"command": command, "timeout_ms": timeoutMs})
	if !res.Success {
		return &CommandResult{ResultMeta: res.ResultMeta}
	}
	var out CommandOutput
	if err := json.Unmarshal([]byte(res.Data), &out); err != nil {
		return &CommandResult{ResultMeta: transportFailureMeta(res.RequestID, fmt.Sprintf("malformed execute_command response: %v", err))}
	}
	return &CommandResult{ResultMeta: res.ResultMeta, Output: &out}
}

// CodeService wraps the remote sandboxed code-execution tool family.
type CodeService struct {
	session *Session
}

// CodeExecutionItem is one multi-format result item from RunCode, e.g. a
// plotted figure returned alongside its text representation.
type CodeExecutionItem struct {
	Text         string `json:"text"`
	HTML         string `json:"html,omitempty"`
	Markdown     string `json:"markdown,omitempty"`
	PNG          string `json:"png,omitempty"`
	IsMainResult bool   `json:"is_main_result"`
}

// CodeExecutionError carries the structured traceback, when the executed
// code raised.
type CodeExecutionError struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Traceback string `json:"traceback"`
}

// CodeExecutionLogs is captured stdout/stderr across the whole run.
type CodeExecutionLogs struct {
	Stdout []string `json:"stdout"`
	Stderr []string `json:"stderr"`
}

// CodeExecutionOutput is RunCode's enhanced result shape. Result is a
// backward-compatible scalar that prefers the main result's text, then the
// first result's text, then joined stdout — so callers that only care
// about "the answer" never need to inspect Results themselves.
type CodeExecutionOutput struct {
	Logs    CodeExecutionLogs   `json:"logs"`
	Results []CodeExecutionItem `json:"results"`
	Error   *CodeExecutionError `json:"error"`
	Result  string              `json:"-"`
}

func deriveScalarResult(out *CodeExecutionOutput) string {
	for _, item := range out.Results {
		if item.IsMainResult && item.Text != "" {
			return item.Text
		}
	}
	if len(out.Results) > 0 && out.Results[0].Text != "" {
		return out.Results[0].Text
	}
	joined := ""
	for _, line := range out.Logs.Stdout {
		joined += line
	}
	return joined
}

// CodeExecutionResult wraps RunCode.
type CodeExecutionResult struct {
	ResultMeta
	Output *CodeExecutionOutput
}

// RunCode executes code in the given language (python or javascript) inside
// the session's sandbox.
func (c *CodeService) RunCode(ctx context.Context, code, language string, timeoutSeconds int64) *CodeExecutionResult {
	if language != "python" && language != "javascript" {
		return &CodeExecutionResult{ResultMeta: clientFailureMeta(fmt.Sprintf("unsupported language: %s (expected python or javascript)", language))}
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 300
	}

	res := c.session.CallTool(ctx, "run_code", map[string]any{"code": code, "language": language, "timeout_s": timeoutSeconds})
	if !res.Success {
		return &CodeExecutionResult{ResultMeta: res.ResultMeta}
	}
	var out CodeExecutionOutput
	if err := json.Unmarshal([]byte(res.Data), &out); err != nil {
		return &CodeExecutionResult{ResultMeta: transportFailureMeta(res.RequestID, fmt.Sprintf("malformed run_code response: %v", err))}
	}
	out.Result = deriveScalarResult(&out)
	return &CodeExecutionResult{ResultMeta: res.ResultMeta, Output: &out}
}
