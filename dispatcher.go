package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agentbay/agentbay-go/internal/idgen"
	"github.com/agentbay/agentbay-go/internal/metrics"
	gojsonschema "github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CallToolOption customizes a single dispatcher invocation.
type CallToolOption func(*callToolOptions)

type callToolOptions struct {
	validateArgs bool
	timeout      time.Duration
}

// WithArgValidation validates args against the resolved tool's input
// schema before sending. Off by default: the source never validates
// outgoing args client-side, so this is opt-in.
func WithArgValidation() CallToolOption {
	return func(o *callToolOptions) { o.validateArgs = true }
}

// WithCallTimeout overrides the per-call deadline.
func WithCallTimeout(d time.Duration) CallToolOption {
	return func(o *callToolOptions) { o.timeout = d }
}

// toolResultWire is the JSON shape both CallMcpTool and the VPC /callTool
// endpoint return. It is parsed independently of mcp.CallToolResult's own
// JSON tags (which this module does not control). asMCPContent converts its
// text items into mcp.Content values; CallTool itself returns the first
// text item as ToolResult.Data and does not use that conversion.
type toolResultWire struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func (w toolResultWire) asMCPContent() []mcp.Content {
	out := make([]mcp.Content, 0, len(w.Content))
	for _, c := range w.Content {
		if c.Type == "text" {
			out = append(out, &mcp.TextContent{Text: c.Text})
		}
	}
	return out
}

// CallTool dispatches one tool invocation against the session, branching
// on control-plane vs VPC transport mode.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any, opts ...CallToolOption) *ToolResult {
	var cfg callToolOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if args == nil {
		args = map[string]any{}
	}
	if name == "press_keys" {
		normalizePressKeysArgs(args)
	}

	var descriptor ToolDescriptor
	var haveDescriptor bool
	if s.IsVPC {
		var ok bool
		descriptor, ok = s.findToolServer(name)
		if !ok {
			return &ToolResult{ResultMeta: clientFailureMeta(fmt.Sprintf("server not found for tool: %s", name))}
		}
		haveDescriptor = true
	} else if d, ok := s.findToolServer(name); ok {
		descriptor = d
		haveDescriptor = true
	}

	if cfg.validateArgs && haveDescriptor && descriptor.InputSchema != nil {
		if err := validateToolArgs(descriptor.InputSchema, args); err != nil {
			return &ToolResult{ResultMeta: clientFailureMeta(fmt.Sprintf("args failed schema validation: %v", err))}
		}
	}

	argsJSON, err := json.Marshal(args)
	if err != nil {
		return &ToolResult{ResultMeta: clientFailureMeta(fmt.Sprintf("encoding args: %v", err))}
	}

	var result *ToolResult
	if s.IsVPC {
		result = s.callToolVPC(ctx, descriptor, name, argsJSON)
	} else {
		result = s.callToolControlPlane(ctx, name, argsJSON)
	}

	outcome := "success"
	if !result.Success {
		outcome = "failure"
	}
	metrics.RecordToolCall(name, outcome)
	return result
}

func (s *Session) callToolControlPlane(ctx context.Context, name string, argsJSON []byte) *ToolResult {
	env, err := s.client.rpc.Invoke(ctx, "CallMcpTool", s.client.apiKey, map[string]string{
		"SessionId":      s.SessionID,
		"Name":           name,
		"Args":           string(argsJSON),
		"AutoGenSession": "false",
	})
	if err != nil {
		return &ToolResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &ToolResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var wire toolResultWire
	if err := json.Unmarshal(env.Data, &wire); err != nil {
		return &ToolResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed CallMcpTool data: %v", err))}
	}
	return toolResultFromWire(env.RequestID, wire)
}

func (s *Session) callToolVPC(ctx context.Context, descriptor ToolDescriptor, name string, argsJSON []byte) *ToolResult {
	if s.NetworkInterfaceIP == "" || s.HTTPPort == "" {
		return &ToolResult{ResultMeta: clientFailureMeta("VPC session is missing network_interface_ip or http_port")}
	}

	requestID := idgen.VPCRequestID(time.Now())
	q := url.Values{}
	q.Set("server", descriptor.Server)
	q.Set("tool", descriptor.Tool)
	q.Set("args", string(argsJSON))
	q.Set("token", s.Token)
	q.Set("requestId", requestID)

	endpoint := fmt.Sprintf("http://%s:%s/callTool?%s", s.NetworkInterfaceIP, s.HTTPPort, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &ToolResult{ResultMeta: transportFailureMeta(requestID, err.Error())}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.httpClient().Do(req)
	if err != nil {
		return &ToolResult{ResultMeta: transportFailureMeta(requestID, err.Error())}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ToolResult{ResultMeta: transportFailureMeta(requestID, err.Error())}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ToolResult{ResultMeta: transportFailureMeta(requestID, fmt.Sprintf("vpc callTool: non-2xx response: %s", string(body)))}
	}

	var wire toolResultWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return &ToolResult{ResultMeta: transportFailureMeta(requestID, fmt.Sprintf("malformed vpc callTool response: %v", err))}
	}
	return toolResultFromWire(requestID, wire)
}

func toolResultFromWire(requestID string, wire toolResultWire) *ToolResult {
	text := ""
	if len(wire.Content) > 0 {
		text = wire.Content[0].Text
	}
	if wire.IsError {
		meta := apiFailureMeta(requestID, "ToolError", text, 0)
		if text != "" {
			meta.ErrorMessage = text
		}
		return &ToolResult{ResultMeta: meta}
	}
	return &ToolResult{ResultMeta: successMeta(requestID), Data: text}
}

func validateToolArgs(schema *gojsonschema.Schema, args map[string]any) error {
	compiled, err := compileSchema(schema)
	if err != nil {
		return err
	}
	return compiled.Validate(args)
}

// compileSchema re-encodes a google/jsonschema-go definition (which carries
// no instance-validation logic of its own) into the wire JSON the
// santhosh-tekuri validator compiles, since the two libraries play
// complementary, non-overlapping roles here: one types the descriptor, the
// other actually validates instances against it.
func compileSchema(schema *gojsonschema.Schema) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("re-encoding input schema: %w", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decoding input schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("inputSchema.json", decoded); err != nil {
		return nil, fmt.Errorf("loading input schema: %w", err)
	}
	return compiler.Compile("inputSchema.json")
}
