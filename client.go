package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/agentbay/agentbay-go/internal/logging"
	"github.com/agentbay/agentbay-go/internal/metrics"
	"github.com/agentbay/agentbay-go/internal/ratelimit"
	"github.com/agentbay/agentbay-go/internal/telemetry"
	"github.com/agentbay/agentbay-go/internal/transport"
)

// Client is the SDK entry point: it owns the control-plane transport, the
// table of live sessions, and the context CRUD service. A Client is safe
// for concurrent use.
type Client struct {
	apiKey string
	cfg    Config
	rpc    *transport.Client

	mu       sync.Mutex
	sessions map[string]*Session

	Contexts *ContextService
}

// Option customizes Client construction.
type Option func(*Config)

// WithEndpoint overrides the resolved control-plane endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) { c.Endpoint = endpoint }
}

// WithRegionID overrides the resolved region id.
func WithRegionID(regionID string) Option {
	return func(c *Config) { c.RegionID = regionID }
}

// WithLogging turns on file+stdout structured logging for the process.
// The SDK never does this on its own; without it, log output goes through
// whatever slog.Default() the embedding application has configured.
func WithLogging(logDir string, jsonOutput bool) Option {
	return func(c *Config) {
		if err := logging.Init(logDir, jsonOutput); err != nil {
			slog.Error("agentbay: failed to initialize file logging", "error", err, "log_dir", logDir)
		}
	}
}

// New constructs a Client. apiKey is required: a missing key is one of the
// three cases the SDK raises as a Go error rather than a failure envelope,
// since there is no session, request or transport to attach a ResultMeta to
// yet.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(envAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("agentbay: missing API key (pass explicitly or set %s)", envAPIKey)
	}

	var explicit Config
	for _, opt := range opts {
		opt(&explicit)
	}
	cfg, err := resolveConfig(&explicit)
	if err != nil {
		return nil, err
	}

	rpcCfg := transport.Config{
		Endpoint:       cfg.Endpoint,
		RegionID:       cfg.RegionID,
		ReadTimeout:    time.Duration(cfg.ReadTimeoutMs) * time.Millisecond,
		ConnectTimeout: time.Duration(cfg.ConnectTimeoutMs) * time.Millisecond,
	}
	limiter := ratelimit.Default()
	client := &Client{
		apiKey:   apiKey,
		cfg:      cfg,
		rpc:      transport.New(rpcCfg, limiter),
		sessions: make(map[string]*Session),
	}
	client.Contexts = &ContextService{client: client}

	slog.Debug("agentbay: client initialized", "endpoint", cfg.Endpoint, "region_id", cfg.RegionID)
	return client, nil
}

func (c *Client) trackEvent(owner string, fields map[string]any) {
	telemetry.Instance().SendTrack(owner, fields)
}

// Create provisions a new session and, once it is running, performs any
// requested follow-up: VPC tool catalog discovery, context-sync completion
// wait, and mobile simulation bootstrap.
func (c *Client) Create(ctx context.Context, params *CreateSessionParams) *SessionResult {
	if params == nil {
		params = &CreateSessionParams{}
	}

	persistence, err := buildPersistenceList(params)
	if err != nil {
		return &SessionResult{ResultMeta: clientFailureMeta(err.Error())}
	}

	rpcParams := map[string]string{
		"VpcResource": strconv.FormatBool(params.IsVPC),
	}
	if c.cfg.RegionID != "" {
		rpcParams["LoginRegionId"] = c.cfg.RegionID
	}
	if params.EnableBrowserReplay != nil && !*params.EnableBrowserReplay {
		rpcParams["EnableRecord"] = "false"
	}
	if params.McpPolicyID != "" {
		rpcParams["McpPolicyId"] = params.McpPolicyID
	}
	if params.ImageID != "" {
		rpcParams["ImageId"] = params.ImageID
	}
	if len(params.Labels) > 0 {
		labelsJSON, err := json.Marshal(params.Labels)
		if err != nil {
			return &SessionResult{ResultMeta: clientFailureMeta(fmt.Sprintf("encoding labels: %v", err))}
		}
		rpcParams["Labels"] = string(labelsJSON)
	}
	if len(persistence) > 0 {
		persistenceJSON, err := json.Marshal(persistence)
		if err != nil {
			return &SessionResult{ResultMeta: clientFailureMeta(fmt.Sprintf("encoding persistence_data_list: %v", err))}
		}
		rpcParams["PersistenceDataList"] = string(persistenceJSON)
	}
	if params.MobileSimulation != nil {
		extraConfigs, err := json.Marshal(map[string]any{
			"mobile": map[string]any{"path": params.MobileSimulation.Path},
		})
		if err != nil {
			return &SessionResult{ResultMeta: clientFailureMeta(fmt.Sprintf("encoding extra_configs: %v", err))}
		}
		rpcParams["ExtraConfigs"] = string(extraConfigs)
	}
	statsJSON, _ := json.Marshal(map[string]any{
		"source":       "golang-sdk",
		"sdk_language": sdkLanguage,
		"sdk_version":  Version,
		"is_release":   true,
		"framework":    params.Framework,
	})
	rpcParams["SdkStats"] = string(statsJSON)

	slog.Debug("agentbay: creating session", "authorization", transport.MaskAuth("Bearer "+c.apiKey), "is_vpc", params.IsVPC)

	env, err := c.rpc.Invoke(ctx, "CreateMcpSession", c.apiKey, rpcParams)
	if err != nil {
		return &SessionResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &SessionResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var data struct {
		SessionID            string `json:"SessionId"`
		ResourceURL          string `json:"ResourceUrl"`
		NetworkInterfaceIP   string `json:"NetworkInterfaceIp"`
		HTTPPort             string `json:"HttpPort"`
		Token                string `json:"Token"`
		AppID                string `json:"AppId"`
		ResourceID           string `json:"ResourceId"`
		ResourceType         string `json:"ResourceType"`
		AuthCode             string `json:"AuthCode"`
		ConnectionProperties string `json:"ConnectionProperties"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &SessionResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed CreateMcpSession data: %v", err))}
	}

	sess := &Session{
		client:               c,
		SessionID:            data.SessionID,
		ResourceURL:          data.ResourceURL,
		IsVPC:                params.IsVPC,
		NetworkInterfaceIP:   data.NetworkInterfaceIP,
		HTTPPort:             data.HTTPPort,
		Token:                data.Token,
		ImageID:              params.ImageID,
		EnableBrowserReplay:  params.EnableBrowserReplay == nil || *params.EnableBrowserReplay,
		AppID:                data.AppID,
		ResourceID:           data.ResourceID,
		ResourceType:         data.ResourceType,
		AuthCode:             data.AuthCode,
		ConnectionProperties: data.ConnectionProperties,
	}
	sess.bindSubServices()

	c.mu.Lock()
	c.sessions[sess.SessionID] = sess
	c.mu.Unlock()
	metrics.ActiveSessions.Inc()

	if params.IsVPC {
		tools, err := c.listTools(ctx, params.ImageID)
		if err != nil {
			slog.Warn("agentbay: failed to populate VPC tool catalog", "error", err, "session_id", sess.SessionID)
		} else {
			sess.setToolCatalog(tools)
		}
	}

	if len(params.ContextSyncs) > 0 || params.MobileSimulation != nil {
		sync := sess.Context.Sync(ctx, "", "", "", 150, 2*time.Second)
		if !sync.SyncSuccess {
			slog.Warn("agentbay: context sync incomplete after session create", "session_id", sess.SessionID)
		}
	}

	if params.MobileSimulation != nil {
		arg := simulationArgs[params.MobileSimulation.Mode]
		if res := sess.Command.ExecuteCommand(ctx, strings.TrimSpace("mobile-simulate "+arg), 60000); !res.Success {
			slog.Warn("agentbay: mobile simulation bootstrap failed", "error", res.ErrorMessage, "session_id", sess.SessionID)
		}
	}

	c.trackEvent("create_session", map[string]any{"session_id": sess.SessionID, "is_vpc": params.IsVPC})

	return &SessionResult{ResultMeta: successMeta(env.RequestID), Session: sess}
}

func buildPersistenceList(params *CreateSessionParams) ([]map[string]any, error) {
	var out []map[string]any
	for _, cs := range params.ContextSyncs {
		out = append(out, map[string]any{
			"contextId": cs.ContextID,
			"path":      cs.Path,
			"policy":    completeSyncPolicy(cs.Policy),
		})
	}
	if params.BrowserContext != nil {
		wl, err := NewWhiteList(browserDataPath, []string{
			browserDataPath + "/Local State",
			browserDataPath + "/Default/Cookies",
			browserDataPath + "/Default/Cookies-journal",
		})
		if err != nil {
			return nil, err
		}
		policy := DefaultSyncPolicy()
		policy.BWList = &BWList{WhiteLists: []*WhiteList{wl}}
		policy.UploadPolicy.AutoUpload = params.BrowserContext.AutoUpload
		out = append(out, map[string]any{
			"contextId": params.BrowserContext.ContextID,
			"path":      browserDataPath,
			"policy":    policy,
		})
	}
	if params.MobileSimulation != nil {
		out = append(out, map[string]any{
			"contextId": "",
			"path":      params.MobileSimulation.Path,
			"policy":    DefaultSyncPolicy(),
		})
	}
	return out, nil
}

func (c *Client) listTools(ctx context.Context, imageID string) ([]ToolDescriptor, error) {
	params := map[string]string{}
	if imageID != "" {
		params["ImageId"] = imageID
	}
	env, err := c.rpc.Invoke(ctx, "ListMcpTools", c.apiKey, params)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("[%s] %s", env.Code, env.Message)
	}

	var data struct {
		Tools []struct {
			Name        string          `json:"Name"`
			Server      string          `json:"Server"`
			Tool        string          `json:"Tool"`
			InputSchema json.RawMessage `json:"InputSchema"`
		} `json:"Tools"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("malformed ListMcpTools data: %w", err)
	}

	out := make([]ToolDescriptor, 0, len(data.Tools))
	for _, t := range data.Tools {
		var schema *jsonschema.Schema
		if len(t.InputSchema) > 0 && string(t.InputSchema) != "null" {
			schema = new(jsonschema.Schema)
			if err := json.Unmarshal(t.InputSchema, schema); err != nil {
				schema = nil
			}
		}
		out = append(out, ToolDescriptor{Name: t.Name, Server: t.Server, Tool: t.Tool, InputSchema: schema})
	}
	return out, nil
}

// Get looks up a session by id without taking ownership of it: the
// returned handle is not stored in the client's session table.
func (c *Client) Get(ctx context.Context, sessionID string) *GetSessionResult {
	env, err := c.rpc.Invoke(ctx, "GetSession", c.apiKey, map[string]string{"SessionId": sessionID})
	if err != nil {
		return &GetSessionResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		if isNotFound(env.Code, env.Message, env.HTTPStatusCode) {
			return &GetSessionResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, "session not found", env.HTTPStatusCode)}
		}
		return &GetSessionResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var data GetSessionData
	var wire struct {
		AppInstanceID      string `json:"AppInstanceId"`
		ResourceID         string `json:"ResourceId"`
		SessionID          string `json:"SessionId"`
		HTTPPort           string `json:"HttpPort"`
		NetworkInterfaceIP string `json:"NetworkInterfaceIp"`
		Token              string `json:"Token"`
		VPCResource        bool   `json:"VpcResource"`
		ResourceURL        string `json:"ResourceUrl"`
		Status             string `json:"Status"`
	}
	if err := json.Unmarshal(env.Data, &wire); err != nil {
		return &GetSessionResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed GetSession data: %v", err))}
	}
	data = GetSessionData{
		AppInstanceID: wire.AppInstanceID, ResourceID: wire.ResourceID, SessionID: wire.SessionID,
		HTTPPort: wire.HTTPPort, NetworkInterfaceIP: wire.NetworkInterfaceIP, Token: wire.Token,
		VPCResource: wire.VPCResource, ResourceURL: wire.ResourceURL, Status: wire.Status,
	}
	return &GetSessionResult{ResultMeta: successMeta(env.RequestID), Data: &data}
}

// List returns one page of session ids, optionally walking forward to a
// requested page number first.
func (c *Client) List(ctx context.Context, labels map[string]string, page, limit int32) *SessionListResult {
	if page < 1 {
		return &SessionListResult{ResultMeta: clientFailureMeta("page must be >= 1")}
	}

	nextToken := ""
	for current := int32(1); current < page; current++ {
		raw, err := c.listPage(ctx, labels, limit, nextToken)
		if err != nil {
			return &SessionListResult{ResultMeta: clientFailureMeta(err.Error())}
		}
		if raw.NextToken == "" {
			return &SessionListResult{ResultMeta: clientFailureMeta(fmt.Sprintf("Cannot reach page %d: No more pages available", page))}
		}
		nextToken = raw.NextToken
	}

	raw, err := c.listPage(ctx, labels, limit, nextToken)
	if err != nil {
		return &SessionListResult{ResultMeta: clientFailureMeta(err.Error())}
	}
	return raw
}

func (c *Client) listPage(ctx context.Context, labels map[string]string, limit int32, nextToken string) (*SessionListResult, error) {
	params := map[string]string{}
	if len(labels) > 0 {
		labelsJSON, err := json.Marshal(labels)
		if err != nil {
			return nil, err
		}
		params["Labels"] = string(labelsJSON)
	}
	if limit > 0 {
		params["MaxResults"] = strconv.Itoa(int(limit))
	}
	if nextToken != "" {
		params["NextToken"] = nextToken
	}

	env, err := c.rpc.Invoke(ctx, "ListSession", c.apiKey, params)
	if err != nil {
		return &SessionListResult{ResultMeta: transportFailureMeta("", err.Error())}, nil
	}
	if !env.Success {
		return &SessionListResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}, nil
	}

	var data struct {
		SessionIDs []string `json:"SessionIds"`
		NextToken  string   `json:"NextToken"`
		MaxResults int32    `json:"MaxResults"`
		TotalCount int32    `json:"TotalCount"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &SessionListResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed ListSession data: %v", err))}, nil
	}
	return &SessionListResult{
		ResultMeta: successMeta(env.RequestID),
		SessionIDs: data.SessionIDs,
		NextToken:  data.NextToken,
		MaxResults: data.MaxResults,
		TotalCount: data.TotalCount,
	}, nil
}

// Delete tears a session down: optionally syncing context first, issuing
// the async release, then polling GetSession until the session is gone.
func (c *Client) Delete(ctx context.Context, session *Session, syncContext bool) *DeleteResult {
	if syncContext {
		if sync := session.Context.Sync(ctx, "", "", "", 150, 1500*time.Millisecond); !sync.SyncSuccess {
			slog.Warn("agentbay: context sync before delete did not fully complete", "session_id", session.SessionID)
		}
	}

	env, err := c.rpc.Invoke(ctx, "ReleaseMcpSession", c.apiKey, map[string]string{"SessionId": session.SessionID})
	if err != nil {
		return &DeleteResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &DeleteResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	deadline := time.Now().Add(50 * time.Second)
	for {
		get := c.Get(ctx, session.SessionID)
		notFound := !get.Success && isNotFound(get.Code, get.Message, get.HTTPStatus)
		status := ""
		if get.Success && get.Data != nil {
			status = get.Data.Status
		}
		if isSessionGone(notFound, status) {
			c.mu.Lock()
			delete(c.sessions, session.SessionID)
			c.mu.Unlock()
			metrics.ActiveSessions.Dec()
			return &DeleteResult{ResultMeta: successMeta(env.RequestID)}
		}
		if time.Now().After(deadline) {
			return &DeleteResult{ResultMeta: clientFailureMeta(fmt.Sprintf("session %s did not finish deleting within 50s", session.SessionID))}
		}
		select {
		case <-ctx.Done():
			return &DeleteResult{ResultMeta: clientFailureMeta(ctx.Err().Error())}
		case <-time.After(1 * time.Second):
		}
	}
}

func (c *Client) pollStatus(ctx context.Context, session *Session, want string, interval, timeout time.Duration) *OperationResult {
	deadline := time.Now().Add(timeout)
	for {
		get := c.Get(ctx, session.SessionID)
		if !get.Success {
			return &OperationResult{ResultMeta: get.ResultMeta}
		}
		switch get.Data.Status {
		case want:
			return &OperationResult{ResultMeta: successMeta(get.RequestID)}
		case "ERROR", "FAILED":
			return &OperationResult{ResultMeta: apiFailureMeta(get.RequestID, get.Data.Status, "session entered a terminal failure state", get.HTTPStatus)}
		}
		if time.Now().After(deadline) {
			return &OperationResult{ResultMeta: clientFailureMeta(fmt.Sprintf("session %s did not reach %s within %s", session.SessionID, want, timeout))}
		}
		select {
		case <-ctx.Done():
			return &OperationResult{ResultMeta: clientFailureMeta(ctx.Err().Error())}
		case <-time.After(interval):
		}
	}
}

// PauseAsync triggers a pause and returns as soon as the trigger succeeds.
func (c *Client) PauseAsync(ctx context.Context, session *Session) *OperationResult {
	env, err := c.rpc.Invoke(ctx, "PauseSessionAsync", c.apiKey, map[string]string{"SessionId": session.SessionID})
	if err != nil {
		return &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &OperationResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	return &OperationResult{ResultMeta: successMeta(env.RequestID)}
}

// Pause triggers a pause and blocks until the session reports PAUSED.
func (c *Client) Pause(ctx context.Context, session *Session) *OperationResult {
	if trigger := c.PauseAsync(ctx, session); !trigger.Success {
		return trigger
	}
	return c.pollStatus(ctx, session, "PAUSED", 2*time.Second, 600*time.Second)
}

// ResumeAsync triggers a resume and returns as soon as the trigger succeeds.
func (c *Client) ResumeAsync(ctx context.Context, session *Session) *OperationResult {
	env, err := c.rpc.Invoke(ctx, "ResumeSessionAsync", c.apiKey, map[string]string{"SessionId": session.SessionID})
	if err != nil {
		return &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &OperationResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	return &OperationResult{ResultMeta: successMeta(env.RequestID)}
}

// Resume triggers a resume and blocks until the session reports RUNNING.
func (c *Client) Resume(ctx context.Context, session *Session) *OperationResult {
	if trigger := c.ResumeAsync(ctx, session); !trigger.Success {
		return trigger
	}
	return c.pollStatus(ctx, session, "RUNNING", 2*time.Second, 600*time.Second)
}

// SetLabels replaces a session's label set.
func (c *Client) SetLabels(ctx context.Context, session *Session, labels map[string]string) *OperationResult {
	if len(labels) == 0 {
		return &OperationResult{ResultMeta: clientFailureMeta("Labels cannot be empty")}
	}
	for k, v := range labels {
		if k == "" {
			return &OperationResult{ResultMeta: clientFailureMeta("label key must not be empty")}
		}
		if v == "" {
			return &OperationResult{ResultMeta: clientFailureMeta(fmt.Sprintf("label value for key %q must not be empty", k))}
		}
	}

	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return &OperationResult{ResultMeta: clientFailureMeta(err.Error())}
	}
	env, err := c.rpc.Invoke(ctx, "SetLabel", c.apiKey, map[string]string{"SessionId": session.SessionID, "Labels": string(labelsJSON)})
	if err != nil {
		return &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &OperationResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	return &OperationResult{ResultMeta: successMeta(env.RequestID)}
}

// GetLabels reads a session's current label set.
func (c *Client) GetLabels(ctx context.Context, session *Session) *LabelsResult {
	env, err := c.rpc.Invoke(ctx, "GetLabel", c.apiKey, map[string]string{"SessionId": session.SessionID})
	if err != nil {
		return &LabelsResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &LabelsResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var data struct {
		Labels string `json:"Labels"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &LabelsResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed GetLabel data: %v", err))}
	}
	labels := map[string]string{}
	if data.Labels != "" {
		if err := json.Unmarshal([]byte(data.Labels), &labels); err != nil {
			return &LabelsResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed Labels payload: %v", err))}
		}
	}
	return &LabelsResult{ResultMeta: successMeta(env.RequestID), Labels: labels}
}

// Info fetches the MCP resource info needed to attach a streaming client.
func (c *Client) Info(ctx context.Context, session *Session) *SessionInfoResult {
	env, err := c.rpc.Invoke(ctx, "GetMcpResource", c.apiKey, map[string]string{"SessionId": session.SessionID})
	if err != nil {
		return &SessionInfoResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &SessionInfoResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var data struct {
		SessionID            string `json:"SessionId"`
		ResourceURL          string `json:"ResourceUrl"`
		AppID                string `json:"AppId"`
		AuthCode             string `json:"AuthCode"`
		ConnectionProperties string `json:"ConnectionProperties"`
		ResourceID           string `json:"ResourceId"`
		ResourceType         string `json:"ResourceType"`
		Ticket               string `json:"Ticket"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &SessionInfoResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed GetMcpResource data: %v", err))}
	}
	return &SessionInfoResult{
		ResultMeta: successMeta(env.RequestID),
		Info: &SessionInfo{
			SessionID: data.SessionID, ResourceURL: data.ResourceURL, AppID: data.AppID,
			AuthCode: data.AuthCode, ConnectionProperties: data.ConnectionProperties,
			ResourceID: data.ResourceID, ResourceType: data.ResourceType, Ticket: data.Ticket,
		},
	}
}

func (c *Client) httpClient() *http.Client {
	return &http.Client{Timeout: time.Duration(c.cfg.ReadTimeoutMs) * time.Millisecond}
}
