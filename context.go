package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Context is a named persistent volume, independent of any session, that
// can be mounted into one or more sessions via a ContextSync binding.
type Context struct {
	ID         string
	Name       string
	State      string
	CreatedAt  string
	LastUsedAt string
}

// ContextService is the CRUD + file-operations surface for contexts,
// exposed as Client.Contexts.
type ContextService struct {
	client *Client
}

// List returns contexts with server-driven pagination.
func (s *ContextService) List(ctx context.Context, maxResults int32, nextToken string) *ContextListResult {
	params := map[string]string{}
	if maxResults > 0 {
		params["MaxResults"] = strconv.Itoa(int(maxResults))
	}
	if nextToken != "" {
		params["NextToken"] = nextToken
	}

	env, err := s.client.rpc.Invoke(ctx, "ListContexts", s.client.apiKey, params)
	if err != nil {
		return &ContextListResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &ContextListResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var data struct {
		Contexts []struct {
			ID         string `json:"Id"`
			Name       string `json:"Name"`
			State      string `json:"State"`
			CreateTime string `json:"CreateTime"`
			LastUsedAt string `json:"LastUsedTime"`
		} `json:"Contexts"`
		NextToken  string `json:"NextToken"`
		MaxResults int32  `json:"MaxResults"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &ContextListResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed ListContexts data: %v", err))}
	}

	out := make([]*Context, 0, len(data.Contexts))
	for _, c := range data.Contexts {
		out = append(out, &Context{ID: c.ID, Name: c.Name, State: c.State, CreatedAt: c.CreateTime, LastUsedAt: c.LastUsedAt})
	}
	return &ContextListResult{
		ResultMeta: successMeta(env.RequestID),
		Contexts:   out,
		NextToken:  data.NextToken,
		MaxResults: data.MaxResults,
	}
}

// Get looks up a context by name or id. allowCreate requests the server
// create the context if it does not already exist; it is invalid to set
// allowCreate alongside contextID (client-side validation, per spec §4.5).
func (s *ContextService) Get(ctx context.Context, name, contextID string, allowCreate bool) *ContextResult {
	if name == "" && contextID == "" {
		return &ContextResult{ResultMeta: clientFailureMeta("at least one of name or context_id is required")}
	}
	if contextID != "" && allowCreate {
		return &ContextResult{ResultMeta: clientFailureMeta("allow_create is invalid when context_id is set")}
	}

	params := map[string]string{}
	if name != "" {
		params["Name"] = name
	}
	if contextID != "" {
		params["Id"] = contextID
	}
	if allowCreate {
		params["AllowCreate"] = "true"
	}

	env, err := s.client.rpc.Invoke(ctx, "GetContext", s.client.apiKey, params)
	if err != nil {
		return &ContextResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &ContextResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var data struct {
		ID         string `json:"Id"`
		Name       string `json:"Name"`
		State      string `json:"State"`
		CreateTime string `json:"CreateTime"`
		LastUsedAt string `json:"LastUsedTime"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &ContextResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed GetContext data: %v", err))}
	}

	return &ContextResult{
		ResultMeta: successMeta(env.RequestID),
		Context:    &Context{ID: data.ID, Name: data.Name, State: data.State, CreatedAt: data.CreateTime, LastUsedAt: data.LastUsedAt},
	}
}

// Update renames a context.
func (s *ContextService) Update(ctx context.Context, contextID, newName string) *OperationResult {
	env, err := s.client.rpc.Invoke(ctx, "ModifyContext", s.client.apiKey, map[string]string{"Id": contextID, "Name": newName})
	if err != nil {
		return &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &OperationResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	return &OperationResult{ResultMeta: successMeta(env.RequestID)}
}

// Delete removes a context.
func (s *ContextService) Delete(ctx context.Context, contextID string) *OperationResult {
	env, err := s.client.rpc.Invoke(ctx, "DeleteContext", s.client.apiKey, map[string]string{"Id": contextID})
	if err != nil {
		return &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &OperationResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	return &OperationResult{ResultMeta: successMeta(env.RequestID)}
}

// GetFileUploadUrl returns a presigned URL for bulk upload into a context
// path; the control plane never streams bytes itself.
func (s *ContextService) GetFileUploadUrl(ctx context.Context, contextID, filePath string) *FileURLResult {
	env, err := s.client.rpc.Invoke(ctx, "GetContextFileUploadUrl", s.client.apiKey, map[string]string{"ContextId": contextID, "FilePath": filePath})
	if err != nil {
		return &FileURLResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &FileURLResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	var data struct {
		URL        string `json:"Url"`
		ExpireTime int64  `json:"ExpireTime"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &FileURLResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed response: %v", err))}
	}
	return &FileURLResult{ResultMeta: successMeta(env.RequestID), URL: data.URL, ExpireTime: data.ExpireTime}
}

// GetFileDownloadUrl returns a presigned URL for bulk download.
func (s *ContextService) GetFileDownloadUrl(ctx context.Context, contextID, filePath string) *FileURLResult {
	env, err := s.client.rpc.Invoke(ctx, "GetContextFileDownloadUrl", s.client.apiKey, map[string]string{"ContextId": contextID, "FilePath": filePath})
	if err != nil {
		return &FileURLResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &FileURLResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	var data struct {
		URL        string `json:"Url"`
		ExpireTime int64  `json:"ExpireTime"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &FileURLResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed response: %v", err))}
	}
	return &FileURLResult{ResultMeta: successMeta(env.RequestID), URL: data.URL, ExpireTime: data.ExpireTime}
}

// DeleteFile removes one file from a context.
func (s *ContextService) DeleteFile(ctx context.Context, contextID, filePath string) *OperationResult {
	env, err := s.client.rpc.Invoke(ctx, "DeleteContextFile", s.client.apiKey, map[string]string{"ContextId": contextID, "FilePath": filePath})
	if err != nil {
		return &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &OperationResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	return &OperationResult{ResultMeta: successMeta(env.RequestID)}
}

// ListFiles lists entries under parent, paginated.
func (s *ContextService) ListFiles(ctx context.Context, contextID, parent string, page, pageSize int32) *FileListResult {
	params := map[string]string{"ContextId": contextID, "ParentFolderPath": parent}
	if page > 0 {
		params["PageNumber"] = strconv.Itoa(int(page))
	}
	if pageSize > 0 {
		params["PageSize"] = strconv.Itoa(int(pageSize))
	}

	env, err := s.client.rpc.Invoke(ctx, "DescribeContextFiles", s.client.apiKey, params)
	if err != nil {
		return &FileListResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &FileListResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}

	var data struct {
		Count   int32 `json:"Count"`
		Entries []struct {
			FileID      string `json:"FileId"`
			FileName    string `json:"FileName"`
			FilePath    string `json:"FilePath"`
			FileType    string `json:"FileType"`
			Size        int64  `json:"Size"`
			Status      string `json:"Status"`
			GmtCreate   string `json:"GmtCreate"`
			GmtModified string `json:"GmtModified"`
		} `json:"Entries"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &FileListResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed response: %v", err))}
	}

	entries := make([]*ContextFileEntry, 0, len(data.Entries))
	for _, e := range data.Entries {
		entries = append(entries, &ContextFileEntry{
			FileID: e.FileID, FileName: e.FileName, FilePath: e.FilePath, FileType: e.FileType,
			Size: e.Size, Status: e.Status, GmtCreate: e.GmtCreate, GmtModified: e.GmtModified,
		})
	}
	return &FileListResult{ResultMeta: successMeta(env.RequestID), Entries: entries, Count: data.Count}
}

// ClearAsync requests an asynchronous clear and returns immediately with a
// "clearing" status; it does not wait for completion.
func (s *ContextService) ClearAsync(ctx context.Context, contextID string) *ClearResult {
	env, err := s.client.rpc.Invoke(ctx, "ClearContext", s.client.apiKey, map[string]string{"Id": contextID})
	if err != nil {
		return &ClearResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &ClearResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	return &ClearResult{ResultMeta: successMeta(env.RequestID), Status: "clearing"}
}

// GetClearStatus reads the context's current state and returns it
// unchanged in Status ("available", "clearing", "in-use", "pre-available"
// or any other value the server reports); it does not classify the state.
// Clear treats "available" as done and every other state as "keep polling".
func (s *ContextService) GetClearStatus(ctx context.Context, contextID string) *ClearResult {
	res := s.Get(ctx, "", contextID, false)
	if !res.Success {
		return &ClearResult{ResultMeta: res.ResultMeta}
	}
	return &ClearResult{ResultMeta: successMeta(res.RequestID), Status: res.Context.State}
}

// Clear synchronously clears a context: it calls ClearAsync then polls
// GetClearStatus every interval until state=="available". It returns
// *ClearanceTimeoutError if timeout elapses first — the only timeout in
// the SDK that is raised rather than returned as a failure envelope.
//
// An already-"available" context returns success on the first poll, without
// requiring an observed "clearing" sample first; this matches the source's
// poll-until-available behavior.
func (s *ContextService) Clear(ctx context.Context, contextID string, timeout, interval time.Duration) (*ClearResult, error) {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}

	start := s.ClearAsync(ctx, contextID)
	if !start.Success {
		return start, nil
	}

	deadline := time.Now().Add(timeout)
	for {
		status := s.GetClearStatus(ctx, contextID)
		if !status.Success {
			return status, nil
		}
		if status.Status == "available" {
			return status, nil
		}
		// clearing / in-use / pre-available / unknown: keep polling.
		if time.Now().After(deadline) {
			return nil, &ClearanceTimeoutError{ContextID: contextID, Timeout: timeout.String()}
		}
		select {
		case <-ctx.Done():
			return nil, &ClearanceTimeoutError{ContextID: contextID, Timeout: timeout.String()}
		case <-time.After(interval):
		}
	}
}
