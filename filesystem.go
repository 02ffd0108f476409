package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSystemService wraps the remote filesystem tool family.
type FileSystemService struct {
	session *Session
}

// FileEntry is one entry of a directory listing.
type FileEntry struct {
	Name        string `json:"name"`
	IsFile      bool   `json:"is_file"`
	IsDirectory bool   `json:"is_directory"`
	Size        int64  `json:"size"`
}

// FileInfoResult wraps GetFileInfo.
type FileInfoResult struct {
	ResultMeta
	Info *FileEntry
}

// DirectoryListResult wraps ListDirectory.
type DirectoryListResult struct {
	ResultMeta
	Entries []FileEntry
}

// MultiFileResult wraps ReadMultipleFiles.
type MultiFileResult struct {
	ResultMeta
	Contents map[string]string
}

func (f *FileSystemService) ReadFile(ctx context.Context, path string) *ToolResult {
	return f.session.CallTool(ctx, "read_file", map[string]any{"path": path})
}

func (f *FileSystemService) WriteFile(ctx context.Context, path, content, mode string) *OperationResult {
	if mode == "" {
		mode = "overwrite"
	}
	res := f.session.CallTool(ctx, "write_file", map[string]any{"path": path, "content": content, "mode": mode})
	return &OperationResult{ResultMeta: res.ResultMeta}
}

func (f *FileSystemService) CreateDirectory(ctx context.Context, path string) *OperationResult {
	res := f.session.CallTool(ctx, "create_directory", map[string]any{"path": path})
	return &OperationResult{ResultMeta: res.ResultMeta}
}

func (f *FileSystemService) ListDirectory(ctx context.Context, path string) *DirectoryListResult {
	res := f.session.CallTool(ctx, "list_directory", map[string]any{"path": path})
	if !res.Success {
		return &DirectoryListResult{ResultMeta: res.ResultMeta}
	}
	var entries []FileEntry
	if err := json.Unmarshal([]byte(res.Data), &entries); err != nil {
		return &DirectoryListResult{ResultMeta: transportFailureMeta(res.RequestID, fmt.Sprintf("malformed list_directory response: %v", err))}
	}
	return &DirectoryListResult{ResultMeta: res.ResultMeta, Entries: entries}
}

func (f *FileSystemService) GetFileInfo(ctx context.Context, path string) *FileInfoResult {
	res := f.session.CallTool(ctx, "get_file_info", map[string]any{"path": path})
	if !res.Success {
		return &FileInfoResult{ResultMeta: res.ResultMeta}
	}
	var info FileEntry
	if err := json.Unmarshal([]byte(res.Data), &info); err != nil {
		return &FileInfoResult{ResultMeta: transportFailureMeta(res.RequestID, fmt.Sprintf("malformed get_file_info response: %v", err))}
	}
	return &FileInfoResult{ResultMeta: res.ResultMeta, Info: &info}
}

// SearchFiles validates pattern client-side with doublestar before
// forwarding it, so an invalid glob fails immediately instead of waiting
// on a round trip.
func (f *FileSystemService) SearchFiles(ctx context.Context, root, pattern string) *ToolResult {
	if err := doublestar.ValidatePattern(pattern); err != nil {
		return &ToolResult{ResultMeta: clientFailureMeta(fmt.Sprintf("invalid search pattern %q: %v", pattern, err))}
	}
	return f.session.CallTool(ctx, "search_files", map[string]any{"path": root, "pattern": pattern})
}

func (f *FileSystemService) ReadMultipleFiles(ctx context.Context, paths []string) *MultiFileResult {
	res := f.session.CallTool(ctx, "read_multiple_files", map[string]any{"paths": paths})
	if !res.Success {
		return &MultiFileResult{ResultMeta: res.ResultMeta}
	}
	var contents map[string]string
	if err := json.Unmarshal([]byte(res.Data), &contents); err != nil {
		return &MultiFileResult{ResultMeta: transportFailureMeta(res.RequestID, fmt.Sprintf("malformed read_multiple_files response: %v", err))}
	}
	return &MultiFileResult{ResultMeta: res.ResultMeta, Contents: contents}
}

// UploadFile PUTs local content directly to a presigned context upload URL,
// bypassing the control-plane transport entirely since the URL is already
// authenticated.
func (f *FileSystemService) UploadFile(ctx context.Context, contextID, filePath string, content io.Reader) *OperationResult {
	urlRes := f.session.client.Contexts.GetFileUploadUrl(ctx, contextID, filePath)
	if !urlRes.Success {
		return &OperationResult{ResultMeta: urlRes.ResultMeta}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, urlRes.URL, content)
	if err != nil {
		return &OperationResult{ResultMeta: clientFailureMeta(err.Error())}
	}
	resp, err := f.session.client.httpClient().Do(req)
	if err != nil {
		return &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &OperationResult{ResultMeta: transportFailureMeta("", fmt.Sprintf("upload failed: http %d", resp.StatusCode))}
	}
	return &OperationResult{ResultMeta: successMeta("")}
}

// DownloadFile GETs content directly from a presigned context download URL.
func (f *FileSystemService) DownloadFile(ctx context.Context, contextID, filePath string) (string, *OperationResult) {
	urlRes := f.session.client.Contexts.GetFileDownloadUrl(ctx, contextID, filePath)
	if !urlRes.Success {
		return "", &OperationResult{ResultMeta: urlRes.ResultMeta}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlRes.URL, nil)
	if err != nil {
		return "", &OperationResult{ResultMeta: clientFailureMeta(err.Error())}
	}
	resp, err := f.session.client.httpClient().Do(req)
	if err != nil {
		return "", &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &OperationResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &OperationResult{ResultMeta: transportFailureMeta("", fmt.Sprintf("download failed: http %d", resp.StatusCode))}
	}
	return string(body), &OperationResult{ResultMeta: successMeta("")}
}
