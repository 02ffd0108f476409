package agentbay

// ResultMeta is embedded in every public result type. RequestID is always
// set when any server call occurred, and empty only when the failure was
// purely client-side. Code/Message/HTTPStatus are only populated when the
// failure came from an API-level (2xx, Success=false) response.
type ResultMeta struct {
	RequestID    string
	Success      bool
	ErrorMessage string
	Code         string
	Message      string
	HTTPStatus   int
}

func successMeta(requestID string) ResultMeta {
	return ResultMeta{RequestID: requestID, Success: true}
}

func apiFailureMeta(requestID, code, message string, httpStatus int) ResultMeta {
	return ResultMeta{
		RequestID:    requestID,
		Success:      false,
		ErrorMessage: "[" + code + "] " + message,
		Code:         code,
		Message:      message,
		HTTPStatus:   httpStatus,
	}
}

func clientFailureMeta(errMsg string) ResultMeta {
	return ResultMeta{Success: false, ErrorMessage: errMsg}
}

func transportFailureMeta(requestID, errMsg string) ResultMeta {
	return ResultMeta{RequestID: requestID, Success: false, ErrorMessage: errMsg}
}

// SessionResult wraps the outcome of Create.
type SessionResult struct {
	ResultMeta
	Session *Session
}

// DeleteResult wraps the outcome of Delete.
type DeleteResult struct{ ResultMeta }

// GetSessionData is the parsed Data payload of a GetSession response.
type GetSessionData struct {
	AppInstanceID      string
	ResourceID         string
	SessionID          string
	HTTPPort           string
	NetworkInterfaceIP string
	Token              string
	VPCResource        bool
	ResourceURL        string
	Status             string
}

// GetSessionResult wraps the outcome of Get.
type GetSessionResult struct {
	ResultMeta
	Data *GetSessionData
}

// SessionListResult wraps the outcome of List.
type SessionListResult struct {
	ResultMeta
	SessionIDs []string
	NextToken  string
	MaxResults int32
	TotalCount int32
}

// OperationResult wraps outcomes with no payload beyond success/failure
// (SetLabels, pause/resume triggers, DeleteFile, ...).
type OperationResult struct{ ResultMeta }

// LabelsResult wraps GetLabels.
type LabelsResult struct {
	ResultMeta
	Labels map[string]string
}

// SessionInfoResult wraps Client.Info.
type SessionInfoResult struct {
	ResultMeta
	Info *SessionInfo
}

// McpToolsResult wraps ListMcpTools.
type McpToolsResult struct {
	ResultMeta
	Tools []ToolDescriptor
}

// ToolResult is the dispatcher's output for every CallTool invocation.
// Success==true implies Data is populated and ErrorMessage=="";
// Success==false implies ErrorMessage is populated.
type ToolResult struct {
	ResultMeta
	Data string
}

// ContextResult wraps a single Context payload.
type ContextResult struct {
	ResultMeta
	Context *Context
}

// ContextListResult wraps List.
type ContextListResult struct {
	ResultMeta
	Contexts   []*Context
	NextToken  string
	MaxResults int32
}

// FileURLResult wraps GetFileUploadUrl / GetFileDownloadUrl.
type FileURLResult struct {
	ResultMeta
	URL        string
	ExpireTime int64
}

// FileListResult wraps ListFiles.
type FileListResult struct {
	ResultMeta
	Entries []*ContextFileEntry
	Count   int32
}

// ClearResult wraps Clear/ClearAsync/GetClearStatus.
type ClearResult struct {
	ResultMeta
	Status string
}

// ContextInfoResult wraps ContextManager.Info.
type ContextInfoResult struct {
	ResultMeta
	Items []*ContextStatusItem
}

// ContextSyncResult wraps ContextManager.Sync: Success here reflects
// whether the synchronization itself completed without failures, distinct
// from ResultMeta.Success which reflects whether the RPC calls succeeded.
type ContextSyncResult struct {
	ResultMeta
	SyncSuccess bool
}
