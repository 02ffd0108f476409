package agentbay

import (
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolDescriptor describes one remote tool as reported by ListMcpTools.
// Server is the in-session server that owns the tool in VPC mode; Tool is
// the wire identifier the VPC /callTool endpoint expects in its "tool"
// query parameter, distinct from Name (the distillation collapsed the two,
// the original wire shape keeps both).
type ToolDescriptor struct {
	Name        string
	Server      string
	Tool        string
	InputSchema *jsonschema.Schema
}

// ContextFileEntry is a pure value describing one file under a context
// folder listing.
type ContextFileEntry struct {
	FileID       string
	FileName     string
	FilePath     string
	FileType     string
	Size         int64
	Status       string
	GmtCreate    string
	GmtModified  string
}

// ContextStatusItem is one entry from a (doubly JSON-encoded) ContextStatus
// payload, describing one upload/download sync task against one context.
type ContextStatusItem struct {
	ContextID    string `json:"contextId"`
	Path         string `json:"path"`
	Status       string `json:"status"`
	TaskType     string `json:"taskType"`
	StartTime    int64  `json:"startTime"`
	FinishTime   int64  `json:"finishTime"`
	ErrorMessage string `json:"errorMessage"`
}

// SessionInfo carries the fields returned by GetMcpResource: everything a
// caller needs to attach a desktop-streaming or CDP client to the session.
type SessionInfo struct {
	SessionID             string
	ResourceURL           string
	AppID                 string
	AuthCode              string
	ConnectionProperties  string
	ResourceID            string
	ResourceType          string
	Ticket                string
}

// MobileSimulationMode selects which post-create simulation command runs
// against a freshly created mobile session.
type MobileSimulationMode int

const (
	SimulatePropertiesOnly MobileSimulationMode = iota
	SimulateSensorsOnly
	SimulatePackagesOnly
	SimulateServicesOnly
	SimulateAll
)

// simulationArgs is the explicit lookup table mapping a simulation mode to
// its literal shell argument. Keeping this as a table, not string math,
// mirrors the source's own approach (see §9 Design Notes).
var simulationArgs = map[MobileSimulationMode]string{
	SimulatePropertiesOnly: "",
	SimulateSensorsOnly:    "-sensors",
	SimulatePackagesOnly:   "-packages",
	SimulateServicesOnly:   "-services",
	SimulateAll:            "-all",
}

// MobileSimulationConfig requests a post-create mobile-device simulation
// bootstrap command.
type MobileSimulationConfig struct {
	Mode MobileSimulationMode
	Path string
}

// BrowserContext requests a synthetic context-sync binding for browser
// profile data (cookies, local state) mounted at a fixed path.
type BrowserContext struct {
	ContextID  string
	AutoUpload bool
}

const browserDataPath = "/tmp/agentbay_browser_data"

// CreateSessionParams configures Client.Create.
type CreateSessionParams struct {
	Labels              map[string]string
	ImageID             string
	IsVPC               bool
	EnableBrowserReplay *bool
	McpPolicyID         string
	ContextSyncs        []*ContextSync
	BrowserContext      *BrowserContext
	MobileSimulation    *MobileSimulationConfig
	Framework           string
}

// Session is a handle to a server-side sandboxed runtime. It is created
// and owned exclusively by the Client's lifecycle controller; sub-services
// hold only a back-reference for lookups, never ownership.
type Session struct {
	client *Client

	SessionID            string
	ResourceURL          string
	IsVPC                bool
	NetworkInterfaceIP   string
	HTTPPort             string
	Token                string
	ImageID              string
	EnableBrowserReplay  bool
	AppID                string
	ResourceID           string
	ResourceType         string
	AuthCode             string
	ConnectionProperties string

	catalogMu   sync.RWMutex
	toolCatalog []ToolDescriptor

	FileSystem *FileSystemService
	Command    *CommandService
	Code       *CodeService
	Computer   *ComputerService
	Mobile     *MobileService
	Browser    *BrowserService
	Oss        *OssService
	Context    *SessionContextManager
	Agent      *AgentService
}

func (s *Session) bindSubServices() {
	s.FileSystem = &FileSystemService{session: s}
	s.Command = &CommandService{session: s}
	s.Code = &CodeService{session: s}
	s.Computer = &ComputerService{session: s}
	s.Mobile = &MobileService{session: s}
	s.Browser = &BrowserService{session: s}
	s.Oss = &OssService{session: s}
	s.Context = &SessionContextManager{session: s}
	s.Agent = &AgentService{session: s}
}

// ToolCatalog returns a snapshot of the session's discovered tool
// descriptors (populated once, for VPC sessions, right after creation).
func (s *Session) ToolCatalog() []ToolDescriptor {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	out := make([]ToolDescriptor, len(s.toolCatalog))
	copy(out, s.toolCatalog)
	return out
}

func (s *Session) setToolCatalog(tools []ToolDescriptor) {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()
	s.toolCatalog = tools
}

func (s *Session) findToolServer(name string) (ToolDescriptor, bool) {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()
	for _, td := range s.toolCatalog {
		if td.Name == name {
			return td, true
		}
	}
	return ToolDescriptor{}, false
}
