package agentbay

import "regexp"

// wildcardPattern matches any of the literal-path-forbidden characters.
var wildcardPattern = regexp.MustCompile(`[*?\[\]]`)

func containsWildcard(s string) bool { return wildcardPattern.MatchString(s) }

// UploadStrategy selects when a context's local changes are pushed back.
type UploadStrategy string

const UploadBeforeResourceRelease UploadStrategy = "UploadBeforeResourceRelease"

// DownloadStrategy selects how a context is pulled down on mount.
type DownloadStrategy string

const DownloadAsync DownloadStrategy = "DownloadAsync"

// UploadMode selects whether an upload is file-by-file or archived.
type UploadMode string

const (
	UploadModeFile    UploadMode = "File"
	UploadModeArchive UploadMode = "Archive"
)

// Lifecycle bounds how long a recycled object is retained.
type Lifecycle string

const (
	Lifecycle1Day    Lifecycle = "Lifecycle_1Day"
	Lifecycle3Day    Lifecycle = "Lifecycle_3Days"
	Lifecycle5Day    Lifecycle = "Lifecycle_5Days"
	Lifecycle10Day   Lifecycle = "Lifecycle_10Days"
	Lifecycle15Day   Lifecycle = "Lifecycle_15Days"
	Lifecycle30Day   Lifecycle = "Lifecycle_30Days"
	Lifecycle90Day   Lifecycle = "Lifecycle_90Days"
	Lifecycle180Day  Lifecycle = "Lifecycle_180Days"
	Lifecycle360Day  Lifecycle = "Lifecycle_360Days"
	LifecycleForever Lifecycle = "Lifecycle_Forever"
)

// UploadPolicy controls whether and how local changes are pushed back to
// the context before resource release.
type UploadPolicy struct {
	AutoUpload     bool           `json:"autoUpload"`
	UploadStrategy UploadStrategy `json:"uploadStrategy"`
	UploadMode     UploadMode     `json:"uploadMode"`
}

// DefaultUploadPolicy matches the original dataclass defaults.
func DefaultUploadPolicy() *UploadPolicy {
	return &UploadPolicy{AutoUpload: true, UploadStrategy: UploadBeforeResourceRelease, UploadMode: UploadModeFile}
}

// DownloadPolicy controls whether and how the context is pulled into the
// session on mount.
type DownloadPolicy struct {
	AutoDownload     bool             `json:"autoDownload"`
	DownloadStrategy DownloadStrategy `json:"downloadStrategy"`
}

// DefaultDownloadPolicy matches the original dataclass defaults.
func DefaultDownloadPolicy() *DownloadPolicy {
	return &DownloadPolicy{AutoDownload: true, DownloadStrategy: DownloadAsync}
}

// DeletePolicy controls local-file cleanup on context unmount.
type DeletePolicy struct {
	SyncLocalFile bool `json:"syncLocalFile"`
}

// DefaultDeletePolicy matches the original dataclass defaults.
func DefaultDeletePolicy() *DeletePolicy {
	return &DeletePolicy{SyncLocalFile: true}
}

// ExtractPolicy controls archive extraction behavior after download.
type ExtractPolicy struct {
	Extract              bool `json:"extract"`
	DeleteSrcFile         bool `json:"deleteSrcFile"`
	ExtractToCurrentFolder bool `json:"extractToCurrentFolder"`
}

// DefaultExtractPolicy matches the original dataclass defaults.
func DefaultExtractPolicy() *ExtractPolicy {
	return &ExtractPolicy{Extract: true, DeleteSrcFile: true, ExtractToCurrentFolder: false}
}

// RecyclePolicy bounds retention of recycled (overwritten/deleted) objects.
// Paths must be literal; wildcard characters "* ? [ ]" fail construction.
type RecyclePolicy struct {
	Lifecycle Lifecycle `json:"lifecycle"`
	Paths     []string  `json:"paths"`
}

// NewRecyclePolicy validates paths before constructing the policy.
func NewRecyclePolicy(lifecycle Lifecycle, paths []string) (*RecyclePolicy, error) {
	for _, p := range paths {
		if containsWildcard(p) {
			return nil, newValidationError("RecyclePolicy.paths: wildcard characters are not allowed: %q", p)
		}
	}
	return &RecyclePolicy{Lifecycle: lifecycle, Paths: paths}, nil
}

// DefaultRecyclePolicy matches the original dataclass defaults: forever
// retention, empty string meaning "all paths".
func DefaultRecyclePolicy() *RecyclePolicy {
	return &RecyclePolicy{Lifecycle: LifecycleForever, Paths: []string{""}}
}

// WhiteList names one path to include, with an optional list of
// sub-paths to exclude. Both Path and every entry of ExcludePaths must be
// literal (no wildcards).
type WhiteList struct {
	Path         string   `json:"path"`
	ExcludePaths []string `json:"excludePaths"`
}

// NewWhiteList validates Path and ExcludePaths before constructing.
func NewWhiteList(path string, excludePaths []string) (*WhiteList, error) {
	if containsWildcard(path) {
		return nil, newValidationError("WhiteList.path: wildcard characters are not allowed: %q", path)
	}
	for _, p := range excludePaths {
		if containsWildcard(p) {
			return nil, newValidationError("WhiteList.exclude_paths: wildcard characters are not allowed: %q", p)
		}
	}
	return &WhiteList{Path: path, ExcludePaths: excludePaths}, nil
}

// BWList is a black/white-list of paths to sync.
type BWList struct {
	WhiteLists []*WhiteList `json:"whiteLists"`
}

// DefaultBWList matches the original dataclass default: one catch-all
// white list entry covering everything.
func DefaultBWList() *BWList {
	wl, _ := NewWhiteList("", []string{})
	return &BWList{WhiteLists: []*WhiteList{wl}}
}

// MappingPolicy optionally remaps a context's mount path across OSes.
type MappingPolicy struct {
	Path string `json:"path"`
}

// SyncPolicy is the full policy tree attached to a ContextSync binding.
// MappingPolicy is only serialized when set, matching the original's
// conditional inclusion.
type SyncPolicy struct {
	UploadPolicy   *UploadPolicy   `json:"uploadPolicy"`
	DownloadPolicy *DownloadPolicy `json:"downloadPolicy"`
	DeletePolicy   *DeletePolicy   `json:"deletePolicy"`
	ExtractPolicy  *ExtractPolicy  `json:"extractPolicy"`
	RecyclePolicy  *RecyclePolicy  `json:"recyclePolicy"`
	BWList         *BWList         `json:"bwList"`
	MappingPolicy  *MappingPolicy  `json:"mappingPolicy,omitempty"`
}

// DefaultSyncPolicy fills every sub-policy with its own default,
// matching the original's __post_init__ behavior.
func DefaultSyncPolicy() *SyncPolicy {
	return &SyncPolicy{
		UploadPolicy:   DefaultUploadPolicy(),
		DownloadPolicy: DefaultDownloadPolicy(),
		DeletePolicy:   DefaultDeletePolicy(),
		ExtractPolicy:  DefaultExtractPolicy(),
		RecyclePolicy:  DefaultRecyclePolicy(),
		BWList:         DefaultBWList(),
	}
}

// completeSyncPolicy fills any nil sub-policy field with its default,
// mirroring the original's __post_init__ which fills only unset fields.
func completeSyncPolicy(p *SyncPolicy) *SyncPolicy {
	if p == nil {
		return DefaultSyncPolicy()
	}
	if p.UploadPolicy == nil {
		p.UploadPolicy = DefaultUploadPolicy()
	}
	if p.DownloadPolicy == nil {
		p.DownloadPolicy = DefaultDownloadPolicy()
	}
	if p.DeletePolicy == nil {
		p.DeletePolicy = DefaultDeletePolicy()
	}
	if p.ExtractPolicy == nil {
		p.ExtractPolicy = DefaultExtractPolicy()
	}
	if p.RecyclePolicy == nil {
		p.RecyclePolicy = DefaultRecyclePolicy()
	}
	if p.BWList == nil {
		p.BWList = DefaultBWList()
	}
	return p
}

// ContextSync is the mount binding attached to a session-creation request:
// mount Context ContextID at Path inside the session, governed by Policy.
type ContextSync struct {
	ContextID string
	Path      string
	Policy    *SyncPolicy
}

// NewContextSync builds a binding with the default policy.
func NewContextSync(contextID, path string) *ContextSync {
	return &ContextSync{ContextID: contextID, Path: path, Policy: DefaultSyncPolicy()}
}

// WithPolicy returns a copy of the binding with the given policy, filling
// any unset sub-policy fields with defaults.
func (c *ContextSync) WithPolicy(policy *SyncPolicy) *ContextSync {
	out := *c
	out.Policy = completeSyncPolicy(policy)
	return &out
}
