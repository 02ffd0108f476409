package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BaseURL is the fixed endpoint for STS token issuance, matching the
// original SDK's hard-coded token service.
const BaseURL = "https://wyota.cn-hangzhou.aliyuncs.com"

// MillisPerDay bounds how long a successfully-fetched token is trusted
// before the manager forces a refresh.
const MillisPerDay = int64(24 * time.Hour / time.Millisecond)

// StsToken carries short-lived credentials for the remote log store.
type StsToken struct {
	AccessKeyID     string
	AccessKeySecret string
	SecurityToken   string
	Expiration      string
}

// TraceSlsInfo describes where trace/track events should be sent once a
// token has been obtained.
type TraceSlsInfo struct {
	Project      string
	LogStore     string
	LogStorePath string
	LogStoreURL  string
	ServerURL    string
}

// TokenManager requests and caches STS credentials for the telemetry pipeline.
type TokenManager struct {
	httpClient *http.Client
	instanceID string
	baseURL    string // overrides BaseURL when set; used by tests

	lastSuccess time.Time
}

// NewTokenManager creates a token manager with its own identity, mirroring
// the per-process uuid the source stamps on every GetTerminalReportToken call.
func NewTokenManager(httpClient *http.Client) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &TokenManager{httpClient: httpClient, instanceID: uuid.NewString()}
}

// IsInvalid reports whether the last successful token fetch is stale enough
// to warrant an unconditional refresh (no cached response, or ≥24h old).
func (m *TokenManager) IsInvalid() bool {
	if m.lastSuccess.IsZero() {
		return true
	}
	return time.Since(m.lastSuccess).Milliseconds() >= MillisPerDay
}

type tokenResponse struct {
	Code      string `json:"Code"`
	RequestID string `json:"RequestId"`
	Success   bool   `json:"Success"`
	Data      struct {
		StsToken struct {
			AccessKeyID     string `json:"AccessKeyId"`
			AccessKeySecret string `json:"AccessKeySecret"`
			SecurityToken   string `json:"SecurityToken"`
			Expiration      string `json:"Expiration"`
			TraceSlsInfo    struct {
				Project      string `json:"Project"`
				LogStore     string `json:"LogStore"`
				LogStorePath string `json:"LogStorePath"`
				LogStoreURL  string `json:"LogStoreUrl"`
				ServerURL    string `json:"ServerUrl"`
			} `json:"TraceSlsInfo"`
		} `json:"StsToken"`
	} `json:"Data"`
}

// RequestToken fetches a fresh STS token from BaseURL.
func (m *TokenManager) RequestToken(ctx context.Context) (*StsToken, *TraceSlsInfo, error) {
	form := url.Values{
		"Format":      {"json"},
		"Version":     {"2021-04-20"},
		"product":     {"wyota"},
		"Timestamp":   {time.Now().UTC().Format("2006-01-02T15:04:05Z")},
		"Action":      {"GetTerminalReportToken"},
		"Uuid":        {m.instanceID},
		"NetworkType": {"internet"},
	}

	base := m.baseURL
	if base == "" {
		base = BaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("telemetry: token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("telemetry: token request returned status %s", strconv.Itoa(resp.StatusCode))
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil, fmt.Errorf("telemetry: decode token response: %w", err)
	}
	if !body.Success || body.Code != "" && body.Code != "200" && body.Code != "Success" {
		return nil, nil, fmt.Errorf("telemetry: token request failed: code=%s", body.Code)
	}

	token := &StsToken{
		AccessKeyID:     body.Data.StsToken.AccessKeyID,
		AccessKeySecret: body.Data.StsToken.AccessKeySecret,
		SecurityToken:   body.Data.StsToken.SecurityToken,
		Expiration:      body.Data.StsToken.Expiration,
	}
	info := &TraceSlsInfo{
		Project:      body.Data.StsToken.TraceSlsInfo.Project,
		LogStore:     body.Data.StsToken.TraceSlsInfo.LogStore,
		LogStorePath: body.Data.StsToken.TraceSlsInfo.LogStorePath,
		LogStoreURL:  body.Data.StsToken.TraceSlsInfo.LogStoreURL,
		ServerURL:    body.Data.StsToken.TraceSlsInfo.ServerURL,
	}

	m.lastSuccess = time.Now()
	return token, info, nil
}

// IsAuthError reports whether err (or its message) looks like an
// authentication failure that should trigger a forced token refresh.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"401", "403", "unauthorized", "forbidden"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
