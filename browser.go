package agentbay

import (
	"context"
	"encoding/json"
	"fmt"
)

// BrowserService wraps the remote browser-automation tool family:
// initializing a managed browser instance and surfacing CDP connection
// details for external automation frameworks (Playwright, Puppeteer).
type BrowserService struct {
	session *Session
}

// BrowserLinkResult wraps InitBrowser/GetCdpLink/GetAdbLink.
type BrowserLinkResult struct {
	ResultMeta
	URL string
}

func (b *BrowserService) InitBrowser(ctx context.Context, options map[string]any) *BrowserLinkResult {
	if options == nil {
		options = map[string]any{}
	}
	optsJSON, err := json.Marshal(options)
	if err != nil {
		return &BrowserLinkResult{ResultMeta: clientFailureMeta(err.Error())}
	}

	env, err := b.session.client.rpc.Invoke(ctx, "InitBrowser", b.session.client.apiKey, map[string]string{
		"SessionId": b.session.SessionID,
		"Options":   string(optsJSON),
	})
	if err != nil {
		return &BrowserLinkResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &BrowserLinkResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	var data struct {
		URL string `json:"Url"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &BrowserLinkResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed InitBrowser data: %v", err))}
	}
	return &BrowserLinkResult{ResultMeta: successMeta(env.RequestID), URL: data.URL}
}

func (b *BrowserService) GetCdpLink(ctx context.Context) *BrowserLinkResult {
	return b.fetchLink(ctx, "GetCdpLink")
}

func (b *BrowserService) GetLink(ctx context.Context) *BrowserLinkResult {
	return b.fetchLink(ctx, "GetLink")
}

func (b *BrowserService) fetchLink(ctx context.Context, action string) *BrowserLinkResult {
	env, err := b.session.client.rpc.Invoke(ctx, action, b.session.client.apiKey, map[string]string{"SessionId": b.session.SessionID})
	if err != nil {
		return &BrowserLinkResult{ResultMeta: transportFailureMeta("", err.Error())}
	}
	if !env.Success {
		return &BrowserLinkResult{ResultMeta: apiFailureMeta(env.RequestID, env.Code, env.Message, env.HTTPStatusCode)}
	}
	var data struct {
		URL string `json:"Url"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return &BrowserLinkResult{ResultMeta: transportFailureMeta(env.RequestID, fmt.Sprintf("malformed %s data: %v", action, err))}
	}
	return &BrowserLinkResult{ResultMeta: successMeta(env.RequestID), URL: data.URL}
}
