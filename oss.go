package agentbay

import "context"

// OssService wraps bucket-style upload/download URLs surfaced by the
// server, distinct from context file URLs: these target arbitrary
// caller-named buckets rather than a mounted context.
type OssService struct {
	session *Session
}

func (o *OssService) GetUploadURL(ctx context.Context, bucket, key string) *FileURLResult {
	res := o.session.CallTool(ctx, "oss_upload_url", map[string]any{"bucket": bucket, "key": key})
	if !res.Success {
		return &FileURLResult{ResultMeta: res.ResultMeta}
	}
	return &FileURLResult{ResultMeta: res.ResultMeta, URL: res.Data}
}

func (o *OssService) GetDownloadURL(ctx context.Context, bucket, key string) *FileURLResult {
	res := o.session.CallTool(ctx, "oss_download_url", map[string]any{"bucket": bucket, "key": key})
	if !res.Success {
		return &FileURLResult{ResultMeta: res.ResultMeta}
	}
	return &FileURLResult{ResultMeta: res.ResultMeta, URL: res.Data}
}
