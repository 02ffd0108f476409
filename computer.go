package agentbay

import (
	"context"
)

// ComputerService wraps the remote desktop UI-automation tool family.
type ComputerService struct {
	session *Session
}

var validMouseButtons = map[string]bool{
	"left": true, "right": true, "middle": true, "double_left": true,
}

func validateMouseButton(button string) error {
	if !validMouseButtons[button] {
		return newValidationError("invalid mouse button %q (expected left, right, middle, or double_left)", button)
	}
	return nil
}

func (c *ComputerService) ClickMouse(ctx context.Context, x, y int, button string) *ToolResult {
	if err := validateMouseButton(button); err != nil {
		return &ToolResult{ResultMeta: clientFailureMeta(err.Error())}
	}
	return c.session.CallTool(ctx, "click_mouse", map[string]any{"x": x, "y": y, "button": button})
}

func (c *ComputerService) PressKeys(ctx context.Context, keys []string, hold bool) *ToolResult {
	return c.session.CallTool(ctx, "press_keys", map[string]any{"keys": keys, "hold": hold})
}

func (c *ComputerService) InputText(ctx context.Context, text string) *ToolResult {
	return c.session.CallTool(ctx, "input_text", map[string]any{"text": text})
}

func (c *ComputerService) Screenshot(ctx context.Context) *ToolResult {
	return c.session.CallTool(ctx, "screenshot", map[string]any{})
}

func (c *ComputerService) ListRootWindows(ctx context.Context) *ToolResult {
	return c.session.CallTool(ctx, "list_root_windows", map[string]any{})
}

func (c *ComputerService) ListVisibleApps(ctx context.Context) *ToolResult {
	return c.session.CallTool(ctx, "list_visible_apps", map[string]any{})
}

func (c *ComputerService) Scroll(ctx context.Context, x, y, deltaX, deltaY int) *ToolResult {
	return c.session.CallTool(ctx, "scroll", map[string]any{"x": x, "y": y, "delta_x": deltaX, "delta_y": deltaY})
}

// MobileService wraps the remote mobile UI-automation tool family. It
// shares its click/keys/text surface with ComputerService but speaks in
// taps and swipes instead of mouse clicks.
type MobileService struct {
	session *Session
}

func (m *MobileService) Tap(ctx context.Context, x, y int) *ToolResult {
	return m.session.CallTool(ctx, "tap", map[string]any{"x": x, "y": y})
}

func (m *MobileService) Swipe(ctx context.Context, startX, startY, endX, endY int, durationMs int64) *ToolResult {
	if durationMs <= 0 {
		durationMs = 300
	}
	return m.session.CallTool(ctx, "swipe", map[string]any{
		"start_x": startX, "start_y": startY, "end_x": endX, "end_y": endY, "duration_ms": durationMs,
	})
}

func (m *MobileService) PressKeys(ctx context.Context, keys []string) *ToolResult {
	return m.session.CallTool(ctx, "press_keys", map[string]any{"keys": keys})
}

func (m *MobileService) InputText(ctx context.Context, text string) *ToolResult {
	return m.session.CallTool(ctx, "input_text", map[string]any{"text": text})
}

func (m *MobileService) Screenshot(ctx context.Context) *ToolResult {
	return m.session.CallTool(ctx, "screenshot", map[string]any{})
}

func (m *MobileService) ListVisibleApps(ctx context.Context) *ToolResult {
	return m.session.CallTool(ctx, "list_visible_apps", map[string]any{})
}

// GetAdbLink returns a connection URL for an external adb client to attach
// to this mobile session directly.
func (m *MobileService) GetAdbLink(ctx context.Context) *BrowserLinkResult {
	return (&BrowserService{session: m.session}).fetchLink(ctx, "GetAdbLink")
}
