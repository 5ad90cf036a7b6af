package types

// Inbound WebSocket message types
const (
	MsgIconActivate      = "icon_activate"
	MsgTaskbarClick      = "taskbar_click"
	MsgStartMenuToggle   = "start_menu_toggle"
	MsgStartMenuLaunch   = "start_menu_launch"
	MsgRestart           = "restart"
	MsgTitleMinimize     = "title_minimize"
	MsgTitleMaximize     = "title_maximize"
	MsgTitleClose        = "title_close"
	MsgWindowPress       = "window_press"
	MsgPointerDown       = "pointer_down"
	MsgPointerMove       = "pointer_move"
	MsgPointerUp         = "pointer_up"
	MsgDeleteFile        = "delete_file"
	MsgRestoreFile       = "restore_file"
	MsgPurgeFile         = "purge_file"
	MsgEmptyTrash        = "empty_trash"
	MsgTerminalSubmit    = "terminal_submit"
	MsgTerminalHistoryUp = "terminal_history_up"
	MsgPing              = "ping"
)

// Outbound frame types
const (
	FrameSnapshot = "snapshot"
	FrameError    = "error"
	FramePong     = "pong"
)

// WSMessage represents a WebSocket input message. Only the fields its Type
// needs are read.
type WSMessage struct {
	Type     string `json:"type"`
	Window   string `json:"window,omitempty"`
	Pointer  int    `json:"pointer,omitempty"`
	Button   int    `json:"button,omitempty"`
	TitleBar bool   `json:"title_bar,omitempty"`
	X        int    `json:"x,omitempty"`
	Y        int    `json:"y,omitempty"`
	ID       *int   `json:"id,omitempty"`
	Line     string `json:"line,omitempty"`
}

// ErrorFrame reports rejected input. The connection stays open.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewErrorFrame builds an error frame
func NewErrorFrame(message string) ErrorFrame {
	return ErrorFrame{Type: FrameError, Message: message}
}

// PongFrame answers a ping
type PongFrame struct {
	Type string `json:"type"`
}
