// Package ws serves the desktop over WebSocket.
//
// Each connection to GET /desktop gets its own desktop session. The page
// sends input messages and renders the snapshot frames it receives.
//
// Message Types (Client → Server):
//   - icon_activate, taskbar_click, start_menu_launch: {"window": name}
//   - title_minimize, title_maximize, title_close, window_press: {"window": name}
//   - start_menu_toggle, restart
//   - pointer_down: {"pointer", "button", "window", "title_bar", "x", "y"}
//   - pointer_move: {"pointer", "x", "y"}; pointer_up: {"pointer"}
//   - delete_file, restore_file, purge_file: {"id"}; empty_trash
//   - terminal_submit: {"line"}; terminal_history_up
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - snapshot: The session state after a transition
//   - error: Rejected input (malformed, oversized, rate limited). The
//     connection stays open.
//   - pong: Answer to ping
//
// Example Usage:
//
//	handler := ws.NewHandler(factory, sessions, metrics, cfg.WebSocket, logger)
//	router.GET("/desktop", handler.HandleConnection)
package ws
