// Package window tracks the desktop's fixed set of windows.
//
// A window is either absent (closed) or open. Open windows may additionally be
// minimized (kept alive but not drawn) or maximized (filling the viewport with
// the previous geometry saved on the record).
//
// Stacking:
//   - A single focus counter is owned by the Manager
//   - BringToFront is the only operation that assigns a z-order
//   - The most recently focused window always holds the highest z-order
//
// Example Usage:
//
//	m := window.NewManager(window.DefaultConfig())
//	_ = m.Open(window.Explorer)
//	_ = m.ToggleMaximize(window.Explorer)
//	m.Close(window.Explorer)
package window
