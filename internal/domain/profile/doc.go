// Package profile loads the seed data for new desktop sessions.
//
// A profile names the files a fresh desktop starts with, the terminal's
// opening lines, window placement, the focus counter's starting value and the
// boot/restart timings. Profiles may be written in YAML, TOML or JSON; any
// field left out falls back to the stock desktop.
//
// Example profile (YAML):
//
//	name: demo
//	files:
//	  - {id: 1, name: readme.md, size: 1KB}
//	windows:
//	  terminal: {left: 40, top: 40, width: 640, height: 400}
//	timings:
//	  fade_ms: 100
package profile
