// Package terminal implements the desktop's line-command interpreter.
//
// The interpreter reads one line at a time, executes it against the virtual
// file store and the window manager, and appends its output to a transcript.
// User mistakes (missing arguments, unknown commands, missing files) become
// transcript lines; nothing is returned as an error.
//
// Commands:
//   - help: list commands
//   - ls [pattern]: list active files, optionally filtered by a glob
//   - cd <name>: open a window or "access" a file
//   - open <name>: open a window
//   - rm <name>: move a file to the recycle bin
//   - restore <name>: move a file out of the recycle bin
//   - emptybin: empty the recycle bin
//   - clear: clear the transcript
package terminal
