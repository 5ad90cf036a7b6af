// Package drag implements pointer-driven window repositioning.
//
// Each pointer is either Idle or Dragging a single window. A primary-button
// press inside a window's title bar starts a gesture and captures the offset
// between the pointer and the window's top-left corner; every move keeps that
// offset; release always ends the gesture, wherever the pointer is.
//
// The controller never touches z-order and never clamps positions.
package drag
