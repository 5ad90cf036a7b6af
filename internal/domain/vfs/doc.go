// Package vfs implements the desktop's simulated file listing.
//
// Files are never written anywhere. Deleting a file moves it to the trash
// with a timestamp; restoring moves it back with its original ID. Purging and
// emptying the trash are irreversible. Every operation tolerates unknown IDs.
package vfs
