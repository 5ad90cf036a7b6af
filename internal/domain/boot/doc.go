// Package boot provides the simulated power-on sequence shown before the
// desktop appears.
//
// A Sequence reports POST lines and a loading percentage, then calls
// Finished exactly once. The desktop session knows nothing about its timing.
package boot
