//go:build kyber_debug

package ring

// debugChecks enables the range checks of the reductions.
const debugChecks = true
