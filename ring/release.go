//go:build !kyber_debug

package ring

const debugChecks = false
