//go:build !linux

package main

// Without a portable terminal probe, assume non-interactive output.
func stderrIsTTY() bool {
	return false
}
