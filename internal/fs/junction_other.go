//go:build !windows

package fs

func isSystemJunction(string) bool {
	return false
}
