//go:build !linux

package engine

// lookupMAC has no portable neighbor-table source outside Linux; the MAC
// stays empty as spec.md §3 allows ("empty otherwise").
func lookupMAC(ip string) string { return "" }
