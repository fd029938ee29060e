/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package dns resolves hostnames against an explicit nameserver list,
// caching the chosen address for the scheme lifetime and optionally
// delivering results through a reactor event rather than blocking the
// caller.
package dns

import "time"

// Family selects which record type to query.
type Family uint8

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

func (f Family) String() string {
	if f == FamilyIPv6 {
		return "AAAA"
	}
	return "A"
}

// Config configures a Resolver.
type Config struct {
	// Nameservers is tried in order, first usable answer wins. Entries
	// without a port default to ":53".
	Nameservers []string
	// Timeout bounds a single nameserver exchange. Zero uses 2 seconds.
	Timeout time.Duration
	// MinTTL/MaxTTL clamp the cache lifetime of a resolved answer,
	// regardless of what the server returned. Zero MaxTTL uses 5 minutes;
	// zero MinTTL uses 5 seconds.
	MinTTL time.Duration
	MaxTTL time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 2 * time.Second
}

func (c Config) clamp(ttl time.Duration) time.Duration {
	lo := c.MinTTL
	if lo <= 0 {
		lo = 5 * time.Second
	}
	hi := c.MaxTTL
	if hi <= 0 {
		hi = 5 * time.Minute
	}
	if ttl < lo {
		return lo
	}
	if ttl > hi {
		return hi
	}
	return ttl
}

type cacheKey struct {
	host   string
	family Family
}

type cacheEntry struct {
	addr   string
	expiry time.Time
}
