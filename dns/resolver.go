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

package dns

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	miekg "github.com/miekg/dns"

	"github.com/anyks/awh/reactor"
)

// Resolver resolves hostnames against an explicit nameserver list, caching
// the chosen address per {host, family} for the clamped TTL.
type Resolver struct {
	cfg    Config
	client *miekg.Client

	mu    sync.Mutex
	cache map[cacheKey]cacheEntry
}

// NewResolver builds a Resolver. At least one nameserver is required.
func NewResolver(cfg Config) (*Resolver, error) {
	if len(cfg.Nameservers) == 0 {
		return nil, ErrorNoNameservers.Error()
	}
	return &Resolver{
		cfg:    cfg,
		client: &miekg.Client{Timeout: cfg.timeout()},
		cache:  make(map[cacheKey]cacheEntry),
	}, nil
}

func serverAddr(ns string) string {
	if _, _, err := net.SplitHostPort(ns); err == nil {
		return ns
	}
	return net.JoinHostPort(ns, "53")
}

func questionType(family Family) uint16 {
	if family == FamilyIPv6 {
		return miekg.TypeAAAA
	}
	return miekg.TypeA
}

func firstAddress(msg *miekg.Msg, family Family) (string, time.Duration, bool) {
	for _, rr := range msg.Answer {
		switch family {
		case FamilyIPv6:
			if a, ok := rr.(*miekg.AAAA); ok {
				return a.AAAA.String(), time.Duration(a.Hdr.Ttl) * time.Second, true
			}
		default:
			if a, ok := rr.(*miekg.A); ok {
				return a.A.String(), time.Duration(a.Hdr.Ttl) * time.Second, true
			}
		}
	}
	return "", 0, false
}

func (r *Resolver) lookupCache(key cacheKey) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[key]
	if !ok || time.Now().After(entry.expiry) {
		return "", false
	}
	return entry.addr, true
}

func (r *Resolver) storeCache(key cacheKey, addr string, ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = cacheEntry{addr: addr, expiry: time.Now().Add(r.cfg.clamp(ttl))}
}

// Resolve returns the first usable address for host, consulting the cache
// first and otherwise querying each configured nameserver in order.
func (r *Resolver) Resolve(ctx context.Context, host string, family Family) (net.IP, error) {
	key := cacheKey{host: strings.ToLower(host), family: family}

	if addr, ok := r.lookupCache(key); ok {
		return net.ParseIP(addr), nil
	}

	msg := new(miekg.Msg)
	msg.SetQuestion(miekg.Fqdn(host), questionType(family))

	var lastErr error
	for _, ns := range r.cfg.Nameservers {
		resp, _, err := r.client.ExchangeContext(ctx, msg, serverAddr(ns))
		if err != nil {
			lastErr = ErrorQueryFailed.Error(err)
			continue
		}
		if resp.Rcode != miekg.RcodeSuccess {
			lastErr = ErrorQueryFailed.Error()
			continue
		}

		addr, ttl, ok := firstAddress(resp, family)
		if !ok {
			lastErr = ErrorNoUsableAddress.Error()
			continue
		}

		r.storeCache(key, addr, ttl)
		return net.ParseIP(addr), nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrorAllNameserversFailed.Error()
}

// ResolveAsync runs Resolve on its own goroutine and hands the result back
// to r's caller through the reactor's loop thread via cb, satisfying the
// "suspension point" rule that blocking DNS work never runs inline with
// reactor dispatch.
func (r *Resolver) ResolveAsync(rx *reactor.Reactor, host string, family Family, cb func(net.IP, error)) {
	go func() {
		ip, err := r.Resolve(context.Background(), host, family)
		rx.Post(func() {
			cb(ip, err)
		})
	}()
}
