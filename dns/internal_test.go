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
	"time"

	miekg "github.com/miekg/dns"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("serverAddr", func() {
	It("should append the default port when none is given", func() {
		Expect(serverAddr("8.8.8.8")).To(Equal("8.8.8.8:53"))
	})

	It("should leave an explicit port alone", func() {
		Expect(serverAddr("8.8.8.8:5353")).To(Equal("8.8.8.8:5353"))
	})
})

var _ = Describe("questionType", func() {
	It("should map FamilyIPv4 to A and FamilyIPv6 to AAAA", func() {
		Expect(questionType(FamilyIPv4)).To(Equal(miekg.TypeA))
		Expect(questionType(FamilyIPv6)).To(Equal(miekg.TypeAAAA))
	})
})

var _ = Describe("firstAddress", func() {
	It("should extract the first A record for FamilyIPv4", func() {
		msg := new(miekg.Msg)
		msg.Answer = []miekg.RR{
			&miekg.A{Hdr: miekg.RR_Header{Ttl: 120}, A: net.ParseIP("93.184.216.34")},
		}
		addr, ttl, ok := firstAddress(msg, FamilyIPv4)
		Expect(ok).To(BeTrue())
		Expect(addr).To(Equal("93.184.216.34"))
		Expect(ttl).To(Equal(120 * time.Second))
	})

	It("should extract the first AAAA record for FamilyIPv6", func() {
		msg := new(miekg.Msg)
		msg.Answer = []miekg.RR{
			&miekg.AAAA{Hdr: miekg.RR_Header{Ttl: 60}, AAAA: net.ParseIP("2606:2800:220:1:248:1893:25c8:1946")},
		}
		addr, ttl, ok := firstAddress(msg, FamilyIPv6)
		Expect(ok).To(BeTrue())
		Expect(addr).To(Equal("2606:2800:220:1:248:1893:25c8:1946"))
		Expect(ttl).To(Equal(60 * time.Second))
	})

	It("should report not-ok when no matching record is present", func() {
		msg := new(miekg.Msg)
		_, _, ok := firstAddress(msg, FamilyIPv4)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Config.clamp", func() {
	It("should clamp below the minimum", func() {
		cfg := Config{MinTTL: 10 * time.Second, MaxTTL: time.Hour}
		Expect(cfg.clamp(time.Second)).To(Equal(10 * time.Second))
	})

	It("should clamp above the maximum", func() {
		cfg := Config{MinTTL: time.Second, MaxTTL: time.Minute}
		Expect(cfg.clamp(time.Hour)).To(Equal(time.Minute))
	})

	It("should use the defaults when unset", func() {
		cfg := Config{}
		Expect(cfg.clamp(time.Millisecond)).To(Equal(5 * time.Second))
		Expect(cfg.clamp(time.Hour)).To(Equal(5 * time.Minute))
	})
})

var _ = Describe("Resolver cache", func() {
	It("should serve a cached address without touching the network", func() {
		r, err := NewResolver(Config{Nameservers: []string{"203.0.113.53"}})
		Expect(err).ToNot(HaveOccurred())

		key := cacheKey{host: "cached.example.com", family: FamilyIPv4}
		r.storeCache(key, "10.0.0.1", time.Minute)

		ip, err := r.Resolve(context.Background(), "cached.example.com", FamilyIPv4)
		Expect(err).ToNot(HaveOccurred())
		Expect(ip.String()).To(Equal("10.0.0.1"))
	})

	It("should treat an expired cache entry as a miss", func() {
		r, err := NewResolver(Config{Nameservers: []string{"203.0.113.53"}})
		Expect(err).ToNot(HaveOccurred())

		key := cacheKey{host: "stale.example.com", family: FamilyIPv4}
		r.mu.Lock()
		r.cache[key] = cacheEntry{addr: "10.0.0.2", expiry: time.Now().Add(-time.Second)}
		r.mu.Unlock()

		_, ok := r.lookupCache(key)
		Expect(ok).To(BeFalse())
	})
})
