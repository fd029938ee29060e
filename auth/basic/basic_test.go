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

package basic_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"

	ginsdk "github.com/gin-gonic/gin"

	. "github.com/anyks/awh/auth/basic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

var _ = Describe("Basic auth", func() {
	var engine *ginsdk.Engine

	BeforeEach(func() {
		ginsdk.SetMode(ginsdk.TestMode)
		engine = ginsdk.New()
	})

	It("should return 401 when the header is missing", func() {
		auth := NewBasicAuth(nil, func(string, string) bool { return true })
		engine.GET("/test", auth.Handler)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Header().Get(HeaderAuthRequire)).To(Equal(HeaderAuthReal))
	})

	It("should return 401 when the scheme is not Basic", func() {
		auth := NewBasicAuth(nil, func(string, string) bool { return true })
		engine.GET("/test", auth.Handler)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderAuthSend, "Bearer sometoken")
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should return 403 when credentials don't validate", func() {
		auth := NewBasicAuth(nil, func(u, p string) bool { return u == "alice" && p == "s3cret" })
		engine.GET("/test", auth.Handler)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderAuthSend, basicHeader("alice", "wrong"))
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("should run the registered handlers on a successful check", func() {
		var seenUser string
		auth := NewBasicAuth(nil, func(u, p string) bool {
			seenUser = u
			return u == "alice" && p == "s3cret"
		})

		handler := auth.Register(func(c *ginsdk.Context) {
			c.String(http.StatusOK, "welcome")
		})
		engine.GET("/test", handler)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderAuthSend, basicHeader("alice", "s3cret"))
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("welcome"))
		Expect(seenUser).To(Equal("alice"))
	})

	It("should run handlers appended after Register in order", func() {
		auth := NewBasicAuth(nil, func(string, string) bool { return true })

		auth.Register(func(c *ginsdk.Context) {
			c.Set("count", 1)
		})
		auth.Append(func(c *ginsdk.Context) {
			v, _ := c.Get("count")
			c.String(http.StatusOK, "%d", v.(int)+1)
		})

		engine.GET("/test", auth.Handler)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderAuthSend, basicHeader("x", "y"))
		engine.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("2"))
	})
})
