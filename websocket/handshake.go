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

package websocket

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"net/http"

	"github.com/gorilla/websocket"
)

// websocketGUID is the fixed RFC 6455 magic string used to turn a
// Sec-WebSocket-Key into its accept value.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// GenerateKey produces a random 16-byte Sec-WebSocket-Key, base64-encoded,
// for the client side of the opening handshake.
func GenerateKey() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// AcceptKey computes the Sec-WebSocket-Accept value for a given
// Sec-WebSocket-Key, per RFC 6455 section 1.3.
func AcceptKey(key string) string {
	h := sha1.New()
	h.Write([]byte(key))
	h.Write([]byte(websocketGUID))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// IsUpgradeRequest reports whether r carries the headers of a WebSocket
// opening handshake, delegating to gorilla/websocket's own header
// inspection rather than re-deriving it.
func IsUpgradeRequest(r *http.Request) bool {
	return websocket.IsWebSocketUpgrade(r)
}

// RequestedSubprotocols returns the client's offered Sec-WebSocket-Protocol
// tokens, again via gorilla/websocket's helper.
func RequestedSubprotocols(r *http.Request) []string {
	return websocket.Subprotocols(r)
}

// AcceptResponse builds the 101 response header set a server sends back to
// complete the handshake for the given client key and negotiated
// extensions/subprotocol.
func AcceptResponse(clientKey string, extensions []Extension, subprotocol string) http.Header {
	h := make(http.Header)
	h.Set("Upgrade", "websocket")
	h.Set("Connection", "Upgrade")
	h.Set("Sec-WebSocket-Accept", AcceptKey(clientKey))

	if subprotocol != "" {
		h.Set("Sec-WebSocket-Protocol", subprotocol)
	}

	if len(extensions) > 0 {
		values := make([]string, len(extensions))
		for i, ext := range extensions {
			values[i] = ext.String()
		}
		for _, v := range values {
			h.Add("Sec-WebSocket-Extensions", v)
		}
	}

	return h
}

// ValidateAccept checks a server's Sec-WebSocket-Accept response value
// against the key the client originally sent.
func ValidateAccept(clientKey, acceptValue string) bool {
	return AcceptKey(clientKey) == acceptValue
}
