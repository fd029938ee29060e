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

package socks5

// ClientCallbacks delivers client-side handshake events. OnSend is the
// write-bridge to the underlying connection; the caller is responsible for
// actually writing the bytes (typically onto a Broker-buffered stream).
//
// OnSend may be called synchronously out of Feed, and on a loopback wiring
// (a peer whose own OnSend calls straight back into this Client's Feed) that
// makes Feed reentrant. Every step below updates state and slices pending
// before invoking a callback, so a reentrant Feed call always observes the
// state the outer call has already committed to.
type ClientCallbacks struct {
	OnSend        func(data []byte) error
	OnEstablished func(bound Address)
}

// Client drives the initiating half of a SOCKS5 handshake incrementally:
// Start sends the greeting, and every byte read back from the server is
// pushed through Feed until OnEstablished fires or an error is returned.
type Client struct {
	cb      ClientCallbacks
	creds   *Credentials
	target  Address
	state   State
	pending []byte
}

// NewClient builds a Client that will request a CONNECT tunnel to target.
// creds may be nil, in which case only NOAUTH is offered.
func NewClient(target Address, creds *Credentials, cb ClientCallbacks) *Client {
	return &Client{cb: cb, creds: creds, target: target, state: StateMethod}
}

// State reports the client's current position in the handshake.
func (c *Client) State() State {
	return c.state
}

// Start sends the initial version-identifier/method-selection message.
func (c *Client) Start() error {
	methods := []Method{MethodNoAuth}
	if c.creds != nil {
		methods = []Method{MethodPassword, MethodNoAuth}
	}
	return c.cb.OnSend(encodeGreeting(methods))
}

// Feed pushes bytes read from the server into the state machine, advancing
// through AUTH/REQUEST as needed and firing OnEstablished once the reply
// carries ReplySucceeded.
func (c *Client) Feed(data []byte) error {
	c.pending = append(c.pending, data...)

	for {
		progressed, err := c.step()
		if err != nil {
			c.state = StateBroken
			return err
		}
		if !progressed {
			return nil
		}
	}
}

func (c *Client) step() (bool, error) {
	switch c.state {
	case StateMethod:
		return c.stepMethod()
	case StateAuth:
		return c.stepAuth()
	case StateRequest:
		return c.stepReply()
	case StateHandshake:
		if len(c.pending) == 0 {
			return false, nil
		}
		return false, ErrorAlreadyTunneling.Error()
	case StateBroken:
		if len(c.pending) == 0 {
			return false, nil
		}
		return false, ErrorBroken.Error()
	}
	return false, ErrorBroken.Error()
}

func (c *Client) stepMethod() (bool, error) {
	if len(c.pending) < 2 {
		return false, nil
	}
	if c.pending[0] != socksVersion {
		return false, ErrorUnsupportedVersion.Error()
	}
	method := Method(c.pending[1])
	c.pending = c.pending[2:]

	switch method {
	case MethodNoAcceptable:
		return false, ErrorNoAcceptableMethod.Error()
	case MethodPassword:
		if c.creds == nil {
			return false, ErrorNoAcceptableMethod.Error()
		}
		c.state = StateAuth
		if err := c.cb.OnSend(encodeAuthRequest(*c.creds)); err != nil {
			return false, err
		}
	case MethodNoAuth:
		c.state = StateRequest
		if err := c.cb.OnSend(encodeRequest(CmdConnect, c.target)); err != nil {
			return false, err
		}
	default:
		return false, ErrorNoAcceptableMethod.Error()
	}

	return true, nil
}

func (c *Client) stepAuth() (bool, error) {
	if len(c.pending) < 2 {
		return false, nil
	}
	status := c.pending[1]
	c.pending = c.pending[2:]
	if status != 0x00 {
		return false, ErrorAuthFailed.Error()
	}

	c.state = StateRequest
	if err := c.cb.OnSend(encodeRequest(CmdConnect, c.target)); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) stepReply() (bool, error) {
	if len(c.pending) < 4 {
		return false, nil
	}
	if c.pending[0] != socksVersion {
		return false, ErrorMalformedRequest.Error()
	}
	rep := Reply(c.pending[1])

	bound, alen, ok, err := decodeAddress(c.pending[3:])
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	total := 3 + alen
	c.pending = c.pending[total:]

	if rep != ReplySucceeded {
		return false, replyError(rep)
	}

	c.state = StateHandshake
	if c.cb.OnEstablished != nil {
		c.cb.OnEstablished(bound)
	}
	return true, nil
}

func replyError(rep Reply) error {
	switch rep {
	case ReplyCommandUnsupported:
		return ErrorUnsupportedCommand.Error()
	case ReplyAddressUnsupported:
		return ErrorUnsupportedAddressType.Error()
	default:
		return ErrorMalformedRequest.Error()
	}
}
