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

// ServerCallbacks delivers server-side handshake events and the two
// embedder-supplied decision points: Authenticate validates RFC 1929
// credentials (nil means NOAUTH-only), and Resolve decides the outcome of
// the CONNECT request.
//
// As with Client, OnSend may recurse synchronously back into this Server's
// own Feed on a loopback wiring; every step below commits its state
// transition and slices pending before calling out, so a reentrant Feed
// always sees the state the outer call already moved to.
type ServerCallbacks struct {
	OnSend        func(data []byte) error
	Authenticate  Authenticator
	Resolve       Resolver
	OnEstablished func(target, bound Address)
}

// Server drives the accepting half of a SOCKS5 handshake incrementally,
// mirroring Client: every byte read from the client is pushed through Feed
// until OnEstablished fires or an error is returned.
type Server struct {
	cb      ServerCallbacks
	state   State
	pending []byte
	target  Address
}

// NewServer builds a Server. If cb.Authenticate is nil, only NOAUTH is
// offered and accepted; otherwise PASSWD is preferred whenever the client
// offers it.
func NewServer(cb ServerCallbacks) *Server {
	return &Server{cb: cb, state: StateMethod}
}

// State reports the server's current position in the handshake.
func (s *Server) State() State {
	return s.state
}

func (s *Server) Feed(data []byte) error {
	s.pending = append(s.pending, data...)

	for {
		progressed, err := s.step()
		if err != nil {
			s.state = StateBroken
			return err
		}
		if !progressed {
			return nil
		}
	}
}

func (s *Server) step() (bool, error) {
	switch s.state {
	case StateMethod:
		return s.stepMethod()
	case StateAuth:
		return s.stepAuth()
	case StateRequest:
		return s.stepRequest()
	case StateHandshake:
		if len(s.pending) == 0 {
			return false, nil
		}
		return false, ErrorAlreadyTunneling.Error()
	case StateBroken:
		if len(s.pending) == 0 {
			return false, nil
		}
		return false, ErrorBroken.Error()
	}
	return false, ErrorBroken.Error()
}

func (s *Server) stepMethod() (bool, error) {
	if len(s.pending) < 2 {
		return false, nil
	}
	if s.pending[0] != socksVersion {
		return false, ErrorUnsupportedVersion.Error()
	}
	n := int(s.pending[1])
	if len(s.pending) < 2+n {
		return false, nil
	}
	offered := append([]byte(nil), s.pending[2:2+n]...)
	s.pending = s.pending[2+n:]

	chosen := s.chooseMethod(offered)
	if chosen == MethodPassword {
		s.state = StateAuth
	} else if chosen != MethodNoAcceptable {
		s.state = StateRequest
	}

	if err := s.cb.OnSend(encodeMethodSelection(chosen)); err != nil {
		return false, err
	}
	if chosen == MethodNoAcceptable {
		return false, ErrorNoAcceptableMethod.Error()
	}

	return true, nil
}

func (s *Server) chooseMethod(offered []byte) Method {
	has := func(m Method) bool {
		for _, o := range offered {
			if Method(o) == m {
				return true
			}
		}
		return false
	}

	if s.cb.Authenticate != nil {
		if has(MethodPassword) {
			return MethodPassword
		}
		return MethodNoAcceptable
	}
	if has(MethodNoAuth) {
		return MethodNoAuth
	}
	return MethodNoAcceptable
}

func (s *Server) stepAuth() (bool, error) {
	if len(s.pending) < 2 {
		return false, nil
	}
	ulen := int(s.pending[1])
	if len(s.pending) < 2+ulen+1 {
		return false, nil
	}
	uname := string(s.pending[2 : 2+ulen])
	plen := int(s.pending[2+ulen])
	total := 2 + ulen + 1 + plen
	if len(s.pending) < total {
		return false, nil
	}
	passwd := string(s.pending[3+ulen : total])
	s.pending = s.pending[total:]

	ok := s.cb.Authenticate(Credentials{Username: uname, Password: passwd})
	if ok {
		s.state = StateRequest
	}
	if err := s.cb.OnSend(encodeAuthStatus(ok)); err != nil {
		return false, err
	}
	if !ok {
		return false, ErrorAuthFailed.Error()
	}

	return true, nil
}

func (s *Server) stepRequest() (bool, error) {
	if len(s.pending) < 4 {
		return false, nil
	}
	if s.pending[0] != socksVersion {
		return false, ErrorMalformedRequest.Error()
	}
	cmd := Command(s.pending[1])

	addr, alen, ok, err := decodeAddress(s.pending[3:])
	if err != nil {
		if sendErr := s.cb.OnSend(encodeReply(ReplyAddressUnsupported, Address{})); sendErr != nil {
			return false, sendErr
		}
		return false, err
	}
	if !ok {
		return false, nil
	}
	total := 3 + alen
	s.pending = s.pending[total:]

	if cmd != CmdConnect {
		if err := s.cb.OnSend(encodeReply(ReplyCommandUnsupported, Address{})); err != nil {
			return false, err
		}
		return false, ErrorUnsupportedCommand.Error()
	}

	s.target = addr
	rep, bound := s.cb.Resolve(addr)
	if rep == ReplySucceeded {
		s.state = StateHandshake
	}
	if err := s.cb.OnSend(encodeReply(rep, bound)); err != nil {
		return false, err
	}
	if rep != ReplySucceeded {
		return false, replyError(rep)
	}

	if s.cb.OnEstablished != nil {
		s.cb.OnEstablished(addr, bound)
	}
	return true, nil
}
