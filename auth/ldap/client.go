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

package ldap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/anyks/awh/logger"
)

// Client wraps a directory connection, resolving and authenticating users
// on demand; it opens a fresh connection for each operation rather than
// holding one open, since the directory is consulted rarely relative to
// request volume (one auth check per client handshake, not per byte).
type Client struct {
	cfg       Config
	tlsConfig *tls.Config
	tlsMode   TLSMode
	ctx       context.Context
	log       func() logger.Logger
}

// NewClient builds a Client against cfg. tlsConfig and logFunc may be nil;
// a nil tlsConfig with PortLDAPS set falls back to an empty *tls.Config.
func NewClient(ctx context.Context, cfg Config, tlsConfig *tls.Config, logFunc func() logger.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode := TLSModeNone
	if cfg.PortLDAPS > 0 {
		mode = TLSModeTLS
		if tlsConfig == nil {
			tlsConfig = &tls.Config{}
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}

	return &Client{cfg: cfg, tlsConfig: tlsConfig, tlsMode: mode, ctx: ctx, log: logFunc}, nil
}

func (cl *Client) logger() logger.Logger {
	if cl.log == nil {
		return nil
	}
	return cl.log()
}

func (cl *Client) dial() (*goldap.Conn, error) {
	adr := cl.cfg.ServerAddr(false)
	if len(adr) < 3 {
		return nil, ErrorServerDial.Error(fmt.Errorf("no ldap port configured"))
	}

	d := net.Dialer{}
	c, err := d.DialContext(cl.ctx, "tcp", adr)
	if err != nil {
		return nil, ErrorServerDial.Error(err)
	}

	l := goldap.NewConn(c, false)
	l.Start()
	return l, nil
}

func (cl *Client) dialTLS() (*goldap.Conn, error) {
	adr := cl.cfg.ServerAddr(true)
	if len(adr) < 3 {
		return nil, ErrorServerTLS.Error(fmt.Errorf("no ldaps port configured"))
	}

	d := net.Dialer{}
	c, err := d.DialContext(cl.ctx, "tcp", adr)
	if err != nil {
		return nil, ErrorServerTLS.Error(err)
	}

	c = tls.Client(c, cl.tlsConfig)
	l := goldap.NewConn(c, true)
	l.Start()

	if _, ok := l.TLSConnectionState(); !ok {
		_ = l.Close()
		return nil, ErrorServerTLS.Error(fmt.Errorf("tls handshake did not complete"))
	}
	return l, nil
}

func (cl *Client) starttls(l *goldap.Conn) error {
	if err := l.StartTLS(cl.tlsConfig); err != nil {
		return ErrorServerStartTLS.Error(err)
	}
	return nil
}

func (cl *Client) connect() (*goldap.Conn, error) {
	switch cl.tlsMode {
	case TLSModeTLS:
		return cl.dialTLS()
	case TLSModeStartTLS:
		l, err := cl.dial()
		if err != nil {
			return nil, err
		}
		if err := cl.starttls(l); err != nil {
			_ = l.Close()
			return nil, err
		}
		return l, nil
	default:
		return cl.dial()
	}
}

// resolveDN finds the distinguished name of username via FilterUser, binding
// with no credentials first (anonymous bind), suitable for directories that
// allow anonymous search.
func (cl *Client) resolveDN(l *goldap.Conn, username string) (string, error) {
	req := goldap.NewSearchRequest(
		cl.cfg.BaseDN,
		goldap.ScopeWholeSubtree, goldap.NeverDerefAliases,
		0, 0, false,
		fmt.Sprintf(cl.cfg.FilterUser, userFieldUID, username),
		[]string{"dn"},
		nil,
	)

	res, err := l.Search(req)
	if err != nil {
		return "", ErrorSearch.Error(err)
	}

	switch len(res.Entries) {
	case 0:
		return "", ErrorUserNotFound.Error()
	case 1:
		return res.Entries[0].DN, nil
	default:
		return "", ErrorUserNotUniq.Error()
	}
}

// AuthUser resolves username to a DN and binds as that DN with password,
// returning nil only if both steps succeed.
func (cl *Client) AuthUser(username, password string) error {
	if username == "" || password == "" {
		return ErrorParamEmpty.Error()
	}

	l, err := cl.connect()
	if err != nil {
		return err
	}
	defer l.Close()

	dn, err := cl.resolveDN(l, username)
	if err != nil {
		if log := cl.logger(); log != nil {
			log.Warning("ldap user resolution failed", err)
		}
		return err
	}

	if err := l.Bind(dn, password); err != nil {
		return ErrorBind.Error(err)
	}

	if log := cl.logger(); log != nil {
		log.Info("ldap bind success", nil)
	}
	return nil
}

// GroupsOf returns the cn of every group username belongs to, per the
// memberOf attribute returned by the directory.
func (cl *Client) GroupsOf(username string) ([]string, error) {
	l, err := cl.connect()
	if err != nil {
		return nil, err
	}
	defer l.Close()

	req := goldap.NewSearchRequest(
		cl.cfg.BaseDN,
		goldap.ScopeWholeSubtree, goldap.NeverDerefAliases,
		0, 0, false,
		fmt.Sprintf(cl.cfg.FilterUser, userFieldUID, username),
		[]string{"memberOf"},
		nil,
	)

	res, err := l.Search(req)
	if err != nil {
		return nil, ErrorSearch.Error(err)
	}

	groups := make([]string, 0)
	for _, entry := range res.Entries {
		groups = append(groups, extractGroupCNs(entry.GetAttributeValues("memberOf"))...)
	}
	return groups, nil
}

// extractGroupCNs pulls the cn RDN out of each memberOf DN, e.g.
// "cn=admins,ou=groups,dc=example,dc=com" -> "admins".
func extractGroupCNs(memberOf []string) []string {
	groups := make([]string, 0, len(memberOf))
	for _, dn := range memberOf {
		for _, rdn := range strings.Split(dn, ",") {
			kv := strings.SplitN(strings.TrimSpace(rdn), "=", 2)
			if len(kv) == 2 && strings.EqualFold(kv[0], groupFieldCN) {
				groups = append(groups, kv[1])
			}
		}
	}
	return groups
}
