/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package protocol enumerates the network dial protocols accepted by Go's
// net package (tcp/udp/unix family, plus raw ip) so config and logging code
// can carry them as a typed, marshalable value instead of a bare string.
package protocol

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// NetworkProtocol is a typed enum mirroring the network strings accepted by
// net.Dial/net.Listen.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkUnix
	NetworkUnixGram
	NetworkIP
	NetworkIP4
	NetworkIP6
)

var codeOf = map[NetworkProtocol]string{
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkUnix:     "unix",
	NetworkUnixGram: "unixgram",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
}

var protocolOf = func() map[string]NetworkProtocol {
	m := make(map[string]NetworkProtocol, len(codeOf))
	for p, c := range codeOf {
		m[c] = p
	}
	return m
}()

// Parse maps a network string (case-insensitive) to its NetworkProtocol.
// An unrecognized string returns NetworkEmpty.
func Parse(s string) NetworkProtocol {
	if p, ok := protocolOf[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p
	}
	return NetworkEmpty
}

// Code returns the lowercase net-package string for p, or "" if p is unknown.
func (p NetworkProtocol) Code() string {
	return codeOf[p]
}

// String implements fmt.Stringer; it is an alias of Code.
func (p NetworkProtocol) String() string {
	return p.Code()
}

func (p NetworkProtocol) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.Code() + `"`), nil
}

func (p *NetworkProtocol) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	*p = Parse(s)
	return nil
}

func (p NetworkProtocol) MarshalText() ([]byte, error) {
	return []byte(p.Code()), nil
}

func (p *NetworkProtocol) UnmarshalText(b []byte) error {
	*p = Parse(string(b))
	return nil
}

// ViperDecoderHook lets mapstructure (and therefore viper.Unmarshal) decode
// a plain string field into a NetworkProtocol.
func ViperDecoderHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(NetworkEmpty) {
			return data, nil
		}
		if from.Kind() != reflect.String {
			return data, nil
		}
		return Parse(data.(string)), nil
	}
}
