//go:build linux

/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package engine

import (
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// sctpAvailable is true on Linux, where IPPROTO_SCTP raw sockets are
// reachable through golang.org/x/sys/unix.
const sctpAvailable = true

// dialSCTP opens a one-to-one style SCTP association by hand: a raw
// IPPROTO_SCTP socket wrapped into a *net.TCPConn-compatible net.Conn via
// os.NewFile + net.FileConn, since the standard library has no native SCTP
// support.
func dialSCTP(network string, raddr *net.TCPAddr) (net.Conn, error) {
	domain := unix.AF_INET
	if raddr.IP.To4() == nil {
		domain = unix.AF_INET6
	}

	fd, err := unix.Socket(domain, unix.SOCK_STREAM, unix.IPPROTO_SCTP)
	if err != nil {
		return nil, err
	}

	sa, err := sockaddrFor(domain, raddr.IP, raddr.Port)
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	if err = unix.Connect(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	f := os.NewFile(uintptr(fd), "sctp")
	defer f.Close()

	return net.FileConn(f)
}

func sockaddrFor(domain int, ip net.IP, port int) (unix.Sockaddr, error) {
	if domain == unix.AF_INET {
		var addr [4]byte
		copy(addr[:], ip.To4())
		return &unix.SockaddrInet4{Port: port, Addr: addr}, nil
	}

	var addr [16]byte
	copy(addr[:], ip.To16())
	return &unix.SockaddrInet6{Port: port, Addr: addr}, nil
}
