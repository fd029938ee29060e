/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2021 Nicolas JUHEL
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

package cluster

import "github.com/anyks/awh/errors"

const (
	ErrorValidateConfig errors.CodeError = iota + errors.MinPkgCluster
	ErrorPlatformUnsupported
	ErrorWorkerCountInvalid
	ErrorSpawnFailed
	ErrorSocketpairFailed
	ErrorRespawnFailed
	ErrorWorkerNotFound
	ErrorWorkerGone
	ErrorSendFailed
	ErrorBroadcastPartial
	ErrorAlreadyStarted
	ErrorNotStarted
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorValidateConfig)
	errors.RegisterIdFctMessage(ErrorValidateConfig, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorValidateConfig:
		return "cluster config failed validation"
	case ErrorPlatformUnsupported:
		return "cluster module is unavailable on this platform"
	case ErrorWorkerCountInvalid:
		return "worker count must be >= 1"
	case ErrorSpawnFailed:
		return "failed to spawn worker process"
	case ErrorSocketpairFailed:
		return "failed to create ipc socketpair"
	case ErrorRespawnFailed:
		return "failed to respawn crashed worker"
	case ErrorWorkerNotFound:
		return "no worker registered for that pid"
	case ErrorWorkerGone:
		return "worker process is no longer running"
	case ErrorSendFailed:
		return "failed to write ipc frame to worker"
	case ErrorBroadcastPartial:
		return "broadcast failed for one or more workers"
	case ErrorAlreadyStarted:
		return "cluster already started"
	case ErrorNotStarted:
		return "cluster not started"
	}

	return ""
}
