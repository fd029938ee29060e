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

// Package cluster forks a pool of worker processes from a single master and
// wires each one to the master over a stream socketpair, framed with cmp.
// There is no consensus, no membership and no network transport: workers are
// local children of the master, per spec.md §4.4 and §5 ("cluster module only
// invocable from the master thread before any worker loop starts").
package cluster

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	liberr "github.com/anyks/awh/errors"
)

// Config describes one cluster's worker pool.
type Config struct {
	// SchemeID identifies the scheme this cluster pool belongs to.
	SchemeID uint16 `mapstructure:"scheme_id" json:"scheme_id" yaml:"scheme_id" toml:"scheme_id" validate:"required"`
	// Count is the number of worker processes to fork.
	Count int `mapstructure:"count" json:"count" yaml:"count" toml:"count" validate:"required,min=1"`
	// Restart respawns a worker automatically when it exits unexpectedly.
	Restart bool `mapstructure:"restart" json:"restart" yaml:"restart" toml:"restart"`
	// TrackCrash records exit status/signal of dead workers instead of
	// discarding it; exposed via Cluster.LastCrash.
	TrackCrash bool `mapstructure:"track_crash" json:"track_crash" yaml:"track_crash" toml:"track_crash"`
	// ChunkSize bounds a single cmp chunk; spec default is 4096.
	ChunkSize int `mapstructure:"chunk_size" json:"chunk_size" yaml:"chunk_size" toml:"chunk_size"`
}

func (c Config) Validate() liberr.Error {
	val := validator.New()
	err := val.Struct(c)
	if err == nil {
		return nil
	}

	if e, ok := err.(*validator.InvalidValidationError); ok {
		return ErrorValidateConfig.Error(e)
	}

	out := ErrorValidateConfig.Error(nil)
	for _, e := range err.(validator.ValidationErrors) {
		//nolint goerr113
		out.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.Field(), e.ActualTag()))
	}

	if out.HasParent() {
		return out
	}
	return nil
}

func (c Config) chunkSize() int {
	if c.ChunkSize <= 0 {
		return 4096
	}
	return c.ChunkSize
}
