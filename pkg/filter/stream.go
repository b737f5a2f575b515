// Copyright 2025 Emiliano Spinella (eminwux)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package filter

import "io"

// Stream is an io.WriteCloser that filters comments out of the bytes
// written to it and forwards the result to dst. Machine state carries
// across Write calls, so comment and string constructs may be split at
// arbitrary chunk boundaries. Close signals end of input; it must be
// called to flush a slash held by a pending comment opener.
//
// A Stream is for a single logical input and is not safe for concurrent
// use. Filter is the one-shot equivalent for in-memory text.
type Stream struct {
	dst    io.Writer
	m      machine
	closed bool
}

// NewStream returns a Stream forwarding filtered output to dst.
func NewStream(dst io.Writer) *Stream {
	return &Stream{dst: dst}
}

// Write feeds p through the state machine and writes whatever output it
// produced to dst. It always reports len(p) consumed on success; a short
// count only occurs when dst fails.
func (s *Stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	for _, c := range p {
		s.m.step(c, true)
	}
	if err := s.flush(); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close delivers the end-of-input event and flushes the remaining
// output. Closing twice is a no-op.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.m.step(0, false)
	return s.flush()
}

func (s *Stream) flush() error {
	if s.m.out.Len() == 0 {
		return nil
	}
	_, err := s.dst.Write(s.m.out.Bytes())
	s.m.out.Reset()
	return err
}
