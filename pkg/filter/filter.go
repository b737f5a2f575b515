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

// Package filter removes // line comments and /* */ block comments from
// source-like text while leaving single- and double-quoted string
// literals untouched, including \-escaped delimiters inside them.
//
// The core is a small finite state machine driven one byte at a time.
// End of input is an explicit event, not a reserved byte value, so any
// byte sequence is a valid input. The filter never fails: unterminated
// strings, unterminated block comments and trailing escapes simply end
// the run with whatever output has been produced so far.
package filter

import "bytes"

// state is the current position of the machine in the comment/string
// grammar. Exactly one state is active at any time; stateDone is the
// only terminal state.
type state int

const (
	// stateInitial is the pre-run state. It transitions to
	// stateNormalText without consuming input.
	stateInitial state = iota

	// stateNormalText is ordinary code text, watching for quote starts
	// and possible comment starts.
	stateNormalText

	// stateDoubleQuotedText is inside a "…" literal.
	stateDoubleQuotedText

	// stateSingleQuotedText is inside a '…' literal.
	stateSingleQuotedText

	// stateEscapedDoubleQuoteText follows a \ inside a "…" literal; the
	// next byte is taken verbatim.
	stateEscapedDoubleQuoteText

	// stateEscapedSingleQuoteText follows a \ inside a '…' literal.
	stateEscapedSingleQuoteText

	// stateStartComment follows a / in normal text whose role (division
	// vs comment opener) is not yet known; the / is held pending.
	stateStartComment

	// stateLineComment is inside a // comment, discarding through the
	// end of the line.
	stateLineComment

	// stateBlockComment is inside a /* */ comment body.
	stateBlockComment

	// stateEndBlockComment follows a * inside a block comment, checking
	// whether a / closes it.
	stateEndBlockComment

	// stateDone is terminal: no further reads or writes occur.
	stateDone
)

func (s state) String() string {
	switch s {
	case stateInitial:
		return "Initial"
	case stateNormalText:
		return "NormalText"
	case stateDoubleQuotedText:
		return "DoubleQuotedText"
	case stateSingleQuotedText:
		return "SingleQuotedText"
	case stateEscapedDoubleQuoteText:
		return "EscapedDoubleQuoteText"
	case stateEscapedSingleQuoteText:
		return "EscapedSingleQuoteText"
	case stateStartComment:
		return "StartComment"
	case stateLineComment:
		return "LineComment"
	case stateBlockComment:
		return "BlockComment"
	case stateEndBlockComment:
		return "EndBlockComment"
	case stateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// machine owns the output accumulator and the current state for one
// filter run. Input is fed through step, one event at a time.
type machine struct {
	st  state
	out bytes.Buffer
}

// step advances the machine by one input event: a byte when ok is true,
// or end of input when ok is false. Every state has a defined reaction
// to end of input, so a run always reaches stateDone.
func (m *machine) step(c byte, ok bool) {
	switch m.st {
	case stateInitial:
		// Initial consumes nothing; re-dispatch the same event as
		// normal text.
		m.st = stateNormalText
		m.step(c, ok)

	case stateNormalText:
		switch {
		case !ok:
			m.st = stateDone
		case c == '"':
			m.out.WriteByte(c)
			m.st = stateDoubleQuotedText
		case c == '\'':
			m.out.WriteByte(c)
			m.st = stateSingleQuotedText
		case c == '/':
			// The slash is provisional until the next byte decides
			// whether a comment starts.
			m.st = stateStartComment
		default:
			m.out.WriteByte(c)
		}

	case stateDoubleQuotedText:
		switch {
		case !ok:
			// Unterminated string; not an error, the run just ends.
			m.st = stateDone
		case c == '\\':
			m.out.WriteByte(c)
			m.st = stateEscapedDoubleQuoteText
		case c == '"':
			m.out.WriteByte(c)
			m.st = stateNormalText
		default:
			m.out.WriteByte(c)
		}

	case stateSingleQuotedText:
		switch {
		case !ok:
			m.st = stateDone
		case c == '\\':
			m.out.WriteByte(c)
			m.st = stateEscapedSingleQuoteText
		case c == '\'':
			m.out.WriteByte(c)
			m.st = stateNormalText
		default:
			m.out.WriteByte(c)
		}

	case stateEscapedDoubleQuoteText:
		if !ok {
			// Trailing escape; nothing is appended for the missing byte.
			m.st = stateDone
			return
		}
		// Escaped, so even a " here does not close the string.
		m.out.WriteByte(c)
		m.st = stateDoubleQuotedText

	case stateEscapedSingleQuoteText:
		if !ok {
			m.st = stateDone
			return
		}
		m.out.WriteByte(c)
		m.st = stateSingleQuotedText

	case stateStartComment:
		switch {
		case !ok:
			// The held / was real text after all.
			m.out.WriteByte('/')
			m.st = stateDone
		case c == '/':
			m.st = stateLineComment
		case c == '*':
			m.st = stateBlockComment
		default:
			m.out.WriteByte('/')
			m.out.WriteByte(c)
			m.st = stateNormalText
		}

	case stateLineComment:
		switch {
		case !ok:
			m.st = stateDone
		case c == '\n':
			// The terminator is whitespace structure, not comment
			// content; keep it.
			m.out.WriteByte(c)
			m.st = stateNormalText
		}

	case stateBlockComment:
		switch {
		case !ok:
			// Unterminated block comment ends the run silently.
			m.st = stateDone
		case c == '*':
			m.st = stateEndBlockComment
		}

	case stateEndBlockComment:
		switch {
		case !ok:
			m.st = stateDone
		case c == '/':
			m.st = stateNormalText
		case c == '*':
			// Absorbs runs of * before a closing /.
		default:
			m.st = stateBlockComment
		}

	case stateDone:
		// Terminal; once reached the state never changes again.
	}
}

// done reports whether the machine has reached its terminal state.
func (m *machine) done() bool { return m.st == stateDone }

// source yields the input one byte at a time. Reads past the end are
// idempotent and report ok == false.
type source struct {
	text string
	pos  int
}

func (s *source) next() (byte, bool) {
	if s.pos >= len(s.text) {
		return 0, false
	}
	c := s.text[s.pos]
	s.pos++
	return c, true
}

// Filter runs the comment-stripping state machine over text and returns
// the filtered result. It is a pure function: no configuration, no
// errors, no side effects, and the same input always yields the same
// output. Cost is linear in len(text); each byte is read exactly once.
func Filter(text string) string {
	var m machine
	m.out.Grow(len(text))

	src := source{text: text}
	for !m.done() {
		c, ok := src.next()
		m.step(c, ok)
	}

	return m.out.String()
}
