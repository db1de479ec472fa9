package sqlbuilder

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	ordinalParamPrefix = '$'
	namedParamPrefix   = ':'
	positionalParam    = '?'
	doubleColonPrefix  = `::`
	doubleDollar       = `$$`
	commentLinePrefix  = `--`
	commentBlockPrefix = `/*`
	commentBlockSuffix = `*/`
	quoteSingle        = '\''
	quoteDouble        = '"'
	quoteGrave         = '`'
)

var (
	charsetDigitDec   = new(charset).addStr(`0123456789`)
	charsetIdentStart = new(charset).addStr(`ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_`)
	charsetIdent      = new(charset).addSet(charsetIdentStart).addSet(charsetDigitDec)
	charsetWhitespace = new(charset).addStr(" \t\v\r\n")
)

type charset [256]bool

func (self *charset) has(val byte) bool { return self[val] }

func (self *charset) addStr(vals string) *charset {
	for _, val := range vals {
		self[val] = true
	}
	return self
}

func (self *charset) addSet(vals *charset) *charset {
	for ind, val := range vals {
		if val {
			self[ind] = true
		}
	}
	return self
}

type tokenType byte

const (
	tokenInvalid tokenType = iota
	tokenText
	tokenWhitespace
	tokenQuoted
	tokenComment
	tokenDoubleColon
	tokenPositionalParam
	tokenOrdinalParam
	tokenNamedParam
)

type token struct {
	Text string
	Type tokenType
}

func (self token) isInvalid() bool { return self.Type == tokenInvalid }

// True for `?`, `$N` and `:name`.
func (self token) isParam() bool {
	switch self.Type {
	case tokenPositionalParam, tokenOrdinalParam, tokenNamedParam:
		return true
	default:
		return false
	}
}

/*
Partial SQL tokenizer used by `Unbound`. Recognizes whitespace, quoted strings
and identifiers, comments, `::` casts and parameter markers; everything else is
plain text. Not a parser. Doubled quotes inside a quoted string come out as
two adjacent quoted tokens, which is fine for finding markers.

Marker rules follow the binders: `$$` is an escaped dollar, and a named marker
includes its closing colon when present, so `:a::b:` is two markers.

Panics with `ErrInvalidInput` on an unterminated quote or block comment.
*/
type tokenizer struct {
	source string
	cursor int
	next   token
}

// Returns an invalid token at the end of input.
func (self *tokenizer) Next() token {
	next := self.next
	if !next.isInvalid() {
		self.next = token{}
		return next
	}

	start := self.cursor

	for self.more() {
		mid := self.cursor
		if self.maybeWhitespace(); self.cursor > mid {
			return self.choose(start, mid, tokenWhitespace)
		}
		if self.maybeQuoted(); self.cursor > mid {
			return self.choose(start, mid, tokenQuoted)
		}
		if self.maybeComment(); self.cursor > mid {
			return self.choose(start, mid, tokenComment)
		}
		if self.skippedString(doubleColonPrefix) {
			return self.choose(start, mid, tokenDoubleColon)
		}
		if self.skippedString(doubleDollar) {
			continue
		}
		if self.skippedByte(positionalParam) {
			return self.choose(start, mid, tokenPositionalParam)
		}
		if self.maybeParam(ordinalParamPrefix, self.skippedDigits); self.cursor > mid {
			return self.choose(start, mid, tokenOrdinalParam)
		}
		if self.maybeParam(namedParamPrefix, self.skippedName); self.cursor > mid {
			return self.choose(start, mid, tokenNamedParam)
		}
		self.skipChar()
	}

	if self.cursor > start {
		return token{self.from(start), tokenText}
	}
	return token{}
}

// Returns preceding text first, holding the found token for the next call.
func (self *tokenizer) choose(start, mid int, typ tokenType) token {
	tok := token{self.from(mid), typ}
	if mid > start {
		self.next = tok
		return token{self.source[start:mid], tokenText}
	}
	return tok
}

func (self *tokenizer) maybeWhitespace() {
	for self.more() && charsetWhitespace.has(self.headByte()) {
		self.skipBytes(1)
	}
}

func (self *tokenizer) maybeQuoted() {
	switch self.headByte() {
	case quoteSingle, quoteDouble, quoteGrave:
		self.skipUntil(string(self.headByte()), string(self.headByte()))
	}
}

func (self *tokenizer) maybeComment() {
	if self.skippedString(commentLinePrefix) {
		for self.more() && !self.skippedNewline() {
			self.skipChar()
		}
		return
	}
	if strings.HasPrefix(self.rest(), commentBlockPrefix) {
		self.skipUntil(commentBlockPrefix, commentBlockSuffix)
	}
}

func (self *tokenizer) maybeParam(prefix byte, skippedBody func() bool) {
	start := self.cursor
	if self.skippedByte(prefix) && !skippedBody() {
		self.cursor = start
	}
}

func (self *tokenizer) skipUntil(prefix, suffix string) {
	self.skipBytes(len(prefix))

	for self.more() {
		if self.skippedString(suffix) {
			return
		}
		self.skipChar()
	}

	panic(ErrInvalidInput.while(`parsing SQL`).because(
		fmt.Errorf(`expected closing %q, got unexpected %w`, suffix, io.EOF),
	))
}

func (self *tokenizer) skippedNewline() bool {
	if self.skippedString("\r\n") {
		return true
	}
	switch self.headByte() {
	case '\r', '\n':
		self.skipBytes(1)
		return true
	}
	return false
}

func (self *tokenizer) skipChar() {
	_, size := utf8.DecodeRuneInString(self.rest())
	self.skipBytes(size)
}

func (self *tokenizer) skippedDigits() bool {
	start := self.cursor
	for self.more() && charsetDigitDec.has(self.headByte()) {
		self.skipBytes(1)
	}
	return self.cursor > start
}

func (self *tokenizer) skippedIdent() bool {
	if !self.more() || !charsetIdentStart.has(self.headByte()) {
		return false
	}
	for self.more() && charsetIdent.has(self.headByte()) {
		self.skipBytes(1)
	}
	return true
}

// Ident with an optional closing colon, as in `:name:`.
func (self *tokenizer) skippedName() bool {
	if !self.skippedIdent() {
		return false
	}
	self.skippedByte(namedParamPrefix)
	return true
}

func (self *tokenizer) skipBytes(val int) { self.cursor += val }

func (self *tokenizer) more() bool { return self.cursor < len(self.source) }

func (self *tokenizer) rest() string { return self.source[self.cursor:] }

func (self *tokenizer) from(start int) string { return self.source[start:self.cursor] }

func (self *tokenizer) headByte() byte { return self.source[self.cursor] }

func (self *tokenizer) skippedByte(val byte) bool {
	if self.more() && self.headByte() == val {
		self.skipBytes(1)
		return true
	}
	return false
}

func (self *tokenizer) skippedString(val string) bool {
	if strings.HasPrefix(self.rest(), val) {
		self.skipBytes(len(val))
		return true
	}
	return false
}
