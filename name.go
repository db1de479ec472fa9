package sqlbuilder

import (
	"strings"
)

// Escapes a string literal by doubling single quotes.
func Esc(src string) string { return strings.ReplaceAll(src, `'`, `''`) }

// Escapes and encloses a string literal in single quotes.
func Quote(src string) string { return `'` + Esc(src) + `'` }

// Encloses an identifier in backticks, escaping inner backticks with `\`.
func Baquote(src string) string {
	return "`" + strings.ReplaceAll(src, "`", "\\`") + "`"
}

// Encloses an identifier in square brackets, doubling inner `]`.
func Brquote(src string) string {
	return `[` + strings.ReplaceAll(src, `]`, `]]`) + `]`
}

// Encloses an identifier in double quotes, escaping inner `"` with `\`.
func Dquote(src string) string {
	return `"` + strings.ReplaceAll(src, `"`, `\"`) + `"`
}

// True if the identifier consists only of `[a-z0-9_]` and needs no quoting.
func IsSafe(src string) bool {
	for i := 0; i < len(src); i++ {
		char := src[i]
		if !(char >= 'a' && char <= 'z' || char >= '0' && char <= '9' || char == '_') {
			return false
		}
	}
	return true
}

// Makes an identifier safe: returned as-is when `IsSafe`, backticked otherwise.
func Safe(src string) string {
	if IsSafe(src) {
		return src
	}
	return Baquote(src)
}

// Identifier quoting style, see `QuoteStyle.Quote`.
type QuoteStyle byte

const (
	QuotePlain QuoteStyle = iota
	QuoteBacktick
	QuoteBracket
	QuoteDouble
	QuoteSingle
)

var quoteStyleNames = [...]string{
	QuotePlain:    `plain`,
	QuoteBacktick: `backtick`,
	QuoteBracket:  `bracket`,
	QuoteDouble:   `double`,
	QuoteSingle:   `single`,
}

// Implement `fmt.Stringer`.
func (self QuoteStyle) String() string {
	if int(self) < len(quoteStyleNames) {
		return quoteStyleNames[self]
	}
	return ``
}

/*
Parses a style name such as "backtick", as printed by `.String`. Used for
configuration input.
*/
func ParseQuoteStyle(src string) (QuoteStyle, error) {
	for ind, name := range quoteStyleNames {
		if strings.EqualFold(src, name) {
			return QuoteStyle(ind), nil
		}
	}
	return 0, ErrInvalidInput.while(`parsing quote style`).because(
		errUnknown(`quote style`, src),
	)
}

// Quotes the input in this style. `QuotePlain` behaves like `Safe`.
func (self QuoteStyle) Quote(src string) string {
	switch self {
	case QuoteBacktick:
		return Baquote(src)
	case QuoteBracket:
		return Brquote(src)
	case QuoteDouble:
		return Dquote(src)
	case QuoteSingle:
		return Quote(src)
	default:
		return Safe(src)
	}
}

/*
Dotted multi-part identifier such as `schema.table` or `table.column`, with an
optional alias:

	NewName(`books`, `title`).Alias(`book title`).Safe()
	// books.title AS `book title`

The alias is always rendered in the "safe" style regardless of how the parts
are quoted. Methods don't mutate the receiver.
*/
type SqlName struct {
	Parts []string
	As    string
}

func NewName(parts ...string) SqlName { return SqlName{Parts: parts} }

// Returns a copy with the part appended.
func (self SqlName) Add(part string) SqlName {
	self.Parts = append(copyStrings(self.Parts), part)
	return self
}

// Returns a copy with the given alias.
func (self SqlName) Alias(alias string) SqlName {
	self.As = alias
	return self
}

/*
Parts as-is if all of them are safe, otherwise every part is backticked.
Implements `fmt.Stringer`, so names can be passed to builder methods directly.
*/
func (self SqlName) Safe() string {
	for _, part := range self.Parts {
		if !IsSafe(part) {
			return self.render(Baquote)
		}
	}
	return self.render(nil)
}

func (self SqlName) String() string { return self.Safe() }

// Every part in single quotes.
func (self SqlName) Quoted() string { return self.render(Quote) }

// Every part in backticks.
func (self SqlName) Baquoted() string { return self.render(Baquote) }

// Every part in square brackets.
func (self SqlName) Brquoted() string { return self.render(Brquote) }

// Every part in double quotes.
func (self SqlName) Dquoted() string { return self.render(Dquote) }

// Rendered in the given style. `QuotePlain` is `.Safe`.
func (self SqlName) Styled(style QuoteStyle) string {
	if style == QuotePlain {
		return self.Safe()
	}
	return self.render(style.Quote)
}

func (self SqlName) render(quote func(string) string) string {
	var buf []byte
	for ind, part := range self.Parts {
		if ind > 0 {
			appendStr(&buf, `.`)
		}
		if quote != nil {
			part = quote(part)
		}
		appendStr(&buf, part)
	}
	if self.As != `` {
		appendStr(&buf, ` AS `)
		appendStr(&buf, Safe(self.As))
	}
	return bytesToMutableString(buf)
}
