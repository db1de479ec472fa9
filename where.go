package sqlbuilder

/*
Builder for a single boolean expression, suitable for `SqlBuilder.AndWhere`
and friends:

	cond := NewWhere(`price`).Gt(100).And(NewWhere(`title`).Eq(Quote(`Dune`)))
	cond.String() // (price > 100) AND (title = 'Dune')

Values are inserted as-is, without quoting. Use `Quote` or `Arg` for literals.

Methods never fail. An invalid call, such as comparing with an empty value,
leaves the expression unchanged and records an error, which is reported by
`.Build`. Later calls still apply, and only the last error is kept. `.String`
ignores the error.
*/
type Where struct {
	text   string
	prefix string
	err    error
	wasAnd bool
}

// Starts an expression with the given text. Records `ErrNoWhereField` if the
// text is empty.
func NewWhere(seed any) *Where {
	var out Where
	out.text = text(seed)
	if out.text == `` {
		out.err = ErrNoWhereField.while(`starting where condition`)
	}
	return &out
}

// Implement `fmt.Stringer`. Ignores the recorded error.
func (self *Where) String() string { return self.text }

// Returns the expression, or the last recorded error.
func (self *Where) Build() (string, error) {
	if self.err != nil {
		return ``, self.err
	}
	return self.text, nil
}

// Returns the last recorded error, if any.
func (self *Where) Err() error { return self.err }

/*
Sets a modifier inserted between the current text and the next comparison
operator:

	NewWhere(`name`).Collate(`nocase`).Eq(Quote(`joe`))
	// name COLLATE nocase = 'joe'
*/
func (self *Where) Collate(name any) *Where {
	self.prefix = `COLLATE ` + text(name)
	return self
}

// Appends ` = <val>`.
func (self *Where) Eq(val any) *Where { return self.compare(`Eq`, ` = `, val) }

// Appends ` <> <val>`.
func (self *Where) Ne(val any) *Where { return self.compare(`Ne`, ` <> `, val) }

// Appends ` > <val>`.
func (self *Where) Gt(val any) *Where { return self.compare(`Gt`, ` > `, val) }

// Appends ` >= <val>`.
func (self *Where) Ge(val any) *Where { return self.compare(`Ge`, ` >= `, val) }

// Appends ` < <val>`.
func (self *Where) Lt(val any) *Where { return self.compare(`Lt`, ` < `, val) }

// Appends ` <= <val>`.
func (self *Where) Le(val any) *Where { return self.compare(`Le`, ` <= `, val) }

// Appends ` LIKE <mask>`. The mask is used as-is; see `Quote`.
func (self *Where) Like(mask any) *Where { return self.compare(`Like`, ` LIKE `, mask) }

// Appends ` IS NULL`.
func (self *Where) IsNull() *Where { return self.suffix(` IS NULL`) }

// Appends ` IS NOT NULL`.
func (self *Where) IsNotNull() *Where { return self.suffix(` IS NOT NULL`) }

/*
Wraps the current expression in parentheses, once, then appends
` AND (<other>)`. Successive calls produce a flat conjunction:

	NewWhere(`a`).And(`b`).And(`c`) // (a) AND (b) AND (c)
*/
func (self *Where) And(other any) *Where {
	val := text(other)
	if self.text == `` {
		self.err = ErrNoWhereField.while(`And`)
		return self
	}
	if val == `` {
		self.err = errNoWhereValue(`And`, self.text)
		return self
	}

	if !self.wasAnd {
		self.text = `(` + self.text + `)`
		self.wasAnd = true
	}
	self.text += ` AND (` + val + `)`
	return self
}

// Appends ` OR <other>` without parentheses.
func (self *Where) Or(other any) *Where {
	val := text(other)
	if self.text == `` {
		self.err = ErrNoWhereField.while(`Or`)
		return self
	}
	if val == `` {
		self.err = errNoWhereValue(`Or`, self.text)
		return self
	}

	self.text += ` OR ` + val
	return self
}

// Prepends `NOT `.
func (self *Where) Not() *Where {
	if self.text == `` {
		self.err = ErrNoWhereField.while(`Not`)
		return self
	}
	self.text = `NOT ` + self.text
	return self
}

// Wraps the expression in parentheses.
func (self *Where) InBrackets() *Where {
	if self.text == `` {
		self.err = ErrNoWhereField.while(`InBrackets`)
		return self
	}
	self.text = Brackets(self.text)
	return self
}

func (self *Where) compare(while, operator string, val any) *Where {
	str := text(val)
	if str == `` {
		self.err = errNoWhereValue(while, self.text)
		return self
	}
	self.suffix(operator + str)
	return self
}

func (self *Where) suffix(str string) *Where {
	if self.prefix != `` {
		self.text += ` ` + self.prefix
		self.prefix = ``
	}
	self.text += str
	return self
}

/*
Conjunction of expressions, each in parentheses:

	And(`a`, `b OR c`) // (a) AND (b OR c)

Returns an empty string when called without arguments.
*/
func And(exprs ...any) string {
	if len(exprs) == 0 {
		return ``
	}

	var buf []byte
	for ind, expr := range exprs {
		if ind > 0 {
			appendStr(&buf, ` AND `)
		}
		appendEnclosed(&buf, `(`, text(expr), `)`)
	}
	return bytesToMutableString(buf)
}

/*
Disjunction of expressions, without parentheses:

	Or(`a`, `b`, Not(`c`)) // a OR b OR NOT c
*/
func Or(exprs ...any) string { return joinTexts(exprs, ` OR `) }

// Prepends `NOT `.
func Not(expr any) string { return `NOT ` + text(expr) }

// Wraps in parentheses.
func Brackets(expr any) string { return `(` + text(expr) + `)` }
