package sqlbuilder

/*
Returns placeholders still present in the SQL text, in order of appearance:
`?`, ordinal params such as `$1`, and named params such as `:name:` or
`:name`, reported as written. Markers inside quoted strings, quoted identifiers
and comments are ignored, and so are `::` casts and `$$`. Useful for verifying
that binding resolved everything:

	text := BindNum(`select * from books where id = $1 and price > $2`, 1, 10)
	markers, _ := Unbound(text) // []string{`$2`}

Malformed SQL, such as an unterminated quote, produces an `ErrInvalidInput`
error.
*/
func Unbound(src string) (out []string, err error) {
	defer rec(&err)

	tokens := tokenizer{source: src}
	for {
		tok := tokens.Next()
		if tok.isInvalid() {
			return
		}
		if tok.isParam() {
			out = append(out, tok.Text)
		}
	}
}

/*
Same as `Unbound`, but returns an `ErrInvalidInput` error listing the
remaining markers, if any.
*/
func CheckBound(src string) error {
	const while = `checking placeholders`

	markers, err := Unbound(src)
	if err != nil {
		return ErrInvalidInput.while(while).because(err)
	}
	if len(markers) > 0 {
		return ErrInvalidInput.while(while).because(errUnbound(markers))
	}
	return nil
}
