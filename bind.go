package sqlbuilder

import (
	"strconv"
	"strings"
)

/*
Replaces the first `?` with the rendered value, leaving the rest alone. Calls
can be chained to resolve successive placeholders:

	Bind(Bind(`? + ?`, 10), 20) // 10 + 20

Values are rendered via `Arg`.
*/
func Bind(src string, val any) string {
	return strings.Replace(src, `?`, Arg(val), 1)
}

/*
Replaces every `?` with rendered values, cycling through them when there are
more placeholders than values:

	Binds(`?f?o?o?`, 10, 20, 30) // 10f20o30o10

Panics on the first `?` when `vals` is empty.
*/
func Binds(src string, vals ...any) string {
	args := make([]string, len(vals))
	for ind, val := range vals {
		args[ind] = Arg(val)
	}

	buf := make([]byte, 0, len(src))
	var offset int

	for ind := 0; ind < len(src); ind++ {
		char := src[ind]
		if char != '?' {
			buf = append(buf, char)
			continue
		}
		buf = append(buf, args[offset%len(args)]...)
		offset++
	}
	return bytesToMutableString(buf)
}

/*
Replaces every occurrence of `$<num>` with the rendered value. Matching is by
plain substring, so `$1` also matches the start of `$10`; bind higher numbers
first, or use `BindNums`.
*/
func BindNum(src string, num int, val any) string {
	return strings.ReplaceAll(src, `$`+strconv.Itoa(num), Arg(val))
}

/*
Replaces `$N` placeholders with `vals[N-1]` in one pass. `$$` is an escaped
dollar. Placeholders may be adjacent (`$1$2`), and `$0` or numbers beyond the
length of `vals` are dropped from the output:

	BindNums(`$1f$02o$$o$3$4`, 10, `AAA`, true) // 10f'AAA'o$oTRUE
*/
func BindNums(src string, vals ...any) string {
	buf := make([]byte, 0, len(src))
	var num int
	var awaiting bool

	emit := func() {
		ind := num - 1
		if ind >= 0 && ind < len(vals) {
			appendStr(&buf, Arg(vals[ind]))
		}
	}

	for ind := 0; ind < len(src); ind++ {
		char := src[ind]

		if !awaiting {
			if char == '$' {
				awaiting, num = true, 0
			} else {
				buf = append(buf, char)
			}
			continue
		}

		if char >= '0' && char <= '9' {
			// Saturates past the range of `vals`; such numbers are dropped anyway.
			if num <= len(vals) {
				num = num*10 + int(char-'0')
			}
			continue
		}

		if char == '$' {
			if num == 0 {
				buf = append(buf, '$')
				awaiting = false
			} else {
				emit()
				num = 0
			}
			continue
		}

		emit()
		buf = append(buf, char)
		awaiting = false
	}

	if awaiting && num > 0 {
		emit()
	}
	return bytesToMutableString(buf)
}

// Replaces every occurrence of `:<name>:` with the rendered value.
func BindName(src string, name string, val any) string {
	return strings.ReplaceAll(src, `:`+name+`:`, Arg(val))
}

/*
Replaces `:key:` placeholders with rendered values from the map, in one pass.
Keys missing from the map become `NULL`. `::` is an escaped colon.

Input ending inside an unterminated key, such as `a = :key`, yields `;key`
at the end of the output. Existing callers depend on this; it may be changed
to an error in a future version.
*/
func BindNames(src string, vals map[string]any) string {
	buf := make([]byte, 0, len(src))
	var key []byte
	var awaiting bool

	for ind := 0; ind < len(src); ind++ {
		char := src[ind]

		if !awaiting {
			if char == ':' {
				awaiting, key = true, key[:0]
			} else {
				buf = append(buf, char)
			}
			continue
		}

		if char != ':' {
			key = append(key, char)
			continue
		}

		awaiting = false
		if len(key) == 0 {
			buf = append(buf, ':')
			continue
		}

		val, ok := vals[string(key)]
		if ok {
			appendStr(&buf, Arg(val))
		} else {
			appendStr(&buf, `NULL`)
		}
	}

	if awaiting {
		buf = append(buf, ';')
		buf = append(buf, key...)
	}
	return bytesToMutableString(buf)
}
