package sqlbuilder

import (
	"fmt"
	r "reflect"
	"strings"
	"unsafe"

	"github.com/mitranim/refut"
)

func try(err error) {
	if err != nil {
		panic(err)
	}
}

func try1[A any](val A, err error) A {
	try(err)
	return val
}

// Must be deferred.
func rec(ptr *error) {
	val := recover()
	if val == nil {
		return
	}

	err, _ := val.(error)
	if err != nil {
		*ptr = err
		return
	}

	panic(val)
}

func isNil(val any) bool { return val == nil || isValueNil(r.ValueOf(val)) }

func isValueNil(val r.Value) bool {
	return !val.IsValid() || isNilable(val.Kind()) && val.IsNil()
}

func isNilable(kind r.Kind) bool {
	switch kind {
	case r.Chan, r.Func, r.Interface, r.Map, r.Ptr, r.Slice:
		return true
	default:
		return false
	}
}

/*
Allocation-free conversion. Reinterprets a byte slice as a string. Borrowed from
the standard library. Reasonably safe. Should not be used when the underlying
byte array is volatile.
*/
func bytesToMutableString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

func appendStr(buf *[]byte, str string) {
	*buf = append(*buf, str...)
}

func appendEnclosed(buf *[]byte, prefix, infix, suffix string) {
	appendStr(buf, prefix)
	appendStr(buf, infix)
	appendStr(buf, suffix)
}

/*
Stringifies builder inputs. Strings are used as-is, `fmt.Stringer` via
`.String`, everything else via `fmt.Sprint`. Nothing is quoted; use `Arg` or
`Quote` for literals.
*/
func text(val any) string {
	switch val := val.(type) {
	case nil:
		return ``
	case string:
		return val
	case fmt.Stringer:
		if isNil(val) {
			return ``
		}
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func texts(vals []any) []string {
	out := make([]string, len(vals))
	for i, val := range vals {
		out[i] = text(val)
	}
	return out
}

func joinTexts(vals []any, sep string) string {
	return strings.Join(texts(vals), sep)
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func lastIndex[A any](vals []A) int { return len(vals) - 1 }

// Column name from the "db" tag. Empty for untagged fields and `db:"-"`.
func sfieldColumnName(sfield r.StructField) string {
	return refut.TagIdent(sfield.Tag.Get(`db`))
}

// JSON field name from the "json" tag, same rules as `sfieldColumnName`.
func sfieldJsonName(sfield r.StructField) string {
	return refut.TagIdent(sfield.Tag.Get(`json`))
}

func structRtype(typ r.Type, while string) r.Type {
	if typ == nil {
		panic(errExpectedStruct(while, typ))
	}
	typ = refut.RtypeDeref(typ)
	if typ.Kind() == r.Slice {
		typ = refut.RtypeDeref(typ.Elem())
	}
	if typ.Kind() != r.Struct {
		panic(errExpectedStruct(while, typ))
	}
	return typ
}
