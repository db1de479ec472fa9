package sqlbuilder

import (
	"fmt"
	r "reflect"
	"strings"
	"unicode"

	pluralizer "github.com/gertd/go-pluralize"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitranim/refut"
)

// Maximum amount of struct types whose columns are cached by `StructCols`.
const StructColsCacheSize = 1024

var (
	structColsCache = try1(lru.New[r.Type, []string](StructColsCacheSize))
	pluralizeClient = pluralizer.NewClient()
)

/*
Returns column names of a struct, taken from `db` tags. Fields without the tag
or tagged `db:"-"` are skipped; embedded structs are flattened. Also accepts
struct pointers and slices, which may be nil. Any other input causes a panic.

	type Book struct {
		Id    int64  `db:"id"`
		Title string `db:"title"`
		Notes string
	}

	StructCols(Book{}) // []string{`id`, `title`}

Results are cached per type. The returned slice may be modified freely.
*/
func StructCols(val any) []string {
	typ := structRtype(r.TypeOf(val), `getting struct columns`)
	return copyStrings(structRtypeCols(typ))
}

func structRtypeCols(typ r.Type) []string {
	cols, ok := structColsCache.Get(typ)
	if ok {
		return cols
	}

	cols = []string{}
	try(refut.TraverseStructRtype(typ, func(sfield r.StructField, _ []int) error {
		col := sfieldColumnName(sfield)
		if col != `` {
			cols = append(cols, col)
		}
		return nil
	}))

	structColsCache.Add(typ, cols)
	return cols
}

/*
Calls the function for every `db`-tagged field of a non-nil struct, in the
same order as `StructCols`. Does nothing for nil pointers. Panics on
non-structs.
*/
func traverseStructDbFields(val any, while string, fun func(string, any)) {
	rval := r.ValueOf(val)
	if !rval.IsValid() || refut.RtypeDeref(rval.Type()).Kind() != r.Struct {
		panic(errExpectedStruct(while, r.TypeOf(val)))
	}

	if refut.IsRvalNil(rval) {
		return
	}

	try(refut.TraverseStructRval(rval, func(rval r.Value, sfield r.StructField, _ []int) error {
		col := sfieldColumnName(sfield)
		if col != `` {
			fun(col, rval.Interface())
		}
		return nil
	}))
}

// Appends the struct's columns to the field list. See `StructCols`.
func (self *SqlBuilder) FieldsOf(val any) *SqlBuilder {
	self.fields = append(self.fields, structRtypeCols(
		structRtype(r.TypeOf(val), `appending struct fields`),
	)...)
	return self
}

/*
Appends one group of values taken from the struct's `db` fields and rendered
via `Arg`. Pairs with `.FieldsOf`:

	InsertInto(`books`).FieldsOf(book).ValuesOf(book)

A nil struct pointer appends nothing.
*/
func (self *SqlBuilder) ValuesOf(val any) *SqlBuilder {
	var vals []any
	var found bool

	traverseStructDbFields(val, `appending struct values`, func(_ string, field any) {
		found = true
		vals = append(vals, Arg(field))
	})

	if found {
		self.Values(vals...)
	}
	return self
}

// Appends `<col> = <value>` for each `db` field, rendering values via `Arg`.
func (self *SqlBuilder) SetsOf(val any) *SqlBuilder {
	traverseStructDbFields(val, `appending struct sets`, func(col string, field any) {
		self.Set(col, Arg(field))
	})
	return self
}

/*
Derives a table name from the struct type name: snake_case, pluralized.

	TableOf(BlogPost{}) // blog_posts
	TableOf(&Person{})  // people

Panics on non-structs and anonymous struct types.
*/
func TableOf(val any) string {
	const while = `deriving table name`

	typ := structRtype(r.TypeOf(val), while)
	if typ.Name() == `` {
		panic(ErrInvalidInput.while(while).because(fmt.Errorf(`anonymous struct %q has no name`, typ)))
	}

	words := strings.Split(snakeCase(typ.Name()), `_`)
	last := len(words) - 1
	words[last] = pluralizeClient.Plural(words[last])
	return strings.Join(words, `_`)
}

/*
Inserts `_` before an uppercase letter following a lowercase letter or digit,
and before the last letter of an uppercase run followed by lowercase, then
lowercases everything: `HTTPServerLog` → `http_server_log`.
*/
func snakeCase(src string) string {
	runes := []rune(src)
	var buf strings.Builder
	buf.Grow(len(src) + 4)

	for ind, char := range runes {
		if ind > 0 && unicode.IsUpper(char) {
			prev := runes[ind-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				unicode.IsUpper(prev) && ind+1 < len(runes) && unicode.IsLower(runes[ind+1]) {
				buf.WriteByte('_')
			}
		}
		buf.WriteRune(unicode.ToLower(char))
	}
	return buf.String()
}
