package sqlbuilder

import (
	"encoding/json"
	"fmt"
	r "reflect"
	"regexp"
	"strings"

	"github.com/mitranim/refut"
)

var ordReg = regexp.MustCompile(
	`^\s*((?:\w+\.)*\w+)(?i)(?:\s+(asc|desc))?(?:\s+nulls\s+(first|last))?\s*$`,
)

/*
Short for "orderings". Sequence of `Ord`, typically decoded from external input
such as a JSON request body or URL query:

	type Author struct {
		Name string `json:"name" db:"name"`
	}

	type Book struct {
		Title  string `json:"title"  db:"title"`
		Author Author `json:"author" db:"author"`
	}

	ords := OrdsFor(Book{})
	err := ords.UnmarshalJSON([]byte(`["title desc", "author.name asc nulls last"]`))

	ords.Apply(SelectFrom(`books`))
	// SELECT * FROM books ORDER BY title DESC, author.name NULLS LAST

`.Type` must be a struct type. Every field path in the input must be found in
that type, possibly in nested structs, through `json` tags, and is converted
into the path of the corresponding `db` tags. Identifiers without a pair of
`json` and `db` tags cause a parse error, unless `.Lax` is set, in which case
they're skipped. Malformed entries are always rejected.
*/
type Ords struct {
	Items []Ord
	Type  r.Type
	Lax   bool
}

// Shortcut for creating `Ords` without a type.
func OrdsFrom(items ...Ord) Ords { return Ords{Items: items} }

/*
Shortcut for empty `Ords` intended for parsing. The input is used only as a type
carrier.
*/
func OrdsFor(val any) Ords { return Ords{Type: r.TypeOf(val)} }

// Implement decoding from a JSON array of strings. See `.ParseSlice`.
func (self *Ords) UnmarshalJSON(input []byte) error {
	var vals []string
	err := json.Unmarshal(input, &vals)
	if err != nil {
		return ErrInvalidInput.while(`decoding orderings`).because(err)
	}
	return self.ParseSlice(vals)
}

/*
Convenience method for parsing string slices, which may come from URL queries,
form-encoded data, and so on. Replaces existing items.
*/
func (self *Ords) ParseSlice(vals []string) error {
	self.Items = make([]Ord, 0, len(vals))

	for _, val := range vals {
		ord, ok, err := self.parseOrd(val)
		if err != nil {
			return err
		}
		if ok {
			self.Items = append(self.Items, ord)
		}
	}
	return nil
}

func (self Ords) parseOrd(src string) (Ord, bool, error) {
	const while = `parsing ordering`

	match := ordReg.FindStringSubmatch(src)
	if match == nil {
		return Ord{}, false, ErrInvalidInput.while(while).because(fmt.Errorf(
			`%q is not a valid ordering string; expected format: "<ident> [asc|desc] [nulls first|last]"`, src,
		))
	}

	path, ok, err := structDbPathByJsonPath(self.Type, match[1])
	if err != nil {
		return Ord{}, false, ErrInvalidInput.while(while).because(err)
	}
	if !ok {
		if self.Lax {
			return Ord{}, false, nil
		}
		return Ord{}, false, ErrInvalidInput.while(while).because(
			errUnknown(`field`, match[1]),
		)
	}

	out := Ord{Path: path, Desc: strings.EqualFold(match[2], `desc`)}
	switch strings.ToLower(match[3]) {
	case `first`:
		out.Nulls = NullsFirst
	case `last`:
		out.Nulls = NullsLast
	}
	return out, true, nil
}

// Returns the amount of items.
func (self Ords) Len() int { return len(self.Items) }

// Returns true if there are no items.
func (self Ords) IsEmpty() bool { return self.Len() == 0 }

// Convenience method for appending.
func (self *Ords) Append(items ...Ord) {
	self.Items = append(self.Items, items...)
}

// If empty, replaces items with the provided fallback. Otherwise does nothing.
func (self *Ords) Or(items ...Ord) {
	if self.IsEmpty() {
		self.Items = items
	}
}

/*
Returns ` ORDER BY <ord>, <ord>` or an empty string. Has a leading space, for
appending to a query.
*/
func (self Ords) String() string {
	var buf []byte
	for ind, ord := range self.Items {
		if ind == 0 {
			appendStr(&buf, ` ORDER BY `)
		} else {
			appendStr(&buf, `, `)
		}
		ord.AppendBytes(&buf)
	}
	return bytesToMutableString(buf)
}

// Appends every item to the `ORDER BY` list of the builder.
func (self Ords) Apply(bui *SqlBuilder) *SqlBuilder {
	for _, ord := range self.Items {
		bui.orderBy = append(bui.orderBy, ord.String())
	}
	return bui
}

// Placement of nulls in an `Ord`.
type Nulls byte

const (
	NullsDefault Nulls = iota
	NullsFirst
	NullsLast
)

// Shortcut for an ascending `Ord`.
func OrdAsc(path ...string) Ord { return Ord{Path: path} }

// Shortcut for a descending `Ord`.
func OrdDesc(path ...string) Ord { return Ord{Path: path, Desc: true} }

// Shortcut for an ascending `Ord` with nulls last.
func OrdAscNl(path ...string) Ord { return Ord{Path: path, Nulls: NullsLast} }

// Shortcut for a descending `Ord` with nulls last.
func OrdDescNl(path ...string) Ord { return Ord{Path: path, Desc: true, Nulls: NullsLast} }

/*
Short for "ordering". Describes an SQL ordering like:

	title DESC

	author.name NULLS LAST

in a structured format. The path is rendered as an `SqlName`, quoting parts
when needed. Ascending order is the default and renders no keyword.
*/
type Ord struct {
	Path  []string
	Desc  bool
	Nulls Nulls
}

// Implement `fmt.Stringer`.
func (self Ord) String() string {
	var buf []byte
	self.AppendBytes(&buf)
	return bytesToMutableString(buf)
}

// Appends the SQL representation to the buffer. See `.String`.
func (self Ord) AppendBytes(buf *[]byte) {
	appendStr(buf, NewName(self.Path...).Safe())
	if self.Desc {
		appendStr(buf, ` DESC`)
	}
	switch self.Nulls {
	case NullsFirst:
		appendStr(buf, ` NULLS FIRST`)
	case NullsLast:
		appendStr(buf, ` NULLS LAST`)
	}
}

/*
Resolves a dotted path of `json` names into the path of `db` names, descending
into nested struct fields. False means some segment wasn't found or has no
`db` name.
*/
func structDbPathByJsonPath(typ r.Type, src string) ([]string, bool, error) {
	if typ == nil {
		return nil, false, fmt.Errorf(`no struct type to resolve %q against`, src)
	}

	segments := strings.Split(src, `.`)
	out := make([]string, 0, len(segments))

	for _, seg := range segments {
		typ = refut.RtypeDeref(typ)
		if typ.Kind() != r.Struct {
			return nil, false, nil
		}

		sfield, ok := structFieldByJsonName(typ, seg)
		if !ok {
			return nil, false, nil
		}

		col := sfieldColumnName(sfield)
		if col == `` {
			return nil, false, nil
		}

		out = append(out, col)
		typ = sfield.Type
	}
	return out, true, nil
}

func structFieldByJsonName(typ r.Type, name string) (out r.StructField, found bool) {
	try(refut.TraverseStructRtype(typ, func(sfield r.StructField, _ []int) error {
		if !found && sfieldJsonName(sfield) == name {
			out, found = sfield, true
		}
		return nil
	}))
	return
}
