package sqlbuilder

import (
	"database/sql/driver"
	"fmt"
	r "reflect"
	"strconv"
	"time"
)

// Layout used for rendering `time.Time` literals.
const TimeLayout = `2006-01-02 15:04:05.999999999-07:00`

/*
Implemented by types that know how to render themselves as SQL literals. The
output is spliced into SQL text as-is, so implementations are responsible for
their own quoting and escaping.
*/
type SqlArg interface{ SqlArg() string }

/*
Raw SQL text, rendered as-is by `Arg`. Useful for binding column names,
function calls or subqueries into placeholders:

	Bind(`select * from books where ? > 10`, Raw(`price`))

Never use this for user input.
*/
type Raw string

// Implement `SqlArg`.
func (self Raw) SqlArg() string { return string(self) }

/*
Renders an arbitrary value as an SQL literal. Used by the placeholder binders.
Rules, in order of priority:

	nil, nil pointer/map/slice   → NULL
	SqlArg                       → .SqlArg()
	string                       → 'quoted'
	[]byte                       → 'quoted'
	bool                         → TRUE / FALSE
	int, uint, float             → digits, floats without exponent
	time.Time                    → 'quoted' in `TimeLayout`
	fmt.Stringer                 → 'quoted' .String()
	driver.Valuer                → rendered result of .Value()
	other non-nil pointer        → rendered pointee

Methods are looked up on the value as given, so pointer receivers such as
`(*big.Int).String` apply.

Anything else is quoted after formatting via `fmt.Sprint`. Panics if a
`driver.Valuer` fails.
*/
func Arg(val any) string {
	if isNil(val) {
		return `NULL`
	}

	impl, _ := val.(SqlArg)
	if impl != nil {
		return impl.SqlArg()
	}

	switch val := val.(type) {
	case string:
		return Quote(val)
	case []byte:
		return Quote(bytesToMutableString(val))
	case bool:
		return boolArg(val)
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return Quote(val.Format(TimeLayout))
	case *time.Time:
		return Quote(val.Format(TimeLayout))
	case fmt.Stringer:
		return Quote(val.String())
	case driver.Valuer:
		return Arg(try1(val.Value()))
	}

	rval := r.ValueOf(val)
	switch rval.Kind() {
	case r.Ptr:
		return Arg(rval.Elem().Interface())

	case r.Int8, r.Int16, r.Int32, r.Int64, r.Int:
		return strconv.FormatInt(rval.Int(), 10)

	case r.Uint8, r.Uint16, r.Uint32, r.Uint64, r.Uint, r.Uintptr:
		return strconv.FormatUint(rval.Uint(), 10)

	case r.Float32, r.Float64:
		return strconv.FormatFloat(rval.Float(), 'f', -1, rval.Type().Bits())

	case r.Bool:
		return boolArg(rval.Bool())

	case r.String:
		return Quote(rval.String())

	default:
		return Quote(fmt.Sprint(val))
	}
}

// Renders each value via `Arg`.
func Args(vals ...any) []string {
	out := make([]string, len(vals))
	for i, val := range vals {
		out[i] = Arg(val)
	}
	return out
}

func boolArg(val bool) string {
	if val {
		return `TRUE`
	}
	return `FALSE`
}
