package sqlbuilder

import (
	"strings"
)

// Statement kind of a `SqlBuilder`, fixed at construction.
type Statement byte

const (
	StatementSelectFrom Statement = iota
	StatementSelectValues
	StatementUpdateTable
	StatementInsertInto
	StatementDeleteFrom
)

// Implement `fmt.Stringer`.
func (self Statement) String() string {
	switch self {
	case StatementSelectFrom:
		return `SelectFrom`
	case StatementSelectValues:
		return `SelectValues`
	case StatementUpdateTable:
		return `UpdateTable`
	case StatementInsertInto:
		return `InsertInto`
	case StatementDeleteFrom:
		return `DeleteFrom`
	default:
		return ``
	}
}

type valuesMode byte

const (
	valuesEmpty valuesMode = iota
	valuesList
	valuesSelect
)

/*
Builder for a single SQL statement. Created by one of the constructors:

	SelectFrom(`books`)
	SelectValues(`1`, `2`)
	InsertInto(`books`)
	UpdateTable(`books`)
	DeleteFrom(`books`)

Methods append fragments in the order they're called and return the same
builder for chaining. They never fail; validation happens in `.Query` and
`.Sql`, which don't modify the builder and may be called any number of times.
Inputs are stringified (see `Where`) but never quoted:

	text, err := SelectFrom(`books`).
		Fields(`title`, `price`).
		AndWhereGt(`price`, 100).
		AndWhereLikeRight(`title`, `Harry Potter`).
		OrderDesc(`price`).
		Sql()

	// SELECT title, price FROM books WHERE (price > 100) AND (title LIKE 'Harry Potter%') ORDER BY price DESC;

To build several statements from a shared prefix, see `.Clone`.
*/
type SqlBuilder struct {
	statement    Statement
	table        string
	joins        []string
	joinNatural  bool
	joinOperator string
	distinct     bool
	fields       []string
	sets         []string
	values       valuesMode
	valuesList   []string
	valuesSelect string
	groupBy      []string
	having       string
	unions       string
	wheres       []string
	orderBy      []string
	limit        string
	offset       string
	returning    string
}

// Starts a `SELECT ... FROM <table>` statement.
func SelectFrom(table any) *SqlBuilder { return newBuilder(StatementSelectFrom, table) }

// Starts a `SELECT <fields>` statement without a table.
func SelectValues(fields ...any) *SqlBuilder {
	return newBuilder(StatementSelectValues, nil).Fields(fields...)
}

// Starts an `INSERT INTO <table>` statement.
func InsertInto(table any) *SqlBuilder { return newBuilder(StatementInsertInto, table) }

// Starts an `UPDATE <table>` statement.
func UpdateTable(table any) *SqlBuilder { return newBuilder(StatementUpdateTable, table) }

// Starts a `DELETE FROM <table>` statement.
func DeleteFrom(table any) *SqlBuilder { return newBuilder(StatementDeleteFrom, table) }

func newBuilder(statement Statement, table any) *SqlBuilder {
	return &SqlBuilder{statement: statement, table: text(table)}
}

// Returns the statement kind.
func (self *SqlBuilder) Statement() Statement { return self.statement }

// Returns an independent copy. Subsequent changes to either don't affect the
// other.
func (self *SqlBuilder) Clone() *SqlBuilder {
	out := *self
	out.joins = copyStrings(self.joins)
	out.fields = copyStrings(self.fields)
	out.sets = copyStrings(self.sets)
	out.valuesList = copyStrings(self.valuesList)
	out.groupBy = copyStrings(self.groupBy)
	out.wheres = copyStrings(self.wheres)
	out.orderBy = copyStrings(self.orderBy)
	return &out
}

// Adds another table to the `FROM` list: `FROM a, b`.
func (self *SqlBuilder) AndTable(table any) *SqlBuilder {
	val := text(table)
	if self.table == `` {
		self.table = val
	} else {
		self.table += `, ` + val
	}
	return self
}

// Renders `SELECT DISTINCT`.
func (self *SqlBuilder) Distinct() *SqlBuilder {
	self.distinct = true
	return self
}

// Appends fields.
func (self *SqlBuilder) Fields(fields ...any) *SqlBuilder {
	self.fields = append(self.fields, texts(fields)...)
	return self
}

// Replaces fields.
func (self *SqlBuilder) SetFields(fields ...any) *SqlBuilder {
	self.fields = texts(fields)
	return self
}

// Appends one field.
func (self *SqlBuilder) Field(field any) *SqlBuilder {
	self.fields = append(self.fields, text(field))
	return self
}

// Replaces fields with one field.
func (self *SqlBuilder) SetField(field any) *SqlBuilder {
	self.fields = []string{text(field)}
	return self
}

// Appends the field `COUNT(<field>)`.
func (self *SqlBuilder) Count(field any) *SqlBuilder {
	return self.Field(`COUNT(` + text(field) + `)`)
}

// Appends the field `COUNT(<field>) AS <alias>`.
func (self *SqlBuilder) CountAs(field, alias any) *SqlBuilder {
	return self.Field(`COUNT(` + text(field) + `) AS ` + text(alias))
}

// Makes the next `.Join` natural. Applies to one join only.
func (self *SqlBuilder) Natural() *SqlBuilder {
	self.joinNatural = true
	return self
}

// Subsequent joins are `LEFT JOIN`.
func (self *SqlBuilder) Left() *SqlBuilder { return self.joinAs(`LEFT JOIN `) }

// Subsequent joins are `LEFT OUTER JOIN`.
func (self *SqlBuilder) LeftOuter() *SqlBuilder { return self.joinAs(`LEFT OUTER JOIN `) }

// Subsequent joins are `RIGHT JOIN`.
func (self *SqlBuilder) Right() *SqlBuilder { return self.joinAs(`RIGHT JOIN `) }

// Subsequent joins are `RIGHT OUTER JOIN`.
func (self *SqlBuilder) RightOuter() *SqlBuilder { return self.joinAs(`RIGHT OUTER JOIN `) }

// Subsequent joins are `INNER JOIN`.
func (self *SqlBuilder) Inner() *SqlBuilder { return self.joinAs(`INNER JOIN `) }

// Subsequent joins are `CROSS JOIN`.
func (self *SqlBuilder) Cross() *SqlBuilder { return self.joinAs(`CROSS JOIN `) }

func (self *SqlBuilder) joinAs(operator string) *SqlBuilder {
	self.joinOperator = operator
	return self
}

/*
Appends a join clause. The operator set by `.Left` and friends persists across
joins; `.Natural` applies once:

	SelectFrom(`books`).Left().Join(`shops`).On(`books.id = shops.book`)
	// SELECT * FROM books LEFT JOIN shops ON books.id = shops.book
*/
func (self *SqlBuilder) Join(table any) *SqlBuilder {
	var buf []byte
	if self.joinNatural {
		appendStr(&buf, `NATURAL `)
		self.joinNatural = false
	}
	if self.joinOperator == `` {
		appendStr(&buf, `JOIN `)
	} else {
		appendStr(&buf, self.joinOperator)
	}
	appendStr(&buf, text(table))

	self.joins = append(self.joins, string(buf))
	return self
}

// Attaches ` ON <constraint>` to the last join. Does nothing without joins.
func (self *SqlBuilder) On(constraint any) *SqlBuilder {
	ind := lastIndex(self.joins)
	if ind >= 0 {
		self.joins[ind] += ` ON ` + text(constraint)
	}
	return self
}

// Attaches ` ON <left> = <right>` to the last join.
func (self *SqlBuilder) OnEq(left, right any) *SqlBuilder {
	return self.On(text(left) + ` = ` + text(right))
}

// Appends `<field> = <value>` to the `SET` list.
func (self *SqlBuilder) Set(field, value any) *SqlBuilder {
	self.sets = append(self.sets, text(field)+` = `+text(value))
	return self
}

// Appends `<field> = '<value>'` to the `SET` list, quoting the value.
func (self *SqlBuilder) SetStr(field, value any) *SqlBuilder {
	return self.Set(field, Quote(text(value)))
}

/*
Appends a parenthesized group of values for `INSERT`. Replaces a query
previously set by `.Select`.
*/
func (self *SqlBuilder) Values(vals ...any) *SqlBuilder {
	group := `(` + joinTexts(vals, `, `) + `)`
	if self.values == valuesList {
		self.valuesList = append(self.valuesList, group)
	} else {
		self.values = valuesList
		self.valuesList = []string{group}
		self.valuesSelect = ``
	}
	return self
}

// Uses the query as the source of `INSERT`, replacing any values.
func (self *SqlBuilder) Select(query any) *SqlBuilder {
	self.values = valuesSelect
	self.valuesList = nil
	self.valuesSelect = text(query)
	return self
}

// Sets the `RETURNING` field.
func (self *SqlBuilder) Returning(field any) *SqlBuilder {
	self.returning = text(field)
	return self
}

// Shortcut for `.Returning("id")`.
func (self *SqlBuilder) ReturningID() *SqlBuilder { return self.Returning(`id`) }

// Appends a `GROUP BY` field.
func (self *SqlBuilder) GroupBy(field any) *SqlBuilder {
	self.groupBy = append(self.groupBy, text(field))
	return self
}

// Sets the `HAVING` condition. Rendered only with `GROUP BY`.
func (self *SqlBuilder) Having(cond any) *SqlBuilder {
	self.having = text(cond)
	return self
}

/*
Appends ` UNION <query>`. When unions are present, `ORDER BY` of this builder
is not rendered; place it in the last unioned query instead.
*/
func (self *SqlBuilder) Union(query any) *SqlBuilder {
	self.unions += ` UNION ` + text(query)
	return self
}

// Appends ` UNION ALL <query>`. See `.Union`.
func (self *SqlBuilder) UnionAll(query any) *SqlBuilder {
	self.unions += ` UNION ALL ` + text(query)
	return self
}

// Appends an ordering, optionally descending.
func (self *SqlBuilder) OrderBy(field any, desc bool) *SqlBuilder {
	val := text(field)
	if desc {
		val += ` DESC`
	}
	self.orderBy = append(self.orderBy, val)
	return self
}

// Appends an ascending ordering.
func (self *SqlBuilder) OrderAsc(field any) *SqlBuilder { return self.OrderBy(field, false) }

// Appends a descending ordering.
func (self *SqlBuilder) OrderDesc(field any) *SqlBuilder { return self.OrderBy(field, true) }

// Sets `LIMIT`.
func (self *SqlBuilder) Limit(limit any) *SqlBuilder {
	self.limit = text(limit)
	return self
}

// Sets `OFFSET`.
func (self *SqlBuilder) Offset(offset any) *SqlBuilder {
	self.offset = text(offset)
	return self
}

// Renders the statement terminated with `;`.
func (self *SqlBuilder) Sql() (string, error) {
	out, err := self.Query()
	if err != nil {
		return ``, err
	}
	return out + `;`, nil
}

// Renders the statement without a terminator.
func (self *SqlBuilder) Query() (string, error) {
	switch self.statement {
	case StatementSelectValues:
		return self.QueryValues()
	case StatementInsertInto:
		return self.queryInsert()
	case StatementUpdateTable:
		return self.queryUpdate()
	case StatementDeleteFrom:
		return self.queryDelete()
	default:
		return self.querySelect()
	}
}

/*
Implement `fmt.Stringer`. Renders via `.Query`, returning an empty string on
error. Lets builders be passed as subqueries to other builders:

	InsertInto(`archive`).Select(SelectFrom(`books`).Field(`id`))
*/
func (self *SqlBuilder) String() string {
	out, _ := self.Query()
	return out
}

// Renders `SELECT <fields>` regardless of the statement kind.
func (self *SqlBuilder) QueryValues() (string, error) {
	if len(self.fields) == 0 {
		return ``, ErrNoValues.while(`rendering select values`)
	}

	var buf []byte
	appendStr(&buf, `SELECT `)
	appendStr(&buf, strings.Join(self.fields, `, `))
	return bytesToMutableString(buf), nil
}

// Renders `(<query>)` for use in another statement.
func (self *SqlBuilder) Subquery() (string, error) {
	out, err := self.Query()
	if err != nil {
		return ``, err
	}
	return `(` + out + `)`, nil
}

// Renders `(<query>) AS <name>`.
func (self *SqlBuilder) SubqueryAs(name any) (string, error) {
	out, err := self.Subquery()
	if err != nil {
		return ``, err
	}
	return out + ` AS ` + text(name), nil
}

func (self *SqlBuilder) querySelect() (string, error) {
	if self.table == `` {
		return ``, ErrNoTableName.while(`rendering select`)
	}

	var buf []byte
	appendStr(&buf, `SELECT `)
	if self.distinct {
		appendStr(&buf, `DISTINCT `)
	}
	if len(self.fields) == 0 {
		appendStr(&buf, `*`)
	} else {
		appendStr(&buf, strings.Join(self.fields, `, `))
	}

	appendStr(&buf, ` FROM `)
	appendStr(&buf, self.table)
	if len(self.joins) > 0 {
		appendStr(&buf, ` `)
		appendStr(&buf, strings.Join(self.joins, ` `))
	}

	appendWheres(&buf, self.wheres)

	if len(self.groupBy) > 0 {
		appendStr(&buf, ` GROUP BY `)
		appendStr(&buf, strings.Join(self.groupBy, `, `))
		if self.having != `` {
			appendStr(&buf, ` HAVING `)
			appendStr(&buf, self.having)
		}
	}

	appendStr(&buf, self.unions)

	if self.unions == `` && len(self.orderBy) > 0 {
		appendStr(&buf, ` ORDER BY `)
		appendStr(&buf, strings.Join(self.orderBy, `, `))
	}
	if self.limit != `` {
		appendStr(&buf, ` LIMIT `)
		appendStr(&buf, self.limit)
	}
	if self.offset != `` {
		appendStr(&buf, ` OFFSET `)
		appendStr(&buf, self.offset)
	}
	return bytesToMutableString(buf), nil
}

func (self *SqlBuilder) queryInsert() (string, error) {
	const while = `rendering insert`

	if self.table == `` {
		return ``, ErrNoTableName.while(while)
	}

	var buf []byte
	appendStr(&buf, `INSERT INTO `)
	appendStr(&buf, self.table)
	appendEnclosed(&buf, ` (`, strings.Join(self.fields, `, `), `)`)

	switch self.values {
	case valuesList:
		if len(self.valuesList) == 0 {
			return ``, ErrNoValues.while(while)
		}
		appendStr(&buf, ` VALUES `)
		appendStr(&buf, strings.Join(self.valuesList, `, `))

	case valuesSelect:
		appendStr(&buf, ` `)
		appendStr(&buf, self.valuesSelect)

	default:
		return ``, ErrNoValues.while(while)
	}

	appendReturning(&buf, self.returning)
	return bytesToMutableString(buf), nil
}

func (self *SqlBuilder) queryUpdate() (string, error) {
	const while = `rendering update`

	if self.table == `` {
		return ``, ErrNoTableName.while(while)
	}
	if len(self.sets) == 0 {
		return ``, ErrNoSetFields.while(while)
	}

	var buf []byte
	appendStr(&buf, `UPDATE `)
	appendStr(&buf, self.table)
	appendStr(&buf, ` SET `)
	appendStr(&buf, strings.Join(self.sets, `, `))
	appendWheres(&buf, self.wheres)
	appendReturning(&buf, self.returning)
	return bytesToMutableString(buf), nil
}

func (self *SqlBuilder) queryDelete() (string, error) {
	if self.table == `` {
		return ``, ErrNoTableName.while(`rendering delete`)
	}

	var buf []byte
	appendStr(&buf, `DELETE FROM `)
	appendStr(&buf, self.table)
	appendWheres(&buf, self.wheres)
	return bytesToMutableString(buf), nil
}

/*
Zero conditions render nothing, one renders ` WHERE <cond>`, more render
` WHERE (<cond>) AND (<cond>)`. Parenthesizing each condition scopes any `OR`
appended by `OrWhere`.
*/
func appendWheres(buf *[]byte, wheres []string) {
	switch len(wheres) {
	case 0:
	case 1:
		appendStr(buf, ` WHERE `)
		appendStr(buf, wheres[0])
	default:
		appendStr(buf, ` WHERE `)
		for ind, cond := range wheres {
			if ind > 0 {
				appendStr(buf, ` AND `)
			}
			appendEnclosed(buf, `(`, cond, `)`)
		}
	}
}

func appendReturning(buf *[]byte, field string) {
	if field != `` {
		appendStr(buf, ` RETURNING `)
		appendStr(buf, field)
	}
}
