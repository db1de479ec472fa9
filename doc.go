/*
SQL Builder: simple SQL statement builder. Assembles SQL text from chained
calls instead of manual concatenation, and substitutes placeholders with
literal values. Never parses or executes SQL; it only produces strings.

Key Features

• Builders for SELECT, INSERT, UPDATE and DELETE with a fixed clause order.
Methods never fail; validation happens once, when rendering. See `SqlBuilder`.

• Condition builder for WHERE expressions, with deferred error reporting. See
`Where`, `And`, `Or`, `Not`.

• Placeholder binding: `?` in order (`Bind`, `Binds`), `$N` by number
(`BindNum`, `BindNums`), `:name:` by name (`BindName`, `BindNames`). Values
are rendered as SQL literals by `Arg`.

• Detection of placeholders left unbound. See `Unbound`.

• Identifier and literal quoting in several styles. See `Quote`, `SqlName`.

• Columns, values and sets taken from `db`-tagged struct fields. See
`StructCols`, `SqlBuilder.FieldsOf`, `SqlBuilder.ValuesOf`.

• Orderings parsed from untrusted input and validated against a struct type.
See `Ords`.

Examples

	text, err := SelectFrom(`books`).
		Fields(`title`, `price`).
		AndWhere(Binds(`price > ? AND title LIKE ?`, 100, `Harry Potter%`)).
		Sql()

	// SELECT title, price FROM books WHERE price > 100 AND title LIKE 'Harry Potter%';

The command `sqlbuild` under "cmd" renders statements described in YAML and
exposes the binders on the command line.
*/
package sqlbuilder
