package sqlbuilder

import (
	"testing"
)

func TestSelectFrom(t *testing.T) {
	t.Run(`star`, func(t *T) {
		eq(t, `SELECT * FROM books;`, render(t, SelectFrom(`books`)))
	})

	t.Run(`fields`, func(t *T) {
		eq(t, `SELECT title, price FROM books;`, render(t, SelectFrom(`books`).Fields(`title`, `price`)))
		eq(t, `SELECT title, price FROM books;`, render(t, SelectFrom(`books`).Field(`title`).Field(`price`)))
		eq(t, `SELECT id FROM books;`, render(t, SelectFrom(`books`).Fields(`title`, `price`).SetFields(`id`)))
		eq(t, `SELECT id FROM books;`, render(t, SelectFrom(`books`).Fields(`title`).SetField(`id`)))
		eq(t, `SELECT books.title FROM books;`, render(t, SelectFrom(`books`).Field(NewName(`books`, `title`))))
	})

	t.Run(`distinct`, func(t *T) {
		eq(t, `SELECT DISTINCT author FROM books;`, render(t, SelectFrom(`books`).Distinct().Field(`author`)))
		eq(t, `SELECT DISTINCT * FROM books;`, render(t, SelectFrom(`books`).Distinct()))
	})

	t.Run(`count`, func(t *T) {
		eq(t, `SELECT COUNT(*) FROM books;`, render(t, SelectFrom(`books`).Count(`*`)))
		eq(t, `SELECT COUNT(id) AS total FROM books;`, render(t, SelectFrom(`books`).CountAs(`id`, `total`)))
	})

	t.Run(`multiple_tables`, func(t *T) {
		eq(t, `SELECT * FROM books, shops;`, render(t, SelectFrom(`books`).AndTable(`shops`)))
		eq(t, `SELECT * FROM shops;`, render(t, SelectFrom(``).AndTable(`shops`)))
	})

	t.Run(`where`, func(t *T) {
		eq(t,
			`SELECT * FROM books WHERE price > 100;`,
			render(t, SelectFrom(`books`).AndWhereGt(`price`, 100)),
		)
		eq(t,
			`SELECT * FROM books WHERE (price > 100) AND (title = 'Dune');`,
			render(t, SelectFrom(`books`).AndWhereGt(`price`, 100).AndWhereEq(`title`, Quote(`Dune`))),
		)
		eq(t,
			`SELECT * FROM books WHERE price > 100 AND title LIKE 'Harry Potter%';`,
			render(t, SelectFrom(`books`).AndWhere(Binds(`price > ? AND title LIKE ?`, 100, `Harry Potter%`))),
		)
	})

	t.Run(`group_by_having`, func(t *T) {
		eq(t,
			`SELECT author, COUNT(*) FROM books WHERE price > 10 GROUP BY author HAVING COUNT(*) > 1;`,
			render(t, SelectFrom(`books`).
				Fields(`author`, `COUNT(*)`).
				AndWhereGt(`price`, 10).
				GroupBy(`author`).
				Having(`COUNT(*) > 1`)),
		)
		eq(t,
			`SELECT * FROM books GROUP BY author, year;`,
			render(t, SelectFrom(`books`).GroupBy(`author`).GroupBy(`year`)),
		)
	})

	t.Run(`having_requires_group_by`, func(t *T) {
		eq(t, `SELECT * FROM books;`, render(t, SelectFrom(`books`).Having(`COUNT(*) > 1`)))
	})

	t.Run(`order_limit_offset`, func(t *T) {
		eq(t,
			`SELECT * FROM books ORDER BY price DESC, title LIMIT 10 OFFSET 20;`,
			render(t, SelectFrom(`books`).OrderDesc(`price`).OrderAsc(`title`).Limit(10).Offset(20)),
		)
		eq(t,
			`SELECT * FROM books ORDER BY price DESC;`,
			render(t, SelectFrom(`books`).OrderBy(`price`, true)),
		)
		eq(t, `SELECT * FROM books OFFSET 5;`, render(t, SelectFrom(`books`).Offset(5)))
	})

	t.Run(`unions_suppress_order`, func(t *T) {
		eq(t,
			`SELECT id FROM books UNION SELECT id FROM archive LIMIT 10;`,
			render(t, SelectFrom(`books`).Field(`id`).Union(`SELECT id FROM archive`).OrderAsc(`id`).Limit(10)),
		)
		eq(t,
			`SELECT id FROM books UNION ALL SELECT id FROM archive UNION SELECT id FROM drafts;`,
			render(t, SelectFrom(`books`).Field(`id`).UnionAll(`SELECT id FROM archive`).Union(`SELECT id FROM drafts`)),
		)
	})

	t.Run(`clause_order`, func(t *T) {
		eq(t,
			`SELECT DISTINCT books.author FROM books LEFT JOIN shops ON books.id = shops.book WHERE (books.price > 10) AND (shops.id IS NOT NULL) GROUP BY books.author HAVING COUNT(*) > 2 ORDER BY books.author LIMIT 5 OFFSET 10;`,
			render(t, SelectFrom(`books`).
				Offset(10).
				Limit(5).
				OrderAsc(`books.author`).
				Having(`COUNT(*) > 2`).
				GroupBy(`books.author`).
				AndWhereGt(`books.price`, 10).
				AndWhereIsNotNull(`shops.id`).
				Left().Join(`shops`).On(`books.id = shops.book`).
				Field(`books.author`).
				Distinct()),
		)
	})

	t.Run(`no_table`, func(t *T) {
		_, err := SelectFrom(``).Sql()
		errIs(t, ErrNoTableName, err)

		_, err = SelectFrom(nil).Query()
		errIs(t, ErrNoTableName, err)
	})
}

func TestSqlBuilder_joins(t *testing.T) {
	test := func(exp string, bui *SqlBuilder) {
		t.Helper()
		eq(t, exp, render(t, bui))
	}

	test(
		`SELECT * FROM books JOIN shops ON books.id = shops.book;`,
		SelectFrom(`books`).Join(`shops`).On(`books.id = shops.book`),
	)
	test(
		`SELECT * FROM books INNER JOIN shops ON books.id = shops.book;`,
		SelectFrom(`books`).Inner().Join(`shops`).On(`books.id = shops.book`),
	)
	test(
		`SELECT * FROM books LEFT JOIN shops ON books.id = shops.book;`,
		SelectFrom(`books`).Left().Join(`shops`).OnEq(`books.id`, `shops.book`),
	)
	test(
		`SELECT * FROM books LEFT OUTER JOIN shops;`,
		SelectFrom(`books`).LeftOuter().Join(`shops`),
	)
	test(
		`SELECT * FROM books RIGHT JOIN shops;`,
		SelectFrom(`books`).Right().Join(`shops`),
	)
	test(
		`SELECT * FROM books RIGHT OUTER JOIN shops;`,
		SelectFrom(`books`).RightOuter().Join(`shops`),
	)
	test(
		`SELECT * FROM books CROSS JOIN shops;`,
		SelectFrom(`books`).Cross().Join(`shops`),
	)

	t.Run(`operator_persists`, func(t *T) {
		test(
			`SELECT * FROM books LEFT JOIN shops LEFT JOIN authors;`,
			SelectFrom(`books`).Left().Join(`shops`).Join(`authors`),
		)
	})

	t.Run(`natural_applies_once`, func(t *T) {
		test(
			`SELECT * FROM books NATURAL JOIN shops JOIN authors;`,
			SelectFrom(`books`).Natural().Join(`shops`).Join(`authors`),
		)
		test(
			`SELECT * FROM books NATURAL LEFT JOIN shops;`,
			SelectFrom(`books`).Left().Natural().Join(`shops`),
		)
	})

	t.Run(`on_applies_to_last_join`, func(t *T) {
		test(
			`SELECT * FROM books JOIN shops ON books.id = shops.book JOIN authors ON books.author = authors.id;`,
			SelectFrom(`books`).
				Join(`shops`).On(`books.id = shops.book`).
				Join(`authors`).OnEq(`books.author`, `authors.id`),
		)
	})

	t.Run(`on_without_join`, func(t *T) {
		test(`SELECT * FROM books;`, SelectFrom(`books`).On(`books.id = 1`))
	})
}

func TestSqlBuilder_wheres(t *testing.T) {
	test := func(exp string, bui *SqlBuilder) {
		t.Helper()
		eq(t, exp, render(t, bui))
	}
	books := func() *SqlBuilder { return SelectFrom(`books`) }

	t.Run(`comparisons`, func(t *T) {
		test(`SELECT * FROM books WHERE id = 1;`, books().AndWhereEq(`id`, 1))
		test(`SELECT * FROM books WHERE id <> 1;`, books().AndWhereNe(`id`, 1))
		test(`SELECT * FROM books WHERE id > 1;`, books().AndWhereGt(`id`, 1))
		test(`SELECT * FROM books WHERE id >= 1;`, books().AndWhereGe(`id`, 1))
		test(`SELECT * FROM books WHERE id < 1;`, books().AndWhereLt(`id`, 1))
		test(`SELECT * FROM books WHERE id <= 1;`, books().AndWhereLe(`id`, 1))
		test(`SELECT * FROM books WHERE id IS NULL;`, books().AndWhereIsNull(`id`))
		test(`SELECT * FROM books WHERE id IS NOT NULL;`, books().AndWhereIsNotNull(`id`))
	})

	t.Run(`or_comparisons`, func(t *T) {
		test(
			`SELECT * FROM books WHERE id = 1 OR id <> 2 OR id > 3 OR id >= 4 OR id < 5 OR id <= 6 OR id IS NULL OR id IS NOT NULL;`,
			books().
				OrWhereEq(`id`, 1).
				OrWhereNe(`id`, 2).
				OrWhereGt(`id`, 3).
				OrWhereGe(`id`, 4).
				OrWhereLt(`id`, 5).
				OrWhereLe(`id`, 6).
				OrWhereIsNull(`id`).
				OrWhereIsNotNull(`id`),
		)
	})

	t.Run(`like`, func(t *T) {
		test(`SELECT * FROM books WHERE title LIKE 'Dune';`, books().AndWhereLike(`title`, `Dune`))
		test(`SELECT * FROM books WHERE title LIKE 'Harry%';`, books().AndWhereLikeRight(`title`, `Harry`))
		test(`SELECT * FROM books WHERE title LIKE '%Potter';`, books().AndWhereLikeLeft(`title`, `Potter`))
		test(`SELECT * FROM books WHERE title LIKE '%it''s%';`, books().AndWhereLikeAny(`title`, `it's`))
		test(`SELECT * FROM books WHERE title NOT LIKE 'Dune';`, books().AndWhereNotLike(`title`, `Dune`))
		test(`SELECT * FROM books WHERE title NOT LIKE 'Harry%';`, books().AndWhereNotLikeRight(`title`, `Harry`))
		test(`SELECT * FROM books WHERE title NOT LIKE '%Potter';`, books().AndWhereNotLikeLeft(`title`, `Potter`))
		test(`SELECT * FROM books WHERE title NOT LIKE '%war%';`, books().AndWhereNotLikeAny(`title`, `war`))
		test(
			`SELECT * FROM books WHERE title LIKE 'a' OR title LIKE 'b%' OR title LIKE '%c' OR title LIKE '%d%';`,
			books().
				OrWhereLike(`title`, `a`).
				OrWhereLikeRight(`title`, `b`).
				OrWhereLikeLeft(`title`, `c`).
				OrWhereLikeAny(`title`, `d`),
		)
		test(
			`SELECT * FROM books WHERE title NOT LIKE 'a' OR title NOT LIKE 'b%' OR title NOT LIKE '%c' OR title NOT LIKE '%d%';`,
			books().
				OrWhereNotLike(`title`, `a`).
				OrWhereNotLikeRight(`title`, `b`).
				OrWhereNotLikeLeft(`title`, `c`).
				OrWhereNotLikeAny(`title`, `d`),
		)
	})

	t.Run(`in`, func(t *T) {
		test(`SELECT * FROM books WHERE id IN (1, 2, 3);`, books().AndWhereIn(`id`, 1, 2, 3))
		test(`SELECT * FROM books WHERE name IN ('a', 'it''s');`, books().AndWhereInQuoted(`name`, `a`, `it's`))
		test(
			`SELECT * FROM books WHERE id IN (SELECT book FROM shops);`,
			books().AndWhereInQuery(`id`, `SELECT book FROM shops`),
		)
		test(`SELECT * FROM books WHERE id NOT IN (1, 2);`, books().AndWhereNotIn(`id`, 1, 2))
		test(`SELECT * FROM books WHERE name NOT IN ('a');`, books().AndWhereNotInQuoted(`name`, `a`))
		test(
			`SELECT * FROM books WHERE id NOT IN (SELECT book FROM shops);`,
			books().AndWhereNotInQuery(`id`, `SELECT book FROM shops`),
		)
		test(
			`SELECT * FROM books WHERE id IN (1) OR name IN ('a') OR id IN (SELECT 2) OR id NOT IN (3) OR name NOT IN ('b') OR id NOT IN (SELECT 4);`,
			books().
				OrWhereIn(`id`, 1).
				OrWhereInQuoted(`name`, `a`).
				OrWhereInQuery(`id`, `SELECT 2`).
				OrWhereNotIn(`id`, 3).
				OrWhereNotInQuoted(`name`, `b`).
				OrWhereNotInQuery(`id`, `SELECT 4`),
		)
	})

	t.Run(`in_empty_list`, func(t *T) {
		test(`SELECT * FROM books WHERE id IN ();`, books().AndWhereIn(`id`))
		test(`SELECT * FROM books WHERE id NOT IN ();`, books().AndWhereNotInQuoted(`id`))
	})

	t.Run(`between`, func(t *T) {
		test(`SELECT * FROM books WHERE price BETWEEN 10 AND 20;`, books().AndWhereBetween(`price`, 10, 20))
		test(`SELECT * FROM books WHERE price NOT BETWEEN 10 AND 20;`, books().AndWhereNotBetween(`price`, 10, 20))
		test(
			`SELECT * FROM books WHERE price BETWEEN 1 AND 2 OR price NOT BETWEEN 3 AND 4;`,
			books().OrWhereBetween(`price`, 1, 2).OrWhereNotBetween(`price`, 3, 4),
		)
	})

	t.Run(`or_extends_last_condition`, func(t *T) {
		test(
			`SELECT * FROM t WHERE (a OR b) AND (c);`,
			SelectFrom(`t`).AndWhere(`a`).OrWhere(`b`).AndWhere(`c`),
		)
		test(
			`SELECT * FROM t WHERE field1 = '' OR ((field2 = '') AND (field3 = ''));`,
			SelectFrom(`t`).
				AndWhereEq(`field1`, Quote(``)).
				OrWhere(Brackets(And(
					condOp(`field2`, ` = `, Quote(``)),
					condOp(`field3`, ` = `, Quote(``)),
				))),
		)
	})

	t.Run(`conditions_with_or_are_scoped`, func(t *T) {
		test(
			`SELECT * FROM t WHERE (a OR b) AND (c);`,
			SelectFrom(`t`).AndWhere(`a OR b`).AndWhere(`c`),
		)
	})

	t.Run(`where_builder`, func(t *T) {
		test(
			`SELECT * FROM books WHERE (price > 100) AND (title = 'Dune');`,
			books().AndWhere(NewWhere(`price`).Gt(100).And(NewWhere(`title`).Eq(Quote(`Dune`)))),
		)
	})

	t.Run(`empty_conditions_ignored`, func(t *T) {
		test(`SELECT * FROM books;`, books().AndWhere(``).OrWhere(nil))
		test(`SELECT * FROM books WHERE a;`, books().AndWhere(`a`).AndWhere(``).OrWhere(``))
	})
}

func TestSelectValues(t *testing.T) {
	eq(t, `SELECT 1, 'a';`, render(t, SelectValues(`1`, Quote(`a`))))
	eq(t, `SELECT now();`, render(t, SelectValues().Field(`now()`)))

	_, err := SelectValues().Sql()
	errIs(t, ErrNoValues, err)

	t.Run(`ignores_other_clauses`, func(t *T) {
		eq(t, `SELECT 1;`, render(t, SelectValues(1).AndWhere(`a`).OrderAsc(`b`).Limit(1)))
	})

	t.Run(`query_values_on_any_builder`, func(t *T) {
		out, err := SelectFrom(`books`).Fields(`1`, `2`).QueryValues()
		noErr(t, err)
		eq(t, `SELECT 1, 2`, out)
	})
}

func TestInsertInto(t *testing.T) {
	t.Run(`values`, func(t *T) {
		eq(t,
			`INSERT INTO books (title, price) VALUES ('Dune', 10), ('Emma', 20) RETURNING id;`,
			render(t, InsertInto(`books`).
				Fields(`title`, `price`).
				Values(Quote(`Dune`), 10).
				Values(Quote(`Emma`), 20).
				ReturningID()),
		)
	})

	t.Run(`select`, func(t *T) {
		eq(t,
			`INSERT INTO archive (id, title) SELECT id, title FROM books;`,
			render(t, InsertInto(`archive`).Fields(`id`, `title`).Select(`SELECT id, title FROM books`)),
		)
		eq(t,
			`INSERT INTO archive (id) SELECT id FROM books WHERE price < 5 RETURNING id;`,
			render(t, InsertInto(`archive`).
				Field(`id`).
				Select(SelectFrom(`books`).Field(`id`).AndWhereLt(`price`, 5)).
				Returning(`id`)),
		)
	})

	t.Run(`values_replace_select`, func(t *T) {
		eq(t,
			`INSERT INTO books (id) VALUES (1);`,
			render(t, InsertInto(`books`).Field(`id`).Select(`SELECT 2`).Values(1)),
		)
	})

	t.Run(`select_replaces_values`, func(t *T) {
		eq(t,
			`INSERT INTO books (id) SELECT 2;`,
			render(t, InsertInto(`books`).Field(`id`).Values(1).Select(`SELECT 2`)),
		)
	})

	t.Run(`errors`, func(t *T) {
		_, err := InsertInto(`books`).Field(`id`).Sql()
		errIs(t, ErrNoValues, err)

		_, err = InsertInto(``).Field(`id`).Values(1).Sql()
		errIs(t, ErrNoTableName, err)
	})
}

func TestUpdateTable(t *testing.T) {
	eq(t,
		`UPDATE books SET price = 10, title = 'it''s' WHERE id = 1 RETURNING price;`,
		render(t, UpdateTable(`books`).
			Set(`price`, 10).
			SetStr(`title`, `it's`).
			AndWhereEq(`id`, 1).
			Returning(`price`)),
	)
	eq(t,
		`UPDATE books SET price = price + 1 WHERE (price < 10) AND (author = 'Herbert');`,
		render(t, UpdateTable(`books`).
			Set(`price`, `price + 1`).
			AndWhereLt(`price`, 10).
			AndWhereEq(`author`, Quote(`Herbert`))),
	)

	t.Run(`errors`, func(t *T) {
		_, err := UpdateTable(`books`).AndWhereEq(`id`, 1).Sql()
		errIs(t, ErrNoSetFields, err)

		_, err = UpdateTable(``).Set(`price`, 10).Sql()
		errIs(t, ErrNoTableName, err)

		_, err = UpdateTable(``).Sql()
		errIs(t, ErrNoTableName, err)
	})
}

func TestDeleteFrom(t *testing.T) {
	eq(t, `DELETE FROM books;`, render(t, DeleteFrom(`books`)))
	eq(t, `DELETE FROM books WHERE price < 5;`, render(t, DeleteFrom(`books`).AndWhereLt(`price`, 5)))

	_, err := DeleteFrom(``).Sql()
	errIs(t, ErrNoTableName, err)
}

func TestSqlBuilder_query(t *testing.T) {
	bui := SelectFrom(`books`).Field(`id`)

	out, err := bui.Query()
	noErr(t, err)
	eq(t, `SELECT id FROM books`, out)

	out, err = bui.Subquery()
	noErr(t, err)
	eq(t, `(SELECT id FROM books)`, out)

	out, err = bui.SubqueryAs(`b`)
	noErr(t, err)
	eq(t, `(SELECT id FROM books) AS b`, out)

	t.Run(`subquery_errors`, func(t *T) {
		_, err := SelectFrom(``).Subquery()
		errIs(t, ErrNoTableName, err)

		_, err = SelectFrom(``).SubqueryAs(`b`)
		errIs(t, ErrNoTableName, err)
	})

	t.Run(`stringer`, func(t *T) {
		eq(t, `SELECT id FROM books`, bui.String())
		eq(t, ``, SelectFrom(``).String())
		eq(t,
			`SELECT * FROM books WHERE id IN (SELECT book FROM shops);`,
			render(t, SelectFrom(`books`).AndWhereInQuery(`id`, SelectFrom(`shops`).Field(`book`))),
		)
	})

	t.Run(`repeatable`, func(t *T) {
		bui := SelectFrom(`books`).AndWhereGt(`price`, 10).OrderAsc(`id`)
		eq(t, render(t, bui), render(t, bui))
	})
}

func TestSqlBuilder_Clone(t *testing.T) {
	base := SelectFrom(`books`).AndWhereGt(`price`, 10)

	count := base.Clone().SetField(`COUNT(*)`)
	page := base.Clone().Fields(`id`, `title`).OrderAsc(`id`).Limit(20).OrWhereIsNull(`price`)

	eq(t, `SELECT * FROM books WHERE price > 10;`, render(t, base))
	eq(t, `SELECT COUNT(*) FROM books WHERE price > 10;`, render(t, count))
	eq(t, `SELECT id, title FROM books WHERE price > 10 OR price IS NULL ORDER BY id LIMIT 20;`, render(t, page))

	t.Run(`joins_are_independent`, func(t *T) {
		base := SelectFrom(`books`).Join(`shops`)
		clone := base.Clone().On(`books.id = shops.book`)

		eq(t, `SELECT * FROM books JOIN shops;`, render(t, base))
		eq(t, `SELECT * FROM books JOIN shops ON books.id = shops.book;`, render(t, clone))
	})

	t.Run(`values_are_independent`, func(t *T) {
		base := InsertInto(`books`).Field(`id`).Values(1)
		clone := base.Clone().Values(2)

		eq(t, `INSERT INTO books (id) VALUES (1);`, render(t, base))
		eq(t, `INSERT INTO books (id) VALUES (1), (2);`, render(t, clone))
	})
}

func TestStatement(t *testing.T) {
	eq(t, StatementSelectFrom, SelectFrom(`books`).Statement())
	eq(t, StatementSelectValues, SelectValues().Statement())
	eq(t, StatementInsertInto, InsertInto(`books`).Statement())
	eq(t, StatementUpdateTable, UpdateTable(`books`).Statement())
	eq(t, StatementDeleteFrom, DeleteFrom(`books`).Statement())

	eq(t, `SelectFrom`, StatementSelectFrom.String())
	eq(t, `DeleteFrom`, StatementDeleteFrom.String())
	eq(t, ``, Statement(200).String())
}
