package sqlbuilder

/*
Adds a `WHERE` condition. Multiple conditions are joined with `AND`, each in
parentheses. Empty conditions are ignored.
*/
func (self *SqlBuilder) AndWhere(cond any) *SqlBuilder {
	val := text(cond)
	if val != `` {
		self.wheres = append(self.wheres, val)
	}
	return self
}

/*
Appends ` OR <cond>` to the last `WHERE` condition, or adds the condition if
there are none yet:

	SelectFrom(`t`).AndWhere(`a`).OrWhere(`b`).AndWhere(`c`)
	// SELECT * FROM t WHERE (a OR b) AND (c)
*/
func (self *SqlBuilder) OrWhere(cond any) *SqlBuilder {
	val := text(cond)
	if val == `` {
		return self
	}

	ind := lastIndex(self.wheres)
	if ind < 0 {
		self.wheres = append(self.wheres, val)
	} else {
		self.wheres[ind] += ` OR ` + val
	}
	return self
}

// `AND <field> = <val>`.
func (self *SqlBuilder) AndWhereEq(field, val any) *SqlBuilder {
	return self.AndWhere(condOp(field, ` = `, val))
}

// `OR <field> = <val>`.
func (self *SqlBuilder) OrWhereEq(field, val any) *SqlBuilder {
	return self.OrWhere(condOp(field, ` = `, val))
}

// `AND <field> <> <val>`.
func (self *SqlBuilder) AndWhereNe(field, val any) *SqlBuilder {
	return self.AndWhere(condOp(field, ` <> `, val))
}

// `OR <field> <> <val>`.
func (self *SqlBuilder) OrWhereNe(field, val any) *SqlBuilder {
	return self.OrWhere(condOp(field, ` <> `, val))
}

// `AND <field> > <val>`.
func (self *SqlBuilder) AndWhereGt(field, val any) *SqlBuilder {
	return self.AndWhere(condOp(field, ` > `, val))
}

// `OR <field> > <val>`.
func (self *SqlBuilder) OrWhereGt(field, val any) *SqlBuilder {
	return self.OrWhere(condOp(field, ` > `, val))
}

// `AND <field> >= <val>`.
func (self *SqlBuilder) AndWhereGe(field, val any) *SqlBuilder {
	return self.AndWhere(condOp(field, ` >= `, val))
}

// `OR <field> >= <val>`.
func (self *SqlBuilder) OrWhereGe(field, val any) *SqlBuilder {
	return self.OrWhere(condOp(field, ` >= `, val))
}

// `AND <field> < <val>`.
func (self *SqlBuilder) AndWhereLt(field, val any) *SqlBuilder {
	return self.AndWhere(condOp(field, ` < `, val))
}

// `OR <field> < <val>`.
func (self *SqlBuilder) OrWhereLt(field, val any) *SqlBuilder {
	return self.OrWhere(condOp(field, ` < `, val))
}

// `AND <field> <= <val>`.
func (self *SqlBuilder) AndWhereLe(field, val any) *SqlBuilder {
	return self.AndWhere(condOp(field, ` <= `, val))
}

// `OR <field> <= <val>`.
func (self *SqlBuilder) OrWhereLe(field, val any) *SqlBuilder {
	return self.OrWhere(condOp(field, ` <= `, val))
}

/*
LIKE family. The mask is quoted and escaped; the `Right`, `Left` and `Any`
variants add `%` after, before, or around it:

	AndWhereLikeRight(`title`, `Harry`) // title LIKE 'Harry%'
*/
func (self *SqlBuilder) AndWhereLike(field, mask any) *SqlBuilder {
	return self.AndWhere(condLike(field, ` LIKE `, ``, mask, ``))
}

func (self *SqlBuilder) OrWhereLike(field, mask any) *SqlBuilder {
	return self.OrWhere(condLike(field, ` LIKE `, ``, mask, ``))
}

func (self *SqlBuilder) AndWhereLikeRight(field, mask any) *SqlBuilder {
	return self.AndWhere(condLike(field, ` LIKE `, ``, mask, `%`))
}

func (self *SqlBuilder) OrWhereLikeRight(field, mask any) *SqlBuilder {
	return self.OrWhere(condLike(field, ` LIKE `, ``, mask, `%`))
}

func (self *SqlBuilder) AndWhereLikeLeft(field, mask any) *SqlBuilder {
	return self.AndWhere(condLike(field, ` LIKE `, `%`, mask, ``))
}

func (self *SqlBuilder) OrWhereLikeLeft(field, mask any) *SqlBuilder {
	return self.OrWhere(condLike(field, ` LIKE `, `%`, mask, ``))
}

func (self *SqlBuilder) AndWhereLikeAny(field, mask any) *SqlBuilder {
	return self.AndWhere(condLike(field, ` LIKE `, `%`, mask, `%`))
}

func (self *SqlBuilder) OrWhereLikeAny(field, mask any) *SqlBuilder {
	return self.OrWhere(condLike(field, ` LIKE `, `%`, mask, `%`))
}

func (self *SqlBuilder) AndWhereNotLike(field, mask any) *SqlBuilder {
	return self.AndWhere(condLike(field, ` NOT LIKE `, ``, mask, ``))
}

func (self *SqlBuilder) OrWhereNotLike(field, mask any) *SqlBuilder {
	return self.OrWhere(condLike(field, ` NOT LIKE `, ``, mask, ``))
}

func (self *SqlBuilder) AndWhereNotLikeRight(field, mask any) *SqlBuilder {
	return self.AndWhere(condLike(field, ` NOT LIKE `, ``, mask, `%`))
}

func (self *SqlBuilder) OrWhereNotLikeRight(field, mask any) *SqlBuilder {
	return self.OrWhere(condLike(field, ` NOT LIKE `, ``, mask, `%`))
}

func (self *SqlBuilder) AndWhereNotLikeLeft(field, mask any) *SqlBuilder {
	return self.AndWhere(condLike(field, ` NOT LIKE `, `%`, mask, ``))
}

func (self *SqlBuilder) OrWhereNotLikeLeft(field, mask any) *SqlBuilder {
	return self.OrWhere(condLike(field, ` NOT LIKE `, `%`, mask, ``))
}

func (self *SqlBuilder) AndWhereNotLikeAny(field, mask any) *SqlBuilder {
	return self.AndWhere(condLike(field, ` NOT LIKE `, `%`, mask, `%`))
}

func (self *SqlBuilder) OrWhereNotLikeAny(field, mask any) *SqlBuilder {
	return self.OrWhere(condLike(field, ` NOT LIKE `, `%`, mask, `%`))
}

// `AND <field> IS NULL`.
func (self *SqlBuilder) AndWhereIsNull(field any) *SqlBuilder {
	return self.AndWhere(text(field) + ` IS NULL`)
}

// `OR <field> IS NULL`.
func (self *SqlBuilder) OrWhereIsNull(field any) *SqlBuilder {
	return self.OrWhere(text(field) + ` IS NULL`)
}

// `AND <field> IS NOT NULL`.
func (self *SqlBuilder) AndWhereIsNotNull(field any) *SqlBuilder {
	return self.AndWhere(text(field) + ` IS NOT NULL`)
}

// `OR <field> IS NOT NULL`.
func (self *SqlBuilder) OrWhereIsNotNull(field any) *SqlBuilder {
	return self.OrWhere(text(field) + ` IS NOT NULL`)
}

/*
IN family. `In` uses list items as-is, `InQuoted` quotes each of them, and
`InQuery` uses a subquery:

	AndWhereIn(`id`, 1, 2)                          // id IN (1, 2)
	AndWhereInQuoted(`name`, `a`, `b`)              // name IN ('a', 'b')
	AndWhereInQuery(`id`, `SELECT book FROM shops`) // id IN (SELECT book FROM shops)

An empty list renders `IN ()`.
*/
func (self *SqlBuilder) AndWhereIn(field any, list ...any) *SqlBuilder {
	return self.AndWhere(condIn(field, ` IN `, joinTexts(list, `, `)))
}

func (self *SqlBuilder) OrWhereIn(field any, list ...any) *SqlBuilder {
	return self.OrWhere(condIn(field, ` IN `, joinTexts(list, `, `)))
}

func (self *SqlBuilder) AndWhereInQuoted(field any, list ...any) *SqlBuilder {
	return self.AndWhere(condIn(field, ` IN `, quotedList(list)))
}

func (self *SqlBuilder) OrWhereInQuoted(field any, list ...any) *SqlBuilder {
	return self.OrWhere(condIn(field, ` IN `, quotedList(list)))
}

func (self *SqlBuilder) AndWhereInQuery(field, query any) *SqlBuilder {
	return self.AndWhere(condIn(field, ` IN `, text(query)))
}

func (self *SqlBuilder) OrWhereInQuery(field, query any) *SqlBuilder {
	return self.OrWhere(condIn(field, ` IN `, text(query)))
}

func (self *SqlBuilder) AndWhereNotIn(field any, list ...any) *SqlBuilder {
	return self.AndWhere(condIn(field, ` NOT IN `, joinTexts(list, `, `)))
}

func (self *SqlBuilder) OrWhereNotIn(field any, list ...any) *SqlBuilder {
	return self.OrWhere(condIn(field, ` NOT IN `, joinTexts(list, `, `)))
}

func (self *SqlBuilder) AndWhereNotInQuoted(field any, list ...any) *SqlBuilder {
	return self.AndWhere(condIn(field, ` NOT IN `, quotedList(list)))
}

func (self *SqlBuilder) OrWhereNotInQuoted(field any, list ...any) *SqlBuilder {
	return self.OrWhere(condIn(field, ` NOT IN `, quotedList(list)))
}

func (self *SqlBuilder) AndWhereNotInQuery(field, query any) *SqlBuilder {
	return self.AndWhere(condIn(field, ` NOT IN `, text(query)))
}

func (self *SqlBuilder) OrWhereNotInQuery(field, query any) *SqlBuilder {
	return self.OrWhere(condIn(field, ` NOT IN `, text(query)))
}

// `AND <field> BETWEEN <min> AND <max>`.
func (self *SqlBuilder) AndWhereBetween(field, min, max any) *SqlBuilder {
	return self.AndWhere(condBetween(field, ` BETWEEN `, min, max))
}

// `OR <field> BETWEEN <min> AND <max>`.
func (self *SqlBuilder) OrWhereBetween(field, min, max any) *SqlBuilder {
	return self.OrWhere(condBetween(field, ` BETWEEN `, min, max))
}

// `AND <field> NOT BETWEEN <min> AND <max>`.
func (self *SqlBuilder) AndWhereNotBetween(field, min, max any) *SqlBuilder {
	return self.AndWhere(condBetween(field, ` NOT BETWEEN `, min, max))
}

// `OR <field> NOT BETWEEN <min> AND <max>`.
func (self *SqlBuilder) OrWhereNotBetween(field, min, max any) *SqlBuilder {
	return self.OrWhere(condBetween(field, ` NOT BETWEEN `, min, max))
}

func condOp(field any, operator string, val any) string {
	return text(field) + operator + text(val)
}

func condLike(field any, operator, prefix string, mask any, suffix string) string {
	return text(field) + operator + Quote(prefix+text(mask)+suffix)
}

func condIn(field any, operator, list string) string {
	return text(field) + operator + `(` + list + `)`
}

func condBetween(field any, operator string, min, max any) string {
	return text(field) + operator + text(min) + ` AND ` + text(max)
}

func quotedList(list []any) string {
	var buf []byte
	for ind, val := range list {
		if ind > 0 {
			appendStr(&buf, `, `)
		}
		appendStr(&buf, Quote(text(val)))
	}
	return bytesToMutableString(buf)
}
