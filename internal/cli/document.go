package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mitranim/sqlbuilder"
	"gopkg.in/yaml.v3"
)

// Document describes one SQL statement in YAML.
//
//	kind: select
//	table: books
//	fields: [title, price]
//	joins:
//	  - {kind: left, table: shops, on: books.id = shops.book}
//	where: ["price > ?"]
//	order_by: [price desc]
//	limit: 10
//	args: [100]
type Document struct {
	Kind      string         `yaml:"kind"`
	Table     string         `yaml:"table"`
	Distinct  bool           `yaml:"distinct"`
	Fields    []string       `yaml:"fields"`
	Joins     []Join         `yaml:"joins"`
	Where     []string       `yaml:"where"`
	OrWhere   []string       `yaml:"or_where"`
	GroupBy   []string       `yaml:"group_by"`
	Having    string         `yaml:"having"`
	OrderBy   []string       `yaml:"order_by"`
	Limit     *int64         `yaml:"limit"`
	Offset    *int64         `yaml:"offset"`
	Values    [][]any        `yaml:"values"`
	Select    string         `yaml:"select"`
	Sets      []Set          `yaml:"sets"`
	Returning string         `yaml:"returning"`
	Args      []any          `yaml:"args"`
	Nums      []any          `yaml:"nums"`
	Names     map[string]any `yaml:"names"`
}

// Join describes one join clause. Table may carry an alias ("shops s"). Kind is one of left, left_outer, right,
// right_outer, inner or cross. As with the builder, a kind carries over to
// later joins that leave it empty; without any kind, joins are plain JOIN.
type Join struct {
	Kind    string `yaml:"kind"`
	Natural bool   `yaml:"natural"`
	Table   string `yaml:"table"`
	On      string `yaml:"on"`
}

// Set is one `field = value` assignment of an update. Value is rendered as a
// literal; Expr is used as-is and takes precedence.
type Set struct {
	Field string `yaml:"field"`
	Value any    `yaml:"value"`
	Expr  string `yaml:"expr"`
}

// DecodeDocuments reads every YAML document in the stream.
func DecodeDocuments(r io.Reader) ([]Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var docs []Document
	for {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document %d: %w", len(docs)+1, err)
		}
		docs = append(docs, doc)
	}
}

// Builder converts the document into a builder. Table names are quoted in
// the given style when styled is true.
func (d *Document) Builder(style sqlbuilder.QuoteStyle, styled bool) (*sqlbuilder.SqlBuilder, error) {
	table := func(name string) string {
		if !styled || name == "" {
			return name
		}
		return styledTable(name, style)
	}

	var b *sqlbuilder.SqlBuilder
	switch strings.ToLower(d.Kind) {
	case "", "select":
		b = sqlbuilder.SelectFrom(table(d.Table))
	case "values":
		b = sqlbuilder.SelectValues()
	case "insert":
		b = sqlbuilder.InsertInto(table(d.Table))
	case "update":
		b = sqlbuilder.UpdateTable(table(d.Table))
	case "delete":
		b = sqlbuilder.DeleteFrom(table(d.Table))
	default:
		return nil, fmt.Errorf("unknown kind %q (expected select|values|insert|update|delete)", d.Kind)
	}

	if d.Distinct {
		b.Distinct()
	}
	for _, f := range d.Fields {
		b.Field(f)
	}

	for _, j := range d.Joins {
		if err := applyJoinKind(b, j.Kind); err != nil {
			return nil, err
		}
		if j.Natural {
			b.Natural()
		}
		b.Join(table(j.Table))
		if j.On != "" {
			b.On(j.On)
		}
	}

	for _, cond := range d.Where {
		b.AndWhere(cond)
	}
	for _, cond := range d.OrWhere {
		b.OrWhere(cond)
	}

	for _, f := range d.GroupBy {
		b.GroupBy(f)
	}
	if d.Having != "" {
		b.Having(d.Having)
	}

	for _, o := range d.OrderBy {
		field, desc := parseOrder(o)
		b.OrderBy(field, desc)
	}
	if d.Limit != nil {
		b.Limit(*d.Limit)
	}
	if d.Offset != nil {
		b.Offset(*d.Offset)
	}

	for _, row := range d.Values {
		vals := make([]any, len(row))
		for i, v := range row {
			vals[i] = sqlbuilder.Arg(v)
		}
		b.Values(vals...)
	}
	if d.Select != "" {
		b.Select(d.Select)
	}

	for _, s := range d.Sets {
		if s.Expr != "" {
			b.Set(s.Field, s.Expr)
		} else {
			b.Set(s.Field, sqlbuilder.Arg(s.Value))
		}
	}
	if d.Returning != "" {
		b.Returning(d.Returning)
	}

	return b, nil
}

// Render builds the statement and applies the document's bindings.
func (d *Document) Render(cfg *Config) (string, error) {
	style, styled, err := cfg.Style()
	if err != nil {
		return "", err
	}

	b, err := d.Builder(style, styled)
	if err != nil {
		return "", err
	}

	var text string
	if cfg.NoTerminator {
		text, err = b.Query()
	} else {
		text, err = b.Sql()
	}
	if err != nil {
		return "", err
	}

	return applyBindings(text, d.Args, d.Nums, d.Names), nil
}

// applyBindings runs Binds, BindNums and BindNames in that order, each only
// when it has values.
func applyBindings(text string, args, nums []any, names map[string]any) string {
	if len(args) > 0 {
		text = sqlbuilder.Binds(text, args...)
	}
	if len(nums) > 0 {
		text = sqlbuilder.BindNums(text, nums...)
	}
	if len(names) > 0 {
		text = sqlbuilder.BindNames(text, names)
	}
	return text
}

// styledTable quotes a dotted table name, keeping an alias written as
// "name alias" or "name AS alias" outside the quotes. Anything else is quoted
// whole.
func styledTable(src string, style sqlbuilder.QuoteStyle) string {
	words := strings.Fields(src)
	var alias string
	switch {
	case len(words) == 2:
		alias = words[1]
	case len(words) == 3 && strings.EqualFold(words[1], "as"):
		alias = words[2]
	default:
		words = []string{strings.TrimSpace(src)}
	}
	return sqlbuilder.NewName(strings.Split(words[0], ".")...).Alias(alias).Styled(style)
}

func applyJoinKind(b *sqlbuilder.SqlBuilder, kind string) error {
	switch strings.ToLower(kind) {
	case "":
	case "left":
		b.Left()
	case "left_outer":
		b.LeftOuter()
	case "right":
		b.Right()
	case "right_outer":
		b.RightOuter()
	case "inner":
		b.Inner()
	case "cross":
		b.Cross()
	default:
		return fmt.Errorf("unknown join kind %q", kind)
	}
	return nil
}

// parseOrder splits "price desc" into ("price", true). A trailing "asc" is
// dropped.
func parseOrder(s string) (string, bool) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return s, false
	}
	switch strings.ToLower(s[i+1:]) {
	case "desc":
		return strings.TrimSpace(s[:i]), true
	case "asc":
		return strings.TrimSpace(s[:i]), false
	}
	return s, false
}
