package sqlbuilder

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oklog/ulid/v2"
)

type Color string

type Point struct{ X, Y int }

type Ratio float32

type Cents struct{ Amount int64 }

func (self *Cents) Value() (driver.Value, error) { return self.Amount, nil }

type failingValuer struct{}

func (failingValuer) Value() (driver.Value, error) { return nil, errFailingValuer }

var errFailingValuer = errors.New(`valuer failure`)

func TestArg(t *testing.T) {
	t.Run(`nil`, func(t *T) {
		eq(t, `NULL`, Arg(nil))
		eq(t, `NULL`, Arg((*int)(nil)))
		eq(t, `NULL`, Arg([]byte(nil)))
		eq(t, `NULL`, Arg(map[string]int(nil)))
	})

	t.Run(`strings`, func(t *T) {
		eq(t, `''`, Arg(``))
		eq(t, `'lol'`, Arg(`lol`))
		eq(t, `'Hello, ''World'''`, Arg(`Hello, 'World'`))
		eq(t, `'bytes'`, Arg([]byte(`bytes`)))
		eq(t, `'red'`, Arg(Color(`red`)))
	})

	t.Run(`bools`, func(t *T) {
		eq(t, `TRUE`, Arg(true))
		eq(t, `FALSE`, Arg(false))
	})

	t.Run(`numbers`, func(t *T) {
		eq(t, `10`, Arg(10))
		eq(t, `-3`, Arg(int8(-3)))
		eq(t, `42`, Arg(int64(42)))
		eq(t, `7`, Arg(uint(7)))
		eq(t, `255`, Arg(uint8(255)))
		eq(t, `1.5`, Arg(1.5))
		eq(t, `0.25`, Arg(float32(0.25)))
		eq(t, `0.1`, Arg(float32(0.1)))
		eq(t, `0.1`, Arg(Ratio(0.1)))
		eq(t, `1000000000000000000000`, Arg(1e21))
	})

	t.Run(`time`, func(t *T) {
		inst := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		eq(t, `'2024-01-02 03:04:05+00:00'`, Arg(inst))
		eq(t, `'2024-01-02 03:04:05+00:00'`, Arg(&inst))
		eq(t, `'2024-01-02 03:04:05.5+00:00'`, Arg(inst.Add(time.Millisecond*500)))
	})

	t.Run(`pointers`, func(t *T) {
		num := 10
		str := `it's`
		eq(t, `10`, Arg(&num))
		eq(t, `'it''s'`, Arg(&str))
		ptr := &num
		eq(t, `10`, Arg(&ptr))
	})

	t.Run(`raw`, func(t *T) {
		eq(t, `now()`, Arg(Raw(`now()`)))
		eq(t, `price`, Arg(Raw(`price`)))
	})

	t.Run(`stringers`, func(t *T) {
		id := uuid.MustParse(`f47ac10b-58cc-4372-a567-0e02b2c3d479`)
		eq(t, `'f47ac10b-58cc-4372-a567-0e02b2c3d479'`, Arg(id))

		ord := ulid.MustParse(`01ARZ3NDEKTSV4RRFFQ69G5FAV`)
		eq(t, `'01ARZ3NDEKTSV4RRFFQ69G5FAV'`, Arg(ord))

		eq(t, `'books.title'`, Arg(NewName(`books`, `title`)))
		eq(t, `'5'`, Arg(big.NewInt(5)))
	})

	t.Run(`valuers`, func(t *T) {
		eq(t, `'x'`, Arg(sql.NullString{String: `x`, Valid: true}))
		eq(t, `NULL`, Arg(sql.NullString{}))
		eq(t, `5`, Arg(sql.NullInt64{Int64: 5, Valid: true}))

		eq(t, `'abc'`, Arg(pgtype.Text{String: `abc`, Valid: true}))
		eq(t, `NULL`, Arg(pgtype.Text{}))
		eq(t, `42`, Arg(pgtype.Int8{Int64: 42, Valid: true}))
		eq(t, `TRUE`, Arg(pgtype.Bool{Bool: true, Valid: true}))

		eq(t, `250`, Arg(&Cents{Amount: 250}))
	})

	t.Run(`valuer_failure_panics`, func(t *T) {
		panicsWith(t, errFailingValuer, func() { Arg(failingValuer{}) })
	})

	t.Run(`fallback`, func(t *T) {
		eq(t, `'{1 2}'`, Arg(Point{1, 2}))
		eq(t, `'[1 2]'`, Arg([]int{1, 2}))
	})
}

func TestArgs(t *testing.T) {
	eq(t, []string{}, Args())
	eq(t, []string{`10`, `'AAA'`, `TRUE`, `NULL`}, Args(10, `AAA`, true, nil))
}
