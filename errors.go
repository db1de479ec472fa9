package sqlbuilder

import (
	"errors"
	"fmt"
	r "reflect"
	"strings"
)

/*
Error codes. You probably shouldn't use this directly; instead, use the `Err`
variables with `errors.Is`.
*/
type ErrCode string

const (
	ErrCodeUnknown      ErrCode = ""
	ErrCodeNoTableName  ErrCode = "NoTableName"
	ErrCodeNoValues     ErrCode = "NoValues"
	ErrCodeNoSetFields  ErrCode = "NoSetFields"
	ErrCodeNoWhereField ErrCode = "NoWhereField"
	ErrCodeNoWhereValue ErrCode = "NoWhereValue"
	ErrCodeNoWhereCond  ErrCode = "NoWhereCond"
	ErrCodeNoWhereList  ErrCode = "NoWhereList"
	ErrCodeNoWhereQuery ErrCode = "NoWhereQuery"
	ErrCodeInvalidInput ErrCode = "InvalidInput"
)

/*
Use blank error variables to detect error types:

	if errors.Is(err, sqlbuilder.ErrNoTableName) {
		// Handle specific error.
	}

Note that errors returned by this package can't be compared via `==` because
they may include additional details about the circumstances. When compared by
`errors.Is`, they compare `.Cause` and fall back on `.Code`.

`ErrNoWhereCond`, `ErrNoWhereList` and `ErrNoWhereQuery` are reserved. Nothing
in this package currently returns them.
*/
var (
	ErrNoTableName  Err = Err{Code: ErrCodeNoTableName, Cause: errors.New(`no table name`)}
	ErrNoValues     Err = Err{Code: ErrCodeNoValues, Cause: errors.New(`no values`)}
	ErrNoSetFields  Err = Err{Code: ErrCodeNoSetFields, Cause: errors.New(`no set fields`)}
	ErrNoWhereField Err = Err{Code: ErrCodeNoWhereField, Cause: errors.New(`no where field`)}
	ErrNoWhereValue Err = Err{Code: ErrCodeNoWhereValue, Cause: errors.New(`no where value`)}
	ErrNoWhereCond  Err = Err{Code: ErrCodeNoWhereCond, Cause: errors.New(`no where condition`)}
	ErrNoWhereList  Err = Err{Code: ErrCodeNoWhereList, Cause: errors.New(`no where list`)}
	ErrNoWhereQuery Err = Err{Code: ErrCodeNoWhereQuery, Cause: errors.New(`no where query`)}
	ErrInvalidInput Err = Err{Code: ErrCodeInvalidInput, Cause: errors.New(`invalid input`)}
)

// Type of errors returned by this package.
type Err struct {
	Code  ErrCode
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ""
	}
	msg := `[sqlbuilder]`
	if self.Code != ErrCodeUnknown {
		msg += fmt.Sprintf(` %s`, self.Code)
	}
	if self.While != "" {
		msg += fmt.Sprintf(` while %v`, self.While)
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Is(other error) bool {
	if self.Cause != nil && errors.Is(self.Cause, other) {
		return true
	}
	err, ok := other.(Err)
	return ok && err.Code == self.Code
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error {
	return self.Cause
}

func (self Err) while(while string) Err {
	self.While = while
	return self
}

func (self Err) because(cause error) Err {
	self.Cause = cause
	return self
}

// Error for a condition missing its right-hand side. The field is the text of
// the condition accumulated so far.
func errNoWhereValue(while, field string) Err {
	return ErrNoWhereValue.while(while).because(fmt.Errorf(`no value for %q`, field))
}

func errUnknown(what, val string) error { return fmt.Errorf(`unknown %v %q`, what, val) }

func errUnbound(markers []string) error {
	return fmt.Errorf(`unbound placeholders: %v`, strings.Join(markers, `, `))
}

func errExpectedStruct(while string, typ r.Type) Err {
	return ErrInvalidInput.while(while).because(fmt.Errorf(`expected struct, got %v`, typ))
}
