package dto

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

const (
	FilterOperatorEq = "eq"
	FilterOperatorIn = "in"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

// Filter is one named-parameter predicate for sqlx queries.
type Filter struct {
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq in"`
	Table    string
}

func (f *Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return fmt.Sprintf("%s.%s", f.Table, f.Field)
}

func (f *Filter) argName() string {
	if f.ArgName == "" {
		return f.Field
	}

	return f.ArgName
}

// GetWhereClause renders the predicate and its bind arguments. Unknown
// operators render nothing.
func (f *Filter) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	column := f.column()
	argName := f.argName()

	switch f.Operator {
	case FilterOperatorEq:
		args[argName] = f.Value

		return fmt.Sprintf("%s = :%s", column, argName), args
	case FilterOperatorIn:
		val := reflect.ValueOf(f.Value)

		switch val.Kind() {
		case reflect.Array, reflect.Slice:
			named := make([]string, val.Len())

			for idx := range val.Len() {
				args[fmt.Sprintf("%s_%d", argName, idx)] = val.Index(idx).Interface()

				named[idx] = fmt.Sprintf(":%s_%d", argName, idx)
			}

			return fmt.Sprintf("%s IN (%s) ", column, strings.Join(named, ", ")), args
		default:
			args[argName] = f.Value

			return fmt.Sprintf("%s IN (:%s) ", column, argName), args
		}
	default:
		return "", args
	}
}

// FilterGroup joins Filters and nested FilterGroups with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (f *FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	whereClause := []string{}

	operator := f.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	for _, filter := range f.Filters {
		var where string
		var arg map[string]any

		switch fill := filter.(type) {
		case Filter:
			where, arg = fill.GetWhereClause()
		case FilterGroup:
			where, arg = fill.GetWhereClause()
		default:
			continue
		}

		if where == "" {
			continue
		}

		whereClause = append(whereClause, where)

		maps.Copy(args, arg)
	}

	if len(whereClause) == 0 {
		return "", args
	}

	return fmt.Sprintf("(%s)", strings.Join(whereClause, " "+operator+" ")), args
}
