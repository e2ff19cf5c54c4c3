package grid

import (
	"strconv"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

type ColumnType string

const (
	TextColumn  ColumnType = "TEXT"
	CheckColumn ColumnType = "CHECK"
	IDColumn    ColumnType = "ID"
)

type FilterKind string

const (
	NoFilter    FilterKind = ""
	ExactFilter FilterKind = "EXACT"
	MatchFilter FilterKind = "MATCH"
)

// Column maps a grid column onto the expression it is read from.
type Column struct {
	ID         string
	Type       ColumnType
	Label      string
	Filter     FilterKind
	Sortable   bool
	Visible    bool
	Expression exp.IdentifierExpression
}

func NewColumn(id string, t ColumnType, expression exp.IdentifierExpression) Column {
	return Column{
		ID:         id,
		Type:       t,
		Label:      id,
		Filter:     ExactFilter,
		Sortable:   true,
		Visible:    true,
		Expression: expression,
	}
}

func (c Column) WithLabel(label string) Column {
	c.Label = label
	return c
}

func (c Column) WithFilter(kind FilterKind) Column {
	c.Filter = kind
	return c
}

func (c Column) Hidden() Column {
	c.Visible = false
	return c
}

type Grid struct {
	Columns []Column
}

func NewGrid(columns ...Column) Grid {
	return Grid{Columns: columns}
}

func (g Grid) Column(id string) (Column, bool) {
	for _, column := range g.Columns {
		if column.ID == id {
			return column, true
		}
	}

	return Column{}, false
}

func (g Grid) selection() []any {
	return core.Map(g.Columns, func(c Column) any { return c.Expression.As(c.ID) })
}

// conditions rejects filter values the column's database type cannot hold,
// so a malformed filter is a bad request rather than a query failure.
func (g Grid) conditions(filters map[string]string) ([]exp.Expression, error) {
	var conditions []exp.Expression
	validationErr := core.NewValidationError("invalid grid configuration")

	for _, column := range g.Columns {
		value, found := filters[column.ID]
		if !found || column.Filter == NoFilter {
			continue
		}

		switch column.Type {
		case IDColumn:
			if !core.IsUUID(value) {
				validationErr = validationErr.Add("filter", "'"+value+"' is not a valid "+column.ID)
				continue
			}
		case CheckColumn:
			checked, err := strconv.ParseBool(value)
			if err != nil {
				validationErr = validationErr.Add("filter", "'"+value+"' is not a valid "+column.ID)
				continue
			}
			conditions = append(conditions, column.Expression.Eq(checked))
			continue
		}

		switch column.Filter {
		case ExactFilter:
			conditions = append(conditions, column.Expression.Eq(value))
		case MatchFilter:
			conditions = append(conditions, column.Expression.ILike("%"+value+"%"))
		}
	}

	if len(validationErr.Fields) > 0 {
		return nil, validationErr
	}

	return conditions, nil
}

func (g Grid) ordering(field string, order Order) (exp.OrderedExpression, bool) {
	column, found := g.Column(field)
	if !found || !column.Sortable {
		return nil, false
	}

	if order == OrderDesc {
		return goqu.I(column.ID).Desc(), true
	}

	return goqu.I(column.ID).Asc(), true
}
