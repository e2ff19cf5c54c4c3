package grid

type ColumnView struct {
	ID       string     `json:"id"`
	Type     ColumnType `json:"type"`
	Label    string     `json:"label"`
	Filter   FilterKind `json:"filter,omitempty"`
	Sortable bool       `json:"sortable"`
	Visible  bool       `json:"visible"`
}

type Info struct {
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
	Field    string            `json:"field,omitempty"`
	Order    Order             `json:"order"`
	Filter   map[string]string `json:"filter"`
	Count    int               `json:"count"`
	Filtered int               `json:"filtered"`
}

// Response leaves out columns or collection when they were not asked for.
type Response struct {
	Columns    []ColumnView `json:"columns,omitempty"`
	Collection *[]Row       `json:"collection,omitempty"`
	Info       Info         `json:"info"`
}

func NewResponse(grid Grid, page Page, config RequestGridConfiguration) Response {
	response := Response{
		Info: Info{
			Limit:    config.Limit,
			Offset:   config.Offset,
			Field:    config.Field,
			Order:    config.Order,
			Filter:   config.Filters,
			Count:    page.Count,
			Filtered: page.Filtered,
		},
	}

	if config.ShowColumns {
		response.Columns = make([]ColumnView, 0, len(grid.Columns))
		for _, column := range grid.Columns {
			response.Columns = append(response.Columns, ColumnView{
				ID:       column.ID,
				Type:     column.Type,
				Label:    column.Label,
				Filter:   column.Filter,
				Sortable: column.Sortable,
				Visible:  column.Visible,
			})
		}
	}

	if config.ShowData {
		rows := page.Rows
		if rows == nil {
			rows = []Row{}
		}
		response.Collection = &rows
	}

	return response
}
