package grid

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/eskrenkovic/product-draft-editor/internal/modules/core"
)

const (
	DefaultLimit = 50
	MaxLimit     = 1000
)

type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

const (
	ShowColumn = "COLUMN"
	ShowData   = "DATA"
)

// RequestGridConfiguration describes which page of a grid the caller wants and how.
type RequestGridConfiguration struct {
	Limit       int
	Offset      int
	Field       string
	Order       Order
	Filters     map[string]string
	ShowColumns bool
	ShowData    bool
}

// ParseRequestGridConfiguration reads limit, offset, field, order, filter and
// show from the query string. Filters have the form "col=value;col2=value".
func ParseRequestGridConfiguration(query url.Values) (RequestGridConfiguration, error) {
	config := RequestGridConfiguration{
		Limit:       DefaultLimit,
		Order:       OrderAsc,
		Filters:     make(map[string]string),
		ShowColumns: true,
		ShowData:    true,
	}

	validationErr := core.NewValidationError("invalid grid configuration")

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			validationErr = validationErr.Add("limit", "must be a number between 1 and "+strconv.Itoa(MaxLimit))
		}
		config.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			validationErr = validationErr.Add("offset", "must be a non negative number")
		}
		config.Offset = offset
	}

	config.Field = strings.TrimSpace(query.Get("field"))

	if raw := query.Get("order"); raw != "" {
		switch order := Order(strings.ToUpper(raw)); order {
		case OrderAsc, OrderDesc:
			config.Order = order
		default:
			validationErr = validationErr.Add("order", "must be ASC or DESC")
		}
	}

	for _, pair := range strings.Split(query.Get("filter"), ";") {
		if pair == "" {
			continue
		}

		column, value, found := strings.Cut(pair, "=")
		if !found || column == "" {
			validationErr = validationErr.Add("filter", "'"+pair+"' is not a column=value pair")
			continue
		}
		config.Filters[strings.TrimSpace(column)] = value
	}

	if raw := query.Get("show"); raw != "" {
		config.ShowColumns, config.ShowData = false, false
		for _, part := range strings.Split(raw, ",") {
			switch strings.ToUpper(strings.TrimSpace(part)) {
			case ShowColumn:
				config.ShowColumns = true
			case ShowData:
				config.ShowData = true
			default:
				validationErr = validationErr.Add("show", "'"+part+"' is not one of COLUMN, DATA")
			}
		}
	}

	if len(validationErr.Fields) > 0 {
		return RequestGridConfiguration{}, validationErr
	}

	return config, nil
}
