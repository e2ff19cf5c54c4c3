package grid

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"
)

var dialect = goqu.Dialect("postgres")

// From starts a postgres select over table for use as a grid source.
func From(table any) *goqu.SelectDataset {
	return dialect.From(table)
}

type Row map[string]any

type Page struct {
	Rows     []Row
	Count    int
	Filtered int
}

// Source is anything able to serve pages of a grid.
type Source interface {
	Grid() Grid
	Fetch(ctx context.Context, config RequestGridConfiguration) (Page, error)
}

var _ Source = (*DataSet)(nil)

// DataSet serves a grid from a SQL select. The select must expose every
// column expression of the grid.
type DataSet struct {
	db   *sqlx.DB
	grid Grid
	from *goqu.SelectDataset
}

func NewDataSet(db *sqlx.DB, grid Grid, from *goqu.SelectDataset) *DataSet {
	return &DataSet{db: db, grid: grid, from: from}
}

func (d *DataSet) Grid() Grid {
	return d.grid
}

func (d *DataSet) Fetch(ctx context.Context, config RequestGridConfiguration) (Page, error) {
	conditions, err := d.grid.conditions(config.Filters)
	if err != nil {
		return Page{}, err
	}
	filtered := d.from.Where(conditions...)

	var page Page

	if page.Count, err = d.count(ctx, d.from); err != nil {
		return Page{}, err
	}

	if page.Filtered, err = d.count(ctx, filtered); err != nil {
		return Page{}, err
	}

	if !config.ShowData {
		return page, nil
	}

	page.Rows, err = d.rows(ctx, filtered, config)
	return page, err
}

func (d *DataSet) rows(ctx context.Context, filtered *goqu.SelectDataset, config RequestGridConfiguration) ([]Row, error) {
	query := filtered.
		Select(d.grid.selection()...).
		Limit(uint(config.Limit)).
		Offset(uint(config.Offset))

	if ordering, ok := d.grid.ordering(config.Field, config.Order); ok {
		query = query.Order(ordering)
	}

	statement, args, err := query.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryxContext(ctx, statement, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]Row, 0, config.Limit)
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}

		for key, value := range row {
			if raw, ok := value.([]byte); ok {
				row[key] = string(raw)
			}
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (d *DataSet) count(ctx context.Context, ds *goqu.SelectDataset) (int, error) {
	statement, args, err := ds.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return 0, err
	}

	var count int
	err = d.db.GetContext(ctx, &count, statement, args...)
	return count, err
}
