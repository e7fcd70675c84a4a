package infrastructure

import (
	"context"
	"data-visualizer/internal/domain"
	"database/sql"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// SQLSourceLoader builds data sources from queries returning (x, y) rows.
type SQLSourceLoader struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLSourceLoader(db *sql.DB, logger *zap.Logger) *SQLSourceLoader {
	return &SQLSourceLoader{db: db, logger: logger}
}

// Load runs query and reads the first two columns of each row as x and y.
// Rows with NULL in either column are skipped.
func (l *SQLSourceLoader) Load(ctx context.Context, query string, args ...any) (*domain.StaticSource, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query data source")
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read columns")
	}
	if len(columns) < 2 {
		return nil, errors.Newf("data source query must return 2 columns, got %d", len(columns))
	}

	var points []domain.DataPoint
	skipped := 0
	for rows.Next() {
		var x, y sql.NullFloat64
		dest := make([]any, len(columns))
		dest[0], dest[1] = &x, &y
		for i := 2; i < len(columns); i++ {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		if !x.Valid || !y.Valid {
			skipped++
			continue
		}
		points = append(points, domain.DataPoint{X: x.Float64, Y: y.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows")
	}

	if skipped > 0 {
		l.logger.Warn("Rows with NULL values skipped", zap.Int("count", skipped))
	}
	l.logger.Debug("Loaded data source", zap.Int("points", len(points)))

	source := domain.NewStaticSource(points)
	source.XLabel, source.YLabel = columns[0], columns[1]
	return source, nil
}
