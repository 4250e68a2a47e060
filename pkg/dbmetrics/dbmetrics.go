package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/kar1timmins/DineLocal/pkg/metrics"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и обёрток над ними
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция, в рамках которой выполняются запросы
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

const defaultPoolStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, которая замеряет длительность запросов.
// При metrics == nil работает как прозрачный прокси.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectPoolStats(defaultPoolStatsInterval, stopCh)
	}
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", err, start)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", err, start)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", row.Err(), start)
	return row
}

// BeginTx открывает транзакцию, запросы внутри которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{Tx: tx, metrics: d.metrics}, nil
}

func (d *DB) observe(operation string, err error, start time.Time) {
	if d.metrics == nil {
		return
	}
	if err == sql.ErrNoRows {
		err = nil
	}
	d.metrics.ObserveDBQuery(operation, err, time.Since(start))
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.Set(float64(stats.OpenConnections))
			d.metrics.DBInUseConnections.Set(float64(stats.InUse))
			d.metrics.DBIdleConnections.Set(float64(stats.Idle))
			d.metrics.DBWaitCount.Set(float64(stats.WaitCount))
		}
	}
}

// SqlTxWrapper обёртка над *sql.Tx с замером запросов
type SqlTxWrapper struct {
	Tx      *sql.Tx
	metrics *metrics.Metrics
}

func (w *SqlTxWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := w.Tx.ExecContext(ctx, query, args...)
	w.observe("tx_exec", err, start)
	return res, err
}

func (w *SqlTxWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := w.Tx.QueryContext(ctx, query, args...)
	w.observe("tx_query", err, start)
	return rows, err
}

func (w *SqlTxWrapper) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := w.Tx.QueryRowContext(ctx, query, args...)
	w.observe("tx_query_row", row.Err(), start)
	return row
}

func (w *SqlTxWrapper) Commit() error {
	return w.Tx.Commit()
}

func (w *SqlTxWrapper) Rollback() error {
	return w.Tx.Rollback()
}

func (w *SqlTxWrapper) observe(operation string, err error, start time.Time) {
	if w.metrics == nil {
		return
	}
	if err == sql.ErrNoRows {
		err = nil
	}
	w.metrics.ObserveDBQuery(operation, err, time.Since(start))
}
