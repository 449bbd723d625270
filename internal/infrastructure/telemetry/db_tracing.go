package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey string

const queryStartTimeKey contextKey = "query_start_time"

// DBTracingConfig controls how database operations are traced.
type DBTracingConfig struct {
	Enabled          bool          // Master switch for database span creation
	LogFullSQL       bool          // Include bound values in spans. Never enable outside development.
	SlowQueryThresh  time.Duration // Queries slower than this get a slow_query_warning event
	DBSystem         string        // Reported db name, "postgresql" by default
	WithoutVariables bool          // Strip query variables from recorded SQL
}

// DefaultDBTracingConfig returns the secure defaults: tracing off, SQL
// parameters hidden.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:          false,
		LogFullSQL:       false,
		SlowQueryThresh:  200 * time.Millisecond,
		DBSystem:         "postgresql",
		WithoutVariables: true,
	}
}

// DBTracingPlugin wires otelgorm into a GORM instance and layers on
// slow query detection and error status marking.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a plugin with the given configuration.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// RegisterOtelGorm installs otelgorm plus the timing callbacks on db.
// A disabled config makes this a no-op.
func (p *DBTracingPlugin) RegisterOtelGorm(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBSystem),
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerTimingCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

// registerTimingCallbacks hooks every GORM operation so spans carry
// duration, row counts, and error status. The before hooks stamp a start
// time into the statement context; the after hooks compare against it.
func (p *DBTracingPlugin) registerTimingCallbacks(db *gorm.DB) error {
	results := []error{
		db.Callback().Create().Before("gorm:create").Register("tracing:before_create", p.BeforeCallback),
		db.Callback().Query().Before("gorm:query").Register("tracing:before_query", p.BeforeCallback),
		db.Callback().Update().Before("gorm:update").Register("tracing:before_update", p.BeforeCallback),
		db.Callback().Delete().Before("gorm:delete").Register("tracing:before_delete", p.BeforeCallback),
		db.Callback().Row().Before("gorm:row").Register("tracing:before_row", p.BeforeCallback),
		db.Callback().Raw().Before("gorm:raw").Register("tracing:before_raw", p.BeforeCallback),

		db.Callback().Create().After("gorm:create").Register("tracing:after_create", p.AfterCallback),
		db.Callback().Query().After("gorm:query").Register("tracing:after_query", p.AfterCallback),
		db.Callback().Update().After("gorm:update").Register("tracing:after_update", p.AfterCallback),
		db.Callback().Delete().After("gorm:delete").Register("tracing:after_delete", p.AfterCallback),
		db.Callback().Row().After("gorm:row").Register("tracing:after_row", p.AfterCallback),
		db.Callback().Raw().After("gorm:raw").Register("tracing:after_raw", p.AfterCallback),
	}
	for _, err := range results {
		if err != nil {
			return err
		}
	}
	return nil
}

// BeforeCallback stamps the query start time into the statement context.
func (p *DBTracingPlugin) BeforeCallback(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = WithQueryStartTime(db.Statement.Context)
	}
}

// AfterCallback annotates the active span with row counts and the table
// name, marks real errors, and flags queries that exceeded the slow
// threshold. Record-not-found is left unmarked since callers probe for
// absence routinely.
func (p *DBTracingPlugin) AfterCallback(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	startTime, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(startTime)
	if elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}

// WithQueryStartTime stamps the current time into ctx for later elapsed
// time calculation.
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartTimeKey, time.Now())
}
