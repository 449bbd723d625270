package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type tracedRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100"`
	CreatedAt time.Time
}

func openTraceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRecord{}))
	return db
}

func newSpanRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL, "bound SQL values must stay hidden by default")
	assert.True(t, cfg.WithoutVariables)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
}

func TestRegisterOtelGorm_Disabled(t *testing.T) {
	db := openTraceTestDB(t)

	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())
	assert.NoError(t, plugin.RegisterOtelGorm(db))
}

func TestRegisterOtelGorm_Enabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  DBTracingConfig
	}{
		{
			name: "variables hidden",
			cfg: DBTracingConfig{
				Enabled:          true,
				SlowQueryThresh:  200 * time.Millisecond,
				DBSystem:         "sqlite",
				WithoutVariables: true,
			},
		},
		{
			name: "full SQL",
			cfg: DBTracingConfig{
				Enabled:         true,
				LogFullSQL:      true,
				SlowQueryThresh: 200 * time.Millisecond,
				DBSystem:        "sqlite",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openTraceTestDB(t)
			plugin := NewDBTracingPlugin(tt.cfg, zap.NewNop())
			assert.NoError(t, plugin.RegisterOtelGorm(db))
		})
	}
}

func TestRegisterOtelGorm_DoubleRegistration(t *testing.T) {
	db := openTraceTestDB(t)
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	// otelgorm refuses to install twice on the same instance
	assert.Error(t, plugin.RegisterOtelGorm(db))
}

func TestAfterCallback_RowsAffected(t *testing.T) {
	db := openTraceTestDB(t)
	tp, recorder := newSpanRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "batch-insert")

	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	db = db.WithContext(ctx)
	records := []tracedRecord{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	result := db.Create(&records)
	require.NoError(t, result.Error)

	plugin.AfterCallback(result.Statement.DB)
	span.End()

	spans := recorder.Ended()
	require.NotEmpty(t, spans)

	found := false
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "db.rows_affected" {
			found = true
			assert.Equal(t, int64(3), attr.Value.AsInt64())
		}
	}
	assert.True(t, found, "db.rows_affected attribute should be present")
}

func TestAfterCallback_TableName(t *testing.T) {
	db := openTraceTestDB(t)
	tp, recorder := newSpanRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "insert")

	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	db = db.WithContext(ctx)
	result := db.Create(&tracedRecord{Name: "one"})
	require.NoError(t, result.Error)

	plugin.AfterCallback(result.Statement.DB)
	span.End()

	spans := recorder.Ended()
	require.NotEmpty(t, spans)

	for _, attr := range spans[0].Attributes() {
		if attr.Key == "db.sql.table" {
			assert.Equal(t, "traced_records", attr.Value.AsString())
		}
	}
}

func TestAfterCallback_NotFoundIsNotAnError(t *testing.T) {
	db := openTraceTestDB(t)
	tp, recorder := newSpanRecorder(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "lookup-miss")

	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	db = db.WithContext(ctx)
	var rec tracedRecord
	tx := db.First(&rec, 99999)
	require.Error(t, tx.Error)

	plugin.AfterCallback(tx)
	span.End()

	spans := recorder.Ended()
	require.NotEmpty(t, spans)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestAfterCallback_SlowQueryEvent(t *testing.T) {
	db := openTraceTestDB(t)
	tp, recorder := newSpanRecorder(t)

	cfg := DefaultDBTracingConfig()
	cfg.SlowQueryThresh = 1 * time.Nanosecond
	plugin := NewDBTracingPlugin(cfg, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "slow-select")
	ctx = WithQueryStartTime(ctx)
	time.Sleep(1 * time.Millisecond)

	db = db.WithContext(ctx)
	var rec tracedRecord
	db.First(&rec)

	plugin.AfterCallback(db.Statement.DB)
	span.End()

	spans := recorder.Ended()
	require.NotEmpty(t, spans)

	foundEvent := false
	for _, event := range spans[0].Events() {
		if event.Name == "slow_query_warning" {
			foundEvent = true
			for _, attr := range event.Attributes {
				if attr.Key == "duration_ms" {
					assert.GreaterOrEqual(t, attr.Value.AsInt64(), int64(1))
				}
			}
		}
	}
	assert.True(t, foundEvent, "slow_query_warning event should be recorded")

	foundFlag := false
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "db.slow_query" {
			foundFlag = attr.Value.AsBool()
		}
	}
	assert.True(t, foundFlag, "db.slow_query attribute should be set")
}

func TestAfterCallback_NoActiveSpan(t *testing.T) {
	db := openTraceTestDB(t)
	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	db = db.WithContext(context.Background())

	assert.NotPanics(t, func() {
		plugin.AfterCallback(db)
	})
}

func TestBeforeCallback_StampsStartTime(t *testing.T) {
	db := openTraceTestDB(t)
	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())

	db = db.WithContext(context.Background())
	plugin.BeforeCallback(db)

	_, ok := db.Statement.Context.Value(queryStartTimeKey).(time.Time)
	assert.True(t, ok, "start time should be stamped into the statement context")
}

func TestWithQueryStartTime(t *testing.T) {
	ctx := WithQueryStartTime(context.Background())

	startTime, ok := ctx.Value(queryStartTimeKey).(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), startTime, 1*time.Second)
}

func TestTracedOperations_EndToEnd(t *testing.T) {
	db := openTraceTestDB(t)
	tp, recorder := newSpanRecorder(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"

	plugin := NewDBTracingPlugin(cfg, zap.NewNop())
	require.NoError(t, plugin.RegisterOtelGorm(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "round-trip")

	db = db.WithContext(ctx)
	require.NoError(t, db.Create(&tracedRecord{Name: "round-trip"}).Error)

	var found tracedRecord
	require.NoError(t, db.First(&found, "name = ?", "round-trip").Error)
	assert.Equal(t, "round-trip", found.Name)

	span.End()
	assert.NotEmpty(t, recorder.Ended())
}

func BenchmarkAfterCallback(b *testing.B) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		b.Fatal(err)
	}
	if err := db.AutoMigrate(&tracedRecord{}); err != nil {
		b.Fatal(err)
	}

	plugin := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())
	db = db.WithContext(context.Background())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		plugin.AfterCallback(db)
	}
}
