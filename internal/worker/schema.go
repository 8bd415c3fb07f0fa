package worker

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

//go:embed schema/stat_events.sql
var statEventsSchema string

// EnsureSchema creates the stat event audit tables. Every statement is
// idempotent, so it is safe to run on each start.
func EnsureSchema(ctx context.Context, conn driver.Conn) error {
	// ClickHouse executes one statement per call.
	for _, stmt := range strings.Split(statEventsSchema, ";") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if err := conn.Exec(ctx, trimmed); err != nil {
			return fmt.Errorf("clickhouse schema %q: %w", trimmed[:min(len(trimmed), 50)], err)
		}
	}
	return nil
}
