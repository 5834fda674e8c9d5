package simulation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/decker502/waterguns/pkg/simulation"

// defaultMeter 全局 OTel meter（未配置 provider 时为 no-op）
func defaultMeter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// counters 对局统计计数器
type counters struct {
	spawned  metric.Int64Counter
	killed   metric.Int64Counter
	escaped  metric.Int64Counter
	shots    metric.Int64Counter
	placed   metric.Int64Counter
	upgraded metric.Int64Counter
	deleted  metric.Int64Counter
}

func newCounters(m metric.Meter) (*counters, error) {
	c := &counters{}

	specs := []struct {
		target      *metric.Int64Counter
		name        string
		description string
	}{
		{&c.spawned, "waterguns.planes.spawned", "Total planes spawned by the wave scheduler"},
		{&c.killed, "waterguns.planes.killed", "Total planes shot down"},
		{&c.escaped, "waterguns.planes.escaped", "Total planes that reached the right edge"},
		{&c.shots, "waterguns.shots", "Total tower shots"},
		{&c.placed, "waterguns.towers.placed", "Total towers placed"},
		{&c.upgraded, "waterguns.towers.upgraded", "Total tower upgrades"},
		{&c.deleted, "waterguns.towers.deleted", "Total towers deleted by the player"},
	}

	for _, spec := range specs {
		counter, err := m.Int64Counter(spec.name, metric.WithDescription(spec.description))
		if err != nil {
			return nil, fmt.Errorf("creating %s counter: %w", spec.name, err)
		}
		*spec.target = counter
	}
	return c, nil
}

// record 把一个 tick 的统计写入计数器
func (c *counters) record(ctx context.Context, r TickReport) {
	add := func(counter metric.Int64Counter, n int) {
		if n > 0 {
			counter.Add(ctx, int64(n))
		}
	}
	add(c.spawned, r.Spawned)
	add(c.killed, r.Killed)
	add(c.escaped, r.Escaped)
	add(c.shots, r.Shots)
	add(c.placed, r.Placed)
	add(c.upgraded, r.Upgraded)
	add(c.deleted, r.Deleted)
}
