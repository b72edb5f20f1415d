package time

import (
	"context"
	"time"

	"github.com/crownplay/casino-engine/internal/domain/port/core"
)

// RealTimeProvider backs the TimeProvider port with the system clock.
type RealTimeProvider struct{}

func NewRealTimeProvider() core.TimeProvider {
	return &RealTimeProvider{}
}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

func (p *RealTimeProvider) Since(t time.Time) core.Duration {
	return core.Duration(time.Since(t))
}

func (p *RealTimeProvider) Until(t time.Time) core.Duration {
	return core.Duration(time.Until(t))
}

func (p *RealTimeProvider) Sleep(d core.Duration) {
	time.Sleep(d.Std())
}

func (p *RealTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout.Std())
}

func (p *RealTimeProvider) ParseDuration(s string) (core.Duration, error) {
	d, err := time.ParseDuration(s)
	return core.Duration(d), err
}
