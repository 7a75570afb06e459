package bridge

import (
	"github.com/Ahezave1234567/realium-buy-widget/logger"
	"github.com/Ahezave1234567/realium-buy-widget/metrics"
)

type Option func(*Bridge)

func WithLogger(l logger.Logger) Option {
	return func(b *Bridge) {
		b.log = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(b *Bridge) {
		b.metrics = r
	}
}
