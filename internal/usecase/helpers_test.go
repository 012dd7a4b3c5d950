package usecase

import (
	"github.com/TecMrDocs/whispertrend/pkg/logger"
	"github.com/TecMrDocs/whispertrend/pkg/metrics"
)

// promauto registers collectors on the default registry, so the whole test
// binary shares one instance.
var testMetrics = metrics.New()

func testLogger() *logger.Logger {
	return logger.New("error")
}

func fixedRand(v float64) func() float64 {
	return func() float64 { return v }
}
