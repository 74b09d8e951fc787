package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(GamesFinished.WithLabelValues("win"))
	GamesFinished.WithLabelValues("win").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(GamesFinished.WithLabelValues("win")))

	beforeStarted := testutil.ToFloat64(GamesStarted)
	GamesStarted.Inc()
	assert.Equal(t, beforeStarted+1, testutil.ToFloat64(GamesStarted))
}
