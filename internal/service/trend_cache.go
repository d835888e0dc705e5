package service

import (
	"encoding/binary"
	"fmt"
	"math"

	"trainingload/internal/activity"
	"trainingload/internal/analysis"
)

// encodeTrend packs the derived values of each day as little-endian
// float64s. Dates and loads are taken from the daily series on decode.
func encodeTrend(metrics []analysis.FitnessMetrics) []byte {
	buf := make([]byte, 0, len(metrics)*trendValuesPerDay*bytesPerTrendValue)
	for _, m := range metrics {
		for _, v := range [trendValuesPerDay]float64{m.CTL, m.ATL, m.TSB, m.Ramp} {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	return buf
}

func decodeTrend(data []byte, daily []activity.DailyLoad) ([]analysis.FitnessMetrics, error) {
	const rowSize = trendValuesPerDay * bytesPerTrendValue
	if len(data) != len(daily)*rowSize {
		return nil, fmt.Errorf("cached trend has %d bytes, want %d", len(data), len(daily)*rowSize)
	}
	if len(daily) == 0 {
		return nil, nil
	}

	metrics := make([]analysis.FitnessMetrics, len(daily))
	for i, dl := range daily {
		row := data[i*rowSize : (i+1)*rowSize]
		value := func(n int) float64 {
			return math.Float64frombits(binary.LittleEndian.Uint64(row[n*bytesPerTrendValue:]))
		}
		metrics[i] = analysis.FitnessMetrics{
			Date: dl.Date,
			Load: dl.Load,
			CTL:  value(0),
			ATL:  value(1),
			TSB:  value(2),
			Ramp: value(3),
		}
	}
	return metrics, nil
}
