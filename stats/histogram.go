package stats

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"
)

const (
	histogramBins  = 15
	histogramWidth = 50
)

// WriteHistogram draws a text histogram of the values.
func WriteHistogram(w io.Writer, values []float64) error {
	if len(values) == 0 {
		_, err := io.WriteString(w, "(no data)\n")
		return err
	}
	h := histogram.Hist(histogramBins, values)
	return histogram.Fprint(w, h, histogram.Linear(histogramWidth))
}
