package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/rummy/stats"
)

// AnalyzeLogFile reads a CSV log written by StartSolveRuns and summarizes
// the scores, search sizes and solve times, with a histogram of the scores.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return analyze(file)
}

func analyze(in io.Reader) (string, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(LogHeader)

	scoreStats := &stats.Statistic{}
	stateStats := &stats.Statistic{}
	timeStats := &stats.Statistic{}
	var scores []float64
	positions, timeouts, noPlay := 0, 0, 0

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == LogHeader[0] {
			continue
		}
		positions++
		if record[3] == StatusTimeout {
			timeouts++
			continue
		}
		score, err := strconv.Atoi(record[4])
		if err != nil {
			return "", fmt.Errorf("bad score in row %d: %w", positions, err)
		}
		states, err := strconv.Atoi(record[7])
		if err != nil {
			return "", fmt.Errorf("bad state count in row %d: %w", positions, err)
		}
		us, err := strconv.ParseInt(record[9], 10, 64)
		if err != nil {
			return "", fmt.Errorf("bad elapsed time in row %d: %w", positions, err)
		}
		if score == 0 {
			noPlay++
		}
		scoreStats.Push(float64(score))
		stateStats.Push(float64(states))
		timeStats.Push(float64(us) / 1000)
		scores = append(scores, float64(score))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Positions: %d\n", positions)
	if positions == 0 {
		return sb.String(), nil
	}
	fmt.Fprintf(&sb, "Timed out: %d (%.3f%%)\n", timeouts, 100.0*float64(timeouts)/float64(positions))
	fmt.Fprintf(&sb, "No play: %d (%.3f%%)\n", noPlay, 100.0*float64(noPlay)/float64(positions))
	fmt.Fprintf(&sb, "Mean Score: %.3f  Stdev: %.3f  95%% CI: ±%.3f  Max: %.0f\n",
		scoreStats.Mean(), scoreStats.Stdev(), scoreStats.ConfidenceInterval(95), scoreStats.Max())
	fmt.Fprintf(&sb, "Mean States: %.1f  Max: %.0f\n", stateStats.Mean(), stateStats.Max())
	fmt.Fprintf(&sb, "Mean Time (ms): %.3f  Max: %.3f\n", timeStats.Mean(), timeStats.Max())
	sb.WriteString("Score distribution:\n")
	if err := stats.WriteHistogram(&sb, scores); err != nil {
		return "", err
	}
	return sb.String(), nil
}
