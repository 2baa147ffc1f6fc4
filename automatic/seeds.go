package automatic

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"lukechampine.com/frand"
)

// GenerateSeeds returns n random seeds, one per position to deal.
func GenerateSeeds(n int) [][32]byte {
	seeds := make([][32]byte, n)
	for i := range seeds {
		seeds[i] = frand.Entropy256()
	}
	return seeds
}

// WriteSeeds writes one URL-safe base64 seed per line, after a comment.
func WriteSeeds(w io.Writer, seeds [][32]byte) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# rummy deal seeds, base64 (URL-safe), 32 bytes each")
	for _, seed := range seeds {
		fmt.Fprintln(bw, base64.RawURLEncoding.EncodeToString(seed[:]))
	}
	return bw.Flush()
}

// SaveSeeds writes the seeds to a file.
func SaveSeeds(seeds [][32]byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	if err := WriteSeeds(f, seeds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadSeeds is the inverse of WriteSeeds. Blank lines and lines starting
// with # are skipped.
func ReadSeeds(r io.Reader) ([][32]byte, error) {
	var seeds [][32]byte
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		decoded, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("failed to decode seed at line %d: %w", lineNum, err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("seed at line %d has %d bytes, expected 32", lineNum, len(decoded))
		}
		seeds = append(seeds, [32]byte(decoded))
	}
	return seeds, scanner.Err()
}

// LoadSeeds reads seeds from a file.
func LoadSeeds(path string) ([][32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return ReadSeeds(f)
}
