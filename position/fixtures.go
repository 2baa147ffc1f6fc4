package position

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is a named position, optionally with the best score known for it.
type Fixture struct {
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
	Score    *int   `yaml:"score,omitempty"`
}

type fixtureFile struct {
	Positions []Fixture `yaml:"positions"`
}

// Parsed parses the fixture's position. A score field overrides any score
// opcode.
func (f Fixture) Parsed() (*Position, error) {
	p, err := Parse(f.Position)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", f.Name, err)
	}
	if f.Score != nil {
		p.Opcodes[OpScore] = fmt.Sprint(*f.Score)
	}
	if _, ok := p.Opcodes[OpID]; !ok && f.Name != "" {
		p.Opcodes[OpID] = f.Name
	}
	return p, nil
}

// ReadFixtures reads a YAML list of fixtures.
func ReadFixtures(r io.Reader) ([]Fixture, error) {
	var ff fixtureFile
	if err := yaml.NewDecoder(r).Decode(&ff); err != nil {
		if err == io.EOF {
			return []Fixture{}, nil
		}
		return nil, err
	}
	return ff.Positions, nil
}

// LoadFixtures reads and parses every position in a fixture file.
func LoadFixtures(path string) ([]*Position, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fixtures, err := ReadFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	positions := make([]*Position, 0, len(fixtures))
	for _, fx := range fixtures {
		p, err := fx.Parsed()
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, nil
}

// WriteFixtures writes positions as a YAML fixture file.
func WriteFixtures(w io.Writer, positions []*Position) error {
	ff := fixtureFile{Positions: make([]Fixture, len(positions))}
	for i, p := range positions {
		ff.Positions[i] = Fixture{Name: p.ID(), Position: p.String()}
		if sc, ok := p.ExpectedScore(); ok {
			ff.Positions[i].Score = &sc
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ff); err != nil {
		return err
	}
	return enc.Close()
}
