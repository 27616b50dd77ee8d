// Package storage persists performance runs: what was played, tick by tick,
// plus enough metadata to replay or analyze the run later.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/steinway/internal/performance"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID              string    `json:"id"`
	BoardType       string    `json:"board_type"`
	BoardHeight     int       `json:"board_height"`
	Timestamp       time.Time `json:"timestamp"`
	Seed            int64     `json:"seed"`
	TempoBPM        float64   `json:"tempo_bpm"`
	StepDelayMS     int       `json:"step_delay_ms"`
	Ticks           int       `json:"ticks"`
	TotalKeys       int       `json:"total_keys"`
	MaxChord        int       `json:"max_chord"`
	FinalGeneration uint64    `json:"final_generation"`
}

// Save writes one run directory: metadata.json plus ticks.csv with the
// harvested keys per tick. It returns the run id.
func (s *Store) Save(boardType string, height int, seed int64, tempoBPM float64, stepDelayMS int, result *performance.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", boardType, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:              runID,
		BoardType:       boardType,
		BoardHeight:     height,
		Timestamp:       time.Now(),
		Seed:            seed,
		TempoBPM:        tempoBPM,
		StepDelayMS:     stepDelayMS,
		Ticks:           len(result.Ticks),
		TotalKeys:       result.TotalKeys(),
		MaxChord:        result.MaxChord(),
		FinalGeneration: result.FinalGeneration,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "ticks.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"tick", "num_keys", "keys"}); err != nil {
		return "", err
	}
	for i, keys := range result.Ticks {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(len(keys)),
			joinKeys(keys),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTicks reads back the per-tick key indices of a saved run.
func (s *Store) LoadTicks(runID string) ([][]int, error) {
	csvPath := filepath.Join(s.baseDir, runID, "ticks.csv")
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	ticks := make([][]int, 0, len(records))
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) != 3 {
			return nil, fmt.Errorf("run %s: malformed row %d", runID, i)
		}
		keys, err := splitKeys(rec[2])
		if err != nil {
			return nil, fmt.Errorf("run %s: row %d: %w", runID, i, err)
		}
		ticks = append(ticks, keys)
	}
	return ticks, nil
}

// ExportJSONStdout writes a run as a single JSON document to stdout.
func ExportJSONStdout(meta *RunMetadata, ticks [][]int) error {
	doc := struct {
		Meta  *RunMetadata `json:"metadata"`
		Ticks [][]int      `json:"ticks"`
	}{meta, ticks}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func joinKeys(keys []int) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, " ")
}

func splitKeys(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Fields(s)
	keys := make([]int, len(parts))
	for i, p := range parts {
		k, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}
