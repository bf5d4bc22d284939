// Package storage persists accepted simulation runs on disk, one
// directory per run with JSON metadata and a CSV lineage table.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avelis/cladesim/bd"
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
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Seed      int64     `json:"seed"`
	N0        int       `json:"n0"`
	TMax      float64   `json:"t_max"`
	SizeMin   float64   `json:"size_min"`
	SizeMax   float64   `json:"size_max"`
	Lineages  int       `json:"lineages"`
	Extant    int       `json:"extant"`
}

// Save writes one accepted run. The lineage table uses the documented
// boundary sentinels (root births as TMax+0.01, unresolved extinctions
// as -0.01), which is the serialization contract of bd.Result.
func (s *Store) Save(name string, seed int64, cfg bd.Config, res *bd.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Seed:      seed,
		N0:        cfg.N0,
		TMax:      res.TMax,
		SizeMin:   cfg.Size.Min,
		SizeMax:   cfg.Size.Max,
		Lineages:  res.Len(),
		Extant:    res.ExtantCount(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "lineages.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	// The speciation column keeps the sentinel contract for external
	// consumers; birth carries the literal time so roots of extracted
	// clades (born after the start of the process) survive a reload.
	if err := w.Write([]string{"id", "parent", "birth", "speciation", "extinction", "extant"}); err != nil {
		return "", err
	}
	spec := res.SpeciationTimes()
	ext := res.ExtinctionTimes()
	for i, l := range res.Lineages {
		row := []string{
			strconv.Itoa(l.ID),
			strconv.Itoa(l.Parent),
			strconv.FormatFloat(l.BirthTime, 'g', -1, 64),
			strconv.FormatFloat(spec[i], 'g', -1, 64),
			strconv.FormatFloat(ext[i], 'g', -1, 64),
			strconv.FormatBool(l.Extant),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

// List returns metadata for all stored runs, in directory order.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, e.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

// Load reads a stored run back into a result, mapping the boundary
// sentinels back to explicit unresolved states.
func (s *Store) Load(runID string) (*bd.Result, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "lineages.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("storage: empty lineage table in run %s", runID)
	}

	res := &bd.Result{TMax: meta.TMax}
	for _, row := range rows[1:] {
		if len(row) != 6 {
			return nil, fmt.Errorf("storage: malformed lineage row in run %s", runID)
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, err
		}
		parent, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, err
		}
		birth, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, err
		}
		ext, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, err
		}
		extant, err := strconv.ParseBool(row[5])
		if err != nil {
			return nil, err
		}

		l := bd.Lineage{ID: id, Parent: parent, BirthTime: birth, Extant: extant}
		if ext != -bd.SentinelPad {
			l.Death = bd.OptTime{Time: ext, Known: true}
		}
		res.Lineages = append(res.Lineages, l)
	}
	return res, nil
}
