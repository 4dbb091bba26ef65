package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/glasstilt/internal/sim"
	"github.com/san-kum/glasstilt/internal/tilt"
)

// Store keeps trace runs on disk, one directory per run.
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
	ID          string             `json:"id"`
	Script      string             `json:"script"`
	Preset      string             `json:"preset,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Frames      int                `json:"frames"`
	FrameRate   int                `json:"frame_rate"`
	Factor      float64            `json:"interpolation_factor"`
	MaxRotation float64            `json:"max_rotation_deg"`
	HoverLift   float64            `json:"hover_lift"`
	Skipped     int                `json:"skipped"`
	Metrics     map[string]float64 `json:"metrics"`
}

var frameHeader = []string{"frame", "time", "mode", "rotate_x", "rotate_y", "translate_z"}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Script, meta.Timestamp.UnixNano())
	}
	meta.Frames = len(result.Frames)
	meta.Skipped = result.Skipped
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		row := []string{
			strconv.Itoa(f.Index),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			f.Mode.String(),
			strconv.FormatFloat(f.Current.RotateX, 'f', 6, 64),
			strconv.FormatFloat(f.Current.RotateY, 'f', 6, 64),
			strconv.FormatFloat(f.Current.TranslateZ, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns all readable runs, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads back the per-frame orientation of a run. Glow and target
// are not persisted.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, rec := range records[1:] {
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("frames.csv row %d: %w", i+1, err)
		}
		var vals [4]float64
		for j, col := range []int{1, 3, 4, 5} {
			if vals[j], err = strconv.ParseFloat(rec[col], 64); err != nil {
				return nil, fmt.Errorf("frames.csv row %d: %w", i+1, err)
			}
		}

		f := sim.Frame{
			Index:   idx,
			Time:    vals[0],
			Current: tilt.Orientation{RotateX: vals[1], RotateY: vals[2], TranslateZ: vals[3]},
		}
		if rec[2] == tilt.Tracking.String() {
			f.Mode = tilt.Tracking
		}
		frames = append(frames, f)
	}
	return frames, nil
}
