package store

import (
	"encoding/json"
	"os"

	"github.com/san-kum/glasstilt/internal/sim"
)

type ExportFrame struct {
	Frame      int     `json:"frame"`
	Time       float64 `json:"time"`
	Mode       string  `json:"mode"`
	RotateX    float64 `json:"rotate_x"`
	RotateY    float64 `json:"rotate_y"`
	TranslateZ float64 `json:"translate_z"`
	Transform  string  `json:"transform"`
}

type ExportData struct {
	Meta   RunMetadata   `json:"meta"`
	Frames []ExportFrame `json:"frames"`
}

func ExportJSON(path string, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		Meta:   meta,
		Frames: make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		data.Frames[i] = ExportFrame{
			Frame:      f.Index,
			Time:       f.Time,
			Mode:       f.Mode.String(),
			RotateX:    f.Current.RotateX,
			RotateY:    f.Current.RotateY,
			TranslateZ: f.Current.TranslateZ,
			Transform:  f.Current.Transform().String(),
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
