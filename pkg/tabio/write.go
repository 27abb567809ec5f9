package tabio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tabsmith/pkg/tab"
)

// WriteGrid encodes g as indented JSON. The output can be re-imported with
// [ReadGrid].
func WriteGrid(g tab.Grid, w io.Writer) error {
	if g == nil {
		g = tab.Grid{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}
	return nil
}

// ExportJSON writes g to a file at path, replacing it if present.
func ExportJSON(g tab.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGrid(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
