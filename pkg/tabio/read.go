package tabio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// ReadGrid decodes a JSON grid from r and validates it. ReadGrid does not
// close r.
func ReadGrid(r io.Reader) (tab.Grid, error) {
	var g tab.Grid
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode grid")
	}
	if g == nil {
		g = tab.Grid{}
	}
	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// ImportJSON reads the grid file at path.
func ImportJSON(path string) (tab.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	g, err := ReadGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Validate checks every position and symbol in g.
func Validate(g tab.Grid) error {
	for _, p := range g.Positions() {
		if err := errors.ValidatePosition(p); err != nil {
			return err
		}
		for i, s := range g[p] {
			if s == "" {
				continue
			}
			if err := errors.ValidateSymbol(s); err != nil {
				return errors.New(errors.ErrCodeInvalidSymbol, "position %d string-line %d: %s", p, i+1, errors.UserMessage(err))
			}
		}
	}
	return nil
}
