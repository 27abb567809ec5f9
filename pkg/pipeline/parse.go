package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tabsmith/pkg/tab"
	"github.com/matzehuels/tabsmith/pkg/tabio"
)

// Parse reads a grid from path. A path of "-" reads from stdin.
func Parse(path string, stdin io.Reader) (tab.Grid, error) {
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		g, err := tabio.ReadGrid(stdin)
		if err != nil {
			return nil, fmt.Errorf("stdin: %w", err)
		}
		return g, nil
	}
	return tabio.ImportJSON(path)
}
