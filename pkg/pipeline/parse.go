package pipeline

import (
	"bytes"
	"io"
	"os"

	"github.com/matzehuels/moneyflow/pkg/errors"
	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/graph"
)

// Parse reads the input graph named by opts and converts it to a flow
// graph. The wire graph is returned as well so callers can keep its
// currency and hash its canonical form.
func Parse(opts Options) (graph.Graph, flow.Graph, error) {
	format := opts.InputFormat
	if format == "" {
		format = graph.FormatForPath(opts.InputPath)
	}

	var r io.Reader
	if opts.InputData != nil {
		r = bytes.NewReader(opts.InputData)
	} else {
		if opts.InputPath == "" {
			return graph.Graph{}, flow.Graph{}, errors.New(errors.ErrCodeInvalidInput, "no input graph given")
		}
		if err := errors.ValidatePath(opts.InputPath); err != nil {
			return graph.Graph{}, flow.Graph{}, err
		}
		f, err := os.Open(opts.InputPath)
		if os.IsNotExist(err) {
			return graph.Graph{}, flow.Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", opts.InputPath)
		}
		if err != nil {
			return graph.Graph{}, flow.Graph{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", opts.InputPath)
		}
		defer f.Close()
		r = f
	}

	wire, err := graph.ReadGraph(r, format)
	if err != nil {
		return graph.Graph{}, flow.Graph{}, err
	}
	g, err := graph.ToFlow(wire)
	if err != nil {
		return graph.Graph{}, flow.Graph{}, err
	}
	return wire, g, nil
}
