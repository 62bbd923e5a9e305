package pipeline

import (
	"github.com/matzehuels/moneyflow/pkg/flow"
	"github.com/matzehuels/moneyflow/pkg/graph"
	"github.com/matzehuels/moneyflow/pkg/render/nodelink"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
	"github.com/matzehuels/moneyflow/pkg/render/sankey/sink"
)

// nodelinkEngine is the Graphviz layout engine recorded in nodelink layouts.
const nodelinkEngine = "dot"

// GenerateLayout generates a serializable layout for any visualization type.
// Options are expected to have defaults applied.
func GenerateLayout(g flow.Graph, opts Options) (graph.Layout, error) {
	if opts.IsNodelink() {
		return generateNodelinkLayout(g, opts), nil
	}
	return generateSankeyLayout(g, opts), nil
}

func generateSankeyLayout(g flow.Graph, opts Options) graph.Layout {
	l := layout.Compute(g, opts.Width, opts.Height)
	opts.Logger.Debug("sankey layout",
		"nodes", len(l.Nodes),
		"links", len(l.Links),
		"columns", l.ColumnCount(),
		"crossings", layout.CountCrossings(l))

	curvature := opts.Curvature
	if curvature == 0 {
		curvature = DefaultCurvature
	}
	return sink.Export(l,
		sink.WithJSONStyle(opts.Style),
		sink.WithJSONCurvature(curvature),
		sink.WithJSONCurrency(opts.Currency),
	)
}

func generateNodelinkLayout(g flow.Graph, opts Options) graph.Layout {
	dot := nodelink.ToDOT(g, nodelink.Options{Currency: opts.Currency, Detailed: opts.Detailed})
	return graph.Layout{
		VizType:  graph.VizTypeNodelink,
		Width:    opts.Width,
		Height:   opts.Height,
		Style:    opts.Style,
		Currency: opts.Currency,
		DOT:      dot,
		Engine:   nodelinkEngine,
	}
}
