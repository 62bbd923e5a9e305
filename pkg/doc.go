// Package pkg provides the core libraries for moneyflow sankey diagrams.
//
// # Overview
//
// Moneyflow lays out money-flow graphs (income, budgets, expenses) as
// column-based sankey diagrams. A graph is a list of node labels plus
// parallel source, target and value arrays; each index across the three
// arrays is one flow.
//
// # Architecture
//
// The typical data flow:
//
//	wire graph (JSON/YAML)
//	         ↓
//	    [graph] package (decode, validate, pad values)
//	         ↓
//	    [flow/transform] package (assign columns)
//	         ↓
//	    [render/sankey/layout] package (node sizes and positions)
//	         ↓
//	    [render/sankey/route] + [render/sankey/zone] (ribbons and colors)
//	         ↓
//	    [render/sankey/sink] package (SVG, PNG, PDF, JSON)
//
// [pipeline] wraps these stages with caching; the CLI and the HTTP API in
// [server] both run through it.
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/moneyflow/pkg/flow"
//	    "github.com/matzehuels/moneyflow/pkg/render/sankey/layout"
//	    "github.com/matzehuels/moneyflow/pkg/render/sankey/sink"
//	)
//
//	g := flow.Graph{
//	    Labels:  []string{"Salary", "Budget", "Rent", "Food"},
//	    Sources: []int{0, 1, 1},
//	    Targets: []int{1, 2, 3},
//	    Values:  []float64{3000, 1800, 1200},
//	}
//	l := layout.Compute(g, 800, 600)
//	svg := sink.RenderSVG(l)
//
// # Main Packages
//
// [flow] - In-memory flow graph with lenient accessors: malformed links are
// skipped and missing values read as zero.
//
// [flow/transform] - Column assignment by longest path from the roots.
//
// [render/sankey] - Layout engine, link router, zone classifier, label
// fitting, styles and output sinks.
//
// [render/nodelink] - The same graph as a Graphviz diagram.
//
// [graph] - Wire formats for graphs and layouts.
//
// [cache] - Null, file, Redis and MongoDB caches for layouts and artifacts.
//
// [config] - Defaults, TOML file and MONEYFLOW_* environment settings.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Structured error codes shared by the CLI and the API.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test ./pkg/render/sankey/...      # Layout, routing and rendering
//	go test -run Example ./pkg/...       # Examples only
//	MONEYFLOW_REDIS_ADDR=localhost:6379 go test ./pkg/cache  # Redis backend
package pkg
