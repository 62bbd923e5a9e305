package layout

// Layout constants.
const (
	DefaultNodeWidth     = 20.0
	DefaultNodePadding   = 10.0
	DefaultColumnPadding = 50.0
	DefaultMinNodeHeight = 5.0
)

// Option configures [Compute].
type Option func(*config)

type config struct {
	nodeWidth     float64
	nodePadding   float64
	columnPadding float64
	minNodeHeight float64
}

func defaultConfig() config {
	return config{
		nodeWidth:     DefaultNodeWidth,
		nodePadding:   DefaultNodePadding,
		columnPadding: DefaultColumnPadding,
		minNodeHeight: DefaultMinNodeHeight,
	}
}

// WithNodeWidth sets the width of every node rectangle.
func WithNodeWidth(w float64) Option {
	return func(c *config) {
		if w > 0 {
			c.nodeWidth = w
		}
	}
}

// WithNodePadding sets the vertical gap between stacked nodes.
func WithNodePadding(p float64) Option {
	return func(c *config) {
		if p >= 0 {
			c.nodePadding = p
		}
	}
}

// WithColumnPadding sets the horizontal gap between column bands.
func WithColumnPadding(p float64) Option {
	return func(c *config) {
		if p >= 0 {
			c.columnPadding = p
		}
	}
}

// WithMinNodeHeight sets the height floor for nodes.
func WithMinNodeHeight(h float64) Option {
	return func(c *config) {
		if h > 0 {
			c.minNodeHeight = h
		}
	}
}
