package table

// State is the table state snapshot plugins read and extend.
type State map[string]any

// Props is a prop object handed to the render layer for one element.
type Props map[string]any

// Accessor derives a cell value from an original datum.
type Accessor func(original any, index int, row *Row) any

// Options is the caller-supplied input of one table computation.
type Options struct {
	Data          []any
	Columns       []ColumnDef
	DefaultColumn *ColumnDef
	InitialState  State
	State         State
	// GetRowID overrides the default positional row ids ("0", "0.1", ...).
	GetRowID func(original any, index int, parent *Row) string
	// GetSubRows returns the nested originals of a datum.
	GetSubRows func(original any, index int) []any
	Debug      bool
	// Extra carries plugin specific options keyed by plugin name.
	Extra map[string]any
}

// ColumnDef declares a column or, when Columns is set, a column group.
type ColumnDef struct {
	ID     string
	Header string
	Footer string
	// Accessor is a dotted key path into map originals, e.g. "address.city".
	Accessor   string
	AccessorFn Accessor
	Width      int
	MinWidth   int
	MaxWidth   int
	Columns    []ColumnDef
	Meta       map[string]any
}

// Column is a derived column. Group columns have children and no accessor.
type Column struct {
	ID       string
	Header   string
	Footer   string
	Depth    int
	Parent   *Column
	Columns  []*Column
	Accessor Accessor
	Width    int
	MinWidth int
	MaxWidth int
	Def      ColumnDef
	Meta     map[string]any
}

// IsLeaf reports whether the column has no children.
func (c *Column) IsLeaf() bool {
	return len(c.Columns) == 0
}

// HeaderGroup is one row of headers (or footers).
type HeaderGroup struct {
	ID      string
	Depth   int
	Headers []*Header
}

// Header is a header cell. Placeholder headers pad leaf columns that are
// shallower than the deepest column so every group spans the full width.
type Header struct {
	ID            string
	Column        *Column
	Depth         int
	ColSpan       int
	IsPlaceholder bool
	SubHeaders    []*Header
	Meta          map[string]any
}

// Width returns the header width: the column width for leaves, otherwise the
// sum of its sub headers.
func (h *Header) Width() int {
	if len(h.SubHeaders) == 0 {
		return h.Column.ResolvedWidth()
	}
	total := 0
	for _, sub := range h.SubHeaders {
		total += sub.Width()
	}
	return total
}

// Row is a derived data row.
type Row struct {
	ID              string
	Index           int
	Depth           int
	ParentID        string
	Original        any
	Values          map[string]any
	SubRows         []*Row
	OriginalSubRows []any
	Cells           []*Cell
	Meta            map[string]any
}

// LeafRows returns every descendant row in depth-first order.
func (r *Row) LeafRows() []*Row {
	var out []*Row
	for _, sub := range r.SubRows {
		out = append(out, sub)
		out = append(out, sub.LeafRows()...)
	}
	return out
}

// Cell is the intersection of a row and a leaf column.
type Cell struct {
	ID     string
	Row    *Row
	Column *Column
	Value  any
	Meta   map[string]any
}

// Meta is the shared context handed to every plugin implementation. Instance
// is always set; the element fields are set for per-element points only.
type Meta struct {
	Instance    *Instance
	HeaderGroup *HeaderGroup
	Header      *Header
	Row         *Row
	Cell        *Cell
}
