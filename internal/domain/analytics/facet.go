package analytics

// FacetIndex holds the distinct filterable values observed in a record
// set, each list in first-seen order.
type FacetIndex struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	Models     []string `json:"models"`
}

// FacetOption adjusts facet derivation.
type FacetOption func(*facetOptions)

type facetOptions struct {
	excludeUnknown bool
}

// WithoutUnknown drops the Unknown sentinel from the derived sets, for
// callers that do not want uncategorized records offered as a filter
// choice. By default the sentinel is included.
func WithoutUnknown() FacetOption {
	return func(o *facetOptions) { o.excludeUnknown = true }
}

// BuildFacets derives the distinct category, brand and model values of
// a record set.
func BuildFacets(records []NormalizedSale, opts ...FacetOption) FacetIndex {
	var o facetOptions
	for _, opt := range opts {
		opt(&o)
	}

	categories := newDistinct(o.excludeUnknown)
	brands := newDistinct(o.excludeUnknown)
	models := newDistinct(o.excludeUnknown)
	for _, r := range records {
		categories.add(r.Category)
		brands.add(r.Brand)
		models.add(r.Model)
	}

	return FacetIndex{
		Categories: categories.values,
		Brands:     brands.values,
		Models:     models.values,
	}
}

// distinct collects unique non-empty values in first-seen order.
type distinct struct {
	seen           map[string]struct{}
	values         []string
	excludeUnknown bool
}

func newDistinct(excludeUnknown bool) *distinct {
	return &distinct{
		seen:           make(map[string]struct{}),
		values:         []string{},
		excludeUnknown: excludeUnknown,
	}
}

func (d *distinct) add(v string) {
	if v == "" || (d.excludeUnknown && v == UnknownKey) {
		return
	}
	if _, ok := d.seen[v]; ok {
		return
	}
	d.seen[v] = struct{}{}
	d.values = append(d.values, v)
}
