package plugin

// Pipelines maps every catalog point name to its composed Hook. Points
// nobody contributes to hold identity hooks. A Pipelines value is never
// modified after Compose returns and may be shared read-only.
type Pipelines map[string]any

// Compose builds one pipeline per catalog point from ordered plugins.
// Plugins without a contribution for a point are skipped; the rest keep
// their relative order. Composition itself never fails.
func Compose(ordered []*Plugin, catalog *Catalog) Pipelines {
	pipelines := make(Pipelines, catalog.Len())
	for _, point := range catalog.Points() {
		name := point.Name()
		impls := make([]any, 0, len(ordered))
		for _, p := range ordered {
			if p.Contributes(name) {
				impls = append(impls, p.Plugs[name])
			}
		}
		pipelines[name] = point.Compose(impls)
	}
	return pipelines
}
