package plugin

type testMeta struct {
	Label string
}

type testRow struct {
	ID      string
	Flagged bool
}

var (
	testOptions = NewReduce[map[string]any, *testMeta]("useReduceOptions")
	testColumns = NewReduce[[]string, *testMeta]("useReduceColumns")
	testRows    = NewDecorate[*testRow, *testMeta]("decorateRow")
)

func testCatalog() *Catalog {
	return NewCatalog(testOptions, testColumns, testRows)
}

func appendColumn(name string) Hook[[]string, *testMeta] {
	return func(cols []string, _ *testMeta) ([]string, error) {
		return append(append([]string(nil), cols...), name), nil
	}
}

func names(plugins []*Plugin) []string {
	out := make([]string, len(plugins))
	for i, p := range plugins {
		out[i] = p.Name
	}
	return out
}
