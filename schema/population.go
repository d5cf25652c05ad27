package schema

// PopulationTable maps normalized region names to population figures in
// thousands. Regions that appear more than once in the source are recorded
// but never resolved; Lookup treats them the same as absent regions.
type PopulationTable struct {
	entries map[string]populationEntry
}

type populationEntry struct {
	thousands float64
	rows      int
}

func NewPopulationTable() *PopulationTable {
	return &PopulationTable{
		entries: make(map[string]populationEntry),
	}
}

// Add records one source row for the given region.
func (t *PopulationTable) Add(region string, thousands float64) {
	entry := t.entries[region]
	entry.thousands = thousands
	entry.rows++
	t.entries[region] = entry
}

// Lookup returns the population in thousands for a region with exactly one
// source row. Regions with zero or multiple rows report no match.
func (t *PopulationTable) Lookup(region string) (float64, bool) {
	entry, ok := t.entries[region]
	if !ok || entry.rows != 1 {
		return 0, false
	}
	return entry.thousands, true
}

// Len returns the number of distinct regions in the table.
func (t *PopulationTable) Len() int {
	return len(t.entries)
}
