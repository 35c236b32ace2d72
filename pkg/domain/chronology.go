package domain

import (
	"math"
	"regexp"
	"sort"
	"strconv"
)

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// StartYear returns the first four-digit year in a period such as "2014 - 2019".
func StartYear(period string) (int, bool) {
	m := yearPattern.FindStringSubmatch(period)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// ChronologicalOrder returns the ids of the timeline nodes earliest first.
// Nodes sort by the start year of their period; a node without a year sorts last.
// Ties put education before companies, then keep input order.
func ChronologicalOrder(nodes []GraphNode) []string {
	type entry struct {
		id   string
		year int
		edu  bool
	}
	var entries []entry
	for _, n := range nodes {
		if !n.Type.IsTimeline() {
			continue
		}
		year, ok := StartYear(n.Period)
		if !ok {
			year = math.MaxInt
		}
		entries = append(entries, entry{id: n.ID, year: year, edu: n.Type == NodeTypeEducation})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].year != entries[j].year {
			return entries[i].year < entries[j].year
		}
		return entries[i].edu && !entries[j].edu
	})

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.id)
	}
	return ids
}
