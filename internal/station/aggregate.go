package station

// Aggregate groups raw measurements into per-station summaries.
//
// Stations are keyed by (location, latitude, longitude). Within a station the
// latest record in input order wins for each parameter. Output order is the
// order in which each station first appears in the input: upstream queries
// sort by distance, and that closest-first ordering must survive aggregation.
//
// A nil input means the upstream fetch itself was unavailable and returns
// nil; an empty input means the fetch succeeded with zero stations and
// returns an empty, non-nil slice. Callers branch on that distinction to
// decide whether to substitute fallback data.
func Aggregate(raw []Measurement) []Summary {
	if raw == nil {
		return nil
	}

	summaries := make([]Summary, 0, len(raw))
	index := make(map[string]int)

	for _, m := range raw {
		key := identityKey(m.Location, m.Latitude, m.Longitude)

		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, Summary{
				Location:     m.Location,
				Latitude:     m.Latitude,
				Longitude:    m.Longitude,
				Measurements: make(map[Parameter]Reading),
			})
		}

		summaries[i].Measurements[CanonicalParameter(m.Parameter)] = Reading{
			Value:      m.Value,
			Unit:       m.Unit,
			MeasuredAt: m.MeasuredAt,
		}
	}

	return summaries
}
