package ioc

// Merge folds a batch of incoming indicators into an existing collection and
// returns the combined map keyed by (source, value). At most one record per
// key survives: a strictly newer incoming record replaces the stored one,
// with confidence raised to the max of both; an older or equal-timestamp
// incoming record is discarded. Inputs are not mutated.
func Merge(existing map[string]Indicator, incoming []Indicator) map[string]Indicator {
	merged := make(map[string]Indicator, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}

	for _, in := range incoming {
		if in.Value == "" || in.Source == "" {
			continue
		}
		key := in.Key()
		prev, ok := merged[key]
		if !ok {
			merged[key] = in
			continue
		}
		if in.Timestamp.After(prev.Timestamp) {
			if prev.Confidence > in.Confidence {
				in.Confidence = prev.Confidence
			}
			merged[key] = in
		}
	}
	return merged
}
