package skills

// RatingStore maps skillId → ordered list of per-rater entries. Its only
// invariant is uniqueness of (skillId, raterId) pairs; entry order is
// insertion order for new raters.
type RatingStore map[string][]SkillRatingEntry

// Upsert replaces the existing entry for (skillID, raterID) or appends a new
// one.
func (rs RatingStore) Upsert(skillID, raterID string, rating RubricLevel) {
	entries := rs[skillID]
	for i, e := range entries {
		if e.RaterID == raterID {
			entries[i].Rating = rating
			rs[skillID] = entries
			return
		}
	}
	rs[skillID] = append(entries, SkillRatingEntry{RaterID: raterID, Rating: rating})
}

// Get returns the rating one rater gave one skill, if any.
func (rs RatingStore) Get(skillID, raterID string) (RubricLevel, bool) {
	for _, e := range rs[skillID] {
		if e.RaterID == raterID {
			return e.Rating, true
		}
	}
	return "", false
}

// All returns every entry for a skill. The returned slice is the store's own;
// callers must not mutate it.
func (rs RatingStore) All(skillID string) []SkillRatingEntry {
	return rs[skillID]
}

// Average computes the arithmetic mean of rating ordinals across the given
// raters who have rated this skill. The second return is false when no rater
// in the set has rated it, so charts can distinguish "no data" from the
// lowest level.
func (rs RatingStore) Average(skillID string, raterIDs []string) (float64, bool) {
	sum, n := 0, 0
	for _, rid := range raterIDs {
		if rating, ok := rs.Get(skillID, rid); ok && rating.Valid() {
			sum += rating.Ordinal()
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// CarryOver returns a new store containing only the entries whose skill id
// appears in keep. Used on regeneration: ratings keyed by id survive only
// when ids are stable across generation calls.
func (rs RatingStore) CarryOver(keep map[string]IdentifiedSkillData) RatingStore {
	out := make(RatingStore, len(keep))
	for id, entries := range rs {
		if _, ok := keep[id]; ok && len(entries) > 0 {
			copied := make([]SkillRatingEntry, len(entries))
			copy(copied, entries)
			out[id] = copied
		}
	}
	return out
}

// Clone deep-copies the store. Import uses it to keep the atomic-swap
// guarantee: the new state is fully built before it replaces the old.
func (rs RatingStore) Clone() RatingStore {
	out := make(RatingStore, len(rs))
	for id, entries := range rs {
		copied := make([]SkillRatingEntry, len(entries))
		copy(copied, entries)
		out[id] = copied
	}
	return out
}
