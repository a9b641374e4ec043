package skills

import "testing"

func TestRatingStoreUpsert(t *testing.T) {
	rs := RatingStore{}
	rs.Upsert("go", "self", LevelIntermediate)
	rs.Upsert("go", "peer1", LevelAdvanced)
	rs.Upsert("go", "self", LevelAdvanced) // re-rate replaces

	entries := rs.All("go")
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (upsert, not append)", len(entries))
	}
	if got, _ := rs.Get("go", "self"); got != LevelAdvanced {
		t.Errorf("self rating = %s, want Advanced", got)
	}
	if entries[0].RaterID != "self" {
		t.Errorf("entry order changed on upsert: %v", entries)
	}
}

func TestRatingStoreGetMissing(t *testing.T) {
	rs := RatingStore{}
	if _, ok := rs.Get("go", "self"); ok {
		t.Error("Get on empty store reported a rating")
	}
}

func TestRatingStoreAverage(t *testing.T) {
	rs := RatingStore{}
	rs.Upsert("go", "self", LevelIntermediate) // 2
	rs.Upsert("go", "peer1", LevelExpert)      // 4

	avg, ok := rs.Average("go", []string{"self", "peer1", "peer2"})
	if !ok || avg != 3 {
		t.Errorf("Average() = %v, %v; want 3, true", avg, ok)
	}

	if _, ok := rs.Average("rust", []string{"self"}); ok {
		t.Error("Average with no data should report false, not zero")
	}
}

func TestRatingStoreCarryOver(t *testing.T) {
	rs := RatingStore{}
	rs.Upsert("kept", "self", LevelAdvanced)
	rs.Upsert("dropped", "self", LevelExpert)

	keep := map[string]IdentifiedSkillData{"kept": {}}
	out := rs.CarryOver(keep)

	if _, ok := out.Get("kept", "self"); !ok {
		t.Error("kept skill lost its ratings")
	}
	if _, ok := out.Get("dropped", "self"); ok {
		t.Error("dropped skill kept its ratings")
	}

	// The carried store must be independent of the source.
	out.Upsert("kept", "self", LevelFoundational)
	if got, _ := rs.Get("kept", "self"); got != LevelAdvanced {
		t.Errorf("source store mutated through carry-over copy: %s", got)
	}
}

func TestRatingStoreClone(t *testing.T) {
	rs := RatingStore{}
	rs.Upsert("go", "self", LevelAdvanced)

	clone := rs.Clone()
	clone.Upsert("go", "self", LevelFoundational)
	if got, _ := rs.Get("go", "self"); got != LevelAdvanced {
		t.Errorf("clone shares storage with source: %s", got)
	}
}
