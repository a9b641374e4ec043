package skills

import (
	"fmt"
	"sort"
)

// PipelineState tracks the skill-acquisition flow. Transitions happen only
// inside Session methods; a provider failure returns the session to the
// previous stable state with no partial data committed.
type PipelineState string

const (
	StateIdle                 PipelineState = "idle"
	StateGeneratingCandidates PipelineState = "generating_candidates"
	StateAwaitingSelection    PipelineState = "awaiting_selection"
	StateFinalizingSelection  PipelineState = "finalizing_selection"
	StateReady                PipelineState = "ready"
)

// ToggleSkill adds or removes a candidate id from the personal selection.
// Removals are always permitted; additions are rejected beyond the personal
// slot cap or for unknown/enabler ids.
func (s *SkillSelectionState) ToggleSkill(id string) error {
	for i, sel := range s.SelectedPersonalSkills {
		if sel == id {
			s.SelectedPersonalSkills = append(s.SelectedPersonalSkills[:i], s.SelectedPersonalSkills[i+1:]...)
			return nil
		}
	}

	if IsUniversalEnablerID(id) {
		return fmt.Errorf("skill %q is a universal enabler and is always included", id)
	}
	found := false
	for _, c := range s.Candidates {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown skill id %q", id)
	}
	if len(s.SelectedPersonalSkills) >= MaxPersonalSkills {
		return fmt.Errorf("selection is full: at most %d personal skills", MaxPersonalSkills)
	}
	s.SelectedPersonalSkills = append(s.SelectedPersonalSkills, id)
	return nil
}

// RankedCandidates returns the candidates ordered by overall rank (lower is
// better), ties broken by relevance score then name.
func (s *SkillSelectionState) RankedCandidates() []SkillCandidate {
	out := make([]SkillCandidate, len(s.Candidates))
	copy(out, s.Candidates)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OverallRank != out[j].OverallRank {
			return out[i].OverallRank < out[j].OverallRank
		}
		if out[i].RelevanceScore != out[j].RelevanceScore {
			return out[i].RelevanceScore > out[j].RelevanceScore
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// buildBank collapses a confirmed selection into a SkillBank: active set =
// selected personal skills plus the universal enablers, and the full
// candidate pool retained as the swap reservoir.
func (s *SkillSelectionState) buildBank() SkillBank {
	bank := SkillBank{
		AllSkillsData: make(map[string]IdentifiedSkillData, len(s.Candidates)+len(s.UniversalEnablers)),
	}
	for _, c := range s.Candidates {
		bank.AllSkillsData[c.ID] = c.IdentifiedSkillData
	}
	for _, e := range s.UniversalEnablers {
		bank.AllSkillsData[e.ID] = e.IdentifiedSkillData
	}

	for _, id := range s.SelectedPersonalSkills {
		if _, ok := bank.AllSkillsData[id]; ok {
			bank.ActiveSkills = append(bank.ActiveSkills, id)
		}
	}
	for _, e := range s.UniversalEnablers {
		bank.ActiveSkills = append(bank.ActiveSkills, e.ID)
	}
	return bank
}

// IsActive reports membership in the active set.
func (b *SkillBank) IsActive(id string) bool {
	for _, a := range b.ActiveSkills {
		if a == id {
			return true
		}
	}
	return false
}

// IsMastered reports membership in the mastered set.
func (b *SkillBank) IsMastered(id string) bool {
	for _, m := range b.MasteredSkills {
		if m == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
