package skills

import (
	"fmt"
	"testing"
)

func candidateFixture(id string, overallRank float64) SkillCandidate {
	return SkillCandidate{
		IdentifiedSkillData: IdentifiedSkillData{
			Skill: Skill{ID: id, Name: id, Category: CategoryHard},
			Rubric: Rubric{
				SkillID: id, Foundational: "f", Intermediate: "i", Advanced: "a", Expert: "e",
			},
		},
		RelevanceScore: 5,
		OverallRank:    overallRank,
	}
}

func selectionFixture(candidates int) *SkillSelectionState {
	state := &SkillSelectionState{UniversalEnablers: UniversalEnablers()}
	for i := 0; i < candidates; i++ {
		state.Candidates = append(state.Candidates, candidateFixture(fmt.Sprintf("skill_%d", i), float64(i)))
	}
	return state
}

func TestToggleSkill(t *testing.T) {
	state := selectionFixture(8)

	if err := state.ToggleSkill("skill_0"); err != nil {
		t.Fatalf("ToggleSkill(add) error = %v", err)
	}
	if len(state.SelectedPersonalSkills) != 1 {
		t.Fatalf("selected = %v", state.SelectedPersonalSkills)
	}
	if err := state.ToggleSkill("skill_0"); err != nil {
		t.Fatalf("ToggleSkill(remove) error = %v", err)
	}
	if len(state.SelectedPersonalSkills) != 0 {
		t.Fatalf("selected after removal = %v", state.SelectedPersonalSkills)
	}
}

func TestToggleSkillRejections(t *testing.T) {
	state := selectionFixture(8)

	if err := state.ToggleSkill("communication"); err == nil {
		t.Error("toggling a universal enabler succeeded")
	}
	if err := state.ToggleSkill("unknown"); err == nil {
		t.Error("toggling an unknown id succeeded")
	}

	for i := 0; i < MaxPersonalSkills; i++ {
		if err := state.ToggleSkill(fmt.Sprintf("skill_%d", i)); err != nil {
			t.Fatalf("ToggleSkill(%d) error = %v", i, err)
		}
	}
	if err := state.ToggleSkill("skill_7"); err == nil {
		t.Error("toggling beyond the personal cap succeeded")
	}
	// Removal is still allowed at the cap.
	if err := state.ToggleSkill("skill_0"); err != nil {
		t.Errorf("removal at cap error = %v", err)
	}
}

func TestRankedCandidates(t *testing.T) {
	state := &SkillSelectionState{Candidates: []SkillCandidate{
		candidateFixture("c", 2.0),
		candidateFixture("a", 1.0),
		candidateFixture("b", 1.0),
	}}
	ranked := state.RankedCandidates()
	if ranked[0].ID != "a" || ranked[1].ID != "b" || ranked[2].ID != "c" {
		t.Errorf("ranked order = %s %s %s", ranked[0].ID, ranked[1].ID, ranked[2].ID)
	}
}

func TestBuildBank(t *testing.T) {
	state := selectionFixture(8)
	for i := 0; i < MaxPersonalSkills; i++ {
		if err := state.ToggleSkill(fmt.Sprintf("skill_%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	bank := state.buildBank()

	if len(bank.ActiveSkills) != MaxActiveSkills {
		t.Errorf("active = %d, want %d", len(bank.ActiveSkills), MaxActiveSkills)
	}
	for _, e := range UniversalEnablers() {
		if !bank.IsActive(e.ID) {
			t.Errorf("enabler %s missing from active set", e.ID)
		}
	}
	// The full pool, selected or not, lands in AllSkillsData.
	if len(bank.AllSkillsData) != 8+len(UniversalEnablers()) {
		t.Errorf("AllSkillsData = %d entries", len(bank.AllSkillsData))
	}
	if bank.IsActive("skill_7") {
		t.Error("unselected candidate is active")
	}
	if _, ok := bank.AllSkillsData["skill_7"]; !ok {
		t.Error("unselected candidate missing from the bank pool")
	}
}

func TestUniversalEnablersAreStable(t *testing.T) {
	a := UniversalEnablers()
	b := UniversalEnablers()
	if len(a) != 6 {
		t.Fatalf("enabler count = %d, want 6", len(a))
	}
	a[0].Name = "mutated"
	if b[0].Name == "mutated" {
		t.Error("UniversalEnablers returns shared storage")
	}
	for _, e := range a {
		if !e.IsUniversalEnabler {
			t.Errorf("enabler %s not flagged", e.ID)
		}
		if !e.Rubric.Complete() {
			t.Errorf("enabler %s has incomplete rubric", e.ID)
		}
	}
}
