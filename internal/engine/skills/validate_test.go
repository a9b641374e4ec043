package skills

import (
	"errors"
	"testing"
)

func rawSkillFixture(id, name string) rawSkill {
	s := rawSkill{ID: id, Name: name, Category: "Hard Skill", Description: "desc"}
	s.Rubric.Foundational = "f"
	s.Rubric.Intermediate = "i"
	s.Rubric.Advanced = "a"
	s.Rubric.Expert = "e"
	return s
}

func TestValidateSkillsDropsMalformed(t *testing.T) {
	missingRubric := rawSkillFixture("b", "B")
	missingRubric.Rubric.Expert = ""

	citationOnlyRubric := rawSkillFixture("c", "C")
	citationOnlyRubric.Rubric.Advanced = "[3]"

	raw := []rawSkill{
		rawSkillFixture("a", "A"),
		{ID: "", Name: "no id", Category: "Hard Skill"},
		{ID: "x", Name: "", Category: "Soft Skill"},
		{ID: "y", Name: "Y", Category: "Medium Skill"},
		missingRubric,
		citationOnlyRubric,
	}

	valid, rejected, err := validateSkills(raw)
	if err != nil {
		t.Fatalf("validateSkills() error = %v", err)
	}
	if len(valid) != 1 || valid[0].ID != "a" {
		t.Fatalf("valid = %v, want only skill a", valid)
	}
	if rejected != 5 {
		t.Errorf("rejected = %d, want 5", rejected)
	}
}

func TestValidateSkillsAllRejected(t *testing.T) {
	raw := []rawSkill{{ID: "", Name: "bad"}}
	_, _, err := validateSkills(raw)
	if !errors.Is(err, ErrValidationRejectedAll) {
		t.Errorf("error = %v, want ErrValidationRejectedAll", err)
	}
}

func TestValidateSkillsEmptyInput(t *testing.T) {
	valid, rejected, err := validateSkills(nil)
	if err != nil {
		t.Fatalf("validateSkills(nil) error = %v", err)
	}
	if len(valid) != 0 || rejected != 0 {
		t.Errorf("valid = %v, rejected = %d", valid, rejected)
	}
}

func TestValidateSkillCandidates(t *testing.T) {
	good := rawCandidate{rawSkill: rawSkillFixture("go_profiling", "Go Profiling")}
	good.RelevanceScore = 99 // clamped
	good.GoalAlignment = "Aligned with goals [2]"
	good.GoalRank = 1
	good.StrategyRank = 2
	good.MarketRank = 3

	collides := rawCandidate{rawSkill: rawSkillFixture("communication", "Communication")}

	valid, rejected, err := validateSkillCandidates([]rawCandidate{good, collides})
	if err != nil {
		t.Fatalf("validateSkillCandidates() error = %v", err)
	}
	if len(valid) != 1 {
		t.Fatalf("valid = %d, want 1 (enabler collision dropped)", len(valid))
	}
	if rejected != 1 {
		t.Errorf("rejected = %d, want 1", rejected)
	}

	c := valid[0]
	if c.RelevanceScore != 10 {
		t.Errorf("RelevanceScore = %d, want clamped 10", c.RelevanceScore)
	}
	if c.GoalAlignment != "Aligned with goals" {
		t.Errorf("GoalAlignment = %q, citations not stripped", c.GoalAlignment)
	}
	want := 0.4*1 + 0.3*2 + 0.3*3
	if c.OverallRank != want {
		t.Errorf("OverallRank = %v, want %v", c.OverallRank, want)
	}
}

func TestValidateJobTitles(t *testing.T) {
	got := validateJobTitles([]string{" Staff Engineer ", "", "  ", "Product Lead"})
	if len(got) != 2 || got[0] != "Staff Engineer" || got[1] != "Product Lead" {
		t.Errorf("validateJobTitles() = %v", got)
	}
}
