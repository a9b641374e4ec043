package skills

import (
	"errors"
	"testing"
)

func testRaters(others int) []Rater {
	raters := []Rater{NewSelfRater()}
	names := []string{"Ana", "Boris", "Clara", "Denis"}
	for i := 0; i < others; i++ {
		raters = append(raters, Rater{ID: names[i], Name: names[i]})
	}
	return raters
}

func TestCheckMastery(t *testing.T) {
	tests := []struct {
		name    string
		self    RubricLevel
		others  []RubricLevel
		want    bool
		wantCor int
	}{
		{
			name:    "self and three advanced",
			self:    LevelAdvanced,
			others:  []RubricLevel{LevelAdvanced, LevelExpert, LevelAdvanced},
			want:    true,
			wantCor: 3,
		},
		{
			name:   "self below threshold",
			self:   LevelIntermediate,
			others: []RubricLevel{LevelExpert, LevelExpert, LevelExpert},
			want:   false,
		},
		{
			name:    "only two corroborators",
			self:    LevelExpert,
			others:  []RubricLevel{LevelAdvanced, LevelAdvanced},
			want:    false,
			wantCor: 2,
		},
		{
			name:    "low rater does not cancel qualifiers",
			self:    LevelAdvanced,
			others:  []RubricLevel{LevelAdvanced, LevelAdvanced, LevelAdvanced, LevelFoundational},
			want:    true,
			wantCor: 3,
		},
		{
			name: "no ratings",
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raters := testRaters(len(tt.others))
			rs := RatingStore{}
			if tt.self != "" {
				rs.Upsert("go", SelfRaterID, tt.self)
			}
			for i, lvl := range tt.others {
				rs.Upsert("go", raters[i+1].ID, lvl)
			}

			check := CheckMastery("go", rs, raters)
			if check.CanBeMastered != tt.want {
				t.Errorf("CanBeMastered = %v, want %v (%s)", check.CanBeMastered, tt.want, check.Summary)
			}
			if tt.wantCor != 0 && check.Corroborators != tt.wantCor {
				t.Errorf("Corroborators = %d, want %d", check.Corroborators, tt.wantCor)
			}
			if check.Summary == "" {
				t.Error("Summary is empty")
			}
		})
	}
}

func masteryFixture() (*SkillBank, map[string]SkillStatus, RatingStore, []Rater) {
	bank := &SkillBank{
		ActiveSkills: []string{"go", "sql"},
		AllSkillsData: map[string]IdentifiedSkillData{
			"go":   {Skill: Skill{ID: "go", Name: "Go"}},
			"sql":  {Skill: Skill{ID: "sql", Name: "SQL"}},
			"rust": {Skill: Skill{ID: "rust", Name: "Rust"}},
		},
	}
	statuses := map[string]SkillStatus{"go": StatusActive, "sql": StatusActive, "rust": StatusArchived}
	raters := testRaters(3)
	rs := RatingStore{}
	rs.Upsert("go", SelfRaterID, LevelExpert)
	for _, r := range raters[1:] {
		rs.Upsert("go", r.ID, LevelAdvanced)
	}
	return bank, statuses, rs, raters
}

func TestMarkMastered(t *testing.T) {
	bank, statuses, rs, raters := masteryFixture()

	if err := markMastered("go", bank, statuses, rs, raters); err != nil {
		t.Fatalf("markMastered() error = %v", err)
	}
	if bank.IsActive("go") || !bank.IsMastered("go") {
		t.Errorf("bank after mastery: active=%v mastered=%v", bank.ActiveSkills, bank.MasteredSkills)
	}
	if statuses["go"] != StatusMastered {
		t.Errorf("status = %s, want mastered", statuses["go"])
	}
	if len(rs.All("go")) != 4 {
		t.Error("rating history was modified by mastery")
	}
}

func TestMarkMasteredCriteriaNotMet(t *testing.T) {
	bank, statuses, rs, raters := masteryFixture()

	err := markMastered("sql", bank, statuses, rs, raters)
	if !errors.Is(err, ErrMasteryNotMet) {
		t.Fatalf("error = %v, want ErrMasteryNotMet", err)
	}
	var me *MasteryError
	if !errors.As(err, &me) || me.Summary == "" {
		t.Errorf("error carries no summary: %v", err)
	}
	if !bank.IsActive("sql") {
		t.Error("failed mastery mutated the bank")
	}
}

func TestMarkMasteredNotActive(t *testing.T) {
	bank, statuses, rs, raters := masteryFixture()
	if err := markMastered("rust", bank, statuses, rs, raters); err == nil {
		t.Error("mastering a non-active skill succeeded")
	}
}

func TestSwapSkill(t *testing.T) {
	bank, statuses, _, _ := masteryFixture()

	if err := swapSkill("go", "rust", bank, statuses); err != nil {
		t.Fatalf("swapSkill() error = %v", err)
	}
	if bank.IsActive("go") || !bank.IsActive("rust") {
		t.Errorf("active after swap = %v", bank.ActiveSkills)
	}
	if statuses["go"] != StatusArchived || statuses["rust"] != StatusActive {
		t.Errorf("statuses after swap = %v", statuses)
	}
	if _, ok := bank.AllSkillsData["go"]; !ok {
		t.Error("swapped-out skill removed from AllSkillsData")
	}
}

func TestSwapSkillMasteredBackIn(t *testing.T) {
	bank, statuses, _, _ := masteryFixture()
	bank.ActiveSkills = removeID(bank.ActiveSkills, "go")
	bank.MasteredSkills = append(bank.MasteredSkills, "go")
	statuses["go"] = StatusMastered

	if err := swapSkill("sql", "go", bank, statuses); err != nil {
		t.Fatalf("swapSkill() error = %v", err)
	}
	if bank.IsMastered("go") {
		t.Error("skill swapped back in still listed as mastered")
	}
	if !bank.IsActive("go") {
		t.Error("skill swapped back in is not active")
	}
}

func TestSwapSkillErrors(t *testing.T) {
	bank, statuses, _, _ := masteryFixture()

	if err := swapSkill("rust", "go", bank, statuses); err == nil {
		t.Error("swapping out a non-active skill succeeded")
	}
	if err := swapSkill("go", "sql", bank, statuses); err == nil {
		t.Error("swapping in an already-active skill succeeded")
	}
	if err := swapSkill("go", "nope", bank, statuses); err == nil {
		t.Error("swapping in an unknown skill succeeded")
	}
}

func TestAvailableForSwap(t *testing.T) {
	bank, _, _, _ := masteryFixture()
	got := availableForSwap(bank)
	if len(got) != 1 || got[0].ID != "rust" {
		t.Errorf("availableForSwap() = %v, want [rust]", got)
	}
}
