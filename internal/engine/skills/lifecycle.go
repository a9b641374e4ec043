package skills

import (
	"fmt"
	"sort"
)

// Mastery policy: the self-rater and at least three distinct other raters
// must rate the skill at Advanced or above. Fixed thresholds; a team with
// fewer than four raters can never master a skill under this rule (flagged
// as an open product question, see DESIGN.md).
const (
	MasteryMinLevel         = LevelAdvanced
	MasteryMinCorroborators = 3
)

// MasteryCheck is the result of evaluating the mastery predicate.
type MasteryCheck struct {
	CanBeMastered bool   `json:"canBeMastered"`
	SelfQualifies bool   `json:"selfQualifies"`
	Corroborators int    `json:"corroborators"`
	Summary       string `json:"summary"`
}

// CheckMastery evaluates the mastery predicate for one skill from the rating
// store. Adding further qualifying raters never flips the result back to
// false.
func CheckMastery(skillID string, ratings RatingStore, raters []Rater) MasteryCheck {
	selfQualifies := false
	corroborators := 0

	isSelf := make(map[string]bool, len(raters))
	for _, r := range raters {
		if r.IsSelf {
			isSelf[r.ID] = true
		}
	}

	seen := map[string]bool{}
	for _, e := range ratings.All(skillID) {
		if seen[e.RaterID] {
			continue
		}
		seen[e.RaterID] = true
		if e.Rating.Ordinal() < MasteryMinLevel.Ordinal() {
			continue
		}
		if isSelf[e.RaterID] {
			selfQualifies = true
		} else {
			corroborators++
		}
	}

	check := MasteryCheck{
		SelfQualifies: selfQualifies,
		Corroborators: corroborators,
		CanBeMastered: selfQualifies && corroborators >= MasteryMinCorroborators,
	}
	if check.CanBeMastered {
		check.Summary = fmt.Sprintf("self and %d others rate this skill %s or above", corroborators, MasteryMinLevel)
	} else if !selfQualifies {
		check.Summary = fmt.Sprintf("self-rating must be %s or %s", LevelAdvanced, LevelExpert)
	} else {
		check.Summary = fmt.Sprintf("need %d raters besides yourself at %s or above, have %d",
			MasteryMinCorroborators, MasteryMinLevel, corroborators)
	}
	return check
}

// markMastered moves a skill from active to mastered, guarded by the mastery
// predicate. Rating history is untouched. Statuses map is updated in place.
func markMastered(skillID string, bank *SkillBank, statuses map[string]SkillStatus, ratings RatingStore, raters []Rater) error {
	if !bank.IsActive(skillID) {
		return fmt.Errorf("skill %q is not active", skillID)
	}
	check := CheckMastery(skillID, ratings, raters)
	if !check.CanBeMastered {
		return &MasteryError{SkillID: skillID, Summary: check.Summary}
	}

	bank.ActiveSkills = removeID(bank.ActiveSkills, skillID)
	if !bank.IsMastered(skillID) {
		bank.MasteredSkills = append(bank.MasteredSkills, skillID)
	}
	statuses[skillID] = StatusMastered
	return nil
}

// swapSkill replaces removeID with addID in the active set. Unconditional —
// no mastery requirement. The removed skill is archived, not mastered;
// rating history for both skills stays queryable.
func swapSkill(removeSkillID, addSkillID string, bank *SkillBank, statuses map[string]SkillStatus) error {
	if !bank.IsActive(removeSkillID) {
		return fmt.Errorf("skill %q is not active", removeSkillID)
	}
	if bank.IsActive(addSkillID) {
		return fmt.Errorf("skill %q is already active", addSkillID)
	}
	if _, ok := bank.AllSkillsData[addSkillID]; !ok {
		return fmt.Errorf("unknown skill id %q", addSkillID)
	}

	bank.ActiveSkills = removeID(bank.ActiveSkills, removeSkillID)
	bank.MasteredSkills = removeID(bank.MasteredSkills, addSkillID)
	bank.ActiveSkills = append(bank.ActiveSkills, addSkillID)

	statuses[removeSkillID] = StatusArchived
	statuses[addSkillID] = StatusActive
	return nil
}

// availableForSwap lists every skill in the bank that is not currently
// active — mastered and swapped-out skills alike are valid swap-in targets.
func availableForSwap(bank *SkillBank) []IdentifiedSkillData {
	var out []IdentifiedSkillData
	for id, data := range bank.AllSkillsData {
		if !bank.IsActive(id) {
			out = append(out, data)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
