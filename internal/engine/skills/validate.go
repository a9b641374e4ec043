package skills

import (
	"log/slog"
	"strings"

	"github.com/benjamayden/skillsradar/internal/engine"
)

// Per-item validation of loosely-typed provider output. The generator is a
// best-effort text model; schema drift is the expected failure mode, not the
// exception. Each entry point is total over individual items — bad items are
// dropped with a diagnostic — and fails only when an otherwise non-empty
// response validates to nothing, which signals systemic format drift.

// rawSkill mirrors the JSON shape the generator is asked for. Everything is
// optional until proven present.
type rawSkill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Rubric      struct {
		Foundational string `json:"foundational"`
		Intermediate string `json:"intermediate"`
		Advanced     string `json:"advanced"`
		Expert       string `json:"expert"`
	} `json:"rubric"`
}

type rawCandidate struct {
	rawSkill
	RelevanceScore    int    `json:"relevanceScore"`
	GoalAlignment     string `json:"goalAlignment"`
	StrategyAlignment string `json:"strategyAlignment"`
	MarketAlignment   string `json:"marketAlignment"`
	GoalRank          int    `json:"goalRank"`
	StrategyRank      int    `json:"strategyRank"`
	MarketRank        int    `json:"marketRank"`
}

// validateSkills coerces raw skill objects into IdentifiedSkillData, dropping
// malformed entries. Returns the rejected count alongside the valid list.
func validateSkills(raw []rawSkill) ([]IdentifiedSkillData, int, error) {
	valid := make([]IdentifiedSkillData, 0, len(raw))
	rejected := 0

	for i, s := range raw {
		skill, ok := coerceSkill(s, i)
		if !ok {
			rejected++
			continue
		}
		valid = append(valid, skill)
	}

	engine.IncrValidationRejects(rejected)
	if len(valid) == 0 && len(raw) > 0 {
		return nil, rejected, ErrValidationRejectedAll
	}
	return valid, rejected, nil
}

// validateJobTitles keeps non-empty trimmed strings.
func validateJobTitles(raw []string) []string {
	titles := make([]string, 0, len(raw))
	for _, t := range raw {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			titles = append(titles, trimmed)
		}
	}
	return titles
}

// validateSkillCandidates applies the same rubric-completeness rule as
// validateSkills, plus: any candidate whose id collides with a reserved
// universal-enabler id is discarded before ranking, preventing duplicate
// radar entries.
func validateSkillCandidates(raw []rawCandidate) ([]SkillCandidate, int, error) {
	valid := make([]SkillCandidate, 0, len(raw))
	rejected := 0

	for i, c := range raw {
		skill, ok := coerceSkill(c.rawSkill, i)
		if !ok {
			rejected++
			continue
		}
		if IsUniversalEnablerID(skill.ID) {
			slog.Warn("validate: dropping candidate colliding with universal enabler",
				slog.String("id", skill.ID))
			rejected++
			continue
		}

		cand := SkillCandidate{
			IdentifiedSkillData: skill,
			RelevanceScore:      clampScore(c.RelevanceScore),
			GoalAlignment:       engine.StripInlineCitations(c.GoalAlignment),
			StrategyAlignment:   engine.StripInlineCitations(c.StrategyAlignment),
			MarketAlignment:     engine.StripInlineCitations(c.MarketAlignment),
			GoalRank:            c.GoalRank,
			StrategyRank:        c.StrategyRank,
			MarketRank:          c.MarketRank,
		}
		cand.OverallRank = ComputeOverallRank(cand.GoalRank, cand.StrategyRank, cand.MarketRank)
		valid = append(valid, cand)
	}

	engine.IncrValidationRejects(rejected)
	if len(valid) == 0 && len(raw) > 0 {
		return nil, rejected, ErrValidationRejectedAll
	}
	return valid, rejected, nil
}

// coerceSkill checks id, name, category and rubric completeness. Citation
// markers are stripped before the completeness check so a rubric field that
// is nothing but a citation counts as missing.
func coerceSkill(s rawSkill, index int) (IdentifiedSkillData, bool) {
	id := strings.TrimSpace(s.ID)
	name := strings.TrimSpace(s.Name)
	if id == "" {
		slog.Warn("validate: skipping skill with missing id", slog.Int("index", index))
		return IdentifiedSkillData{}, false
	}
	if name == "" {
		slog.Warn("validate: skipping skill with missing name", slog.String("id", id))
		return IdentifiedSkillData{}, false
	}
	category := SkillCategory(strings.TrimSpace(s.Category))
	if category != CategoryHard && category != CategorySoft {
		slog.Warn("validate: skipping skill with invalid category",
			slog.String("id", id), slog.String("category", s.Category))
		return IdentifiedSkillData{}, false
	}

	rubric := Rubric{
		SkillID:      id,
		Foundational: engine.StripInlineCitations(s.Rubric.Foundational),
		Intermediate: engine.StripInlineCitations(s.Rubric.Intermediate),
		Advanced:     engine.StripInlineCitations(s.Rubric.Advanced),
		Expert:       engine.StripInlineCitations(s.Rubric.Expert),
	}
	if !rubric.Complete() {
		slog.Warn("validate: skipping skill with incomplete rubric", slog.String("id", id))
		return IdentifiedSkillData{}, false
	}

	return IdentifiedSkillData{
		Skill: Skill{
			ID:          id,
			Name:        name,
			Category:    category,
			Description: engine.StripInlineCitations(s.Description),
		},
		Rubric: rubric,
	}, true
}

func clampScore(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}
