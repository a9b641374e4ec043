package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/benjamayden/skillsradar/internal/engine"
)

// TargetCandidateCount is how many AI candidates the identification prompt
// asks for, before the six universal enablers are merged in.
const TargetCandidateCount = 12

const identifyPrompt = `You are an expert career analyst for the product development and technology job market.

Use the following user input AS CONTEXT AND GUIDANCE for your analysis. It narrows the
areas of the job market to focus on, but the skills and rubric descriptions themselves
must reflect GENERAL MARKET EXPECTATIONS, not the user's current abilities.

User context:
- Hard skills listed by the user: %s
- Resume information / key experience: %s
- What makes the user thrive: %s
- Career goals (next 5 years): %s
- Team strategy: %s
- Company strategy: %s

Task: identify approximately %d key skills (a mix of hard and soft skills) that are in
demand for roles in this space. For each skill provide:
- "id": unique lowercase slug with underscores (e.g. "user_research_methods")
- "name": display name
- "category": exactly "Hard Skill" or "Soft Skill"
- "description": one sentence on what the skill covers
- "rubric": object with four string fields "foundational", "intermediate", "advanced",
  "expert" — each 1-2 sentences of market-standard expectations at that level
- "relevanceScore": integer 1-10, how relevant this skill is to the user's context
- "goalAlignment", "strategyAlignment", "marketAlignment": one sentence each on how the
  skill aligns with the user's goals, the team/company strategy, and market demand
- "goalRank", "strategyRank", "marketRank": integer rank of this skill among all skills
  in the list for that dimension (1 = best aligned)

Also provide:
- "recommendedFocus": array of up to %d skill ids the user should select first
- "summary": 2-3 sentence narrative of the analysis

Return a single valid JSON object:
{"candidates": [...], "recommendedFocus": [...], "summary": "..."}

Do not include any text outside the JSON object. No markdown fences.`

// identifyOutput is the JSON structure expected from the LLM.
type identifyOutput struct {
	Candidates       []rawCandidate `json:"candidates"`
	RecommendedFocus []string       `json:"recommendedFocus"`
	Summary          string         `json:"summary"`
}

// GenerateCandidates runs the grounded identification call and validates the
// response into a SkillSelectionState ready for the selection step. The six
// universal enablers are merged in as non-selectable baseline entries; the
// recommended focus (capped at MaxPersonalSkills) becomes the default
// selection.
func GenerateCandidates(ctx context.Context, input UserInputData) (*SkillSelectionState, []engine.GroundingChunk, error) {
	prompt := fmt.Sprintf(identifyPrompt,
		orNone(input.HardSkills),
		engine.TruncateRunes(orNone(input.ResumeInfo), 4000, "..."),
		orNone(input.MotivationalContext),
		orNone(input.FiveYearGoals),
		orNone(input.TeamStrategy),
		orNone(input.CompanyStrategy),
		TargetCandidateCount,
		MaxPersonalSkills,
	)

	res, err := engine.Generate(ctx, prompt, engine.GenerateOptions{
		GroundWithSearch: true,
		GroundingQuery:   groundingQueryFromInput(input),
		Temperature:      0.4,
		ResponseIsJSON:   true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("identify skills: %w", err)
	}

	payload, err := engine.ExtractJSONPayload(res.Text)
	if err != nil {
		return nil, nil, err
	}

	var out identifyOutput
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, nil, fmt.Errorf("identify_skills parse: %w (raw: %s)", err, engine.TruncateRunes(res.Text, 200, "..."))
	}

	candidates, _, err := validateSkillCandidates(out.Candidates)
	if err != nil {
		return nil, nil, err
	}

	enablers := UniversalEnablers()
	state := &SkillSelectionState{
		Candidates:        candidates,
		UniversalEnablers: enablers,
		Summary:           engine.StripInlineCitations(out.Summary),
	}

	// Pre-select the recommended focus, keeping only ids that survived
	// validation and capping at the personal-slot limit.
	byID := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = true
	}
	for _, id := range out.RecommendedFocus {
		id = strings.TrimSpace(id)
		if !byID[id] {
			continue
		}
		state.RecommendedFocus = append(state.RecommendedFocus, id)
		if len(state.SelectedPersonalSkills) < MaxPersonalSkills {
			state.SelectedPersonalSkills = append(state.SelectedPersonalSkills, id)
		}
	}

	return state, res.Attributions, nil
}

// groundingQueryFromInput builds a compact web-search query from the richest
// of the six input fields.
func groundingQueryFromInput(input UserInputData) string {
	parts := []string{"in-demand skills"}
	if s := strings.TrimSpace(input.HardSkills); s != "" {
		parts = append(parts, engine.TruncateAtWord(s, 80))
	}
	if s := strings.TrimSpace(input.FiveYearGoals); s != "" {
		parts = append(parts, engine.TruncateAtWord(s, 80))
	}
	return strings.Join(parts, " ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not provided)"
	}
	return s
}
