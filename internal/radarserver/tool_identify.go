package radarserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjamayden/skillsradar/internal/engine"
	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// IdentifySkillsInput carries the six user context fields for candidate
// generation. Hard skills are required; everything else sharpens ranking.
type IdentifySkillsInput struct {
	HardSkills          string `json:"hardSkills" jsonschema:"technical skills the user already has, comma-separated or free text"`
	ResumeInfo          string `json:"resumeInfo,omitempty" jsonschema:"resume or experience summary"`
	MotivationalContext string `json:"motivationalContext,omitempty" jsonschema:"what motivates the user"`
	FiveYearGoals       string `json:"fiveYearGoals,omitempty" jsonschema:"where the user wants to be in five years"`
	TeamStrategy        string `json:"teamStrategy,omitempty" jsonschema:"the team's strategy or charter"`
	CompanyStrategy     string `json:"companyStrategy,omitempty" jsonschema:"the company's strategy"`
}

// CandidateSummary is the tool-facing view of one ranked candidate.
type CandidateSummary struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Description        string  `json:"description"`
	RelevanceScore     int     `json:"relevanceScore"`
	OverallRank        float64 `json:"overallRank"`
	GoalAlignment      string  `json:"goalAlignment,omitempty"`
	StrategyAlignment  string  `json:"strategyAlignment,omitempty"`
	MarketAlignment    string  `json:"marketAlignment,omitempty"`
	IsUniversalEnabler bool    `json:"isUniversalEnabler,omitempty"`
	Selected           bool    `json:"selected"`
}

// IdentifySkillsOutput is the result of candidate generation.
type IdentifySkillsOutput struct {
	Candidates       []CandidateSummary      `json:"candidates"`
	UniversalEnabler []CandidateSummary      `json:"universalEnablers"`
	RecommendedFocus []string                `json:"recommendedFocus,omitempty"`
	Summary          string                  `json:"summary,omitempty"`
	Sources          []engine.GroundingChunk `json:"sources,omitempty"`
	Message          string                  `json:"message"`
}

func registerIdentifySkills(server *mcp.Server, session *skills.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "identify_skills",
		Description: "Analyze the user's context (hard skills, resume, goals, team and company strategy) and generate a ranked set of skill candidates with market-standard proficiency rubrics, grounded in live market search. Moves the session to the selection stage.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input IdentifySkillsInput) (*mcp.CallToolResult, IdentifySkillsOutput, error) {
		if strings.TrimSpace(input.HardSkills) == "" {
			return nil, IdentifySkillsOutput{}, fmt.Errorf("hardSkills is required")
		}

		selection, sources, err := session.SubmitUserInput(ctx, skills.UserInputData{
			HardSkills:          input.HardSkills,
			ResumeInfo:          input.ResumeInfo,
			MotivationalContext: input.MotivationalContext,
			FiveYearGoals:       input.FiveYearGoals,
			TeamStrategy:        input.TeamStrategy,
			CompanyStrategy:     input.CompanyStrategy,
		})
		if err != nil {
			return nil, IdentifySkillsOutput{}, err
		}

		out := IdentifySkillsOutput{
			RecommendedFocus: selection.RecommendedFocus,
			Summary:          selection.Summary,
			Sources:          sources,
			Message: fmt.Sprintf("Generated %d candidates. Toggle up to %d personal skills, then confirm.",
				len(selection.Candidates), skills.MaxPersonalSkills),
		}
		selected := map[string]bool{}
		for _, id := range selection.SelectedPersonalSkills {
			selected[id] = true
		}
		for _, c := range selection.RankedCandidates() {
			out.Candidates = append(out.Candidates, candidateSummary(c, selected[c.ID]))
		}
		for _, e := range selection.UniversalEnablers {
			out.UniversalEnabler = append(out.UniversalEnabler, candidateSummary(e, true))
		}
		return nil, out, nil
	})
}

func candidateSummary(c skills.SkillCandidate, selected bool) CandidateSummary {
	return CandidateSummary{
		ID:                 c.ID,
		Name:               c.Name,
		Category:           string(c.Category),
		Description:        c.Description,
		RelevanceScore:     c.RelevanceScore,
		OverallRank:        c.OverallRank,
		GoalAlignment:      c.GoalAlignment,
		StrategyAlignment:  c.StrategyAlignment,
		MarketAlignment:    c.MarketAlignment,
		IsUniversalEnabler: c.IsUniversalEnabler,
		Selected:           selected,
	}
}
