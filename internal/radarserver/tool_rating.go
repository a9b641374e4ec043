package radarserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddRaterInput names a new rater.
type AddRaterInput struct {
	Name string `json:"name" jsonschema:"display name of the new rater, must be unique"`
}

// RaterOutput reports the rater roster after a change.
type RaterOutput struct {
	Raters        []skills.Rater `json:"raters"`
	ActiveRaterID string         `json:"activeRaterId"`
	Message       string         `json:"message,omitempty"`
}

// SetActiveRaterInput selects which rater subsequent ratings default to.
type SetActiveRaterInput struct {
	RaterID string `json:"raterId" jsonschema:"id of the rater to make active"`
}

// RateSkillInput records one proficiency rating.
type RateSkillInput struct {
	SkillID string `json:"skillId" jsonschema:"skill being rated"`
	Rating  string `json:"rating" jsonschema:"one of Foundational, Intermediate, Advanced, Expert"`
	RaterID string `json:"raterId,omitempty" jsonschema:"rater recording the rating; defaults to the active rater"`
}

// RateSkillOutput confirms the upsert and summarizes the skill's ratings.
type RateSkillOutput struct {
	Summary string `json:"summary"`
	Message string `json:"message"`
}

// RadarDataInput selects series for the radar chart.
type RadarDataInput struct {
	RaterIDs       []string `json:"raterIds,omitempty" jsonschema:"raters to chart; defaults to the active rater"`
	IncludeAverage bool     `json:"includeAverage,omitempty" jsonschema:"add a cross-rater average series"`
}

// RadarDataOutput is the chart-ready series set over the active skills.
type RadarDataOutput struct {
	Skills []SkillAxis          `json:"skills"`
	Series []skills.RadarSeries `json:"series"`
	Max    int                  `json:"max"`
}

// SkillAxis is one radar axis.
type SkillAxis struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func registerRaterTools(server *mcp.Server, session *skills.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_rater",
		Description: "Add a rater (colleague, manager, mentor) so they can rate skills alongside the self-assessment. The new rater becomes active.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input AddRaterInput) (*mcp.CallToolResult, RaterOutput, error) {
		rater, err := session.AddRater(input.Name)
		if err != nil {
			return nil, RaterOutput{}, err
		}
		return nil, RaterOutput{
			Raters:        session.Raters(),
			ActiveRaterID: session.ActiveRaterID(),
			Message:       fmt.Sprintf("Rater %q added and active.", rater.Name),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_active_rater",
		Description: "Switch which rater subsequent ratings are recorded for.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SetActiveRaterInput) (*mcp.CallToolResult, RaterOutput, error) {
		if err := session.SetActiveRater(input.RaterID); err != nil {
			return nil, RaterOutput{}, err
		}
		return nil, RaterOutput{
			Raters:        session.Raters(),
			ActiveRaterID: session.ActiveRaterID(),
		}, nil
	})
}

func registerRatingTools(server *mcp.Server, session *skills.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rate_skill",
		Description: "Record a proficiency rating for a skill. One rating per (skill, rater) pair; re-rating replaces the previous value.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input RateSkillInput) (*mcp.CallToolResult, RateSkillOutput, error) {
		level := skills.RubricLevel(strings.TrimSpace(input.Rating))
		if err := session.RateSkill(input.SkillID, input.RaterID, level); err != nil {
			return nil, RateSkillOutput{}, err
		}
		return nil, RateSkillOutput{
			Summary: session.RatingsSummary(input.SkillID),
			Message: fmt.Sprintf("Rated %s as %s.", input.SkillID, level),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "radar_data",
		Description: "Chart-ready radar series: per-rater ordinal levels (1-4) over the active skills, with an optional cross-rater average series. Unrated skills are omitted from a series.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input RadarDataInput) (*mcp.CallToolResult, RadarDataOutput, error) {
		raterIDs := input.RaterIDs
		if len(raterIDs) == 0 {
			raterIDs = []string{session.ActiveRaterID()}
		}

		bank := session.Bank()
		out := RadarDataOutput{
			Series: session.RadarData(raterIDs, input.IncludeAverage),
			Max:    skills.MaxRubricOrdinal,
		}
		for _, id := range bank.ActiveSkills {
			out.Skills = append(out.Skills, SkillAxis{ID: id, Name: bank.AllSkillsData[id].Name})
		}
		return nil, out, nil
	})
}
