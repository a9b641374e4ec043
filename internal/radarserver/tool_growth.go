package radarserver

import (
	"context"
	"fmt"

	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToggleFocusInput names the skill to add to or remove from the focus list.
type ToggleFocusInput struct {
	SkillID string `json:"skillId" jsonschema:"skill to toggle as a growth focus"`
}

// FocusOutput reports the focus list after a toggle.
type FocusOutput struct {
	FocusSkills []string `json:"focusSkills"`
	Message     string   `json:"message"`
}

// GenerateGrowthInput is empty; generation acts on the current focus list.
type GenerateGrowthInput struct{}

// GrowthOutput is the combined growth-content result. Partial reports plans
// that survived a mid-sequence provider failure.
type GrowthOutput struct {
	SuggestedJobTitles []string            `json:"suggestedJobTitles,omitempty"`
	Plans              []skills.GrowthPlan `json:"plans,omitempty"`
	Partial            bool                `json:"partial,omitempty"`
	Message            string              `json:"message"`
}

func registerGrowthTools(server *mcp.Server, session *skills.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_focus_skill",
		Description: "Add or remove a skill from the growth focus list (at most three). Growth plans are generated for focus skills only.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ToggleFocusInput) (*mcp.CallToolResult, FocusOutput, error) {
		if input.SkillID == "" {
			return nil, FocusOutput{}, fmt.Errorf("skillId is required")
		}
		focus, err := session.ToggleFocusSkill(input.SkillID)
		if err != nil {
			return nil, FocusOutput{}, err
		}
		return nil, FocusOutput{
			FocusSkills: focus,
			Message:     fmt.Sprintf("%d of %d focus skills selected.", len(focus), skills.MaxFocusSkills),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggest_job_titles",
		Description: "Suggest 5-7 market job titles matching the current rated skill profile, without generating growth plans.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input GenerateGrowthInput) (*mcp.CallToolResult, GrowthOutput, error) {
		titles, err := session.GenerateJobTitles(ctx)
		if err != nil {
			return nil, GrowthOutput{}, err
		}
		return nil, GrowthOutput{
			SuggestedJobTitles: titles,
			Message:            fmt.Sprintf("Suggested %d job titles.", len(titles)),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_growth_content",
		Description: "Suggest market job titles from the rated profile, then generate a grounded growth plan (dimension analysis plus learning resources) for each focus skill. Titles are produced first and inform every plan. Plans completed before a provider failure are kept.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input GenerateGrowthInput) (*mcp.CallToolResult, GrowthOutput, error) {
		content, err := session.GenerateGrowthContent(ctx)
		if err != nil {
			// A mid-sequence failure still returns the titles and plans
			// produced so far.
			if content != nil {
				return nil, GrowthOutput{
					SuggestedJobTitles: content.SuggestedJobTitles,
					Plans:              content.Plans,
					Partial:            true,
					Message:            fmt.Sprintf("Generated %d of the requested plans before a failure: %v", len(content.Plans), err),
				}, nil
			}
			return nil, GrowthOutput{}, err
		}
		return nil, GrowthOutput{
			SuggestedJobTitles: content.SuggestedJobTitles,
			Plans:              content.Plans,
			Message:            fmt.Sprintf("Suggested %d job titles and generated %d growth plans.", len(content.SuggestedJobTitles), len(content.Plans)),
		}, nil
	})
}
