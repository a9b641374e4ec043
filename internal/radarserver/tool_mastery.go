package radarserver

import (
	"context"
	"fmt"

	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CheckMasteryInput names the skill to evaluate.
type CheckMasteryInput struct {
	SkillID string `json:"skillId" jsonschema:"skill to evaluate against the mastery criteria"`
}

// CheckMasteryOutput is the mastery predicate result.
type CheckMasteryOutput struct {
	CanBeMastered bool   `json:"canBeMastered"`
	SelfQualifies bool   `json:"selfQualifies"`
	Corroborators int    `json:"corroborators"`
	Summary       string `json:"summary"`
}

// MarkMasteredInput names the skill to promote.
type MarkMasteredInput struct {
	SkillID string `json:"skillId" jsonschema:"active skill to mark as mastered"`
}

// SwapSkillInput exchanges one active skill for a banked one.
type SwapSkillInput struct {
	RemoveSkillID string `json:"removeSkillId" jsonschema:"active skill to archive"`
	AddSkillID    string `json:"addSkillId" jsonschema:"banked skill to activate"`
}

// SwapOptionsInput is empty; listing takes no parameters.
type SwapOptionsInput struct{}

// SwapOptionsOutput lists the banked skills available to swap in.
type SwapOptionsOutput struct {
	Options []SkillAxis `json:"options"`
	Message string      `json:"message,omitempty"`
}

func registerMasteryTools(server *mcp.Server, session *skills.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_mastery",
		Description: "Evaluate whether a skill meets the mastery criteria: self-rated Advanced or Expert plus at least three other raters at Advanced or Expert.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CheckMasteryInput) (*mcp.CallToolResult, CheckMasteryOutput, error) {
		if input.SkillID == "" {
			return nil, CheckMasteryOutput{}, fmt.Errorf("skillId is required")
		}
		check := session.CheckSkillMastery(input.SkillID)
		return nil, CheckMasteryOutput{
			CanBeMastered: check.CanBeMastered,
			SelfQualifies: check.SelfQualifies,
			Corroborators: check.Corroborators,
			Summary:       check.Summary,
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_skill_mastered",
		Description: "Move an active skill to the mastered set. Fails with the unmet criteria when the mastery predicate does not hold. Rating history is kept.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input MarkMasteredInput) (*mcp.CallToolResult, BankOutput, error) {
		if err := session.MarkMastered(input.SkillID); err != nil {
			return nil, BankOutput{}, err
		}
		out := bankOutput(session)
		out.Message = fmt.Sprintf("Skill %s mastered. A bank slot is now free for a swap.", input.SkillID)
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "swap_skill",
		Description: "Replace one active skill with another from the bank. The removed skill is archived, not deleted, and keeps its ratings.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SwapSkillInput) (*mcp.CallToolResult, BankOutput, error) {
		if input.RemoveSkillID == "" || input.AddSkillID == "" {
			return nil, BankOutput{}, fmt.Errorf("removeSkillId and addSkillId are required")
		}
		if err := session.SwapSkill(input.RemoveSkillID, input.AddSkillID); err != nil {
			return nil, BankOutput{}, err
		}
		out := bankOutput(session)
		out.Message = fmt.Sprintf("Swapped %s out for %s.", input.RemoveSkillID, input.AddSkillID)
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "swap_options",
		Description: "List banked skills (mastered or archived) that could be swapped into the active set.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SwapOptionsInput) (*mcp.CallToolResult, SwapOptionsOutput, error) {
		options := session.AvailableForSwap()
		out := SwapOptionsOutput{}
		for _, sk := range options {
			out.Options = append(out.Options, SkillAxis{ID: sk.ID, Name: sk.Name})
		}
		if len(out.Options) == 0 {
			out.Message = "No banked skills available to swap in."
		}
		return nil, out, nil
	})
}
