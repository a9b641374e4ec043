package radarserver

import (
	"context"
	"fmt"
	"sort"

	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToggleSkillInput names one candidate to add or remove from the personal
// selection.
type ToggleSkillInput struct {
	SkillID string `json:"skillId" jsonschema:"candidate skill id to toggle"`
}

// SelectionOutput reports the selection after a toggle.
type SelectionOutput struct {
	SelectedPersonalSkills []string `json:"selectedPersonalSkills"`
	Remaining              int      `json:"remaining"`
	Message                string   `json:"message"`
}

// ConfirmSelectionInput is empty; confirmation takes no parameters.
type ConfirmSelectionInput struct{}

// SkillView is the tool-facing view of one banked skill.
type SkillView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Category string        `json:"category"`
	Status   string        `json:"status"`
	Focus    bool          `json:"focus,omitempty"`
	Rubric   skills.Rubric `json:"rubric"`
	Ratings  []RatingView  `json:"ratings,omitempty"`
}

// RatingView resolves a rating entry to its rater's display name.
type RatingView struct {
	RaterID   string `json:"raterId"`
	RaterName string `json:"raterName"`
	Rating    string `json:"rating"`
}

// BankOutput is the full skill bank listing.
type BankOutput struct {
	ActiveSkills   []SkillView `json:"activeSkills"`
	MasteredSkills []SkillView `json:"masteredSkills"`
	ArchivedSkills []SkillView `json:"archivedSkills,omitempty"`
	FocusSkills    []string    `json:"focusSkills,omitempty"`
	Message        string      `json:"message,omitempty"`
}

// ListSkillsInput is empty; listing takes no parameters.
type ListSkillsInput struct{}

func registerSelectionTools(server *mcp.Server, session *skills.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_skill_selection",
		Description: "Add or remove a candidate skill from the personal selection during the selection stage. Universal enablers are always included and cannot be toggled.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ToggleSkillInput) (*mcp.CallToolResult, SelectionOutput, error) {
		if input.SkillID == "" {
			return nil, SelectionOutput{}, fmt.Errorf("skillId is required")
		}
		selection, err := session.ToggleSkill(input.SkillID)
		if err != nil {
			return nil, SelectionOutput{}, err
		}
		remaining := skills.MaxPersonalSkills - len(selection.SelectedPersonalSkills)
		return nil, SelectionOutput{
			SelectedPersonalSkills: selection.SelectedPersonalSkills,
			Remaining:              remaining,
			Message:                fmt.Sprintf("%d of %d personal skills selected.", len(selection.SelectedPersonalSkills), skills.MaxPersonalSkills),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "confirm_skill_selection",
		Description: "Finalize the personal selection into the skill bank. Selected skills plus the six universal enablers become active; prior ratings for returning skills are carried forward.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ConfirmSelectionInput) (*mcp.CallToolResult, BankOutput, error) {
		if _, err := session.ConfirmSelection(); err != nil {
			return nil, BankOutput{}, err
		}
		out := bankOutput(session)
		out.Message = fmt.Sprintf("Skill bank ready with %d active skills.", len(out.ActiveSkills))
		return nil, out, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_skills",
		Description: "List the skill bank: active, mastered and archived skills with their rubrics, ratings and focus flags.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ListSkillsInput) (*mcp.CallToolResult, BankOutput, error) {
		return nil, bankOutput(session), nil
	})
}

func bankOutput(session *skills.Session) BankOutput {
	bank := session.Bank()
	statuses := session.Statuses()
	ratings := session.Ratings()
	raters := session.Raters()
	focus := map[string]bool{}
	for _, id := range session.FocusSkills() {
		focus[id] = true
	}
	names := map[string]string{}
	for _, r := range raters {
		names[r.ID] = r.Name
	}

	view := func(id string) SkillView {
		data := bank.AllSkillsData[id]
		sv := SkillView{
			ID:       data.ID,
			Name:     data.Name,
			Category: string(data.Category),
			Status:   string(statuses[id]),
			Focus:    focus[id],
			Rubric:   data.Rubric,
		}
		for _, e := range ratings[id] {
			name := names[e.RaterID]
			if name == "" {
				name = e.RaterID
			}
			sv.Ratings = append(sv.Ratings, RatingView{RaterID: e.RaterID, RaterName: name, Rating: string(e.Rating)})
		}
		return sv
	}

	var out BankOutput
	out.FocusSkills = session.FocusSkills()
	for _, id := range bank.ActiveSkills {
		out.ActiveSkills = append(out.ActiveSkills, view(id))
	}
	for _, id := range bank.MasteredSkills {
		out.MasteredSkills = append(out.MasteredSkills, view(id))
	}
	var archived []string
	for id, st := range statuses {
		if st == skills.StatusArchived {
			archived = append(archived, id)
		}
	}
	sort.Strings(archived)
	for _, id := range archived {
		out.ArchivedSkills = append(out.ArchivedSkills, view(id))
	}
	return out
}
