package radarserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benjamayden/skillsradar/internal/engine"
	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SessionStatusInput is empty; status takes no parameters.
type SessionStatusInput struct{}

// SessionStatusOutput summarizes where the session is.
type SessionStatusOutput struct {
	State              string `json:"state"`
	Progress           string `json:"progress,omitempty"`
	ActiveSkills       int    `json:"activeSkills"`
	MasteredSkills     int    `json:"masteredSkills"`
	Raters             int    `json:"raters"`
	FocusSkills        int    `json:"focusSkills"`
	GrowthPlans        int    `json:"growthPlans"`
	SuggestedJobTitles int    `json:"suggestedJobTitles"`
}

// ExportSessionInput is empty; export takes no parameters.
type ExportSessionInput struct{}

// ExportSessionOutput carries the portable session document.
type ExportSessionOutput struct {
	Document json.RawMessage `json:"document"`
}

// ImportSessionInput carries a previously exported document, current or
// legacy format.
type ImportSessionInput struct {
	Document json.RawMessage `json:"document" jsonschema:"a previously exported session document (JSON object)"`
}

// ImportSessionOutput confirms the import.
type ImportSessionOutput struct {
	State   string `json:"state"`
	Message string `json:"message"`
}

// ResetSessionInput is empty; reset takes no parameters.
type ResetSessionInput struct{}

// ResetSessionOutput confirms the reset.
type ResetSessionOutput struct {
	Message string `json:"message"`
}

// SetViewStateInput records UI position so it survives export/import.
type SetViewStateInput struct {
	ActiveTab          string   `json:"activeTab,omitempty" jsonschema:"current UI tab"`
	ComparisonRaterIDs []string `json:"comparisonRaterIds,omitempty" jsonschema:"raters shown side by side on the radar"`
	ShowAverageOnRadar bool     `json:"showAverageOnRadar,omitempty" jsonschema:"whether the average series is shown"`
	Theme              string   `json:"theme,omitempty" jsonschema:"UI theme preference"`
}

// SetViewStateOutput confirms the view update.
type SetViewStateOutput struct {
	Message string `json:"message"`
}

func registerSessionTools(server *mcp.Server, session *skills.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "session_status",
		Description: "Report the pipeline state, current progress message, and counts of skills, raters, focus skills and growth plans.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SessionStatusInput) (*mcp.CallToolResult, SessionStatusOutput, error) {
		bank := session.Bank()
		return nil, SessionStatusOutput{
			State:              string(session.State()),
			Progress:           session.Progress(),
			ActiveSkills:       len(bank.ActiveSkills),
			MasteredSkills:     len(bank.MasteredSkills),
			Raters:             len(session.Raters()),
			FocusSkills:        len(session.FocusSkills()),
			GrowthPlans:        len(session.GrowthPlans()),
			SuggestedJobTitles: len(session.SuggestedJobTitles()),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_session",
		Description: "Export the whole session (user input, skill bank, raters, ratings, focus skills, growth plans, view state) as a portable JSON document.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ExportSessionInput) (*mcp.CallToolResult, ExportSessionOutput, error) {
		doc := session.Export()
		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, ExportSessionOutput{}, fmt.Errorf("export: marshal: %w", err)
		}
		return nil, ExportSessionOutput{Document: payload}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_session",
		Description: "Replace the whole session from an exported document. Accepts both the current format and legacy documents with a flat identifiedSkills list, which are upgraded losslessly. A rejected document leaves the session untouched.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ImportSessionInput) (*mcp.CallToolResult, ImportSessionOutput, error) {
		if len(input.Document) == 0 {
			return nil, ImportSessionOutput{}, fmt.Errorf("document is required")
		}
		if err := session.Import(input.Document); err != nil {
			return nil, ImportSessionOutput{}, err
		}
		engine.IncrSessionsImported()
		return nil, ImportSessionOutput{
			State:   string(session.State()),
			Message: "Session imported.",
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_session",
		Description: "Clear all session data and return to the start of the pipeline.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ResetSessionInput) (*mcp.CallToolResult, ResetSessionOutput, error) {
		session.Reset()
		return nil, ResetSessionOutput{Message: "Session reset."}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_view_state",
		Description: "Record UI position (active tab, radar comparison raters, average toggle, theme) so it round-trips through export and import.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SetViewStateInput) (*mcp.CallToolResult, SetViewStateOutput, error) {
		if err := session.SetViewState(input.ActiveTab, input.ComparisonRaterIDs, input.ShowAverageOnRadar); err != nil {
			return nil, SetViewStateOutput{}, err
		}
		if input.Theme != "" {
			session.SetTheme(input.Theme)
		}
		return nil, SetViewStateOutput{Message: "View state saved."}, nil
	})
}
