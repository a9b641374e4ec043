package radarserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ArchiveSessionInput names a snapshot slot in the Postgres archive.
type ArchiveSessionInput struct {
	Name string `json:"name" jsonschema:"archive slot name; saving to an existing name overwrites it"`
}

// ArchiveSessionOutput confirms the archive write.
type ArchiveSessionOutput struct {
	Message string `json:"message"`
}

// RestoreSessionInput names the snapshot to load.
type RestoreSessionInput struct {
	Name string `json:"name" jsonschema:"archive slot name to restore"`
}

// ListArchivesInput is empty; listing takes no parameters.
type ListArchivesInput struct{}

// ListArchivesOutput lists archived snapshots.
type ListArchivesOutput struct {
	Archives []skills.ArchiveEntry `json:"archives"`
	Message  string                `json:"message,omitempty"`
}

func registerArchiveTools(server *mcp.Server, session *skills.Session) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "archive_session",
		Description: "Save the current session under a name in the shared Postgres archive.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ArchiveSessionInput) (*mcp.CallToolResult, ArchiveSessionOutput, error) {
		db := skills.GetArchiveDB()
		if db == nil {
			return nil, ArchiveSessionOutput{}, fmt.Errorf("archive database not configured")
		}
		if err := db.Save(ctx, input.Name, session.Export()); err != nil {
			return nil, ArchiveSessionOutput{}, err
		}
		return nil, ArchiveSessionOutput{Message: fmt.Sprintf("Session archived as %q.", input.Name)}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "restore_session",
		Description: "Replace the current session with a named snapshot from the Postgres archive.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input RestoreSessionInput) (*mcp.CallToolResult, ImportSessionOutput, error) {
		db := skills.GetArchiveDB()
		if db == nil {
			return nil, ImportSessionOutput{}, fmt.Errorf("archive database not configured")
		}
		doc, err := db.Load(ctx, input.Name)
		if err != nil {
			return nil, ImportSessionOutput{}, err
		}
		if doc == nil {
			return nil, ImportSessionOutput{}, fmt.Errorf("no archive named %q", input.Name)
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, ImportSessionOutput{}, fmt.Errorf("restore: marshal: %w", err)
		}
		if err := session.Import(payload); err != nil {
			return nil, ImportSessionOutput{}, err
		}
		return nil, ImportSessionOutput{
			State:   string(session.State()),
			Message: fmt.Sprintf("Session restored from %q.", input.Name),
		}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_archives",
		Description: "List named session snapshots in the Postgres archive, most recently updated first.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ListArchivesInput) (*mcp.CallToolResult, ListArchivesOutput, error) {
		db := skills.GetArchiveDB()
		if db == nil {
			return nil, ListArchivesOutput{}, fmt.Errorf("archive database not configured")
		}
		entries, err := db.List(ctx)
		if err != nil {
			return nil, ListArchivesOutput{}, err
		}
		out := ListArchivesOutput{Archives: entries}
		if len(entries) == 0 {
			out.Message = "No archived sessions."
		}
		return nil, out, nil
	})
}
