// Package radarserver exposes the skills radar operations as MCP tools:
// skill identification, selection, rating, mastery lifecycle, growth
// planning and session export/import.
package radarserver

import (
	"github.com/benjamayden/skillsradar/internal/engine/skills"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers every tool on the given MCP server, bound to one
// session. Archive tools are added only when a Postgres archive is
// configured.
func RegisterTools(server *mcp.Server, session *skills.Session) {
	registerIdentifySkills(server, session)
	registerSelectionTools(server, session)
	registerRaterTools(server, session)
	registerRatingTools(server, session)
	registerMasteryTools(server, session)
	registerGrowthTools(server, session)
	registerSessionTools(server, session)
	if skills.GetArchiveDB() != nil {
		registerArchiveTools(server, session)
	}
}
