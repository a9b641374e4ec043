package skills

// The six universal growth enablers: fixed baseline soft skills always
// included in the active set regardless of what the generator returns.
// Constant data, never AI-generated; any generated candidate colliding with
// one of these ids is discarded before ranking.

var universalEnablerIDs = [...]string{
	"communication",
	"collaboration",
	"problem_solving",
	"adaptability",
	"continuous_learning",
	"leadership",
}

// IsUniversalEnablerID reports whether id is one of the reserved enabler ids.
// Matching is case-sensitive and exact.
func IsUniversalEnablerID(id string) bool {
	for _, u := range universalEnablerIDs {
		if id == u {
			return true
		}
	}
	return false
}

// UniversalEnablers returns fresh copies of the six enabler candidates so
// callers can mutate selection state without touching the constants.
func UniversalEnablers() []SkillCandidate {
	out := make([]SkillCandidate, len(universalEnablerDefs))
	copy(out, universalEnablerDefs[:])
	return out
}

var universalEnablerDefs = [...]SkillCandidate{
	{
		IdentifiedSkillData: IdentifiedSkillData{
			Skill: Skill{ID: "communication", Name: "Communication", Category: CategorySoft,
				Description: "Conveying ideas clearly across audiences, formats and levels of the organization."},
			Rubric: Rubric{
				SkillID:      "communication",
				Foundational: "Shares information clearly in familiar settings and asks clarifying questions. Written updates are understandable with occasional guidance.",
				Intermediate: "Adapts tone and detail to the audience, runs effective meetings, and surfaces risks early. Writes documents others can act on without follow-up.",
				Advanced:     "Communicates complex or contested topics persuasively across teams, resolves misunderstandings between groups, and coaches others on clarity.",
				Expert:       "Shapes how an organization communicates: sets narrative for major initiatives, represents the company externally, and is sought out to deliver high-stakes messages.",
			},
		},
	},
	{
		IdentifiedSkillData: IdentifiedSkillData{
			Skill: Skill{ID: "collaboration", Name: "Collaboration", Category: CategorySoft,
				Description: "Working productively with peers, partners and cross-functional groups."},
			Rubric: Rubric{
				SkillID:      "collaboration",
				Foundational: "Contributes reliably to team tasks, shares context willingly, and responds constructively to feedback from teammates.",
				Intermediate: "Builds working relationships across functions, unblocks shared work proactively, and balances own priorities against team needs.",
				Advanced:     "Leads cross-functional efforts, mediates conflicting priorities between groups, and establishes working agreements that outlast a single project.",
				Expert:       "Creates collaboration structures at organizational scale: partnership models, team topologies and norms that other leaders adopt.",
			},
		},
	},
	{
		IdentifiedSkillData: IdentifiedSkillData{
			Skill: Skill{ID: "problem_solving", Name: "Problem Solving", Category: CategorySoft,
				Description: "Structuring ambiguous problems, generating options and driving to resolution."},
			Rubric: Rubric{
				SkillID:      "problem_solving",
				Foundational: "Breaks well-defined problems into steps and solves them with guidance. Recognizes when to escalate.",
				Intermediate: "Independently frames ambiguous problems, evaluates trade-offs between options, and validates solutions against the original need.",
				Advanced:     "Solves novel, cross-cutting problems under uncertainty, anticipates second-order effects, and teaches structured problem-solving to others.",
				Expert:       "Resolves the organization's hardest ambiguous problems, invents frameworks others reuse, and is the escalation point for critical decisions.",
			},
		},
	},
	{
		IdentifiedSkillData: IdentifiedSkillData{
			Skill: Skill{ID: "adaptability", Name: "Adaptability", Category: CategorySoft,
				Description: "Adjusting approach and priorities effectively as circumstances change."},
			Rubric: Rubric{
				SkillID:      "adaptability",
				Foundational: "Accepts changes in direction without losing momentum and learns new tools when asked.",
				Intermediate: "Re-plans own work quickly when priorities shift, stays effective in unfamiliar domains, and helps teammates through transitions.",
				Advanced:     "Leads teams through significant change: reframes goals, redesigns processes and keeps delivery steady while the ground shifts.",
				Expert:       "Builds organizational resilience: anticipates market and technology shifts, prepares teams ahead of change, and turns disruption into advantage.",
			},
		},
	},
	{
		IdentifiedSkillData: IdentifiedSkillData{
			Skill: Skill{ID: "continuous_learning", Name: "Continuous Learning", Category: CategorySoft,
				Description: "Deliberately growing skills and knowledge over time."},
			Rubric: Rubric{
				SkillID:      "continuous_learning",
				Foundational: "Keeps current in own role through courses, reading or practice when prompted by gaps.",
				Intermediate: "Maintains a deliberate learning habit, seeks feedback actively, and applies new techniques to real work unprompted.",
				Advanced:     "Drives learning for a team: identifies capability gaps, curates material, mentors others and models learning in public.",
				Expert:       "Shapes learning culture for an organization: builds development programs, sponsors communities of practice, and is a recognized authority in the field.",
			},
		},
	},
	{
		IdentifiedSkillData: IdentifiedSkillData{
			Skill: Skill{ID: "leadership", Name: "Leadership", Category: CategorySoft,
				Description: "Setting direction, building alignment and helping others succeed."},
			Rubric: Rubric{
				SkillID:      "leadership",
				Foundational: "Takes ownership of own commitments and occasionally guides peers on familiar tasks.",
				Intermediate: "Leads small initiatives end to end: sets goals, coordinates contributors, and communicates progress and setbacks honestly.",
				Advanced:     "Leads through others: grows individuals, delegates effectively, builds alignment across stakeholders and is accountable for team outcomes.",
				Expert:       "Sets vision at organizational level, develops other leaders, and makes consequential decisions under uncertainty with broad trust.",
			},
		},
	},
}

func init() {
	for i := range universalEnablerDefs {
		universalEnablerDefs[i].IsUniversalEnabler = true
	}
}
