// Package skills implements the career-development domain: skill
// identification and rubric generation, multi-rater ratings, the skill
// lifecycle (active/mastered/swap), growth plans and job-title suggestions.
package skills

import (
	"github.com/benjamayden/skillsradar/internal/engine"
)

// SkillCategory is the hard/soft split the generator must use verbatim.
type SkillCategory string

const (
	CategoryHard SkillCategory = "Hard Skill"
	CategorySoft SkillCategory = "Soft Skill"
)

// RubricLevel is the ordered proficiency enumeration. The ordering is
// load-bearing: mastery checks and chart scaling depend on it.
type RubricLevel string

const (
	LevelFoundational RubricLevel = "Foundational"
	LevelIntermediate RubricLevel = "Intermediate"
	LevelAdvanced     RubricLevel = "Advanced"
	LevelExpert       RubricLevel = "Expert"
)

// RubricLevelsOrdered lists levels from lowest to highest.
var RubricLevelsOrdered = []RubricLevel{
	LevelFoundational, LevelIntermediate, LevelAdvanced, LevelExpert,
}

// MaxRubricOrdinal is the chart ceiling.
const MaxRubricOrdinal = 4

// Ordinal maps a level to 1..4, or 0 for an unknown level.
func (l RubricLevel) Ordinal() int {
	switch l {
	case LevelFoundational:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	}
	return 0
}

// Valid reports whether l is one of the four known levels.
func (l RubricLevel) Valid() bool { return l.Ordinal() > 0 }

// Rubric holds the four market-standard proficiency descriptions for one
// skill. All four fields must be non-empty; absence of any one invalidates
// the whole skill record.
type Rubric struct {
	SkillID      string `json:"skillId"`
	Foundational string `json:"foundational"`
	Intermediate string `json:"intermediate"`
	Advanced     string `json:"advanced"`
	Expert       string `json:"expert"`
}

// Complete reports whether every level description is present.
func (r Rubric) Complete() bool {
	return r.Foundational != "" && r.Intermediate != "" && r.Advanced != "" && r.Expert != ""
}

// Skill is the identity of one skill: stable slug id, display name, category.
type Skill struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    SkillCategory `json:"category"`
	Description string        `json:"description,omitempty"`
}

// IdentifiedSkillData is a Skill plus its generated rubric.
type IdentifiedSkillData struct {
	Skill
	Rubric Rubric `json:"rubric"`
}

// SkillCandidate is a superset of IdentifiedSkillData with ranking metadata
// from the market-relevance analysis.
type SkillCandidate struct {
	IdentifiedSkillData
	RelevanceScore     int     `json:"relevanceScore"` // 1-10
	GoalAlignment      string  `json:"goalAlignment"`
	StrategyAlignment  string  `json:"strategyAlignment"`
	MarketAlignment    string  `json:"marketAlignment"`
	GoalRank           int     `json:"goalRank"`
	StrategyRank       int     `json:"strategyRank"`
	MarketRank         int     `json:"marketRank"`
	OverallRank        float64 `json:"overallRank"` // weighted; lower = better
	IsUniversalEnabler bool    `json:"isUniversalEnabler"`
}

// Overall rank weights: goal alignment dominates, strategy and market split
// the remainder.
const (
	goalRankWeight     = 0.4
	strategyRankWeight = 0.3
	marketRankWeight   = 0.3
)

// ComputeOverallRank derives the weighted combination of the three rank
// integers. Lower is better.
func ComputeOverallRank(goal, strategy, market int) float64 {
	return goalRankWeight*float64(goal) + strategyRankWeight*float64(strategy) + marketRankWeight*float64(market)
}

// Rater is a person (self or other) who assigns rubric levels.
// Exactly one rater per session has IsSelf=true; it cannot be deleted.
type Rater struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsSelf bool   `json:"isSelf"`
}

// SelfRaterID is the reserved id of the canonical self-rater.
const SelfRaterID = "self"

// NewSelfRater returns the session's initial self-assessment rater.
func NewSelfRater() Rater {
	return Rater{ID: SelfRaterID, Name: "Self-Assessed", IsSelf: true}
}

// SkillRatingEntry is one rater's level for one skill. At most one entry per
// (skill, rater) pair — upsert semantics, not append.
type SkillRatingEntry struct {
	RaterID string      `json:"raterId"`
	Rating  RubricLevel `json:"rating"`
}

// SkillStatus tracks each skill's lifecycle position. Archived is reserved
// for swapped-out skills.
type SkillStatus string

const (
	StatusActive   SkillStatus = "active"
	StatusMastered SkillStatus = "mastered"
	StatusArchived SkillStatus = "archived"
)

// Selection and active-set caps.
const (
	MaxPersonalSkills = 6
	MaxActiveSkills   = MaxPersonalSkills + len(universalEnablerIDs) // 12
	MaxFocusSkills    = 3
)

// SkillBank is the durable skill pool: which ids are shown, which are hidden
// as mastered, and the full record of every skill ever generated.
// AllSkillsData is never pruned; mastered and swapped-out skills stay
// queryable and swappable.
type SkillBank struct {
	ActiveSkills   []string                       `json:"activeSkills"`
	MasteredSkills []string                       `json:"masteredSkills"`
	AllSkillsData  map[string]IdentifiedSkillData `json:"allSkillsData"`
}

// SkillSelectionState is the transient selection step between candidate
// generation and SkillBank construction.
type SkillSelectionState struct {
	Candidates             []SkillCandidate `json:"candidates"`
	UniversalEnablers      []SkillCandidate `json:"universalEnablers"`
	SelectedPersonalSkills []string         `json:"selectedPersonalSkills"`
	RecommendedFocus       []string         `json:"recommendedFocus"`
	Summary                string           `json:"summary"`
}

// UserInputData is the six free-text fields driving skill identification.
type UserInputData struct {
	HardSkills          string `json:"hardSkills"`
	ResumeInfo          string `json:"resumeInfo"`
	MotivationalContext string `json:"motivationalContext"`
	FiveYearGoals       string `json:"fiveYearGoals"`
	TeamStrategy        string `json:"teamStrategy"`
	CompanyStrategy     string `json:"companyStrategy"`
}

// LearningResource is one curated resource in a growth plan.
type LearningResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// DimensionAnalysis is the 4-part strategic decomposition of a growth plan.
type DimensionAnalysis struct {
	Breadth string `json:"breadth"`
	Depth   string `json:"depth"`
	Reach   string `json:"reach"`
	Range   string `json:"range"`
}

// GrowthPlan is the per-skill growth narrative. Created fresh on each
// generation call; the latest replaces any prior version.
type GrowthPlan struct {
	SkillID                   string                  `json:"skillId"`
	SkillName                 string                  `json:"skillName"`
	CurrentProficiencyContext string                  `json:"currentProficiencyContext"`
	TargetProficiencyContext  string                  `json:"targetProficiencyContext"`
	Dimensions                DimensionAnalysis       `json:"dimensions"`
	LearningResources         []LearningResource      `json:"learningResources"`
	SearchAttributions        []engine.GroundingChunk `json:"searchAttributions,omitempty"`
}
