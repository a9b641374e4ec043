package skills

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/benjamayden/skillsradar/internal/engine"
)

// Section markers the growth-plan prompt instructs the model to emit
// verbatim. Parsing is literal-string matching behind the engine extractor;
// if the provider ever supports structured output natively, only that
// adapter changes.
const (
	sectionDimensions = "### GROWTH DIMENSION ANALYSIS ###"
	sectionCurrent    = "### YOUR CURRENT STANDING ###"
	sectionTarget     = "### DEVELOPING TOWARDS YOUR GOALS ###"
	sectionResources  = "### LEARNING RESOURCES ###"
)

const growthPlanPrompt = `The user has selected %q as a focus skill for their professional growth.
Their current self-assessed competency in this skill is %q.
Their stated 5-year career goals are: %q.
Job titles they are considering: %s.

Task: provide a structured growth plan. Use the following section headers EXACTLY as
written, followed by your content for that section:

%s
(Analyze growth in this skill along four dimensions. Present each on its own line as a
bold label followed by 1-2 sentences:
**Breadth**: how widening the contexts where the skill is applied accelerates growth.
**Depth**: how deepening technical or domain mastery of the skill pays off.
**Reach**: how growing the audience and stakeholders influenced through the skill matters.
**Range**: how extending the scope of decisions the skill supports raises impact.)

%s
(Describe what the user's current level typically means in the job market - responsibilities,
expectations, type of tasks. 2-3 sentences.)

%s
(Considering their 5-year goals and candidate job titles, describe what a higher proficiency
level would entail and what roles it unlocks. 2-3 sentences.)

%s
(List 3-5 curated learning resources. For each, use strictly this format on separate lines:
Resource Title: [title]
Resource URL: [full valid URL starting with http:// or https://]
Resource Type: [Article, Online Course, Community, Tool, Book, Video, Documentation, Workshop, Certification]
--- (separator between resources)
Focus on high-quality, reputable resources.)

Structure your entire response under these exact headers.`

// Per-dimension fallback when a sub-section is absent from the response.
var dimensionFallbacks = map[string]string{
	"Breadth": "Analysis of how broadening application contexts grows this skill could not be generated.",
	"Depth":   "Analysis of how deepening mastery grows this skill could not be generated.",
	"Reach":   "Analysis of how expanding audience and influence grows this skill could not be generated.",
	"Range":   "Analysis of how widening decision scope grows this skill could not be generated.",
}

// dimensionRe matches one labeled-bold-term marker, e.g. "**Depth**:".
// The content for a label runs from its marker to the next marker or
// end of the section.
var dimensionRe = regexp.MustCompile(`\*\*(Breadth|Depth|Reach|Range)\*\*\s*:?`)

// GenerateGrowthPlan runs a single grounded call for one focus skill and
// parses the section-delimited response. All-or-nothing per call; the
// orchestrating loop is responsible for partial-success accumulation across
// skills.
func GenerateGrowthPlan(ctx context.Context, skill IdentifiedSkillData, currentRating RubricLevel, fiveYearGoals string, jobTitles []string) (*GrowthPlan, error) {
	titles := "(none suggested yet)"
	if len(jobTitles) > 0 {
		titles = strings.Join(jobTitles, ", ")
	}
	prompt := fmt.Sprintf(growthPlanPrompt,
		skill.Name, string(currentRating), fiveYearGoals, titles,
		sectionDimensions, sectionCurrent, sectionTarget, sectionResources,
	)

	res, err := engine.Generate(ctx, prompt, engine.GenerateOptions{
		GroundWithSearch: true,
		GroundingQuery:   fmt.Sprintf("%s skill growth plan learning resources", skill.Name),
		Temperature:      0.6,
	})
	if err != nil {
		return nil, &engine.ProviderError{Stage: "growth_plan", Skill: skill.Name, Err: err}
	}

	plan := ParseGrowthPlanText(res.Text)
	plan.SkillID = skill.ID
	plan.SkillName = skill.Name
	plan.SearchAttributions = res.Attributions
	return plan, nil
}

// ParseGrowthPlanText turns the raw sectioned response into a GrowthPlan.
// Missing sections degrade to fallback text; a missing resource never aborts
// the rest.
func ParseGrowthPlanText(raw string) *GrowthPlan {
	sections := engine.ExtractSections(raw, []string{
		sectionDimensions, sectionCurrent, sectionTarget, sectionResources,
	})

	plan := &GrowthPlan{
		CurrentProficiencyContext: engine.StripInlineCitations(sections[sectionCurrent]),
		TargetProficiencyContext:  engine.StripInlineCitations(sections[sectionTarget]),
		Dimensions:                parseDimensions(sections[sectionDimensions]),
	}

	for _, rec := range engine.ExtractDelimitedRecords(sections[sectionResources],
		[]string{"Resource Title", "Resource URL", "Resource Type"}) {
		url := strings.TrimSpace(rec["Resource URL"])
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			continue
		}
		plan.LearningResources = append(plan.LearningResources, LearningResource{
			Title: engine.StripInlineCitations(rec["Resource Title"]),
			URL:   url,
			Type:  engine.StripInlineCitations(rec["Resource Type"]),
		})
	}
	return plan
}

// parseDimensions extracts the four labeled sub-sections, falling back
// per-dimension when one is absent.
func parseDimensions(text string) DimensionAnalysis {
	found := map[string]string{}
	matches := dimensionRe.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		label := text[m[2]:m[3]]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(text[m[1]:end])
		if body != "" && found[label] == "" {
			found[label] = engine.StripInlineCitations(body)
		}
	}
	get := func(label string) string {
		if v := found[label]; v != "" {
			return v
		}
		return dimensionFallbacks[label]
	}
	return DimensionAnalysis{
		Breadth: get("Breadth"),
		Depth:   get("Depth"),
		Reach:   get("Reach"),
		Range:   get("Range"),
	}
}
