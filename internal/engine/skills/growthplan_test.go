package skills

import (
	"strings"
	"testing"

	"github.com/benjamayden/skillsradar/internal/engine"
)

const growthPlanResponse = `### GROWTH DIMENSION ANALYSIS ###
**Breadth**: Apply the skill across adjacent product areas. [1]
**Depth**: Go deeper into internals and tooling.
**Reach**: Present findings to wider stakeholder groups.
**Range**: Take on decisions with larger blast radius.

### YOUR CURRENT STANDING ###
At this level you are trusted with scoped workstreams. [2, 3]

### DEVELOPING TOWARDS YOUR GOALS ###
A higher proficiency unlocks staff-level roles.

### LEARNING RESOURCES ###
Resource Title: Effective Go
Resource URL: https://go.dev/doc/effective_go
Resource Type: Documentation
---
Resource Title: Ungrounded Resource
Resource URL: not-a-url
Resource Type: Article
---
Resource Title: Systems Course
Resource URL: https://example.com/systems
Resource Type: Online Course`

func TestParseGrowthPlanText(t *testing.T) {
	plan := ParseGrowthPlanText(growthPlanResponse)

	if plan.CurrentProficiencyContext != "At this level you are trusted with scoped workstreams." {
		t.Errorf("current = %q (citations should be stripped)", plan.CurrentProficiencyContext)
	}
	if plan.TargetProficiencyContext != "A higher proficiency unlocks staff-level roles." {
		t.Errorf("target = %q", plan.TargetProficiencyContext)
	}

	d := plan.Dimensions
	if d.Breadth != "Apply the skill across adjacent product areas." {
		t.Errorf("Breadth = %q", d.Breadth)
	}
	if !strings.Contains(d.Depth, "internals") || !strings.Contains(d.Reach, "stakeholder") || !strings.Contains(d.Range, "blast radius") {
		t.Errorf("dimensions = %+v", d)
	}

	if len(plan.LearningResources) != 2 {
		t.Fatalf("resources = %d, want 2 (non-http URL dropped)", len(plan.LearningResources))
	}
	if plan.LearningResources[0].Title != "Effective Go" || plan.LearningResources[0].Type != "Documentation" {
		t.Errorf("resource[0] = %+v", plan.LearningResources[0])
	}
	if plan.LearningResources[1].URL != "https://example.com/systems" {
		t.Errorf("resource[1] = %+v", plan.LearningResources[1])
	}
}

func TestParseGrowthPlanTextMissingSections(t *testing.T) {
	plan := ParseGrowthPlanText("### YOUR CURRENT STANDING ###\nSome standing.")

	if plan.CurrentProficiencyContext != "Some standing." {
		t.Errorf("current = %q", plan.CurrentProficiencyContext)
	}
	if plan.TargetProficiencyContext != engine.SectionFallback {
		t.Errorf("target = %q, want fallback", plan.TargetProficiencyContext)
	}
	if plan.Dimensions.Breadth != dimensionFallbacks["Breadth"] {
		t.Errorf("Breadth = %q, want fallback", plan.Dimensions.Breadth)
	}
	if len(plan.LearningResources) != 0 {
		t.Errorf("resources = %v, want none", plan.LearningResources)
	}
}

func TestParseDimensionsPartial(t *testing.T) {
	d := parseDimensions("**Depth**: only depth provided")
	if d.Depth != "only depth provided" {
		t.Errorf("Depth = %q", d.Depth)
	}
	if d.Breadth != dimensionFallbacks["Breadth"] {
		t.Errorf("Breadth = %q, want fallback", d.Breadth)
	}
	if d.Reach != dimensionFallbacks["Reach"] || d.Range != dimensionFallbacks["Range"] {
		t.Errorf("missing labels did not fall back: %+v", d)
	}
}
