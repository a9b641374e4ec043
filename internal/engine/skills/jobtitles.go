package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/benjamayden/skillsradar/internal/engine"
)

const jobTitlesPrompt = `You are an expert career advisor. Based on the user's skill profile below, which
includes competency levels (Foundational, Intermediate, Advanced, Expert), suggest 5-7
potential job titles that align with their current capabilities.

User skills profile:
%s

Consider roles in product management, UX/UI design, software development, data analysis,
program management and business analysis. Calibrate seniority to the proficiency levels:
mostly Foundational/Intermediate profiles get entry to mid-level roles; prominent
Advanced/Expert skills justify senior or specialized roles.

Return a single JSON object: {"jobTitles": ["...", "..."]}
The entire response must be valid JSON with only that key. No markdown fences.`

type jobTitlesOutput struct {
	JobTitles []string `json:"jobTitles"`
}

// SkillRatingPair feeds one rated skill into the job-title suggestion.
type SkillRatingPair struct {
	SkillName string
	Rating    RubricLevel
}

// SuggestJobTitles asks the provider for job titles matching the rated skill
// profile. An empty profile short-circuits to an empty list without a call.
func SuggestJobTitles(ctx context.Context, profile []SkillRatingPair) ([]string, error) {
	if len(profile) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for _, p := range profile {
		fmt.Fprintf(&sb, "- %s (Proficiency: %s)\n", p.SkillName, p.Rating)
	}

	res, err := engine.Generate(ctx, fmt.Sprintf(jobTitlesPrompt, sb.String()), engine.GenerateOptions{
		Temperature:    0.5,
		ResponseIsJSON: true,
	})
	if err != nil {
		return nil, &engine.ProviderError{Stage: "suggest_job_titles", Err: err}
	}

	payload, err := engine.ExtractJSONPayload(res.Text)
	if err != nil {
		return nil, err
	}
	var out jobTitlesOutput
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("job titles parse: %w (raw: %s)", err, engine.TruncateRunes(res.Text, 200, "..."))
	}
	return validateJobTitles(out.JobTitles), nil
}
