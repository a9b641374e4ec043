package skills

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/benjamayden/skillsradar/internal/engine"
)

// fakeGenerator returns canned text, recording the last prompt.
type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string, _ engine.GenerateOptions) (*engine.GenerateResult, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return &engine.GenerateResult{Text: f.text}, nil
}

const identifyResponse = `{
  "candidates": [
    {
      "id": "systems_design", "name": "Systems Design", "category": "Hard Skill",
      "description": "Designing scalable systems",
      "rubric": {"foundational": "f", "intermediate": "i", "advanced": "a", "expert": "e"},
      "relevanceScore": 9, "goalAlignment": "g", "strategyAlignment": "s", "marketAlignment": "m",
      "goalRank": 1, "strategyRank": 1, "marketRank": 2
    },
    {
      "id": "broken", "name": "", "category": "Hard Skill",
      "rubric": {"foundational": "f", "intermediate": "i", "advanced": "a", "expert": "e"}
    },
    {
      "id": "sql_tuning", "name": "SQL Tuning", "category": "Hard Skill",
      "description": "Query optimization",
      "rubric": {"foundational": "f", "intermediate": "i", "advanced": "a", "expert": "e"},
      "relevanceScore": 7, "goalRank": 2, "strategyRank": 3, "marketRank": 1
    }
  ],
  "recommendedFocus": ["systems_design", "broken", "sql_tuning"],
  "summary": "A systems-heavy profile. [1]"
}`

func TestGenerateCandidates(t *testing.T) {
	fake := &fakeGenerator{text: identifyResponse}
	engine.SetGenerator(fake)

	state, _, err := GenerateCandidates(context.Background(), UserInputData{
		HardSkills:    "Go, SQL",
		FiveYearGoals: "Staff engineer",
	})
	if err != nil {
		t.Fatalf("GenerateCandidates() error = %v", err)
	}

	if len(state.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2 (malformed one dropped)", len(state.Candidates))
	}
	if len(state.UniversalEnablers) != 6 {
		t.Errorf("enablers = %d, want 6", len(state.UniversalEnablers))
	}
	if state.Summary != "A systems-heavy profile." {
		t.Errorf("summary = %q, citations not stripped", state.Summary)
	}

	// Recommended focus keeps only surviving ids and pre-selects them.
	want := []string{"systems_design", "sql_tuning"}
	if len(state.RecommendedFocus) != len(want) {
		t.Fatalf("recommendedFocus = %v", state.RecommendedFocus)
	}
	for i, id := range want {
		if state.RecommendedFocus[i] != id {
			t.Errorf("recommendedFocus[%d] = %s, want %s", i, state.RecommendedFocus[i], id)
		}
		if state.SelectedPersonalSkills[i] != id {
			t.Errorf("selected[%d] = %s, want %s", i, state.SelectedPersonalSkills[i], id)
		}
	}

	if len(fake.prompts) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(fake.prompts))
	}
}

func TestGenerateCandidatesMalformedResponse(t *testing.T) {
	engine.SetGenerator(&fakeGenerator{text: "I could not produce JSON, sorry."})

	_, _, err := GenerateCandidates(context.Background(), UserInputData{HardSkills: "Go"})
	if !errors.Is(err, engine.ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestGenerateCandidatesAllRejected(t *testing.T) {
	engine.SetGenerator(&fakeGenerator{text: `{"candidates": [{"id": "", "name": ""}]}`})

	_, _, err := GenerateCandidates(context.Background(), UserInputData{HardSkills: "Go"})
	if !errors.Is(err, ErrValidationRejectedAll) {
		t.Errorf("error = %v, want ErrValidationRejectedAll", err)
	}
}

func TestGenerateCandidatesProviderError(t *testing.T) {
	engine.SetGenerator(&fakeGenerator{err: &engine.ProviderError{Stage: "generate", Err: fmt.Errorf("boom")}})

	_, _, err := GenerateCandidates(context.Background(), UserInputData{HardSkills: "Go"})
	if !errors.Is(err, engine.ErrProviderCall) {
		t.Errorf("error = %v, want ErrProviderCall", err)
	}
}

func TestSuggestJobTitles(t *testing.T) {
	engine.SetGenerator(&fakeGenerator{text: `{"jobTitles": [" Staff Engineer ", "", "Platform Lead"]}`})

	titles, err := SuggestJobTitles(context.Background(), []SkillRatingPair{
		{SkillName: "Go", Rating: LevelAdvanced},
	})
	if err != nil {
		t.Fatalf("SuggestJobTitles() error = %v", err)
	}
	if len(titles) != 2 || titles[0] != "Staff Engineer" || titles[1] != "Platform Lead" {
		t.Errorf("titles = %v", titles)
	}
}

func TestSuggestJobTitlesEmptyProfile(t *testing.T) {
	fake := &fakeGenerator{text: `{"jobTitles": ["X"]}`}
	engine.SetGenerator(fake)

	titles, err := SuggestJobTitles(context.Background(), nil)
	if err != nil {
		t.Fatalf("SuggestJobTitles() error = %v", err)
	}
	if titles != nil {
		t.Errorf("titles = %v, want nil", titles)
	}
	if len(fake.prompts) != 0 {
		t.Error("empty profile still called the provider")
	}
}
