package engine

import (
	"errors"
	"testing"
)

func TestExtractJSONPayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "bare json",
			raw:  `{"candidates": []}`,
			want: `{"candidates": []}`,
		},
		{
			name: "json fence",
			raw:  "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "generic fence",
			raw:  "```\n[1, 2]\n```",
			want: `[1, 2]`,
		},
		{
			name: "fence with surrounding whitespace",
			raw:  "  ```json\n{\"a\": 1}\n```  ",
			want: `{"a": 1}`,
		},
		{
			name:    "not json",
			raw:     "Sure! Here are your skills.",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "fence mid-text",
			raw:     "Here you go:\n```json\n{\"a\": 1}\n```",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONPayload(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractJSONPayload() = %q, want error", got)
				}
				if !errors.Is(err, ErrMalformedResponse) {
					t.Errorf("error = %v, want ErrMalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractJSONPayload() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ExtractJSONPayload() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSections(t *testing.T) {
	raw := "### A ###\nfirst body\n### B ###\nsecond body"
	headers := []string{"### A ###", "### B ###", "### C ###"}

	got := ExtractSections(raw, headers)

	if got["### A ###"] != "first body" {
		t.Errorf("section A = %q", got["### A ###"])
	}
	if got["### B ###"] != "second body" {
		t.Errorf("section B = %q", got["### B ###"])
	}
	if got["### C ###"] != SectionFallback {
		t.Errorf("missing section = %q, want fallback", got["### C ###"])
	}
}

func TestExtractSectionsOutOfOrder(t *testing.T) {
	raw := "### B ###\nsecond\n### A ###\nfirst"
	got := ExtractSections(raw, []string{"### A ###", "### B ###"})
	if got["### A ###"] != "first" {
		t.Errorf("section A = %q", got["### A ###"])
	}
	if got["### B ###"] != "second" {
		t.Errorf("section B = %q", got["### B ###"])
	}
}

func TestExtractDelimitedRecords(t *testing.T) {
	raw := `Resource Title: Effective Go
Resource URL: https://go.dev/doc/effective_go
Resource Type: Documentation
---
Resource Title: Broken entry without URL
Resource Type: Article
---
Resource Title: Long Course
Resource URL: https://example.com/course
Resource Type: Online Course
  with a wrapped continuation line`

	records := ExtractDelimitedRecords(raw, []string{"Resource Title", "Resource URL", "Resource Type"})
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["Resource Title"] != "Effective Go" {
		t.Errorf("title = %q", records[0]["Resource Title"])
	}
	if records[0]["Resource URL"] != "https://go.dev/doc/effective_go" {
		t.Errorf("url = %q", records[0]["Resource URL"])
	}
	if records[1]["Resource Type"] != "Online Course with a wrapped continuation line" {
		t.Errorf("continuation = %q", records[1]["Resource Type"])
	}
}

func TestExtractDelimitedRecordsEmpty(t *testing.T) {
	if got := ExtractDelimitedRecords("no records here", []string{"Key"}); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestStripInlineCitations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single marker", "Strong skill [1]", "Strong skill"},
		{"multi marker", "Strong [1, 3] and growing [12]", "Strong and growing"},
		{"see source", "Relevant (see source 2) today", "Relevant today"},
		{"see source case", "Relevant (See Source 2, 3)", "Relevant"},
		{"clean text", "No citations here", "No citations here"},
		{"only citation", "[4]", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripInlineCitations(tt.in); got != tt.want {
				t.Errorf("StripInlineCitations(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
