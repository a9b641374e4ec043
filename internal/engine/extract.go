package engine

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Response extraction — the adapter between free-form LLM text and the typed
// pipeline. All knowledge of fences, section markers and citation noise is
// confined to this file; callers depend on the extracted shape only.

var (
	fenceJSONRe    = regexp.MustCompile("(?s)^```json\\s*\\n?(.*?)\\n?\\s*```$")
	fenceGenericRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\n?\\s*```$")

	citationBracketRe = regexp.MustCompile(`\s*\[\d+(?:\s*,\s*\d+)*\]`)
	citationSourceRe  = regexp.MustCompile(`(?i)\s*\(see source \d+(?:\s*,\s*\d+)*\)`)
)

// ExtractJSONPayload strips a ```json fence (or a generic ``` fence) from raw
// model output and verifies the remainder parses as JSON. The provider is not
// contractually guaranteed to emit fence-free JSON even when instructed to.
func ExtractJSONPayload(raw string) (json.RawMessage, error) {
	s := strings.TrimSpace(raw)
	if m := fenceJSONRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	} else if m := fenceGenericRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	var probe any
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		hint := "response is not valid JSON"
		if strings.Contains(s, "```") {
			hint = "response contains code fences that could not be extracted"
		}
		return nil, &MalformedResponseError{Hint: hint, Err: err}
	}
	return json.RawMessage(s), nil
}

// SectionFallback is returned for any requested header the model omitted.
// Partial success is preferred over failing the whole call for narrative text.
const SectionFallback = "Detailed analysis for this section could not be generated."

// ExtractSections splits raw text into the substring following each literal
// header marker, up to the next known header or end-of-text. Headers missing
// from the text map to SectionFallback.
func ExtractSections(raw string, headers []string) map[string]string {
	out := make(map[string]string, len(headers))

	starts := make(map[string]int, len(headers))
	var positions []int
	for _, h := range headers {
		idx := strings.Index(raw, h)
		starts[h] = idx
		if idx >= 0 {
			positions = append(positions, idx)
		}
	}

	for _, h := range headers {
		idx := starts[h]
		if idx < 0 {
			out[h] = SectionFallback
			continue
		}
		begin := idx + len(h)
		end := len(raw)
		for _, p := range positions {
			if p > idx && p < end {
				end = p
			}
		}
		if end < begin {
			end = begin
		}
		body := strings.TrimSpace(raw[begin:end])
		if body == "" {
			body = SectionFallback
		}
		out[h] = body
	}
	return out
}

// ExtractDelimitedRecords parses repeated "Key: value" blocks separated by a
// literal "---" line. Records missing any of the required fields are dropped;
// a malformed record never aborts extraction of the remaining ones.
func ExtractDelimitedRecords(raw string, required []string) []map[string]string {
	var records []map[string]string

	for _, block := range splitOnDelimiter(raw) {
		rec := parseRecordBlock(block)
		if rec == nil {
			continue
		}
		ok := true
		for _, f := range required {
			if strings.TrimSpace(rec[f]) == "" {
				ok = false
				break
			}
		}
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

func splitOnDelimiter(raw string) []string {
	var blocks []string
	var cur []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "---" {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = cur[:0]
			continue
		}
		cur = append(cur, line)
	}
	blocks = append(blocks, strings.Join(cur, "\n"))
	return blocks
}

func parseRecordBlock(block string) map[string]string {
	rec := make(map[string]string)
	var lastKey string
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if key, val, found := strings.Cut(trimmed, ":"); found && !strings.HasPrefix(trimmed, "http") {
			if k := strings.TrimSpace(key); isRecordKey(k) {
				rec[k] = strings.TrimSpace(val)
				lastKey = k
				continue
			}
		}
		// Continuation of a wrapped value.
		if lastKey != "" {
			rec[lastKey] = strings.TrimSpace(rec[lastKey] + " " + trimmed)
		}
	}
	if len(rec) == 0 {
		return nil
	}
	return rec
}

// isRecordKey accepts multi-word keys like "Resource Title".
func isRecordKey(k string) bool {
	if k == "" || len(k) > 40 {
		return false
	}
	for _, r := range k {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == ' ') {
			return false
		}
	}
	return true
}

// StripInlineCitations removes bracketed numeric citation markers ("[1]",
// "[2, 3]") and "(see source N)" annotations that grounded generation
// sometimes injects into prose. These must not leak into rubric or
// narrative text shown to users.
func StripInlineCitations(s string) string {
	s = citationBracketRe.ReplaceAllString(s, "")
	s = citationSourceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
