package skills

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ExportDocument is the portable snapshot of a whole session. It is the
// on-disk format for local persistence and the payload of the export and
// import operations.
type ExportDocument struct {
	FormatVersion string    `json:"formatVersion"`
	ExportedAt    time.Time `json:"exportedAt"`

	UserInput *UserInputData `json:"userInput,omitempty"`

	SkillBank     *SkillBank             `json:"skillBank,omitempty"`
	SkillStatuses map[string]SkillStatus `json:"skillStatuses,omitempty"`

	Raters             []Rater  `json:"raters,omitempty"`
	ActiveRaterID      string   `json:"activeRaterId,omitempty"`
	ComparisonRaterIDs []string `json:"comparisonRaterIds,omitempty"`
	ShowAverageOnRadar bool     `json:"showAverageOnRadar,omitempty"`

	UserRatings RatingStore `json:"userRatings,omitempty"`
	FocusSkills []string    `json:"focusSkills,omitempty"`

	GrowthPlans        []GrowthPlan `json:"growthPlans,omitempty"`
	SuggestedJobTitles []string     `json:"suggestedJobTitles,omitempty"`

	Theme     string `json:"theme,omitempty"`
	ActiveTab string `json:"activeTab,omitempty"`

	// Pre-2.0 documents stored a flat skill list instead of a bank.
	IdentifiedSkills []IdentifiedSkillData `json:"identifiedSkills,omitempty"`
}

// Export snapshots the session into a document stamped with the current
// format version.
func (s *Session) Export() *ExportDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportLocked()
}

func (s *Session) exportLocked() *ExportDocument {
	bank := copyBank(s.bank)
	statuses := make(map[string]SkillStatus, len(s.statuses))
	for k, v := range s.statuses {
		statuses[k] = v
	}
	doc := &ExportDocument{
		FormatVersion:      FormatVersion,
		ExportedAt:         time.Now().UTC(),
		SkillBank:          &bank,
		SkillStatuses:      statuses,
		Raters:             append([]Rater(nil), s.raters...),
		ActiveRaterID:      s.activeRaterID,
		ComparisonRaterIDs: append([]string(nil), s.comparisonRaterIDs...),
		ShowAverageOnRadar: s.showAverageOnRadar,
		UserRatings:        s.ratings.Clone(),
		FocusSkills:        append([]string(nil), s.focusSkills...),
		GrowthPlans:        append([]GrowthPlan(nil), s.growthPlans...),
		SuggestedJobTitles: append([]string(nil), s.suggestedJobTitles...),
		Theme:              s.theme,
		ActiveTab:          s.activeTab,
	}
	if s.userInput != nil {
		input := *s.userInput
		doc.UserInput = &input
	}
	return doc
}

// Import replaces the whole session from an exported document. The incoming
// data is validated and normalized before anything is touched, so a rejected
// import leaves the session exactly as it was.
func (s *Session) Import(data []byte) error {
	doc, err := DecodeExport(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.userInput = doc.UserInput
	s.selection = nil
	s.bank = *doc.SkillBank
	s.statuses = doc.SkillStatuses
	s.raters = doc.Raters
	s.activeRaterID = doc.ActiveRaterID
	s.comparisonRaterIDs = doc.ComparisonRaterIDs
	s.showAverageOnRadar = doc.ShowAverageOnRadar
	s.ratings = doc.UserRatings
	s.focusSkills = doc.FocusSkills
	s.growthPlans = doc.GrowthPlans
	s.suggestedJobTitles = doc.SuggestedJobTitles
	s.theme = doc.Theme
	s.activeTab = doc.ActiveTab
	s.prevRatings = nil
	s.prevNames = nil
	if len(s.bank.AllSkillsData) > 0 {
		s.state = StateReady
	} else {
		s.state = StateIdle
	}
	s.commitLocked()
	return nil
}

// DecodeExport parses, validates and normalizes an exported document. Legacy
// documents carrying a flat identifiedSkills list are upcast to a bank with
// every skill active. The returned document always has a non-nil bank,
// exactly one self rater, and internally consistent ids.
func DecodeExport(data []byte) (*ExportDocument, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ImportError{Reason: "document is not a JSON object", Err: err}
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ImportError{Reason: "document does not match the export shape", Err: err}
	}

	switch {
	case doc.SkillBank != nil && doc.SkillBank.AllSkillsData != nil:
		// Current format.
	case doc.IdentifiedSkills != nil:
		doc.SkillBank = upcastLegacySkills(doc.IdentifiedSkills)
		doc.IdentifiedSkills = nil
		slog.Info("import: upgraded legacy document", slog.Int("skills", len(doc.SkillBank.ActiveSkills)))
	default:
		return nil, &ImportError{Reason: "document has neither skillBank.allSkillsData nor identifiedSkills"}
	}

	normalizeBank(doc.SkillBank)
	doc.SkillStatuses = rebuildStatuses(doc.SkillBank, doc.SkillStatuses)
	normalizeRaters(&doc)
	normalizeRatings(&doc)

	doc.FocusSkills = filterKnownSkills(doc.FocusSkills, doc.SkillBank, MaxFocusSkills)
	doc.GrowthPlans = filterPlans(doc.GrowthPlans, doc.SkillBank)
	if doc.UserRatings == nil {
		doc.UserRatings = RatingStore{}
	}
	return &doc, nil
}

// upcastLegacySkills turns a flat skill list into a bank where every skill
// is active. Nothing is invented and nothing is dropped.
func upcastLegacySkills(skills []IdentifiedSkillData) *SkillBank {
	bank := &SkillBank{AllSkillsData: make(map[string]IdentifiedSkillData, len(skills))}
	for _, sk := range skills {
		if sk.ID == "" {
			slog.Warn("import: legacy skill without id dropped", slog.String("name", sk.Name))
			continue
		}
		if _, dup := bank.AllSkillsData[sk.ID]; dup {
			continue
		}
		bank.AllSkillsData[sk.ID] = sk
		bank.ActiveSkills = append(bank.ActiveSkills, sk.ID)
	}
	return bank
}

// normalizeBank drops dangling ids from the active and mastered lists and
// removes overlap between them, mastered winning.
func normalizeBank(bank *SkillBank) {
	if bank.AllSkillsData == nil {
		bank.AllSkillsData = map[string]IdentifiedSkillData{}
	}
	mastered := make([]string, 0, len(bank.MasteredSkills))
	seen := map[string]bool{}
	for _, id := range bank.MasteredSkills {
		if _, ok := bank.AllSkillsData[id]; ok && !seen[id] {
			mastered = append(mastered, id)
			seen[id] = true
		}
	}
	active := make([]string, 0, len(bank.ActiveSkills))
	for _, id := range bank.ActiveSkills {
		if _, ok := bank.AllSkillsData[id]; ok && !seen[id] {
			active = append(active, id)
			seen[id] = true
		}
	}
	bank.ActiveSkills = active
	bank.MasteredSkills = mastered
}

// rebuildStatuses derives the status map from the bank, which is
// authoritative. Imported status values are ignored; membership in the
// active and mastered lists decides everything.
func rebuildStatuses(bank *SkillBank, _ map[string]SkillStatus) map[string]SkillStatus {
	statuses := make(map[string]SkillStatus, len(bank.AllSkillsData))
	for id := range bank.AllSkillsData {
		statuses[id] = StatusArchived
	}
	for _, id := range bank.ActiveSkills {
		statuses[id] = StatusActive
	}
	for _, id := range bank.MasteredSkills {
		statuses[id] = StatusMastered
	}
	return statuses
}

// normalizeRaters guarantees exactly one self rater. An existing self-flagged
// rater keeps its id; otherwise a fresh self rater is prepended. Dangling
// active and comparison rater ids fall back to safe values.
func normalizeRaters(doc *ExportDocument) {
	var raters []Rater
	seenNames := map[string]bool{}
	selfID := ""
	for _, r := range doc.Raters {
		if r.ID == "" || strings.TrimSpace(r.Name) == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if seenNames[key] {
			continue
		}
		if r.IsSelf {
			if selfID != "" {
				r.IsSelf = false
			} else {
				selfID = r.ID
			}
		}
		seenNames[key] = true
		raters = append(raters, r)
	}
	if selfID == "" {
		self := NewSelfRater()
		raters = append([]Rater{self}, raters...)
		selfID = self.ID
	}
	doc.Raters = raters

	known := map[string]bool{}
	for _, r := range raters {
		known[r.ID] = true
	}
	if !known[doc.ActiveRaterID] {
		doc.ActiveRaterID = selfID
	}
	var comparison []string
	for _, id := range doc.ComparisonRaterIDs {
		if known[id] {
			comparison = append(comparison, id)
		}
	}
	doc.ComparisonRaterIDs = comparison
}

// normalizeRatings drops entries with invalid levels. Entries from raters no
// longer on the roster are kept; they still count as history and are pruned
// naturally on the next regeneration.
func normalizeRatings(doc *ExportDocument) {
	if doc.UserRatings == nil {
		return
	}
	for skillID, entries := range doc.UserRatings {
		kept := entries[:0]
		for _, e := range entries {
			if e.RaterID == "" || !e.Rating.Valid() {
				slog.Warn("import: dropped invalid rating entry", slog.String("skill", skillID))
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			delete(doc.UserRatings, skillID)
			continue
		}
		doc.UserRatings[skillID] = kept
	}
}

func filterKnownSkills(ids []string, bank *SkillBank, max int) []string {
	var out []string
	for _, id := range ids {
		if _, ok := bank.AllSkillsData[id]; !ok {
			continue
		}
		out = append(out, id)
		if len(out) == max {
			break
		}
	}
	return out
}

func filterPlans(plans []GrowthPlan, bank *SkillBank) []GrowthPlan {
	var out []GrowthPlan
	for _, p := range plans {
		if _, ok := bank.AllSkillsData[p.SkillID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// SetViewState records UI position fields so they round-trip with exports.
func (s *Session) SetViewState(activeTab string, comparisonRaterIDs []string, showAverage bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range comparisonRaterIDs {
		if !s.raterExistsLocked(id) {
			return fmt.Errorf("unknown rater id %q", id)
		}
	}
	if activeTab != "" {
		s.activeTab = activeTab
	}
	s.comparisonRaterIDs = append([]string(nil), comparisonRaterIDs...)
	s.showAverageOnRadar = showAverage
	s.commitLocked()
	return nil
}
