package skills

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/benjamayden/skillsradar/internal/engine"
)

// FormatVersion identifies the current export document shape.
const FormatVersion = "2.0"

// Session is the single-owner aggregate for one user's state: pipeline
// position, skill bank, raters, ratings, focus skills and generated content.
// All mutation goes through its methods; each method is atomic with respect
// to the others, so a failed provider call can never leave half-updated
// state behind.
type Session struct {
	mu sync.Mutex

	state     PipelineState
	userInput *UserInputData

	selection *SkillSelectionState
	bank      SkillBank
	statuses  map[string]SkillStatus

	raters             []Rater
	activeRaterID      string
	comparisonRaterIDs []string
	showAverageOnRadar bool

	ratings     RatingStore
	focusSkills []string

	growthPlans        []GrowthPlan
	suggestedJobTitles []string

	theme     string
	activeTab string

	// Ratings from before the last regeneration, kept so confirmed skills
	// with stable ids (or matching names) can carry their history forward.
	prevRatings RatingStore
	prevNames   map[string]string // lowercase skill name → id

	progress *engine.Rotator

	// onCommit, when set, is invoked after every successful mutation with a
	// snapshot of the session. The store layer uses it to persist.
	onCommit func(doc *ExportDocument)
}

// NewSession returns an empty session at the start of the pipeline, owning
// the undeletable self-rater.
func NewSession() *Session {
	self := NewSelfRater()
	return &Session{
		state:         StateIdle,
		statuses:      map[string]SkillStatus{},
		raters:        []Rater{self},
		activeRaterID: self.ID,
		ratings:       RatingStore{},
		progress:      engine.NewRotator(nil),
	}
}

// OnCommit registers the persistence hook.
func (s *Session) OnCommit(fn func(doc *ExportDocument)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCommit = fn
}

func (s *Session) commitLocked() {
	if s.onCommit != nil {
		s.onCommit(s.exportLocked())
	}
}

// State returns the current pipeline state.
func (s *Session) State() PipelineState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress returns the loading message that should be displayed now.
func (s *Session) Progress() string { return s.progress.Current() }

var identifyProgressMessages = []engine.ProgressMessage{
	{Text: "Scanning the job market for relevant skills...", Duration: 4 * time.Second},
	{Text: "Drafting market-standard rubrics...", Duration: 4 * time.Second},
	{Text: "Ranking skills against your goals and strategy...", Duration: 4 * time.Second},
	{Text: "Almost there...", Duration: 6 * time.Second},
}

// SubmitUserInput runs candidate generation. On success the session moves to
// AwaitingSelection with a fresh selection state; on failure it returns to
// its previous stable state untouched.
func (s *Session) SubmitUserInput(ctx context.Context, input UserInputData) (*SkillSelectionState, []engine.GroundingChunk, error) {
	s.mu.Lock()
	prevState := s.state
	s.state = StateGeneratingCandidates
	s.progress.Restart(identifyProgressMessages)
	s.mu.Unlock()

	selection, attributions, err := GenerateCandidates(ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = prevState
		return nil, nil, err
	}

	// Remember prior ratings and names so a confirmed regeneration can
	// carry history forward for skills that reappear.
	s.prevRatings = s.ratings.Clone()
	s.prevNames = map[string]string{}
	for id, data := range s.bank.AllSkillsData {
		s.prevNames[strings.ToLower(data.Name)] = id
	}

	s.userInput = &input
	s.selection = selection
	s.state = StateAwaitingSelection
	s.focusSkills = nil
	s.growthPlans = nil
	s.suggestedJobTitles = nil
	s.commitLocked()
	return selection, attributions, nil
}

// ToggleSkill adds/removes a candidate from the personal selection.
func (s *Session) ToggleSkill(id string) (*SkillSelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingSelection || s.selection == nil {
		return nil, fmt.Errorf("no selection in progress")
	}
	if err := s.selection.ToggleSkill(id); err != nil {
		return nil, err
	}
	s.commitLocked()
	return s.selection, nil
}

// ConfirmSelection collapses the selection into the skill bank and moves the
// session to Ready. Ratings for reappearing skill ids are carried forward;
// when an id drifted but the skill name matches a previous skill, the old
// history is re-keyed to the new id.
func (s *Session) ConfirmSelection() (*SkillBank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingSelection || s.selection == nil {
		return nil, fmt.Errorf("no selection to confirm")
	}
	s.state = StateFinalizingSelection

	bank := s.selection.buildBank()

	ratings := s.prevRatings.CarryOver(bank.AllSkillsData)
	for id, data := range bank.AllSkillsData {
		if _, ok := ratings[id]; ok {
			continue
		}
		oldID, ok := s.prevNames[strings.ToLower(data.Name)]
		if !ok || oldID == id {
			continue
		}
		if entries := s.prevRatings.All(oldID); len(entries) > 0 {
			copied := make([]SkillRatingEntry, len(entries))
			copy(copied, entries)
			ratings[id] = copied
			slog.Info("selection: carried ratings by name match",
				slog.String("old_id", oldID), slog.String("new_id", id))
		}
	}

	statuses := make(map[string]SkillStatus, len(bank.AllSkillsData))
	for id := range bank.AllSkillsData {
		statuses[id] = StatusArchived
	}
	for _, id := range bank.ActiveSkills {
		statuses[id] = StatusActive
	}

	s.bank = bank
	s.statuses = statuses
	s.ratings = ratings
	s.prevRatings = nil
	s.prevNames = nil
	s.state = StateReady
	s.commitLocked()
	return &s.bank, nil
}

// Bank returns a copy of the current skill bank.
func (s *Session) Bank() SkillBank {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyBank(s.bank)
}

// Statuses returns a copy of the status map.
func (s *Session) Statuses() map[string]SkillStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]SkillStatus, len(s.statuses))
	for k, v := range s.statuses {
		out[k] = v
	}
	return out
}

// AddRater appends a rater, rejecting empty and duplicate (case-insensitive)
// names, and makes it the active rater.
func (s *Session) AddRater(name string) (Rater, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Rater{}, fmt.Errorf("rater name cannot be empty")
	}
	for _, r := range s.raters {
		if strings.EqualFold(r.Name, trimmed) {
			return Rater{}, fmt.Errorf("rater name %q already exists", trimmed)
		}
	}

	rater := Rater{ID: fmt.Sprintf("rater_%d", time.Now().UnixMilli()), Name: trimmed}
	for s.raterExistsLocked(rater.ID) {
		rater.ID += "x"
	}
	s.raters = append(s.raters, rater)
	s.activeRaterID = rater.ID
	s.commitLocked()
	return rater, nil
}

func (s *Session) raterExistsLocked(id string) bool {
	for _, r := range s.raters {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Raters returns a copy of the rater list.
func (s *Session) Raters() []Rater {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Rater, len(s.raters))
	copy(out, s.raters)
	return out
}

// SetActiveRater switches which rater subsequent ratings default to.
func (s *Session) SetActiveRater(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.raterExistsLocked(id) {
		return fmt.Errorf("unknown rater id %q", id)
	}
	s.activeRaterID = id
	s.commitLocked()
	return nil
}

// ActiveRaterID returns the current active rater.
func (s *Session) ActiveRaterID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeRaterID
}

// RateSkill upserts one rater's level for one skill. Empty raterID means the
// active rater.
func (s *Session) RateSkill(skillID, raterID string, rating RubricLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raterID == "" {
		raterID = s.activeRaterID
	}
	if !s.raterExistsLocked(raterID) {
		return fmt.Errorf("unknown rater id %q", raterID)
	}
	if _, ok := s.bank.AllSkillsData[skillID]; !ok {
		return fmt.Errorf("unknown skill id %q", skillID)
	}
	if !rating.Valid() {
		return fmt.Errorf("invalid rubric level %q", rating)
	}
	s.ratings.Upsert(skillID, raterID, rating)
	s.commitLocked()
	return nil
}

// Ratings returns a deep copy of the rating store.
func (s *Session) Ratings() RatingStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratings.Clone()
}

// RatingsSummary renders "Rater: Level; ..." for one skill's entries.
func (s *Session) RatingsSummary(skillID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.ratings.All(skillID)
	if len(entries) == 0 {
		return "No ratings yet."
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.RaterID
		for _, r := range s.raters {
			if r.ID == e.RaterID {
				name = r.Name
				break
			}
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Rating))
	}
	return strings.Join(parts, "; ")
}

// RadarSeries is one rater's (or the average's) ordinal value per active
// skill, 0 = not rated.
type RadarSeries struct {
	Key    string             `json:"key"`
	Name   string             `json:"name"`
	Values map[string]float64 `json:"values"` // skillId → ordinal
}

// RadarData builds chart series for the given raters over the active skills,
// plus an optional cross-rater average series. Unrated skills are omitted
// from a series' values so "no data" stays distinct from the lowest level.
func (s *Session) RadarData(raterIDs []string, includeAverage bool) []RadarSeries {
	s.mu.Lock()
	defer s.mu.Unlock()

	var series []RadarSeries
	for _, rid := range raterIDs {
		if !s.raterExistsLocked(rid) {
			continue
		}
		name := rid
		for _, r := range s.raters {
			if r.ID == rid {
				name = r.Name
				break
			}
		}
		sr := RadarSeries{Key: "rater_" + rid, Name: name, Values: map[string]float64{}}
		for _, skillID := range s.bank.ActiveSkills {
			if rating, ok := s.ratings.Get(skillID, rid); ok {
				sr.Values[skillID] = float64(rating.Ordinal())
			}
		}
		series = append(series, sr)
	}

	if includeAverage {
		avg := RadarSeries{Key: "average", Name: "Average", Values: map[string]float64{}}
		all := make([]string, 0, len(s.raters))
		for _, r := range s.raters {
			all = append(all, r.ID)
		}
		for _, skillID := range s.bank.ActiveSkills {
			if v, ok := s.ratings.Average(skillID, all); ok {
				avg.Values[skillID] = v
			}
		}
		series = append(series, avg)
	}
	return series
}

// ToggleFocusSkill adds/removes a focus skill for growth planning, capped at
// MaxFocusSkills.
func (s *Session) ToggleFocusSkill(id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.focusSkills {
		if f == id {
			s.focusSkills = append(s.focusSkills[:i], s.focusSkills[i+1:]...)
			s.commitLocked()
			return s.focusSkills, nil
		}
	}
	if _, ok := s.bank.AllSkillsData[id]; !ok {
		return nil, fmt.Errorf("unknown skill id %q", id)
	}
	if len(s.focusSkills) >= MaxFocusSkills {
		return nil, fmt.Errorf("at most %d focus skills", MaxFocusSkills)
	}
	s.focusSkills = append(s.focusSkills, id)
	s.commitLocked()
	return s.focusSkills, nil
}

// FocusSkills returns the current focus list.
func (s *Session) FocusSkills() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.focusSkills))
	copy(out, s.focusSkills)
	return out
}

// CheckSkillMastery evaluates the mastery predicate for one skill.
func (s *Session) CheckSkillMastery(skillID string) MasteryCheck {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CheckMastery(skillID, s.ratings, s.raters)
}

// MarkMastered moves a skill to the mastered set, guarded by the mastery
// predicate, and drops it from the focus list. Rating history is untouched.
func (s *Session) MarkMastered(skillID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := markMastered(skillID, &s.bank, s.statuses, s.ratings, s.raters); err != nil {
		return err
	}
	s.focusSkills = removeID(s.focusSkills, skillID)
	s.commitLocked()
	return nil
}

// SwapSkill replaces one active skill with another from the bank.
func (s *Session) SwapSkill(removeSkillID, addSkillID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := swapSkill(removeSkillID, addSkillID, &s.bank, s.statuses); err != nil {
		return err
	}
	s.commitLocked()
	return nil
}

// AvailableForSwap lists every non-active skill in the bank.
func (s *Session) AvailableForSwap() []IdentifiedSkillData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return availableForSwap(&s.bank)
}

// GrowthContent is the combined result of the ordered growth action.
type GrowthContent struct {
	SuggestedJobTitles []string     `json:"suggestedJobTitles"`
	Plans              []GrowthPlan `json:"plans"`
}

// GenerateGrowthContent runs the combined growth action: job-title
// suggestion first, then one growth plan per focus skill, strictly in
// order — the suggested titles feed every plan call. Plans already produced
// survive a mid-sequence failure: they are committed before the error for
// the failing skill is returned.
func (s *Session) GenerateGrowthContent(ctx context.Context) (*GrowthContent, error) {
	s.mu.Lock()
	if len(s.focusSkills) == 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("no focus skills selected")
	}
	if s.userInput == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("no user input on record")
	}
	goals := s.userInput.FiveYearGoals
	focus := make([]string, len(s.focusSkills))
	copy(focus, s.focusSkills)
	profile := s.selfProfileLocked()
	s.progress.Restart([]engine.ProgressMessage{
		{Text: "Suggesting job titles...", Duration: 5 * time.Second},
		{Text: "Matching your profile to market roles...", Duration: 5 * time.Second},
	})
	s.mu.Unlock()

	titles, err := SuggestJobTitles(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.suggestedJobTitles = titles
	s.commitLocked()
	s.mu.Unlock()

	content := &GrowthContent{SuggestedJobTitles: titles}
	for _, skillID := range focus {
		s.mu.Lock()
		skill, ok := s.bank.AllSkillsData[skillID]
		rating := s.currentRatingLocked(skillID)
		s.progress.Restart([]engine.ProgressMessage{
			{Text: fmt.Sprintf("Crafting a growth plan for %s...", skill.Name), Duration: 5 * time.Second},
			{Text: fmt.Sprintf("Curating learning resources for %s...", skill.Name), Duration: 5 * time.Second},
		})
		s.mu.Unlock()
		if !ok {
			slog.Warn("growth: focus skill missing from bank", slog.String("id", skillID))
			continue
		}
		if rating == "" {
			slog.Warn("growth: focus skill has no rating, skipping", slog.String("id", skillID))
			continue
		}

		plan, err := GenerateGrowthPlan(ctx, skill, rating, goals, titles)
		if err != nil {
			// Plans produced so far are already committed; the caller learns
			// which skill failed without losing them.
			return content, err
		}

		s.mu.Lock()
		s.upsertPlanLocked(*plan)
		s.commitLocked()
		s.mu.Unlock()
		content.Plans = append(content.Plans, *plan)
	}
	return content, nil
}

// GenerateJobTitles runs the job-title suggestion on its own, without
// touching growth plans. The suggested titles replace any previous ones.
func (s *Session) GenerateJobTitles(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	profile := s.selfProfileLocked()
	if len(profile) == 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("no rated active skills to suggest titles from")
	}
	s.progress.Restart([]engine.ProgressMessage{
		{Text: "Suggesting job titles...", Duration: 5 * time.Second},
		{Text: "Matching your profile to market roles...", Duration: 5 * time.Second},
	})
	s.mu.Unlock()

	titles, err := SuggestJobTitles(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.suggestedJobTitles = titles
	s.commitLocked()
	s.mu.Unlock()
	return titles, nil
}

// selfProfileLocked builds the rated-skill profile for job-title
// suggestions: the self rating when present, otherwise the first rating.
func (s *Session) selfProfileLocked() []SkillRatingPair {
	var profile []SkillRatingPair
	for _, skillID := range s.bank.ActiveSkills {
		rating := s.currentRatingLocked(skillID)
		if rating == "" {
			continue
		}
		profile = append(profile, SkillRatingPair{SkillName: s.bank.AllSkillsData[skillID].Name, Rating: rating})
	}
	return profile
}

func (s *Session) currentRatingLocked(skillID string) RubricLevel {
	if rating, ok := s.ratings.Get(skillID, SelfRaterID); ok {
		return rating
	}
	if entries := s.ratings.All(skillID); len(entries) > 0 {
		return entries[0].Rating
	}
	return ""
}

// upsertPlanLocked replaces any prior plan for the same skill — latest wins.
func (s *Session) upsertPlanLocked(plan GrowthPlan) {
	for i, p := range s.growthPlans {
		if p.SkillID == plan.SkillID {
			s.growthPlans[i] = plan
			return
		}
	}
	s.growthPlans = append(s.growthPlans, plan)
}

// GrowthPlans returns a copy of the stored plans.
func (s *Session) GrowthPlans() []GrowthPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GrowthPlan, len(s.growthPlans))
	copy(out, s.growthPlans)
	return out
}

// SuggestedJobTitles returns the last suggested titles.
func (s *Session) SuggestedJobTitles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestedJobTitles))
	copy(out, s.suggestedJobTitles)
	return out
}

// SetTheme stores the UI theme preference so it round-trips through export.
func (s *Session) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	s.commitLocked()
}

// Reset clears all session data back to a fresh session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	self := NewSelfRater()
	s.state = StateIdle
	s.userInput = nil
	s.selection = nil
	s.bank = SkillBank{}
	s.statuses = map[string]SkillStatus{}
	s.raters = []Rater{self}
	s.activeRaterID = self.ID
	s.comparisonRaterIDs = nil
	s.showAverageOnRadar = false
	s.ratings = RatingStore{}
	s.focusSkills = nil
	s.growthPlans = nil
	s.suggestedJobTitles = nil
	s.prevRatings = nil
	s.prevNames = nil
	s.commitLocked()
}

func copyBank(b SkillBank) SkillBank {
	out := SkillBank{
		ActiveSkills:   append([]string(nil), b.ActiveSkills...),
		MasteredSkills: append([]string(nil), b.MasteredSkills...),
		AllSkillsData:  make(map[string]IdentifiedSkillData, len(b.AllSkillsData)),
	}
	for k, v := range b.AllSkillsData {
		out.AllSkillsData[k] = v
	}
	return out
}
