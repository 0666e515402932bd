package services

import (
	"sync"

	"inquiry-desk/models"
	"inquiry-desk/utils"
)

const defaultCurrencySymbol = "$"

// SessionSnapshot is the persisted form of a wizard session.
type SessionSnapshot struct {
	Builder models.BuilderSnapshot `json:"inquiryBuilder"`
	Step    string                 `json:"step"`
}

// Session is one inquiry wizard: the builder being filled in, where the user
// is in the flow, and the collection completed inquiries go to.
// Safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	builder   *models.InquiryBuilder
	nav       *MemoryNavigator
	steps     *StepManager
	countries models.CountryLookup
	inquiries *InquiryCollection
	logger    *utils.Logger
}

// NewSession starts a fresh wizard at the type selection step.
func NewSession(countries models.CountryLookup, inquiries *InquiryCollection, logger *utils.Logger) *Session {
	s := &Session{
		builder:   models.NewInquiryBuilder(countries),
		nav:       NewMemoryNavigator(StepTypePath),
		countries: countries,
		inquiries: inquiries,
		logger:    logger.With("wizard"),
	}
	s.steps = NewStepManager(s.builder, s.nav)
	return s
}

// Update applies fn to the builder under the session lock.
func (s *Session) Update(fn func(b *models.InquiryBuilder)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.builder)
}

// Draft returns the answers given so far.
func (s *Session) Draft() models.BuilderSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builder.Snapshot()
}

func (s *Session) Type() models.InquiryType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builder.Type()
}

// CurrentStep is the path of the step the wizard is showing.
func (s *Session) CurrentStep() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.CurrentPath()
}

func (s *Session) Progress() models.StepProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps.Progress()
}

// CurrencySymbol is the symbol of the chosen country's currency, or "$" when
// no country is chosen or it is no longer in the directory.
func (s *Session) CurrencySymbol() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	chosen, ok := s.builder.Country()
	if !ok || s.countries == nil {
		return defaultCurrencySymbol
	}
	c, ok := s.countries.Lookup(chosen.Name)
	if !ok {
		return defaultCurrencySymbol
	}
	return c.CurrencySymbol
}

// Next advances the wizard. Reaching the success step submits the inquiry;
// the submitted inquiry is returned in that case.
func (s *Session) Next() (models.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.nav.CurrentPath()
	s.steps.NextStep()
	after := s.nav.CurrentPath()
	s.logger.Debug("next: %s -> %s", before, after)

	if after != StepSuccess || before == after {
		return nil, nil
	}
	return s.saveLocked()
}

// Previous steps the wizard back, leaving it from the first step.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.nav.CurrentPath()
	s.steps.PreviousStep()
	s.logger.Debug("previous: %s -> %s", before, s.nav.CurrentPath())
}

// Navigate moves the wizard to path without consulting the flow, the way a
// user following a link would.
func (s *Session) Navigate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.Push(path)
}

// SaveInquiry builds the current answers into an inquiry, appends it to the
// collection and resets the builder.
func (s *Session) SaveInquiry() (models.Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Session) saveLocked() (models.Inquiry, error) {
	inq, err := s.builder.Build()
	if err != nil {
		return nil, err
	}
	s.inquiries.Add(inq)

	if data, err := models.MarshalInquiry(inq); err == nil {
		s.logger.Info("<====== Form Submission ======>")
		s.logger.Info("%s", data)
		s.logger.Info("<============ End ============>")
	}

	s.builder.Reset()
	return inq, nil
}

// Restart clears the answers and returns to the type selection step.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builder.Reset()
	s.nav.Push(StepTypePath)
}

// Snapshot captures the session for persistence.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionSnapshot{Builder: s.builder.Snapshot(), Step: s.nav.CurrentPath()}
}

// Restore replaces the session state with a persisted snapshot.
func (s *Session) Restore(snap SessionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.builder = models.RestoreBuilder(snap.Builder, s.countries)
	step := snap.Step
	if step == "" {
		step = StepTypePath
	}
	s.nav = NewMemoryNavigator(step)
	s.steps = NewStepManager(s.builder, s.nav)
}
