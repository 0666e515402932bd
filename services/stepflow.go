package services

import (
	"sync"

	"inquiry-desk/models"
)

// Wizard locations. Each step path matches a screen of the inquiry wizard.
const (
	RootPath       = "/"
	NewInquiryPath = "/new"
	StepTypePath   = "/new/type"
	StepHomeBudget = "/new/home-budget"
	StepHomeValue  = "/new/home-value"
	StepContact    = "/new/contact"
	StepFinancing  = "/new/financing"
	StepSuccess    = "/new/success"
)

var routeFlows = map[models.InquiryType][]string{
	models.InquiryRent: {StepTypePath, StepHomeBudget, StepContact, StepSuccess},
	models.InquiryBuy:  {StepTypePath, StepHomeBudget, StepContact, StepFinancing, StepSuccess},
	models.InquirySell: {StepTypePath, StepHomeValue, StepContact, StepSuccess},
}

// Flow returns a copy of the ordered steps for t.
func Flow(t models.InquiryType) ([]string, bool) {
	steps, ok := routeFlows[t]
	if !ok {
		return nil, false
	}
	return append([]string(nil), steps...), true
}

// FlowLength is the number of steps for t, or 0 for an unknown type.
func FlowLength(t models.InquiryType) int {
	return len(routeFlows[t])
}

// Navigator is the routing surface the step manager drives.
type Navigator interface {
	CurrentPath() string
	Push(path string)
	Replace(path string)
}

// TypeSource reports the inquiry type chosen so far.
type TypeSource interface {
	Type() models.InquiryType
}

// StepManager moves a wizard forward and backward through the flow of the
// currently chosen inquiry type.
type StepManager struct {
	types TypeSource
	nav   Navigator
}

func NewStepManager(types TypeSource, nav Navigator) *StepManager {
	return &StepManager{types: types, nav: nav}
}

// NextStep pushes the step following the current one. Without a type the
// wizard is sent back to the root; past the last step nothing happens.
func (m *StepManager) NextStep() {
	t := m.types.Type()
	if t == "" {
		m.nav.Replace(RootPath)
		return
	}

	steps := routeFlows[t]
	idx := indexOf(steps, m.nav.CurrentPath())
	if steps != nil && idx >= 0 && idx < len(steps)-1 {
		m.nav.Push(steps[idx+1])
	}
}

// PreviousStep replaces the current step with the one before it. Going back
// from the first step, or from a step outside the flow, leaves the wizard.
func (m *StepManager) PreviousStep() {
	t := m.types.Type()
	if t == "" {
		m.nav.Replace(RootPath)
		return
	}

	steps := routeFlows[t]
	idx := indexOf(steps, m.nav.CurrentPath())
	if steps != nil && idx > 0 {
		m.nav.Replace(steps[idx-1])
		return
	}
	m.nav.Replace(RootPath)
}

// Progress reports completed and pending steps for the current location.
func (m *StepManager) Progress() models.StepProgress {
	t := m.types.Type()
	steps, ok := routeFlows[t]
	if t == "" || !ok {
		return models.StepProgress{Completed: 1, Pending: 0}
	}

	idx := indexOf(steps, m.nav.CurrentPath())
	return models.StepProgress{
		Completed: idx + 1,
		Pending:   len(steps) - (idx + 1),
	}
}

func indexOf(steps []string, path string) int {
	for i, s := range steps {
		if s == path {
			return i
		}
	}
	return -1
}

// MemoryNavigator is an in-process router with a history stack. Push adds an
// entry, Replace overwrites the top one.
type MemoryNavigator struct {
	mu      sync.RWMutex
	history []string
}

// NewMemoryNavigator starts at path. The /new shortcut resolves to the type
// selection step.
func NewMemoryNavigator(path string) *MemoryNavigator {
	return &MemoryNavigator{history: []string{resolvePath(path)}}
}

func (n *MemoryNavigator) CurrentPath() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.history[len(n.history)-1]
}

func (n *MemoryNavigator) Push(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, resolvePath(path))
}

func (n *MemoryNavigator) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history[len(n.history)-1] = resolvePath(path)
}

// History returns the visited paths, oldest first.
func (n *MemoryNavigator) History() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]string(nil), n.history...)
}

func resolvePath(path string) string {
	switch path {
	case "":
		return RootPath
	case NewInquiryPath:
		return StepTypePath
	}
	return path
}
