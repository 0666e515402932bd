package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inquiry-desk/models"
	"inquiry-desk/services"
)

// contact step fields
const (
	fieldName = iota
	fieldEmail
	fieldCity
)

var (
	keyQuit     = key.NewBinding(key.WithKeys("ctrl+c"))
	keyBack     = key.NewBinding(key.WithKeys("esc"))
	keyConfirm  = key.NewBinding(key.WithKeys("enter"))
	keyNextItem = key.NewBinding(key.WithKeys("tab", "down"))
	keyPrevItem = key.NewBinding(key.WithKeys("shift+tab", "up"))
	keyLeft     = key.NewBinding(key.WithKeys("left"))
	keyRight    = key.NewBinding(key.WithKeys("right"))
)

// Model is the terminal inquiry wizard. It renders the session's current
// step and feeds the answers back into its builder.
type Model struct {
	session   *services.Session
	countries []models.Country
	onChange  func() error

	typeIndex   int
	countryIn   textinput.Model
	amountIn    textinput.Model
	contactIns  []textinput.Model
	contactIdx  int
	financing   bool
	onTypeField bool

	submitted models.Inquiry
	statusMsg string
	errMsg    string
	lastStep  string
	quitting  bool
}

// NewModel builds a wizard over session. countries feeds the country
// autocomplete; onChange (may be nil) runs after every answer or step change.
func NewModel(session *services.Session, countries []models.Country, onChange func() error) *Model {
	countryIn := textinput.New()
	countryIn.Placeholder = "Country (optional)"
	countryIn.Width = 30
	countryIn.CharLimit = 60

	amountIn := textinput.New()
	amountIn.Width = 20
	amountIn.CharLimit = 20

	contactIns := make([]textinput.Model, 3)
	for i, ph := range []string{"Name", "Email", "City"} {
		in := textinput.New()
		in.Placeholder = ph
		in.Width = 30
		in.CharLimit = 80
		contactIns[i] = in
	}

	m := &Model{
		session:     session,
		countries:   countries,
		onChange:    onChange,
		countryIn:   countryIn,
		amountIn:    amountIn,
		contactIns:  contactIns,
		onTypeField: true,
	}
	m.enterStep()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses for the current step.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keyQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, keyBack):
		m.session.Previous()
		m.changed()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.session.CurrentStep() {
	case services.StepTypePath:
		cmd = m.updateType(keyMsg)
	case services.StepHomeBudget, services.StepHomeValue:
		cmd = m.updateAmount(keyMsg)
	case services.StepContact:
		cmd = m.updateContact(keyMsg)
	case services.StepFinancing:
		cmd = m.updateFinancing(keyMsg)
	default:
		cmd = m.updateIdle(keyMsg)
	}
	return m, cmd
}

func (m *Model) updateType(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keyNextItem), key.Matches(msg, keyPrevItem):
		m.onTypeField = !m.onTypeField
		if m.onTypeField {
			m.countryIn.Blur()
			return nil
		}
		return m.countryIn.Focus()
	case m.onTypeField && key.Matches(msg, keyLeft):
		m.typeIndex = (m.typeIndex + len(models.InquiryTypes) - 1) % len(models.InquiryTypes)
		return nil
	case m.onTypeField && key.Matches(msg, keyRight):
		m.typeIndex = (m.typeIndex + 1) % len(models.InquiryTypes)
		return nil
	case key.Matches(msg, keyConfirm):
		t := models.InquiryTypes[m.typeIndex]
		country := m.matchCountry(m.countryIn.Value())
		m.session.Update(func(b *models.InquiryBuilder) {
			b.AddInquiryType(t)
			if country != "" {
				b.AddCountry(country)
			}
		})
		m.next()
		return nil
	}

	if m.onTypeField {
		return nil
	}
	var cmd tea.Cmd
	m.countryIn, cmd = m.countryIn.Update(msg)
	return cmd
}

func (m *Model) updateAmount(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, keyConfirm) {
		var cmd tea.Cmd
		m.amountIn, cmd = m.amountIn.Update(msg)
		return cmd
	}

	amount, err := services.ParseAmount(m.amountIn.Value())
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	homeValue := m.session.CurrentStep() == services.StepHomeValue
	m.session.Update(func(b *models.InquiryBuilder) {
		if homeValue {
			b.AddHomeValue(amount)
		} else {
			b.AddHomeBudget(amount)
		}
	})
	m.next()
	return nil
}

func (m *Model) updateContact(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keyNextItem):
		return m.focusContact(m.contactIdx + 1)
	case key.Matches(msg, keyPrevItem):
		return m.focusContact(m.contactIdx - 1)
	case key.Matches(msg, keyConfirm):
		if m.contactIdx < fieldCity {
			return m.focusContact(m.contactIdx + 1)
		}
		name := services.NormaliseText(m.contactIns[fieldName].Value())
		email := services.NormaliseEmail(m.contactIns[fieldEmail].Value())
		city := services.NormaliseText(m.contactIns[fieldCity].Value())
		m.session.Update(func(b *models.InquiryBuilder) {
			b.AddName(name).AddEmail(email).AddCity(city)
		})
		m.next()
		return nil
	}

	var cmd tea.Cmd
	m.contactIns[m.contactIdx], cmd = m.contactIns[m.contactIdx].Update(msg)
	return cmd
}

func (m *Model) updateFinancing(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keyLeft), key.Matches(msg, keyRight):
		m.financing = !m.financing
	case msg.String() == "y":
		m.financing = true
	case msg.String() == "n":
		m.financing = false
	case key.Matches(msg, keyConfirm):
		advisory := m.financing
		m.session.Update(func(b *models.InquiryBuilder) { b.AddFinancingAdvisory(advisory) })
		m.next()
	}
	return nil
}

// updateIdle handles the success screen and the wizard having been left.
func (m *Model) updateIdle(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "n", "enter":
		m.session.Restart()
		m.submitted = nil
		m.changed()
	case "q":
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m *Model) next() {
	inq, err := m.session.Next()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if inq != nil {
		m.submitted = inq
	}
	m.changed()
}

// changed persists and resets per-step widgets when the step moved.
func (m *Model) changed() {
	m.errMsg = ""
	m.statusMsg = ""
	if m.onChange != nil {
		if err := m.onChange(); err != nil {
			m.statusMsg = "not saved: " + err.Error()
		}
	}
	if m.session.CurrentStep() != m.lastStep {
		m.enterStep()
	}
}

// enterStep prefills the widgets of the current step from the draft.
func (m *Model) enterStep() {
	step := m.session.CurrentStep()
	m.lastStep = step
	draft := m.session.Draft()

	switch step {
	case services.StepTypePath:
		for i, t := range models.InquiryTypes {
			if t == draft.Type {
				m.typeIndex = i
			}
		}
		m.onTypeField = true
		m.countryIn.Blur()
		m.countryIn.SetValue("")
		if draft.Country != nil {
			m.countryIn.SetValue(draft.Country.Name)
		}
	case services.StepHomeBudget, services.StepHomeValue:
		amount := draft.HomeBudget
		m.amountIn.Placeholder = "Home budget"
		if step == services.StepHomeValue {
			amount = draft.HomeValue
			m.amountIn.Placeholder = "Home value"
		}
		m.amountIn.SetValue("")
		if amount != nil {
			m.amountIn.SetValue(strconv.FormatFloat(*amount, 'f', -1, 64))
		}
		m.amountIn.Focus()
	case services.StepContact:
		for i, v := range []*string{draft.Name, draft.Email, draft.City} {
			m.contactIns[i].SetValue("")
			if v != nil {
				m.contactIns[i].SetValue(*v)
			}
		}
		m.focusContact(fieldName)
	case services.StepFinancing:
		m.financing = draft.FinancingAdvisory != nil && *draft.FinancingAdvisory
	}
}

func (m *Model) focusContact(idx int) tea.Cmd {
	if idx < fieldName || idx > fieldCity {
		return nil
	}
	m.contactIdx = idx
	var cmd tea.Cmd
	for i := range m.contactIns {
		if i == idx {
			cmd = m.contactIns[i].Focus()
		} else {
			m.contactIns[i].Blur()
		}
	}
	return cmd
}

// matchCountry returns the directory name input refers to: an exact match,
// otherwise the first name with that prefix, ignoring case.
func (m *Model) matchCountry(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	for _, c := range m.countries {
		if strings.EqualFold(c.Name, input) {
			return c.Name
		}
	}
	lower := strings.ToLower(input)
	for _, c := range m.countries {
		if strings.HasPrefix(strings.ToLower(c.Name), lower) {
			return c.Name
		}
	}
	return ""
}

// View renders the current step.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("New inquiry"))
	b.WriteString("\n")
	b.WriteString(m.progressBar())
	b.WriteString("\n\n")

	switch step := m.session.CurrentStep(); step {
	case services.StepTypePath:
		b.WriteString(m.viewType())
	case services.StepHomeBudget, services.StepHomeValue:
		label := "What is your budget?"
		if step == services.StepHomeValue {
			label = "What is your home worth?"
		}
		b.WriteString(LabelStyle.Render(label) + "\n")
		b.WriteString(m.session.CurrencySymbol() + " " + m.amountIn.View())
	case services.StepContact:
		b.WriteString(LabelStyle.Render("How can we reach you?") + "\n")
		for _, in := range m.contactIns {
			b.WriteString(in.View() + "\n")
		}
	case services.StepFinancing:
		b.WriteString(LabelStyle.Render("Would you like financing advice?") + "\n")
		b.WriteString(choice("Yes", m.financing) + "  " + choice("No", !m.financing))
	case services.StepSuccess:
		b.WriteString(m.viewSuccess())
	default:
		b.WriteString(MutedStyle.Render("The wizard is closed. Press n to start a new inquiry."))
	}

	if m.errMsg != "" {
		b.WriteString("\n\n" + ErrorStyle.Render(m.errMsg))
	}
	if m.statusMsg != "" {
		b.WriteString("\n\n" + MutedStyle.Render(m.statusMsg))
	}
	b.WriteString("\n\n" + MutedStyle.Render("enter: continue • esc: back • ctrl+c: quit"))
	return PanelStyle.Render(b.String())
}

func (m *Model) viewType() string {
	var parts []string
	for i, t := range models.InquiryTypes {
		parts = append(parts, choice(string(t), i == m.typeIndex))
	}
	line := strings.Join(parts, "  ")
	if m.onTypeField {
		line = "› " + line
	}
	country := m.countryIn.View()
	if match := m.matchCountry(m.countryIn.Value()); match != "" && !strings.EqualFold(match, m.countryIn.Value()) {
		country += MutedStyle.Render("  → " + match)
	}
	return LabelStyle.Render("What can we help you with?") + "\n" + line + "\n\n" + country
}

func (m *Model) viewSuccess() string {
	if m.submitted == nil {
		return SelectedStyle.Render("Inquiry submitted.")
	}
	base := m.submitted.Common()
	lines := []string{
		SelectedStyle.Render("Thank you! Your inquiry was submitted."),
		"",
		fmt.Sprintf("Type:    %s", base.Type),
		fmt.Sprintf("Country: %s", base.CountryName()),
	}
	if price, ok := models.Price(m.submitted); ok {
		lines = append(lines, fmt.Sprintf("Amount:  %s", services.FormatAmount(price)))
	}
	lines = append(lines, "", MutedStyle.Render("n: new inquiry • q: quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) progressBar() string {
	p := m.session.Progress()
	total := p.Completed + p.Pending
	if total == 0 {
		return ""
	}
	const width = 30
	filled := width * p.Completed / total
	bar := BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", width-filled))
	return lipgloss.JoinHorizontal(lipgloss.Top, bar, MutedStyle.Render(fmt.Sprintf(" %d/%d", p.Completed, total)))
}

func choice(label string, selected bool) string {
	if selected {
		return SelectedStyle.Render("[" + label + "]")
	}
	return MutedStyle.Render(" " + label + " ")
}

// Run starts the wizard full screen and blocks until the user quits.
func Run(session *services.Session, countries []models.Country, onChange func() error) error {
	p := tea.NewProgram(NewModel(session, countries, onChange), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
