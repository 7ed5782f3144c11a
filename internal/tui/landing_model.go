package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/landing/internal/contact"
	"github.com/balkashynov/landing/internal/logger"
	"github.com/balkashynov/landing/internal/site"
	"github.com/balkashynov/landing/internal/theme"
)

// Focus is the form control that receives key input
type Focus int

const (
	FocusName Focus = iota
	FocusEmail
	FocusMessage
	FocusSubmit
)

const focusCount = 4

// toastDuration is how long a notification stays on screen
const toastDuration = 4 * time.Second

// twoColumnMinWidth is the terminal width below which the form stacks
const twoColumnMinWidth = 70

// Options configures the landing screen
type Options struct {
	Preference  *theme.Preference
	Contact     contact.Config
	FlowOptions []contact.FlowOption
	Logger      *logger.Logger

	// Prefilled seeds the form, keyed by contact field name
	Prefilled map[string]string
	// Shimmer overrides the hero animation; zero value uses the default
	Shimmer *ShimmerConfig
}

// toast is one transient notification
type toast struct {
	id      int
	success bool
	text    string
}

// toastBox receives the flow's notification for the submission in progress
type toastBox struct {
	mu   sync.Mutex
	last *toast
}

func (b *toastBox) Success(message string) { b.set(true, message) }
func (b *toastBox) Error(message string)   { b.set(false, message) }

func (b *toastBox) set(success bool, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = &toast{success: success, text: text}
}

// take returns and clears the pending notification
func (b *toastBox) take() *toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.last
	b.last = nil
	return t
}

// LandingModel is the terminal rendition of the landing page: navbar with
// theme toggle, hero title and the contact form.
type LandingModel struct {
	width  int
	height int

	pref    *theme.Preference
	styles  Styles
	shimmer *Shimmer
	log     *logger.Logger

	name    textinput.Model
	email   textinput.Model
	message textarea.Model
	focus   Focus

	flow       *contact.Flow
	notices    *toastBox
	submitting bool
	toast      *toast
	toastSeq   int

	validationErr string
	quitting      bool
}

// shimmerTickMsg advances the hero animation
type shimmerTickMsg struct{}

// toastExpiredMsg hides the toast with the given id, if still shown
type toastExpiredMsg struct{ id int }

// submitFinishedMsg carries a submission's outcome back to the event loop
type submitFinishedMsg struct {
	err   error
	reset bool
	toast *toast
}

// NewLandingModel builds the screen. The submission flow is created here so
// the view owns the notifier it reports to.
func NewLandingModel(opts Options) LandingModel {
	pref := opts.Preference
	if pref == nil {
		pref = theme.Load(nil, opts.Logger)
	}
	styles := NewStyles(pref.Current())

	shimmerConfig := DefaultShimmerConfig()
	if opts.Shimmer != nil {
		shimmerConfig = *opts.Shimmer
	}

	notices := &toastBox{}
	flowOpts := append([]contact.FlowOption{contact.WithLogger(opts.Logger)}, opts.FlowOptions...)

	m := LandingModel{
		pref:    pref,
		styles:  styles,
		shimmer: NewShimmer(shimmerConfig, styles.Palette.SecondaryText, styles.Palette.AccentBright),
		log:     opts.Logger,
		name:    textinput.New(),
		email:   textinput.New(),
		message: textarea.New(),
		focus:   FocusName,
		flow:    contact.NewFlow(opts.Contact, notices, flowOpts...),
		notices: notices,
	}

	m.name.Placeholder = "Enter your name"
	m.name.CharLimit = 100
	m.name.Prompt = ""
	m.email.Placeholder = "Enter your email"
	m.email.CharLimit = 254
	m.email.Prompt = ""
	m.message.Placeholder = "Enter your message"
	m.message.ShowLineNumbers = false
	m.message.CharLimit = 5000
	m.message.SetHeight(8)
	m.applyStyles()
	m.resize(80)

	if v, ok := opts.Prefilled[contact.FieldName]; ok {
		m.name.SetValue(v)
	}
	if v, ok := opts.Prefilled[contact.FieldEmail]; ok {
		m.email.SetValue(v)
	}
	if v, ok := opts.Prefilled[contact.FieldMessage]; ok {
		m.message.SetValue(v)
	}

	m.name.Focus()
	return m
}

// Init starts cursor blinking and the hero shimmer
func (m LandingModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.shimmer.Active() {
		cmds = append(cmds, m.shimmerTick())
	}
	return tea.Batch(cmds...)
}

func (m LandingModel) shimmerTick() tea.Cmd {
	return tea.Tick(m.shimmer.Interval(), func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// Update handles messages
func (m LandingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.shimmer.Advance(len([]rune(site.HeroTitle)))
		return m, m.shimmerTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize(msg.Width)
		return m, nil

	case submitFinishedMsg:
		m.submitting = false
		if msg.reset {
			m.resetForm()
		}
		if msg.toast != nil {
			return m.showToast(msg.toast.success, msg.toast.text)
		}
		return m, nil

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "ctrl+t":
			return m.toggleTheme()

		case "ctrl+s":
			return m.submit()

		case "tab":
			return m.moveFocus(1)

		case "shift+tab":
			return m.moveFocus(-1)

		case "enter":
			switch m.focus {
			case FocusName, FocusEmail:
				return m.moveFocus(1)
			case FocusSubmit:
				return m.submit()
			}
			// FocusMessage: the textarea takes the newline
		}
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused control
func (m LandingModel) updateFocused(msg tea.Msg) (LandingModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusName:
		m.name, cmd = m.name.Update(msg)
	case FocusEmail:
		m.email, cmd = m.email.Update(msg)
	case FocusMessage:
		m.message, cmd = m.message.Update(msg)
	}
	return m, cmd
}

func (m LandingModel) moveFocus(delta int) (LandingModel, tea.Cmd) {
	m.name.Blur()
	m.email.Blur()
	m.message.Blur()

	m.focus = Focus((int(m.focus) + delta + focusCount) % focusCount)

	var cmd tea.Cmd
	switch m.focus {
	case FocusName:
		cmd = m.name.Focus()
	case FocusEmail:
		cmd = m.email.Focus()
	case FocusMessage:
		cmd = m.message.Focus()
	}
	return m, cmd
}

// submit is the form's submit handler. Keys that trigger it never reach the
// inputs, which is this surface's default-prevention. Name and email are
// required the way the page's inputs are; the relay validates the rest.
func (m LandingModel) submit() (LandingModel, tea.Cmd) {
	if m.submitting {
		// Submit stays disabled until the in-flight request resolves
		return m, nil
	}

	m.validationErr = ""
	if strings.TrimSpace(m.name.Value()) == "" {
		m.validationErr = "Your name is required"
		return m, nil
	}
	if strings.TrimSpace(m.email.Value()) == "" {
		m.validationErr = "Email id is required"
		return m, nil
	}

	m.submitting = true
	fields := m.Fields()
	flow := m.flow
	notices := m.notices

	return m, func() tea.Msg {
		ev := contact.NewFormEvent(fields, nil)
		err := flow.Submit(context.Background(), ev)
		return submitFinishedMsg{err: err, reset: ev.WasReset(), toast: notices.take()}
	}
}

func (m LandingModel) toggleTheme() (LandingModel, tea.Cmd) {
	next, err := m.pref.Toggle()
	m.styles = NewStyles(next)
	m.shimmer.SetColors(m.styles.Palette.SecondaryText, m.styles.Palette.AccentBright)
	m.applyStyles()

	if err != nil {
		m.log.Error(err, "theme toggle not persisted")
		return m.showToast(false, fmt.Sprintf("Theme not saved: %v", err))
	}
	return m, nil
}

func (m LandingModel) showToast(success bool, text string) (LandingModel, tea.Cmd) {
	m.toastSeq++
	id := m.toastSeq
	m.toast = &toast{id: id, success: success, text: text}
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m *LandingModel) resetForm() {
	m.name.Reset()
	m.email.Reset()
	m.message.Reset()
	m.validationErr = ""
}

// applyStyles pushes the current palette into the bubbles components
func (m *LandingModel) applyStyles() {
	p := m.styles.Palette
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(p.PrimaryText))
	placeholder := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Placeholder))
	cursor := lipgloss.NewStyle().Foreground(lipgloss.Color(p.AccentBright))

	for _, in := range []*textinput.Model{&m.name, &m.email} {
		in.TextStyle = text
		in.PlaceholderStyle = placeholder
		in.Cursor.Style = cursor
	}

	m.message.FocusedStyle.Text = text
	m.message.FocusedStyle.Placeholder = placeholder
	m.message.FocusedStyle.CursorLine = text
	m.message.BlurredStyle.Text = text
	m.message.BlurredStyle.Placeholder = placeholder
	m.message.Cursor.Style = cursor
}

// resize fits the form to the terminal width
func (m *LandingModel) resize(width int) {
	formWidth := m.formWidth(width)
	column := formWidth - 4 // border + padding
	if m.twoColumns(width) {
		column = (formWidth-2)/2 - 4
	}
	m.name.Width = column
	m.email.Width = column
	m.message.SetWidth(formWidth - 4)
}

func (m LandingModel) formWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	w := width - 4
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

func (m LandingModel) twoColumns(width int) bool {
	return width >= twoColumnMinWidth
}

// Fields returns the form's current values keyed by relay field name
func (m LandingModel) Fields() map[string]string {
	return map[string]string{
		contact.FieldName:    m.name.Value(),
		contact.FieldEmail:   m.email.Value(),
		contact.FieldMessage: m.message.Value(),
	}
}

// Theme returns the active theme
func (m LandingModel) Theme() theme.Theme {
	return m.pref.Current()
}

// Submitting reports whether a submission is outstanding
func (m LandingModel) Submitting() bool {
	return m.submitting
}

// View renders the screen
func (m LandingModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(m.renderNavbar(width))
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	b.WriteString(center.Render(m.shimmer.Render(site.HeroTitle)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(m.styles.Title.Render(site.ContactTitle)))
	b.WriteString("\n")
	b.WriteString(center.Render(m.styles.Description.Width(m.formWidth(width)).Align(lipgloss.Center).Render(site.ContactDescription)))
	b.WriteString("\n\n")

	if m.toast != nil {
		style := m.styles.ToastErr
		if m.toast.success {
			style = m.styles.ToastOK
		}
		b.WriteString(center.Render(style.Render(m.toast.text)))
		b.WriteString("\n\n")
	}

	b.WriteString(center.Render(m.renderForm(width)))
	b.WriteString("\n\n")
	b.WriteString(center.Render(m.styles.Help.Render("Tab/Shift+Tab: Move | Enter: Next/Submit | Ctrl+S: Submit | Ctrl+T: Theme | Esc: Quit")))

	return m.styles.App.Render(b.String())
}

func (m LandingModel) renderNavbar(width int) string {
	brand := m.styles.Brand.Render(site.Brand)

	var links strings.Builder
	for _, link := range site.NavLinks {
		links.WriteString(m.styles.NavLink.Render(link.Label))
	}

	icon := "☀"
	if m.pref.Current() == theme.Dark {
		icon = "☾"
	}
	badge := m.styles.ThemeBadge.Render(fmt.Sprintf("%s %s", icon, m.pref.Current()))

	// Links are dropped first when the terminal is narrow
	middle := links.String()
	gap := width - lipgloss.Width(brand) - lipgloss.Width(middle) - lipgloss.Width(badge) - 4
	if gap < 2 {
		middle = ""
		gap = width - lipgloss.Width(brand) - lipgloss.Width(badge) - 4
	}
	if gap < 1 {
		gap = 1
	}

	left := gap / 2
	right := gap - left
	return lipgloss.JoinHorizontal(lipgloss.Center,
		"  ", brand, strings.Repeat(" ", left), middle, strings.Repeat(" ", right), badge, "  ")
}

func (m LandingModel) renderForm(width int) string {
	nameBox := m.renderField("Your name", m.name.View(), m.focus == FocusName)
	emailBox := m.renderField("Email id", m.email.View(), m.focus == FocusEmail)

	var top string
	if m.twoColumns(width) {
		top = lipgloss.JoinHorizontal(lipgloss.Top, nameBox, "  ", emailBox)
	} else {
		top = lipgloss.JoinVertical(lipgloss.Left, nameBox, emailBox)
	}

	messageBox := m.renderField("Message", m.message.View(), m.focus == FocusMessage)

	button := m.styles.Button
	label := "Submit →"
	switch {
	case m.submitting || m.flow.State() == contact.StateInFlight:
		button = m.styles.ButtonBusy
		label = "Sending…"
	case m.focus == FocusSubmit:
		button = m.styles.ButtonFocus
	}

	parts := []string{top, messageBox, button.Render(label)}
	if m.validationErr != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.styles.Palette.Error)).Bold(true)
		parts = append(parts, errStyle.Render("❌ "+m.validationErr))
	}

	return lipgloss.NewStyle().Width(m.formWidth(width)).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m LandingModel) renderField(label, input string, focused bool) string {
	box := m.styles.Field
	if focused {
		box = m.styles.FieldActive
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.styles.Label.Render(label), box.Render(input))
}
