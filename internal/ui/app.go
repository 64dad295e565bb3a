package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbxkit/click-to-call/internal/notify"
	"github.com/pbxkit/click-to-call/internal/pbx"
	"github.com/pbxkit/click-to-call/internal/phone"
	"github.com/pbxkit/click-to-call/internal/prefs"
	"github.com/pbxkit/click-to-call/internal/state"
)

// Caller dispatches a prepared call request. Implemented by *pbx.Client.
type Caller interface {
	Dispatch(ctx context.Context, req pbx.CallRequest) pbx.Outcome
}

// Form field order. The auto-answer toggle sits below the text inputs.
const (
	fieldDomain = iota
	fieldExtension
	fieldKey
	fieldPhone
	fieldAutoAnswer
	fieldCount
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Caller    Caller
	Notifier  notify.Notifier
	Store     *state.Store
	PrefsPath string
	ThemeName string

	// InitialURI carries a tel: argument that could not be handled
	// silently (settings incomplete); the form opens with it prefilled.
	InitialURI string

	// RaiseOnForward moves focus to the phone field when a forwarded URI
	// arrives. Default is to leave focus untouched.
	RaiseOnForward bool
}

// ForwardedURIMsg delivers a tel: URI from the socket listener into the
// UI-owning goroutine. Sent via Program.Send; this is the only write path
// into session state from outside the event loop.
type ForwardedURIMsg struct {
	URI string
}

// callResultMsg reports a completed call attempt back into the event loop.
type callResultMsg struct {
	outcome pbx.Outcome
}

// Model is the root application state.
type Model struct {
	ctx       context.Context
	caller    Caller
	notifier  notify.Notifier
	store     *state.Store
	prefsPath string
	raise     bool

	inputs     [fieldPhone + 1]textinput.Model
	autoAnswer bool
	focus      int

	status   string
	statusOK bool

	theme    Theme
	keys     keyMap
	width    int
	height   int
	showHelp bool

	// initialCmd carries work queued during New (a prefilled tel: URI that
	// can dial immediately) into Init.
	initialCmd tea.Cmd
}

// New creates the form model seeded from the stored settings.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}

	m := Model{
		ctx:       ctx,
		caller:    opts.Caller,
		notifier:  notifier,
		store:     opts.Store,
		prefsPath: opts.PrefsPath,
		raise:     opts.RaiseOnForward,
		theme:     GetTheme(opts.ThemeName),
		keys:      defaultKeyMap(),
		statusOK:  true,
	}

	labels := [fieldPhone + 1]string{"Enter domain", "Enter extension", "Enter key", "Enter phone number"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = 128
		m.inputs[i] = ti
	}
	m.inputs[fieldKey].EchoMode = textinput.EchoPassword

	settings := prefs.Settings{}
	if opts.Store != nil {
		settings = opts.Store.Settings()
	}
	m.inputs[fieldDomain].SetValue(settings.Domain)
	m.inputs[fieldExtension].SetValue(settings.Extension)
	m.inputs[fieldKey].SetValue(settings.Key)
	m.autoAnswer = settings.AutoAnswer

	m.inputs[fieldDomain].Focus()

	if opts.InitialURI != "" {
		m.initialCmd = m.applyForwardedURI(opts.InitialURI)
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.initialCmd != nil {
		return tea.Batch(textinput.Blink, m.initialCmd)
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case callResultMsg:
		m.setStatus(msg.outcome.StatusText(), msg.outcome.Kind == pbx.OutcomeSuccess)
		return m, nil

	case ForwardedURIMsg:
		cmd := m.applyForwardedURI(msg.URI)
		return m, cmd
	}

	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.saveSettings()
		return m, nil

	case key.Matches(msg, m.keys.ToggleAuto):
		m.autoAnswer = !m.autoAnswer
		return m, nil

	case key.Matches(msg, m.keys.PlaceCall):
		if m.focus == fieldAutoAnswer {
			m.autoAnswer = !m.autoAnswer
			return m, nil
		}
		return m, m.placeCall()
	}

	if m.focus == fieldAutoAnswer && msg.String() == " " {
		m.autoAnswer = !m.autoAnswer
		return m, nil
	}

	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if m.focus > fieldPhone {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) setFocus(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// currentRequest snapshots the form into an ephemeral call request, so an
// in-flight attempt is unaffected by later edits.
func (m Model) currentRequest() pbx.CallRequest {
	return pbx.CallRequest{
		Domain:     strings.TrimSpace(m.inputs[fieldDomain].Value()),
		Extension:  strings.TrimSpace(m.inputs[fieldExtension].Value()),
		Key:        strings.TrimSpace(m.inputs[fieldKey].Value()),
		Number:     strings.TrimSpace(m.inputs[fieldPhone].Value()),
		AutoAnswer: m.autoAnswer,
	}
}

// placeCall validates the form and returns the dispatch command, or nil
// with an error status when a required field is missing. No HTTP request is
// issued for an invalid form.
func (m *Model) placeCall() tea.Cmd {
	req := m.currentRequest()
	if err := req.Validate(); err != nil {
		m.setStatus(fmt.Sprintf("Error: %v", err), false)
		return nil
	}

	m.setStatus(fmt.Sprintf("Initiating call to %s...", req.Number), true)
	return dispatchCmd(m.ctx, m.caller, m.notifier, m.store, req)
}

// dispatchCmd runs the call attempt off the event loop. Completion comes
// back as a callResultMsg; the notification fires regardless of whether the
// form is still showing.
func dispatchCmd(ctx context.Context, caller Caller, notifier notify.Notifier, store *state.Store, req pbx.CallRequest) tea.Cmd {
	return func() tea.Msg {
		outcome := caller.Dispatch(ctx, req)
		notifier.Notify(outcome.Notification())
		if store != nil {
			store.RecordOutcome(outcome)
		}
		return callResultMsg{outcome: outcome}
	}
}

// saveSettings persists the form fields and publishes them to the shared
// store. A failed write is logged but not surfaced; the live settings still
// take effect for this session.
func (m *Model) saveSettings() {
	settings := prefs.Settings{
		Domain:     strings.TrimSpace(m.inputs[fieldDomain].Value()),
		Extension:  strings.TrimSpace(m.inputs[fieldExtension].Value()),
		Key:        strings.TrimSpace(m.inputs[fieldKey].Value()),
		AutoAnswer: m.autoAnswer,
	}
	if err := prefs.Save(m.prefsPath, settings); err != nil {
		log.Printf("ui: save prefs: %v", err)
	}
	if m.store != nil {
		m.store.SetSettings(settings)
	}
	m.setStatus("Settings saved", true)
}

// applyForwardedURI fills the phone field from a forwarded tel: URI and,
// when the account is fully configured, dials immediately.
func (m *Model) applyForwardedURI(uri string) tea.Cmd {
	number := phone.Normalize(uri)
	if number == "" {
		return nil
	}

	m.inputs[fieldPhone].SetValue(number)
	if m.raise {
		m.setFocus(fieldPhone)
	}

	req := m.currentRequest()
	if req.Domain != "" && req.Extension != "" {
		m.setStatus(fmt.Sprintf("Received tel: link. Calling: %s", number), true)
		return dispatchCmd(m.ctx, m.caller, m.notifier, m.store, req)
	}

	m.setStatus(fmt.Sprintf("Received tel: link: %s. Configure domain and extension, then press enter", number), false)
	return nil
}

func (m *Model) setStatus(text string, ok bool) {
	m.status = text
	m.statusOK = ok
}
