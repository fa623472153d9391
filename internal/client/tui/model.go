// Package tui renders the client session shell as a terminal UI.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/99minutos/auth-system/internal/client/api"
	"github.com/99minutos/auth-system/internal/client/session"
)

const requestTimeout = 15 * time.Second

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

type submitDoneMsg struct {
	notice string
	err    error
}

type mountDoneMsg struct {
	resp *api.DashboardResponse
	err  error
}

type logoutDoneMsg struct {
	err error
}

// Model is the bubbletea model around a session.Shell. Rendering is driven
// only by the shell's State and Mode.
type Model struct {
	shell   *session.Shell
	inputs  []textinput.Model
	focus   int
	busy    bool
	notice  string
	err     string
	profile *api.DashboardResponse
}

func New(shell *session.Shell) Model {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 128
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldUsername].Placeholder = "Username"
	inputs[fieldEmail].Placeholder = "Email"
	inputs[fieldPassword].Placeholder = "Password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'

	// A stored session is fetched by Init; input waits for that result.
	m := Model{shell: shell, inputs: inputs, busy: shell.State().Status == session.Authenticated}
	m.focus = m.visibleFields()[0]
	m.inputs[m.focus].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.shell.State().Status == session.Authenticated {
		return m.mount()
	}
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.shell.State().Status == session.Authenticated {
			return m.updateDashboard(msg)
		}
		return m.updateForm(msg)

	case submitDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err, m.notice = msg.err.Error(), ""
			return m, nil
		}
		m.err, m.notice = "", msg.notice
		m.inputs[fieldPassword].SetValue("")
		if m.shell.State().Status == session.Authenticated {
			cmd := m.mount()
			return m, cmd
		}
		m.refocus()
		return m, nil

	case mountDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.profile = nil
			m.err, m.notice = msg.err.Error(), ""
			m.refocus()
			return m, nil
		}
		if m.shell.State().Status != session.Authenticated {
			return m, nil
		}
		m.profile = msg.resp
		return m, nil

	case logoutDoneMsg:
		m.profile = nil
		m.notice = ""
		m.err = ""
		if msg.err != nil {
			m.err = msg.err.Error()
		}
		m.refocus()
		return m, nil
	}

	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+l", "l":
		shell := m.shell
		return m, func() tea.Msg { return logoutDoneMsg{err: shell.Logout()} }
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlT:
		m.shell.ToggleMode()
		m.err, m.notice = "", ""
		m.refocus()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.moveFocus(1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.moveFocus(-1)
		return m, nil
	case tea.KeyEnter:
		m.busy = true
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() tea.Cmd {
	shell := m.shell
	form := session.Form{
		Username: m.inputs[fieldUsername].Value(),
		Email:    m.inputs[fieldEmail].Value(),
		Password: m.inputs[fieldPassword].Value(),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		notice, err := shell.Submit(ctx, form)
		return submitDoneMsg{notice: notice, err: err}
	}
}

func (m *Model) mount() tea.Cmd {
	m.busy = true
	shell := m.shell
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := shell.Mount(ctx)
		return mountDoneMsg{resp: resp, err: err}
	}
}

func (m Model) visibleFields() []int {
	if m.shell.Mode() == session.ModeRegister {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m *Model) moveFocus(delta int) {
	fields := m.visibleFields()
	idx := 0
	for i, f := range fields {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	m.setFocus(fields[idx])
}

// refocus puts the cursor on the first visible field.
func (m *Model) refocus() {
	m.setFocus(m.visibleFields()[0])
}

func (m *Model) setFocus(field int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = field
	m.inputs[field].Focus()
}

func (m Model) View() string {
	header := headerStyle.Render(" AUTH CLIENT ") + "\n"

	var sub, body, footer string
	if m.shell.State().Status == session.Authenticated {
		sub = subHeaderStyle.Render("Dashboard") + "\n"
		body = cardStyle.Render(m.dashboardView())
		footer = footerStyle.Render("▸ l: logout • q / ctrl+c: exit")
	} else {
		title := "Login"
		toggle := "Don't have an account? ctrl+t to register"
		if m.shell.Mode() == session.ModeRegister {
			title = "Register"
			toggle = "Already have an account? ctrl+t to login"
		}
		sub = subHeaderStyle.Render(title) + "\n"
		body = cardStyle.Render(m.formView())
		footer = footerStyle.Render("▸ enter: submit • tab: next field • " + toggle + " • ctrl+c: exit")
	}

	var status string
	switch {
	case m.busy:
		status = "\n" + noticeStyle.Render("Loading...")
	case m.err != "":
		status = "\n" + errorTextStyle.Render("✘ "+m.err)
	case m.notice != "":
		status = "\n" + noticeStyle.Render("✓ "+m.notice)
	}

	return fmt.Sprintf("%s%s%s%s\n%s", header, sub, body, status, footer)
}

func (m Model) formView() string {
	var b strings.Builder
	for _, f := range m.visibleFields() {
		label := labelStyle.Render(m.inputs[f].Placeholder)
		if f == m.focus {
			label = focusedStyle.Width(12).Render(m.inputs[f].Placeholder)
		}
		b.WriteString(label + " " + m.inputs[f].View() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) dashboardView() string {
	if m.profile == nil {
		return valueStyle.Render("Loading...")
	}
	return fmt.Sprintf("%s\n\n%s %s",
		valueStyle.Render(m.profile.Message),
		labelStyle.Render("Welcome,"), valueStyle.Render(m.profile.User.Email+"!"),
	)
}
