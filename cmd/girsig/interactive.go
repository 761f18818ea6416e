package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	nodegir "github.com/backwards-rat-race/node-gir"
	"github.com/backwards-rat-race/node-gir/gi"
	"github.com/backwards-rat-race/node-gir/gsignal"
	"github.com/backwards-rat-race/node-gir/gvalue"
	"github.com/backwards-rat-race/node-gir/js"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F87AF")).
			Padding(0, 1)

	signalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5F87AF"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type sigEntry struct {
	typeName string
	gtype    gi.GType
	name     string
	params   []gi.TypeTag
	ret      gi.TypeTag
}

func (e sigEntry) signature() string {
	var params []string
	for _, t := range e.params {
		params = append(params, t.String())
	}
	s := "(" + strings.Join(params, ", ") + ")"
	if e.ret != gi.TagVoid {
		s += " -> " + e.ret.String()
	}
	return s
}

func (e sigEntry) label() string {
	return fmt.Sprintf("%s::%s%s", e.typeName, e.name, e.signature())
}

type modelState int

const (
	stateSelectSignal modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err       error
	bridge    *nodegir.Bridge
	filename  string
	entries   []sigEntry
	inputs    []textinput.Model
	received  string
	result    string
	thrown    []string
	selected  int
	focusIdx  int
	state     modelState
	instances map[gi.GType]*gsignal.Instance
}

func newInteractiveModel(filename string) *interactiveModel {
	return &interactiveModel{
		filename:  filename,
		state:     stateSelectSignal,
		instances: make(map[gi.GType]*gsignal.Instance),
	}
}

type loadedMsg struct {
	err     error
	bridge  *nodegir.Bridge
	entries []sigEntry
}

type emitResultMsg struct {
	received string
	result   string
	thrown   []string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadRepository
}

func (m *interactiveModel) loadRepository() tea.Msg {
	bridge := nodegir.New()
	if err := bridge.Repo.LoadDefinitionsFile(m.filename); err != nil {
		return loadedMsg{err: err}
	}

	var entries []sigEntry
	for _, name := range bridge.Repo.Names() {
		gt, _ := bridge.Repo.TypeByName(name)
		info := bridge.Repo.FindByGType(gt)
		if info == nil {
			continue
		}
		var guard gi.Guard
		guard.Add(info)
		if finder, ok := info.(gi.SignalFinder); ok {
			for _, s := range finder.Signals() {
				entries = append(entries, sigEntry{
					typeName: name,
					gtype:    gt,
					name:     s.Name(),
					params:   s.ParamTags(),
					ret:      s.ReturnTag(),
				})
			}
		}
		guard.Release()
	}

	return loadedMsg{bridge: bridge, entries: entries}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.bridge != nil {
				m.bridge.Close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectSignal && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectSignal && m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectSignal:
				if len(m.entries) == 0 {
					return m, nil
				}
				m.prepareInputs()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.emitSignal

			case stateShowResult:
				m.state = stateSelectSignal
				m.received = ""
				m.result = ""
				m.thrown = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectSignal
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectSignal
				m.received = ""
				m.result = ""
				m.thrown = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.bridge = msg.bridge
		m.entries = msg.entries

	case emitResultMsg:
		m.received = msg.received
		m.result = msg.result
		m.thrown = msg.thrown
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// prepareInputs builds one text input per declared parameter plus a
// trailing input for the value the callback should return.
func (m *interactiveModel) prepareInputs() {
	e := m.entries[m.selected]
	m.inputs = make([]textinput.Model, len(e.params)+1)
	for i, tag := range e.params {
		ti := textinput.New()
		ti.Placeholder = tag.String()
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	ret := textinput.New()
	ret.Placeholder = "value the callback returns (empty = none)"
	ret.Prompt = "result: "
	ret.Width = 40
	if len(e.params) == 0 {
		ret.Focus()
	}
	m.inputs[len(e.params)] = ret
	m.focusIdx = 0
}

func (m *interactiveModel) emitSignal() tea.Msg {
	e := m.entries[m.selected]

	inst, ok := m.instances[e.gtype]
	if !ok {
		inst = gsignal.NewInstance(strings.ToLower(e.typeName), e.gtype)
		m.instances[e.gtype] = inst
	}

	resultText := m.inputs[len(e.params)].Value()
	var received string
	cb := js.NewFunction("handler", func(this js.Value, args []js.Value) js.Value {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.String()
		}
		received = strings.Join(parts, ", ")
		return parseJSValue(resultText)
	})

	id, ok := m.bridge.Connect(inst, e.name, cb)
	if !ok {
		return emitResultMsg{thrown: []string{"no closure produced for " + e.label()}}
	}
	defer m.bridge.Sys.Disconnect(id)

	params := make([]gvalue.Value, len(e.params))
	for i, tag := range e.params {
		v, err := parseGValue(strings.TrimSpace(m.inputs[i].Value()), tag)
		if err != nil {
			return emitResultMsg{thrown: []string{err.Error()}}
		}
		params[i] = v
	}

	var ret *gvalue.Value
	if e.ret != gi.TagVoid {
		slot := gvalue.New(e.ret)
		ret = &slot
	}

	m.bridge.Emit(inst, e.name, ret, params...)

	msg := emitResultMsg{received: received}
	for _, err := range m.bridge.RT.TakeThrown() {
		msg.thrown = append(msg.thrown, err.Error())
	}
	if ret != nil && ret.IsSet() {
		msg.result = ret.String()
	}
	return msg
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Signal Runner: " + m.filename))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q to quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectSignal:
		if len(m.entries) == 0 {
			b.WriteString("No signals defined.\n")
		}
		for i, e := range m.entries {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + e.label()))
			} else {
				b.WriteString("  " + typeStyle.Render(e.typeName) + "::" +
					signalStyle.Render(e.name) + e.signature())
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter connect+emit • q quit"))

	case stateInputArgs:
		b.WriteString(signalStyle.Render(m.entries[m.selected].label()))
		b.WriteString("\n\n")
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter emit • esc back"))

	case stateShowResult:
		b.WriteString(signalStyle.Render(m.entries[m.selected].label()))
		b.WriteString("\n\n")
		if m.received != "" {
			b.WriteString("callback received: " + resultStyle.Render(m.received))
			b.WriteString("\n")
		}
		if m.result != "" {
			b.WriteString("return slot: " + resultStyle.Render(m.result))
			b.WriteString("\n")
		}
		for _, t := range m.thrown {
			b.WriteString(errorStyle.Render("uncaught: " + t))
			b.WriteString("\n")
		}
		if m.received == "" && m.result == "" && len(m.thrown) == 0 {
			b.WriteString("emission completed with no handler output\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename))
	_, err := p.Run()
	return err
}
