package ui

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/nconklindev/citycsv/internal/form"
	"github.com/nconklindev/citycsv/internal/types"
	"github.com/nconklindev/citycsv/internal/workbook"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type field int

const (
	fieldPath field = iota
	fieldBrowse
	fieldSheet
	fieldColumn
	fieldConvert
	fieldCount
)

type dialog int

const (
	dialogNone dialog = iota
	dialogOpen
	dialogSheet
	dialogColumn
	dialogSave
	dialogError
	dialogSuccess
)

// Model is the converter window. Form state lives in form; everything
// else here is widget state.
type Model struct {
	form *form.State

	focus      field
	dialog     dialog
	pathInput  textinput.Model
	saveInput  textinput.Model
	filepicker filepicker.Model
	spinner    spinner.Model
	help       help.Model
	listCursor int
	busy       bool
	prepared   *types.Table
	message    string
	width      int
	height     int
}

type workbookLoadedMsg struct {
	sel *form.WorkbookSelection
	err error
}

type columnsLoadedMsg struct {
	sel *form.ColumnSelection
	err error
}

type tablePreparedMsg struct {
	table *types.Table
	err   error
}

type conversionCompleteMsg struct {
	result *types.ConversionResult
	err    error
}

func InitialModel(state *form.State) Model {
	fp := filepicker.New()
	fp.AllowedTypes = workbook.PickerTypes()
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accentColor)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(highlightColor)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(highlightColor)
	fp.Styles.File = lipgloss.NewStyle().Foreground(textColor)
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(mutedColor)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(mutedColor)

	path := textinput.New()
	path.Placeholder = "path/to/workbook.xlsx"
	path.Prompt = ""
	path.Width = 50
	path.Focus()

	save := textinput.New()
	save.Prompt = "Save as: "
	save.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return Model{
		form:       state,
		focus:      fieldPath,
		pathInput:  path,
		saveInput:  save,
		filepicker: fp,
		spinner:    sp,
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		height := msg.Height - 12
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workbookLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.form.ReportError("read workbook", msg.err)
			m.pathInput.SetValue(m.form.Path)
			return m.showError("Failed to read workbook: " + msg.err.Error()), nil
		}
		m.form.ApplyWorkbook(msg.sel)
		m.pathInput.SetValue(m.form.Path)
		m.pathInput.CursorEnd()
		return m, nil

	case columnsLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.form.ReportError("read sheet", msg.err)
			return m.showError("Failed to read sheet: " + msg.err.Error()), nil
		}
		m.form.ApplyColumns(msg.sel)
		return m, nil

	case tablePreparedMsg:
		m.busy = false
		if msg.err != nil {
			m.form.ReportError("load sheet", msg.err)
			return m.showError("Conversion failed: " + msg.err.Error()), nil
		}
		m.prepared = msg.table
		m.dialog = dialogSave
		m.saveInput.SetValue(m.form.DefaultDestination())
		m.saveInput.CursorEnd()
		return m, m.saveInput.Focus()

	case conversionCompleteMsg:
		m.busy = false
		m.prepared = nil
		if msg.err != nil {
			m.form.ReportError("write csv", msg.err)
			return m.showError("Conversion failed: " + msg.err.Error()), nil
		}
		m.form.ApplyResult(msg.result)
		m.dialog = dialogSuccess
		m.message = "Conversion complete!\n\n" + msg.result.OutputFile
		return m, nil
	}

	// The file picker reads directories asynchronously and needs its own
	// messages even while closed.
	if m.dialog == dialogOpen {
		return m.updateFilePicker(msg)
	}
	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.dialog {
	case dialogOpen:
		if key.Matches(msg, keys.Cancel) {
			m.dialog = dialogNone
			return m, nil
		}
		return m.updateFilePicker(msg)

	case dialogSheet, dialogColumn:
		return m.handleDropdownKey(msg)

	case dialogSave:
		switch msg.String() {
		case "esc":
			// Cancelling the save dialog leaves the status line alone.
			m.dialog = dialogNone
			m.prepared = nil
			m.saveInput.Blur()
			return m, nil
		case "enter":
			dest := m.saveInput.Value()
			if dest == "" {
				return m, nil
			}
			m.dialog = dialogNone
			m.saveInput.Blur()
			m.busy = true
			return m, tea.Batch(m.spinner.Tick, exportTable(m.prepared, m.form.Path, m.form.Sheet, m.form.Column, dest))
		}
		var cmd tea.Cmd
		m.saveInput, cmd = m.saveInput.Update(msg)
		return m, cmd

	case dialogError, dialogSuccess:
		switch msg.String() {
		case "enter", "esc", " ", "q":
			m.dialog = dialogNone
			m.message = ""
		}
		return m, nil
	}

	return m.handleFormKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(msg, keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	}

	if m.focus == fieldPath {
		if msg.String() == "enter" {
			path := m.pathInput.Value()
			if path == "" {
				return m, nil
			}
			return m.startWorkbook(path)
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Select):
		switch m.focus {
		case fieldBrowse:
			return m.openFilePicker()
		case fieldSheet:
			if len(m.form.Sheets) > 0 {
				m.dialog = dialogSheet
				m.listCursor = max(slices.Index(m.form.Sheets, m.form.Sheet), 0)
			}
		case fieldColumn:
			if len(m.form.Columns) > 0 {
				m.dialog = dialogColumn
				m.listCursor = max(slices.Index(m.form.Columns, m.form.Column), 0)
			}
		case fieldConvert:
			m.busy = true
			return m, tea.Batch(m.spinner.Tick, prepareTable(m.form.Opener(), m.form.Path, m.form.Sheet, m.form.Column))
		}
	}

	return m, nil
}

func (m Model) handleDropdownKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.form.Sheets
	if m.dialog == dialogColumn {
		options = m.form.Columns
	}

	switch {
	case key.Matches(msg, keys.Cancel):
		m.dialog = dialogNone
	case key.Matches(msg, keys.Up):
		if m.listCursor > 0 {
			m.listCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.listCursor < len(options)-1 {
			m.listCursor++
		}
	case key.Matches(msg, keys.Select):
		if m.listCursor >= len(options) {
			m.dialog = dialogNone
			return m, nil
		}
		choice := options[m.listCursor]
		if m.dialog == dialogColumn {
			m.dialog = dialogNone
			if err := m.form.SelectColumn(choice); err != nil {
				return m.showError(err.Error()), nil
			}
			return m, nil
		}
		m.dialog = dialogNone
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, loadColumns(m.form.Opener(), m.form.Path, choice))
	}

	return m, nil
}

func (m Model) setFocus(f field) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == fieldPath {
		return m, m.pathInput.Focus()
	}
	m.pathInput.Blur()
	return m, nil
}

func (m Model) openFilePicker() (tea.Model, tea.Cmd) {
	if m.form.Path != "" {
		m.filepicker.CurrentDirectory = filepath.Dir(m.form.Path)
	}
	m.dialog = dialogOpen
	return m, m.filepicker.Init()
}

func (m Model) updateFilePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
		m.dialog = dialogNone
		return m.startWorkbook(path)
	}
	if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
		return m.showError("Not a spreadsheet: " + filepath.Base(path)), nil
	}

	return m, cmd
}

func (m Model) startWorkbook(path string) (tea.Model, tea.Cmd) {
	m.pathInput.SetValue(path)
	m.busy = true
	return m, tea.Batch(m.spinner.Tick, loadWorkbook(m.form.Opener(), path))
}

func (m Model) showError(text string) Model {
	m.dialog = dialogError
	m.message = text
	return m
}

func loadWorkbook(open form.Opener, path string) tea.Cmd {
	return func() tea.Msg {
		sel, err := form.ResolveWorkbook(open, path)
		return workbookLoadedMsg{sel: sel, err: err}
	}
}

func loadColumns(open form.Opener, path, sheet string) tea.Cmd {
	return func() tea.Msg {
		sel, err := form.ResolveColumns(open, path, sheet)
		return columnsLoadedMsg{sel: sel, err: err}
	}
}

func prepareTable(open form.Opener, path, sheet, column string) tea.Cmd {
	return func() tea.Msg {
		table, err := form.Prepare(open, path, sheet, column)
		return tablePreparedMsg{table: table, err: err}
	}
}

func exportTable(table *types.Table, path, sheet, column, dest string) tea.Cmd {
	return func() tea.Msg {
		result, err := form.Export(table, path, sheet, column, dest)
		return conversionCompleteMsg{result: result, err: err}
	}
}
