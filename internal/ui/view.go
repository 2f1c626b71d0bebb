package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var body string
	switch m.dialog {
	case dialogOpen:
		body = m.viewFilePicker()
	case dialogSheet:
		body = m.viewDropdown("Select sheet", m.form.Sheets)
	case dialogColumn:
		body = m.viewDropdown("Select city column", m.form.Columns)
	case dialogSave:
		body = m.viewSave()
	case dialogError:
		body = m.viewMessage(ErrorStyle.Render("✗ Error"), ErrorBoxStyle)
	case dialogSuccess:
		body = m.viewMessage(SuccessStyle.Render("✓ Success"), BoxStyle)
	default:
		return m.viewForm()
	}

	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) viewForm() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Excel to CSV"))
	s.WriteString("\n")

	s.WriteString(LabelStyle.Render("1. Excel file"))
	s.WriteString("\n")
	pathField := m.fieldStyle(fieldPath).Render(m.pathInput.View())
	browse := m.buttonStyle(fieldBrowse).Render("Browse")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, pathField, " ", browse))
	s.WriteString("\n")

	s.WriteString(LabelStyle.Render("2. Sheet"))
	s.WriteString("\n")
	s.WriteString(m.fieldStyle(fieldSheet).Render(dropdownValue(m.form.Sheet)))
	s.WriteString("\n")

	s.WriteString(LabelStyle.Render("3. City column"))
	s.WriteString("\n")
	s.WriteString(m.fieldStyle(fieldColumn).Render(dropdownValue(m.form.Column)))
	s.WriteString("\n\n")

	s.WriteString(m.buttonStyle(fieldConvert).Render("Convert to CSV"))
	s.WriteString("\n")

	status := m.form.Status
	if m.busy {
		status = m.spinner.View() + " Working..."
	}
	s.WriteString(StatusStyle.Render(status))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render(m.help.View(keys)))

	return s.String()
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Open workbook"))
	s.WriteString("\n")
	s.WriteString(LabelStyle.Render("Excel files (*.xlsx, *.xls)"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter: open • esc: cancel"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewDropdown(title string, options []string) string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(title))
	s.WriteString("\n\n")

	for i, option := range options {
		if i == m.listCursor {
			s.WriteString(SelectedStyle.Render(fmt.Sprintf("> %s", option)))
		} else {
			s.WriteString(UnselectedStyle.Render(fmt.Sprintf("  %s", option)))
		}
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("↑/↓: navigate • enter: select • esc: cancel"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewSave() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Save CSV"))
	s.WriteString("\n")
	s.WriteString(LabelStyle.Render("CSV files (*.csv)"))
	s.WriteString("\n\n")
	s.WriteString(m.saveInput.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter: save • esc: cancel"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewMessage(title string, box lipgloss.Style) string {
	var s strings.Builder

	s.WriteString(title)
	s.WriteString("\n\n")
	s.WriteString(m.message)
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press enter to close"))

	return box.Render(s.String())
}

func (m Model) fieldStyle(f field) lipgloss.Style {
	if m.focus == f {
		return FocusedFieldStyle
	}
	return FieldStyle
}

func (m Model) buttonStyle(f field) lipgloss.Style {
	if m.focus == f {
		return FocusedButtonStyle
	}
	return ButtonStyle
}

func dropdownValue(v string) string {
	if v == "" {
		v = "—"
	}
	return fmt.Sprintf("%-30s ▾", v)
}
