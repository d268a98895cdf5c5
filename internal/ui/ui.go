package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Green     = lipgloss.Color("42")
	Amber     = lipgloss.Color("214")
	Blue      = lipgloss.Color("39")
	Red       = lipgloss.Color("196")
	LightGray = lipgloss.Color("245")
)

var (
	successStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(Blue)
	debugStyle   = lipgloss.NewStyle().Foreground(LightGray)
	warnStyle    = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func Success(format string, args ...any) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...any) {
	fmt.Println(infoStyle.Render(fmt.Sprintf(format, args...)))
}

func Debug(format string, args ...any) {
	fmt.Println(debugStyle.Render(fmt.Sprintf(format, args...)))
}

func Warn(format string, args ...any) {
	fmt.Println(warnStyle.Render(fmt.Sprintf(format, args...)))
}

func Error(format string, args ...any) {
	fmt.Println(errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a titled block of lines.
func Section(title string, textLines []string) {
	fmt.Println(sectionStyle.Render(title))
	fmt.Println(strings.Join(textLines, "\n"))
}
