package plotui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

// Color palette, matched to the plot theme.
var (
	colorBG      = c("#0f1115")
	panelBG      = c("#161a22")
	toolbarBG    = c("#1b2130")
	colorText    = c("#e6e6e6")
	colorDim     = c("#6b7280")
	colorAccent  = c("#3fa7ff")
	colorWarn    = c("#ff6b6b")
	colorVarName = c("#fbbf24")
	colorSep     = c("#2a2f3a")
)

var (
	tbStyle = lipgloss.NewStyle().
		Background(toolbarBG).
		Foreground(colorAccent).
		Bold(true)

	ftStyle = lipgloss.NewStyle().
		Background(colorBG).
		Foreground(colorDim)

	ftErrStyle = ftStyle.Foreground(colorWarn)

	bgStyle = lipgloss.NewStyle().
		Background(colorBG)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(panelBG).
			Bold(true)

	panelDimStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Background(panelBG)

	panelTextStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(panelBG)

	panelSelStyle = panelTextStyle.
			Background(c("#232a38")).
			Bold(true)

	panelVarNameStyle = lipgloss.NewStyle().
				Foreground(colorVarName).
				Background(panelBG)

	panelSepStyle = lipgloss.NewStyle().
			Foreground(colorSep).
			Background(colorBG)

	panelBgStyle = lipgloss.NewStyle().
			Background(panelBG)

	tipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Background(c("#1b2130")).
			Foreground(colorText).
			Padding(0, 1)

	modalBG = c("#141924")
)
