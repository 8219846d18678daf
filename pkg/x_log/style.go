package x_log

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

//
// ---------- IBM Carbon Colors ----------

const (
	ColorTeal40    = "#3ddbd9"
	ColorBlue60    = "#4589ff"
	ColorBlue40    = "#78a9ff"
	ColorBlue70    = "#0043ce"
	ColorBlueBase  = "#0f62fe"
	ColorRed60     = "#da1e28"
	ColorRedStrong = "#ff0000"
	ColorOrange40  = "#ff832b"
	ColorGreen50   = "#24a148"
	ColorGray60    = "#8d8d8d"
	ColorGray10    = "#f4f4f4"
)

//
// ---------- Styles Definition ----------

// Styles defines all formatting styles used for console output
type Styles struct {
	Out               io.Writer                       // output target
	NoColor           bool                            // plain text, e.g. when Out is not a terminal
	Timestamp         lipgloss.Style                  // style for timestamps
	Levels            map[zerolog.Level]lipgloss.Style // level badge colors
	Keys              map[string]lipgloss.Style       // custom field keys
	DefaultKeyStyle   lipgloss.Style                  // fallback for unknown keys
	DefaultValueStyle lipgloss.Style                  // fallback for unknown values
}

//
// ---------- Theme Selectors ----------

// DefaultStylesByName returns a theme by name ("dark", "light")
func DefaultStylesByName(name string) *Styles {
	switch strings.ToLower(name) {
	case "light":
		return DefaultStylesLight()
	default:
		return DefaultStylesDark()
	}
}

//
// ---------- Console Formatter ----------

// ConsoleWriterWithStyles builds a zerolog.ConsoleWriter with styles
func ConsoleWriterWithStyles(styles *Styles) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{
		Out:        styles.Out,
		NoColor:    styles.NoColor,
		TimeFormat: "01-02 15:04:05",
	}
	if styles.NoColor {
		return cw
	}

	cw.FormatLevel = func(i any) string {
		lvl := strings.ToLower(fmt.Sprint(i))
		label := lvl
		if len(label) > 3 {
			label = label[:3]
		}
		color := ColorGray60
		if parsed, err := zerolog.ParseLevel(lvl); err == nil {
			if st, ok := styles.Levels[parsed]; ok {
				if c, ok := st.GetForeground().(lipgloss.Color); ok {
					color = string(c)
				}
			}
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(color)).
			Padding(0, 1).
			Render(strings.ToUpper(label))
	}

	cw.FormatTimestamp = func(i any) string {
		return styles.Timestamp.Render(fmt.Sprintf("[%s]", i))
	}

	cw.FormatFieldName = func(i any) string {
		key := fmt.Sprint(i)
		style, ok := styles.Keys[key]
		if !ok {
			style = styles.DefaultKeyStyle
		}
		eqStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray60))
		return style.Render(key) + eqStyle.Render("=")
	}

	cw.FormatFieldValue = func(i any) string {
		return styles.DefaultValueStyle.Render(fmt.Sprint(i))
	}

	cw.FormatMessage = func(i any) string {
		if i == nil {
			return ""
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray10)).
			Render(fmt.Sprint(i))
	}
	return cw
}

//
// ---------- Dark Theme ----------

func DefaultStylesDark() *Styles {
	return &Styles{
		Timestamp: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray60)).
			Width(16),

		DefaultKeyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorBlue40)),

		DefaultValueStyle: lipgloss.NewStyle(),

		Levels: map[zerolog.Level]lipgloss.Style{
			zerolog.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTeal40)),
			zerolog.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlue60)),
			zerolog.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange40)),
			zerolog.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed60)),
			zerolog.FatalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRedStrong)),
		},

		Keys: map[string]lipgloss.Style{
			"module":      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlue40)),
			"scenario":    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlue40)),
			"entries":     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen50)),
			"rolled_back": lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange40)),
			"error":       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed60)),
		},
	}
}

//
// ---------- Light Theme ----------

func DefaultStylesLight() *Styles {
	return &Styles{
		Timestamp: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGray60)).
			Width(16),

		DefaultKeyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorBlueBase)),

		DefaultValueStyle: lipgloss.NewStyle(),

		Levels: map[zerolog.Level]lipgloss.Style{
			zerolog.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray60)),
			zerolog.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlue70)),
			zerolog.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange40)),
			zerolog.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed60)),
			zerolog.FatalLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRedStrong)),
		},

		Keys: map[string]lipgloss.Style{
			"module":      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlueBase)),
			"scenario":    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlueBase)),
			"entries":     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen50)),
			"rolled_back": lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange40)),
			"error":       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed60)),
		},
	}
}
