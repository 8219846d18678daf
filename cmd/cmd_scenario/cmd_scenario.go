package cmd_scenario

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rskv-p/trie/config"
	"github.com/rskv-p/trie/constant"
	"github.com/rskv-p/trie/internal/harness"

	"github.com/spf13/cobra"
)

var (
	colorPass = lipgloss.Color("#00D787")
	colorFail = lipgloss.Color("#FF5F87")
	colorDim  = lipgloss.AdaptiveColor{Light: "250", Dark: "238"}

	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	nameStyle   = lipgloss.NewStyle().Width(12)
	numStyle    = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	resultStyle = lipgloss.NewStyle().PaddingLeft(2)
	passStyle   = resultStyle.Bold(true).Foreground(colorPass)
	failStyle   = resultStyle.Bold(true).Foreground(colorFail)
	errStyle    = lipgloss.NewStyle().Foreground(colorDim).PaddingLeft(2)
)

var Cmd = &cobra.Command{
	Use:   "scenario [name|all]",
	Short: "Run harness scenarios (" + strings.Join(harness.Names(), ", ") + ")",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hc := config.HarnessFrom(cmd.Context())

		name := "all"
		if len(args) == 1 {
			name = args[0]
		}

		var reports []harness.Report
		if strings.EqualFold(name, "all") {
			reports = harness.All(hc)
		} else {
			r, err := harness.Run(name, hc)
			if err != nil {
				return err
			}
			reports = []harness.Report{r}
		}

		Render(cmd.OutOrStdout(), reports)

		if failed := countFailed(reports); failed > 0 {
			return fmt.Errorf("%d of %d scenarios: %w", failed, len(reports), constant.ErrCheckFailed)
		}
		return nil
	},
}

// Render writes one row per report and a summary line.
func Render(w io.Writer, reports []harness.Report) {
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(nameStyle.Render("SCENARIO")),
		headerStyle.Render(numStyle.Render("STEPS")),
		headerStyle.Render(numStyle.Render("TIME")),
		headerStyle.Render(resultStyle.Render("RESULT")),
	))

	for _, r := range reports {
		result := passStyle.Render("PASS")
		if !r.Passed {
			result = failStyle.Render("FAIL")
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top,
			nameStyle.Render(r.Name),
			numStyle.Render(fmt.Sprint(r.Steps)),
			numStyle.Render(r.Duration.Round(100 * time.Microsecond).String()),
			result,
		))
		if r.Err != nil {
			fmt.Fprintln(w, errStyle.Render(r.Err.Error()))
		}
	}

	fmt.Fprintf(w, "%d/%d passed\n", len(reports)-countFailed(reports), len(reports))
}

func countFailed(reports []harness.Report) int {
	n := 0
	for _, r := range reports {
		if !r.Passed {
			n++
		}
	}
	return n
}
