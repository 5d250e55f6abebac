package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/stageside/bracketeer/pkg/bracket"
	"github.com/stageside/bracketeer/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing a bracket.
func (c *CLI) inspectCommand() *cobra.Command {
	var remote sourceFlags

	cmd := &cobra.Command{
		Use:   "inspect [matches.json]",
		Short: "Browse a bracket interactively in the terminal",
		Long: `Browse a bracket interactively in the terminal.

The inspect command validates the match records, organizes them into
rounds, and opens an interactive list. Navigate with the arrow keys and
press enter on a match to print its details.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args, remote)
		},
	}

	remote.register(cmd)
	return cmd
}

// runInspect loads the bracket and starts the interactive browser.
func (c *CLI) runInspect(ctx context.Context, args []string, remote sourceFlags) error {
	raw, sourceName, err := c.loadMatches(ctx, args, remote)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	matches, validation, err := runner.Validate(ctx, pipeline.Options{
		Matches: raw,
		Source:  sourceName,
		Logger:  c.Logger,
	})
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	for _, w := range validation.Warnings {
		printWarning("%s", w)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no valid matches in %s", sourceName)
	}

	rounds := bracket.OrganizeIntoRounds(matches, runner.Memo)

	model := NewBracketModel(rounds)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	if m, ok := final.(BracketModel); ok && m.Selected != nil {
		printMatchDetail(*m.Selected, m.SelectedRound, len(rounds))
	}
	return nil
}

// =============================================================================
// BracketModel - Interactive match browsing
// =============================================================================

// bracketRow is one selectable entry in the match list.
type bracketRow struct {
	match      bracket.Match
	roundIndex int
}

// BracketModel is the bubbletea model for interactive bracket browsing.
type BracketModel struct {
	Rows          []bracketRow
	RoundCount    int
	Cursor        int
	Selected      *bracket.Match
	SelectedRound int
	Height        int
	Offset        int
}

// NewBracketModel creates a bracket model from organized rounds.
func NewBracketModel(rounds [][]bracket.Match) BracketModel {
	var rows []bracketRow
	for i, round := range rounds {
		for _, m := range round {
			rows = append(rows, bracketRow{match: m, roundIndex: i})
		}
	}
	return BracketModel{
		Rows:       rows,
		RoundCount: len(rounds),
		Height:     15,
	}
}

func (m BracketModel) Init() tea.Cmd {
	return nil
}

func (m BracketModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			row := m.Rows[m.Cursor]
			m.Selected = &row.match
			m.SelectedRound = row.roundIndex
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BracketModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Bracket"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		info := bracket.TeamLabels(r.match)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		score := "—"
		if r.match.Status == bracket.StatusCompleted {
			score = fmt.Sprintf("%d - %d", r.match.RedScore, r.match.BlueScore)
		}

		rows = append(rows, []string{
			cursor,
			bracket.RoundName(r.roundIndex, m.RoundCount),
			r.match.ID,
			strings.Join(info.Red, ", "),
			strings.Join(info.Blue, ", "),
			statusLabel(r.match.Status),
			score,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Round", "Match", "Red", "Blue", "Status", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[actualIdx]
			completed := r.match.Status == bracket.StatusCompleted
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				if completed {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if !completed {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// statusLabel renders a match status for display.
func statusLabel(status string) string {
	switch status {
	case bracket.StatusCompleted:
		return "played"
	case bracket.StatusPending:
		return "pending"
	default:
		return strings.ToLower(status)
	}
}

// printMatchDetail prints the selected match after the browser exits.
func printMatchDetail(m bracket.Match, roundIndex, roundCount int) {
	info := bracket.TeamLabels(m)

	printKeyValue("Match", m.ID)
	printKeyValue("Round", bracket.RoundName(roundIndex, roundCount))
	printKeyValue("Red", strings.Join(info.Red, ", "))
	printKeyValue("Blue", strings.Join(info.Blue, ", "))
	printKeyValue("Status", statusLabel(m.Status))
	if m.Status == bracket.StatusCompleted {
		printKeyValue("Score", fmt.Sprintf("%d - %d", m.RedScore, m.BlueScore))
		if m.WinningAlliance != "" {
			printKeyValue("Winner", statusLabel(m.WinningAlliance))
		}
	}
	if m.ScheduledTime != "" {
		printKeyValue("Scheduled", m.ScheduledTime)
	}
}
