package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/DimitrijeDobrota/startgit/internal/site"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// printResults renders the build summary table
func printResults(w io.Writer, results []site.RepoResult) {
	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
		nameColor    = lipgloss.Color("#BD93F9") // Purple
		numberColor  = lipgloss.Color("#FF79C6") // Pink
		stateColor   = lipgloss.Color("#E9E9F4") // Light purple/white
		borderColor  = lipgloss.Color("#6272A4") // Muted purple
		summaryColor = lipgloss.Color("#8BE9FD") // Cyan accent
	)

	const (
		repoWidth   = 20
		branchWidth = 16
		numWidth    = 10
		stateWidth  = 12
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true).
		Padding(0, 1)
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	nameStyle := lipgloss.NewStyle().
		Foreground(nameColor).
		Padding(0, 1)
	numStyle := lipgloss.NewStyle().
		Foreground(numberColor).
		Padding(0, 1).
		Width(numWidth).
		Align(lipgloss.Right)
	stateStyle := lipgloss.NewStyle().
		Foreground(stateColor).
		Padding(0, 1).
		Width(stateWidth)

	sep := borderStyle.Render("│")

	headers := []string{
		headerStyle.Width(repoWidth).Render("REPOSITORY"),
		headerStyle.Width(branchWidth).Render("BRANCH"),
		headerStyle.Width(numWidth).Render("COMMITS"),
		headerStyle.Width(numWidth).Render("WRITTEN"),
		headerStyle.Width(stateWidth).Render("STATE"),
	}
	fmt.Fprintln(w, strings.Join(headers, sep))

	separatorParts := []string{
		strings.Repeat("─", repoWidth),
		strings.Repeat("─", branchWidth),
		strings.Repeat("─", numWidth),
		strings.Repeat("─", numWidth),
		strings.Repeat("─", stateWidth),
	}
	fmt.Fprintln(w, borderStyle.Render(strings.Join(separatorParts, "┼")))

	var written, branches, skipped int
	for _, repo := range results {
		if repo.Skipped {
			skipped++
			cells := []string{
				nameStyle.Width(repoWidth).Render(repo.Path),
				nameStyle.Width(branchWidth).Render("-"),
				numStyle.Render("-"),
				numStyle.Render("-"),
				stateStyle.Render("skipped"),
			}
			fmt.Fprintln(w, strings.Join(cells, sep))
			continue
		}

		for _, br := range repo.Branches {
			branches++
			written += br.Written

			state := "unchanged"
			if br.Changed {
				state = "updated"
			}

			cells := []string{
				nameStyle.Width(repoWidth).Render(repo.Name),
				nameStyle.Width(branchWidth).Render(br.Branch),
				numStyle.Render(humanize.Comma(int64(br.Commits))),
				numStyle.Render(humanize.Comma(int64(br.Written))),
				stateStyle.Render(state),
			}
			fmt.Fprintln(w, strings.Join(cells, sep))
		}
	}

	fmt.Fprintln(w)
	summaryStyle := lipgloss.NewStyle().
		Foreground(summaryColor).
		Italic(true)

	summary := fmt.Sprintf("%d repositories, %d branches, %s commit pages written",
		len(results)-skipped, branches, humanize.Comma(int64(written)))
	if skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", skipped)
	}
	fmt.Fprintln(w, summaryStyle.Render(summary))
}
