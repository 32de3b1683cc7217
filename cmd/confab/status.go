package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"confab/pkg/registry"
	"confab/pkg/types"
)

// Style definitions
var (
	primaryColor = lipgloss.Color("#FF79C6") // Pink
	accentColor  = lipgloss.Color("#50FA7B") // Green
	dangerColor  = lipgloss.Color("#FF5555") // Red
	mutedColor   = lipgloss.Color("#6272A4") // Comment
	bgLightColor = lipgloss.Color("#44475A") // Current Line
	fgColor      = lipgloss.Color("#F8F8F2") // Foreground

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			MarginBottom(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(16)

	valueStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Bold(true)

	accentValueStyle = lipgloss.NewStyle().
				Foreground(accentColor).
				Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD")).
			Background(bgLightColor).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

func createPanel(title, content string) string {
	full := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), content)
	return panelStyle.Render(full)
}

func statusCmd() *cobra.Command {
	var (
		registryAddress string
		names           []string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which federation members are bound in the naming directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg, err := loadConfig(); err != nil {
				return err
			} else if cfg != nil {
				registryAddress = cfg.Registry.Address
				names = append([]string{cfg.MemberID}, cfg.Peers...)
			}
			if len(names) == 0 {
				return fmt.Errorf("no member names given (use --names or a config file)")
			}

			reg, err := registry.Connect(registryAddress)
			if err != nil {
				return err
			}
			defer reg.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(bgLightColor)).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == 0 {
						return headerStyle
					}
					return rowStyle
				})
			t.Headers("MEMBER", "STATUS", "ADDRESS")

			bound := 0
			for _, name := range names {
				address, err := reg.Lookup(ctx, name)
				switch {
				case err == nil:
					bound++
					t.Row(name, "🟢 "+accentValueStyle.Render("BOUND"), address)
				case errors.Is(err, registry.ErrNotBound):
					t.Row(name, "🔴 "+lipgloss.NewStyle().Foreground(dangerColor).Bold(true).Render("UNBOUND"), mutedStyle.Render("-"))
				default:
					return fmt.Errorf("lookup of %q failed: %w", name, err)
				}
			}

			var content strings.Builder
			content.WriteString(labelStyle.Render("Registry:") + " " + valueStyle.Render(registryAddress) + "\n")
			content.WriteString(labelStyle.Render("Members:") + " " + valueStyle.Render(joinNames(names)) + "\n")
			readiness := fmt.Sprintf("%d/%d bound", bound, len(names))
			if bound == len(names) {
				content.WriteString(labelStyle.Render("Federation:") + " " + accentValueStyle.Render(readiness+" — COMPLETE") + "\n")
			} else {
				content.WriteString(labelStyle.Render("Federation:") + " " +
					lipgloss.NewStyle().Foreground(dangerColor).Bold(true).Render(readiness+" — INCOMPLETE") + "\n")
			}
			content.WriteString("\n" + t.Render())

			fmt.Println(createPanel("FEDERATION STATUS", strings.TrimSpace(content.String())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&registryAddress, "registry", "r", "localhost:8100", "naming directory address")
	cmd.Flags().StringSliceVarP(&names, "names", "n", nil, "member names to look up (comma-separated)")
	return cmd
}

// printEvent renders one event snapshot for the client get command.
func printEvent(snap *types.EventSnapshot) {
	var content strings.Builder
	content.WriteString(labelStyle.Render("Location:") + " " + valueStyle.Render(snap.Location) + "\n")
	content.WriteString(labelStyle.Render("Duration:") + " " + valueStyle.Render(fmt.Sprintf("%d min", snap.Duration)) + "\n")
	content.WriteString(labelStyle.Render("Author:") + " " + valueStyle.Render(snap.Author) + "\n")

	if snap.Finalized {
		content.WriteString(labelStyle.Render("Finalized:") + " " + accentValueStyle.Render(snap.FinalizedDate) + "\n")
	} else {
		content.WriteString(labelStyle.Render("Finalized:") + " " + mutedStyle.Render("no") + "\n")
	}

	if len(snap.DateOptions) > 0 {
		content.WriteString("\n" + labelStyle.Render("Date options:") + "\n")
		for _, d := range snap.DateOptions {
			votes := 0
			for _, voted := range snap.Votes {
				for _, v := range voted {
					if v == d {
						votes++
					}
				}
			}
			content.WriteString(fmt.Sprintf("  %s %s\n", valueStyle.Render(d), mutedStyle.Render(fmt.Sprintf("(%d votes)", votes))))
		}
	}

	if len(snap.Votes) > 0 {
		invited := make([]string, 0, len(snap.Votes))
		for name := range snap.Votes {
			invited = append(invited, name)
		}
		sort.Strings(invited)
		content.WriteString("\n" + labelStyle.Render("Invited:") + " " + valueStyle.Render(joinNames(invited)) + "\n")
	}

	fmt.Println(createPanel("EVENT "+snap.Name, strings.TrimSpace(content.String())))
}
