package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cr-wrapped/internal/model"
)

// PrintHeader prints a one-line identity summary for the player.
func PrintHeader(w io.Writer, ins model.Insights) {
	tc := ins.TrophyRollerCoaster
	fmt.Fprintf(w, "\nPlayer: %s (%s)  |  Trophies: %d  |  Best: %d  |  Archetype: %s\n\n",
		ins.PlayerName, ins.PlayerTag, tc.Current, tc.Best, ins.DeckArchetype)
}

// PrintLoyalCards prints the top-used-cards table.
func PrintLoyalCards(w io.Writer, cards []model.LoyalCard) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No card usage data.")
		return
	}
	table := newTable(w)
	table.Header("#", "CARD", "USES")
	for i, c := range cards {
		table.Append(strconv.Itoa(i+1), c.Name, strconv.Itoa(c.Count))
	}
	table.Render()
}

// PrintHighlights prints the single-value insight rows.
func PrintHighlights(w io.Writer, ins model.Insights) {
	table := newTable(w)
	table.Header("INSIGHT", "VALUE")

	table.Append("Longest win streak", strconv.Itoa(ins.LongestWinStreak))
	table.Append("Comeback king", fmt.Sprintf("%.1f%% of wins", ins.ComebackKingPercentage))
	table.Append("Deck archetype", ins.DeckArchetype)

	gem := "—"
	if ins.RareGem.Name != "N/A" {
		gem = fmt.Sprintf("%s (%.1f%% over %d uses)", ins.RareGem.Name, ins.RareGem.WinRate, ins.RareGem.Usage)
	}
	table.Append("Rare gem", gem)

	peak := "—"
	if ins.PeakPerformanceHours.Hour != "N/A" {
		peak = fmt.Sprintf("%s (%.1f%% win rate)", ins.PeakPerformanceHours.Hour, ins.PeakPerformanceHours.WinRate)
	}
	table.Append("Peak hour", peak)

	table.Render()
}

// PrintNemesis prints the head-to-head record against the most-faced opponent.
func PrintNemesis(w io.Writer, n model.Nemesis) {
	if n.Tag == "N/A" {
		fmt.Fprintln(w, "No nemesis yet — not enough tagged opponents in the log.")
		return
	}
	table := newTable(w)
	table.Header("NEMESIS", "TAG", "FACED", "W", "L")
	table.Append(n.Name, n.Tag, strconv.Itoa(n.Total), strconv.Itoa(n.Wins), strconv.Itoa(n.Losses))
	table.Render()
	if n.Message != "" {
		fmt.Fprintf(w, "  %s\n", n.Message)
	}
}

// PrintTrophies prints the trophy volatility summary, with recent per-battle
// deltas as a compact +30/-30 strip.
func PrintTrophies(w io.Writer, tc model.TrophyRollerCoaster) {
	table := newTable(w)
	table.Header("CURRENT", "BEST", "BIGGEST_GAIN", "BIGGEST_LOSS", "SWING")
	table.Append(
		strconv.Itoa(tc.Current),
		strconv.Itoa(tc.Best),
		fmt.Sprintf("%+d", tc.BiggestGain),
		fmt.Sprintf("%+d", tc.BiggestLoss),
		strconv.Itoa(tc.TotalSwing),
	)
	table.Render()

	if len(tc.RecentChanges) > 0 {
		deltas := make([]string, len(tc.RecentChanges))
		for i, d := range tc.RecentChanges {
			deltas[i] = fmt.Sprintf("%+d", d)
		}
		fmt.Fprintf(w, "  Recent: %s\n", strings.Join(deltas, " "))
	}
}

// PrintWrapped prints the full wrapped summary.
func PrintWrapped(w io.Writer, ins model.Insights) {
	PrintHeader(w, ins)
	PrintLoyalCards(w, ins.TopLoyalCards)
	fmt.Fprintln(w)
	PrintHighlights(w, ins)
	fmt.Fprintln(w)
	PrintNemesis(w, ins.Nemesis)
	fmt.Fprintln(w)
	PrintTrophies(w, ins.TrophyRollerCoaster)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}
