// Package insights derives wrapped-style summary statistics from a player's
// battle log. Every function here is a pure pass over the battle list: no
// I/O, no shared state, no error paths. Missing data collapses to a zero
// baseline or a named "N/A" sentinel, never a failure.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pable/go-cr-wrapped/internal/model"
)

// cardIconBase is the CDN template for card art. The file name is the card
// name lower-cased with spaces removed.
const cardIconBase = "https://cdn.clashroyale.com/cards/300/"

// CardIconURL returns the deterministic asset URL for a card name.
func CardIconURL(name string) string {
	return cardIconBase + strings.ReplaceAll(strings.ToLower(name), " ", "") + ".png"
}

// counter counts string keys while remembering first-seen order. Rankings
// built on it break count ties by first appearance, which Go's randomized
// map iteration would otherwise not guarantee.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) Add(key string, n int) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

func (c *counter) Len() int { return len(c.order) }

// TopN returns up to n keys ordered by count descending; equal counts keep
// first-seen order (stable sort over the insertion order).
func (c *counter) TopN(n int) []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// TopLoyalCards ranks the three most-used cards across all battles. When the
// battle log yields no card usage at all, the profile's current deck (if any)
// stands in with a count of 1 per card.
func TopLoyalCards(profile model.Profile, battles []model.Battle) []model.LoyalCard {
	usage := newCounter()
	for _, b := range battles {
		for _, p := range b.Team {
			for _, card := range p.Cards {
				if card.Name != "" {
					usage.Add(card.Name, 1)
				}
			}
		}
	}

	if usage.Len() == 0 && profile.CurrentDeck != nil {
		for _, card := range profile.CurrentDeck {
			if card.Name != "" && usage.counts[card.Name] == 0 {
				usage.Add(card.Name, 1)
			}
		}
	}

	top := usage.TopN(3)
	cards := make([]model.LoyalCard, 0, len(top))
	for _, name := range top {
		cards = append(cards, model.LoyalCard{
			Name:  name,
			Count: usage.counts[name],
			Icon:  CardIconURL(name),
		})
	}
	return cards
}

// LongestWinStreak scans the battle log as received (most recent first) and
// returns the longest run of consecutive wins. Draws break streaks.
func LongestWinStreak(battles []model.Battle) int {
	maxStreak, current := 0, 0
	for _, b := range battles {
		if b.Outcome() == model.OutcomeWin {
			current++
			if current > maxStreak {
				maxStreak = current
			}
		} else {
			current = 0
		}
	}
	return maxStreak
}

// ComebackKingPercentage returns the share of wins in which the opponent
// scored at least one crown, rounded to one decimal. The battle log carries
// no in-match crown timeline, so "conceded a crown while still winning"
// stands in for "was behind at some point" — a documented approximation,
// kept as-is.
func ComebackKingPercentage(battles []model.Battle) float64 {
	comebacks, wins := 0, 0
	for _, b := range battles {
		if b.Outcome() != model.OutcomeWin {
			continue
		}
		wins++
		if b.OpponentCrowns() > 0 {
			comebacks++
		}
	}
	if wins == 0 {
		return 0.0
	}
	return round1(float64(comebacks) / float64(wins) * 100)
}

// RareGem finds a rarely-used card (2–5 uses) with a high win rate when it
// does appear. A win credits every card the team used that battle. Score is
// win rate divided by usage, so among strong cards the less-played one wins;
// ties keep the first card encountered. Returns the "N/A" sentinel when no
// card qualifies.
func RareGem(battles []model.Battle) model.RareGem {
	type cardRecord struct {
		wins int
		uses int
	}
	records := make(map[string]*cardRecord)
	var order []string

	for _, b := range battles {
		won := b.Outcome() == model.OutcomeWin
		for _, p := range b.Team {
			for _, card := range p.Cards {
				if card.Name == "" {
					continue
				}
				rec := records[card.Name]
				if rec == nil {
					rec = &cardRecord{}
					records[card.Name] = rec
					order = append(order, card.Name)
				}
				rec.uses++
				if won {
					rec.wins++
				}
			}
		}
	}

	gem := model.RareGem{Name: "N/A", WinRate: 0, Usage: 0}
	bestScore := 0.0
	for _, name := range order {
		rec := records[name]
		if rec.uses < 2 {
			continue
		}
		winRate := float64(rec.wins) / float64(rec.uses) * 100
		score := winRate / float64(rec.uses)
		if score > bestScore && rec.uses <= 5 {
			bestScore = score
			gem = model.RareGem{Name: name, WinRate: round1(winRate), Usage: rec.uses}
		}
	}
	return gem
}

// Nemesis finds the opponent faced most often, keyed by tag (names change;
// tags don't — the latest seen name is kept for display). Draws count toward
// the total but neither wins nor losses. Ties on total keep the opponent
// encountered first. The relationship message is filled in by Analyze.
func Nemesis(battles []model.Battle) model.Nemesis {
	type record struct {
		name                string
		wins, losses, total int
	}
	records := make(map[string]*record)
	var order []string

	for _, b := range battles {
		outcome := b.Outcome()
		for _, opp := range b.Opponent {
			if opp.Tag == "" {
				continue
			}
			rec := records[opp.Tag]
			if rec == nil {
				rec = &record{}
				records[opp.Tag] = rec
				order = append(order, opp.Tag)
			}
			name := opp.Name
			if name == "" {
				name = "Unknown"
			}
			rec.name = name
			rec.total++
			switch outcome {
			case model.OutcomeWin:
				rec.wins++
			case model.OutcomeLoss:
				rec.losses++
			}
		}
	}

	if len(order) == 0 {
		return model.Nemesis{Name: "N/A", Tag: "N/A"}
	}

	bestTag := order[0]
	for _, tag := range order[1:] {
		if records[tag].total > records[bestTag].total {
			bestTag = tag
		}
	}
	best := records[bestTag]
	return model.Nemesis{
		Name:   best.name,
		Tag:    bestTag,
		Wins:   best.wins,
		Losses: best.losses,
		Total:  best.total,
	}
}

// parseBattleTime parses the API's compact timestamp form
// YYYYMMDDTHHMMSS[.fff]Z, no timezone adjustment. Reported ok=false for
// anything that doesn't fit; the caller drops that battle from the bucket.
func parseBattleTime(raw string) (time.Time, bool) {
	clean := strings.ReplaceAll(raw, "Z", "")
	if i := strings.IndexByte(clean, '.'); i >= 0 {
		j := i + 1
		for j < len(clean) && clean[j] >= '0' && clean[j] <= '9' {
			j++
		}
		clean = clean[:i] + clean[j:]
	}
	t, err := time.Parse("20060102T150405", clean)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// formatHour renders an hour of day on a 12-hour clock. The mapping is the
// product's historical one: 0 renders as "0:00 AM" and 12 as "12:00 PM",
// not the textbook conversion.
func formatHour(hour int) string {
	if hour < 12 {
		return fmt.Sprintf("%d:00 AM", hour)
	}
	if hour > 12 {
		return fmt.Sprintf("%d:00 PM", hour-12)
	}
	return "12:00 PM"
}

// PeakPerformanceHours buckets battles by hour of day and returns the hour
// with the best win rate among hours with at least 3 battles. Battles with
// malformed timestamps are skipped, not errors. Exact win-rate ties keep the
// hour seen first. Returns the "N/A" sentinel when no hour qualifies.
func PeakPerformanceHours(battles []model.Battle) model.PeakHour {
	type bucket struct {
		wins, total int
	}
	buckets := make(map[int]*bucket)
	var order []int

	for _, b := range battles {
		if b.BattleTime == "" {
			continue
		}
		t, ok := parseBattleTime(b.BattleTime)
		if !ok {
			continue
		}
		hour := t.Hour()
		bk := buckets[hour]
		if bk == nil {
			bk = &bucket{}
			buckets[hour] = bk
			order = append(order, hour)
		}
		bk.total++
		if b.Outcome() == model.OutcomeWin {
			bk.wins++
		}
	}

	bestHour := -1
	bestRate := 0.0
	for _, hour := range order {
		bk := buckets[hour]
		if bk.total < 3 {
			continue
		}
		rate := float64(bk.wins) / float64(bk.total) * 100
		if rate > bestRate {
			bestRate = rate
			bestHour = hour
		}
	}
	if bestHour < 0 {
		return model.PeakHour{Hour: "N/A", WinRate: 0}
	}
	return model.PeakHour{Hour: formatHour(bestHour), WinRate: round1(bestRate)}
}

// trophyWindow and recentWindow bound the volatility scan.
const (
	trophyWindow = 25
	recentWindow = 10
	trophyDelta  = 30
)

// TrophyRollerCoaster summarizes trophy volatility over the most recent
// battles. Real per-battle trophy deltas aren't in the data, so each battle
// maps to a fixed ±30 (draws count as -30) — a documented approximation,
// kept as-is. RecentChanges is the tail of the delta list in scan order.
func TrophyRollerCoaster(profile model.Profile, battles []model.Battle) model.TrophyRollerCoaster {
	best := profile.BestTrophies
	if best == 0 {
		best = profile.Trophies
	}

	window := battles
	if len(window) > trophyWindow {
		window = window[:trophyWindow]
	}
	changes := make([]int, 0, len(window))
	for _, b := range window {
		if b.Outcome() == model.OutcomeWin {
			changes = append(changes, trophyDelta)
		} else {
			changes = append(changes, -trophyDelta)
		}
	}

	gain, loss := 0, 0
	if len(changes) > 0 {
		gain, loss = changes[0], changes[0]
		for _, c := range changes[1:] {
			if c > gain {
				gain = c
			}
			if c < loss {
				loss = c
			}
		}
	}

	recent := changes
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	return model.TrophyRollerCoaster{
		Current:       profile.Trophies,
		Best:          best,
		BiggestGain:   gain,
		BiggestLoss:   loss,
		TotalSwing:    abs(gain) + abs(loss),
		RecentChanges: recent,
	}
}

// Analyze runs every extractor over the same inputs and assembles the full
// insight record. The extractors are independent pure functions, so order
// doesn't matter. Always succeeds: empty or partial inputs produce baseline
// values and sentinels.
func Analyze(profile model.Profile, battles []model.Battle) model.Insights {
	nemesis := Nemesis(battles)
	if nemesis.Name != "N/A" && nemesis.Total > 0 {
		switch {
		case nemesis.Wins > nemesis.Losses:
			nemesis.Message = fmt.Sprintf("%s is your bitch", nemesis.Name)
		case nemesis.Losses > nemesis.Wins:
			nemesis.Message = fmt.Sprintf("You are %s's bitch", nemesis.Name)
		default:
			nemesis.Message = fmt.Sprintf("Evenly matched with %s", nemesis.Name)
		}
	}

	name := profile.Name
	if name == "" {
		name = "Unknown"
	}

	return model.Insights{
		TopLoyalCards:          TopLoyalCards(profile, battles),
		LongestWinStreak:       LongestWinStreak(battles),
		ComebackKingPercentage: ComebackKingPercentage(battles),
		DeckArchetype:          DeckArchetype(profile, battles),
		RareGem:                RareGem(battles),
		Nemesis:                nemesis,
		PeakPerformanceHours:   PeakPerformanceHours(battles),
		TrophyRollerCoaster:    TrophyRollerCoaster(profile, battles),
		PlayerName:             name,
		PlayerTag:              profile.Tag,
	}
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
