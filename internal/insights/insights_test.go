package insights

import (
	"reflect"
	"testing"

	"github.com/pable/go-cr-wrapped/internal/model"
)

// deck builds a card list from names.
func deck(names ...string) []model.Card {
	cards := make([]model.Card, len(names))
	for i, n := range names {
		cards[i] = model.Card{Name: n}
	}
	return cards
}

// battle builds a 1v1 battle with the given crown counts and team cards.
// The opponent is a fixed anonymous player unless overridden by battleVS.
func battle(teamCrowns, oppCrowns int, teamCards ...string) model.Battle {
	return model.Battle{
		Team:     []model.Participant{{Name: "me", Tag: "#ME", Crowns: teamCrowns, Cards: deck(teamCards...)}},
		Opponent: []model.Participant{{Name: "foe", Tag: "#FOE", Crowns: oppCrowns}},
	}
}

// battleVS builds a 1v1 battle against a named opponent.
func battleVS(oppTag, oppName string, teamCrowns, oppCrowns int) model.Battle {
	return model.Battle{
		Team:     []model.Participant{{Name: "me", Tag: "#ME", Crowns: teamCrowns}},
		Opponent: []model.Participant{{Name: oppName, Tag: oppTag, Crowns: oppCrowns}},
	}
}

// battleAt builds a battle with the given timestamp and crown counts.
func battleAt(ts string, teamCrowns, oppCrowns int) model.Battle {
	b := battle(teamCrowns, oppCrowns)
	b.BattleTime = ts
	return b
}

// repeat returns n copies of the given battle.
func repeat(b model.Battle, n int) []model.Battle {
	out := make([]model.Battle, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// ---- Top loyal cards ----

func TestTopLoyalCards_RanksByUsage(t *testing.T) {
	battles := []model.Battle{
		battle(3, 0, "Giant", "Musketeer", "Zap"),
		battle(0, 3, "Giant", "Musketeer"),
		battle(3, 0, "Giant"),
	}
	got := TopLoyalCards(model.Profile{}, battles)
	if len(got) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(got))
	}
	if got[0].Name != "Giant" || got[0].Count != 3 {
		t.Errorf("expected Giant x3 first, got %s x%d", got[0].Name, got[0].Count)
	}
	if got[1].Name != "Musketeer" || got[1].Count != 2 {
		t.Errorf("expected Musketeer x2 second, got %s x%d", got[1].Name, got[1].Count)
	}
	if got[2].Name != "Zap" || got[2].Count != 1 {
		t.Errorf("expected Zap x1 third, got %s x%d", got[2].Name, got[2].Count)
	}
}

func TestTopLoyalCards_TieKeepsFirstSeenOrder(t *testing.T) {
	// Zap and Arrows both appear once; Zap was seen first and must stay ahead
	// despite sorting after Arrows alphabetically.
	battles := []model.Battle{battle(3, 0, "Zap", "Arrows")}
	got := TopLoyalCards(model.Profile{}, battles)
	if len(got) != 2 || got[0].Name != "Zap" || got[1].Name != "Arrows" {
		t.Fatalf("expected [Zap Arrows], got %+v", got)
	}
}

func TestTopLoyalCards_AtMostThree(t *testing.T) {
	battles := []model.Battle{battle(3, 0, "A", "B", "C", "D", "E")}
	got := TopLoyalCards(model.Profile{}, battles)
	if len(got) != 3 {
		t.Errorf("expected 3 entries, got %d", len(got))
	}
}

func TestTopLoyalCards_IconURL(t *testing.T) {
	battles := []model.Battle{battle(3, 0, "Ice Spirit")}
	got := TopLoyalCards(model.Profile{}, battles)
	want := "https://cdn.clashroyale.com/cards/300/icespirit.png"
	if got[0].Icon != want {
		t.Errorf("icon = %q, want %q", got[0].Icon, want)
	}
}

func TestTopLoyalCards_CurrentDeckFallback(t *testing.T) {
	profile := model.Profile{CurrentDeck: deck("Giant")}
	got := TopLoyalCards(profile, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 card from current deck, got %d", len(got))
	}
	if got[0].Name != "Giant" || got[0].Count != 1 {
		t.Errorf("expected Giant x1, got %s x%d", got[0].Name, got[0].Count)
	}
}

func TestTopLoyalCards_SkipsEmptyNames(t *testing.T) {
	battles := []model.Battle{battle(3, 0, "", "Zap", "")}
	got := TopLoyalCards(model.Profile{}, battles)
	if len(got) != 1 || got[0].Name != "Zap" {
		t.Fatalf("expected only Zap, got %+v", got)
	}
}

// ---- Win streak ----

func TestLongestWinStreak(t *testing.T) {
	cases := []struct {
		name    string
		battles []model.Battle
		want    int
	}{
		{"empty", nil, 0},
		{"all wins", repeat(battle(3, 0), 3), 3},
		{"reset on loss", []model.Battle{battle(3, 0), battle(0, 3), battle(3, 0), battle(3, 1)}, 2},
		{"draw breaks streak", []model.Battle{battle(1, 1), battle(3, 0)}, 1},
		{"all losses", repeat(battle(0, 3), 4), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LongestWinStreak(tc.battles); got != tc.want {
				t.Errorf("LongestWinStreak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLongestWinStreak_BoundedByLength(t *testing.T) {
	battles := repeat(battle(3, 2), 7)
	if got := LongestWinStreak(battles); got > len(battles) {
		t.Errorf("streak %d exceeds battle count %d", got, len(battles))
	}
}

// ---- Comeback king ----

func TestComebackKingPercentage(t *testing.T) {
	cases := []struct {
		name    string
		battles []model.Battle
		want    float64
	}{
		{"empty", nil, 0.0},
		{"no wins", repeat(battle(0, 3), 2), 0.0},
		{"clean sweep wins are not comebacks", repeat(battle(3, 0), 2), 0.0},
		{"every win conceded a crown", repeat(battle(3, 1), 2), 100.0},
		{"one of three", []model.Battle{battle(3, 1), battle(3, 0), battle(2, 0)}, 33.3},
		{"losses ignored in denominator", []model.Battle{battle(3, 1), battle(0, 3)}, 100.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComebackKingPercentage(tc.battles)
			if got != tc.want {
				t.Errorf("ComebackKingPercentage = %v, want %v", got, tc.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("percentage %v out of [0,100]", got)
			}
		})
	}
}

// ---- Rare gem ----

func TestRareGem_TwoUsesBothWins(t *testing.T) {
	battles := []model.Battle{
		battle(3, 0, "Mirror"),
		battle(2, 1, "Mirror"),
		// Padding card with heavy usage so Mirror stays the low-usage pick.
		battle(3, 0, "Giant"),
	}
	got := RareGem(battles)
	if got.Name != "Mirror" {
		t.Fatalf("expected Mirror, got %q", got.Name)
	}
	if got.WinRate != 100.0 || got.Usage != 2 {
		t.Errorf("got win_rate=%v usage=%d, want 100.0 and 2", got.WinRate, got.Usage)
	}
}

func TestRareGem_RequiresTwoUses(t *testing.T) {
	battles := []model.Battle{battle(3, 0, "Mirror")}
	got := RareGem(battles)
	if got.Name != "N/A" || got.WinRate != 0 || got.Usage != 0 {
		t.Errorf("expected N/A sentinel, got %+v", got)
	}
}

func TestRareGem_ExcludesHeavyUsage(t *testing.T) {
	// Giant: 6 uses, all wins — too common to be a gem.
	battles := repeat(battle(3, 0, "Giant"), 6)
	got := RareGem(battles)
	if got.Name != "N/A" {
		t.Errorf("expected N/A for a 6-use card, got %q", got.Name)
	}
}

func TestRareGem_PrefersLowerUsageAtEqualWinRate(t *testing.T) {
	// Both 100% win rate; Sparky used twice, Giant four times.
	// score(Sparky)=50 > score(Giant)=25.
	battles := []model.Battle{
		battle(3, 0, "Giant", "Sparky"),
		battle(3, 0, "Giant", "Sparky"),
		battle(3, 0, "Giant"),
		battle(3, 0, "Giant"),
	}
	got := RareGem(battles)
	if got.Name != "Sparky" {
		t.Errorf("expected Sparky, got %q", got.Name)
	}
}

func TestRareGem_StrictComparisonKeepsFirstSeen(t *testing.T) {
	// Identical records for two cards: the one encountered first wins.
	battles := []model.Battle{
		battle(3, 0, "Sparky", "Bowler"),
		battle(2, 1, "Sparky", "Bowler"),
	}
	got := RareGem(battles)
	if got.Name != "Sparky" {
		t.Errorf("expected first-seen Sparky on tie, got %q", got.Name)
	}
}

func TestRareGem_EmptyLog(t *testing.T) {
	got := RareGem(nil)
	want := model.RareGem{Name: "N/A", WinRate: 0, Usage: 0}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// ---- Nemesis ----

func TestNemesis_MostFacedOpponent(t *testing.T) {
	battles := []model.Battle{
		battleVS("#A", "Alice", 3, 0),
		battleVS("#B", "Bob", 0, 3),
		battleVS("#A", "Alice", 0, 3),
		battleVS("#A", "Alice", 1, 1),
	}
	got := Nemesis(battles)
	if got.Tag != "#A" {
		t.Fatalf("expected #A, got %q", got.Tag)
	}
	if got.Total != 3 || got.Wins != 1 || got.Losses != 1 {
		t.Errorf("got total=%d wins=%d losses=%d, want 3/1/1", got.Total, got.Wins, got.Losses)
	}
	// Draw counted in total but neither wins nor losses.
	if got.Total != got.Wins+got.Losses+1 {
		t.Errorf("total should equal wins+losses+draws")
	}
}

func TestNemesis_LatestNameWins(t *testing.T) {
	battles := []model.Battle{
		battleVS("#A", "OldName", 3, 0),
		battleVS("#A", "NewName", 3, 0),
	}
	if got := Nemesis(battles); got.Name != "NewName" {
		t.Errorf("expected latest name NewName, got %q", got.Name)
	}
}

func TestNemesis_TieKeepsFirstSeen(t *testing.T) {
	battles := []model.Battle{
		battleVS("#A", "Alice", 3, 0),
		battleVS("#B", "Bob", 3, 0),
	}
	if got := Nemesis(battles); got.Tag != "#A" {
		t.Errorf("expected first-seen #A on tie, got %q", got.Tag)
	}
}

func TestNemesis_SkipsUntaggedOpponents(t *testing.T) {
	b := model.Battle{
		Team:     []model.Participant{{Crowns: 3}},
		Opponent: []model.Participant{{Name: "ghost", Crowns: 0}},
	}
	got := Nemesis([]model.Battle{b})
	if got.Tag != "N/A" {
		t.Errorf("expected sentinel for untagged opponents, got %+v", got)
	}
}

func TestNemesis_EmptyLog(t *testing.T) {
	got := Nemesis(nil)
	want := model.Nemesis{Name: "N/A", Tag: "N/A"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

// ---- Peak performance hours ----

func TestPeakPerformanceHours_MinimumThreeBattles(t *testing.T) {
	// Two battles at 14:00 — under the threshold, sentinel expected.
	battles := []model.Battle{
		battleAt("20240101T140000.000Z", 3, 0),
		battleAt("20240102T140000.000Z", 3, 0),
	}
	got := PeakPerformanceHours(battles)
	if got.Hour != "N/A" {
		t.Errorf("expected N/A under 3 battles per hour, got %q", got.Hour)
	}
}

func TestPeakPerformanceHours_PicksBestHour(t *testing.T) {
	battles := []model.Battle{
		// 09:00 — 3 battles, 1 win.
		battleAt("20240101T090000.000Z", 3, 0),
		battleAt("20240102T091500.000Z", 0, 3),
		battleAt("20240103T093000.000Z", 0, 3),
		// 21:00 — 3 battles, 3 wins.
		battleAt("20240101T210000.000Z", 3, 0),
		battleAt("20240102T211000.000Z", 2, 1),
		battleAt("20240103T212000.000Z", 3, 0),
	}
	got := PeakPerformanceHours(battles)
	if got.Hour != "9:00 PM" {
		t.Errorf("expected 9:00 PM, got %q", got.Hour)
	}
	if got.WinRate != 100.0 {
		t.Errorf("expected 100.0 win rate, got %v", got.WinRate)
	}
}

func TestPeakPerformanceHours_MalformedTimestampsSkipped(t *testing.T) {
	battles := []model.Battle{
		battleAt("not-a-time", 3, 0),
		battleAt("2024-01-01T12:00:00Z", 3, 0), // dashes/colons — not the compact form
		battleAt("", 3, 0),
	}
	got := PeakPerformanceHours(battles)
	if got.Hour != "N/A" || got.WinRate != 0 {
		t.Errorf("expected sentinel for all-malformed timestamps, got %+v", got)
	}
}

func TestPeakPerformanceHours_MillisecondsOptional(t *testing.T) {
	battles := repeat(battleAt("20240101T080000Z", 3, 0), 3)
	got := PeakPerformanceHours(battles)
	if got.Hour != "8:00 AM" {
		t.Errorf("expected 8:00 AM from no-millis timestamps, got %q", got.Hour)
	}
}

func TestFormatHour(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "0:00 AM"},
		{1, "1:00 AM"},
		{11, "11:00 AM"},
		{12, "12:00 PM"},
		{13, "1:00 PM"},
		{23, "11:00 PM"},
	}
	for _, tc := range cases {
		if got := formatHour(tc.hour); got != tc.want {
			t.Errorf("formatHour(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

// ---- Trophy roller coaster ----

func TestTrophyRollerCoaster_MixedResults(t *testing.T) {
	profile := model.Profile{Trophies: 5000, BestTrophies: 5200}
	battles := []model.Battle{battle(3, 0), battle(0, 3), battle(1, 1)}
	got := TrophyRollerCoaster(profile, battles)

	if got.Current != 5000 || got.Best != 5200 {
		t.Errorf("identity passthrough wrong: %+v", got)
	}
	if got.BiggestGain != 30 || got.BiggestLoss != -30 || got.TotalSwing != 60 {
		t.Errorf("got gain=%d loss=%d swing=%d, want 30/-30/60", got.BiggestGain, got.BiggestLoss, got.TotalSwing)
	}
	// Draw maps to -30, same as a loss.
	want := []int{30, -30, -30}
	if !reflect.DeepEqual(got.RecentChanges, want) {
		t.Errorf("recent changes = %v, want %v", got.RecentChanges, want)
	}
}

func TestTrophyRollerCoaster_EmptyLog(t *testing.T) {
	got := TrophyRollerCoaster(model.Profile{Trophies: 4000}, nil)
	if got.BiggestGain != 0 || got.BiggestLoss != 0 || got.TotalSwing != 0 {
		t.Errorf("expected zero swings for empty log, got %+v", got)
	}
	if len(got.RecentChanges) != 0 {
		t.Errorf("expected empty recent changes, got %v", got.RecentChanges)
	}
	if got.Best != 4000 {
		t.Errorf("best should default to current, got %d", got.Best)
	}
}

func TestTrophyRollerCoaster_WindowAndRecentSlice(t *testing.T) {
	// 30 battles: first 20 wins, then 10 losses. Only the first 25 count,
	// and recent_changes is the tail 10 of that 25-entry list in scan order:
	// entries 15..24 → 5 wins then 5 losses.
	battles := append(repeat(battle(3, 0), 20), repeat(battle(0, 3), 10)...)
	got := TrophyRollerCoaster(model.Profile{}, battles)

	want := []int{30, 30, 30, 30, 30, -30, -30, -30, -30, -30}
	if !reflect.DeepEqual(got.RecentChanges, want) {
		t.Errorf("recent changes = %v, want %v", got.RecentChanges, want)
	}
}

// ---- Aggregator ----

func TestAnalyze_EmptyLogWithCurrentDeck(t *testing.T) {
	profile := model.Profile{
		Name:         "X",
		Tag:          "#X",
		Trophies:     5000,
		BestTrophies: 5200,
		CurrentDeck:  deck("Giant"),
	}
	got := Analyze(profile, nil)

	if len(got.TopLoyalCards) != 1 || got.TopLoyalCards[0].Name != "Giant" || got.TopLoyalCards[0].Count != 1 {
		t.Errorf("top loyal cards = %+v, want Giant x1", got.TopLoyalCards)
	}
	if got.TopLoyalCards[0].Icon != "https://cdn.clashroyale.com/cards/300/giant.png" {
		t.Errorf("icon = %q", got.TopLoyalCards[0].Icon)
	}
	if got.LongestWinStreak != 0 {
		t.Errorf("streak = %d, want 0", got.LongestWinStreak)
	}
	if got.DeckArchetype != ArchetypeBeatdown {
		t.Errorf("archetype = %q, want Beatdown", got.DeckArchetype)
	}
	wantNemesis := model.Nemesis{Name: "N/A", Tag: "N/A"}
	if got.Nemesis != wantNemesis {
		t.Errorf("nemesis = %+v, want sentinel with empty message", got.Nemesis)
	}
	if got.PlayerName != "X" || got.PlayerTag != "#X" {
		t.Errorf("identity passthrough wrong: %q %q", got.PlayerName, got.PlayerTag)
	}
}

func TestAnalyze_SweepAgainstSingleOpponent(t *testing.T) {
	battles := repeat(battleVS("#OPP", "Rival", 3, 0), 3)
	got := Analyze(model.Profile{Name: "me", Tag: "#ME"}, battles)

	if got.LongestWinStreak != 3 {
		t.Errorf("streak = %d, want 3", got.LongestWinStreak)
	}
	if got.Nemesis.Total != 3 || got.Nemesis.Wins != 3 {
		t.Errorf("nemesis = %+v, want total=3 wins=3", got.Nemesis)
	}
	if got.Nemesis.Message != "Rival is your bitch" {
		t.Errorf("message = %q", got.Nemesis.Message)
	}
}

func TestAnalyze_NemesisMessages(t *testing.T) {
	cases := []struct {
		name    string
		battles []model.Battle
		want    string
	}{
		{"dominating", repeat(battleVS("#A", "Alice", 3, 0), 2), "Alice is your bitch"},
		{"dominated", repeat(battleVS("#A", "Alice", 0, 3), 2), "You are Alice's bitch"},
		{"even", []model.Battle{battleVS("#A", "Alice", 3, 0), battleVS("#A", "Alice", 0, 3)}, "Evenly matched with Alice"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(model.Profile{}, tc.battles)
			if got.Nemesis.Message != tc.want {
				t.Errorf("message = %q, want %q", got.Nemesis.Message, tc.want)
			}
		})
	}
}

func TestAnalyze_DefaultsIdentity(t *testing.T) {
	got := Analyze(model.Profile{}, nil)
	if got.PlayerName != "Unknown" {
		t.Errorf("name = %q, want Unknown", got.PlayerName)
	}
	if got.PlayerTag != "" {
		t.Errorf("tag = %q, want empty", got.PlayerTag)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	profile := model.Profile{Name: "X", Tag: "#X", Trophies: 5000}
	battles := []model.Battle{
		battleAt("20240101T090000.000Z", 3, 1),
		battleVS("#A", "Alice", 0, 3),
		battle(3, 0, "Giant", "Zap", "Musketeer"),
		battle(2, 1, "Giant", "Zap"),
	}
	first := Analyze(profile, battles)
	second := Analyze(profile, battles)
	if !reflect.DeepEqual(first, second) {
		t.Error("Analyze is not deterministic for identical inputs")
	}
}
