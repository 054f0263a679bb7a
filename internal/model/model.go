package model

// Outcome classifies a battle from the subject player's side.
type Outcome int

const (
	OutcomeDraw Outcome = 0
	OutcomeWin  Outcome = 1
	OutcomeLoss Outcome = 2
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "W"
	case OutcomeLoss:
		return "L"
	default:
		return "D"
	}
}

// ---- Raw records as reported by the upstream API ----
//
// Every field is optional on the wire. Decoding into these types applies the
// defaults directly: absent slices stay nil (ranged over as empty), absent
// strings stay "", absent ints stay 0. Nothing downstream needs to re-check.

// Card is a single playable card. Name is case-sensitive for display and
// lower-cased wherever cards are matched or classified.
type Card struct {
	Name string `json:"name"`
}

// Participant is one player's contribution within one side of a battle.
// Tag is the stable identity key; Name is display-only and may change
// between battles for the same tag.
type Participant struct {
	Name   string `json:"name"`
	Tag    string `json:"tag"`
	Crowns int    `json:"crowns"`
	Cards  []Card `json:"cards"`
}

// Battle is one completed match between the subject's side (Team) and the
// rival side (Opponent). Either side may be empty, which sums to 0 crowns.
type Battle struct {
	BattleTime string        `json:"battleTime"`
	Team       []Participant `json:"team"`
	Opponent   []Participant `json:"opponent"`
}

// TeamCrowns sums crowns over all team participants.
func (b *Battle) TeamCrowns() int {
	total := 0
	for _, p := range b.Team {
		total += p.Crowns
	}
	return total
}

// OpponentCrowns sums crowns over all opponent participants.
func (b *Battle) OpponentCrowns() int {
	total := 0
	for _, p := range b.Opponent {
		total += p.Crowns
	}
	return total
}

// Outcome decides the battle by comparing crown sums per side. This is the
// single source of truth for "did the subject win" — every derived stat
// uses it.
func (b *Battle) Outcome() Outcome {
	team, opp := b.TeamCrowns(), b.OpponentCrowns()
	switch {
	case team > opp:
		return OutcomeWin
	case opp > team:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

// Profile holds the player fields we need from the /players endpoint.
type Profile struct {
	Name         string `json:"name"`
	Tag          string `json:"tag"`
	Trophies     int    `json:"trophies"`
	BestTrophies int    `json:"bestTrophies"`
	CurrentDeck  []Card `json:"currentDeck"`
}

// ---- Derived insights ----

// LoyalCard is one entry in the top-used-cards ranking.
type LoyalCard struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Icon  string `json:"icon"`
}

// RareGem is a rarely-used card with a high win rate when it does appear.
// Name "N/A" means no card qualified.
type RareGem struct {
	Name    string  `json:"name"`
	WinRate float64 `json:"win_rate"`
	Usage   int     `json:"usage"`
}

// Nemesis is the most-faced opponent and the head-to-head record against
// them. Tag "N/A" means the battle log carried no tagged opponents.
type Nemesis struct {
	Name    string `json:"name"`
	Tag     string `json:"tag"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// PeakHour is the hour of day with the best win rate, as a 12-hour display
// string. Hour "N/A" means no hour had enough battles.
type PeakHour struct {
	Hour    string  `json:"hour"`
	WinRate float64 `json:"win_rate"`
}

// TrophyRollerCoaster summarizes trophy volatility. Per-battle deltas are a
// fixed ±30 estimate, not real ladder deltas — the API does not report them.
type TrophyRollerCoaster struct {
	Current       int   `json:"current"`
	Best          int   `json:"best"`
	BiggestGain   int   `json:"biggest_gain"`
	BiggestLoss   int   `json:"biggest_loss"`
	TotalSwing    int   `json:"total_swing"`
	RecentChanges []int `json:"recent_changes"`
}

// Insights is the full wrapped-style summary for one player.
type Insights struct {
	TopLoyalCards          []LoyalCard         `json:"top_loyal_cards"`
	LongestWinStreak       int                 `json:"longest_win_streak"`
	ComebackKingPercentage float64             `json:"comeback_king_percentage"`
	DeckArchetype          string              `json:"deck_archetype"`
	RareGem                RareGem             `json:"rare_gem"`
	Nemesis                Nemesis             `json:"nemesis"`
	PeakPerformanceHours   PeakHour            `json:"peak_performance_hours"`
	TrophyRollerCoaster    TrophyRollerCoaster `json:"trophy_roller_coaster"`
	PlayerName             string              `json:"player_name"`
	PlayerTag              string              `json:"player_tag"`
}
