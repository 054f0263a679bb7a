package insights

import (
	"sort"
	"strings"

	"github.com/pable/go-cr-wrapped/internal/model"
)

// Archetype labels.
const (
	ArchetypeCycle      = "Cycle"
	ArchetypeBeatdown   = "Beatdown"
	ArchetypeControl    = "Control"
	ArchetypeBridgeSpam = "Bridge Spam"
	ArchetypeBalanced   = "Balanced"
	ArchetypeUnknown    = "Unknown"
)

// Marker cards per archetype. Matching is substring-based on lower-cased
// names, deliberately loose: "Giant Skeleton" counts for both the giant and
// the skeleton families.
var (
	cycleCards    = []string{"skeleton", "goblin", "ice spirit", "fire spirit", "bats"}
	beatdownCards = []string{"golem", "giant", "pekka", "lava hound", "royal giant"}
	controlCards  = []string{"x-bow", "mortar", "tesla", "inferno"}
	spamCards     = []string{"bandit", "royal ghost", "dark prince", "battle ram"}
)

// archetypeWindow bounds how many recent battles vote on the representative deck.
const archetypeWindow = 10

// DeckArchetype classifies the player's most representative deck. With no
// battles it falls back to the profile's current deck; with no deck data at
// all it returns Unknown. The representative deck is the most frequent deck
// signature (sorted, lower-cased card names) over the most recent battles,
// ties keeping the signature seen first.
func DeckArchetype(profile model.Profile, battles []model.Battle) string {
	var cards []string

	if len(battles) == 0 {
		if profile.CurrentDeck == nil {
			return ArchetypeUnknown
		}
		for _, c := range profile.CurrentDeck {
			cards = append(cards, strings.ToLower(c.Name))
		}
	} else {
		window := battles
		if len(window) > archetypeWindow {
			window = window[:archetypeWindow]
		}

		decks := newCounter()
		deckCards := make(map[string][]string)
		for _, b := range window {
			for _, p := range b.Team {
				if len(p.Cards) == 0 {
					continue
				}
				names := make([]string, 0, len(p.Cards))
				for _, c := range p.Cards {
					names = append(names, strings.ToLower(c.Name))
				}
				sort.Strings(names)
				sig := strings.Join(names, "|")
				decks.Add(sig, 1)
				deckCards[sig] = names
			}
		}
		if decks.Len() == 0 {
			return ArchetypeUnknown
		}
		cards = deckCards[decks.TopN(1)[0]]
	}

	return classifyDeck(cards)
}

// classifyDeck applies the archetype rules in order; the first match wins.
func classifyDeck(cards []string) string {
	joined := strings.Join(cards, " ")

	cycleCount := 0
	for _, marker := range cycleCards {
		for _, card := range cards {
			if strings.Contains(card, marker) {
				cycleCount++
				break
			}
		}
	}
	if cycleCount >= 3 {
		return ArchetypeCycle
	}

	for _, marker := range beatdownCards {
		if strings.Contains(joined, marker) {
			return ArchetypeBeatdown
		}
	}
	for _, marker := range controlCards {
		if strings.Contains(joined, marker) {
			return ArchetypeControl
		}
	}
	for _, marker := range spamCards {
		if strings.Contains(joined, marker) {
			return ArchetypeBridgeSpam
		}
	}
	return ArchetypeBalanced
}
