package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-cr-wrapped/internal/insights"
	"github.com/pable/go-cr-wrapped/internal/model"
	"github.com/pable/go-cr-wrapped/internal/storage"
)

const analyzeSystemPrompt = `You are a Clash Royale performance analyst. You are given structured insights
computed from a player's recent battle log and a question from the player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable — focus on what the player can actually improve.
- Avoid generic Clash Royale advice unless it directly explains a pattern in the data.

Metrics glossary:
- Loyal cards: the player's most-used cards across recent battles, with use counts.
- Longest win streak: most consecutive wins in the battle log (newest battles first).
- Comeback %: share of wins where the opponent still took at least one crown.
- Deck archetype: Cycle / Beatdown / Control / Bridge Spam / Balanced, from the
  most-played deck in the last 10 battles.
- Rare gem: a card used at most 5 times with an outsized win rate.
- Nemesis: the most-faced opponent, with the head-to-head W/L record.
- Peak hour: the hour of day (min 3 battles) with the best win rate.
- Trophy changes: estimated at +/-30 per battle from recent results; current and
  best trophies are exact from the profile.`

var (
	analyzeModel  string
	analyzeAPIKey string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <player-tag> <question>",
	Short: "AI-powered grounded analysis of a cached snapshot (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := args[1]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	profile, battles, err := db.GetSnapshot(args[0])
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("no snapshot for %s. Run 'crwrapped fetch %s' first", args[0], args[0])
	}

	ins := insights.Analyze(*profile, battles)

	contextJSON, err := buildAnalysisContext(ins, len(battles))
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, contextJSON, question)
}

// buildAnalysisContext serialises the insights into compact JSON for the model.
func buildAnalysisContext(ins model.Insights, battleCount int) (string, error) {
	doc := map[string]interface{}{
		"subject":          "player",
		"player":           ins.PlayerName,
		"tag":              ins.PlayerTag,
		"battles_analyzed": battleCount,
		"insights":         ins,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		// Provide a cleaner error message for common API errors.
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
