package llm

import (
	"fmt"
	"strings"

	"github.com/matchwire/matchwire/internal/models"
)

// styleDescriptions maps each editorial tone onto its prompt wording. Unknown
// styles fall back to the neutral description.
var styleDescriptions = map[models.Style]string{
	models.StyleNeutral:    "sachlich und neutral",
	models.StyleEnthusiast: "begeistert und emotional",
	models.StyleCritical:   "analytisch und kritisch",
}

// BuildPrompt assembles the full generation instruction for a live provider:
// role framing, tone, minute, an optional pre-match style hint, the fact block
// and the formatted context. Absent fields are omitted, never rendered as
// empty labels.
func BuildPrompt(req Request) string {
	lang := "English"
	if req.Language == "de" {
		lang = "Deutsch"
	}

	styleDesc, ok := styleDescriptions[req.Style]
	if !ok {
		styleDesc = styleDescriptions[models.StyleNeutral]
	}

	minuteStr := "Vor dem Spiel"
	if req.Minute > 0 {
		minuteStr = fmt.Sprintf("%d. Minute", req.Minute)
	}

	eventLines := []string{
		fmt.Sprintf("Ereignistyp: %s", req.Taxonomy),
		fmt.Sprintf("Detail: %s", req.Detail),
	}
	if req.PlayerName != "" {
		eventLines = append(eventLines, fmt.Sprintf("Spieler: %s", req.PlayerName))
	}
	if req.AssistName != "" {
		label := "Vorlagengeber"
		if req.Taxonomy == models.TaxonomySubstitution {
			label = "Eingewechselt für"
		}
		eventLines = append(eventLines, fmt.Sprintf("%s: %s", label, req.AssistName))
	}
	if req.TeamName != "" {
		eventLines = append(eventLines, fmt.Sprintf("Team: %s", req.TeamName))
	}

	styleHint := ""
	if req.Minute == 0 && req.Taxonomy.IsPreMatch() {
		styleHint = "Schreibe lebendig, abwechslungsreich und journalistisch – " +
			"nutze die Fakten aber formuliere wie ein erfahrener Sportreporter, " +
			"nicht wie eine trockene Auflistung. Variiere Satzbau und Einstieg.\n"
	}

	contextStr := FormatContext(req.Taxonomy, req.ContextData)

	return fmt.Sprintf(`Du bist ein Fußball-Liveticker-Redakteur. Schreibe einen kurzen Ticker-Eintrag (1-2 Sätze) auf %s.

Stil: %s
Minute: %s
%s
%s
%s
Schreibe nur den Ticker-Text, keine Erklärungen.`,
		lang, styleDesc, minuteStr, styleHint, strings.Join(eventLines, "\n"), contextStr)
}
