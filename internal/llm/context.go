package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matchwire/matchwire/internal/models"
)

// FormatContext renders the structured context payload of an event into a
// human-readable block for the prompt. Each pre-match and live-update taxonomy
// has a fixed shape; anything else gets a generic key-value dump so that
// open-ended taxonomies still surface their data.
func FormatContext(taxonomy models.Taxonomy, data map[string]interface{}) string {
	if len(data) == 0 {
		return ""
	}

	switch taxonomy {
	case models.TaxonomyPreMatchInjuries:
		return formatInjuries(data)
	case models.TaxonomyPreMatchPrediction:
		return formatPrediction(data)
	case models.TaxonomyPreMatchH2H:
		return formatHeadToHead(data)
	case models.TaxonomyPreMatchTeamStats:
		return formatTeamStats(data)
	case models.TaxonomyLiveStatsUpdate:
		return formatLiveStats(data)
	}

	dump, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Kontextdaten:\n%s", dump)
}

func formatInjuries(data map[string]interface{}) string {
	team := stringValue(data, "team_name")
	if team == "" {
		team = "Unbekannt"
	}
	players := listValue(data, "players")
	if len(players) == 0 {
		return fmt.Sprintf("Team: %s\nKeine Ausfälle gemeldet.", team)
	}

	lines := []string{fmt.Sprintf("Team: %s", team), "Ausfälle/Fraglich:"}
	for _, p := range players {
		m, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("  - %s (%s) [%s]",
			stringValue(m, "player_name"), stringValue(m, "reason"), stringValue(m, "type")))
	}
	return strings.Join(lines, "\n")
}

func formatPrediction(data map[string]interface{}) string {
	home := mapValue(data, "home")
	away := mapValue(data, "away")
	return fmt.Sprintf(
		"Heimteam: %s (Form: %s, Siege: %s)\n"+
			"Auswärtsteam: %s (Form: %s, Siege: %s)\n"+
			"Tipp: %s\n"+
			"Gewinnchancen – Heim: %s, Unentschieden: %s, Auswärts: %s",
		stringValue(home, "name"), stringValue(home, "form"), stringValue(home, "wins_total"),
		stringValue(away, "name"), stringValue(away, "form"), stringValue(away, "wins_total"),
		stringValue(data, "advice"),
		stringValue(data, "percent_home"), stringValue(data, "percent_draw"), stringValue(data, "percent_away"),
	)
}

func formatHeadToHead(data map[string]interface{}) string {
	matches := listValue(data, "matches")
	if len(matches) == 0 {
		return "Direktvergleich: Keine historischen Begegnungen vorhanden."
	}

	lines := []string{"Direktvergleich (letzte Spiele):"}
	for i, m := range matches {
		if i >= 5 {
			break
		}
		lines = append(lines, fmt.Sprintf("  - %v", m))
	}
	return strings.Join(lines, "\n")
}

func formatTeamStats(data map[string]interface{}) string {
	return fmt.Sprintf(
		"Team: %s\n"+
			"Form: %s\n"+
			"Siege/Unentschieden/Niederlagen: %s/%s/%s\n"+
			"Tore pro Spiel: %s | Gegentore: %s\n"+
			"Häufigste Formation: %s\n"+
			"Clean Sheets: %s",
		stringValue(data, "team_name"),
		stringValue(data, "form"),
		stringValue(data, "wins_total"), stringValue(data, "draws_total"), stringValue(data, "loses_total"),
		stringValue(data, "goals_for_avg"), stringValue(data, "goals_against_avg"),
		stringValue(data, "most_used_formation"),
		stringValue(data, "clean_sheets"),
	)
}

func formatLiveStats(data map[string]interface{}) string {
	team := stringValue(data, "team_name")
	if team == "" {
		team = "unbekannt"
	}

	var triggers []string
	for _, t := range listValue(data, "triggers") {
		triggers = append(triggers, fmt.Sprintf("%v", t))
	}

	return fmt.Sprintf(
		"Team: %s\n"+
			"Heim: %s vs Auswärts: %s\n"+
			"Auslöser: %s\n"+
			"Aktuelle Stats: %v",
		team,
		stringValue(data, "home_team"), stringValue(data, "away_team"),
		strings.Join(triggers, ", "),
		mapValue(data, "curr_stats"),
	)
}

// Payload accessors. Context payloads come straight from JSON, so numbers may
// be float64 and nested values untyped.

func stringValue(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func mapValue(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return map[string]interface{}{}
}

func listValue(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key].([]interface{}); ok {
		return v
	}
	return nil
}
