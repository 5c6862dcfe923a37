package llm

import (
	"strings"
	"testing"

	"github.com/matchwire/matchwire/internal/models"
)

func TestFormatContextEmptyPayload(t *testing.T) {
	if got := FormatContext(models.TaxonomyPreMatchInjuries, nil); got != "" {
		t.Errorf("FormatContext(nil) = %q, want empty", got)
	}
	if got := FormatContext(models.TaxonomyGoal, map[string]interface{}{}); got != "" {
		t.Errorf("FormatContext(empty map) = %q, want empty", got)
	}
}

func TestFormatContextInjuries(t *testing.T) {
	data := map[string]interface{}{
		"team_name": "Borussia Dortmund",
		"players": []interface{}{
			map[string]interface{}{"player_name": "Hummels", "reason": "Muskelverletzung", "type": "Missing Fixture"},
			map[string]interface{}{"player_name": "Reus", "reason": "Angeschlagen", "type": "Questionable"},
		},
	}

	got := FormatContext(models.TaxonomyPreMatchInjuries, data)

	for _, want := range []string{
		"Team: Borussia Dortmund",
		"Ausfälle/Fraglich:",
		"Hummels (Muskelverletzung) [Missing Fixture]",
		"Reus (Angeschlagen) [Questionable]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("injuries block does not contain %q:\n%s", want, got)
		}
	}
}

func TestFormatContextInjuriesNoPlayers(t *testing.T) {
	got := FormatContext(models.TaxonomyPreMatchInjuries, map[string]interface{}{
		"team_name": "Borussia Dortmund",
	})

	want := "Team: Borussia Dortmund\nKeine Ausfälle gemeldet."
	if got != want {
		t.Errorf("FormatContext = %q, want %q", got, want)
	}
}

func TestFormatContextPrediction(t *testing.T) {
	data := map[string]interface{}{
		"home":         map[string]interface{}{"name": "FC Bayern", "form": "WWWDW", "wins_total": float64(12)},
		"away":         map[string]interface{}{"name": "RB Leipzig", "form": "WLDWW", "wins_total": float64(9)},
		"advice":       "Double chance: Bayern or draw",
		"percent_home": "55%",
		"percent_draw": "25%",
		"percent_away": "20%",
	}

	got := FormatContext(models.TaxonomyPreMatchPrediction, data)

	for _, want := range []string{
		"Heimteam: FC Bayern (Form: WWWDW, Siege: 12)",
		"Auswärtsteam: RB Leipzig (Form: WLDWW, Siege: 9)",
		"Tipp: Double chance: Bayern or draw",
		"Gewinnchancen – Heim: 55%, Unentschieden: 25%, Auswärts: 20%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prediction block does not contain %q:\n%s", want, got)
		}
	}
}

func TestFormatContextHeadToHead(t *testing.T) {
	t.Run("no matches", func(t *testing.T) {
		got := FormatContext(models.TaxonomyPreMatchH2H, map[string]interface{}{
			"matches": []interface{}{},
			"total":   float64(0),
		})
		want := "Direktvergleich: Keine historischen Begegnungen vorhanden."
		if got != want {
			t.Errorf("FormatContext = %q, want %q", got, want)
		}
	})

	t.Run("caps at five matches", func(t *testing.T) {
		matches := make([]interface{}, 7)
		for i := range matches {
			matches[i] = "2:1"
		}
		got := FormatContext(models.TaxonomyPreMatchH2H, map[string]interface{}{"matches": matches})

		lines := strings.Count(got, "  - ")
		if lines != 5 {
			t.Errorf("rendered %d matches, want 5:\n%s", lines, got)
		}
		if !strings.Contains(got, "Direktvergleich (letzte Spiele):") {
			t.Errorf("missing header:\n%s", got)
		}
	})
}

func TestFormatContextTeamStats(t *testing.T) {
	data := map[string]interface{}{
		"team_name":           "FC Bayern",
		"form":                "WWWDW",
		"wins_total":          float64(12),
		"draws_total":         float64(3),
		"loses_total":         float64(1),
		"goals_for_avg":       2.4,
		"goals_against_avg":   0.8,
		"most_used_formation": "4-2-3-1",
		"clean_sheets":        float64(7),
	}

	got := FormatContext(models.TaxonomyPreMatchTeamStats, data)

	for _, want := range []string{
		"Team: FC Bayern",
		"Siege/Unentschieden/Niederlagen: 12/3/1",
		"Tore pro Spiel: 2.4 | Gegentore: 0.8",
		"Häufigste Formation: 4-2-3-1",
		"Clean Sheets: 7",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("team stats block does not contain %q:\n%s", want, got)
		}
	}
}

func TestFormatContextLiveStats(t *testing.T) {
	data := map[string]interface{}{
		"team_name": "FC Bayern",
		"home_team": "FC Bayern",
		"away_team": "RB Leipzig",
		"triggers":  []interface{}{"shots_on_goal", "dangerous_attacks"},
		"curr_stats": map[string]interface{}{
			"possession": "64%",
		},
	}

	got := FormatContext(models.TaxonomyLiveStatsUpdate, data)

	for _, want := range []string{
		"Team: FC Bayern",
		"Heim: FC Bayern vs Auswärts: RB Leipzig",
		"Auslöser: shots_on_goal, dangerous_attacks",
		"possession:64%",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("live stats block does not contain %q:\n%s", want, got)
		}
	}
}

func TestFormatContextGenericFallback(t *testing.T) {
	got := FormatContext(models.Taxonomy("weather_update"), map[string]interface{}{
		"condition": "Regen",
	})

	if !strings.HasPrefix(got, "Kontextdaten:") {
		t.Errorf("fallback missing header: %q", got)
	}
	if !strings.Contains(got, `"condition": "Regen"`) {
		t.Errorf("fallback missing payload: %q", got)
	}
}
