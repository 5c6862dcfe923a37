package llm

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/matchwire/matchwire/internal/models"
)

// Mock is the offline provider. It needs no configuration and is both the
// default backend and the test fixture. Output is templated per taxonomy and
// style, with a pseudo-random pick between goal variants.
type Mock struct {
	pick func(n int) int
}

// NewMock creates the mock provider.
func NewMock() *Mock {
	return &Mock{pick: rand.Intn}
}

func (m *Mock) Name() string  { return "mock" }
func (m *Mock) Model() string { return "mock" }

// Generate produces a templated ticker line. It never fails and never
// performs network I/O.
func (m *Mock) Generate(_ context.Context, req Request) (string, error) {
	switch {
	case req.Taxonomy.IsGoal():
		return m.goalText(req), nil
	case req.Taxonomy == models.TaxonomyCard:
		return m.cardText(req), nil
	case req.Taxonomy == models.TaxonomySubstitution:
		return m.substitutionText(req), nil
	}
	return fmt.Sprintf("%d. Minute: %s - %s", req.Minute, req.Taxonomy, req.Detail), nil
}

func (m *Mock) goalText(req Request) string {
	var templates []string
	switch req.Style {
	case models.StyleEnthusiast:
		templates = []string{
			fmt.Sprintf("TOOOOOOR! %s mit einem Traumtor in der %d. Minute!", req.PlayerName, req.Minute),
			fmt.Sprintf("WAHNSINN! %s macht das Ding! %d. Minute - %s jubelt!", req.PlayerName, req.Minute, req.TeamName),
		}
	case models.StyleCritical:
		templates = []string{
			fmt.Sprintf("%d. Minute: %s trifft. Die Abwehr hatte geschlafen.", req.Minute, req.PlayerName),
			fmt.Sprintf("Tor durch %s - das hätte verhindert werden müssen.", req.PlayerName),
		}
	default:
		templates = []string{
			fmt.Sprintf("Tor für %s! %s trifft in der %d. Minute.", req.TeamName, req.PlayerName, req.Minute),
			fmt.Sprintf("%d. Minute: %s erzielt das Tor für %s.", req.Minute, req.PlayerName, req.TeamName),
		}
	}

	text := templates[m.pick(len(templates))]
	if req.AssistName != "" {
		text += fmt.Sprintf(" Vorlage: %s.", req.AssistName)
	}
	return text
}

func (m *Mock) cardText(req Request) string {
	if req.Detail == "Yellow Card" {
		switch req.Style {
		case models.StyleEnthusiast:
			return fmt.Sprintf("%d. Minute: %s sieht Gelb - das war unnötig!", req.Minute, req.PlayerName)
		case models.StyleCritical:
			return fmt.Sprintf("Gelb für %s (%d') - vollkommen berechtigt.", req.PlayerName, req.Minute)
		default:
			return fmt.Sprintf("%d. Minute: Gelbe Karte für %s.", req.Minute, req.PlayerName)
		}
	}
	return fmt.Sprintf("🔴 ROTE KARTE! %s muss vom Platz! %d. Minute.", req.PlayerName, req.Minute)
}

func (m *Mock) substitutionText(req Request) string {
	switch req.Style {
	case models.StyleEnthusiast:
		return fmt.Sprintf("Frische Kräfte! %s kommt für %s.", req.PlayerName, req.AssistName)
	case models.StyleCritical:
		return fmt.Sprintf("Wechsel (%d'): %s für %s - fragwürdig.", req.Minute, req.PlayerName, req.AssistName)
	default:
		return fmt.Sprintf("%d. Minute: Wechsel bei %s. %s kommt für %s.", req.Minute, req.TeamName, req.PlayerName, req.AssistName)
	}
}
