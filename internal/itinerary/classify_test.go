package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeItinerary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"both markers", chegada, true},
		{"plain reply", "Claro, me diga o destino!", false},
		{"day marker only", "**Dia 1: Chegada**\nCheck-in e descanso.", false},
		{"header only", "| Período | Atividade |\n|---|---|", false},
		{"empty", "", false},
		{"day marker without space", "**Dia1**\n| Período | Atividade |", false},
		{"markers anywhere", "texto | Período | texto **Dia qualquer", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeItinerary(tt.text))
		})
	}
}

func TestLooksLikeItinerary_AgreesWithParse(t *testing.T) {
	_, ok := Parse("Claro, me diga o destino!")
	assert.False(t, ok)
	assert.False(t, LooksLikeItinerary("Claro, me diga o destino!"))

	_, ok = Parse(chegada)
	assert.True(t, ok)
	assert.True(t, LooksLikeItinerary(chegada))
}
