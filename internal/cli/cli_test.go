package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roteiro/internal/itinerary"
)

const sample = "**Dia 1: Chegada**\n\n" +
	"| Período | Atividade | Dicas e Detalhes |\n" +
	"|---|---|---|\n" +
	"| Manhã | Check-in | Hotel no centro |\n"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestClassify(t *testing.T) {
	out, err := run(t, sample, "classify")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, "Claro, me diga o destino!", "classify")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestParseJSONFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roteiro.md")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	out, err := run(t, "", "parse", "--json", path)
	require.NoError(t, err)

	var it itinerary.Itinerary
	require.NoError(t, json.Unmarshal([]byte(out), &it))
	require.Len(t, it.Days, 1)
	assert.Equal(t, "Dia 1: Chegada", it.Days[0].Title)
	assert.Equal(t, []itinerary.Activity{{Period: "Manhã", Activity: "Check-in", Details: "Hotel no centro"}}, it.Days[0].Activities)
}

func TestParsePlain(t *testing.T) {
	out, err := run(t, sample, "parse", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "## Dia 1: Chegada")
	assert.Contains(t, out, "Check-in")
}

func TestParseNotItinerary(t *testing.T) {
	_, err := run(t, "Claro, me diga o destino!", "parse")
	assert.ErrorIs(t, err, errNotItinerary)
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		switch req["user_input"] {
		case "Lisboa":
			_ = json.NewEncoder(w).Encode(map[string]string{"response": sample})
		case "erro":
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]string{"response": "Claro, me diga o destino!"})
		}
	}))
	defer srv.Close()

	out, err := run(t, "oi\nLisboa\nerro\nsair\nignored\n", "chat", "--plain", "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Claro, me diga o destino!")
	assert.Contains(t, out, "## Dia 1: Chegada")
	assert.Contains(t, out, "Oops! Tive um problema para me conectar.")
	assert.NotContains(t, out, "ignored")
}
