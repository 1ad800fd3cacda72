package insights

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiagnosesPerYear(t *testing.T) {
	var records []DiagnosisRecord
	raw := `[
		{"Year Diagnosed": 2019}, {"Year Diagnosed": "2005"}, {"Year Diagnosed": 2019},
		{"Year Diagnosed": ""}, {"Year Diagnosed": null}, {"Other": 1}, {"Year Diagnosed": 998}
	]`
	require.NoError(t, json.Unmarshal([]byte(raw), &records))

	s := DiagnosesPerYear(records)
	require.Equal(t, []string{"998", "2005", "2019"}, s.Labels)
	require.Equal(t, []int{1, 1, 2}, s.Counts)
}

func TestPrevalenceByGender(t *testing.T) {
	records := []PrevalenceRecord{
		{Sex: "Male", Year: "2001", Val: 0.12345},
		{Sex: "Female", Year: "2000", Val: 0.1},
		{Sex: "Male", Year: "2000", Val: 0.2},
		{Sex: "Both", Year: "1999", Val: 0.5},
	}

	g := PrevalenceByGender(records)
	require.Equal(t, []string{"2000", "2001"}, g.Labels)
	require.InDelta(t, 20.0, *g.Male[0], 1e-9)
	require.InDelta(t, 12.35, *g.Male[1], 1e-9)
	require.InDelta(t, 10.0, *g.Female[0], 1e-9)
	require.Nil(t, g.Female[1])
}

func TestLoadDatasets(t *testing.T) {
	dir := t.TempDir()
	diag := filepath.Join(dir, "diagnoses.json")
	prev := filepath.Join(dir, "prevalence.json")
	require.NoError(t, os.WriteFile(diag, []byte(`[{"Year Diagnosed": 2020}]`), 0o600))
	require.NoError(t, os.WriteFile(prev, []byte(`[{"sex":"Female","year":2020,"val":0.05}]`), 0o600))

	d, err := LoadDiagnoses(diag)
	require.NoError(t, err)
	require.Len(t, d, 1)

	p, err := LoadPrevalence(prev)
	require.NoError(t, err)
	require.Equal(t, Year("2020"), p[0].Year)

	_, err = LoadDiagnoses(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
