package source

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtthdn/lacuene-exp/internal/gene"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// =============================================================================
// Curated adapter
// =============================================================================

func TestLoadCurated(t *testing.T) {
	t.Run("missing file yields empty set", func(t *testing.T) {
		set := LoadCurated(filepath.Join(t.TempDir(), "absent.json"), testLogger())
		assert.Empty(t, set)
		assert.False(t, set.Contains("SOX9"))
	})

	t.Run("malformed file yields empty set", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "sources.json", "{not json")
		set := LoadCurated(path, testLogger())
		assert.Empty(t, set)
	})

	t.Run("normalizes symbols and counts flags", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "sources.json", `{
			"sox9": {"in_omim": true, "in_hpo": true, "in_gnomad": false, "omim_title": "CMPD1"}
		}`)
		set := LoadCurated(path, testLogger())

		assert.True(t, set.Contains("SOX9"))
		assert.True(t, set.FlagSet("SOX9", "omim"))
		assert.False(t, set.FlagSet("SOX9", "gnomad"))
		assert.Equal(t, 2, set.SourceCount("SOX9"))

		ev := set.Evidence("SOX9")
		assert.True(t, ev.Present)
		assert.Equal(t, 2, ev.SourceCount)
		assert.False(t, set.Evidence("PAX3").Present)
	})
}

// =============================================================================
// HPO adapter
// =============================================================================

func TestLoadPhenotypes(t *testing.T) {
	t.Run("missing file yields empty map", func(t *testing.T) {
		m := LoadPhenotypes(filepath.Join(t.TempDir(), "absent.txt"), testLogger())
		assert.Empty(t, m)
		assert.Equal(t, 0, m.Evidence("SOX9").Count)
	})

	t.Run("parses tab file, dedupes and sorts terms", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "genes_to_phenotype.txt",
			"#ncbi_gene_id\tgene_symbol\thpo_id\thpo_name\n"+
				"6662\tSOX9\tHP:0000175\tCleft palate\n"+
				"6662\tSOX9\tHP:0000175\tCleft palate\n"+
				"6662\tSOX9\tHP:0001249\tAbnormal gait\n"+
				"5077\tPAX3\tHP:0000574\tThick eyebrow\n"+
				"short\tline\n")
		m := LoadPhenotypes(path, testLogger())

		ev := m.Evidence("SOX9")
		assert.Equal(t, 2, ev.Count)
		assert.Equal(t, []string{"Abnormal gait", "Cleft palate"}, ev.TopTerms)
		assert.Equal(t, 1, m.Evidence("PAX3").Count)
	})

	t.Run("display list is bounded, count is not", func(t *testing.T) {
		lines := "#header\n"
		terms := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
		for _, term := range terms {
			lines += "1\tCOL2A1\tHP:0\tterm " + term + "\n"
		}
		path := writeFile(t, t.TempDir(), "genes_to_phenotype.txt", lines)
		m := LoadPhenotypes(path, testLogger())

		ev := m.Evidence("COL2A1")
		assert.Equal(t, 12, ev.Count)
		assert.Len(t, ev.TopTerms, 10)
	})
}

// =============================================================================
// Orphanet adapter — duck-typed upstream shapes normalize to one form
// =============================================================================

func TestLoadRareDiseases(t *testing.T) {
	t.Run("missing file yields empty map", func(t *testing.T) {
		m := LoadRareDiseases(filepath.Join(t.TempDir(), "absent.json"), testLogger())
		assert.Empty(t, m)
	})

	t.Run("bare list and wrapped dict shapes both normalize", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "orphanet_cache.json", `{
			"sox9": ["Campomelic dysplasia", {"name": "Acampomelic campomelic dysplasia"}],
			"COL2A1": {"disorders": [{"name": "Stickler syndrome type 1"}, "Achondrogenesis type 2"]},
			"EMPTY1": [],
			"WEIRD1": 42
		}`)
		m := LoadRareDiseases(path, testLogger())

		sox := m.Evidence("SOX9")
		assert.Equal(t, 2, sox.Count)
		assert.Equal(t, []string{"Campomelic dysplasia", "Acampomelic campomelic dysplasia"}, sox.Disorders)

		col := m.Evidence("COL2A1")
		assert.Equal(t, 2, col.Count)
		assert.Equal(t, []string{"Stickler syndrome type 1", "Achondrogenesis type 2"}, col.Disorders)

		assert.Equal(t, 0, m.Evidence("EMPTY1").Count)
		assert.Equal(t, 0, m.Evidence("WEIRD1").Count)
		assert.Equal(t, 0, m.Evidence("UNKNOWN").Count)
	})

	t.Run("disorders repeated across classification branches count once", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "orphanet_cache.json", `{
			"TCOF1": ["Treacher Collins syndrome", " Treacher Collins syndrome ", {"name": "Treacher Collins syndrome"}]
		}`)
		m := LoadRareDiseases(path, testLogger())

		ev := m.Evidence("TCOF1")
		assert.Equal(t, 1, ev.Count)
		assert.Equal(t, []string{"Treacher Collins syndrome"}, ev.Disorders)
	})
}

// =============================================================================
// OMIM adapter
// =============================================================================

func TestLoadDiseaseEntries(t *testing.T) {
	t.Run("missing file yields empty map", func(t *testing.T) {
		m := LoadDiseaseEntries(filepath.Join(t.TempDir(), "absent.json"), testLogger())
		assert.Empty(t, m)
		assert.False(t, m.Evidence("SOX9").Present)
	})

	t.Run("wraps entries under genes key", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "omim_subset.json", `{
			"genes": {
				"twist1": {
					"title": "TWIST FAMILY bHLH TRANSCRIPTION FACTOR 1",
					"syndromes": ["Saethre-Chotzen syndrome", "Craniosynostosis 1"],
					"inheritance": "AD"
				}
			}
		}`)
		m := LoadDiseaseEntries(path, testLogger())

		ev := m.Evidence("TWIST1")
		assert.True(t, ev.Present)
		assert.Equal(t, 2, ev.SyndromeCount)
		assert.Contains(t, ev.Title, "TWIST")
	})
}

// =============================================================================
// HGNC universe
// =============================================================================

func TestExcludeZNF(t *testing.T) {
	genes := []gene.Info{
		{Symbol: "SOX9", Source: "group:SRY-boxes"},
		{Symbol: "ZNF1", Source: "group:Zinc fingers C2H2-type"},
		{Symbol: "PAX3", Source: "curated"},
	}
	out := ExcludeZNF(genes)
	require.Len(t, out, 2)
	assert.Equal(t, "SOX9", out[0].Symbol)
	assert.Equal(t, "PAX3", out[1].Symbol)
}

func TestSelectCraniofacial(t *testing.T) {
	curated := CuratedSet{"PAX3": map[string]any{"in_omim": true}}
	genes := []gene.Info{
		{Symbol: "PAX3", Name: "paired box 3", GeneGroup: []string{"Paired box genes"}},
		{Symbol: "BMP4", Name: "bone morphogenetic protein 4", GeneGroup: []string{"Bone morphogenetic proteins"}},
		{Symbol: "IRF6", Name: "interferon regulatory factor 6, cleft lip associated"},
		{Symbol: "ACTB", Name: "actin beta", GeneGroup: []string{"Actins"}},
	}

	out := SelectCraniofacial(genes, curated)
	require.Len(t, out, 3)
	assert.Equal(t, "curated", out[0].Source)
	assert.Equal(t, "group:Bone morphogenetic proteins", out[1].Source)
	assert.Equal(t, "name:cleft", out[2].Source)
}

func TestLoadUniverse(t *testing.T) {
	t.Run("missing file yields nil", func(t *testing.T) {
		assert.Nil(t, LoadUniverse(filepath.Join(t.TempDir(), "absent.json"), testLogger()))
	})

	t.Run("applies znf exclusion", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "expanded.json", `[
			{"symbol": "SOX9", "source": "group:SRY-boxes"},
			{"symbol": "ZNF239", "source": "group:Zinc fingers C2H2-type"}
		]`)
		out := LoadUniverse(path, testLogger())
		require.Len(t, out, 1)
		assert.Equal(t, "SOX9", out[0].Symbol)
	})
}
