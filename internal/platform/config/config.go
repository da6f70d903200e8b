package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Server captures HTTP server level configuration plus the artifact paths
// the snapshot loads from.
type Server struct {
	Addr  string
	Paths Paths
}

// Paths locates every tier artifact. Curated artifacts live under the
// curated pipeline's output directory; everything else under this
// repository's directories.
type Paths struct {
	CuratedDir  string // curated pipeline output (sources.json, gap_report.json)
	ExpandedDir string // downloaded HGNC universes
	DerivedDir  string // artifacts written by the batch commands
}

// fileConfig is the optional YAML config file named by LACUENE_CONFIG.
// Environment variables override whatever the file sets.
type fileConfig struct {
	Addr        string `yaml:"addr"`
	CuratedDir  string `yaml:"curated_dir"`
	ExpandedDir string `yaml:"expanded_dir"`
	DerivedDir  string `yaml:"derived_dir"`
}

// FromEnv builds a Server config from the optional config file plus
// environment variables so main stays lean. Precedence: env, then file,
// then defaults.
func FromEnv() Server {
	var file fileConfig
	if path := os.Getenv("LACUENE_CONFIG"); path != "" {
		// Unreadable config files fall through to defaults; a read-only
		// API should still start.
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, &file)
		}
	}

	return Server{
		Addr: firstOf(os.Getenv("LACUENE_ADDR"), file.Addr, ":8080"),
		Paths: Paths{
			CuratedDir:  firstOf(os.Getenv("LACUENE_CURATED_DIR"), file.CuratedDir, filepath.Join("..", "lacuene", "output")),
			ExpandedDir: firstOf(os.Getenv("LACUENE_EXPANDED_DIR"), file.ExpandedDir, "expanded"),
			DerivedDir:  firstOf(os.Getenv("LACUENE_DERIVED_DIR"), file.DerivedDir, "derived"),
		},
	}
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CuratedSources is the curated pipeline's per-source flag file.
func (p Paths) CuratedSources() string { return filepath.Join(p.CuratedDir, "sources.json") }

// GapReport is the curated pipeline's gap report.
func (p Paths) GapReport() string { return filepath.Join(p.CuratedDir, "gap_report.json") }

// ExpandedGenes is the craniofacial-filtered HGNC universe.
func (p Paths) ExpandedGenes() string { return filepath.Join(p.ExpandedDir, "hgnc_craniofacial.json") }

// ProteinCoding is the full protein-coding HGNC universe.
func (p Paths) ProteinCoding() string { return filepath.Join(p.ExpandedDir, "hgnc_protein_coding.json") }

// HPOAssociations is the HPO gene-to-phenotype bulk file.
func (p Paths) HPOAssociations() string {
	return filepath.Join(p.CuratedDir, "..", "data", "hpo", "genes_to_phenotype.txt")
}

// OrphanetCache is the pre-fetched Orphanet association cache.
func (p Paths) OrphanetCache() string {
	return filepath.Join(p.CuratedDir, "..", "data", "orphanet", "orphanet_cache.json")
}

// OMIMSubset is the bundled OMIM subset file.
func (p Paths) OMIMSubset() string {
	return filepath.Join(p.CuratedDir, "..", "data", "omim", "omim_subset.json")
}

// GapCandidates is the derived candidate snapshot.
func (p Paths) GapCandidates() string { return filepath.Join(p.DerivedDir, "gap_candidates.json") }

// BulkCSV is the derived genome-wide CSV.
func (p Paths) BulkCSV() string { return filepath.Join(p.DerivedDir, "genome_wide.csv") }

// BulkSummary is the derived genome-wide summary.
func (p Paths) BulkSummary() string { return filepath.Join(p.DerivedDir, "genome_wide_summary.json") }

// Enrichment is the derived candidate enrichment artifact.
func (p Paths) Enrichment() string { return filepath.Join(p.DerivedDir, "candidate_enrichment.json") }
