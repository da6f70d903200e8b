package bulk

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mtthdn/lacuene-exp/pkg/platform/atomicfile"
	"github.com/mtthdn/lacuene-exp/pkg/platform/sentinel"
)

// Artifact filenames inside the derived directory.
const (
	CSVArtifactName     = "genome_wide.csv"
	SummaryArtifactName = "genome_wide_summary.json"
)

// csvHeader fixes the column order of the genome-wide CSV. Downstream
// spreadsheets key on these names; do not reorder.
var csvHeader = []string{
	"symbol", "name", "ncbi_id", "uniprot_id", "ensembl_id", "omim_id",
	"location", "in_hpo", "hpo_phenotype_count", "in_orphanet",
	"orphanet_disorder_count", "in_omim", "omim_title",
	"omim_syndrome_count", "in_curated", "curated_source_count",
	"cf_source",
}

// WriteCSV persists the merged rows atomically as genome_wide.csv.
func WriteCSV(path string, rows []Row) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(csvRecord(r)); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.Symbol, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create derived dir: %w", err)
	}
	return atomicfile.WriteFile(path, buf.Bytes(), 0o644)
}

func csvRecord(r Row) []string {
	return []string{
		string(r.Symbol), r.Name, r.NCBIID, r.UniProtID, r.EnsemblID,
		r.OMIMID, r.Location,
		strconv.FormatBool(r.InHPO), strconv.Itoa(r.HPOPhenotypeCount),
		strconv.FormatBool(r.InOrphanet), strconv.Itoa(r.OrphanetDisorderCount),
		strconv.FormatBool(r.InOMIM), r.OMIMTitle, strconv.Itoa(r.OMIMSyndromeCount),
		strconv.FormatBool(r.InCurated), strconv.Itoa(r.CuratedSourceCount),
		r.CFSource,
	}
}

// WriteSummary persists the coverage summary atomically as
// genome_wide_summary.json.
func WriteSummary(path string, summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bulk summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create derived dir: %w", err)
	}
	return atomicfile.WriteFile(path, data, 0o644)
}

// LoadSummary reads a previously written summary. Returns
// sentinel.ErrNotFound for an absent file and sentinel.ErrMalformed for one
// that fails to parse; the serving layer treats both as degraded states.
func LoadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, sentinel.ErrMalformed, err)
	}
	return &summary, nil
}
