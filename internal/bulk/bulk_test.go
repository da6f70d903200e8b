package bulk

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mtthdn/lacuene-exp/internal/gene"
	"github.com/mtthdn/lacuene-exp/pkg/platform/sentinel"
)

type BulkSuite struct {
	suite.Suite
	now time.Time
}

func TestBulkSuite(t *testing.T) {
	suite.Run(t, new(BulkSuite))
}

func (s *BulkSuite) SetupTest() {
	s.now = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
}

func record(sym string, curated bool, hpo, orph int, omim bool, syndromes int) gene.Record {
	rec := gene.Record{
		Symbol:   gene.Symbol(sym),
		Name:     sym + " gene",
		Source:   "group:Test group",
		Location: "1q21",
		Xrefs:    gene.CrossReferences{NCBIID: "100", UniProtID: "P100"},
	}
	rec.IsCurated = curated
	if curated {
		rec.Evidence.Curated = gene.CuratedEvidence{Present: true, SourceCount: 4}
	}
	if hpo > 0 {
		rec.Evidence.Phenotypes = gene.PhenotypeEvidence{Count: hpo, TopTerms: []string{"Micrognathia"}}
	}
	if orph > 0 {
		rec.Evidence.RareDiseases = gene.RareDiseaseEvidence{Count: orph, Disorders: []string{"Syndrome A"}}
	}
	if omim {
		rec.Evidence.DiseaseEntry = gene.DiseaseEntryEvidence{Present: true, Title: "TEST SYNDROME", SyndromeCount: syndromes}
	}
	return rec
}

// ==================== Build ====================

func (s *BulkSuite) TestBuildMergesEvidenceIntoRows() {
	records := []gene.Record{
		record("ZZZ1", false, 3, 0, false, 0),
		record("AAA1", true, 12, 2, true, 1),
	}

	rows, summary := Build(records, "run-1", s.now)

	s.Require().Len(rows, 2)
	// Sorted by symbol regardless of input order.
	s.Equal(gene.Symbol("AAA1"), rows[0].Symbol)
	s.Equal(gene.Symbol("ZZZ1"), rows[1].Symbol)

	aaa := rows[0]
	s.True(aaa.InHPO)
	s.Equal(12, aaa.HPOPhenotypeCount)
	s.True(aaa.InOrphanet)
	s.Equal(2, aaa.OrphanetDisorderCount)
	s.True(aaa.InOMIM)
	s.Equal("TEST SYNDROME", aaa.OMIMTitle)
	s.Equal(1, aaa.OMIMSyndromeCount)
	s.True(aaa.InCurated)
	s.Equal(4, aaa.CuratedSourceCount)
	s.Equal("group:Test group", aaa.CFSource)

	s.Equal(2, summary.TotalGenes)
}

func (s *BulkSuite) TestBuildKeepsCuratedGenes() {
	// Curated genes stay in the genome-wide output; only the candidate
	// pipeline excludes them.
	rows, _ := Build([]gene.Record{record("PAX3", true, 50, 3, true, 2)}, "run-1", s.now)

	s.Require().Len(rows, 1)
	s.True(rows[0].InCurated)
}

// ==================== Summary counts ====================

func (s *BulkSuite) TestSummaryCoverageCounts() {
	records := []gene.Record{
		record("AAA1", false, 0, 0, false, 0),  // no evidence
		record("BBB1", false, 6, 0, false, 0),  // phenotype gap (hpo > 5, not curated)
		record("CCC1", false, 5, 0, false, 0),  // at threshold, not a gap
		record("DDD1", true, 20, 2, true, 1),   // curated, never a gap
		record("EEE1", false, 0, 1, true, 0),   // disease gene not curated
	}

	_, summary := Build(records, "run-1", s.now)

	s.Equal(5, summary.TotalGenes)
	s.Equal(3, summary.InHPO)
	s.Equal(2, summary.InOrphanet)
	s.Equal(2, summary.InOMIM)
	s.Equal(1, summary.InCurated)
	s.Equal(1, summary.WithPhenotypesAndNoCurated)
	s.Equal(1, summary.DiseaseGenesNotCurated)
}

func (s *BulkSuite) TestSummaryProvenance() {
	_, summary := Build(nil, "run-7", s.now)

	s.Equal(WorkerName, summary.Provenance.Worker)
	s.Equal("run-7", summary.Provenance.RunID)
	s.Equal("derived", summary.Provenance.CanonPurity)
	s.Contains(summary.Provenance.CanonSources, "HGNC")
	s.Contains(summary.Provenance.NonCanonElements, "Cross-reference join logic")
}

// ==================== CSV output ====================

func (s *BulkSuite) TestWriteCSVRoundTrip() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, CSVArtifactName)
	rows, _ := Build([]gene.Record{
		record("AAA1", false, 6, 1, true, 2),
		record("BBB1", true, 0, 0, false, 0),
	}, "run-1", s.now)

	s.Require().NoError(WriteCSV(path, rows))

	f, err := os.Open(path)
	s.Require().NoError(err)
	defer f.Close()
	parsed, err := csv.NewReader(f).ReadAll()
	s.Require().NoError(err)

	s.Require().Len(parsed, 3) // header + 2 rows
	s.Equal("symbol", parsed[0][0])
	s.Equal("cf_source", parsed[0][len(parsed[0])-1])
	s.Equal("AAA1", parsed[1][0])
	s.Equal("true", parsed[1][7])  // in_hpo
	s.Equal("6", parsed[1][8])     // hpo_phenotype_count
	s.Equal("false", parsed[2][7]) // BBB1 has no phenotypes
	s.Equal("true", parsed[2][14]) // in_curated
}

// ==================== Summary persistence ====================

func (s *BulkSuite) TestWriteAndLoadSummary() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, SummaryArtifactName)
	_, summary := Build([]gene.Record{record("AAA1", false, 6, 0, false, 0)}, "run-1", s.now)

	s.Require().NoError(WriteSummary(path, summary))

	loaded, err := LoadSummary(path)
	s.Require().NoError(err)
	s.Equal(summary.TotalGenes, loaded.TotalGenes)
	s.Equal(summary.WithPhenotypesAndNoCurated, loaded.WithPhenotypesAndNoCurated)
	s.Equal(WorkerName, loaded.Provenance.Worker)
}

func (s *BulkSuite) TestLoadSummaryMissingFile() {
	_, err := LoadSummary(filepath.Join(s.T().TempDir(), "absent.json"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *BulkSuite) TestLoadSummaryMalformedFile() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, SummaryArtifactName)
	s.Require().NoError(os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadSummary(path)
	s.ErrorIs(err, sentinel.ErrMalformed)
}
