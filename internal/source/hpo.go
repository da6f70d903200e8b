package source

import (
	"bufio"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/mtthdn/lacuene-exp/internal/gene"
)

// topTermLimit bounds how many phenotype terms travel with a record for
// display; the count always reflects the full set.
const topTermLimit = 10

// PhenotypeMap is the normalized HPO signal: symbol to distinct phenotype
// term names, sorted for determinism.
type PhenotypeMap map[gene.Symbol][]string

// LoadPhenotypes parses the HPO genes_to_phenotype flat file. Each data line
// is tab-separated: ncbi_gene_id, gene_symbol, hpo_id, hpo_term_name, ...
// Comment lines start with '#'. A missing file yields an empty map.
func LoadPhenotypes(path string, logger *slog.Logger) PhenotypeMap {
	f, err := os.Open(path)
	if err != nil {
		if logger != nil {
			logger.Debug("source file absent, serving without", "source", "hpo", "error", err)
		}
		return PhenotypeMap{}
	}
	defer f.Close()

	terms := map[gene.Symbol]map[string]struct{}{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
		if len(parts) < 4 {
			continue
		}
		sym := gene.Normalize(parts[1])
		if sym == "" {
			continue
		}
		if terms[sym] == nil {
			terms[sym] = map[string]struct{}{}
		}
		terms[sym][parts[3]] = struct{}{}
	}
	if err := scanner.Err(); err != nil && logger != nil {
		logger.Warn("hpo file truncated, keeping parsed prefix", "source", "hpo", "error", err)
	}

	out := make(PhenotypeMap, len(terms))
	for sym, set := range terms {
		sorted := make([]string, 0, len(set))
		for term := range set {
			sorted = append(sorted, term)
		}
		sort.Strings(sorted)
		out[sym] = sorted
	}
	return out
}

// Evidence reduces a gene's phenotype terms to the tagged shape the
// aggregator consumes: full count plus a bounded display list.
func (m PhenotypeMap) Evidence(sym gene.Symbol) gene.PhenotypeEvidence {
	terms := m[sym]
	top := terms
	if len(top) > topTermLimit {
		top = top[:topTermLimit]
	}
	return gene.PhenotypeEvidence{Count: len(terms), TopTerms: top}
}
