package source

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/mtthdn/lacuene-exp/internal/gene"
)

// znfGroup names the HGNC gene group excluded from the expanded universe:
// 760 genes, too broad to carry disease signal per member.
const znfGroup = "Zinc fingers C2H2"

// craniofacialGroups are the HGNC gene groups that admit a gene into the
// expanded universe.
var craniofacialGroups = []string{
	"Bone morphogenetic proteins",
	"Fibroblast growth factors",
	"Fibroblast growth factor receptors",
	"Hedgehog signaling molecule",
	"Homeobox genes",
	"Paired box genes",
	"SRY-boxes",
	"T-boxes",
	"Forkhead boxes",
	"SMAD family",
	"Transforming growth factor beta",
	"Wingless-type MMTV integration site family",
	"WNT signaling pathway",
	"Notch receptors",
	"Cadherins",
	"Collagens",
	"Matrix metallopeptidases",
	"Disintegrin and metallopeptidase domain",
	"Ephrin receptors",
	"Semaphorins",
	"Twist family",
	"Snail family",
	"Zinc fingers C2H2-type",
	"Endothelin receptors",
	"Gap junction proteins",
	"Runt-related transcription factors",
	"Retinoid receptors",
}

// craniofacialNameTerms admit a gene by substring match on its approved name.
var craniofacialNameTerms = []string{
	"cranio", "facial", "palate", "cleft", "dental", "tooth",
	"mandib", "maxill", "neural crest", "branchial",
	"pharyngeal", "otic", "skeletal", "cartilage", "chondro",
	"osteo", "bone morpho", "craniofacial",
}

// LoadUniverse reads the expanded gene list (the aggregation universe) and
// applies the ZNF exclusion. A missing file yields an empty universe; the
// caller decides whether that is fatal for its operation.
func LoadUniverse(path string, logger *slog.Logger) []gene.Info {
	var genes []gene.Info
	if err := LoadJSON(path, &genes); err != nil {
		LogSoftFailure(logger, "expanded", err)
		return nil
	}
	return ExcludeZNF(genes)
}

// ExcludeZNF drops genes that entered the universe through the C2H2 zinc
// finger group.
func ExcludeZNF(genes []gene.Info) []gene.Info {
	out := make([]gene.Info, 0, len(genes))
	for _, g := range genes {
		if strings.Contains(g.Source, znfGroup) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// SelectCraniofacial filters the genome-wide protein-coding set down to the
// craniofacial-adjacent universe, tagging each selection with why it was
// admitted: curated membership first, then gene-group match, then name-term
// match.
func SelectCraniofacial(genes []gene.Info, curated CuratedSet) []gene.Info {
	var out []gene.Info
	seen := map[gene.Symbol]struct{}{}

	for _, g := range genes {
		sym := gene.Normalize(g.Symbol)
		if _, dup := seen[sym]; dup {
			continue
		}

		if curated.Contains(sym) {
			g.Source = "curated"
			out = append(out, g)
			seen[sym] = struct{}{}
			continue
		}

		if group, ok := matchGroup(g.GeneGroup); ok {
			g.Source = "group:" + group
			out = append(out, g)
			seen[sym] = struct{}{}
			continue
		}

		if term, ok := matchNameTerm(g.Name); ok {
			g.Source = "name:" + term
			out = append(out, g)
			seen[sym] = struct{}{}
		}
	}
	return out
}

func matchGroup(groups []string) (string, bool) {
	for _, group := range groups {
		lower := strings.ToLower(group)
		for _, cg := range craniofacialGroups {
			if strings.Contains(lower, strings.ToLower(cg)) {
				return group, true
			}
		}
	}
	return "", false
}

func matchNameTerm(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, term := range craniofacialNameTerms {
		if strings.Contains(lower, term) {
			return term, true
		}
	}
	return "", false
}

// SortBySymbol orders genes by symbol ascending, in place.
func SortBySymbol(genes []gene.Info) {
	sort.Slice(genes, func(i, j int) bool { return genes[i].Symbol < genes[j].Symbol })
}
