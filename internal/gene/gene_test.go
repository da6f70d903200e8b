package gene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Symbol("COL2A1"), Normalize("col2a1"))
	assert.Equal(t, Symbol("SOX9"), Normalize("  sox9 "))
	assert.Equal(t, Symbol("PAX3"), Normalize("PAX3"))
	assert.Equal(t, Symbol(""), Normalize("   "))
}

func TestInfoXrefs(t *testing.T) {
	info := Info{
		Symbol:    "TWIST1",
		NCBIID:    "7291",
		UniProtID: "Q15672",
		OMIMID:    "601622",
		EnsemblID: "ENSG00000122691",
	}
	xrefs := info.Xrefs()
	assert.Equal(t, "7291", xrefs.NCBIID)
	assert.Equal(t, "Q15672", xrefs.UniProtID)
	assert.Equal(t, "601622", xrefs.OMIMID)
	assert.Equal(t, "ENSG00000122691", xrefs.EnsemblID)
}
