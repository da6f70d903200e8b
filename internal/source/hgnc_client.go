package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mtthdn/lacuene-exp/internal/gene"
)

// HGNCBulkURL is the public bulk download of the complete HGNC gene set.
const HGNCBulkURL = "https://storage.googleapis.com/public-download-files/hgnc/json/json/hgnc_complete_set.json"

// hgncDoc mirrors one record of the HGNC complete-set download. Cross
// reference IDs come back in mixed shapes (numbers, arrays) and are
// flattened into gene.Info here.
type hgncDoc struct {
	Symbol        string      `json:"symbol"`
	Name          string      `json:"name"`
	HGNCID        string      `json:"hgnc_id"`
	EntrezID      json.Number `json:"entrez_id"`
	EnsemblGeneID string      `json:"ensembl_gene_id"`
	UniProtIDs    []string    `json:"uniprot_ids"`
	OMIMID        []string    `json:"omim_id"`
	LocusGroup    string      `json:"locus_group"`
	LocusType     string      `json:"locus_type"`
	GeneGroup     []string    `json:"gene_group"`
	Location      string      `json:"location"`
	Status        string      `json:"status"`
}

type hgncBulkPayload struct {
	Response struct {
		Docs []hgncDoc `json:"docs"`
	} `json:"response"`
}

// HGNCClient downloads the HGNC bulk gene set.
type HGNCClient struct {
	url           string
	client        *http.Client
	logger        *slog.Logger
	retryInterval time.Duration
}

// HGNCOption configures an HGNCClient.
type HGNCOption func(*HGNCClient)

// WithHGNCURL overrides the bulk download URL (tests point it at a local
// httptest server).
func WithHGNCURL(url string) HGNCOption {
	return func(c *HGNCClient) { c.url = url }
}

// WithHGNCHTTPClient overrides the HTTP client.
func WithHGNCHTTPClient(client *http.Client) HGNCOption {
	return func(c *HGNCClient) { c.client = client }
}

// WithHGNCRetryInterval overrides the retry backoff interval.
func WithHGNCRetryInterval(d time.Duration) HGNCOption {
	return func(c *HGNCClient) { c.retryInterval = d }
}

// NewHGNCClient builds a bulk download client.
func NewHGNCClient(logger *slog.Logger, opts ...HGNCOption) *HGNCClient {
	c := &HGNCClient{
		url:           HGNCBulkURL,
		client:        &http.Client{Timeout: 2 * time.Minute},
		logger:        logger,
		retryInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DownloadProteinCoding fetches the complete set and filters to approved
// protein-coding genes. Transient failures retry with short backoff; the
// download aborts only after the retry budget is exhausted.
func (c *HGNCClient) DownloadProteinCoding(ctx context.Context) ([]gene.Info, error) {
	var payload hgncBulkPayload

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("hgnc bulk download: unexpected status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&payload)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("hgnc bulk download failed: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("downloaded hgnc complete set", "genes", len(payload.Response.Docs))
	}
	return FilterProteinCoding(payload.Response.Docs), nil
}

// FilterProteinCoding keeps approved protein-coding genes and flattens their
// cross-reference IDs.
func FilterProteinCoding(docs []hgncDoc) []gene.Info {
	out := make([]gene.Info, 0, len(docs))
	for _, doc := range docs {
		if doc.LocusGroup != "protein-coding gene" || doc.Status != "Approved" {
			continue
		}
		info := gene.Info{
			Symbol:    doc.Symbol,
			Name:      doc.Name,
			HGNCID:    doc.HGNCID,
			NCBIID:    doc.EntrezID.String(),
			EnsemblID: doc.EnsemblGeneID,
			LocusType: doc.LocusType,
			GeneGroup: doc.GeneGroup,
			Location:  doc.Location,
		}
		if info.NCBIID == "" || info.NCBIID == "0" {
			info.NCBIID = ""
		}
		if len(doc.UniProtIDs) > 0 {
			info.UniProtID = doc.UniProtIDs[0]
		}
		if len(doc.OMIMID) > 0 {
			info.OMIMID = doc.OMIMID[0]
		}
		out = append(out, info)
	}
	return out
}
