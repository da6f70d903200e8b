package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Default public endpoints. Tests point these at httptest servers.
const (
	DefaultEUtilsBaseURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	DefaultUniProtBaseURL = "https://rest.uniprot.org/uniprotkb"
)

const fetchMaxRetries = 3

// Clients holds the HTTP lookups used during enrichment. Every fetch is
// fail-soft: on exhausted retries the zero value comes back with the error,
// and the caller decides whether to keep going.
type Clients struct {
	eutilsBase    string
	uniprotBase   string
	client        *http.Client
	logger        *slog.Logger
	retryInterval time.Duration
}

// ClientOption configures Clients.
type ClientOption func(*Clients)

// WithEUtilsBaseURL overrides the NCBI E-utilities base URL.
func WithEUtilsBaseURL(u string) ClientOption {
	return func(c *Clients) { c.eutilsBase = u }
}

// WithUniProtBaseURL overrides the UniProt REST base URL.
func WithUniProtBaseURL(u string) ClientOption {
	return func(c *Clients) { c.uniprotBase = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Clients) { c.client = hc }
}

// WithRetryInterval overrides the pause between fetch retries.
func WithRetryInterval(d time.Duration) ClientOption {
	return func(c *Clients) { c.retryInterval = d }
}

// NewClients builds enrichment clients with the public endpoints.
func NewClients(logger *slog.Logger, opts ...ClientOption) *Clients {
	c := &Clients{
		eutilsBase:    DefaultEUtilsBaseURL,
		uniprotBase:   DefaultUniProtBaseURL,
		client:        &http.Client{Timeout: 15 * time.Second},
		logger:        logger,
		retryInterval: time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GeneSummary fetches the NCBI Entrez gene summary for one NCBI gene ID.
// An empty ID short-circuits to an empty summary.
func (c *Clients) GeneSummary(ctx context.Context, ncbiID string) (string, error) {
	if ncbiID == "" {
		return "", nil
	}
	u := fmt.Sprintf("%s/esummary.fcgi?db=gene&id=%s&retmode=json",
		c.eutilsBase, url.QueryEscape(ncbiID))

	var payload struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return "", err
	}
	raw, ok := payload.Result[ncbiID]
	if !ok {
		return "", nil
	}
	var entry struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", fmt.Errorf("decode esummary entry for %s: %w", ncbiID, err)
	}
	return entry.Summary, nil
}

// PubMedCraniofacialCount counts PubMed articles matching the gene symbol
// together with craniofacial or neural crest terms.
func (c *Clients) PubMedCraniofacialCount(ctx context.Context, symbol string) (int, error) {
	term := url.QueryEscape(symbol + " AND (craniofacial OR neural crest)")
	u := fmt.Sprintf("%s/esearch.fcgi?db=pubmed&term=%s&retmode=json&retmax=0",
		c.eutilsBase, term)

	var payload struct {
		Result struct {
			Count string `json:"count"`
		} `json:"esearchresult"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return 0, err
	}
	if payload.Result.Count == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(payload.Result.Count)
	if err != nil {
		return 0, fmt.Errorf("parse esearch count %q: %w", payload.Result.Count, err)
	}
	return n, nil
}

// UniProtFunction fetches the FUNCTION comment for one UniProt accession.
// An empty accession short-circuits to an empty annotation.
func (c *Clients) UniProtFunction(ctx context.Context, uniprotID string) (string, error) {
	if uniprotID == "" {
		return "", nil
	}
	u := fmt.Sprintf("%s/%s.json", c.uniprotBase, url.PathEscape(uniprotID))

	var payload struct {
		Comments []struct {
			CommentType string `json:"commentType"`
			Texts       []struct {
				Value string `json:"value"`
			} `json:"texts"`
		} `json:"comments"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return "", err
	}
	for _, comment := range payload.Comments {
		if comment.CommentType == "FUNCTION" && len(comment.Texts) > 0 {
			return comment.Texts[0].Value, nil
		}
	}
	return "", nil
}

func (c *Clients) getJSON(ctx context.Context, u string, out any) error {
	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", u, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: unexpected status %d", u, resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read %s: %w", u, err)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s: %w", u, err))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), fetchMaxRetries-1),
		ctx,
	)
	return backoff.Retry(fetch, policy)
}
