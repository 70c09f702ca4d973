package remote

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
)

type Mass struct {
	Value    float64 `json:"massValue"`
	Exponent int     `json:"massExponent"`
}

// Kg is Value x 10^Exponent.
func (m Mass) Kg() float64 {
	return m.Value * math.Pow10(m.Exponent)
}

type Moon struct {
	Name string `json:"moon"`
	Rel  string `json:"rel"`
}

// CatalogBody is one entry of the planetary catalog.
type CatalogBody struct {
	ID            string  `json:"id"`
	EnglishName   string  `json:"englishName"`
	IsPlanet      bool    `json:"isPlanet"`
	MeanRadius    float64 `json:"meanRadius"`
	Mass          *Mass   `json:"mass"`
	Gravity       float64 `json:"gravity"`
	SemimajorAxis float64 `json:"semimajorAxis"`
	Eccentricity  float64 `json:"eccentricity"`
	Moons         []Moon  `json:"moons"`
}

func (b CatalogBody) Diameter() float64 { return 2 * b.MeanRadius }

func (b CatalogBody) MassKg() float64 {
	if b.Mass == nil {
		return 0
	}
	return b.Mass.Kg()
}

func (b CatalogBody) MoonCount() int { return len(b.Moons) }

type catalogResponse struct {
	Bodies []CatalogBody `json:"bodies"`
}

// CatalogClient reads the solar system catalog. The body list is cached
// after the first successful fetch.
type CatalogClient struct {
	base
	url string
	key string

	mu     sync.Mutex
	bodies []CatalogBody
}

func NewCatalogClient(url, key string, opts Options) *CatalogClient {
	return &CatalogClient{base: newBase("catalog", opts), url: url, key: key}
}

func (c *CatalogClient) Bodies(ctx context.Context) ([]CatalogBody, error) {
	c.mu.Lock()
	cached := c.bodies
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	var header http.Header
	if c.key != "" {
		header = http.Header{"Authorization": {"Bearer " + c.key}}
	}
	var resp catalogResponse
	if err := c.getJSON(ctx, c.url, header, &resp); err != nil {
		return nil, err
	}
	if resp.Bodies == nil {
		return nil, fmt.Errorf("%w: catalog has no bodies field", ErrMalformed)
	}

	c.mu.Lock()
	c.bodies = resp.Bodies
	c.mu.Unlock()
	return resp.Bodies, nil
}

// Planets filters the catalog down to isPlanet entries.
func (c *CatalogClient) Planets(ctx context.Context) ([]CatalogBody, error) {
	all, err := c.Bodies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CatalogBody, 0, 8)
	for _, b := range all {
		if b.IsPlanet {
			out = append(out, b)
		}
	}
	return out, nil
}

// Find looks a body up by English name, case-insensitively.
func (c *CatalogClient) Find(ctx context.Context, name string) (CatalogBody, error) {
	all, err := c.Bodies(ctx)
	if err != nil {
		return CatalogBody{}, err
	}
	for _, b := range all {
		if strings.EqualFold(b.EnglishName, name) {
			return b, nil
		}
	}
	return CatalogBody{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}
