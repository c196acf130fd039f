// Package seed loads the lot catalogue the server starts with.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	model "auction-house/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed lots.yaml
var defaultCatalogue []byte

// LotStore is the subset of the ledger seeding needs
type LotStore interface {
	AddLot(lot model.Lot, history ...model.Bid) error
}

// Catalogue is the YAML document listing seed lots
type Catalogue struct {
	Lots []LotSpec `yaml:"lots"`
}

// LotSpec describes one seed lot. EndIn is relative to load time.
type LotSpec struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Artist      string          `yaml:"artist"`
	Year        int             `yaml:"year"`
	Medium      string          `yaml:"medium"`
	Description string          `yaml:"description"`
	ImageURL    string          `yaml:"image_url"`
	StartingBid decimal.Decimal `yaml:"starting_bid"`
	EndIn       time.Duration   `yaml:"end_in"`
	Bids        []BidSpec       `yaml:"bids"`
}

// BidSpec is a historical bid, Ago before load time
type BidSpec struct {
	Bidder string          `yaml:"bidder"`
	Amount decimal.Decimal `yaml:"amount"`
	Ago    time.Duration   `yaml:"ago"`
}

// Parse decodes a catalogue document
func Parse(data []byte) (Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalogue{}, fmt.Errorf("seed: parse catalogue: %w", err)
	}
	return c, nil
}

// Default returns the built-in catalogue
func Default() (Catalogue, error) {
	return Parse(defaultCatalogue)
}

// LoadFile reads a catalogue from path, or the built-in one when path is empty
func LoadFile(path string) (Catalogue, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalogue{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

// Apply adds every lot in the catalogue to store, resolving relative times against now
func (c Catalogue) Apply(store LotStore, now time.Time) (int, error) {
	for _, spec := range c.Lots {
		lot := model.Lot{
			ID:             spec.ID,
			Title:          spec.Title,
			Artist:         spec.Artist,
			Year:           spec.Year,
			Medium:         spec.Medium,
			Description:    spec.Description,
			ImageURL:       spec.ImageURL,
			StartingBid:    spec.StartingBid,
			AuctionEndTime: now.Add(spec.EndIn).UTC(),
			CreatedAt:      now.UTC(),
		}

		history := make([]model.Bid, 0, len(spec.Bids))
		for _, b := range spec.Bids {
			history = append(history, model.Bid{
				BidderName: b.Bidder,
				Amount:     b.Amount,
				Timestamp:  now.Add(-b.Ago).UTC(),
			})
		}

		if err := store.AddLot(lot, history...); err != nil {
			return 0, fmt.Errorf("seed: add lot %s: %w", spec.ID, err)
		}
	}
	return len(c.Lots), nil
}
