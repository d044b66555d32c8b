// Package catalog provides the read-only travel inventory: hotels, flights
// and trains.  The inventory is loaded once from a YAML document and never
// mutated afterwards, so a Static value is safe for concurrent use.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/staynstray/internal/model"
)

//go:embed catalog.yaml
var seedYAML []byte

// ErrNotFound is returned by the Find methods when no item has the given id.
var ErrNotFound = errors.New("catalog item not found")

// Inventory is the read side of the catalog consumed by handlers and the
// booking service.
type Inventory interface {
	ListHotels(ctx context.Context) ([]model.Hotel, error)
	ListFlights(ctx context.Context) ([]model.Flight, error)
	ListTrains(ctx context.Context) ([]model.Train, error)
	FindHotel(ctx context.Context, id string) (model.Hotel, error)
	FindFlight(ctx context.Context, id string) (model.Flight, error)
	FindTrain(ctx context.Context, id string) (model.Train, error)
}

type document struct {
	Hotels  []model.Hotel  `yaml:"hotels"`
	Flights []model.Flight `yaml:"flights"`
	Trains  []model.Train  `yaml:"trains"`
}

// Static is an in-memory Inventory.  Lists preserve document order.
type Static struct {
	doc     document
	hotels  map[string]int
	flights map[string]int
	trains  map[string]int
}

// Default returns the inventory built from the embedded seed document.
func Default() (*Static, error) { return Parse(seedYAML) }

// Load reads a catalog document from path.  An empty path yields Default.
func Load(path string) (*Static, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a Static inventory from a YAML document.  Every item needs a
// non-empty id that is unique within its kind and a non-negative price.
func Parse(data []byte) (*Static, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	s := &Static{
		doc:     doc,
		hotels:  make(map[string]int, len(doc.Hotels)),
		flights: make(map[string]int, len(doc.Flights)),
		trains:  make(map[string]int, len(doc.Trains)),
	}
	for i, h := range doc.Hotels {
		if err := index(s.hotels, "hotel", h.ID, h.Price, i); err != nil {
			return nil, err
		}
	}
	for i, f := range doc.Flights {
		if err := index(s.flights, "flight", f.ID, f.Price, i); err != nil {
			return nil, err
		}
	}
	for i, t := range doc.Trains {
		if err := index(s.trains, "train", t.ID, t.Price, i); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func index(m map[string]int, kind, id string, price int64, pos int) error {
	if id == "" {
		return fmt.Errorf("catalog: %s #%d has no id", kind, pos)
	}
	if price < 0 {
		return fmt.Errorf("catalog: %s %s has negative price", kind, id)
	}
	if _, dup := m[id]; dup {
		return fmt.Errorf("catalog: duplicate %s id %s", kind, id)
	}
	m[id] = pos
	return nil
}

// Lists hand out copies so callers cannot modify the catalog.

func (s *Static) ListHotels(context.Context) ([]model.Hotel, error) {
	return append([]model.Hotel{}, s.doc.Hotels...), nil
}

func (s *Static) ListFlights(context.Context) ([]model.Flight, error) {
	return append([]model.Flight{}, s.doc.Flights...), nil
}

func (s *Static) ListTrains(context.Context) ([]model.Train, error) {
	return append([]model.Train{}, s.doc.Trains...), nil
}

func (s *Static) FindHotel(_ context.Context, id string) (model.Hotel, error) {
	i, ok := s.hotels[id]
	if !ok {
		return model.Hotel{}, ErrNotFound
	}
	return s.doc.Hotels[i], nil
}

func (s *Static) FindFlight(_ context.Context, id string) (model.Flight, error) {
	i, ok := s.flights[id]
	if !ok {
		return model.Flight{}, ErrNotFound
	}
	return s.doc.Flights[i], nil
}

func (s *Static) FindTrain(_ context.Context, id string) (model.Train, error) {
	i, ok := s.trains[id]
	if !ok {
		return model.Train{}, ErrNotFound
	}
	return s.doc.Trains[i], nil
}
