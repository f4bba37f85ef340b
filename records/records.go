// Package records keeps lifetime fighter tallies across matches.
package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/rippto-brawl/components"
	"github.com/quasilyte/gdata"
)

const itemKey = "records"

// ErrNoStore is returned when a Book has nowhere to save.
var ErrNoStore = errors.New("records: no store")

// Store is the subset of gdata.Manager the book needs.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Record is one fighter's lifetime totals.
type Record struct {
	Name        string  `json:"name"`
	Matches     int     `json:"matches"`
	Wins        int     `json:"wins"`
	KOs         int     `json:"kos"`
	Falls       int     `json:"falls"`
	DamageDealt float64 `json:"damageDealt"`
	DamageTaken float64 `json:"damageTaken"`
	Hits        int     `json:"hits"`
	BestCombo   int     `json:"bestCombo"`
	Serums      int     `json:"serums"`
}

// Book is the set of records keyed by fighter name.
type Book struct {
	store   Store
	records map[string]*Record
}

// Open loads the book from the per-user gdata storage for app.
func Open(app string) (*Book, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("records: open %s: %w", app, err)
	}
	return Load(m)
}

// Load reads the book from store. A missing item is an empty book.
func Load(store Store) (*Book, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	b := &Book{store: store, records: map[string]*Record{}}
	data, err := store.LoadItem(itemKey)
	if err != nil {
		return nil, fmt.Errorf("records: load: %w", err)
	}
	if len(data) == 0 {
		return b, nil
	}
	var list []Record
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("records: parse: %w", err)
	}
	for i := range list {
		r := list[i]
		b.records[r.Name] = &r
	}
	return b, nil
}

// Add merges one finished match. leader is the winning slot, negative
// for a tie.
func (b *Book) Add(scores []components.Score, leader int) {
	for _, s := range scores {
		if s.Name == "" {
			continue
		}
		r, ok := b.records[s.Name]
		if !ok {
			r = &Record{Name: s.Name}
			b.records[s.Name] = r
		}
		r.Matches++
		if s.Slot == leader {
			r.Wins++
		}
		r.KOs += s.KOs
		r.Falls += s.Falls
		r.DamageDealt += s.DamageDealt
		r.DamageTaken += s.DamageTaken
		r.Hits += s.Hits
		r.Serums += s.Serums
		if s.BestCombo > r.BestCombo {
			r.BestCombo = s.BestCombo
		}
	}
}

// Get returns a copy of the record for name.
func (b *Book) Get(name string) (Record, bool) {
	r, ok := b.records[name]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// All returns every record, most wins first.
func (b *Book) All() []Record {
	out := make([]Record, 0, len(b.records))
	for _, r := range b.records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].KOs != out[j].KOs {
			return out[i].KOs > out[j].KOs
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (b *Book) Save() error {
	if b.store == nil {
		return ErrNoStore
	}
	data, err := json.Marshal(b.All())
	if err != nil {
		return fmt.Errorf("records: encode: %w", err)
	}
	if err := b.store.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("records: save: %w", err)
	}
	return nil
}
