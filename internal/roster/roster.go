// Package roster loads the species list used by real-pokemon battles from a
// pokedex JSON document on disk or over HTTP.
package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Garsondee/grid-battle/internal/fighters"
	"github.com/Garsondee/grid-battle/internal/logs"
)

// ErrEmpty is returned when no usable species remain after filtering.
var ErrEmpty = errors.New("roster has no usable entries")

const fetchTimeout = 30 * time.Second

type entry struct {
	Name struct {
		English string `json:"english"`
	} `json:"name"`
	Types []string `json:"type"`
	Base  *struct {
		HP        int `json:"HP"`
		Attack    int `json:"Attack"`
		Defense   int `json:"Defense"`
		SpAttack  int `json:"Sp. Attack"`
		SpDefense int `json:"Sp. Defense"`
		Speed     int `json:"Speed"`
	} `json:"base"`
}

// Load reads source, which is either an http(s) URL or a file path.
func Load(ctx context.Context, source string) ([]fighters.RealPokemon, error) {
	var (
		body io.ReadCloser
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(ctx, source)
	} else {
		body, err = os.Open(source)
	}
	if err != nil {
		return nil, fmt.Errorf("open roster %s: %w", source, err)
	}
	defer body.Close()

	roster, skipped, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", source, err)
	}
	logs.Info("roster loaded",
		zap.String("source", source),
		zap.Int("species", len(roster)),
		zap.Int("skipped", skipped))
	return roster, nil
}

func fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return cancelOnClose{ReadCloser: resp.Body, cancel: cancel}, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}

// Decode parses a pokedex array. Entries without base stats, without types or
// with a type the chart does not know are skipped and counted.
func Decode(r io.Reader) ([]fighters.RealPokemon, int, error) {
	var entries []entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, 0, fmt.Errorf("decode pokedex: %w", err)
	}

	roster := make([]fighters.RealPokemon, 0, len(entries))
	skipped := 0
	for _, e := range entries {
		p, ok := convert(e)
		if !ok {
			skipped++
			continue
		}
		roster = append(roster, p)
	}
	if len(roster) == 0 {
		return nil, skipped, ErrEmpty
	}
	return roster, skipped, nil
}

func convert(e entry) (fighters.RealPokemon, bool) {
	if e.Base == nil || len(e.Types) == 0 {
		return fighters.RealPokemon{}, false
	}
	types := make([]fighters.PokemonType, 0, 2)
	for _, name := range e.Types[:min(2, len(e.Types))] {
		t, err := fighters.ParsePokemonType(name)
		if err != nil {
			return fighters.RealPokemon{}, false
		}
		types = append(types, t)
	}
	p, err := fighters.NewRealPokemon(e.Name.English, types, fighters.BaseStats{
		HP:        e.Base.HP,
		Attack:    e.Base.Attack,
		Defense:   e.Base.Defense,
		SpAttack:  e.Base.SpAttack,
		SpDefense: e.Base.SpDefense,
		Speed:     e.Base.Speed,
	})
	if err != nil {
		return fighters.RealPokemon{}, false
	}
	return p, true
}
