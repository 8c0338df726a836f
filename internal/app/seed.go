package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ganot/playbook/internal/domain/league"
	"github.com/ganot/playbook/internal/domain/season"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout accepted by Seed.
type SeedFile struct {
	Leagues []SeedLeague `yaml:"leagues"`
}

// SeedLeague is one league with its seasons.
type SeedLeague struct {
	Name         string       `yaml:"name"`
	Organization string       `yaml:"organization"`
	Sport        string       `yaml:"sport"`
	Website      string       `yaml:"website"`
	Seasons      []SeedSeason `yaml:"seasons"`
}

// SeedSeason is one season; dates are YYYY-MM-DD and may be omitted.
type SeedSeason struct {
	Name            string `yaml:"name"`
	SignupStart     string `yaml:"signup_start"`
	SignupEnd       string `yaml:"signup_end"`
	SeasonStart     string `yaml:"season_start"`
	SeasonEnd       string `yaml:"season_end"`
	AgeGroup        string `yaml:"age_group"`
	DetailsURL      string `yaml:"details_url"`
	RegistrationURL string `yaml:"registration_url"`
	Hidden          bool   `yaml:"hidden"`
}

// SeedResult counts what Seed created and skipped.
type SeedResult struct {
	LeaguesCreated int
	LeaguesSkipped int
	SeasonsCreated int
	SeasonsSkipped int
}

// LoadSeed decodes a seed file.
func LoadSeed(r io.Reader) (*SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding seed file: %w", err)
	}
	return &f, nil
}

// Seed creates the leagues and seasons in f. Leagues are matched by name
// and sport and seasons by name within their league, so running the same
// file twice creates nothing new.
func (a *App) Seed(ctx context.Context, f *SeedFile) (SeedResult, error) {
	var res SeedResult

	existing, err := a.Leagues.List(ctx, league.ListOptions{})
	if err != nil {
		return res, fmt.Errorf("listing leagues: %w", err)
	}

	for _, sl := range f.Leagues {
		l := findLeague(existing, sl.Name, sl.Sport)
		if l == nil {
			l, err = a.Leagues.Create(ctx, league.CreateRequest{
				Name:         sl.Name,
				Organization: sl.Organization,
				Sport:        sl.Sport,
				Website:      sl.Website,
				Source:       league.SourceSeed,
			})
			if err != nil {
				return res, fmt.Errorf("creating league %q: %w", sl.Name, err)
			}
			existing = append(existing, *l)
			res.LeaguesCreated++
		} else {
			res.LeaguesSkipped++
		}

		seasons, err := a.Seasons.List(ctx, season.ListOptions{LeagueID: l.ID, IncludeHidden: true})
		if err != nil {
			return res, fmt.Errorf("listing seasons for %q: %w", sl.Name, err)
		}

		for _, ss := range sl.Seasons {
			if hasSeason(seasons, ss.Name) {
				res.SeasonsSkipped++
				continue
			}
			visible := !ss.Hidden
			_, err := a.Seasons.Create(ctx, season.CreateRequest{
				LeagueID:        l.ID,
				Name:            ss.Name,
				Sport:           sl.Sport,
				SignupStart:     ss.SignupStart,
				SignupEnd:       ss.SignupEnd,
				SeasonStart:     ss.SeasonStart,
				SeasonEnd:       ss.SeasonEnd,
				AgeGroup:        ss.AgeGroup,
				DetailsURL:      ss.DetailsURL,
				RegistrationURL: ss.RegistrationURL,
				Visible:         &visible,
			})
			if err != nil {
				return res, fmt.Errorf("creating season %q of %q: %w", ss.Name, sl.Name, err)
			}
			res.SeasonsCreated++
		}
	}

	a.logger.Info("seed applied",
		"leagues_created", res.LeaguesCreated,
		"seasons_created", res.SeasonsCreated,
	)
	return res, nil
}

func findLeague(leagues []league.League, name, sport string) *league.League {
	for i := range leagues {
		l := &leagues[i]
		if strings.EqualFold(l.Name, strings.TrimSpace(name)) && strings.EqualFold(l.Sport, strings.TrimSpace(sport)) {
			return l
		}
	}
	return nil
}

func hasSeason(seasons []season.Season, name string) bool {
	for _, s := range seasons {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
