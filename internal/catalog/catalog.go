// Package catalog defines the purchasable jobs and their leveling curve.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"datathieves/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// Curve controls how a job's level evolves on upgrade. Growth values are
// percentages applied to the previous level.
type Curve struct {
	CostGrowthPct     uint64 `yaml:"cost_growth_pct" validate:"gt=100"`
	EarnGrowthPct     uint64 `yaml:"earn_growth_pct" validate:"gt=100"`
	DurationShrinkPct uint64 `yaml:"duration_shrink_pct" validate:"lt=100"`
	MinDurationSecs   uint64 `yaml:"min_duration_secs" validate:"gte=1"`
}

// Template is the level 1 definition of a job.
type Template struct {
	ID           string `yaml:"id" validate:"required"`
	Name         string `yaml:"name" validate:"required"`
	Cost         uint64 `yaml:"cost" validate:"gt=0"`
	Earn         uint64 `yaml:"earn" validate:"gt=0"`
	DurationSecs uint64 `yaml:"duration_secs" validate:"gt=0"`
}

type Catalog struct {
	Curve     Curve      `yaml:"curve"`
	Templates []Template `yaml:"jobs" validate:"required,min=1,unique=ID,dive"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{Op: "catalog.read", Kind: domain.KindNotFound, Path: path, Err: err}
	}
	c, err := Parse(data)
	if err != nil {
		return nil, &domain.OpError{Op: "catalog.parse", Kind: domain.KindInvalid, Path: path, Err: err}
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	title := cases.Title(language.English)
	for i := range c.Templates {
		c.Templates[i].Name = title.String(c.Templates[i].Name)
	}
	return &c, nil
}

// Jobs returns every job at level 1, in catalog order.
func (c *Catalog) Jobs() []domain.GameJob {
	jobs := make([]domain.GameJob, 0, len(c.Templates))
	for _, t := range c.Templates {
		jobs = append(jobs, domain.GameJob{
			ID:   t.ID,
			Name: t.Name,
			Level: domain.Level{
				Level:    1,
				Cost:     domain.Gelds(t.Cost),
				Earn:     domain.Gelds(t.Earn),
				Duration: time.Duration(t.DurationSecs) * time.Second,
			},
		})
	}
	return jobs
}

// Next returns job advanced by one level. Cost and earn always strictly
// increase; duration never drops below the curve minimum.
func (c *Catalog) Next(job domain.GameJob) domain.GameJob {
	lvl := job.Level

	cost := lvl.Cost.Mul(c.Curve.CostGrowthPct) / 100
	if cost <= lvl.Cost {
		cost = lvl.Cost.Add(1)
	}
	earn := lvl.Earn.Mul(c.Curve.EarnGrowthPct) / 100
	if earn <= lvl.Earn {
		earn = lvl.Earn.Add(1)
	}

	minDur := time.Duration(c.Curve.MinDurationSecs) * time.Second
	dur := lvl.Duration * time.Duration(100-c.Curve.DurationShrinkPct) / 100
	dur = dur.Truncate(time.Millisecond)
	if dur < minDur {
		dur = minDur
	}
	if dur > lvl.Duration {
		dur = lvl.Duration
	}

	job.Level = domain.Level{
		Level:    lvl.Level + 1,
		Cost:     cost,
		Earn:     earn,
		Duration: dur,
	}
	return job
}
