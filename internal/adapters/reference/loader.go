package reference

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
)

//go:embed data/*.json
var embedded embed.FS

const (
	componentsFile = "components.json"
	shipsFile      = "ships.json"
)

// componentsDocument is the on-disk layout of components.json
type componentsDocument struct {
	Version    string         `json:"version" validate:"required"`
	Components []componentDTO `json:"components" validate:"required,min=1,dive"`
}

type componentDTO struct {
	ID             string  `json:"id" validate:"required,len=2,alphanum"`
	Group          string  `json:"group" validate:"required"`
	Class          int     `json:"class" validate:"min=0,max=8"`
	Rating         string  `json:"rating" validate:"required,len=1"`
	Name           string  `json:"name" validate:"required"`
	Mass           float64 `json:"mass" validate:"min=0"`
	Power          float64 `json:"power" validate:"min=0"`
	Cost           int64   `json:"cost" validate:"min=0"`
	MaxMass        float64 `json:"maxMass,omitempty" validate:"min=0"`
	OptimalMass    float64 `json:"optimalMass,omitempty" validate:"min=0"`
	MaxFuelPerJump float64 `json:"maxFuelPerJump,omitempty" validate:"min=0"`
	Capacity       float64 `json:"capacity,omitempty" validate:"min=0"`
	ShieldStrength float64 `json:"shieldStrength,omitempty" validate:"min=0"`
}

type shipsDocument struct {
	Ships []shipDTO `json:"ships" validate:"required,min=1,dive"`
}

type shipDTO struct {
	ID           string        `json:"id" validate:"required"`
	Name         string        `json:"name" validate:"required"`
	Manufacturer string        `json:"manufacturer"`
	HullMass     float64       `json:"hullMass" validate:"gt=0"`
	HullCost     int64         `json:"hullCost" validate:"min=0"`
	MaxMass      float64       `json:"maxMass" validate:"gtfield=HullMass"`
	Speed        int           `json:"speed"`
	Boost        int           `json:"boost"`
	Armour       int           `json:"armour"`
	Shields      int           `json:"shields"`
	Bulkheads    []bulkheadDTO `json:"bulkheads" validate:"required,min=1,max=100,dive"`
	Slots        slotsDTO      `json:"slots"`
	Defaults     defaultsDTO   `json:"defaults"`
}

type bulkheadDTO struct {
	Name string  `json:"name" validate:"required"`
	Mass float64 `json:"mass" validate:"min=0"`
	Cost int64   `json:"cost" validate:"min=0"`
}

type slotsDTO struct {
	Common     []int `json:"common" validate:"len=7,dive,min=1,max=8"`
	Hardpoints []int `json:"hardpoints" validate:"dive,min=0,max=4"`
	Internal   []int `json:"internal" validate:"dive,min=1,max=8"`
}

type defaultsDTO struct {
	Bulkhead   int      `json:"bulkhead" validate:"min=0"`
	Common     []string `json:"common" validate:"len=7,dive,required"`
	Hardpoints []string `json:"hardpoints"`
	Internal   []string `json:"internal"`
}

// Load builds the catalog from the embedded reference data
func Load() (*catalog.Catalog, error) {
	data, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded reference data: %w", err)
	}
	return LoadFS(data)
}

// LoadDir builds the catalog from components.json and ships.json in dir
func LoadDir(dir string) (*catalog.Catalog, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS builds the catalog from components.json and ships.json in fsys
func LoadFS(fsys fs.FS) (*catalog.Catalog, error) {
	v := validator.New()

	var components componentsDocument
	if err := readJSON(fsys, componentsFile, &components); err != nil {
		return nil, err
	}
	if err := v.Struct(&components); err != nil {
		return nil, formatValidationError(componentsFile, err)
	}

	var ships shipsDocument
	if err := readJSON(fsys, shipsFile, &ships); err != nil {
		return nil, err
	}
	if err := v.Struct(&ships); err != nil {
		return nil, formatValidationError(shipsFile, err)
	}

	records := make([]catalog.ComponentRecord, 0, len(components.Components))
	for _, c := range components.Components {
		records = append(records, c.toRecord())
	}

	templates := make([]catalog.ShipTemplate, 0, len(ships.Ships))
	for _, s := range ships.Ships {
		templates = append(templates, s.toTemplate())
	}

	cat, err := catalog.NewCatalog(components.Version, records, templates)
	if err != nil {
		return nil, fmt.Errorf("invalid reference data: %w", err)
	}
	return cat, nil
}

func readJSON(fsys fs.FS, name string, target interface{}) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func formatValidationError(file string, err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%s: %w", file, err)
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')",
			e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s validation failed:\n  %s", file, strings.Join(messages, "\n  "))
}

func (c componentDTO) toRecord() catalog.ComponentRecord {
	return catalog.ComponentRecord{
		ID:             c.ID,
		Group:          catalog.Group(c.Group),
		Class:          c.Class,
		Rating:         c.Rating,
		Name:           c.Name,
		Mass:           c.Mass,
		Power:          c.Power,
		Cost:           c.Cost,
		MaxMass:        c.MaxMass,
		OptimalMass:    c.OptimalMass,
		MaxFuelPerJump: c.MaxFuelPerJump,
		Capacity:       c.Capacity,
		ShieldStrength: c.ShieldStrength,
	}
}

// toTemplate converts the DTO. Bulkheads get ids "00", "01", ... in order.
func (s shipDTO) toTemplate() catalog.ShipTemplate {
	t := catalog.ShipTemplate{
		ID:           s.ID,
		Name:         s.Name,
		Manufacturer: s.Manufacturer,
		HullMass:     s.HullMass,
		HullCost:     s.HullCost,
		MaxMass:      s.MaxMass,
		Speed:        s.Speed,
		Boost:        s.Boost,
		Armour:       s.Armour,
		Shields:      s.Shields,
		Hardpoints:   append([]int(nil), s.Slots.Hardpoints...),
		Internal:     append([]int(nil), s.Slots.Internal...),
		Defaults: catalog.Loadout{
			Bulkhead:   s.Defaults.Bulkhead,
			Hardpoints: append([]string(nil), s.Defaults.Hardpoints...),
			Internal:   append([]string(nil), s.Defaults.Internal...),
		},
	}
	copy(t.Common[:], s.Slots.Common)
	copy(t.Defaults.Common[:], s.Defaults.Common)

	for i, b := range s.Bulkheads {
		t.Bulkheads = append(t.Bulkheads, &catalog.ComponentRecord{
			ID:     fmt.Sprintf("%02d", i),
			Group:  catalog.GroupBulkheads,
			Class:  1,
			Rating: "I",
			Name:   b.Name,
			Mass:   b.Mass,
			Cost:   b.Cost,
		})
	}
	return t
}
