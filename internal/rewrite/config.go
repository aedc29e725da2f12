// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"fmt"

	"github.com/spf13/cast"

	"catalogrewrite/internal/models"
)

// ConfigStore reads catalog configuration values as seen from a store view.
type ConfigStore interface {
	Get(key string, storeID int64, fallback string) (string, error)
}

// ConfigOverrides holds run parameters that take precedence over the
// stored catalog configuration, keyed by configuration path.
type ConfigOverrides map[string]string

// Settings is the catalog configuration of one candidate-build cycle.
type Settings struct {
	UseCategories                   bool
	URLSuffix                       string
	SaveRewritesHistory             bool
	GenerateCategoryProductRewrites bool
	CleanUpURLRewrites              bool
}

// configDefaults are used when neither an override nor a stored value exists.
var configDefaults = map[string]string{
	models.ConfigProductUseCategories:            "0",
	models.ConfigProductURLSuffix:                ".html",
	models.ConfigSaveRewritesHistory:             "1",
	models.ConfigGenerateCategoryProductRewrites: "1",
	models.ConfigCleanUpURLRewrites:              "0",
}

// LoadSettings reads the current settings of a store view. It is called for
// every candidate-build cycle since the stored values may change between
// runs and differ between store views.
func LoadSettings(cfg ConfigStore, storeID int64, overrides ConfigOverrides) (Settings, error) {
	get := func(key string) (string, error) {
		if v, ok := overrides[key]; ok {
			return v, nil
		}
		return cfg.Get(key, storeID, configDefaults[key])
	}
	flag := func(key string) (bool, error) {
		v, err := get(key)
		if err != nil {
			return false, err
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			return false, fmt.Errorf("config %s: %w", key, err)
		}
		return b, nil
	}

	var s Settings
	var err error
	if s.UseCategories, err = flag(models.ConfigProductUseCategories); err != nil {
		return s, err
	}
	if s.URLSuffix, err = get(models.ConfigProductURLSuffix); err != nil {
		return s, err
	}
	if s.SaveRewritesHistory, err = flag(models.ConfigSaveRewritesHistory); err != nil {
		return s, err
	}
	if s.GenerateCategoryProductRewrites, err = flag(models.ConfigGenerateCategoryProductRewrites); err != nil {
		return s, err
	}
	if s.CleanUpURLRewrites, err = flag(models.ConfigCleanUpURLRewrites); err != nil {
		return s, err
	}
	return s, nil
}
