// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rewrite

import (
	"testing"

	"catalogrewrite/internal/models"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(memConfig{}, 1, nil)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	want := Settings{
		UseCategories:                   false,
		URLSuffix:                       ".html",
		SaveRewritesHistory:             true,
		GenerateCategoryProductRewrites: true,
		CleanUpURLRewrites:              false,
	}
	if s != want {
		t.Errorf("defaults = %+v, want %+v", s, want)
	}
}

func TestLoadSettingsStoredAndOverrides(t *testing.T) {
	cfg := memConfig{
		models.ConfigProductUseCategories: "1",
		models.ConfigProductURLSuffix:     ".htm",
		models.ConfigSaveRewritesHistory:  "0",
		models.ConfigCleanUpURLRewrites:   "0",
	}
	overrides := ConfigOverrides{
		models.ConfigCleanUpURLRewrites: "true",
		models.ConfigProductURLSuffix:   "",
	}

	s, err := LoadSettings(cfg, 1, overrides)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}

	if !s.UseCategories {
		t.Error("UseCategories should come from the store")
	}
	if s.SaveRewritesHistory {
		t.Error("SaveRewritesHistory should be off")
	}
	if !s.CleanUpURLRewrites {
		t.Error("override should enable clean-up")
	}
	if s.URLSuffix != "" {
		t.Errorf("override should empty the suffix, got %q", s.URLSuffix)
	}
}

func TestLoadSettingsInvalidFlag(t *testing.T) {
	_, err := LoadSettings(memConfig{models.ConfigSaveRewritesHistory: "maybe"}, 1, nil)
	if err == nil {
		t.Error("expected error for non-boolean flag")
	}
}

func TestLoadSettingsPerStore(t *testing.T) {
	cfg := memConfig{
		models.ConfigProductURLSuffix:                 ".html",
		storeKey(models.ConfigProductURLSuffix, 2):    ".htm",
		storeKey(models.ConfigSaveRewritesHistory, 2): "0",
	}

	tests := []struct {
		storeID     int64
		wantSuffix  string
		wantHistory bool
	}{
		{1, ".html", true},
		{2, ".htm", false},
	}
	for _, tt := range tests {
		s, err := LoadSettings(cfg, tt.storeID, nil)
		if err != nil {
			t.Fatalf("store %d: LoadSettings: %v", tt.storeID, err)
		}
		if s.URLSuffix != tt.wantSuffix {
			t.Errorf("store %d: suffix = %q, want %q", tt.storeID, s.URLSuffix, tt.wantSuffix)
		}
		if s.SaveRewritesHistory != tt.wantHistory {
			t.Errorf("store %d: history = %v, want %v", tt.storeID, s.SaveRewritesHistory, tt.wantHistory)
		}
	}
}
