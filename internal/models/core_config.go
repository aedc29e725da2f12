// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Catalog configuration paths read from core_config_data.
const (
	ConfigProductUseCategories            = "catalog/seo/product_use_categories"
	ConfigProductURLSuffix                = "catalog/seo/product_url_suffix"
	ConfigSaveRewritesHistory             = "catalog/seo/save_rewrites_history"
	ConfigGenerateCategoryProductRewrites = "catalog/seo/generate_category_product_rewrites"
	ConfigCleanUpURLRewrites              = "import/clean_up_url_rewrites"
)

// Configuration scopes, from the most general to the most specific.
const (
	ScopeDefault  = "default"
	ScopeWebsites = "websites"
	ScopeStores   = "stores"
)

// CoreConfig is one core_config_data entry.
type CoreConfig struct {
	Scope   string `json:"scope"`
	ScopeID int64  `json:"scope_id"`
	Path    string `json:"path"`
	Value   string `json:"value"`
}
