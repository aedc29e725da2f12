// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug converts product names into URL keys.
package slug

import (
	"strconv"
	"strings"

	gslug "github.com/gosimple/slug"
)

// Generate creates a URL key from the given name. Non-ASCII letters are
// transliterated and everything that is not a letter, digit, dash or
// underscore becomes a single dash.
// Example: "Bruno Hoodie – Größe L" → "bruno-hoodie-grosse-l"
func Generate(s string) string {
	return gslug.MakeLang(strings.TrimSpace(s), "en")
}

// WithCounter appends a numeric disambiguation suffix to a URL key.
// A zero counter returns the key unchanged.
func WithCounter(key string, counter int) string {
	if counter <= 0 {
		return key
	}
	return key + "-" + strconv.Itoa(counter)
}
