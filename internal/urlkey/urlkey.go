// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package urlkey makes URL keys unique within a store scope.
//
// Probing starts with the bare key and continues with key-1, key-2, ...
// until a probe misses. Every hit is classified as owned by the entity
// being processed or by another entity. An entity keeps its own highest
// numbered key; otherwise the key is numbered one past the highest key
// taken by other entities. When both kinds of hits exist only the owned
// ones count, even if a lower number would be free.
package urlkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalogrewrite/internal/models"
	"catalogrewrite/internal/slug"
)

// DefaultMaxProbes bounds the number of lookups for a single key.
const DefaultMaxProbes = 1000

// ErrTooManyCollisions is returned when no free key was found within the
// probe limit.
var ErrTooManyCollisions = errors.New("too many url key collisions")

// AttributeFinder looks up varchar attribute values.
type AttributeFinder interface {
	FindByCodeTypeStoreAndValue(code string, entityTypeID, storeID int64, value string) (*models.VarcharAttribute, error)
	FindByEntity(code string, entityTypeID, storeID, entityID int64) (*models.VarcharAttribute, error)
}

// Resolver disambiguates URL keys against the keys already assigned.
type Resolver struct {
	attrs     AttributeFinder
	maxProbes int
}

// NewResolver returns a Resolver reading assigned keys from attrs.
func NewResolver(attrs AttributeFinder) *Resolver {
	return &Resolver{attrs: attrs, maxProbes: DefaultMaxProbes}
}

// MakeUnique returns the key entityID should use in storeID for the
// candidate key base.
func (r *Resolver) MakeUnique(base string, entityTypeID, storeID, entityID int64) (string, error) {
	var matching, notMatching []int

	value := base
	for counter := 0; ; counter++ {
		if counter >= r.maxProbes {
			return "", fmt.Errorf("make url key %q unique: %w", base, ErrTooManyCollisions)
		}

		attr, err := r.attrs.FindByCodeTypeStoreAndValue(models.AttributeCodeURLKey, entityTypeID, storeID, value)
		if err != nil {
			return "", fmt.Errorf("make url key %q unique: %w", base, err)
		}
		if attr == nil {
			break
		}

		if attr.EntityID == entityID && attr.StoreID == storeID {
			matching = append(matching, counter)
		} else {
			notMatching = append(notMatching, counter)
		}
		value = slug.WithCounter(base, counter+1)
	}

	// Counters are collected in ascending order, so the last is the highest.
	switch {
	case len(matching) > 0:
		return slug.WithCounter(base, matching[len(matching)-1]), nil
	case len(notMatching) > 0:
		return slug.WithCounter(base, notMatching[len(notMatching)-1]+1), nil
	}

	// No probe hit. An entity that already owns a numbered variant of the
	// key keeps it.
	own, err := r.attrs.FindByEntity(models.AttributeCodeURLKey, entityTypeID, storeID, entityID)
	if err != nil {
		return "", fmt.Errorf("load current url key: %w", err)
	}
	if own != nil {
		if n, ok := counterOf(own.Value, base); ok {
			return slug.WithCounter(base, n), nil
		}
	}
	return base, nil
}

// counterOf returns N when key is base-N with N > 0.
func counterOf(key, base string) (int, bool) {
	suffix, ok := strings.CutPrefix(key, base+"-")
	if !ok || suffix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n <= 0 || strconv.Itoa(n) != suffix {
		return 0, false
	}
	return n, true
}
