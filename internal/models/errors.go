// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

// ErrDuplicate is returned by persistence adapters when a write violates a
// unique key, e.g. two rewrites sharing (request_path, store_id).
var ErrDuplicate = errors.New("duplicate key")
