// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package config loads and validates application configuration.
//
// Configuration is layered through koanf with clear precedence: built-in
// defaults, then an optional YAML config file, then CHURNSCOPE_ prefixed
// environment variables. Load returns a fully validated Config; invalid
// settings fail startup with an actionable message rather than surfacing
// later at request time.
package config
