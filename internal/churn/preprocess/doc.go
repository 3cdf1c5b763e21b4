// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

// Package preprocess converts raw customer records into the encoded, scaled
// feature vectors the classifier was fit on.
//
// Encoding is a two-step transform using parameters captured at training
// time and loaded verbatim from the artifact bundle:
//
//  1. Each categorical attribute is replaced by the integer index the
//     encoder assigned during fitting. The mapping is an explicit bijection
//     serialized as an ordered class list, never re-derived from map
//     iteration order.
//  2. Every feature is standardized by subtracting a per-feature mean and
//     dividing by a per-feature standard deviation.
//
// The vector layout follows the artifact bundle's feature-name list exactly;
// values are picked out of the record by name, never by position. A
// categorical value the encoder never saw produces a ValidationError rather
// than a default index.
package preprocess
