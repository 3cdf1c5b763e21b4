// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package preprocess

import "github.com/churnscope/churnscope/internal/churn"

// Encode converts a raw customer record into the encoded, scaled feature
// vector the classifier expects. Pure function of its inputs: no side
// effects, no retained state.
//
// Features are resolved by name against featureOrder. A name covered by an
// encoder is treated as categorical; anything else must be one of the
// record's numeric attributes.
func Encode(rec churn.CustomerRecord, encoders Encoders, scaler *StandardScaler, featureOrder []string) ([]float64, error) {
	raw := make([]float64, len(featureOrder))

	for i, name := range featureOrder {
		if enc, ok := encoders[name]; ok {
			label, ok := rec.CategoricalValue(name)
			if !ok {
				return nil, churn.NewValidationError(name, "", "is not a categorical attribute of the record")
			}
			code, err := enc.Index(label)
			if err != nil {
				return nil, err
			}
			raw[i] = float64(code)
			continue
		}

		v, ok := rec.NumericValue(name)
		if !ok {
			return nil, churn.NewValidationError(name, "", "is missing from the record")
		}
		raw[i] = v
	}

	if scaler == nil {
		return raw, nil
	}
	return scaler.Transform(raw)
}
