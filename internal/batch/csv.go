// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/churnscope/churnscope/internal/churn"
)

// requiredColumns are the CSV headers a batch input must carry. Column
// order in the file is free; extra columns are ignored.
var requiredColumns = []string{
	churn.FeatureAge,
	churn.FeatureGender,
	churn.FeatureSubscriptionType,
	churn.FeatureMonthlyCharges,
	churn.FeatureTenureInMonths,
	churn.FeatureLoginFrequency,
	churn.FeatureLastLoginDays,
	churn.FeatureWatchTime,
	churn.FeaturePaymentFailures,
	churn.FeatureCustomerSupportCalls,
}

// ReadRecords parses batch input CSV into customer records. The first row
// must be a header naming every required column. A malformed cell fails the
// whole read with its line number so the caller can fix the file.
func ReadRecords(r io.Reader) ([]churn.CustomerRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("csv input is missing column %q", name)
		}
	}

	var records []churn.CustomerRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rec, err := parseRow(row, col)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, col map[string]int) (churn.CustomerRecord, error) {
	var rec churn.CustomerRecord
	var err error

	if rec.Age, err = intCell(row, col, churn.FeatureAge); err != nil {
		return rec, err
	}
	rec.Gender = row[col[churn.FeatureGender]]
	rec.SubscriptionType = row[col[churn.FeatureSubscriptionType]]
	if rec.MonthlyCharges, err = floatCell(row, col, churn.FeatureMonthlyCharges); err != nil {
		return rec, err
	}
	if rec.TenureInMonths, err = intCell(row, col, churn.FeatureTenureInMonths); err != nil {
		return rec, err
	}
	if rec.LoginFrequency, err = intCell(row, col, churn.FeatureLoginFrequency); err != nil {
		return rec, err
	}
	if rec.LastLoginDays, err = intCell(row, col, churn.FeatureLastLoginDays); err != nil {
		return rec, err
	}
	if rec.WatchTime, err = floatCell(row, col, churn.FeatureWatchTime); err != nil {
		return rec, err
	}
	if rec.PaymentFailures, err = intCell(row, col, churn.FeaturePaymentFailures); err != nil {
		return rec, err
	}
	if rec.CustomerSupportCalls, err = intCell(row, col, churn.FeatureCustomerSupportCalls); err != nil {
		return rec, err
	}
	return rec, nil
}

func intCell(row []string, col map[string]int, name string) (int, error) {
	v, err := strconv.Atoi(row[col[name]])
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return v, nil
}

func floatCell(row []string, col map[string]int, name string) (float64, error) {
	v, err := strconv.ParseFloat(row[col[name]], 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return v, nil
}

// WriteRows writes scored rows as CSV, the input columns followed by the
// prediction columns. Failed rows carry the error message in place of a
// prediction.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, requiredColumns...),
		"prediction", "churn_probability_pct", "risk_level", "error")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range rows {
		rec := rows[i].Record
		out := []string{
			strconv.Itoa(rec.Age),
			rec.Gender,
			rec.SubscriptionType,
			strconv.FormatFloat(rec.MonthlyCharges, 'f', -1, 64),
			strconv.Itoa(rec.TenureInMonths),
			strconv.Itoa(rec.LoginFrequency),
			strconv.Itoa(rec.LastLoginDays),
			strconv.FormatFloat(rec.WatchTime, 'f', -1, 64),
			strconv.Itoa(rec.PaymentFailures),
			strconv.Itoa(rec.CustomerSupportCalls),
		}
		if rows[i].Err != nil {
			out = append(out, "", "", "", rows[i].Error)
		} else {
			out = append(out,
				strconv.Itoa(rows[i].Prediction),
				strconv.FormatFloat(rows[i].ChurnProbabilityPct, 'f', 1, 64),
				string(rows[i].RiskTier),
				"")
		}
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
