// Package etfsheet derives normalized financial metrics from scraped ETF
// profile documents and lays them out as spreadsheet-ready CSV exports.
//
// The core functionalities include:
//   - Return Analytics: compounding a sparse year/month monthly-return grid
//     into an annualized growth rate (CAGR), per-calendar-year returns, and
//     drawdown-style statistics, with a total-return fallback estimator when
//     no grid is available.
//   - Instrument Normalization: merging raw fund facts (fees, currency,
//     domicile, fund size) and analytics outputs into one immutable record
//     per instrument, keyed by ISIN.
//   - Projection Sheet: a formula-bearing grid modeling fee-adjusted versus
//     fee-free capital growth over a configurable horizon, emitted as CSV
//     for a downstream spreadsheet application to evaluate.
//   - Overview Table: a flat, one-row-per-instrument export of all
//     normalized fields in a French-locale CSV dialect.
//
// This package serves as the foundational logic for the `efs` command-line
// tool. Ingestion of the raw documents lives in the justetf subpackage.
package etfsheet
