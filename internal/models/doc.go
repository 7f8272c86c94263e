// Package models defines the core domain models for Scanalyze.
//
// # Models
//
//   - Receipt: a recorded purchase with currency, amount, and itemized lines
//   - ExpenseItem: one distinct line item on a receipt
//   - GstInfo: GST identification and amounts extracted from a receipt
//   - Settings: per-install preferences (monthly limit, usage type)
//
// Receipts are immutable once stored; downstream consumers (the split
// calculator, insights aggregation) read but never mutate them.
//
// # Design Principles
//
// 1. Money is always in minor units (currency.Amount), never float64
// 2. Category and usage type are closed enumerations validated at the boundary
// 3. Relationships use ID strings, not pointers, to avoid circular references
package models
