// Package model defines the canonical transaction record shared by the parsers,
// the ledger and the aggregations.
package model
