// Package types provides type definitions for structured data used throughout the resume ranker.
package types

// Resume is one candidate document after text extraction.
// ID is the original filename and stays stable through ranking.
type Resume struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
