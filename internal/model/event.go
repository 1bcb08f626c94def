// Package model defines the core data types shared across the pipeline.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// RawEvent is a single funding record exactly as it appeared in the
// source file. Every field is untyped text; nothing is validated here.
type RawEvent struct {
	EntityName string
	Industry   string
	City       string
	State      string
	Amount     string
	RoundLabel string
	Investors  string
	Date       string
}

// CleanedEvent is the fully typed form of a RawEvent after normalization
// and resolution. AmountUSD is always >= 0 and EntityName is non-empty;
// rows that cannot satisfy that are dropped during resolution.
type CleanedEvent struct {
	Date       *time.Time
	EntityName string
	Industry   string
	City       string
	State      string
	RoundLabel string
	Investors  []string
	AmountUSD  float64
	IsOutlier  bool
}

// Hash returns the deduplication key for the event. Two events with the
// same entity, date and USD amount are considered the same funding round.
func (e *CleanedEvent) Hash() string {
	date := ""
	if e.Date != nil {
		date = e.Date.Format("2006-01-02")
	}
	data := fmt.Sprintf("%s:%s:%.2f", e.EntityName, date, e.AmountUSD)
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)
}

// Year returns the calendar year of the event date.
// The second return is false when the date is unknown.
func (e *CleanedEvent) Year() (int, bool) {
	if e.Date == nil {
		return 0, false
	}
	return e.Date.Year(), true
}

// Month returns the calendar month (1-12) of the event date.
func (e *CleanedEvent) Month() (int, bool) {
	if e.Date == nil {
		return 0, false
	}
	return int(e.Date.Month()), true
}

// Quarter returns the calendar quarter (1-4) of the event date.
func (e *CleanedEvent) Quarter() (int, bool) {
	if e.Date == nil {
		return 0, false
	}
	return (int(e.Date.Month())-1)/3 + 1, true
}

// MonthName returns the English month name of the event date.
func (e *CleanedEvent) MonthName() (string, bool) {
	if e.Date == nil {
		return "", false
	}
	return e.Date.Month().String(), true
}
