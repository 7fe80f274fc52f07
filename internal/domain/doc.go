// Package domain models NOAA significant-earthquake records for MCI planning.
//
// # Data Source
//
// Raw rows come from the NOAA NCEI Global Significant Earthquake Database
// (DOI: 10.7289/V5TD9V7K), distributed as a single CSV covering events since
// 1600. Column headers vary slightly between exports; the cleaner trims them
// and applies a rename map before rows reach this package.
//
// # Cleaning Conventions
//
// Dates:
//
//	The source encodes dates as separate Year/Month/Date columns. Month and
//	day are frequently blank for historical events and default to 1. A row
//	whose components do not form a real calendar date is dropped.
//
// Numeric fields:
//
//	Year, latitude, longitude, magnitude, and focal depth are required; a row
//	missing any of them (or carrying an unparsable value) is dropped. Deaths
//	and injuries default to 0 when blank.
//
// Tsunami flag:
//
//	The tsunami column name differs between exports ("Tsunami", "Flag
//	Tsunami", ...) and its values mix booleans, Y/N letters, and numerics.
//	Truthy spellings (y, yes, true, t, 1) normalize to 1; everything else,
//	including blank and "nan", normalizes to 0.
//
// Severity classification:
//
//	Derived from total casualties (deaths + injuries), not magnitude, because
//	the dashboard's planning lens is medical surge capacity:
//
//	  >= 1000 severe | >= 100 moderate | otherwise minor
//
// # ID Generation
//
// Rows keep the NOAA Id when present. Rows without one get a deterministic
// "eq-" prefixed SHA-256 hash of year|lat|lon|magnitude|date, so rerunning
// the cleaner over the same input yields identical IDs. See [GenerateID].
package domain
