// Package domain models species-occurrence records and the protected areas
// (Áreas Silvestres Protegidas, ASP) they are aggregated against.
//
// # Data Source
//
// Occurrence files are tab-delimited Darwin Core exports, typically a GBIF
// download. Each row is one observation of one organism. The columns read are:
//
//	family, species, eventDate, locality, decimalLongitude, decimalLatitude,
//	occurrenceID and/or gbifID
//
// Other columns are ignored. Rows without a species are dropped before any
// computation and reported as a count.
//
// # Darwin Core Conventions
//
// Coordinates:
//
//	decimalLongitude/decimalLatitude are WGS84 degrees (EPSG:4326), the same
//	reference system as the ASP polygons, so no reprojection happens.
//	Empty or unparseable values become NaN. Such records appear in tables and
//	temporal series but never in a map layer or a polygon match.
//
// Dates:
//
//	eventDate is ISO 8601. Full timestamps, plain dates, year-month and bare
//	years are accepted. Intervals ("2019-03-01/2019-03-05") resolve to their
//	start. Unparseable values are either reported and excluded from the time
//	series (skip policy) or fail the load (strict policy).
//
// Identifiers:
//
//	gbifID is preferred; occurrenceID is the fallback. Per-area counts only
//	include records that carry one of them.
//
// # Containment
//
// A record belongs to an area when its point lies strictly inside one of the
// area's polygons and outside every hole. Points on an edge do not match.
// Overlapping areas each count the record; [MatchSummary] reports how many
// records matched more than one area.
package domain
