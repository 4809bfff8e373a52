// Package shingidoc selects, resolves, and classifies document links
// scraped from Japanese government council (審議会) meeting pages. It scores
// heterogeneous PDF candidates by estimated relevance, defers the choice
// between "summary" and "full" variants of the same topic until a cheap
// page-count probe resolves the ambiguity, and classifies each finally
// selected document's layout to pick a downstream reading strategy.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., score/, pdfcpu/,
// gemini/, sqlite/).
package shingidoc
