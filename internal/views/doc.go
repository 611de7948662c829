// Package views computes filtered, sorted and aggregated projections over
// record slices. Every function is pure: inputs are never modified and no
// storage is touched.
package views
