// Package catalog maintains the ordered category registry, subcategory
// rules, and routing table used to place classified files. Categories map
// to numbered destination folders (01_Documents, 02_Screenshots, ...),
// with Unsorted pinned at 99.
package catalog
