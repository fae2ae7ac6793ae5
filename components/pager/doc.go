// Package pager provides a drop-in pagination component: a page-link strip
// with prev/next markers, computed from a total item count and the current
// page.
//
// The component registers under the configured name (default "pager") and
// accepts total, page, per_page, and base_url arguments at the call site.
// The first and last slots let callers replace the prev/next markers.
package pager
