// Package retrofit injects the shared header and sidebar mount point into
// already generated lesson pages.
//
// The patch is idempotent: a page that already carries the sidebar marker is
// reported as already patched and returned unchanged. Only the explicitly
// configured numeric file range is ever touched.
package retrofit
