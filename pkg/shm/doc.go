// Package shm provides named shared-memory pages for reading simulator telemetry.
//
// A Page is attached once and copied out on every read; callers never keep
// references into the mapping. Pages carrying a sequence word are copied
// until the word is stable across the copy. It is portable across Linux
// (/dev/shm) and Windows (Local\ file mappings).
//
// Example usage:
//
//	page, err := shm.Open(ctx, shm.OpenOptions{
//	  Name:      "acpmf_graphics",
//	  Size:      1588,
//	  Create:    true,
//	  SeqOffset: 0,
//	})
//	// ...
//	buf, err := page.Snapshot(nil)
//
// See internal/shm for the platform mapping.
package shm
