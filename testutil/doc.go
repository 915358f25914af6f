// Package testutil provides testing utilities for devbitmap.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	bits := rng.Bools(100)
//	start, end := rng.Span(1024, 64)
//
// # Reference Bitmap
//
// RefBitmap is a deliberately naive MSB-first bitmap over a byte slice,
// used as the oracle in property tests.
//
//	ref := testutil.NewRefBitmap(initialBytes)
//	ref.Set(12, true)
//	bit := ref.Get(12)
package testutil
