// Package rsonpath implements the streaming byte classification pipeline
// that underlies a JSONPath query engine: quote classification, structural
// character classification, and depth tracking over fixed-size blocks of a
// JSON byte stream, using branch-lean, SIMD-amenable bitmask algorithms.
//
// The classifiers are designed to be composed leaves-first:
//
//	QuoteClassifier -> StructuralClassifier -> DepthClassifier -> engine
//
// and to support being stopped mid-stream and resumed by a sibling
// classifier, so that an engine can skip over whole subtrees without
// visiting every byte.
package rsonpath
