// Package detect classifies files into categories. Every registered
// detector examines each file and either casts a confidence-weighted
// vote or abstains; the chain resolves the votes into a single
// category. Confidence sticks to fixed bands so votes from different
// detectors compare meaningfully: content evidence scores high,
// filename patterns medium to high, bare extensions low to medium.
package detect
