// Package screenot computes the statistically optimal hard threshold for
// singular values of a noisy data matrix.
//
// The procedure assumes a low-rank signal observed through additive noise
// whose correlation structure is unknown and need not be white. It derives a
// pseudo-noise spectrum from the observed singular values, locates the unique
// root of a monotone spectral functional above the noise bulk edge, and keeps
// only the singular values exceeding that root when reconstructing the
// low-rank estimate.
//
// The package intentionally does not implement the SVD itself. Factorization
// and reconstruction are delegated to gonum; the core operates on plain
// singular value sequences and can also be driven from a precomputed
// decomposition via [AdaptiveHardThresholdSVD].
package screenot
