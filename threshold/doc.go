// Package threshold locates the optimal hard threshold for singular values.
//
// The threshold is the unique root of a monotone scalar functional of the
// pseudo-noise spectrum, evaluated strictly above the noise bulk edge. The
// solver brackets the root by exponential expansion and refines it by
// bisection to a fixed absolute tolerance.
package threshold
