// Package spectrum prepares singular value spectra for optimal hard
// thresholding.
//
// Its central operation replaces the top-k entries of the sorted spectrum,
// assumed contaminated by signal, with synthetic pseudo-noise values so that
// the result approximates the spectrum of the pure noise bulk. The package
// also provides single-pass summary statistics over a spectrum.
package spectrum
