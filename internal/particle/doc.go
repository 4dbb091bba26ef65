// Package particle samples the decorative bubble field.
//
// A [Generator] draws every visual parameter of a bubble once, up front.
// After that a bubble needs no update loop: [Spec.At] describes its rise and
// sway as two periodic functions of elapsed time that loop forever.
package particle
