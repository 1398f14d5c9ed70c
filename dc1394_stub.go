//go:build !cgo

package iidc

import "errors"

// Camera access goes through libdc1394; without cgo there is no driver to
// bind. The pure-Go build still compiles so the package can be consumed
// (and unit tested) on any platform.
func newPlatformDriver() (driver, error) {
	return nil, errors.New("go-iidc requires cgo and libdc1394")
}
