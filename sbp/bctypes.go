package sbp

import (
	"fmt"
	"strings"
)

// BCKind is the closed set of boundary condition kinds supported by the wave
// equation semidiscretizations. The set is fixed: operators validate their BC
// kinds against the problem dimensionality at construction time.
type BCKind uint8

const (
	// HomogeneousNeumann enforces a zero boundary derivative; an incoming pulse
	// reflects without sign change.
	HomogeneousNeumann BCKind = iota

	// HomogeneousDirichlet enforces a zero boundary value; an incoming pulse
	// reflects with sign inversion.
	HomogeneousDirichlet

	// NonReflecting is a first-order outgoing-wave absorbing condition. It
	// needs velocity data at the boundary, so it is only available on the 1D
	// path where the semidiscretization carries the velocity field.
	NonReflecting
)

func (bc BCKind) String() string {
	switch bc {
	case HomogeneousNeumann:
		return "HomogeneousNeumann"
	case HomogeneousDirichlet:
		return "HomogeneousDirichlet"
	case NonReflecting:
		return "NonReflecting"
	}
	return "Unknown"
}

// BCNameMap maps input-file names to BC kinds. Matching is case-insensitive.
var BCNameMap = map[string]BCKind{
	"neumann":   HomogeneousNeumann,
	"reflect":   HomogeneousNeumann,
	"dirichlet": HomogeneousDirichlet,
	"invert":    HomogeneousDirichlet,
	"absorbing": NonReflecting,
	"outgoing":  NonReflecting,
}

func ParseBCKind(name string) (bc BCKind, err error) {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	bc, ok := BCNameMap[lowerName]
	if !ok {
		err = fmt.Errorf("boundary setup: unknown boundary condition kind %q", name)
	}
	return
}

// ValidFor reports whether the kind is usable at the given problem
// dimensionality. NonReflecting requires velocity data at the boundary, which
// the tensor-product 2D path does not carry, so it is a 1D-only kind.
func (bc BCKind) ValidFor(dim int) (err error) {
	switch {
	case bc > NonReflecting:
		err = fmt.Errorf("boundary setup: unknown boundary condition kind %d", bc)
	case dim != 1 && dim != 2:
		err = fmt.Errorf("boundary setup: unsupported dimensionality %d", dim)
	case dim == 2 && bc == NonReflecting:
		err = fmt.Errorf("boundary setup: %v requires velocity data at the boundary and is not available in 2D", bc)
	}
	return
}
