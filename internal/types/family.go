package types

import "fmt"

type VersionFamily int

const (
	FamilyNone    VersionFamily = 0
	FamilyPython2 VersionFamily = 2
	FamilyPython3 VersionFamily = 3
)

// Families lists the conflicting families in report order.
var Families = []VersionFamily{FamilyPython2, FamilyPython3}

func (f VersionFamily) String() string {
	if f == FamilyNone {
		return "none"
	}
	return fmt.Sprintf("Python %d", int(f))
}
