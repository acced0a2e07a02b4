package policies

import "strings"

// DefaultSkipList names packages known to depend on both families on
// purpose.
var DefaultSkipList = []string{
	"eric",  // https://bugzilla.redhat.com/show_bug.cgi?id=1342492
	"pungi", // https://bugzilla.redhat.com/show_bug.cgi?id=1342497
}

// SkipList is an immutable set of package names exempt from failure.
type SkipList struct {
	names map[string]struct{}
}

func NewSkipList(names []string) SkipList {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return SkipList{names: set}
}

func (s SkipList) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

func (s SkipList) Len() int {
	return len(s.names)
}
