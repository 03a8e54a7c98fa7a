package metrix

import "fmt"

// ErrDuplicateName is returned when adding a named child that collides
// with an existing one: an instrument added to a panel that already has
// an instrument of that name, a panel added to a cockpit under a name
// already in use, or a processor added to a mount under a name already
// in use. Modeled on the teacher's armadaerrors.ErrAlreadyExists: a
// typed, recoverable construction-time error rather than a bare
// fmt.Errorf.
type ErrDuplicateName struct {
	// Kind names what sort of child was being added, e.g. "instrument",
	// "panel", "processor".
	Kind string
	// Name is the colliding name.
	Name string
	// Parent optionally names the container the child was added to.
	Parent string
}

func (e *ErrDuplicateName) Error() string {
	if e.Parent != "" {
		return fmt.Sprintf("%s %q already exists in %q", e.Kind, e.Name, e.Parent)
	}
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}
