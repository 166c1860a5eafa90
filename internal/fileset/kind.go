package fileset

import "fmt"

// Kind identifies one kind of file an engine can leave behind.
type Kind int

const (
	// Stdout is the program's standard output, supplied by the caller as text.
	Stdout Kind = iota
	// Directory is the result directory itself; its payload is the path.
	Directory
	// Hess is a structured Hessian block file, {basename}.hess.
	Hess
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Stdout:
		return "stdout"
	case Directory:
		return "directory"
	case Hess:
		return "hess"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// IsCompanion reports whether k names a file found next to stdout by basename.
func (k Kind) IsCompanion() bool {
	return k.Valid() && k != Stdout && k != Directory
}
