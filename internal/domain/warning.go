package domain

import "fmt"

// Warning records a recoverable condition hit during install or uninstall,
// such as a missing backup. Fatal conditions are returned as errors instead;
// warnings let the rest of the operation proceed.
type Warning struct {
	Step    string // "file" or "xml"
	Path    string // the path the step was operating on
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Step, w.Path, w.Message)
}
