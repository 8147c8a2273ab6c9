package models

// WalkFunc is called for every element visited by Walk, with the element's
// depth below the starting element. Returning false skips the element's children.
type WalkFunc func(el Element, depth int) bool

// Walk visits el and its descendants in document order.
func Walk(el Element, fn WalkFunc) {
	walk(el, 0, fn)
}

func walk(el Element, depth int, fn WalkFunc) {
	if el == nil {
		return
	}
	if !fn(el, depth) {
		return
	}
	if p, ok := el.(Parent); ok {
		for _, child := range p.ChildElements() {
			walk(child, depth+1, fn)
		}
	}
}

// Summary counts the elements in a harvested tree.
type Summary struct {
	Directories  int `json:"directories" yaml:"directories"`
	Components   int `json:"components" yaml:"components"`
	Files        int `json:"files" yaml:"files"`
	Payloads     int `json:"payloads" yaml:"payloads"`
	Placeholders int `json:"placeholders" yaml:"placeholders"`
}

// Harvested returns the number of harvested leaves (files plus payloads).
func (s Summary) Harvested() int {
	return s.Files + s.Payloads
}

// Summarize counts the elements beneath and including el.
func Summarize(el Element) Summary {
	var s Summary
	Walk(el, func(e Element, _ int) bool {
		switch v := e.(type) {
		case *Directory:
			s.Directories++
		case *Component:
			s.Components++
			if v.IsPlaceholder() {
				s.Placeholders++
			}
		case *File:
			s.Files++
		case *Payload:
			s.Payloads++
		}
		return true
	})
	return s
}

// Files returns every File beneath el in document order.
func Files(el Element) []*File {
	var files []*File
	Walk(el, func(e Element, _ int) bool {
		if f, ok := e.(*File); ok {
			files = append(files, f)
		}
		return true
	})
	return files
}
