package models

import (
	"encoding/xml"
)

// Element is a node in a harvested authoring tree.
// The concrete types are Directory, DirectoryRef, Component, File,
// CreateFolder, PayloadGroup and Payload.
type Element interface {
	// ElementName returns the authoring element name, e.g. "Directory".
	ElementName() string
}

// Parent is an Element that owns an ordered list of children.
type Parent interface {
	Element
	AddChild(child Element)
	ChildElements() []Element
}

// YesNo is a boolean rendered as "yes"/"no" in authoring attributes.
type YesNo bool

// MarshalXMLAttr implements xml.MarshalerAttr.
func (v YesNo) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if v {
		return xml.Attr{Name: name, Value: "yes"}, nil
	}
	return xml.Attr{Name: name, Value: "no"}, nil
}

// Fragment is the single top-level container returned by one harvest.
type Fragment struct {
	XMLName xml.Name `xml:"Fragment"`
	Root    Element
}

// ElementName implements Element.
func (f *Fragment) ElementName() string { return "Fragment" }

// AddChild sets the fragment's root element.
func (f *Fragment) AddChild(child Element) { f.Root = child }

// ChildElements implements Parent.
func (f *Fragment) ChildElements() []Element {
	if f.Root == nil {
		return nil
	}
	return []Element{f.Root}
}

// DirectoryRef references an existing directory by id and hosts harvested content beneath it.
type DirectoryRef struct {
	XMLName  xml.Name `xml:"DirectoryRef"`
	ID       string   `xml:"Id,attr"`
	Children []Element
}

// ElementName implements Element.
func (d *DirectoryRef) ElementName() string { return "DirectoryRef" }

// AddChild implements Parent.
func (d *DirectoryRef) AddChild(child Element) { d.Children = append(d.Children, child) }

// ChildElements implements Parent.
func (d *DirectoryRef) ChildElements() []Element { return d.Children }

// Directory represents one harvested file-system directory.
type Directory struct {
	XMLName    xml.Name `xml:"Directory"`
	ID         string   `xml:"Id,attr,omitempty"`
	Name       string   `xml:"Name,attr"`
	FileSource string   `xml:"FileSource,attr,omitempty"`
	Children   []Element

	// FileCount is the number of files harvested beneath this directory,
	// including nested directories. Placeholders never count.
	FileCount int `xml:"-"`
}

// ElementName implements Element.
func (d *Directory) ElementName() string { return "Directory" }

// AddChild implements Parent.
func (d *Directory) AddChild(child Element) { d.Children = append(d.Children, child) }

// ChildElements implements Parent.
func (d *Directory) ChildElements() []Element { return d.Children }

// Component groups a harvested file, or a create-folder marker for an empty directory.
type Component struct {
	XMLName  xml.Name `xml:"Component"`
	ID       string   `xml:"Id,attr,omitempty"`
	GUID     string   `xml:"Guid,attr,omitempty"`
	KeyPath  YesNo    `xml:"KeyPath,attr,omitempty"`
	Children []Element
}

// ElementName implements Element.
func (c *Component) ElementName() string { return "Component" }

// AddChild implements Parent.
func (c *Component) AddChild(child Element) { c.Children = append(c.Children, child) }

// ChildElements implements Parent.
func (c *Component) ChildElements() []Element { return c.Children }

// IsPlaceholder reports whether the component only marks a directory for creation.
func (c *Component) IsPlaceholder() bool {
	for _, child := range c.Children {
		if _, ok := child.(*CreateFolder); ok {
			return true
		}
	}
	return false
}

// File is one harvested file.
type File struct {
	XMLName xml.Name `xml:"File"`
	ID      string   `xml:"Id,attr,omitempty"`
	KeyPath YesNo    `xml:"KeyPath,attr,omitempty"`
	// Source is the root-relative source reference, e.g. SourceDir\bin\app.exe.
	Source string `xml:"Source,attr"`

	Name    string `xml:"-"`
	AbsPath string `xml:"-"`
	Size    int64  `xml:"-"`
}

// ElementName implements Element.
func (f *File) ElementName() string { return "File" }

// CreateFolder marks the parent component's directory for creation.
type CreateFolder struct {
	XMLName xml.Name `xml:"CreateFolder"`
}

// ElementName implements Element.
func (c *CreateFolder) ElementName() string { return "CreateFolder" }

// PayloadGroup collects payloads harvested in payload-group mode.
type PayloadGroup struct {
	XMLName  xml.Name `xml:"PayloadGroup"`
	ID       string   `xml:"Id,attr,omitempty"`
	Children []Element
}

// ElementName implements Element.
func (p *PayloadGroup) ElementName() string { return "PayloadGroup" }

// AddChild implements Parent.
func (p *PayloadGroup) AddChild(child Element) { p.Children = append(p.Children, child) }

// ChildElements implements Parent.
func (p *PayloadGroup) ChildElements() []Element { return p.Children }

// Payload is one file harvested in payload-group mode.
type Payload struct {
	XMLName    xml.Name `xml:"Payload"`
	SourceFile string   `xml:"SourceFile,attr"`

	Name    string `xml:"-"`
	AbsPath string `xml:"-"`
	Size    int64  `xml:"-"`
}

// ElementName implements Element.
func (p *Payload) ElementName() string { return "Payload" }
