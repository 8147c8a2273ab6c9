// Package output serializes harvested fragments and writes them to disk.
package output

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/harrison/harvest/internal/models"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for harvested fragments.
type Format string

const (
	// FormatWXS renders WiX v4 XML source.
	FormatWXS Format = "wxs"
	// FormatYAML renders a YAML document tree.
	FormatYAML Format = "yaml"
)

// WixNamespace is the XML namespace of the authoring envelope.
const WixNamespace = "http://wixtoolset.org/schemas/v4/wxs"

// ParseFormat parses a format name case-insensitively. An empty name selects FormatWXS.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "wxs", "xml":
		return FormatWXS, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: wxs, yaml)", name)
	}
}

// wixDocument is the root envelope around harvested fragments.
type wixDocument struct {
	XMLName   xml.Name `xml:"Wix"`
	Xmlns     string   `xml:"xmlns,attr"`
	Fragments []*models.Fragment
}

// Encode renders fragment in the given format.
func Encode(fragment *models.Fragment, format Format) ([]byte, error) {
	if fragment == nil {
		return nil, fmt.Errorf("nothing to encode: fragment is nil")
	}

	switch format {
	case FormatWXS, "":
		return encodeWXS(fragment)
	case FormatYAML:
		return encodeYAML(fragment)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func encodeWXS(fragment *models.Fragment) ([]byte, error) {
	doc := wixDocument{
		Xmlns:     WixNamespace,
		Fragments: []*models.Fragment{fragment},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode wxs: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode wxs: %w", err)
	}
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

func encodeYAML(fragment *models.Fragment) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlElement(fragment)); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// yamlElement converts an element into an ordered YAML mapping keyed by the
// element name, so the document keeps each node's kind.
func yamlElement(el models.Element) *yaml.Node {
	body := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		body.Content = append(body.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			value,
		)
	}
	addString := func(key, value string) {
		if value == "" {
			return
		}
		add(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
	}
	addInt := func(key string, value int64) {
		add(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprintf("%d", value)})
	}

	switch v := el.(type) {
	case *models.DirectoryRef:
		addString("id", v.ID)
	case *models.Directory:
		addString("id", v.ID)
		addString("name", v.Name)
		addString("source", v.FileSource)
		addInt("files", int64(v.FileCount))
	case *models.Component:
		addString("id", v.ID)
		addString("guid", v.GUID)
		if v.KeyPath {
			add("keyPath", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
		}
	case *models.File:
		addString("id", v.ID)
		addString("name", v.Name)
		addString("source", v.Source)
		addInt("size", v.Size)
	case *models.PayloadGroup:
		addString("id", v.ID)
	case *models.Payload:
		addString("name", v.Name)
		addString("source", v.SourceFile)
		addInt("size", v.Size)
	}

	if p, ok := el.(models.Parent); ok {
		children := p.ChildElements()
		if len(children) > 0 {
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, child := range children {
				seq.Content = append(seq.Content, yamlElement(child))
			}
			add("children", seq)
		}
	}

	if len(body.Content) == 0 {
		body.Style = yaml.FlowStyle
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: el.ElementName()},
			body,
		},
	}
}
