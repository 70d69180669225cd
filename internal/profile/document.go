package profile

import (
	"bytes"
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is one of the two catalogues. Both serialize with keys in
// source row order at every level.
type Document interface {
	json.Marshaler
	yaml.Marshaler

	// Len is the number of top-level records.
	Len() int
}

// =============================================================================
// MESSAGE DOCUMENT
// =============================================================================

// Attribute is one column of a field descriptor. List is set instead of
// Text for the reference columns when they hold a value.
type Attribute struct {
	Key    string
	Text   string
	List   []string
	IsList bool
}

// Field is a field descriptor keyed by Name within its message.
type Field struct {
	Name       string
	Attributes []Attribute

	// DynamicParent names the regular field a sub-field belongs to.
	DynamicParent string
	HasParent     bool

	// IsDynamic marks a field immediately followed by sub-fields.
	IsDynamic bool
}

// Attr returns the attribute stored under key.
func (f Field) Attr(key string) (Attribute, bool) {
	for _, a := range f.Attributes {
		if a.Key == key {
			return a, true
		}
	}
	return Attribute{}, false
}

// setAttr stores a, replacing an attribute with the same key in place.
func (f *Field) setAttr(a Attribute) {
	for i := range f.Attributes {
		if f.Attributes[i].Key == a.Key {
			f.Attributes[i] = a
			return
		}
	}
	f.Attributes = append(f.Attributes, a)
}

// Message is one message record.
type Message struct {
	Name   string
	Fields []Field
}

// Field returns the field called name.
func (m *Message) Field(name string) (Field, bool) {
	if i := m.index(name); i >= 0 {
		return m.Fields[i], true
	}
	return Field{}, false
}

// Put stores f and returns its index. A field with the same name is
// replaced in its original position.
func (m *Message) Put(f Field) int {
	if i := m.index(f.Name); i >= 0 {
		m.Fields[i] = f
		return i
	}
	m.Fields = append(m.Fields, f)
	return len(m.Fields) - 1
}

func (m *Message) index(name string) int {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return i
		}
	}
	return -1
}

// MessageDocument maps message names to their fields.
type MessageDocument struct {
	messages []*Message
	byName   map[string]*Message
}

// NewMessageDocument returns an empty document.
func NewMessageDocument() *MessageDocument {
	return &MessageDocument{byName: make(map[string]*Message)}
}

// Start begins the record called name with no fields. A repeated name
// discards the earlier fields but keeps the earlier position.
func (d *MessageDocument) Start(name string) *Message {
	if m, ok := d.byName[name]; ok {
		m.Fields = nil
		return m
	}
	m := &Message{Name: name}
	d.messages = append(d.messages, m)
	d.byName[name] = m
	return m
}

// Get returns the message called name.
func (d *MessageDocument) Get(name string) (*Message, bool) {
	m, ok := d.byName[name]
	return m, ok
}

// Messages returns the messages in row order.
func (d *MessageDocument) Messages() []*Message {
	return d.messages
}

// Len implements Document.
func (d *MessageDocument) Len() int {
	return len(d.messages)
}

// MarshalJSON implements json.Marshaler.
func (d *MessageDocument) MarshalJSON() ([]byte, error) {
	members := make([]member, len(d.messages))
	for i, m := range d.messages {
		members[i] = member{m.Name, m}
	}
	return marshalObject(members)
}

// MarshalYAML implements yaml.Marshaler.
func (d *MessageDocument) MarshalYAML() (interface{}, error) {
	node := mappingNode()
	for _, m := range d.messages {
		node.Content = append(node.Content, stringNode(m.Name), m.yamlNode())
	}
	return node, nil
}

// MarshalJSON implements json.Marshaler.
func (m *Message) MarshalJSON() ([]byte, error) {
	members := make([]member, len(m.Fields))
	for i, f := range m.Fields {
		members[i] = member{f.Name, f}
	}
	return marshalObject(members)
}

func (m *Message) yamlNode() *yaml.Node {
	node := mappingNode()
	for _, f := range m.Fields {
		node.Content = append(node.Content, stringNode(f.Name), f.yamlNode())
	}
	return node
}

// MarshalJSON implements json.Marshaler.
func (f Field) MarshalJSON() ([]byte, error) {
	members := make([]member, 0, len(f.Attributes)+2)
	for _, a := range f.Attributes {
		if a.IsList {
			members = append(members, member{a.Key, a.List})
		} else {
			members = append(members, member{a.Key, a.Text})
		}
	}
	if f.HasParent {
		members = append(members, member{"dynamic_parent", f.DynamicParent})
	}
	if f.IsDynamic {
		members = append(members, member{"is_dynamic", true})
	}
	return marshalObject(members)
}

func (f Field) yamlNode() *yaml.Node {
	node := mappingNode()
	for _, a := range f.Attributes {
		var value *yaml.Node
		if a.IsList {
			value = stringsNode(a.List)
		} else {
			value = stringNode(a.Text)
		}
		node.Content = append(node.Content, stringNode(a.Key), value)
	}
	if f.HasParent {
		node.Content = append(node.Content, stringNode("dynamic_parent"), stringNode(f.DynamicParent))
	}
	if f.IsDynamic {
		node.Content = append(node.Content, stringNode("is_dynamic"),
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	return node
}

// =============================================================================
// TYPE DOCUMENT
// =============================================================================

// TypeValues holds the enumerated values of a type as parallel sequences.
type TypeValues struct {
	Names []string `json:"names"`
	Codes []int64  `json:"codes"`
}

// TypeDef is one type record.
type TypeDef struct {
	Name     string     `json:"-"`
	BaseType string     `json:"base_type"`
	Values   TypeValues `json:"values"`
}

// Add appends one enumerated value.
func (t *TypeDef) Add(name string, code int64) {
	t.Values.Names = append(t.Values.Names, name)
	t.Values.Codes = append(t.Values.Codes, code)
}

// TypeDocument maps type names to their definitions.
type TypeDocument struct {
	types  []*TypeDef
	byName map[string]*TypeDef
}

// NewTypeDocument returns an empty document.
func NewTypeDocument() *TypeDocument {
	return &TypeDocument{byName: make(map[string]*TypeDef)}
}

// Define returns the definition called name, creating it if needed. A
// repeated name keeps accumulating values onto the first definition.
func (d *TypeDocument) Define(name string) *TypeDef {
	if t, ok := d.byName[name]; ok {
		return t
	}
	t := &TypeDef{
		Name:   name,
		Values: TypeValues{Names: []string{}, Codes: []int64{}},
	}
	d.types = append(d.types, t)
	d.byName[name] = t
	return t
}

// Get returns the type called name.
func (d *TypeDocument) Get(name string) (*TypeDef, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// Types returns the type definitions in row order.
func (d *TypeDocument) Types() []*TypeDef {
	return d.types
}

// Len implements Document.
func (d *TypeDocument) Len() int {
	return len(d.types)
}

// MarshalJSON implements json.Marshaler.
func (d *TypeDocument) MarshalJSON() ([]byte, error) {
	members := make([]member, len(d.types))
	for i, t := range d.types {
		members[i] = member{t.Name, t}
	}
	return marshalObject(members)
}

// MarshalYAML implements yaml.Marshaler.
func (d *TypeDocument) MarshalYAML() (interface{}, error) {
	node := mappingNode()
	for _, t := range d.types {
		codes := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, c := range t.Values.Codes {
			codes.Content = append(codes.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(c, 10)})
		}
		values := mappingNode()
		values.Content = append(values.Content,
			stringNode("names"), stringsNode(t.Values.Names),
			stringNode("codes"), codes)

		def := mappingNode()
		def.Content = append(def.Content,
			stringNode("base_type"), stringNode(t.BaseType),
			stringNode("values"), values)

		node.Content = append(node.Content, stringNode(t.Name), def)
	}
	return node, nil
}

// =============================================================================
// ORDERED ENCODING HELPERS
// =============================================================================

type member struct {
	key   string
	value any
}

// marshalObject writes members as a JSON object in slice order.
func marshalObject(members []member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeValue(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := encodeValue(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeValue marshals v with HTML escaping off, so "<" stays "<".
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func stringsNode(items []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, s := range items {
		node.Content = append(node.Content, stringNode(s))
	}
	return node
}
