package magicschema

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/google/jsonschema-go/jsonschema"
)

// Sentinel errors returned by the generator.
var (
	ErrInvalidYAML = errors.New("invalid yaml")
	ErrReadInput   = errors.New("read input")
	ErrWriteOutput = errors.New("write output")
)

// Generator produces a JSON Schema skeleton from sample YAML front matter.
// It never invents validation it cannot observe: types come from the
// literals present in the sample, descriptions come from plain comments,
// and directive placeholders come from "x-" hint comments. The result is
// meant as a starting point for a hand-edited schema, not a final artifact.
type Generator struct {
	title       string
	description string
	id          string
	strict      bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithTitle sets the schema title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithDescription sets the schema description.
func WithDescription(desc string) Option {
	return func(g *Generator) {
		g.description = desc
	}
}

// WithID sets the schema $id.
func WithID(id string) Option {
	return func(g *Generator) {
		g.id = id
	}
}

// WithStrict sets additionalProperties to false on objects.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// Generate produces a JSON Schema from one or more YAML inputs, each a
// sample front-matter document. Multiple inputs are merged with union
// semantics: a field present in any sample appears in the schema. No field
// is marked required.
func (g *Generator) Generate(inputs ...[]byte) (*jsonschema.Schema, error) {
	var result *jsonschema.Schema

	if len(inputs) == 0 {
		result = g.emptySchema()
	} else {
		var schemas []*jsonschema.Schema

		for i, input := range inputs {
			schema, err := g.generateSingle(input)
			if err != nil {
				return nil, fmt.Errorf("input %d: %w", i, err)
			}

			schemas = append(schemas, schema)
		}

		result = schemas[0]

		for i := 1; i < len(schemas); i++ {
			result = mergeSchemas(result, schemas[i])
		}
	}

	result.Schema = "http://json-schema.org/draft-07/schema#"

	if g.title != "" {
		result.Title = g.title
	}

	if g.description != "" {
		result.Description = g.description
	}

	if g.id != "" {
		result.ID = g.id
	}

	if (result.Type == typeObject || result.Properties != nil) && result.AdditionalProperties == nil {
		if g.strict {
			result.AdditionalProperties = FalseSchema()
		} else {
			result.AdditionalProperties = TrueSchema()
		}
	}

	return result, nil
}

// generateSingle processes a single YAML input into a schema.
func (g *Generator) generateSingle(input []byte) (*jsonschema.Schema, error) {
	if len(input) == 0 || isBlank(input) {
		return g.emptySchema(), nil
	}

	file, err := parser.ParseBytes(input, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}

	if len(file.Docs) == 0 {
		return g.emptySchema(), nil
	}

	doc := file.Docs[0]
	if doc.Body == nil {
		return g.emptySchema(), nil
	}

	anchors := buildAnchorMap(doc.Body)

	return g.walkNode(doc.Body, "", anchors), nil
}

// walkNode recursively generates a schema from a YAML AST node.
func (g *Generator) walkNode(node ast.Node, keyPath string, anchors map[string]ast.Node) *jsonschema.Schema {
	node = resolveAliases(node, anchors)
	node = unwrapNode(node)

	if node == nil {
		return &jsonschema.Schema{}
	}

	switch n := node.(type) {
	case *ast.MappingNode:
		return g.walkMapping(n, keyPath, anchors)
	case *ast.MappingValueNode:
		return g.walkMapping(nil, keyPath, anchors, n)
	case *ast.SequenceNode:
		return g.walkSequence(n, keyPath, anchors)
	default:
		return g.walkScalar(node)
	}
}

// walkMapping processes a mapping node into an object schema.
func (g *Generator) walkMapping(
	mn *ast.MappingNode,
	keyPath string,
	anchors map[string]ast.Node,
	extraValues ...*ast.MappingValueNode,
) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       typeObject,
		Properties: make(map[string]*jsonschema.Schema),
	}

	if g.strict {
		schema.AdditionalProperties = FalseSchema()
	} else {
		schema.AdditionalProperties = TrueSchema()
	}

	var values []*ast.MappingValueNode
	if mn != nil {
		values = mn.Values
	}

	values = append(values, extraValues...)

	var (
		propertyOrder []string
		orderSeen     = make(map[string]bool)
	)

	addToOrder := func(key string) {
		if !orderSeen[key] {
			propertyOrder = append(propertyOrder, key)
			orderSeen[key] = true
		}
	}

	for _, mvn := range values {
		if _, ok := mvn.Key.(*ast.MergeKeyNode); ok {
			g.handleMergeKey(mvn, keyPath, anchors, schema, addToOrder)

			continue
		}

		g.handleProperty(mvn, keyPath, anchors, schema, addToOrder)
	}

	schema.PropertyOrder = propertyOrder

	if len(schema.Properties) == 0 {
		schema.Properties = nil
		schema.PropertyOrder = nil
	}

	return schema
}

// handleMergeKey processes a YAML merge key (<<) and adds its properties.
func (g *Generator) handleMergeKey(
	mvn *ast.MappingValueNode,
	keyPath string,
	anchors map[string]ast.Node,
	schema *jsonschema.Schema,
	addToOrder func(string),
) {
	mergeValue := resolveAliases(mvn.Value, anchors)
	mergeValue = unwrapNode(mergeValue)

	switch mv := mergeValue.(type) {
	case *ast.MappingNode:
		mergeSchema := g.walkMapping(mv, keyPath, anchors)
		for _, k := range propertyKeys(mergeSchema) {
			if _, exists := schema.Properties[k]; !exists {
				schema.Properties[k] = mergeSchema.Properties[k]
				addToOrder(k)
			}
		}

		if mergeSchema.Required != nil {
			schema.Required = append(schema.Required, mergeSchema.Required...)
		}

	case *ast.SequenceNode:
		for _, seqVal := range mv.Values {
			resolved := resolveAliases(seqVal, anchors)
			resolved = unwrapNode(resolved)

			mappingNode, ok := resolved.(*ast.MappingNode)
			if !ok {
				continue
			}

			mergeSchema := g.walkMapping(mappingNode, keyPath, anchors)
			for _, k := range propertyKeys(mergeSchema) {
				if _, exists := schema.Properties[k]; !exists {
					schema.Properties[k] = mergeSchema.Properties[k]
					addToOrder(k)
				}
			}
		}
	}
}

// handleProperty processes a single key-value pair in a mapping, folding
// any "x-" hint comments attached to it into the child schema's Extra.
func (g *Generator) handleProperty(
	mvn *ast.MappingValueNode,
	keyPath string,
	anchors map[string]ast.Node,
	schema *jsonschema.Schema,
	addToOrder func(string),
) {
	keyName := mvn.Key.String()

	childPath := keyName
	if keyPath != "" {
		childPath = keyPath + "." + keyName
	}

	valueNode := resolveAliases(mvn.Value, anchors)
	valueNode = unwrapNode(valueNode)

	childSchema := g.walkNode(valueNode, childPath, anchors)
	if childSchema.Description == "" {
		childSchema.Description = extractComment(mvn)
	}

	if hints := extractHints(mvn); hints != nil {
		childSchema.Extra = hints
	}

	schema.Properties[keyName] = childSchema
	addToOrder(keyName)
}

// walkSequence processes a sequence node into an array schema.
func (g *Generator) walkSequence(seq *ast.SequenceNode, keyPath string, anchors map[string]ast.Node) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:  typeArray,
		Items: g.inferItemsFromSequence(seq, keyPath, anchors),
	}
}

// inferItemsFromSequence infers the items schema from a sequence node's values.
func (g *Generator) inferItemsFromSequence(seq *ast.SequenceNode, keyPath string, anchors map[string]ast.Node) *jsonschema.Schema {
	if len(seq.Values) == 0 {
		return nil
	}

	allMappings := true

	for _, val := range seq.Values {
		resolved := resolveAliases(val, anchors)
		resolved = unwrapNode(resolved)

		if _, ok := resolved.(*ast.MappingNode); !ok {
			allMappings = false

			break
		}
	}

	if allMappings {
		var itemSchemas []*jsonschema.Schema

		for _, val := range seq.Values {
			resolved := resolveAliases(val, anchors)
			resolved = unwrapNode(resolved)

			itemSchemas = append(itemSchemas, g.walkNode(resolved, keyPath, anchors))
		}

		result := itemSchemas[0]

		for i := 1; i < len(itemSchemas); i++ {
			result = mergeSchemas(result, itemSchemas[i])
		}

		return result
	}

	return inferItemsSchema(seq)
}

// walkScalar generates a schema for a scalar value node.
func (g *Generator) walkScalar(node ast.Node) *jsonschema.Schema {
	t := inferType(node)
	if t == "" {
		return &jsonschema.Schema{}
	}

	return &jsonschema.Schema{Type: t}
}

// emptySchema returns a schema for empty input (validates everything).
func (g *Generator) emptySchema() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// buildAnchorMap walks the AST and collects all anchor definitions.
func buildAnchorMap(node ast.Node) map[string]ast.Node {
	anchors := make(map[string]ast.Node)

	ast.Walk(&anchorVisitor{anchors: anchors}, node)

	return anchors
}

type anchorVisitor struct {
	anchors map[string]ast.Node
}

// Visit implements the [ast.Visitor] interface.
func (v *anchorVisitor) Visit(node ast.Node) ast.Visitor {
	if anchor, ok := node.(*ast.AnchorNode); ok {
		name := anchor.Name.String()
		v.anchors[name] = anchor.Value
	}

	return v
}

// resolveAliases resolves alias nodes using the anchor map.
func resolveAliases(node ast.Node, anchors map[string]ast.Node) ast.Node {
	if node == nil {
		return nil
	}

	alias, ok := node.(*ast.AliasNode)
	if !ok {
		return node
	}

	name := alias.Value.String()
	if resolved, found := anchors[name]; found {
		return resolved
	}

	return nil
}

// isBlank returns true if the byte slice contains only whitespace.
func isBlank(data []byte) bool {
	for _, b := range data {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}

	return true
}
