package summary

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"ctxforge/internal/logging"
)

// Tree-sitter based digest for TypeScript/JavaScript sources. The syntax tree
// is converted at the boundary into a flat slice of tagged Decl variants; all
// node kinds outside the fixed declaration set are discarded there, so the
// rendering code never touches raw tree nodes.

// DeclKind enumerates the declaration shapes the digest understands.
type DeclKind int

const (
	DeclImport DeclKind = iota
	DeclClass
	DeclInterface
	DeclTypeAlias
	DeclFunction
	DeclMethod
	DeclProperty
	DeclVariable
)

// Decl is one extracted declaration. Only the fields relevant to its Kind
// are populated.
type Decl struct {
	Kind     DeclKind
	Name     string
	Params   string   // flattened parameter list (functions, methods)
	Extends  []string // superclass or extended interfaces
	Label    string   // Constructor / Getter / Setter / Static Method / Method / Property / Static Property
	Keyword  string   // const / let / var
	Source   string   // import module specifier
	Exported bool
}

func summarizeTypeScript(content string, lang Language) (string, bool) {
	parser := sitter.NewParser()
	if lang == LangJavaScript {
		parser.SetLanguage(javascript.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	src := []byte(content)
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil || tree == nil {
		logging.Get(logging.CategorySummary).Error("tree-sitter parse failed: %v", err)
		return "", false
	}
	defer tree.Close()

	var decls []Decl
	collectDecls(tree.RootNode(), src, false, &decls)
	if len(decls) == 0 {
		return "", false
	}

	return renderDecls(decls), true
}

// collectDecls walks named children in traversal order, converting the
// declaration kinds we understand and recursing through everything else.
func collectDecls(node *sitter.Node, src []byte, exported bool, out *[]Decl) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "import_statement":
			if sourceNode := child.ChildByFieldName("source"); sourceNode != nil {
				*out = append(*out, Decl{
					Kind:   DeclImport,
					Source: strings.Trim(nodeText(sourceNode, src), `"'`),
				})
			}

		case "export_statement":
			collectDecls(child, src, true, out)

		case "class_declaration":
			name := fieldText(child, "name", src)
			if name == "" {
				continue
			}
			*out = append(*out, Decl{
				Kind:     DeclClass,
				Name:     name,
				Extends:  classHeritage(child, src),
				Exported: exported,
			})
			if body := child.ChildByFieldName("body"); body != nil {
				collectClassMembers(body, src, out)
			}

		case "interface_declaration":
			name := fieldText(child, "name", src)
			if name == "" {
				continue
			}
			*out = append(*out, Decl{
				Kind:     DeclInterface,
				Name:     name,
				Extends:  interfaceHeritage(child, src),
				Exported: exported,
			})

		case "type_alias_declaration":
			if name := fieldText(child, "name", src); name != "" {
				*out = append(*out, Decl{Kind: DeclTypeAlias, Name: name, Exported: exported})
			}

		case "function_declaration", "generator_function_declaration":
			name := fieldText(child, "name", src)
			if name == "" {
				continue
			}
			*out = append(*out, Decl{
				Kind:     DeclFunction,
				Name:     name,
				Params:   formatParams(child.ChildByFieldName("parameters"), src),
				Exported: exported,
			})

		case "lexical_declaration", "variable_declaration":
			keyword := declarationKeyword(child, src)
			for j := 0; j < int(child.NamedChildCount()); j++ {
				declarator := child.NamedChild(j)
				if declarator.Type() != "variable_declarator" {
					continue
				}
				if name := fieldText(declarator, "name", src); name != "" {
					*out = append(*out, Decl{
						Kind:     DeclVariable,
						Name:     name,
						Keyword:  keyword,
						Exported: exported,
					})
				}
			}

		default:
			collectDecls(child, src, exported, out)
		}
	}
}

// collectClassMembers extracts methods and properties from a class_body.
func collectClassMembers(body *sitter.Node, src []byte, out *[]Decl) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)

		switch member.Type() {
		case "method_definition":
			name := fieldText(member, "name", src)
			if name == "" {
				continue
			}
			*out = append(*out, Decl{
				Kind:   DeclMethod,
				Name:   name,
				Params: formatParams(member.ChildByFieldName("parameters"), src),
				Label:  methodLabel(member, name, src),
			})

		case "public_field_definition", "field_definition":
			name := fieldText(member, "name", src)
			if name == "" {
				continue
			}
			label := "Property"
			if hasModifier(member, "static", src) {
				label = "Static Property"
			}
			*out = append(*out, Decl{Kind: DeclProperty, Name: name, Label: label})
		}
	}
}

// methodLabel classifies a method_definition node.
func methodLabel(member *sitter.Node, name string, src []byte) string {
	if name == "constructor" {
		return "Constructor"
	}
	if hasModifier(member, "get", src) {
		return "Getter"
	}
	if hasModifier(member, "set", src) {
		return "Setter"
	}
	if hasModifier(member, "static", src) {
		return "Static Method"
	}
	return "Method"
}

// hasModifier reports whether the node carries the given keyword child before
// its name (static, get, set).
func hasModifier(node *sitter.Node, keyword string, src []byte) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == keyword {
			return true
		}
		// Modifiers precede the name; stop once we hit it
		nameNode := node.ChildByFieldName("name")
		if nameNode != nil && child.StartByte() >= nameNode.StartByte() {
			break
		}
	}
	return false
}

// classHeritage returns the superclass name when it is a simple identifier.
func classHeritage(node *sitter.Node, src []byte) []string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "class_heritage" {
			continue
		}
		if names := identifiersIn(child, src); len(names) > 0 {
			return names[:1]
		}
	}
	return nil
}

// interfaceHeritage returns the extended interface names.
func interfaceHeritage(node *sitter.Node, src []byte) []string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if strings.Contains(child.Type(), "extends") {
			return identifiersIn(child, src)
		}
	}
	return nil
}

// identifiersIn collects identifier-like node texts in traversal order.
func identifiersIn(node *sitter.Node, src []byte) []string {
	var names []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "identifier", "type_identifier":
			names = append(names, nodeText(n, src))
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(node)
	return names
}

// formatParams flattens a formal_parameters node into a comma-joined list.
// Destructured patterns collapse to a placeholder.
func formatParams(params *sitter.Node, src []byte) string {
	if params == nil {
		return ""
	}

	var parts []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)

		target := param
		if pattern := param.ChildByFieldName("pattern"); pattern != nil {
			target = pattern
		}

		switch target.Type() {
		case "object_pattern":
			parts = append(parts, "{...}")
		case "array_pattern":
			parts = append(parts, "[...]")
		case "identifier", "shorthand_property_identifier":
			parts = append(parts, nodeText(target, src))
		default:
			text := nodeText(target, src)
			if strings.ContainsAny(text, "{[") {
				parts = append(parts, "{...}")
			} else {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, ", ")
}

// declarationKeyword returns const/let/var for a variable declaration node.
func declarationKeyword(node *sitter.Node, src []byte) string {
	if node.ChildCount() == 0 {
		return "var"
	}
	return nodeText(node.Child(0), src)
}

func fieldText(node *sitter.Node, field string, src []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return nodeText(child, src)
}

func nodeText(node *sitter.Node, src []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(src) {
		return ""
	}
	return string(src[start:end])
}

// renderDecls turns the tagged declarations into the line-oriented digest.
func renderDecls(decls []Decl) string {
	var b strings.Builder
	for _, d := range decls {
		prefix := ""
		if d.Exported {
			prefix = "Export "
		}

		switch d.Kind {
		case DeclImport:
			fmt.Fprintf(&b, "Import: %s\n", d.Source)
		case DeclClass:
			if len(d.Extends) > 0 {
				fmt.Fprintf(&b, "%sClass: %s (extends %s)\n", prefix, d.Name, d.Extends[0])
			} else {
				fmt.Fprintf(&b, "%sClass: %s\n", prefix, d.Name)
			}
		case DeclInterface:
			if len(d.Extends) > 0 {
				fmt.Fprintf(&b, "%sInterface: %s (extends %s)\n", prefix, d.Name, strings.Join(d.Extends, ", "))
			} else {
				fmt.Fprintf(&b, "%sInterface: %s\n", prefix, d.Name)
			}
		case DeclTypeAlias:
			fmt.Fprintf(&b, "%sType: %s\n", prefix, d.Name)
		case DeclFunction:
			fmt.Fprintf(&b, "%sFunction: %s(%s)\n", prefix, d.Name, d.Params)
		case DeclMethod:
			fmt.Fprintf(&b, "  %s: %s(%s)\n", d.Label, d.Name, d.Params)
		case DeclProperty:
			fmt.Fprintf(&b, "  %s: %s\n", d.Label, d.Name)
		case DeclVariable:
			fmt.Fprintf(&b, "%sVariable: %s %s\n", prefix, d.Keyword, d.Name)
		}
	}
	return b.String()
}
