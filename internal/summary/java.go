package summary

import (
	"fmt"
	"regexp"
	"strings"
)

// Heuristic structural scanner for Java-family sources. A single forward pass
// over lines tracks brace depth, comment state, and the enclosing type. The
// scanner is best-effort: any panic is recovered and reported as a failure so
// the caller falls back to generic truncation.

var (
	javaTypeRe    = regexp.MustCompile(`\b(class|interface)\s+([A-Za-z_$][\w$]*)`)
	javaExtendsRe = regexp.MustCompile(`\bextends\s+([A-Za-z_$][\w$.]*)`)
	javaMethodRe  = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*\(([^)]*)\)`)
)

// javaControlKeywords are statement keywords that would otherwise match the
// method/field patterns.
var javaControlKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "case": true, "catch": true, "try": true, "return": true,
	"throw": true, "new": true, "super": true, "this": true, "break": true,
	"continue": true, "synchronized": true, "assert": true,
}

// maxParamChars caps emitted method parameter lists.
const maxParamChars = 50

func summarizeJava(content string) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			out, ok = "", false
		}
	}()

	var b strings.Builder
	depth := 0
	inBlockComment := false
	inType := false
	currentType := ""
	emitted := 0

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)

		if inBlockComment {
			if strings.Contains(line, "*/") {
				inBlockComment = false
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "*") {
			continue
		}
		if i := strings.Index(line, "/*"); i >= 0 && !strings.Contains(line[i:], "*/") {
			inBlockComment = true
			continue
		}

		// Brace deltas are applied after the line is evaluated, so a
		// declaration is judged against the depth before its own braces.
		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		switch {
		case strings.HasPrefix(line, "package ") || strings.HasPrefix(line, "import "):
			b.WriteString(line)
			b.WriteByte('\n')
			emitted++

		case isJavaTypeDecl(line):
			m := javaTypeRe.FindStringSubmatch(line)
			currentType = m[2]
			inType = true
			label := "Class"
			if m[1] == "interface" {
				label = "Interface"
			}
			if ext := javaExtendsRe.FindStringSubmatch(line); ext != nil {
				fmt.Fprintf(&b, "%s: %s (extends %s)\n", label, currentType, ext[1])
			} else {
				fmt.Fprintf(&b, "%s: %s\n", label, currentType)
			}
			emitted++

		case inType && currentType != "" && depth > 0:
			if name, params, isMethod := matchJavaMethod(line); isMethod {
				fmt.Fprintf(&b, "  Method: %s(%s)\n", name, params)
				emitted++
			} else if name, isField := matchJavaField(line); isField {
				fmt.Fprintf(&b, "  Field: %s\n", name)
				emitted++
			}
		}

		depth += opens - closes
		if depth <= 0 {
			inType = false
			currentType = ""
		}
	}

	if emitted == 0 {
		return "", false
	}
	return b.String(), true
}

// isJavaTypeDecl recognizes class/interface declarations while rejecting
// lines with assignment or construction syntax, so local variables of type
// Class do not match.
func isJavaTypeDecl(line string) bool {
	if !javaTypeRe.MatchString(line) {
		return false
	}
	if strings.Contains(line, "=") || strings.Contains(line, "new ") {
		return false
	}
	return true
}

// matchJavaMethod recognizes a method declaration: a parenthesized signature
// that is neither a control-flow statement nor an assignment.
func matchJavaMethod(line string) (name, params string, ok bool) {
	if !strings.Contains(line, "(") || strings.Contains(line, "=") {
		return "", "", false
	}
	m := javaMethodRe.FindStringSubmatch(line)
	if m == nil || javaControlKeywords[m[1]] {
		return "", "", false
	}
	params = m[2]
	if len(params) > maxParamChars {
		params = params[:maxParamChars]
	}
	return m[1], params, true
}

// matchJavaField recognizes a field declaration: no parentheses or braces,
// terminated by a semicolon or carrying an initializer.
func matchJavaField(line string) (string, bool) {
	if strings.ContainsAny(line, "(){}") {
		return "", false
	}
	if !strings.HasSuffix(line, ";") && !strings.Contains(line, "=") {
		return "", false
	}

	decl := line
	if i := strings.Index(decl, "="); i >= 0 {
		decl = decl[:i]
	}
	decl = strings.TrimSuffix(strings.TrimSpace(decl), ";")
	fields := strings.Fields(decl)
	if len(fields) < 2 {
		// A bare identifier is a statement, not a declaration
		return "", false
	}
	name := fields[len(fields)-1]
	if javaControlKeywords[fields[0]] || javaControlKeywords[name] {
		return "", false
	}
	return name, true
}
