package asciidoc

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// SafeMode gates which include targets resolve, per spec.md §6.3.
type SafeMode uint8

const (
	SafeModeUnsafe SafeMode = iota
	SafeModeSafe
	SafeModeServer
	SafeModeSecure
)

func ParseSafeMode(s string) SafeMode {
	switch strings.ToLower(s) {
	case "server":
		return SafeModeServer
	case "secure":
		return SafeModeSecure
	case "unsafe":
		return SafeModeUnsafe
	default:
		return SafeModeSafe
	}
}

// IncludeError reports why an include:: directive could not be resolved.
type IncludeError struct {
	Target string
	Reason string
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("cannot resolve include %q: %s", e.Target, e.Reason)
}

// IncludeResolver resolves an include:: directive's target to its
// contents. Implementations must not rewrite bytes; tag selection and
// line filtering happen here in the preprocessor, not in the resolver
// (spec.md §6.3).
type IncludeResolver interface {
	Resolve(currentPath, target string, mode SafeMode) (resolvedPath string, content []byte, err error)
}

// TagSpec is one entry of an include tag-selection list: a bare tag name,
// its negation, or the wildcards "*"/"**" and their negations.
type TagSpec struct {
	Name    string
	Negate  bool
	Wild    bool // "*" or "**"
	Recurse bool // "**" (recurse into nested regions) vs "*" (top-level only)
}

// ParseTagSpecs parses the comma-separated value of an include::[tags=...]
// or [tag=...] attribute into an ordered list of TagSpecs.
func ParseTagSpecs(value string) []TagSpec {
	var out []TagSpec
	for _, raw := range strings.Split(value, ";") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			spec := TagSpec{}
			if strings.HasPrefix(part, "!") {
				spec.Negate = true
				part = part[1:]
			}
			switch part {
			case "**":
				spec.Wild, spec.Recurse = true, true
			case "*":
				spec.Wild = true
			default:
				spec.Name = part
			}
			out = append(out, spec)
		}
	}
	return out
}

// SelectTags folds a TagSpec list over the closed/open tag regions found
// in content (demarcated by "tag::NAME[]" / "end::NAME[]" comment lines)
// and returns the filtered content. Later specs override earlier ones for
// the same name; "**"/"!**" set the default for regions with no more
// specific entry, matching the any/all folding algebra of
// original_source's tags.rs.
func SelectTags(content []byte, specs []TagSpec) []byte {
	if len(specs) == 0 {
		return content
	}
	defaultInclude := false
	hasWild, hasPositive := false, false
	included := map[string]bool{}
	for _, s := range specs {
		if !s.Negate {
			hasPositive = true
		}
		switch {
		case s.Wild:
			hasWild = true
			defaultInclude = !s.Negate
		default:
			included[s.Name] = !s.Negate
		}
	}
	if !hasWild && !hasPositive {
		defaultInclude = true // only negated names: keep everything else
	}

	var out bytes.Buffer
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	active := []bool{defaultInclude}
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, "tag::"):
			name := tagNameFrom(trimmed, "tag::")
			want, ok := included[name]
			if !ok {
				want = defaultInclude
			}
			active = append(active, want)
			continue
		case strings.Contains(trimmed, "end::"):
			if len(active) > 1 {
				active = active[:len(active)-1]
			}
			continue
		}
		if active[len(active)-1] {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	return out.Bytes()
}

func tagNameFrom(line, marker string) string {
	i := strings.Index(line, marker)
	if i < 0 {
		return ""
	}
	rest := line[i+len(marker):]
	if j := strings.IndexByte(rest, '['); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

// condState tracks nested ifdef/ifndef blocks during the conditional
// preprocessing pass.
type condState struct {
	active  bool // true if this frame's own condition holds
	visible bool // true if this frame and all enclosing frames are active
}

// PreprocessConditionals evaluates ifdef::/ifndef::/ifeval::/endif::
// directives against attrs, dropping lines in inactive regions. This
// runs before block parsing (spec.md groups conditional preprocessing
// with macro/include handling under "preprocessor"); attribute-reference
// expansion itself stays lazy and happens per inline-parsed node, not
// here, so `{attr}` inside a literal block is still preserved verbatim.
func PreprocessConditionals(src []byte, attrs map[string]string) []byte {
	var out bytes.Buffer
	stack := []condState{{active: true, visible: true}}
	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		top := stack[len(stack)-1]

		switch {
		case strings.HasPrefix(trimmed, "ifdef::") || strings.HasPrefix(trimmed, "ifndef::"):
			negate := strings.HasPrefix(trimmed, "ifndef::")
			marker := "ifdef::"
			if negate {
				marker = "ifndef::"
			}
			cond := evalIfdefCondition(trimmed, marker, attrs, negate)
			stack = append(stack, condState{active: cond, visible: top.visible && cond})
			continue
		case strings.HasPrefix(trimmed, "ifeval::"):
			cond := evalIfevalCondition(trimmed, attrs)
			stack = append(stack, condState{active: cond, visible: top.visible && cond})
			continue
		case strings.HasPrefix(trimmed, "endif::"):
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if top.visible {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}
	return out.Bytes()
}

// evalIfdefCondition parses "ifdef::name1+name2[]" (AND, '+') or
// "ifdef::name1,name2[]" (OR, ',') and evaluates against attrs.
func evalIfdefCondition(line, marker string, attrs map[string]string, negate bool) bool {
	names := conditionNames(line, marker)
	if len(names) == 0 {
		return false
	}
	var result bool
	joined := names[0]
	var parts []string
	var op string
	switch {
	case strings.Contains(joined, "+"):
		parts, op = strings.Split(joined, "+"), "and"
	default:
		parts, op = strings.Split(joined, ","), "or"
	}
	if op == "and" {
		result = true
		for _, p := range parts {
			_, ok := attrs[strings.TrimSpace(p)]
			result = result && ok
		}
	} else {
		result = false
		for _, p := range parts {
			_, ok := attrs[strings.TrimSpace(p)]
			result = result || ok
		}
	}
	if negate {
		return !result
	}
	return result
}

func conditionNames(line, marker string) []string {
	i := strings.Index(line, marker)
	if i < 0 {
		return nil
	}
	rest := line[i+len(marker):]
	open := strings.IndexByte(rest, '[')
	if open < 0 {
		return []string{rest}
	}
	return []string{rest[:open]}
}

// evalIfevalCondition evaluates the restricted "ifeval::[{attr} OP value]"
// comparison grammar (==, !=, <, >, <=, >=) against attrs; anything it
// cannot parse evaluates false rather than failing the whole document,
// matching the preprocessor's recoverable-error policy (spec.md §4.D
// "Failure policy").
func evalIfevalCondition(line string, attrs map[string]string) bool {
	open, close := strings.IndexByte(line, '['), strings.LastIndexByte(line, ']')
	if open < 0 || close < 0 || close <= open {
		return false
	}
	expr := strings.TrimSpace(line[open+1 : close])
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if idx := strings.Index(expr, op); idx >= 0 {
			lhs := expandInlineAttrRefs(strings.TrimSpace(expr[:idx]), attrs)
			rhs := expandInlineAttrRefs(strings.TrimSpace(expr[idx+len(op):]), attrs)
			return compareValues(lhs, rhs, op)
		}
	}
	return false
}

func compareValues(lhs, rhs, op string) bool {
	switch op {
	case "==":
		return lhs == rhs
	case "!=":
		return lhs != rhs
	case "<=":
		return lhs <= rhs
	case ">=":
		return lhs >= rhs
	default:
		return lhs < rhs && op == "<" || lhs > rhs && op == ">"
	}
}

// expandInlineAttrRefs performs a single pass of "{name}" substitution
// against attrs and trims surrounding double quotes. It is used eagerly
// for ifeval:: operands and for attribute-entry values.
func expandInlineAttrRefs(s string, attrs map[string]string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '{' {
			if j := strings.IndexByte(s[i:], '}'); j > 0 {
				name := s[i+1 : i+j]
				if v, ok := attrs[name]; ok {
					out.WriteString(v)
					i += j + 1
					continue
				}
			}
		}
		out.WriteByte(s[i])
		i++
	}
	return strings.Trim(out.String(), "\"")
}
