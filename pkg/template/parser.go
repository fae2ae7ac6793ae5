package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseError reports a malformed composition directive.
type ParseError struct {
	Template  string
	Directive string
	Message   string
}

func (e *ParseError) Error() string {
	if e.Directive == "" {
		return fmt.Sprintf("template: parse %q: %s", e.Template, e.Message)
	}
	return fmt.Sprintf("template: parse %q: %s %s", e.Template, e.Directive, e.Message)
}

// Opening directives are only recognized together with their argument list,
// so stray text like an email address never starts a block.
var (
	directiveRe = regexp.MustCompile(`@(?:(component|slot|fill|each)\(|end(component|slot|fill|each)\b)`)
	nameRe      = regexp.MustCompile(`^[\w./-]+$`)                      // component, slot, and fill names
	argKeyRe    = regexp.MustCompile(`^[A-Za-z_]\w*$`)                  // key in key=value arguments
	pathRe      = regexp.MustCompile(`^[A-Za-z_]\w*(\.\w+)*$`)          // dotted lookup paths
	eachArgsRe  = regexp.MustCompile(`^([\w.]+)\s+as\s+([A-Za-z_]\w*)$`) // @each(users as user)
)

// Parser builds node trees from component sources. Slot identity tokens are
// assigned here, at parse time, and stay stable for the life of the tree.
type Parser struct {
	frags *Fragments
}

// NewParser creates a parser compiling text fragments with frags.
func NewParser(frags *Fragments) *Parser {
	return &Parser{frags: frags}
}

type parseFrame struct {
	directive string
	slot      *SlotNode
	comp      *ComponentNode
	fill      *FillNode
	each      *EachNode
	nodes     []Node
}

// Parse builds the node tree for one component source.
func (p *Parser) Parse(name, source string) (*Tree, error) {
	tree := &Tree{Name: name}
	slotOrdinal := 0

	stack := []*parseFrame{{}}
	top := func() *parseFrame { return stack[len(stack)-1] }

	appendText := func(text string) error {
		if text == "" {
			return nil
		}
		if top().comp != nil {
			if strings.TrimSpace(text) == "" {
				return nil
			}
			return &ParseError{Template: name, Directive: "@component", Message: "bodies may only contain @fill blocks"}
		}
		tmpl, err := p.frags.Compile(text)
		if err != nil {
			return fmt.Errorf("template: parse %q: %w", name, err)
		}
		top().nodes = append(top().nodes, &TextNode{tmpl: tmpl})
		return nil
	}

	pos := 0
	for {
		loc := directiveRe.FindStringSubmatchIndex(source[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		var keyword string
		opening := loc[2] >= 0
		if opening {
			keyword = source[pos+loc[2] : pos+loc[3]]
		} else {
			keyword = "end" + source[pos+loc[4]:pos+loc[5]]
		}

		if err := appendText(source[pos:start]); err != nil {
			return nil, err
		}

		// Inside a component call only fills and the closer are legal;
		// anything else would render into content the call discards.
		if top().comp != nil && keyword != "fill" && keyword != "endcomponent" {
			return nil, &ParseError{Template: name, Directive: "@" + keyword, Message: "not allowed inside @component; wrap it in a @fill block"}
		}

		next := end
		rawArgs := ""
		if opening {
			args, after, err := scanDirectiveArgs(name, "@"+keyword, source, end-1)
			if err != nil {
				return nil, err
			}
			rawArgs, next = args, after
		}

		switch keyword {
		case "slot":
			slotName, err := parseQuotedName(name, "@slot", rawArgs)
			if err != nil {
				return nil, err
			}
			node := &SlotNode{
				ID:   fmt.Sprintf("%s:%s#%d", name, slotName, slotOrdinal),
				Name: slotName,
			}
			slotOrdinal++
			tree.SlotIDs = append(tree.SlotIDs, node.ID)
			stack = append(stack, &parseFrame{directive: "@slot", slot: node})

		case "endslot":
			fr := top()
			if fr.slot == nil {
				return nil, &ParseError{Template: name, Directive: "@endslot", Message: "has no matching @slot"}
			}
			stack = stack[:len(stack)-1]
			fr.slot.Default = fr.nodes
			top().nodes = append(top().nodes, fr.slot)

		case "component":
			comp, err := parseComponentCall(name, rawArgs)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &parseFrame{directive: "@component", comp: comp})

		case "endcomponent":
			fr := top()
			if fr.comp == nil {
				return nil, &ParseError{Template: name, Directive: "@endcomponent", Message: "has no matching @component"}
			}
			stack = stack[:len(stack)-1]
			top().nodes = append(top().nodes, fr.comp)

		case "fill":
			if top().comp == nil {
				return nil, &ParseError{Template: name, Directive: "@fill", Message: "must appear inside @component"}
			}
			fillName, err := parseQuotedName(name, "@fill", rawArgs)
			if err != nil {
				return nil, err
			}
			for _, existing := range top().comp.Fills {
				if existing.Name == fillName {
					return nil, &ParseError{Template: name, Directive: "@fill", Message: fmt.Sprintf("duplicate fill %q", fillName)}
				}
			}
			stack = append(stack, &parseFrame{directive: "@fill", fill: &FillNode{Name: fillName}})

		case "endfill":
			fr := top()
			if fr.fill == nil {
				return nil, &ParseError{Template: name, Directive: "@endfill", Message: "has no matching @fill"}
			}
			stack = stack[:len(stack)-1]
			fr.fill.Body = fr.nodes
			top().comp.Fills = append(top().comp.Fills, fr.fill)

		case "each":
			each, err := parseEachArgs(name, rawArgs)
			if err != nil {
				return nil, err
			}
			stack = append(stack, &parseFrame{directive: "@each", each: each})

		case "endeach":
			fr := top()
			if fr.each == nil {
				return nil, &ParseError{Template: name, Directive: "@endeach", Message: "has no matching @each"}
			}
			stack = stack[:len(stack)-1]
			fr.each.Body = fr.nodes
			top().nodes = append(top().nodes, fr.each)
		}

		pos = next
	}

	if err := appendText(source[pos:]); err != nil {
		return nil, err
	}

	if len(stack) > 1 {
		fr := top()
		return nil, &ParseError{Template: name, Directive: fr.directive, Message: "missing " + closerFor(fr.directive)}
	}

	tree.Nodes = stack[0].nodes
	return tree, nil
}

func closerFor(directive string) string {
	return "@end" + strings.TrimPrefix(directive, "@")
}

// scanDirectiveArgs extracts the raw argument list, honoring quotes so
// parentheses inside string literals do not end the scan.
func scanDirectiveArgs(template, directive, source string, start int) (string, int, error) {
	if start >= len(source) || source[start] != '(' {
		return "", 0, &ParseError{Template: template, Directive: directive, Message: "is missing its argument list"}
	}

	var quote byte
	for i := start + 1; i < len(source); i++ {
		c := source[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case ')':
			return source[start+1 : i], i + 1, nil
		}
	}
	return "", 0, &ParseError{Template: template, Directive: directive, Message: "has an unterminated argument list"}
}

// splitArgs splits an argument list on commas outside quotes.
func splitArgs(raw string) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if quote != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case ',':
			parts = append(parts, raw[start:i])
			start = i + 1
		}
	}
	parts = append(parts, raw[start:])

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseQuotedName(template, directive, raw string) (string, error) {
	parts := splitArgs(raw)
	if len(parts) != 1 {
		return "", &ParseError{Template: template, Directive: directive, Message: "expects a single quoted name"}
	}
	name, ok := unquote(parts[0])
	if !ok || !nameRe.MatchString(name) {
		return "", &ParseError{Template: template, Directive: directive, Message: fmt.Sprintf("has an invalid name %s", parts[0])}
	}
	return name, nil
}

func parseComponentCall(template, raw string) (*ComponentNode, error) {
	parts := splitArgs(raw)
	if len(parts) == 0 {
		return nil, &ParseError{Template: template, Directive: "@component", Message: "expects a quoted component name"}
	}

	compName, ok := unquote(parts[0])
	if !ok || !nameRe.MatchString(compName) {
		return nil, &ParseError{Template: template, Directive: "@component", Message: fmt.Sprintf("has an invalid component name %s", parts[0])}
	}

	node := &ComponentNode{Name: compName}
	for _, part := range parts[1:] {
		key, rawValue, found := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !found || !argKeyRe.MatchString(key) {
			return nil, &ParseError{Template: template, Directive: "@component", Message: fmt.Sprintf("has a malformed argument %q, want key=value", part)}
		}
		value, err := parseArgValue(template, strings.TrimSpace(rawValue))
		if err != nil {
			return nil, err
		}
		node.Args = append(node.Args, Arg{Name: key, Value: value})
	}
	return node, nil
}

func parseArgValue(template, raw string) (ArgValue, error) {
	if value, ok := unquote(raw); ok {
		return LiteralValue(value), nil
	}
	switch raw {
	case "true":
		return LiteralValue(true), nil
	case "false":
		return LiteralValue(false), nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return LiteralValue(n), nil
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil {
		return LiteralValue(fl), nil
	}
	if pathRe.MatchString(raw) {
		return PathValue(raw), nil
	}
	return ArgValue{}, &ParseError{Template: template, Directive: "@component", Message: fmt.Sprintf("has an invalid argument value %q", raw)}
}

func parseEachArgs(template, raw string) (*EachNode, error) {
	m := eachArgsRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return nil, &ParseError{Template: template, Directive: "@each", Message: "expects the form @each(path as name)"}
	}
	return &EachNode{Path: m[1], Var: m[2]}, nil
}

func unquote(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return "", false
	}

	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, "\\") {
		return inner, true
	}
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		b.WriteByte(inner[i])
	}
	return b.String(), true
}
