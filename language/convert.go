package language

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// conversionError marks the node that made a statement unusable
type conversionError struct {
	kind      FailureKind
	construct string
	message   string
	node      *sitter.Node
}

func (e *conversionError) Error() string { return e.message }

type converter struct {
	identifier string
	src        []byte
	failures   []*Failure
}

func (c *converter) unsupported(n *sitter.Node, construct string) error {
	return &conversionError{kind: UnsupportedConstruct, construct: construct, message: construct + " is not supported", node: n}
}

func (c *converter) syntaxError(n *sitter.Node, format string, args ...interface{}) error {
	return &conversionError{kind: ParsingError, message: fmt.Sprintf(format, args...), node: n}
}

func (c *converter) record(err error) {
	convErr, ok := err.(*conversionError)
	if !ok {
		c.failures = append(c.failures, &Failure{Kind: ParsingError, Message: err.Error()})
		return
	}
	c.failures = append(c.failures, &Failure{
		Kind:      convErr.kind,
		Construct: convErr.construct,
		Message:   convErr.message,
		Source:    c.source(convErr.node),
	})
}

func (c *converter) source(n *sitter.Node) SourceData {
	return c.span(n, n)
}

func (c *converter) span(start, end *sitter.Node) SourceData {
	if start == nil || end == nil {
		return SourceData{Identifier: c.identifier}
	}
	return SourceData{
		Identifier:  c.identifier,
		StartOffset: int(start.StartByte()),
		EndOffset:   int(end.EndByte()),
		StartLine:   int(start.StartPoint().Row) + 1,
		StartColumn: int(start.StartPoint().Column) + 1,
		EndLine:     int(end.EndPoint().Row) + 1,
		EndColumn:   int(end.EndPoint().Column) + 1,
	}
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_comment", "multiline_comment", "block_comment", "shebang_line":
		return true
	}
	return false
}

// namedChildren returns named children without comments
func namedChildren(n *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || isComment(child) {
			continue
		}
		result = append(result, child)
	}
	return result
}

// children returns every child, named or not, without comments
func children(n *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || isComment(child) {
			continue
		}
		result = append(result, child)
	}
	return result
}

// firstError finds the innermost error or missing node to anchor a syntax failure
func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == "ERROR" || child.IsMissing() || child.HasError() {
			return firstError(child)
		}
	}
	return n
}

func (c *converter) errorAt(n *sitter.Node) error {
	errNode := firstError(n)
	if errNode.IsMissing() {
		return c.syntaxError(errNode, "missing %v", errNode.Type())
	}
	snippet := strings.TrimSpace(c.text(errNode))
	if len(snippet) > 32 {
		snippet = snippet[:32] + "..."
	}
	if snippet == "" {
		return c.syntaxError(errNode, "syntax error")
	}
	return c.syntaxError(errNode, "syntax error near %q", snippet)
}

func (c *converter) sourceFile(root *sitter.Node) *Result {
	result := &Result{}
	block := &Block{node: node{Src: c.source(root)}}
	for _, child := range namedChildren(root) {
		switch child.Type() {
		case "import_list":
			for _, header := range namedChildren(child) {
				c.importHeader(result, header)
			}
		case "import_header":
			c.importHeader(result, child)
		case "package_header":
			c.record(c.unsupported(child, "package header"))
		case "file_annotation":
			c.record(c.unsupported(child, "file annotation"))
		default:
			if statement, err := c.statement(child); err != nil {
				c.record(err)
			} else {
				block.Statements = append(block.Statements, statement)
			}
		}
	}
	result.TopLevelBlock = block
	result.Failures = c.failures
	return result
}

func (c *converter) importHeader(result *Result, n *sitter.Node) {
	if n.Type() != "import_header" {
		if n.Type() == "ERROR" || n.HasError() {
			c.record(c.errorAt(n))
		}
		return
	}
	if n.HasError() {
		c.record(c.errorAt(n))
		return
	}
	var chain AccessChain
	for _, child := range children(n) {
		switch child.Type() {
		case "identifier":
			for _, part := range namedChildren(child) {
				chain.Names = append(chain.Names, c.text(part))
			}
		case "import_alias":
			c.record(c.unsupported(child, "import alias"))
			return
		case "wildcard_import", "*", ".*":
			c.record(c.unsupported(n, "wildcard import"))
			return
		}
	}
	if len(chain.Names) == 0 {
		c.record(c.syntaxError(n, "import without a name"))
		return
	}
	result.Imports = append(result.Imports, &Import{node: node{Src: c.source(n)}, Name: chain})
}

func (c *converter) block(n *sitter.Node, statements []*sitter.Node) *Block {
	block := &Block{node: node{Src: c.source(n)}}
	for _, child := range statements {
		statement, err := c.statement(child)
		if err != nil {
			c.record(err)
			continue
		}
		block.Statements = append(block.Statements, statement)
	}
	return block
}

// errorOutsideLambda reports syntax errors that are not confined to a lambda body;
// errors inside a lambda only drop the enclosing lambda statement.
func errorOutsideLambda(n *sitter.Node) bool {
	if n.Type() == "ERROR" || n.IsMissing() {
		return true
	}
	if n.Type() == "statements" {
		return false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) && errorOutsideLambda(child) {
			return true
		}
	}
	return false
}

// isValue reports whether n can start an expression; null is an anonymous token in the grammar
func isValue(n *sitter.Node) bool {
	return n.IsNamed() || n.Type() == "null"
}

func (c *converter) statement(n *sitter.Node) (Element, error) {
	if n.HasError() && errorOutsideLambda(n) {
		return nil, c.errorAt(n)
	}
	switch n.Type() {
	case "property_declaration":
		return c.localValue(n)
	case "assignment":
		return c.assignment(n)
	case "class_declaration", "object_declaration", "function_declaration", "type_alias", "interface_declaration":
		return nil, c.unsupported(n, "declaration")
	case "for_statement", "while_statement", "do_while_statement":
		return nil, c.unsupported(n, "loop")
	case "label", "annotation":
		return nil, c.unsupported(n, n.Type())
	}
	return c.expression(n)
}

func (c *converter) localValue(n *sitter.Node) (Element, error) {
	local := &LocalValue{node: node{Src: c.source(n)}}
	afterEquals := false
	for _, child := range children(n) {
		if afterEquals && isValue(child) {
			rhs, err := c.expression(child)
			if err != nil {
				return nil, err
			}
			local.RHS = rhs
			break
		}
		switch child.Type() {
		case "modifiers":
			return nil, c.unsupported(child, "modifiers")
		case "binding_pattern_kind", "val", "var":
			if strings.TrimSpace(c.text(child)) == "var" {
				return nil, c.unsupported(child, "var")
			}
		case "type_parameters", "type_constraints":
			return nil, c.unsupported(child, "type parameters")
		case "multi_variable_declaration":
			return nil, c.unsupported(child, "destructuring declaration")
		case "property_delegate":
			return nil, c.unsupported(child, "property delegate")
		case "getter", "setter":
			return nil, c.unsupported(child, "property accessor")
		case "variable_declaration":
			parts := namedChildren(child)
			if len(parts) == 0 {
				return nil, c.syntaxError(child, "missing value name")
			}
			if len(parts) > 1 {
				return nil, c.unsupported(parts[1], "explicit type")
			}
			local.Name = c.text(parts[0])
		case "=":
			afterEquals = true
		}
	}
	if local.Name == "" {
		return nil, c.syntaxError(n, "missing value name")
	}
	if local.RHS == nil {
		return nil, c.unsupported(n, "value without initializer")
	}
	return local, nil
}

func (c *converter) assignment(n *sitter.Node) (Element, error) {
	parts := children(n)
	if len(parts) != 3 {
		return nil, c.syntaxError(n, "malformed assignment")
	}
	if operator := c.text(parts[1]); operator != "=" {
		return nil, c.unsupported(parts[1], "compound assignment "+operator)
	}
	lhs, err := c.expression(parts[0])
	if err != nil {
		return nil, err
	}
	target, ok := lhs.(*PropertyAccess)
	if !ok {
		return nil, c.unsupported(parts[0], "assignment target")
	}
	rhs, err := c.expression(parts[2])
	if err != nil {
		return nil, err
	}
	return &Assignment{node: node{Src: c.source(n)}, LHS: target, RHS: rhs}, nil
}

func (c *converter) expression(n *sitter.Node) (Expr, error) {
	if n.Type() == "ERROR" || n.IsMissing() {
		return nil, c.errorAt(n)
	}
	src := c.source(n)
	switch n.Type() {
	case "simple_identifier":
		return &PropertyAccess{expr: expr{node{Src: src}}, Name: c.text(n)}, nil
	case "navigation_expression", "call_expression", "directly_assignable_expression":
		return c.chain(n)
	case "parenthesized_expression":
		var inner []*sitter.Node
		for _, child := range children(n) {
			if isValue(child) {
				inner = append(inner, child)
			}
		}
		if len(inner) != 1 {
			return nil, c.syntaxError(n, "malformed parenthesized expression")
		}
		return c.expression(inner[0])
	case "this_expression":
		if c.text(n) != "this" {
			return nil, c.unsupported(n, "labeled this")
		}
		return &This{expr: expr{node{Src: src}}}, nil
	case "null", "null_literal":
		return &Null{expr: expr{node{Src: src}}}, nil
	case "boolean_literal":
		return &BooleanLiteral{expr: expr{node{Src: src}}, Value: c.text(n) == "true"}, nil
	case "integer_literal", "hex_literal", "bin_literal", "long_literal":
		return c.integer(n, c.text(n), src)
	case "string_literal", "line_string_literal", "multi_line_string_literal", "multiline_string_literal":
		value, err := unquote(c.text(n))
		if err != nil {
			if err == errStringTemplate {
				return nil, c.unsupported(n, "string template")
			}
			return nil, c.syntaxError(n, "%v", err)
		}
		return &StringLiteral{expr: expr{node{Src: src}}, Value: value}, nil
	case "prefix_expression":
		return c.prefix(n)
	case "real_literal", "character_literal", "unsigned_literal":
		return nil, c.unsupported(n, strings.TrimSuffix(n.Type(), "_literal")+" literal")
	case "lambda_literal", "annotated_lambda", "anonymous_function":
		return nil, c.unsupported(n, "lambda expression")
	case "indexing_expression":
		return nil, c.unsupported(n, "indexing")
	case "if_expression", "when_expression", "try_expression", "jump_expression", "collection_literal", "object_literal", "callable_reference":
		return nil, c.unsupported(n, strings.TrimSuffix(n.Type(), "_expression"))
	}
	if strings.HasSuffix(n.Type(), "_expression") {
		return nil, c.unsupported(n, "operator")
	}
	return nil, c.unsupported(n, n.Type())
}

func (c *converter) prefix(n *sitter.Node) (Expr, error) {
	parts := children(n)
	if len(parts) != 2 || c.text(parts[0]) != "-" {
		return nil, c.unsupported(n, "operator")
	}
	switch parts[1].Type() {
	case "integer_literal", "hex_literal", "bin_literal", "long_literal":
		return c.integer(n, "-"+c.text(parts[1]), c.source(n))
	}
	return nil, c.unsupported(n, "operator")
}

func (c *converter) integer(n *sitter.Node, text string, src SourceData) (Expr, error) {
	value, isLong, err := parseInteger(text)
	if err != nil {
		return nil, c.syntaxError(n, "invalid integer literal %v: %v", text, err)
	}
	if isLong {
		return &LongLiteral{expr: expr{node{Src: src}}, Value: value}, nil
	}
	return &IntLiteral{expr: expr{node{Src: src}}, Value: int32(value)}, nil
}

// chain folds a primary expression followed by navigation and call suffixes.
// The grammar nests some chains and flattens others, both shapes end up here.
func (c *converter) chain(n *sitter.Node) (Expr, error) {
	parts := namedChildren(n)
	if len(parts) == 0 {
		return nil, c.syntaxError(n, "empty expression")
	}
	head, err := c.expression(parts[0])
	if err != nil {
		return nil, err
	}
	for _, suffix := range parts[1:] {
		src := c.span(parts[0], suffix)
		switch suffix.Type() {
		case "navigation_suffix":
			text := strings.TrimSpace(c.text(suffix))
			switch {
			case strings.HasPrefix(text, "?."):
				return nil, c.unsupported(suffix, "safe call")
			case strings.HasPrefix(text, "::"):
				return nil, c.unsupported(suffix, "callable reference")
			}
			names := namedChildren(suffix)
			if len(names) != 1 || names[0].Type() != "simple_identifier" {
				return nil, c.unsupported(suffix, "member access")
			}
			head = &PropertyAccess{expr: expr{node{Src: src}}, Receiver: head, Name: c.text(names[0])}
		case "call_suffix":
			access, ok := head.(*PropertyAccess)
			if !ok {
				return nil, c.unsupported(suffix, "call on expression")
			}
			args, err := c.callSuffix(suffix)
			if err != nil {
				return nil, err
			}
			head = &FunctionCall{expr: expr{node{Src: src}}, Receiver: access.Receiver, Name: access.Name, Args: args}
		case "indexing_suffix":
			return nil, c.unsupported(suffix, "indexing")
		case "type_arguments":
			return nil, c.unsupported(suffix, "type arguments")
		default:
			return nil, c.unsupported(suffix, "operator")
		}
	}
	return head, nil
}

func (c *converter) callSuffix(n *sitter.Node) ([]FunctionArgument, error) {
	var args []FunctionArgument
	for _, part := range namedChildren(n) {
		switch part.Type() {
		case "type_arguments":
			return nil, c.unsupported(part, "type arguments")
		case "value_arguments":
			for _, arg := range namedChildren(part) {
				converted, err := c.valueArgument(arg)
				if err != nil {
					return nil, err
				}
				args = append(args, converted)
			}
		case "annotated_lambda":
			lambda, err := c.lambda(part)
			if err != nil {
				return nil, err
			}
			args = append(args, lambda)
		default:
			return nil, c.unsupported(part, part.Type())
		}
	}
	return args, nil
}

func (c *converter) valueArgument(n *sitter.Node) (FunctionArgument, error) {
	if n.Type() != "value_argument" {
		return nil, c.syntaxError(n, "unexpected %v in arguments", n.Type())
	}
	parts := children(n)
	name := ""
	var value *sitter.Node
	for i, part := range parts {
		switch {
		case part.Type() == "=" && i > 0:
			name = c.text(parts[i-1])
		case part.Type() == "*":
			return nil, c.unsupported(part, "spread argument")
		case part.Type() == "annotation":
			return nil, c.unsupported(part, "annotation")
		case isValue(part):
			value = part
		}
	}
	if value == nil {
		return nil, c.syntaxError(n, "missing argument value")
	}
	e, err := c.expression(value)
	if err != nil {
		return nil, err
	}
	if name != "" {
		return &NamedArgument{node: node{Src: c.source(n)}, Name: name, Expr: e}, nil
	}
	return &PositionalArgument{node: node{Src: c.source(n)}, Expr: e}, nil
}

func (c *converter) lambda(n *sitter.Node) (*LambdaArgument, error) {
	var literal *sitter.Node
	for _, part := range namedChildren(n) {
		switch part.Type() {
		case "lambda_literal":
			literal = part
		case "label":
			return nil, c.unsupported(part, "labeled lambda")
		case "annotation":
			return nil, c.unsupported(part, "annotation")
		}
	}
	if n.Type() == "lambda_literal" {
		literal = n
	}
	if literal == nil {
		return nil, c.syntaxError(n, "missing lambda body")
	}
	for _, part := range children(literal) {
		if part.IsMissing() {
			return nil, c.errorAt(part)
		}
	}
	var statements []*sitter.Node
	for _, part := range namedChildren(literal) {
		switch part.Type() {
		case "lambda_parameters":
			return nil, c.unsupported(part, "lambda parameters")
		case "statements":
			statements = append(statements, namedChildren(part)...)
		default:
			statements = append(statements, part)
		}
	}
	return &LambdaArgument{node: node{Src: c.source(n)}, Block: c.block(literal, statements)}, nil
}
