package grammar

import "github.com/dhamidi/syspro/syntax"

// Helper nonterminals. They group symbols, linearise operator precedence and
// wrap lists; the post-processor removes or renames all of them.
const (
	typeParameters syntax.Kind = syntax.KindFirstHelper + iota
	typeParameterList
	memberBlock
	memberList
	definitionList
	boundList
	modifierList
	parameterList
	typeAnnotation
	initializer
	statementBlock
	statementList
	elseClause
	simpleStatement
	assignmentTail
	nameExpression
	simpleName
	typeArguments
	typeArgumentList

	logicalOrLevel
	logicalOrTail
	logicalAndLevel
	logicalAndTail
	bitwiseOrLevel
	bitwiseOrTail
	bitwiseXorLevel
	bitwiseXorTail
	bitwiseAndLevel
	bitwiseAndTail
	equalityLevel
	equalityTail
	relationalLevel
	relationalTail
	relationalStep
	isStep
	shiftLevel
	shiftTail
	additiveLevel
	additiveTail
	multiplicativeLevel
	multiplicativeTail

	unary
	primary
	atom
	memberSuffix
	invocationSuffix
	indexSuffix
	argumentList
)

func term(kind syntax.Kind) Symbol { return Terminal{Kind: kind} }

func nonterm(kind syntax.Kind) Symbol { return Nonterminal{Kind: kind} }

func or(alternatives ...Symbol) Symbol { return Or{Alternatives: alternatives} }

func opt(inner Symbol) Symbol { return Question{Inner: inner} }

// slot is an optional that keeps its place in the tree when absent.
func slot(inner Symbol) Symbol { return Question{Inner: inner, PreserveEmpty: true} }

func list(inner Symbol) Symbol { return List{Inner: inner} }

func sepList(inner Symbol, separator syntax.Kind) Symbol {
	return SeparatedList{Inner: inner, Separator: separator}
}

var expression = nonterm(logicalOrLevel)

// level registers one binary precedence level: an operand of the next
// tighter level followed by any number of operator tails.
func level(b *Builder, name string, lvl, tail syntax.Kind, operand syntax.Kind, ops ...syntax.Kind) {
	var op Symbol
	if len(ops) == 1 {
		op = term(ops[0])
	} else {
		alternatives := make([]Symbol, len(ops))
		for i, k := range ops {
			alternatives[i] = term(k)
		}
		op = or(alternatives...)
	}
	b.Helper(lvl, name, TagChain, nonterm(operand), opt(nonterm(tail)))
	b.Helper(tail, name+"Tail", TagRemovable, op, nonterm(operand), opt(nonterm(tail)))
}

func newDefaultBuilder() *Builder {
	b := NewBuilder(syntax.KindSourceText)

	// Definitions
	b.Rule(syntax.KindSourceText, nonterm(definitionList))
	b.Helper(definitionList, "DefinitionList", TagList, list(nonterm(syntax.KindTypeDefinition)))

	b.Rule(syntax.KindTypeDefinition,
		or(term(syntax.KindClass), term(syntax.KindObject), term(syntax.KindInterface)),
		term(syntax.KindIdentifier),
		slot(nonterm(typeParameters)),
		slot(nonterm(syntax.KindTypeBound)),
		slot(nonterm(memberBlock)),
	)
	b.Helper(typeParameters, "TypeParameters", TagRemovable,
		term(syntax.KindLessThan), nonterm(typeParameterList), term(syntax.KindGreaterThan))
	b.Helper(typeParameterList, "TypeParameterList", TagSeparatedList,
		sepList(nonterm(syntax.KindTypeParameterDefinition), syntax.KindComma))
	b.Helper(memberList, "MemberList", TagList, list(or(
		nonterm(syntax.KindTypeDefinition),
		nonterm(syntax.KindFunctionDefinition),
		nonterm(syntax.KindVariableDefinition),
	)))
	b.Helper(memberBlock, "MemberBlock", TagRemovable,
		term(syntax.KindIndent),
		nonterm(memberList),
		term(syntax.KindDedent),
	)

	b.Rule(syntax.KindTypeBound, term(syntax.KindBound), nonterm(boundList))
	b.Helper(boundList, "BoundList", TagSeparatedList, sepList(nonterm(nameExpression), syntax.KindAmpersand))

	b.Rule(syntax.KindTypeParameterDefinition, term(syntax.KindIdentifier), slot(nonterm(syntax.KindTypeBound)))

	b.Rule(syntax.KindFunctionDefinition,
		slot(nonterm(modifierList)),
		term(syntax.KindDef),
		or(term(syntax.KindIdentifier), term(syntax.KindThis)),
		term(syntax.KindOpenParen),
		slot(nonterm(parameterList)),
		term(syntax.KindCloseParen),
		slot(nonterm(typeAnnotation)),
		slot(nonterm(statementBlock)),
	)
	b.Helper(modifierList, "ModifierList", TagList, list(or(
		term(syntax.KindAbstract),
		term(syntax.KindVirtual),
		term(syntax.KindOverride),
		term(syntax.KindNative),
	)))
	b.Helper(parameterList, "ParameterList", TagSeparatedList,
		sepList(nonterm(syntax.KindParameterDefinition), syntax.KindComma))
	b.Rule(syntax.KindParameterDefinition, term(syntax.KindIdentifier), term(syntax.KindColon), nonterm(nameExpression))

	b.Rule(syntax.KindVariableDefinition,
		or(term(syntax.KindVar), term(syntax.KindVal)),
		term(syntax.KindIdentifier),
		slot(nonterm(typeAnnotation)),
		slot(nonterm(initializer)),
	)
	b.Helper(typeAnnotation, "TypeAnnotation", TagRemovable, term(syntax.KindColon), nonterm(nameExpression))
	b.Helper(initializer, "Initializer", TagRemovable, term(syntax.KindEquals), expression)

	// Statements
	b.Helper(statementBlock, "StatementBlock", TagRemovable,
		term(syntax.KindIndent), nonterm(statementList), term(syntax.KindDedent))
	b.Helper(statementList, "StatementList", TagList, list(or(
		nonterm(syntax.KindVariableDefinitionStatement),
		nonterm(syntax.KindReturnStatement),
		nonterm(syntax.KindBreakStatement),
		nonterm(syntax.KindContinueStatement),
		nonterm(syntax.KindIfStatement),
		nonterm(syntax.KindWhileStatement),
		nonterm(syntax.KindForStatement),
		nonterm(simpleStatement),
	)))

	b.Rule(syntax.KindVariableDefinitionStatement, nonterm(syntax.KindVariableDefinition))
	b.Rule(syntax.KindReturnStatement, term(syntax.KindReturn), slot(expression))
	b.Rule(syntax.KindBreakStatement, term(syntax.KindBreak))
	b.Rule(syntax.KindContinueStatement, term(syntax.KindContinue))
	b.Rule(syntax.KindIfStatement,
		term(syntax.KindIf), expression, slot(nonterm(statementBlock)), slot(nonterm(elseClause)))
	b.Helper(elseClause, "ElseClause", TagRemovable, term(syntax.KindElse), slot(nonterm(statementBlock)))
	b.Rule(syntax.KindWhileStatement, term(syntax.KindWhile), expression, slot(nonterm(statementBlock)))
	b.Rule(syntax.KindForStatement,
		term(syntax.KindFor), nonterm(primary), term(syntax.KindIn), expression, slot(nonterm(statementBlock)))

	b.Helper(simpleStatement, "SimpleStatement", TagShape, expression, opt(nonterm(assignmentTail)))
	b.Shape(simpleStatement, Shape{Short: syntax.KindExpressionStatement, Long: syntax.KindAssignmentStatement})
	b.Helper(assignmentTail, "AssignmentTail", TagRemovable, term(syntax.KindEquals), expression)

	// Names
	b.Helper(nameExpression, "NameExpression", TagRemovable,
		or(nonterm(syntax.KindOptionNameExpression), nonterm(simpleName)))
	b.Rule(syntax.KindOptionNameExpression, term(syntax.KindQuestion), nonterm(nameExpression))
	b.Helper(simpleName, "SimpleName", TagShape, term(syntax.KindIdentifier), opt(nonterm(typeArguments)))
	b.Shape(simpleName, Shape{Short: syntax.KindIdentifierNameExpression, Long: syntax.KindGenericNameExpression})
	b.Helper(typeArguments, "TypeArguments", TagRemovable,
		term(syntax.KindLessThan), nonterm(typeArgumentList), term(syntax.KindGreaterThan))
	b.Helper(typeArgumentList, "TypeArgumentList", TagSeparatedList,
		sepList(nonterm(nameExpression), syntax.KindComma))

	// Binary expressions, loosest first
	level(b, "LogicalOr", logicalOrLevel, logicalOrTail, logicalAndLevel, syntax.KindBarBar)
	level(b, "LogicalAnd", logicalAndLevel, logicalAndTail, bitwiseOrLevel, syntax.KindAmpersandAmpersand)
	level(b, "BitwiseOr", bitwiseOrLevel, bitwiseOrTail, bitwiseXorLevel, syntax.KindBar)
	level(b, "BitwiseXor", bitwiseXorLevel, bitwiseXorTail, bitwiseAndLevel, syntax.KindCaret)
	level(b, "BitwiseAnd", bitwiseAndLevel, bitwiseAndTail, equalityLevel, syntax.KindAmpersand)
	level(b, "Equality", equalityLevel, equalityTail, relationalLevel,
		syntax.KindEqualsEquals, syntax.KindExclamationEquals)

	b.Helper(relationalLevel, "Relational", TagChain, nonterm(shiftLevel), opt(nonterm(relationalTail)))
	b.Helper(relationalTail, "RelationalTail", TagRemovable,
		or(nonterm(relationalStep), nonterm(isStep)), opt(nonterm(relationalTail)))
	b.Helper(relationalStep, "RelationalStep", TagRemovable,
		or(
			term(syntax.KindLessThan),
			term(syntax.KindLessThanEquals),
			term(syntax.KindGreaterThan),
			term(syntax.KindGreaterThanEquals),
		),
		nonterm(shiftLevel),
	)
	b.Helper(isStep, "IsStep", TagRemovable,
		term(syntax.KindIs), nonterm(nameExpression), slot(term(syntax.KindIdentifier)))

	level(b, "Shift", shiftLevel, shiftTail, additiveLevel,
		syntax.KindLessThanLessThan, syntax.KindGreaterThanGreaterThan)
	level(b, "Additive", additiveLevel, additiveTail, multiplicativeLevel,
		syntax.KindPlus, syntax.KindMinus)
	level(b, "Multiplicative", multiplicativeLevel, multiplicativeTail, unary,
		syntax.KindAsterisk, syntax.KindSlash, syntax.KindPercent)

	b.Operators(map[syntax.Kind]syntax.Kind{
		syntax.KindBarBar:                 syntax.KindLogicalOrExpression,
		syntax.KindAmpersandAmpersand:     syntax.KindLogicalAndExpression,
		syntax.KindBar:                    syntax.KindBitwiseOrExpression,
		syntax.KindCaret:                  syntax.KindBitwiseExclusiveOrExpression,
		syntax.KindAmpersand:              syntax.KindBitwiseAndExpression,
		syntax.KindEqualsEquals:           syntax.KindEqualsExpression,
		syntax.KindExclamationEquals:      syntax.KindNotEqualsExpression,
		syntax.KindLessThan:               syntax.KindLessThanExpression,
		syntax.KindLessThanEquals:         syntax.KindLessThanOrEqualExpression,
		syntax.KindGreaterThan:            syntax.KindGreaterThanExpression,
		syntax.KindGreaterThanEquals:      syntax.KindGreaterThanOrEqualExpression,
		syntax.KindIs:                     syntax.KindIsExpression,
		syntax.KindLessThanLessThan:       syntax.KindBitwiseLeftShiftExpression,
		syntax.KindGreaterThanGreaterThan: syntax.KindBitwiseRightShiftExpression,
		syntax.KindPlus:                   syntax.KindAddExpression,
		syntax.KindMinus:                  syntax.KindSubtractExpression,
		syntax.KindAsterisk:               syntax.KindMultiplyExpression,
		syntax.KindSlash:                  syntax.KindDivideExpression,
		syntax.KindPercent:                syntax.KindModuloExpression,
	})

	// Unary expressions
	b.Helper(unary, "Unary", TagRemovable, or(
		nonterm(syntax.KindLogicalNotExpression),
		nonterm(syntax.KindUnaryMinusExpression),
		nonterm(syntax.KindUnaryPlusExpression),
		nonterm(syntax.KindBitwiseNotExpression),
		nonterm(primary),
	))
	b.Rule(syntax.KindLogicalNotExpression, term(syntax.KindExclamation), nonterm(unary))
	b.Rule(syntax.KindUnaryMinusExpression, term(syntax.KindMinus), nonterm(unary))
	b.Rule(syntax.KindUnaryPlusExpression, term(syntax.KindPlus), nonterm(unary))
	b.Rule(syntax.KindBitwiseNotExpression, term(syntax.KindTilde), nonterm(unary))

	// Primary expressions
	b.Helper(primary, "Primary", TagPrimary, nonterm(atom), list(or(
		nonterm(memberSuffix),
		nonterm(invocationSuffix),
		nonterm(indexSuffix),
	)))
	b.Helper(atom, "Atom", TagRemovable, or(
		nonterm(syntax.KindThisExpression),
		nonterm(syntax.KindSuperExpression),
		nonterm(syntax.KindNullLiteralExpression),
		term(syntax.KindBoolean),
		nonterm(syntax.KindStringLiteralExpression),
		nonterm(syntax.KindRuneLiteralExpression),
		nonterm(syntax.KindIntegerLiteralExpression),
		nonterm(syntax.KindParenthesizedExpression),
		nonterm(syntax.KindIdentifierNameExpression),
	))
	b.Rule(syntax.KindThisExpression, term(syntax.KindThis))
	b.Rule(syntax.KindSuperExpression, term(syntax.KindSuper))
	b.Rule(syntax.KindNullLiteralExpression, term(syntax.KindNull))
	b.Rule(syntax.KindStringLiteralExpression, term(syntax.KindString))
	b.Rule(syntax.KindRuneLiteralExpression, term(syntax.KindRune))
	b.Rule(syntax.KindIntegerLiteralExpression, term(syntax.KindInteger))
	b.Rule(syntax.KindParenthesizedExpression,
		term(syntax.KindOpenParen), expression, term(syntax.KindCloseParen))
	b.Rule(syntax.KindIdentifierNameExpression, term(syntax.KindIdentifier))

	b.Helper(memberSuffix, "MemberSuffix", TagRemovable, term(syntax.KindDot), term(syntax.KindIdentifier))
	b.Helper(invocationSuffix, "InvocationSuffix", TagRemovable,
		term(syntax.KindOpenParen), nonterm(argumentList), term(syntax.KindCloseParen))
	b.Helper(indexSuffix, "IndexSuffix", TagRemovable,
		term(syntax.KindOpenBracket), expression, term(syntax.KindCloseBracket))
	b.Helper(argumentList, "ArgumentList", TagSeparatedList, sepList(expression, syntax.KindComma))
	b.Suffix(memberSuffix, syntax.KindMemberAccessExpression)
	b.Suffix(invocationSuffix, syntax.KindInvocationExpression)
	b.Suffix(indexSuffix, syntax.KindIndexExpression)

	return b
}
