package syntax

import "strings"

// Kind identifies both token kinds (terminals) and node kinds (nonterminals).
// Terminal kinds come first so that sets of them fit a small bitset.
type Kind int

const (
	KindBad Kind = iota
	KindIndent
	KindDedent
	KindIdentifier
	KindBoolean
	KindInteger
	KindRune
	KindString
	KindEOF

	// Keywords
	KindAbstract
	KindBreak
	KindClass
	KindContinue
	KindDef
	KindElse
	KindFor
	KindIf
	KindIn
	KindInterface
	KindIs
	KindNative
	KindNull
	KindObject
	KindOverride
	KindReturn
	KindSuper
	KindThis
	KindVal
	KindVar
	KindVirtual
	KindWhile

	// Symbols
	KindDot
	KindColon
	KindComma
	KindPlus
	KindMinus
	KindAsterisk
	KindSlash
	KindPercent
	KindExclamation
	KindTilde
	KindAmpersand
	KindBar
	KindAmpersandAmpersand
	KindBarBar
	KindCaret
	KindLessThan
	KindLessThanEquals
	KindGreaterThan
	KindGreaterThanEquals
	KindLessThanLessThan
	KindGreaterThanGreaterThan
	KindOpenParen
	KindCloseParen
	KindOpenBracket
	KindCloseBracket
	KindEquals
	KindEqualsEquals
	KindExclamationEquals
	KindQuestion
	KindBound

	kindTerminalEnd

	// Definitions
	KindSourceText
	KindTypeDefinition
	KindFunctionDefinition
	KindVariableDefinition
	KindTypeParameterDefinition
	KindParameterDefinition
	KindTypeBound

	// Generic wrappers
	KindList
	KindSeparatedList

	// Statements
	KindVariableDefinitionStatement
	KindAssignmentStatement
	KindExpressionStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindIfStatement
	KindWhileStatement
	KindForStatement

	// Binary expressions
	KindLogicalOrExpression
	KindLogicalAndExpression
	KindBitwiseOrExpression
	KindBitwiseExclusiveOrExpression
	KindBitwiseAndExpression
	KindEqualsExpression
	KindNotEqualsExpression
	KindLessThanExpression
	KindLessThanOrEqualExpression
	KindGreaterThanExpression
	KindGreaterThanOrEqualExpression
	KindIsExpression
	KindBitwiseLeftShiftExpression
	KindBitwiseRightShiftExpression
	KindAddExpression
	KindSubtractExpression
	KindMultiplyExpression
	KindDivideExpression
	KindModuloExpression

	// Unary expressions
	KindLogicalNotExpression
	KindUnaryPlusExpression
	KindUnaryMinusExpression
	KindBitwiseNotExpression

	// Primary expressions
	KindParenthesizedExpression
	KindThisExpression
	KindSuperExpression
	KindNullLiteralExpression
	KindTrueLiteralExpression
	KindFalseLiteralExpression
	KindStringLiteralExpression
	KindRuneLiteralExpression
	KindIntegerLiteralExpression
	KindMemberAccessExpression
	KindInvocationExpression
	KindIndexExpression

	// Name expressions
	KindIdentifierNameExpression
	KindOptionNameExpression
	KindGenericNameExpression

	// KindFirstHelper is the first kind reserved for grammar-internal helper
	// nonterminals. Helper kinds never appear in a post-processed tree.
	KindFirstHelper Kind = 1000
)

// TerminalCount is the number of terminal kinds. Every terminal kind k
// satisfies 0 <= k < TerminalCount.
const TerminalCount = int(kindTerminalEnd)

var kindNames = map[Kind]string{
	KindBad:        "Bad",
	KindIndent:     "Indent",
	KindDedent:     "Dedent",
	KindIdentifier: "Identifier",
	KindBoolean:    "Boolean",
	KindInteger:    "Integer",
	KindRune:       "Rune",
	KindString:     "String",
	KindEOF:        "EOF",

	KindAbstract:  "Abstract",
	KindBreak:     "Break",
	KindClass:     "Class",
	KindContinue:  "Continue",
	KindDef:       "Def",
	KindElse:      "Else",
	KindFor:       "For",
	KindIf:        "If",
	KindIn:        "In",
	KindInterface: "Interface",
	KindIs:        "Is",
	KindNative:    "Native",
	KindNull:      "Null",
	KindObject:    "Object",
	KindOverride:  "Override",
	KindReturn:    "Return",
	KindSuper:     "Super",
	KindThis:      "This",
	KindVal:       "Val",
	KindVar:       "Var",
	KindVirtual:   "Virtual",
	KindWhile:     "While",

	KindDot:                    "Dot",
	KindColon:                  "Colon",
	KindComma:                  "Comma",
	KindPlus:                   "Plus",
	KindMinus:                  "Minus",
	KindAsterisk:               "Asterisk",
	KindSlash:                  "Slash",
	KindPercent:                "Percent",
	KindExclamation:            "Exclamation",
	KindTilde:                  "Tilde",
	KindAmpersand:              "Ampersand",
	KindBar:                    "Bar",
	KindAmpersandAmpersand:     "AmpersandAmpersand",
	KindBarBar:                 "BarBar",
	KindCaret:                  "Caret",
	KindLessThan:               "LessThan",
	KindLessThanEquals:         "LessThanEquals",
	KindGreaterThan:            "GreaterThan",
	KindGreaterThanEquals:      "GreaterThanEquals",
	KindLessThanLessThan:       "LessThanLessThan",
	KindGreaterThanGreaterThan: "GreaterThanGreaterThan",
	KindOpenParen:              "OpenParen",
	KindCloseParen:             "CloseParen",
	KindOpenBracket:            "OpenBracket",
	KindCloseBracket:           "CloseBracket",
	KindEquals:                 "Equals",
	KindEqualsEquals:           "EqualsEquals",
	KindExclamationEquals:      "ExclamationEquals",
	KindQuestion:               "Question",
	KindBound:                  "Bound",

	KindSourceText:              "SourceText",
	KindTypeDefinition:          "TypeDefinition",
	KindFunctionDefinition:      "FunctionDefinition",
	KindVariableDefinition:      "VariableDefinition",
	KindTypeParameterDefinition: "TypeParameterDefinition",
	KindParameterDefinition:     "ParameterDefinition",
	KindTypeBound:               "TypeBound",

	KindList:          "List",
	KindSeparatedList: "SeparatedList",

	KindVariableDefinitionStatement: "VariableDefinitionStatement",
	KindAssignmentStatement:         "AssignmentStatement",
	KindExpressionStatement:         "ExpressionStatement",
	KindReturnStatement:             "ReturnStatement",
	KindBreakStatement:              "BreakStatement",
	KindContinueStatement:           "ContinueStatement",
	KindIfStatement:                 "IfStatement",
	KindWhileStatement:              "WhileStatement",
	KindForStatement:                "ForStatement",

	KindLogicalOrExpression:          "LogicalOrExpression",
	KindLogicalAndExpression:         "LogicalAndExpression",
	KindBitwiseOrExpression:          "BitwiseOrExpression",
	KindBitwiseExclusiveOrExpression: "BitwiseExclusiveOrExpression",
	KindBitwiseAndExpression:         "BitwiseAndExpression",
	KindEqualsExpression:             "EqualsExpression",
	KindNotEqualsExpression:          "NotEqualsExpression",
	KindLessThanExpression:           "LessThanExpression",
	KindLessThanOrEqualExpression:    "LessThanOrEqualExpression",
	KindGreaterThanExpression:        "GreaterThanExpression",
	KindGreaterThanOrEqualExpression: "GreaterThanOrEqualExpression",
	KindIsExpression:                 "IsExpression",
	KindBitwiseLeftShiftExpression:   "BitwiseLeftShiftExpression",
	KindBitwiseRightShiftExpression:  "BitwiseRightShiftExpression",
	KindAddExpression:                "AddExpression",
	KindSubtractExpression:           "SubtractExpression",
	KindMultiplyExpression:           "MultiplyExpression",
	KindDivideExpression:             "DivideExpression",
	KindModuloExpression:             "ModuloExpression",

	KindLogicalNotExpression: "LogicalNotExpression",
	KindUnaryPlusExpression:  "UnaryPlusExpression",
	KindUnaryMinusExpression: "UnaryMinusExpression",
	KindBitwiseNotExpression: "BitwiseNotExpression",

	KindParenthesizedExpression:  "ParenthesizedExpression",
	KindThisExpression:           "ThisExpression",
	KindSuperExpression:          "SuperExpression",
	KindNullLiteralExpression:    "NullLiteralExpression",
	KindTrueLiteralExpression:    "TrueLiteralExpression",
	KindFalseLiteralExpression:   "FalseLiteralExpression",
	KindStringLiteralExpression:  "StringLiteralExpression",
	KindRuneLiteralExpression:    "RuneLiteralExpression",
	KindIntegerLiteralExpression: "IntegerLiteralExpression",
	KindMemberAccessExpression:   "MemberAccessExpression",
	KindInvocationExpression:     "InvocationExpression",
	KindIndexExpression:          "IndexExpression",

	KindIdentifierNameExpression: "IdentifierNameExpression",
	KindOptionNameExpression:     "OptionNameExpression",
	KindGenericNameExpression:    "GenericNameExpression",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k.IsHelper() {
		return "Helper"
	}
	return "Unknown"
}

// IsTerminal reports whether k is a token kind.
func (k Kind) IsTerminal() bool {
	return k >= 0 && k < kindTerminalEnd
}

func (k Kind) IsKeyword() bool {
	return k >= KindAbstract && k <= KindWhile
}

func (k Kind) IsSymbol() bool {
	return k >= KindDot && k <= KindBound
}

func (k Kind) IsHelper() bool {
	return k >= KindFirstHelper
}

// Text returns the source spelling of a keyword or symbol kind and the empty
// string for every other kind.
func (k Kind) Text() string {
	return kindTexts[k]
}

var kindTexts = map[Kind]string{}

var keywords = map[string]Kind{
	"abstract":  KindAbstract,
	"break":     KindBreak,
	"class":     KindClass,
	"continue":  KindContinue,
	"def":       KindDef,
	"else":      KindElse,
	"for":       KindFor,
	"if":        KindIf,
	"in":        KindIn,
	"interface": KindInterface,
	"is":        KindIs,
	"native":    KindNative,
	"null":      KindNull,
	"object":    KindObject,
	"override":  KindOverride,
	"return":    KindReturn,
	"super":     KindSuper,
	"this":      KindThis,
	"val":       KindVal,
	"var":       KindVar,
	"virtual":   KindVirtual,
	"while":     KindWhile,
}

var symbols = map[string]Kind{
	".":  KindDot,
	":":  KindColon,
	",":  KindComma,
	"+":  KindPlus,
	"-":  KindMinus,
	"*":  KindAsterisk,
	"/":  KindSlash,
	"%":  KindPercent,
	"!":  KindExclamation,
	"~":  KindTilde,
	"&":  KindAmpersand,
	"|":  KindBar,
	"&&": KindAmpersandAmpersand,
	"||": KindBarBar,
	"^":  KindCaret,
	"<":  KindLessThan,
	"<=": KindLessThanEquals,
	">":  KindGreaterThan,
	">=": KindGreaterThanEquals,
	"<<": KindLessThanLessThan,
	">>": KindGreaterThanGreaterThan,
	"(":  KindOpenParen,
	")":  KindCloseParen,
	"[":  KindOpenBracket,
	"]":  KindCloseBracket,
	"=":  KindEquals,
	"==": KindEqualsEquals,
	"!=": KindExclamationEquals,
	"?":  KindQuestion,
	"<:": KindBound,
}

func init() {
	for text, kind := range keywords {
		kindTexts[kind] = text
	}
	for text, kind := range symbols {
		kindTexts[kind] = text
	}
}

// LookupKeyword matches word against the keyword set, ignoring case.
func LookupKeyword(word string) (Kind, bool) {
	kind, ok := keywords[strings.ToLower(word)]
	return kind, ok
}

// LookupSymbol matches text exactly against the operator and punctuation set.
func LookupSymbol(text string) (Kind, bool) {
	kind, ok := symbols[text]
	return kind, ok
}
