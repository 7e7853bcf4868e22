// Package parser turns source text into a syntax tree.
//
// Parsing is driven by the production table of package grammar. The engine
// descends the table with one token of lookahead, choosing alternatives by
// FIRST set, and never backtracks. A token that does not fit the current
// position is recorded as a diagnostic and skipped, so every input yields a
// complete tree.
//
// The raw tree built during descent still contains combinators and helper
// nonterminals. A post-processing pass splices them out, renames list
// wrappers, folds operator chains and suffixes into left-associative
// expression nodes and wraps boolean literals.
//
//	result := parser.Parse("class A\n  def f(): Boolean\n    return true")
//	if result.HasErrors() {
//		for _, d := range result.Diagnostics {
//			fmt.Println(d)
//		}
//	}
//	fmt.Print(result.Root)
package parser
