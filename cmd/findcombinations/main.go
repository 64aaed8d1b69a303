// Command findcombinations checks every combination of words for distinct letters through a bounded work queue.
package main

import (
	"github.com/domino14/wordsets/runner"
	"github.com/domino14/wordsets/search"
)

func main() {
	runner.Main(search.FindCombinations)
}
