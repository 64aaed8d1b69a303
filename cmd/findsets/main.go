// Command findsets searches for letter-disjoint word groups directly, one backtracking search per word.
package main

import (
	"github.com/domino14/wordsets/runner"
	"github.com/domino14/wordsets/search"
)

func main() {
	runner.Main(search.FindSets)
}
