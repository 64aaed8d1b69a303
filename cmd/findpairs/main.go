// Command findpairs writes every pair of words that share no letter.
package main

import (
	"github.com/domino14/wordsets/runner"
	"github.com/domino14/wordsets/search"
)

func main() {
	runner.Main(search.FindPairs)
}
