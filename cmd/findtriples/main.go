// Command findtriples extends the pairs file to three-word groups with no repeated letter.
package main

import (
	"github.com/domino14/wordsets/runner"
	"github.com/domino14/wordsets/search"
)

func main() {
	runner.Main(search.FindTriples)
}
