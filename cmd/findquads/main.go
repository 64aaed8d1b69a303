// Command findquads joins pairs from the pairs file into four-word groups with no repeated letter.
package main

import (
	"github.com/domino14/wordsets/runner"
	"github.com/domino14/wordsets/search"
)

func main() {
	runner.Main(search.FindQuads)
}
