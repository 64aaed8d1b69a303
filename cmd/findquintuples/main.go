// Command findquintuples extends the quads file with a fifth word covering at least the threshold number of letters.
package main

import (
	"github.com/domino14/wordsets/runner"
	"github.com/domino14/wordsets/search"
)

func main() {
	runner.Main(search.FindQuintuples)
}
