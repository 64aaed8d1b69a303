// Command fetchwords downloads the word list and keeps the words the searches use.
package main

import (
	"github.com/domino14/wordsets/runner"
	"github.com/domino14/wordsets/search"
)

func main() {
	runner.Main(search.FetchWords)
}
