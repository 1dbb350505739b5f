package lexicon

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed stopwords.yaml
var stopwordsYAML []byte

var stopSet wordSet

func init() {
	terms, err := parseStopwords(stopwordsYAML)
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded stopwords: %v", err))
	}
	stopSet = make(wordSet, len(terms))
	for _, t := range terms {
		stopSet[t] = struct{}{}
	}
}

func parseStopwords(data []byte) ([]string, error) {
	var sl struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}
	return sl.Terms, nil
}

// IsStopword reports whether an unstemmed word is a function word.
func IsStopword(word string) bool {
	return stopSet.has(word)
}
