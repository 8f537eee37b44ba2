package commands

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

type Name string

const (
	Expense Name = "expense"
	Income  Name = "income"
	Balance Name = "balance"
	Report  Name = "report"
	Help    Name = "help"
	Goal    Name = "goal"
	Advice  Name = "advice"
)

type vocabularyFile struct {
	Commands          map[Name][]string `yaml:"commands"`
	ExpenseCategories map[string]string `yaml:"expense-categories"`
	IncomeCategories  map[string]string `yaml:"income-categories"`
}

// Vocabulary maps local words to canonical commands and categories. It is read-only once built.
type Vocabulary struct {
	commands          map[string]Name
	expenseCategories map[string]string
	incomeCategories  map[string]string
}

func DefaultVocabulary() (*Vocabulary, error) {
	return ParseVocabulary(defaultVocabulary)
}

func ParseVocabulary(raw []byte) (*Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "parsing vocabulary")
	}

	v := &Vocabulary{
		commands:          make(map[string]Name),
		expenseCategories: lowerKeys(f.ExpenseCategories),
		incomeCategories:  lowerKeys(f.IncomeCategories),
	}
	for name, words := range f.Commands {
		for _, w := range words {
			w = strings.ToLower(w)
			if prev, ok := v.commands[w]; ok && prev != name {
				return nil, errors.Errorf("word %q is bound to both %s and %s", w, prev, name)
			}
			v.commands[w] = name
		}
	}
	if len(v.commands) == 0 {
		return nil, errors.New("vocabulary has no commands")
	}
	return v, nil
}

func (v *Vocabulary) Command(word string) (Name, bool) {
	name, ok := v.commands[strings.ToLower(word)]
	return name, ok
}

// Category translates a local category word for the command; unknown words are returned unchanged.
func (v *Vocabulary) Category(cmd Name, word string) string {
	word = strings.ToLower(word)
	var table map[string]string
	switch cmd {
	case Expense:
		table = v.expenseCategories
	case Income:
		table = v.incomeCategories
	}
	if translated, ok := table[word]; ok {
		return translated
	}
	return word
}

func lowerKeys(m map[string]string) map[string]string {
	res := make(map[string]string, len(m))
	for k, val := range m {
		res[strings.ToLower(k)] = strings.ToLower(val)
	}
	return res
}
