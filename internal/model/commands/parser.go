package commands

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/ledger-bot/internal/entity/ledger"
)

const dateLayout = "02.01.2006"

var (
	ErrEmpty          = errors.New("empty message")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingAmount  = errors.New("missing amount")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidDate    = errors.New("invalid date")
	ErrMissingName    = errors.New("missing goal name")
)

var (
	// 1.000.000 or 1.000.000,50
	dottedThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+(,\d+)?$`)
	datePattern     = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
)

type Command struct {
	Name        Name
	Amount      decimal.Decimal
	Category    string
	Description string
	Deadline    *time.Time
}

// HasAmount tells a goal listing ("target") apart from a goal creation.
func (c Command) HasAmount() bool {
	return c.Amount.IsPositive()
}

type Parser struct {
	vocab    *Vocabulary
	location *time.Location
}

func NewParser(vocab *Vocabulary, location *time.Location) *Parser {
	return &Parser{vocab: vocab, location: location}
}

func (p *Parser) Parse(text string) (Command, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return Command{}, ErrEmpty
	}

	name, ok := p.vocab.Command(words[0])
	if !ok {
		return Command{}, ErrUnknownCommand
	}
	cmd := Command{Name: name}
	args := words[1:]

	switch name {
	case Expense, Income:
		return p.parseTransaction(cmd, args)
	case Goal:
		return p.parseGoal(cmd, args)
	}
	return cmd, nil
}

func (p *Parser) parseTransaction(cmd Command, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, ErrMissingAmount
	}
	amount, err := ParseAmount(args[0])
	if err != nil {
		return Command{}, err
	}
	cmd.Amount = amount
	cmd.Category = ledger.DefaultCategory
	if len(args) > 1 {
		cmd.Category = p.vocab.Category(cmd.Name, args[1])
	}
	if len(args) > 2 {
		cmd.Description = strings.Join(args[2:], " ")
	}
	return cmd, nil
}

func (p *Parser) parseGoal(cmd Command, args []string) (Command, error) {
	if len(args) == 0 {
		return cmd, nil
	}
	amount, err := ParseAmount(args[0])
	if err != nil {
		return Command{}, err
	}
	cmd.Amount = amount

	rest := args[1:]
	if len(rest) > 0 && datePattern.MatchString(rest[len(rest)-1]) {
		deadline, err := time.ParseInLocation(dateLayout, rest[len(rest)-1], p.location)
		if err != nil {
			return Command{}, ErrInvalidDate
		}
		cmd.Deadline = &deadline
		rest = rest[:len(rest)-1]
	}
	if len(rest) == 0 {
		return Command{}, ErrMissingName
	}
	cmd.Description = strings.Join(rest, " ")
	return cmd, nil
}

// ParseAmount reads a positive amount written the local way: "50000", "50.000", "12,5", "Rp50.000".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "rp")
	if dottedThousands.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")

	amount, err := decimal.NewFromString(s)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}
