package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *Parser {
	vocab, err := DefaultVocabulary()
	require.NoError(t, err)
	return NewParser(vocab, time.UTC)
}

func Test_Parse_ShouldTranslateCommandsAndCategories(t *testing.T) {
	p := newParser(t)

	cases := []struct {
		text        string
		name        Name
		amount      string
		category    string
		description string
	}{
		{"pengeluaran 50000 makan siang", Expense, "50000", "food", "siang"},
		{"bayar 50.000 makan", Expense, "50000", "food", ""},
		{"Beli 15000 bensin pertalite full", Expense, "15000", "transportation", "pertalite full"},
		{"keluar 20000", Expense, "20000", "other", ""},
		{"beli 20000 kopi", Expense, "20000", "kopi", ""},
		{"pemasukan 1000000 gaji bulanan", Income, "1000000", "salary", "bulanan"},
		{"masuk 2.500.000,50 proyek", Income, "2500000.5", "freelance", ""},
		{"gajian Rp1.000.000 gaji", Income, "1000000", "salary", ""},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			cmd, err := p.Parse(c.text)
			require.NoError(t, err)
			assert.Equal(t, c.name, cmd.Name)
			assert.Equal(t, c.amount, cmd.Amount.String())
			assert.Equal(t, c.category, cmd.Category)
			assert.Equal(t, c.description, cmd.Description)
		})
	}
}

func Test_Parse_ShouldRecogniseQueryCommands(t *testing.T) {
	p := newParser(t)

	for text, name := range map[string]Name{
		"saldo":   Balance,
		"DUIT":    Balance,
		"rekap":   Report,
		"bantuan": Help,
		"/start":  Help,
		"saran":   Advice,
		"target":  Goal,
	} {
		cmd, err := p.Parse(text)
		require.NoError(t, err, text)
		assert.Equal(t, name, cmd.Name, text)
		assert.False(t, cmd.HasAmount(), text)
	}
}

func Test_Parse_Goal_ShouldReadNameAndDeadline(t *testing.T) {
	p := newParser(t)

	cmd, err := p.Parse("target 5.000.000 Liburan ke Bali 31.12.2025")
	require.NoError(t, err)

	assert.Equal(t, Goal, cmd.Name)
	assert.True(t, cmd.HasAmount())
	assert.Equal(t, "5000000", cmd.Amount.String())
	assert.Equal(t, "Liburan ke Bali", cmd.Description)
	require.NotNil(t, cmd.Deadline)
	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), *cmd.Deadline)

	cmd, err = p.Parse("tujuan 100000 motor")
	require.NoError(t, err)
	assert.Nil(t, cmd.Deadline)
	assert.Equal(t, "motor", cmd.Description)
}

func Test_Parse_ShouldReportErrors(t *testing.T) {
	p := newParser(t)

	cases := map[string]error{
		"":                               ErrEmpty,
		"halo bot":                       ErrUnknownCommand,
		"pengeluaran":                    ErrMissingAmount,
		"pengeluaran abc makan":          ErrInvalidAmount,
		"pemasukan -100 gaji":            ErrInvalidAmount,
		"pemasukan 0 gaji":               ErrInvalidAmount,
		"target 100000":                  ErrMissingName,
		"target 100000 motor 31.02.2025": ErrInvalidDate,
	}
	for text, want := range cases {
		_, err := p.Parse(text)
		assert.ErrorIs(t, err, want, text)
	}
}

func Test_ParseVocabulary_ShouldRejectAmbiguousWords(t *testing.T) {
	_, err := ParseVocabulary([]byte(`
commands:
  expense: [bayar]
  income: [bayar]
`))
	assert.Error(t, err)
}
