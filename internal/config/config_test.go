package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_ShouldApplyDefaults(t *testing.T) {
	s, err := Parse([]byte(`telegram: {token: abc}`))
	require.NoError(t, err)

	assert.Equal(t, "abc", s.Telegram().Token())
	assert.Equal(t, "0.2", s.App().SavingsRate().String())
	assert.Equal(t, "Asia/Jakarta", s.App().Location().String())
	assert.Equal(t, "0.8", s.App().AdviceThresholds().ExpenseRatio().String())
	assert.Equal(t, "20", s.App().AdviceThresholds().MinSavingsRate().String())
	assert.Equal(t, DriverPostgres, s.Storage().DriverName())
	assert.Equal(t, ":8080", s.Server().HTTP())
	assert.False(t, s.Kafka().Enabled())
	assert.False(t, s.Memcached().Enabled())
}

func Test_Parse_ShouldReadAllSections(t *testing.T) {
	raw := `
app:
  savings-rate: 0.25
  timezone: UTC
  advice:
    food-ratio: 0.4
storage:
  driver: sqlite
  sqlite-path: /tmp/ledger.db
postgres:
  host: db
  db: ledger
  username: bot
  password: secret
kafka:
  brokers: ["kafka:9092"]
  consumer-group: reporter
  reports-topic: reports
memcached:
  hosts: ["memcached:11211"]
server:
  http-addr: ":9000"
  acceptor-addr: "bot:9090"
`
	s, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "0.25", s.App().SavingsRate().String())
	assert.Equal(t, "0.4", s.App().AdviceThresholds().FoodRatio().String())
	assert.Equal(t, "0.2", s.App().AdviceThresholds().EntertainmentRatio().String())
	assert.Equal(t, DriverSQLite, s.Storage().DriverName())
	assert.Equal(t, "/tmp/ledger.db", s.Storage().Path())
	assert.Equal(t, "user=bot password=secret host=db port=5432 dbname=ledger sslmode=disable", s.Postgres().DSN())
	assert.True(t, s.Kafka().Enabled())
	assert.Equal(t, "reports", s.Kafka().ReportsTopic())
	assert.Equal(t, []string{"memcached:11211"}, s.Memcached().Hosts())
	assert.Equal(t, "bot:9090", s.Server().Acceptor())
}

func Test_Parse_ShouldRejectInvalidValues(t *testing.T) {
	cases := map[string]string{
		"rate above one":      "app: {savings-rate: 1.5}",
		"unknown timezone":    "app: {timezone: Mars/Olympus}",
		"unknown driver":      "storage: {driver: mongo}",
		"sqlite without path": "storage: {driver: sqlite}",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}
