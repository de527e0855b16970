package cmd

type Config struct {
	HTTPPort string
	RPCPort  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL              string
	BrokerRetryCount     int
	BrokerRetryDelaySec  int
	OutboxBackoffBaseSec int

	EmailAPIURL string
	EmailAPIKey string
	EmailFrom   string
}
