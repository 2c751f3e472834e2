package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	JWTSecret              string
	JWTTTLHours            string
	KafkaHost              string
	KafkaOrderChangedTopic string
	HubStreet              string
	HubCity                string
	HubPostalCode          string
}
