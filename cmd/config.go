package cmd

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	LedgerServiceURL   string
	CourierType        string
	CourierAPIURL      string
	CourierAPIKey      string
	CourierProductType string
}
