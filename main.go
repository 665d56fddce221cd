// @title Rewaard API
// @version 1.0
// @description Backend API for employee recognition: hero-of-the-month nomination cycles, peer recognitions, and reward redemption

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token
package main

import (
	_ "github.com/ThomasWeyssow/rewaard-api/docs"

	"github.com/ThomasWeyssow/rewaard-api/api"
	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/spf13/viper"
)

func main() {
	logging.BootstrapLogger()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
