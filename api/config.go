package api

import (
	"sync"

	"github.com/ThomasWeyssow/rewaard-api/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	WorkflowConfig
}

type StorageConfig struct {
	TableNameCycles       string
	TableNameNominations  string
	TableNameValidations  string
	TableNameWinners      string
	TableNameProfiles     string
	TableNameAreas        string
	TableNameRewards      string
	TableNamePrograms     string
	TableNameRecognitions string
	TableNameBalances     string
}

type ServerConfig struct {
	Port int
}

type WorkflowConfig struct {
	ValidationWindowDays int
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNameCycles:       viper.GetString("storage.TableNameCycles"),
			TableNameNominations:  viper.GetString("storage.TableNameNominations"),
			TableNameValidations:  viper.GetString("storage.TableNameValidations"),
			TableNameWinners:      viper.GetString("storage.TableNameWinners"),
			TableNameProfiles:     viper.GetString("storage.TableNameProfiles"),
			TableNameAreas:        viper.GetString("storage.TableNameAreas"),
			TableNameRewards:      viper.GetString("storage.TableNameRewards"),
			TableNamePrograms:     viper.GetString("storage.TableNamePrograms"),
			TableNameRecognitions: viper.GetString("storage.TableNameRecognitions"),
			TableNameBalances:     viper.GetString("storage.TableNameBalances"),
		},
		ServerConfig: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
		WorkflowConfig: WorkflowConfig{
			ValidationWindowDays: getIntOrDefault("workflow.ValidationWindowDays", 7),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
