package main

import (
	"encoding/json"
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

type config struct {
	APIAddress string `json:"apiAddress"`
}

func getConfig() (*config, error) {
	lumenHome, err := getLumenHome()
	if err != nil {
		return nil, errors.Wrap(err, "error finding lumen home")
	}
	lumenConfigFile := path.Join(lumenHome, "config")
	configBytes, err := os.ReadFile(lumenConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf(
				"no lumen configuration was found at %s; please use "+
					"`lumen login` to continue",
				lumenConfigFile,
			)
		}
		return nil, errors.Wrapf(
			err,
			"error reading lumen config file at %s",
			lumenConfigFile,
		)
	}
	config := &config{}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(
			err,
			"error parsing lumen config file at %s",
			lumenConfigFile,
		)
	}
	return config, nil
}

func saveConfig(config *config) error {
	lumenHome, err := getLumenHome()
	if err != nil {
		return errors.Wrap(err, "error finding lumen home")
	}
	if _, err := os.Stat(lumenHome); err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(
				err,
				"error checking for existence of lumen home at %s",
				lumenHome,
			)
		}
		// The directory doesn't exist-- create it
		if err := os.MkdirAll(lumenHome, 0755); err != nil {
			return errors.Wrapf(
				err,
				"error creating lumen home at %s",
				lumenHome,
			)
		}
	}
	lumenConfigFile := path.Join(lumenHome, "config")
	configBytes, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "error marshaling config")
	}
	if err := os.WriteFile(lumenConfigFile, configBytes, 0644); err != nil {
		return errors.Wrapf(err, "error writing to %s", lumenConfigFile)
	}
	return nil
}

func getLumenHome() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, ".lumen"), nil
}
