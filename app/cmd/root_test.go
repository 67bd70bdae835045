package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_initConfig(t *testing.T) {
	if wd, err := os.Getwd(); err != nil {
		t.Error(err)
	} else {
		configFile = wd + "/../../config/depositsync.example.yaml"
	}
	initConfig()
	assert.EqualValues(t, "https://metadata.example.org", appConfig.Remote.Address)
	assert.False(t, appConfig.Remote.InsecureSkipVerify)
	assert.EqualValues(t, "passw0rd", appConfig.Remote.User.Password)
	assert.EqualValues(t, 500, appConfig.Events.MaxPerIndex)
}
