package main

import "github.com/openrds/depositsync/app/cmd"

func main() {
	cmd.Execute()
}

// @title depositsync API
// @version 0.0.1
// @description The shell around the deposit metadata sync client and status event store

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @securityDefinitions.basic BasicAuth
// @BasePath /
