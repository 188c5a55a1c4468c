// cmd/main.go
package main

import (
	"go-banking-core/app"
)

// @title           Banking Core API
// @version         1.0
// @description     Transaction processing and fee assessment engine for customer accounts.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
