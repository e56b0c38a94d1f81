// @title Modeva Storefront API
// @version 1.0
// @description Modeva storefront and catalog management API
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"github.com/Modeva-Ecommerce/modeva-storefront/cmd/modeva/cmd"
)

func main() {
	cmd.Execute()
}
