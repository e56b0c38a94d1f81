package services

import (
	"github.com/Modeva-Ecommerce/modeva-storefront/catalog"
)

var catalogRepo catalog.Repository

// InitCatalog sets the repository used by the storefront read paths.
func InitCatalog(repo catalog.Repository) {
	catalogRepo = repo
}

// Catalog returns the repository set by InitCatalog.
func Catalog() catalog.Repository {
	if catalogRepo == nil {
		panic("services: catalog not initialised")
	}
	return catalogRepo
}
