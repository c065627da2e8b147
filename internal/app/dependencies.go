package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/catalog"
	"github.com/vladislavdragonenkov/orders/internal/service/user"
)

// initUserDirectory возвращает HTTP-клиент реестра пользователей либо mock,
// если URL не задан.
func initUserDirectory(cfg Config, logger *log.Entry) domain.UserDirectory {
	if cfg.UserServiceURL == "" {
		logger.Warn("user service URL is empty, using in-process mock")
		return user.NewMockService()
	}
	return user.NewClient(
		cfg.UserServiceURL,
		user.WithTimeout(cfg.CollaboratorTimeout),
		user.WithLogger(logger.WithField("component", "user-client")),
	)
}

// initCatalog возвращает HTTP-клиент каталога либо mock, если URL не задан.
func initCatalog(cfg Config, logger *log.Entry) domain.Catalog {
	if cfg.CatalogServiceURL == "" {
		logger.Warn("catalog service URL is empty, using in-process mock")
		return catalog.NewMockService()
	}
	return catalog.NewClient(
		cfg.CatalogServiceURL,
		catalog.WithTimeout(cfg.CollaboratorTimeout),
		catalog.WithLogger(logger.WithField("component", "catalog-client")),
	)
}
