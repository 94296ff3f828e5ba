package app

import (
	"os"
	"strings"

	rediscache "github.com/yungbote/edi-backend/internal/clients/redis"
	"github.com/yungbote/edi-backend/internal/platform/logger"
	"github.com/yungbote/edi-backend/internal/platform/sendgrid"
)

type Clients struct {
	CatalogCache rediscache.CatalogCache
	Mail         sendgrid.Client
}

// wireClients initializes the optional external clients. Missing env config
// degrades gracefully: no cache means every read hits Postgres, no mail
// client means invitations stay pending.
func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	cache, err := rediscache.NewCatalogCache(log)
	if err != nil {
		return Clients{}, err
	}
	if cache == nil {
		log.Warn("REDIS_ADDR not set, catalog cache disabled")
	}

	var mail sendgrid.Client
	if strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")) != "" {
		mail, err = sendgrid.NewFromEnv(log)
		if err != nil {
			return Clients{}, err
		}
	} else {
		log.Warn("SENDGRID_API_KEY not set, invitation email disabled")
	}

	return Clients{
		CatalogCache: cache,
		Mail:         mail,
	}, nil
}
