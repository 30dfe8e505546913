package common

import (
	"github.com/Rohang10/saas-copilot/internal/config"
	pkgHTTP "github.com/Rohang10/saas-copilot/pkg/http"
)

const userAgent = "saas-copilot/1.0"

// NewBaseConnector builds the JSON client shared by the embedder and generator connectors
func NewBaseConnector(cfg config.HTTPClientConfig) *pkgHTTP.Connector {
	return pkgHTTP.NewConnector(
		cfg.Url,
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithUserAgent(userAgent),
		pkgHTTP.WithAuthToken(cfg.Token),
	)
}
