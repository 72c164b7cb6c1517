package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/config"
)

// CORS middleware для настройки Cross-Origin Resource Sharing.
// Заголовок X-Request-ID всегда доступен клиенту.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    appendMissing(cfg.ExposedHeaders, RequestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	// В development режиме разрешаем все источники, если список пуст
	// В production используем только явно указанные источники
	switch {
	case len(cfg.AllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	case gin.Mode() != gin.ReleaseMode:
		corsConfig.AllowAllOrigins = true
	default:
		corsConfig.AllowOrigins = []string{}
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}

	return cors.New(corsConfig)
}

func appendMissing(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list...)
	return append(out, value)
}
