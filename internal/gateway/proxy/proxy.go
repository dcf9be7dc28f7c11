package proxy

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
	fiberproxy "github.com/gofiber/fiber/v3/middleware/proxy"
)

// ============================================================
// Proxy Handler
// ============================================================

// Mount проксирует всё под prefix на сервис target, отрезая префикс
// вместе с префиксом группы r. Пути /internal/* наружу не публикуются.
func Mount(r fiber.Router, prefix, target string) {
	handler := Forward(target)
	r.All(prefix, handler)
	r.All(prefix+"/*", handler)
}

// Forward возвращает обработчик, пересылающий запрос как есть (метод,
// заголовки, тело, включая multipart) на target. Путь у сервиса берётся
// из wildcard-параметра маршрута.
func Forward(target string) fiber.Handler {
	target = strings.TrimRight(target, "/")

	return func(c fiber.Ctx) error {
		rest := "/" + strings.TrimLeft(c.Params("*"), "/")
		if rest == "/internal" || strings.HasPrefix(rest, "/internal/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}

		url := UpstreamURL(target, rest, string(c.Request().URI().QueryString()))
		log.Printf("[PROXY] %s %s -> %s", c.Method(), c.Path(), url)

		if err := fiberproxy.Do(c, url); err != nil {
			log.Printf("[PROXY] Error: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "failed to reach upstream service"})
		}
		return nil
	}
}

// UpstreamURL склеивает адрес сервиса, остаток пути и строку запроса.
func UpstreamURL(target, rest, query string) string {
	if rest == "" {
		rest = "/"
	}
	url := target + rest
	if query != "" {
		url += "?" + query
	}
	return url
}
