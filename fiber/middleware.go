// Package fiber provides the Fiber middleware of the component preview server.
package fiber

import (
	"log"
	"time"

	"github.com/a-h/templ"
	"github.com/aydenstechdungeon/dsfr/i18n"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// LangKey is the Locals key holding the request language.
const LangKey = "dsfr.lang"

// SecurityHeadersMiddleware adds security headers.
func SecurityHeadersMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// RequestLoggerMiddleware writes one compact line per request to logger, or
// to the standard logger when logger is nil.
// Output format: [METHOD] /path STATUS lang duration
func RequestLoggerMiddleware(logger *log.Logger) fiber.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = AsAppError(err).StatusCode
		}
		logger.Printf("[%s] %s %d %s %v", c.Method(), c.Path(), status, GetLang(c), time.Since(start))
		return err
	}
}

// LocaleMiddleware resolves the request languages from the lang query
// parameter, then the Accept-Language preference list, then fallback. An
// unparsable lang parameter also yields fallback. The preferred language is
// stored in Locals; the whole list goes in the user context, where each
// component picks the first language it knows.
func LocaleMiddleware(fallback language.Tag) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags := []language.Tag{fallback}
		if q := c.Query("lang"); q != "" {
			if tag, err := language.Parse(q); err == nil {
				tags = []language.Tag{tag}
			}
		} else if h := c.Get(fiber.HeaderAcceptLanguage); h != "" {
			tags = i18n.FromAcceptLanguage(h, fallback)
		}

		c.Locals(LangKey, tags[0])
		c.SetUserContext(i18n.WithLang(c.UserContext(), tags...))
		c.Set(fiber.HeaderContentLanguage, tags[0].String())
		return c.Next()
	}
}

// GetLang returns the language resolved by LocaleMiddleware.
func GetLang(c *fiber.Ctx) language.Tag {
	if tag, ok := c.Locals(LangKey).(language.Tag); ok {
		return tag
	}
	return i18n.DefaultLang
}

// RenderComponent renders a templ component as the HTML response body.
func RenderComponent(c *fiber.Ctx, component templ.Component) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return component.Render(c.UserContext(), c.Response().BodyWriter())
}
