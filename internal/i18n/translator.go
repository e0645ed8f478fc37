// Package i18n resolves welcome page message keys to locale strings using
// golang.org/x/text catalogs.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"meetinggate/internal/domain"
)

// BaseLocale is the fallback for unknown locales and missing keys.
var BaseLocale = language.English

var messages = map[language.Tag]map[string]string{
	language.English: {
		domain.KeyConferenceIDIsEmpty:  "Please enter a conference ID.",
		domain.KeyRoomNameAllowedChars: "The conference ID must not contain %s",
		domain.KeyAPIError:             "Something went wrong. Please try again.",
		domain.KeyNoData:               "No meeting was found for this conference ID.",
		domain.KeyEventInPast:          "This meeting has already ended.",
		domain.KeyEventInFuture:        "This meeting has not started yet.",
		domain.KeyUsernameRequired:     "Username is required.",
		domain.KeyPasswordRequired:     "Password is required.",
		domain.KeyLoginFailed:          "Login failed. Check your username and password.",
		domain.KeyContactAdministrator: "Could not load your meeting details. Please contact the administrator.",
		domain.KeyInvalidRoomFormat:    "Please match the requested format.",
		domain.KeySessionExpired:       "Your session has expired. Please sign in again.",
		KeyEnterRoom:                   "Enter a conference ID (suggestion: %s): ",
		KeyLoginPrompt:                 "Sign in to join %s",
		KeyUsername:                    "Username: ",
		KeyPassword:                    "Password: ",
		KeyJoining:                     "Joining %s...",
	},
	language.Spanish: {
		domain.KeyConferenceIDIsEmpty:  "Introduce un ID de conferencia.",
		domain.KeyRoomNameAllowedChars: "El ID de conferencia no puede contener %s",
		domain.KeyAPIError:             "Algo salió mal. Inténtalo de nuevo.",
		domain.KeyNoData:               "No se encontró ninguna reunión para este ID.",
		domain.KeyEventInPast:          "Esta reunión ya terminó.",
		domain.KeyEventInFuture:        "Esta reunión aún no ha comenzado.",
		domain.KeyUsernameRequired:     "El usuario es obligatorio.",
		domain.KeyPasswordRequired:     "La contraseña es obligatoria.",
		domain.KeyLoginFailed:          "Error al iniciar sesión. Revisa tu usuario y contraseña.",
		domain.KeyContactAdministrator: "No se pudieron cargar los datos de la reunión. Contacta con el administrador.",
		domain.KeyInvalidRoomFormat:    "Ajusta el formato solicitado.",
		domain.KeySessionExpired:       "Tu sesión ha caducado. Vuelve a iniciar sesión.",
		KeyEnterRoom:                   "Introduce un ID de conferencia (sugerencia: %s): ",
		KeyLoginPrompt:                 "Inicia sesión para unirte a %s",
		KeyUsername:                    "Usuario: ",
		KeyPassword:                    "Contraseña: ",
		KeyJoining:                     "Entrando en %s...",
	},
}

// defaultArgs fill keys whose message takes arguments when a caller has none.
var defaultArgs = map[string][]any{
	domain.KeyRoomNameAllowedChars: {domain.CharList(domain.DefaultForbiddenChars)},
}

// Prompt keys used by the terminal welcome page.
const (
	KeyEnterRoom   = "welcomepage.enterRoom"
	KeyLoginPrompt = "welcomepage.loginPrompt"
	KeyUsername    = "welcomepage.username"
	KeyPassword    = "welcomepage.password"
	KeyJoining     = "welcomepage.joining"
)

// Translator implements domain.Translator for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for locale (a BCP 47 tag such as "en" or "es-AR").
// Unsupported locales fall back to BaseLocale.
func New(locale string) (*Translator, error) {
	builder := catalog.NewBuilder(catalog.Fallback(BaseLocale))
	supported := make([]language.Tag, 0, len(messages))
	supported = append(supported, BaseLocale)
	for tag, entries := range messages {
		for key, msg := range entries {
			if err := builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", tag, key, err)
			}
		}
		if tag != BaseLocale {
			supported = append(supported, tag)
		}
	}

	tag := BaseLocale
	if locale = strings.TrimSpace(locale); locale != "" {
		requested, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		_, idx, conf := language.NewMatcher(supported).Match(requested)
		if conf != language.No {
			tag = supported[idx]
		}
	}

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}, nil
}

// Locale returns the matched locale.
func (t *Translator) Locale() language.Tag { return t.tag }

// Translate returns the message for key formatted with args. Unknown keys are
// returned as given, without formatting, so literal strings pass through
// unchanged.
func (t *Translator) Translate(key string, args ...any) string {
	if _, ok := messages[BaseLocale][key]; !ok {
		return key
	}
	if len(args) == 0 {
		args = defaultArgs[key]
	}
	return t.printer.Sprintf(key, args...)
}
