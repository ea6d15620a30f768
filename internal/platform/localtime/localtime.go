// Package localtime interpreta las fechas que llegan de formularios en una
// única zona horaria de referencia, independiente del dispositivo del usuario.
//
// Política: un timestamp vacío o ilegible NO bloquea el formulario; se toma
// "ahora". Es el único lugar donde se recupera un input en silencio.
package localtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"caretrack/internal/platform/clock"
)

const DefaultTimeZone = "America/Sao_Paulo"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
	displayLayout  = "02 Jan 2006 15:04"
)

type Mode int

const (
	// ModeDateOnly: campos tipo plazo; la fecha vale hasta 23:59:59.999.
	ModeDateOnly Mode = iota
	// ModeDateTime: instante de reloj de pared en la zona de referencia.
	ModeDateTime
)

var (
	dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(?::\d{2}(?:\.\d{1,3})?)?$`)
)

type Zone struct {
	loc   *time.Location
	clock clock.Clock
}

func New(loc *time.Location, clk clock.Clock) *Zone {
	if loc == nil {
		loc = time.UTC
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Zone{loc: loc, clock: clk}
}

// Load resuelve el nombre IANA de la zona (ej: America/Sao_Paulo).
func Load(name string, clk clock.Clock) (*Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimeZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return New(loc, clk), nil
}

func (z *Zone) Location() *time.Location { return z.loc }

// Parse convierte el texto de un input a un instante absoluto.
// Vacío o ilegible => ahora.
func (z *Zone) Parse(text string, mode Mode) time.Time {
	if t, ok := z.parse(text, mode); ok {
		return t
	}
	return z.clock.Now()
}

// ParseOptional es Parse para campos opcionales: vacío => ausente (nil).
// Un valor presente pero ilegible sigue la política de "ahora".
func (z *Zone) ParseOptional(text string, mode Mode) *time.Time {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	t := z.Parse(text, mode)
	return &t
}

func (z *Zone) parse(text string, mode Mode) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	if dateOnlyRe.MatchString(s) {
		d, err := time.ParseInLocation(dateLayout, s, z.loc)
		if err != nil {
			return time.Time{}, false
		}
		if mode == ModeDateOnly {
			return endOfDay(d, z.loc), true
		}
		return d, true
	}

	if dateTimeRe.MatchString(s) {
		layout := dateTimeLayout
		if len(s) > len(dateTimeLayout) {
			// segundos (y fracción opcional, aceptada por Parse)
			layout = "2006-01-02T15:04:05"
		}
		t, err := time.ParseInLocation(layout, s, z.loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	// epoch en milisegundos (valores que ya vienen normalizados)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func endOfDay(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, int(999*time.Millisecond), loc)
}

// FormatDate es el inverso de ModeDateOnly (para precargar formularios).
func (z *Zone) FormatDate(t time.Time) string {
	return t.In(z.loc).Format(dateLayout)
}

// FormatDateTime es el inverso de ModeDateTime, con precisión de minuto.
func (z *Zone) FormatDateTime(t time.Time) string {
	return t.In(z.loc).Format(dateTimeLayout)
}

// Display es la etiqueta legible usada en notificaciones y listados.
func (z *Zone) Display(t time.Time) string {
	return t.In(z.loc).Format(displayLayout)
}
