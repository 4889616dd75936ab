package payments

import (
	"strings"
	"time"

	"github.com/jhoicas/cajaplus-api/internal/application/dto"
	"github.com/jhoicas/cajaplus-api/internal/domain"
)

const (
	layoutDMY = "2/1/2006"
	layoutMDY = "1/2/2006"
)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate interpreta la fecha de un pago.
//
//   - vacío: now
//   - ISO (YYYY-MM-DD, con hora opcional): tal cual; sin hora queda a las 00:00:00
//   - con barras: format explícito (dto.DateFormatDMY / dto.DateFormatMDY) o, sin él,
//     dd/mm/yyyy y luego mm/dd/yyyy. En modo strict una fecha válida en ambos
//     órdenes con distinto resultado retorna ErrAmbiguousDate.
//     Las fechas con barras toman la hora actual.
//
// Fechas posteriores al día de hoy retornan ErrFutureDate.
func ParseDate(raw, format string, strict bool, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}

	var (
		t   time.Time
		err error
	)
	if strings.Contains(raw, "/") {
		t, err = parseSlashDate(raw, format, strict)
		if err != nil {
			return time.Time{}, err
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	} else {
		t, err = parseISODate(raw, now.Location())
		if err != nil {
			return time.Time{}, err
		}
	}

	if dayOf(t).After(dayOf(now)) {
		return time.Time{}, domain.ErrFutureDate
	}
	return t, nil
}

func parseSlashDate(raw, format string, strict bool) (time.Time, error) {
	switch format {
	case dto.DateFormatDMY:
		return parseOr(layoutDMY, raw)
	case dto.DateFormatMDY:
		return parseOr(layoutMDY, raw)
	case "":
	default:
		return time.Time{}, domain.Invalid("formato_fecha inválido: use %s o %s", dto.DateFormatDMY, dto.DateFormatMDY)
	}

	dmy, errDMY := time.Parse(layoutDMY, raw)
	mdy, errMDY := time.Parse(layoutMDY, raw)
	switch {
	case errDMY == nil && errMDY == nil && !dmy.Equal(mdy) && strict:
		return time.Time{}, domain.ErrAmbiguousDate
	case errDMY == nil:
		return dmy, nil
	case errMDY == nil:
		return mdy, nil
	default:
		return time.Time{}, domain.ErrInvalidDate
	}
}

func parseOr(layout, raw string) (time.Time, error) {
	t, err := time.Parse(layout, raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

func parseISODate(raw string, loc *time.Location) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, domain.ErrInvalidDate
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
