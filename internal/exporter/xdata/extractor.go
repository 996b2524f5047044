package xdata

import (
	"strconv"
	"strings"

	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/models"
)

// ============================================================
// XDATA Extractor
// ============================================================

// CanonicalAppID пробуется первым независимо от того, объявлен ли он
// в списке application id примитива.
const CanonicalAppID = "QCAD"

// Defaults применяются после сканирования, если значения не заданы.
const (
	DefaultHeight = 2.8
	DefaultSolid  = 1
)

// Источник значения поля: строковый код всегда сильнее числового,
// повторные коды того же вида только заполняют пропуски.
type setBy int

const (
	byNone setBy = iota
	byNumeric
	byString
)

type state struct {
	attrs  models.Attributes
	height setBy
	solid  setBy
}

// Extract декодирует XDATA примитива в типизированные атрибуты.
// Строка "height:..." выигрывает у кода 1040 даже если 1040 встретился
// раньше; ошибки разбора отдельного значения глотаются — элемент
// пропускается, декодирование продолжается.
func Extract(prim *models.Primitive) models.Attributes {
	st := state{}

	for _, app := range orderedApps(prim.XData) {
		for _, item := range app.Items {
			switch item.Code {
			case models.XDataCodeString:
				st.decodeString(app.AppID, item.Str)

			case models.XDataCodeReal:
				if st.height == byNone {
					st.attrs.Height = item.Real
					st.height = byNumeric
				}

			case models.XDataCodeInt:
				if (item.Int == 0 || item.Int == 1) && st.solid == byNone {
					st.attrs.Solid = item.Int
					st.solid = byNumeric
				}
			}
		}
	}

	if st.height == byNone {
		st.attrs.Height = DefaultHeight
	}
	if st.solid == byNone {
		st.attrs.Solid = DefaultSolid
	}
	return st.attrs
}

// decodeString разбирает строку вида "key:value"; нераспознанные
// ключи складываются как generic-свойства.
func (st *state) decodeString(appID, sval string) {
	switch {
	case strings.HasPrefix(sval, "height:"):
		if st.height == byString {
			return
		}
		if v, err := strconv.ParseFloat(strings.TrimPrefix(sval, "height:"), 64); err == nil {
			st.attrs.Height = v
			st.height = byString
		}

	case strings.HasPrefix(sval, "solid:"):
		if st.solid == byString {
			return
		}
		if v, err := strconv.Atoi(strings.TrimPrefix(sval, "solid:")); err == nil {
			st.attrs.Solid = v
			st.solid = byString
		}

	case strings.HasPrefix(sval, "Name:"):
		if !st.attrs.HasName {
			st.attrs.Name = strings.TrimSpace(strings.TrimPrefix(sval, "Name:"))
			st.attrs.HasName = true
		}

	case strings.HasPrefix(sval, "z:"):
		if st.attrs.HasZRel {
			return
		}
		if v, err := strconv.ParseFloat(strings.TrimPrefix(sval, "z:"), 64); err == nil {
			st.attrs.ZRel = v
			st.attrs.HasZRel = true
		}

	default:
		st.attrs.Extra = append(st.attrs.Extra, models.ExtraProp{
			Key:   "xdata_" + appID,
			Value: sval,
		})
	}
}

// orderedApps ставит канонический app id первым; если его нет в
// объявленном списке — добавляет пустую группу, чтобы он все равно
// был опрошен.
func orderedApps(apps []models.XDataApp) []models.XDataApp {
	out := make([]models.XDataApp, 0, len(apps)+1)
	var rest []models.XDataApp
	found := false
	for _, app := range apps {
		if app.AppID == CanonicalAppID {
			out = append(out, app)
			found = true
			continue
		}
		rest = append(rest, app)
	}
	if !found {
		out = append(out, models.XDataApp{AppID: CanonicalAppID})
	}
	return append(out, rest...)
}
