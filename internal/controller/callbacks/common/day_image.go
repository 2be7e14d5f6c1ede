package common

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	dayImageWidth    = 800
	dayImageHeight   = 1000
	dayHeaderHeight  = 90
	dayLabelsWidth   = 80
	dayLegendHeight  = 70
	barPaddingX      = 10
	minBarHeight     = 34.0
	barBorderRadius  = 8.0
	barShadowOffset  = 3.0
	untimedRowHeight = 44.0
	dayHourPadding   = 1
)

// Константы шрифтов
const (
	dayTitleFontSize  = 26.0
	dayHourFontSize   = 16.0
	dayBarFontSize    = 17.0
	dayLegendFontSize = 14.0
)

// Цветовая схема
var (
	dayBgColor        = color.RGBA{245, 246, 248, 255}
	dayTextColor      = color.RGBA{80, 85, 90, 220}
	dayHourLabelColor = color.RGBA{110, 115, 120, 200}
	dayHourLineColor  = color.NRGBA{150, 150, 150, 255}
	dayNowLineColor   = color.NRGBA{255, 80, 80, 200}
	barTextColor      = color.RGBA{20, 24, 28, 230}
	barShadowColor    = color.RGBA{0, 0, 0, 20}
	doneOverlayColor  = color.RGBA{255, 255, 255, 120}
	legendItemColor   = color.RGBA{70, 74, 78, 220}
)

// DayItem один экземпляр расписания для отрисовки на карточке дня
type DayItem struct {
	Schedule *model.Schedule
	Dog      *model.Dog
	Instance *model.ScheduleInstance
}

// dayHourRange диапазон часов для отображения
type dayHourRange struct {
	start int
	end   int
	total int
}

var cachedDayFont *truetype.Font

// loadDayFont загружает TTF из DAY_IMAGE_FONT или использует basicfont
func loadDayFont(dc *gg.Context, size float64) {
	if cachedDayFont == nil {
		path := os.Getenv("DAY_IMAGE_FONT")
		if path != "" {
			if data, err := os.ReadFile(path); err == nil {
				if f, err := truetype.Parse(data); err == nil {
					cachedDayFont = f
				}
			}
		}
	}

	if cachedDayFont != nil {
		face := truetype.NewFace(cachedDayFont, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		dc.SetFontFace(face)
		return
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// GenerateDayImage рисует карточку дня: события без времени сверху,
// события со временем на вертикальной шкале часов, цвет по типу события
func GenerateDayImage(date time.Time, items []DayItem) ([]byte, error) {
	timed, untimed := splitByTime(items)
	hours := calculateDayHourRange(timed)

	untimedBlock := float64(len(untimed)) * untimedRowHeight
	gridTop := float64(dayHeaderHeight) + untimedBlock
	gridHeight := float64(dayImageHeight) - gridTop - float64(dayLegendHeight)
	cellHeight := gridHeight / float64(hours.total)

	dc := gg.NewContext(dayImageWidth, dayImageHeight)
	dc.SetColor(dayBgColor)
	dc.Clear()

	drawDayTitle(dc, date)
	drawUntimedItems(dc, untimed)
	drawDayHourGrid(dc, gridTop, hours, cellHeight)
	for _, item := range timed {
		drawTimedBar(dc, item, gridTop, hours, cellHeight)
	}
	drawDayNowLine(dc, date, gridTop, hours, cellHeight)
	drawDayLegend(dc, items)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// splitByTime делит экземпляры на привязанные и не привязанные ко времени
func splitByTime(items []DayItem) (timed, untimed []DayItem) {
	for _, item := range items {
		if item.Instance.ScheduledTime != nil {
			timed = append(timed, item)
		} else {
			untimed = append(untimed, item)
		}
	}
	return timed, untimed
}

// calculateDayHourRange определяет диапазон часов для отображения
func calculateDayHourRange(timed []DayItem) dayHourRange {
	minHour := 24
	maxHour := 0

	for _, item := range timed {
		h := item.Instance.ScheduledTime.Hour
		if h < minHour {
			minHour = h
		}
		if h > maxHour {
			maxHour = h
		}
	}

	if minHour == 24 {
		minHour = 8
		maxHour = 21
	}

	start := minHour - dayHourPadding
	end := maxHour + dayHourPadding + 1
	if start < 0 {
		start = 0
	}
	if end > 23 {
		end = 23
	}

	return dayHourRange{start: start, end: end, total: end - start + 1}
}

// drawDayTitle рисует дату с днём недели
func drawDayTitle(dc *gg.Context, date time.Time) {
	title := fmt.Sprintf("%s, %s", date.Format("02.01.2006"), dayWeekdayName(date.Weekday()))

	loadDayFont(dc, dayTitleFontSize)
	dc.SetColor(dayTextColor)
	dc.DrawStringAnchored(title, float64(dayImageWidth)/2, float64(dayHeaderHeight)/2, 0.5, 0.3)
}

// drawUntimedItems рисует блок событий без времени над шкалой
func drawUntimedItems(dc *gg.Context, untimed []DayItem) {
	y := float64(dayHeaderHeight)
	for _, item := range untimed {
		fillColor := typeColor(item.Schedule.Type)
		barW := float64(dayImageWidth) - float64(dayLabelsWidth) - float64(barPaddingX*2)
		x := float64(dayLabelsWidth + barPaddingX)

		dc.SetColor(barShadowColor)
		dc.DrawRoundedRectangle(x+barShadowOffset, y+2+barShadowOffset, barW, untimedRowHeight-8, barBorderRadius)
		dc.Fill()

		dc.SetColor(fillColor)
		dc.DrawRoundedRectangle(x, y+2, barW, untimedRowHeight-8, barBorderRadius)
		dc.Fill()

		if item.Instance.IsCompleted {
			dc.SetColor(doneOverlayColor)
			dc.DrawRoundedRectangle(x, y+2, barW, untimedRowHeight-8, barBorderRadius)
			dc.Fill()
		}

		loadDayFont(dc, dayBarFontSize)
		dc.SetColor(barTextColor)
		dc.DrawStringAnchored(barLabel(item), x+12, y+untimedRowHeight/2, 0, 0.35)

		y += untimedRowHeight
	}
}

// drawDayHourGrid рисует подписи часов и горизонтальные линии
func drawDayHourGrid(dc *gg.Context, gridTop float64, hours dayHourRange, cellHeight float64) {
	loadDayFont(dc, dayHourFontSize)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		y := gridTop + float64(hIdx)*cellHeight

		dc.SetLineWidth(0.3)
		dc.SetColor(dayHourLineColor)
		dc.DrawLine(float64(dayLabelsWidth), y, float64(dayImageWidth)-barPaddingX, y)
		dc.Stroke()

		if hIdx < hours.total {
			dc.SetColor(dayHourLabelColor)
			label := dayHourLabel(hours.start + hIdx)
			dc.DrawStringAnchored(label, float64(dayLabelsWidth)-10, y, 1, 0.5)
		}
	}
}

// drawTimedBar рисует полосу одного события на шкале
func drawTimedBar(dc *gg.Context, item DayItem, gridTop float64, hours dayHourRange, cellHeight float64) {
	ts := item.Instance.ScheduledTime
	barHour := float64(ts.Hour) + float64(ts.Minute)/60.0

	y := gridTop + (barHour-float64(hours.start))*cellHeight
	barH := cellHeight - 6
	if barH < minBarHeight {
		barH = minBarHeight
	}

	fillColor := typeColor(item.Schedule.Type)
	barW := float64(dayImageWidth) - float64(dayLabelsWidth) - float64(barPaddingX*2)
	x := float64(dayLabelsWidth + barPaddingX)

	dc.SetColor(barShadowColor)
	dc.DrawRoundedRectangle(x+barShadowOffset, y+2+barShadowOffset, barW, barH, barBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x, y+2, barW, barH, barBorderRadius)
	dc.Fill()

	dc.SetColor(darkenDayColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y+2, barW, barH, barBorderRadius)
	dc.Stroke()

	if item.Instance.IsCompleted {
		dc.SetColor(doneOverlayColor)
		dc.DrawRoundedRectangle(x, y+2, barW, barH, barBorderRadius)
		dc.Fill()
	}

	loadDayFont(dc, dayBarFontSize)
	dc.SetColor(barTextColor)
	text := fmt.Sprintf("%s  %s", ts.String(), barLabel(item))
	dc.DrawStringAnchored(text, x+12, y+2+barH/2, 0, 0.35)
}

// barLabel текст полосы: собака и описание, с отметкой выполнения
func barLabel(item DayItem) string {
	label := fmt.Sprintf("%s — %s", item.Dog.Name, item.Schedule.Description)
	if item.Instance.IsCompleted {
		label += " ✓"
	}
	if len(label) > 60 {
		label = label[:57] + "..."
	}
	return label
}

// drawDayNowLine рисует линию текущего времени, если карточка про сегодня
func drawDayNowLine(dc *gg.Context, date time.Time, gridTop float64, hours dayHourRange, cellHeight float64) {
	now := time.Now()
	if date.Year() != now.Year() || date.YearDay() != now.YearDay() {
		return
	}

	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if currentHour < float64(hours.start) || currentHour > float64(hours.end)+1 {
		return
	}

	y := gridTop + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(dayNowLineColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(dayLabelsWidth), y, float64(dayImageWidth)-barPaddingX, y)
	dc.Stroke()
}

// drawDayLegend рисует легенду из типов, встречающихся на карточке
func drawDayLegend(dc *gg.Context, items []DayItem) {
	seen := make(map[model.ScheduleType]bool)
	var order []model.ScheduleType
	for _, item := range items {
		if !seen[item.Schedule.Type] {
			seen[item.Schedule.Type] = true
			order = append(order, item.Schedule.Type)
		}
	}

	boxW := 18.0
	boxH := 12.0
	x := float64(dayLabelsWidth)
	y := float64(dayImageHeight) - float64(dayLegendHeight) + 20

	for _, typ := range order {
		meta := typ.Meta()

		dc.SetColor(typeColor(typ))
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		loadDayFont(dc, dayLegendFontSize)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(meta.Title, x+boxW+6, y+boxH/2, 0, 0.35)

		w, _ := dc.MeasureString(meta.Title)
		x += boxW + w + 30
	}
}

// typeColor переводит hex-цвет типа в color.RGBA
func typeColor(typ model.ScheduleType) color.RGBA {
	hex := typ.Meta().Color
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{220, 220, 220, 255}
	}
	r, err1 := strconv.ParseUint(hex[1:3], 16, 8)
	g, err2 := strconv.ParseUint(hex[3:5], 16, 8)
	b, err3 := strconv.ParseUint(hex[5:7], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return color.RGBA{220, 220, 220, 255}
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// darkenDayColor затемняет цвет на указанный множитель
func darkenDayColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func dayHourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}

// дни недели на русском
func dayWeekdayName(weekday time.Weekday) string {
	weekdays := map[time.Weekday]string{
		time.Monday:    "понедельник",
		time.Tuesday:   "вторник",
		time.Wednesday: "среда",
		time.Thursday:  "четверг",
		time.Friday:    "пятница",
		time.Saturday:  "суббота",
		time.Sunday:    "воскресенье",
	}
	return weekdays[weekday]
}
