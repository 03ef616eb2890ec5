package tools

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	spotDateColumns  = []string{"Date", "date", "일자", "기준일"}
	spotPriceColumns = []string{"Close/Last", "Close", "종가", "Price", "가격"}
	spotDateLayouts  = []string{"01/02/2006", "2006-01-02", "2006/01/02", "2006.01.02", "1/2/2006", "01-02-06", "2006-01-02 15:04:05"}
)

// SpotRow é uma linha válida da planilha de cotações.
type SpotRow struct {
	Date  time.Time
	Price float64
}

// ReadSpotPrices lê a primeira aba de uma planilha de cotações. As colunas de
// data e de preço são localizadas pelo cabeçalho; linhas ilegíveis são puladas
// e contadas em skipped.
func ReadSpotPrices(r io.Reader) (rows []SpotRow, skipped int, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("workbook has no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(all) == 0 {
		return nil, 0, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	header := all[0]
	dateCol := findColumn(header, spotDateColumns)
	priceCol := findColumn(header, spotPriceColumns)
	if dateCol < 0 || priceCol < 0 {
		return nil, 0, fmt.Errorf("columns not found (header: %v)", header)
	}

	for _, row := range all[1:] {
		if len(row) <= dateCol || len(row) <= priceCol {
			skipped++
			continue
		}
		d, ok := parseSpotDate(row[dateCol])
		if !ok {
			skipped++
			continue
		}
		p, ok := parseSpotPrice(row[priceCol])
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, SpotRow{Date: d, Price: p})
	}
	return rows, skipped, nil
}

func findColumn(header []string, candidates []string) int {
	for _, want := range candidates {
		for i, h := range header {
			if strings.TrimSpace(h) == want {
				return i
			}
		}
	}
	return -1
}

func parseSpotDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range spotDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	// data serial do Excel (dias desde 1899-12-30)
	if n, err := strconv.ParseFloat(s, 64); err == nil && n > 0 {
		t, err := excelize.ExcelDateToTime(n, false)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func parseSpotPrice(s string) (float64, bool) {
	s = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
