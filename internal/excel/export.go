package excel

import (
	"fmt"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/model"

	"github.com/xuri/excelize/v2"
)

// VentasWorkbook builds an XLSX export of sales: one "Ventas" sheet with a row
// per sale and a "Detalle" sheet with a row per line item. Returns the
// serialized workbook.
func VentasWorkbook(ventas []model.Venta, desde, hasta time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const resumen = "Ventas"
	const detalle = "Detalle"

	if err := f.SetSheetName("Sheet1", resumen); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(detalle); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	// ── Ventas sheet ──────────────────────────────────────────────────────────
	resumenCols := []string{"Fecha", "Hora", "Venta", "Items", "Total", "Costo", "Ganancia", "Conflicto stock"}
	for i, col := range resumenCols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(resumen, cell, col); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(resumen, "A1", "H1", header); err != nil {
		return nil, err
	}

	for i, v := range ventas {
		row := i + 2
		conflicto := ""
		if v.ConflictoStock {
			conflicto = "SI"
		}
		valores := []interface{}{
			v.VendidaEn.Format("2006-01-02"),
			v.VendidaEn.Format("15:04"),
			v.ID.String()[:8],
			v.TotalItems,
			toFloat(v.Total),
			toFloat(v.CostoTotal),
			toFloat(v.GananciaTotal),
			conflicto,
		}
		for j, valor := range valores {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(resumen, cell, valor); err != nil {
				return nil, err
			}
		}
	}

	// ── Detalle sheet ─────────────────────────────────────────────────────────
	detalleCols := []string{"Fecha", "Venta", "Producto", "Código", "Cantidad", "Precio unit.", "Costo unit.", "Total línea", "Ganancia línea"}
	for i, col := range detalleCols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(detalle, cell, col); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(detalle, "A1", "I1", header); err != nil {
		return nil, err
	}

	row := 2
	for _, v := range ventas {
		for _, item := range v.Items {
			valores := []interface{}{
				v.VendidaEn.Format("2006-01-02"),
				v.ID.String()[:8],
				item.Nombre,
				item.CodigoBarras,
				item.Cantidad,
				toFloat(item.PrecioUnitario),
				toFloat(item.CostoUnitario),
				toFloat(item.TotalLinea),
				toFloat(item.GananciaLinea),
			}
			for j, valor := range valores {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				if err := f.SetCellValue(detalle, cell, valor); err != nil {
					return nil, err
				}
			}
			row++
		}
	}

	for _, sheet := range []string{resumen, detalle} {
		if err := f.SetColWidth(sheet, "A", "I", 14); err != nil {
			return nil, err
		}
	}

	titulo := fmt.Sprintf("Ventas %s a %s", desde.Format("2006-01-02"), hasta.AddDate(0, 0, -1).Format("2006-01-02"))
	f.SetDocProps(&excelize.DocProperties{Title: titulo})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toFloat(d interface{ InexactFloat64() float64 }) float64 {
	return d.InexactFloat64()
}
