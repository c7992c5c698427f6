package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/dto"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/excel"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/infra"
	"github.com/immafla/mis-cuentas-app-v2-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ReporteService interface {
	// KPIsDiarios aggregates one business-timezone day; fecha empty = today.
	KPIsDiarios(ctx context.Context, usuarioEmail, fecha string) (*dto.KPIsDiariosResponse, error)
	Tendencia(ctx context.Context, filter dto.TendenciaFilter) ([]dto.TendenciaPunto, error)
	Valuacion(ctx context.Context) (*dto.ValuacionResponse, error)
	// ExportarVentas returns the XLSX bytes plus a suggested filename.
	ExportarVentas(ctx context.Context, desde, hasta string) ([]byte, string, error)
	// EnviarResumen mails the day's KPIs with the XLSX export attached.
	EnviarResumen(ctx context.Context, usuarioEmail, destinatario, fecha string) error
}

type reporteService struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	loteRepo     repository.LoteRepository
	configRepo   repository.ConfiguracionRepository
	mailer       *infra.Mailer
	rdb          *redis.Client
	loc          *time.Location
	negocio      string
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	loteRepo repository.LoteRepository,
	configRepo repository.ConfiguracionRepository,
	mailer *infra.Mailer,
	rdb *redis.Client,
	loc *time.Location,
	negocio string,
) ReporteService {
	return &reporteService{
		ventaRepo:    ventaRepo,
		productoRepo: productoRepo,
		loteRepo:     loteRepo,
		configRepo:   configRepo,
		mailer:       mailer,
		rdb:          rdb,
		loc:          loc,
		negocio:      negocio,
	}
}

// kpiAgregados is the cacheable, goal-independent part of the daily KPIs.
// Goal progress is recomputed per request so one cache entry serves every
// operator regardless of their personal objetivo_diario.
type kpiAgregados struct {
	TotalVentas    decimal.Decimal `json:"total_ventas"`
	CostoTotal     decimal.Decimal `json:"costo_total"`
	GananciaTotal  decimal.Decimal `json:"ganancia_total"`
	TotalItems     int             `json:"total_items"`
	CantidadVentas int             `json:"cantidad_ventas"`
}

func (s *reporteService) KPIsDiarios(ctx context.Context, usuarioEmail, fecha string) (*dto.KPIsDiariosResponse, error) {
	dia, err := s.resolverDia(fecha)
	if err != nil {
		return nil, err
	}

	agg, err := s.agregadosDelDia(ctx, dia)
	if err != nil {
		return nil, err
	}

	resp := &dto.KPIsDiariosResponse{
		Fecha:          dia.Format("2006-01-02"),
		TotalVentas:    agg.TotalVentas,
		CostoTotal:     agg.CostoTotal,
		GananciaTotal:  agg.GananciaTotal,
		TotalItems:     agg.TotalItems,
		CantidadVentas: agg.CantidadVentas,
		TicketPromedio: decimal.Zero,
	}
	if agg.CantidadVentas > 0 {
		resp.TicketPromedio = agg.TotalVentas.Div(decimal.NewFromInt(int64(agg.CantidadVentas))).Round(2)
	}
	if agg.TotalVentas.IsPositive() {
		resp.MargenNetoPct = int(agg.GananciaTotal.Div(agg.TotalVentas).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	}

	// Goal progress against the requesting operator's daily objective.
	if cfg, err := s.configRepo.FindByEmail(ctx, usuarioEmail); err == nil && cfg.ObjetivoDiario.IsPositive() {
		pct := int(agg.TotalVentas.Div(cfg.ObjetivoDiario).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
		if pct > 100 {
			pct = 100
		}
		resp.MetaProgresoPct = pct
	}

	return resp, nil
}

func (s *reporteService) agregadosDelDia(ctx context.Context, dia time.Time) (*kpiAgregados, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, kpiCacheKey(dia)).Result(); err == nil {
			var agg kpiAgregados
			if err := json.Unmarshal([]byte(cached), &agg); err == nil {
				return &agg, nil
			}
		}
	}

	ventas, err := s.ventaRepo.ListRango(ctx, dia, dia.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	agg := &kpiAgregados{
		TotalVentas:   decimal.Zero,
		CostoTotal:    decimal.Zero,
		GananciaTotal: decimal.Zero,
	}
	for _, v := range ventas {
		agg.TotalVentas = agg.TotalVentas.Add(v.Total)
		agg.CostoTotal = agg.CostoTotal.Add(v.CostoTotal)
		agg.GananciaTotal = agg.GananciaTotal.Add(v.GananciaTotal)
		agg.TotalItems += v.TotalItems
		agg.CantidadVentas++
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(agg); err == nil {
			if err := s.rdb.Set(ctx, kpiCacheKey(dia), payload, kpiCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("dia", dia.Format("2006-01-02")).Msg("no se pudieron cachear los KPIs")
			}
		}
	}
	return agg, nil
}

// Tendencia buckets sales per calendar day in the business timezone. Every day
// of the range is present in the output; days without sales carry zeros.
func (s *reporteService) Tendencia(ctx context.Context, filter dto.TendenciaFilter) ([]dto.TendenciaPunto, error) {
	desde, hasta, err := s.resolverRangoTendencia(filter)
	if err != nil {
		return nil, err
	}

	ventas, err := s.ventaRepo.ListRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		brutas   decimal.Decimal
		ganancia decimal.Decimal
	}
	porDia := make(map[string]*bucket)
	for _, v := range ventas {
		clave := v.VendidaEn.In(s.loc).Format("2006-01-02")
		b, ok := porDia[clave]
		if !ok {
			b = &bucket{brutas: decimal.Zero, ganancia: decimal.Zero}
			porDia[clave] = b
		}
		b.brutas = b.brutas.Add(v.Total)
		b.ganancia = b.ganancia.Add(v.GananciaTotal)
	}

	var puntos []dto.TendenciaPunto
	for dia := desde; dia.Before(hasta); dia = dia.AddDate(0, 0, 1) {
		clave := dia.Format("2006-01-02")
		punto := dto.TendenciaPunto{
			Fecha:        clave,
			VentasBrutas: decimal.Zero,
			GananciaNeta: decimal.Zero,
		}
		if b, ok := porDia[clave]; ok {
			punto.VentasBrutas = b.brutas
			punto.GananciaNeta = b.ganancia
		}
		puntos = append(puntos, punto)
	}
	return puntos, nil
}

func (s *reporteService) Valuacion(ctx context.Context) (*dto.ValuacionResponse, error) {
	costo, err := s.loteRepo.CostoInventarioRestante(ctx)
	if err != nil {
		return nil, err
	}
	valorVenta, err := s.productoRepo.ValorInventarioVenta(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ValuacionResponse{
		CostoNetoNegocio:  costo,
		ValorVentaNegocio: valorVenta,
	}, nil
}

func (s *reporteService) ExportarVentas(ctx context.Context, desde, hasta string) ([]byte, string, error) {
	d, h, err := s.resolverRango(desde, hasta)
	if err != nil {
		return nil, "", err
	}
	ventas, err := s.ventaRepo.ListRango(ctx, d, h)
	if err != nil {
		return nil, "", err
	}
	data, err := excel.VentasWorkbook(ventas, d, h)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ventas_%s_%s.xlsx", d.Format("2006-01-02"), h.AddDate(0, 0, -1).Format("2006-01-02"))
	return data, filename, nil
}

func (s *reporteService) EnviarResumen(ctx context.Context, usuarioEmail, destinatario, fecha string) error {
	if s.mailer == nil {
		return errors.New("el envío de correo no está configurado")
	}
	kpis, err := s.KPIsDiarios(ctx, usuarioEmail, fecha)
	if err != nil {
		return err
	}
	adjunto, filename, err := s.ExportarVentas(ctx, kpis.Fecha, kpis.Fecha)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s — Resumen de ventas %s", s.negocio, kpis.Fecha)
	body := fmt.Sprintf(
		"Resumen del día %s\n\nVentas: %d\nItems vendidos: %d\nTotal: $%s\nCosto: $%s\nGanancia: $%s\nTicket promedio: $%s\nMargen neto: %d%%\n",
		kpis.Fecha,
		kpis.CantidadVentas,
		kpis.TotalItems,
		kpis.TotalVentas.StringFixed(2),
		kpis.CostoTotal.StringFixed(2),
		kpis.GananciaTotal.StringFixed(2),
		kpis.TicketPromedio.StringFixed(2),
		kpis.MargenNetoPct,
	)
	return s.mailer.SendResumen(destinatario, subject, body, adjunto, filename)
}

// ── Range resolution ──────────────────────────────────────────────────────────

func (s *reporteService) resolverDia(fecha string) (time.Time, error) {
	if fecha == "" {
		now := time.Now().In(s.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc), nil
	}
	dia, err := time.ParseInLocation("2006-01-02", fecha, s.loc)
	if err != nil {
		return time.Time{}, errors.New("fecha debe tener formato YYYY-MM-DD")
	}
	return dia, nil
}

func (s *reporteService) resolverRango(desde, hasta string) (time.Time, time.Time, error) {
	d, err := s.resolverDia(desde)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	h := d.AddDate(0, 0, 1)
	if hasta != "" {
		fin, err := s.resolverDia(hasta)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		h = fin.AddDate(0, 0, 1)
	}
	if !h.After(d) {
		return time.Time{}, time.Time{}, errors.New("hasta debe ser igual o posterior a desde")
	}
	return d, h, nil
}

func (s *reporteService) resolverRangoTendencia(filter dto.TendenciaFilter) (time.Time, time.Time, error) {
	if filter.Desde != "" || filter.Hasta != "" {
		return s.resolverRango(filter.Desde, filter.Hasta)
	}
	dias := filter.Dias
	if dias < 1 {
		dias = 30
	}
	hoy, _ := s.resolverDia("")
	hasta := hoy.AddDate(0, 0, 1)
	desde := hasta.AddDate(0, 0, -dias)
	return desde, hasta, nil
}
