package reportes_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/application/reportes"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeFacturaRepo struct {
	facturas []*entity.Factura
}

func (r *fakeFacturaRepo) Create(f *entity.Factura) error { r.facturas = append(r.facturas, f); return nil }
func (r *fakeFacturaRepo) Update(f *entity.Factura) error { return nil }
func (r *fakeFacturaRepo) GetByID(id string) (*entity.Factura, error) {
	for _, f := range r.facturas {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}
func (r *fakeFacturaRepo) List(filtro repository.FacturaFiltro) ([]*entity.Factura, error) {
	var out []*entity.Factura
	for _, f := range r.facturas {
		if filtro.Pagado != nil && f.Pagado != *filtro.Pagado {
			continue
		}
		if filtro.MesFactura != "" && f.FechaFactura.Format("2006-01") != filtro.MesFactura {
			continue
		}
		if filtro.Cliente != "" && !strings.Contains(strings.ToLower(f.Cliente), strings.ToLower(filtro.Cliente)) {
			continue
		}
		copia := *f
		out = append(out, &copia)
	}
	return out, nil
}

type fakeMetaRepo struct {
	metas map[string]*entity.Meta
}

func (r *fakeMetaRepo) GetByMes(mes string) (*entity.Meta, error) {
	return r.metas[mes], nil
}
func (r *fakeMetaRepo) Upsert(meta *entity.Meta) error {
	r.metas[meta.Mes] = meta
	return nil
}

type fakePDFGen struct {
	llamado bool
}

func (g *fakePDFGen) GenerateEstadoPDF(*dto.EstadoComisionesMes) ([]byte, error) {
	g.llamado = true
	return []byte("%PDF-1.7"), nil
}

func fechaPtr(t time.Time) *time.Time { return &t }

func facturaConPago(id, cliente, numero string, fechaFactura time.Time, fechaPago *time.Time, comisionAjustada int64) *entity.Factura {
	f := &entity.Factura{
		ID:               id,
		Pedido:           "P-" + id,
		Cliente:          cliente,
		Factura:          numero,
		Valor:            decimal.NewFromInt(1_190_000),
		Comision:         decimal.NewFromInt(21_250),
		ComisionAjustada: decimal.NewFromInt(comisionAjustada),
		FechaFactura:     fechaFactura,
	}
	if fechaPago != nil {
		f.Pagado = true
		f.FechaPagoReal = fechaPago
	}
	return f
}

func nuevoUseCase(facturas ...*entity.Factura) (*reportes.UseCase, *fakeFacturaRepo, *fakeMetaRepo, *fakePDFGen) {
	facturaRepo := &fakeFacturaRepo{facturas: facturas}
	metaRepo := &fakeMetaRepo{metas: map[string]*entity.Meta{}}
	pdfGen := &fakePDFGen{}
	uc := reportes.NewUseCase(facturaRepo, metaRepo, comision.ReglasPorDefecto(), pdfGen)
	return uc, facturaRepo, metaRepo, pdfGen
}

var (
	marzo = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	abril = time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)
)

// ──────────────────────────────────────────────────────────────────────────────
// Agrupaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestPorMesFactura_AgrupaPorMesCalendario(t *testing.T) {
	uc, _, _, _ := nuevoUseCase(
		facturaConPago("1", "A", "FAC-1", marzo, nil, 21_250),
		facturaConPago("2", "B", "FAC-2", marzo.AddDate(0, 0, 5), nil, 21_250),
		facturaConPago("3", "C", "FAC-3", abril, nil, 21_250),
	)
	out, err := uc.PorMesFactura()
	require.NoError(t, err)

	require.Len(t, out.Filas, 2)
	assert.Equal(t, "2025-03", out.Filas[0].Periodo)
	assert.Equal(t, 2, out.Filas[0].NumFacturas)
	assert.True(t, out.Filas[0].TotalVentas.Equal(decimal.NewFromInt(2_380_000)))
	assert.Equal(t, "2025-04", out.Filas[1].Periodo)
}

// Las variantes -1/-2 de una factura cuentan como una sola factura única,
// pero sus valores sí se suman.
func TestPorMesFactura_VariantesCuentanUnaVez(t *testing.T) {
	uc, _, _, _ := nuevoUseCase(
		facturaConPago("1", "A", "FAC-900-1", marzo, nil, 21_250),
		facturaConPago("2", "A", "FAC-900-2", marzo, nil, 21_250),
	)
	out, err := uc.PorMesFactura()
	require.NoError(t, err)

	require.Len(t, out.Filas, 1)
	assert.Equal(t, 1, out.Filas[0].NumFacturas,
		"FAC-900-1 y FAC-900-2 agrupan bajo FAC-900")
	assert.True(t, out.Filas[0].TotalVentas.Equal(decimal.NewFromInt(2_380_000)),
		"los valores de ambas variantes se suman")
}

// El reporte por cobro usa la comisión ajustada y reporta aparte las facturas
// pagadas sin fecha de pago en lugar de perderlas.
func TestPorMesCobro_SinFechaPagoSeReporta(t *testing.T) {
	sinFecha := facturaConPago("3", "C", "FAC-3", marzo, nil, 17_000)
	sinFecha.Pagado = true // pagada pero nunca se registró la fecha

	uc, _, _, _ := nuevoUseCase(
		facturaConPago("1", "A", "FAC-1", marzo, fechaPtr(abril), 17_000),
		facturaConPago("2", "B", "FAC-2", marzo, nil, 21_250), // sin pagar: fuera
		sinFecha,
	)
	out, err := uc.PorMesCobro()
	require.NoError(t, err)

	require.Len(t, out.Filas, 1)
	assert.Equal(t, "2025-04", out.Filas[0].Periodo, "agrupa por mes de pago, no de factura")
	assert.True(t, out.Filas[0].TotalComisiones.Equal(decimal.NewFromInt(17_000)),
		"suma la comisión ajustada, no la original")
	assert.Equal(t, []string{"3"}, out.SinFechaPago)
}

// "Álvarez  SAS" y "alvarez sas" son el mismo cliente para el reporte.
func TestPorCliente_NormalizaNombres(t *testing.T) {
	uc, _, _, _ := nuevoUseCase(
		facturaConPago("1", "Álvarez  SAS", "FAC-1", marzo, nil, 21_250),
		facturaConPago("2", "alvarez sas", "FAC-2", marzo, nil, 21_250),
		facturaConPago("3", "Otro Cliente", "FAC-3", marzo, nil, 21_250),
	)
	out, err := uc.PorCliente()
	require.NoError(t, err)

	require.Len(t, out.Filas, 2)
	assert.Equal(t, "alvarez sas", out.Filas[0].Periodo)
	assert.True(t, out.Filas[0].TotalVentas.Equal(decimal.NewFromInt(2_380_000)),
		"ambas variantes del nombre suman al mismo grupo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de comisiones (liquidación mensual)
// ──────────────────────────────────────────────────────────────────────────────

func TestEstadoComisiones_DescuentosDeNomina(t *testing.T) {
	uc, _, _, _ := nuevoUseCase(
		facturaConPago("1", "A", "FAC-1", marzo, fechaPtr(abril), 600_000),
		facturaConPago("2", "B", "FAC-2", marzo, fechaPtr(abril), 400_000),
		// Pagada en otro mes: no entra en esta liquidación.
		facturaConPago("3", "C", "FAC-3", marzo, fechaPtr(marzo), 100_000),
	)
	estado, err := uc.EstadoComisiones("2025-04")
	require.NoError(t, err)

	assert.Equal(t, 2, estado.FacturasProcesadas)
	assert.True(t, estado.ComisionesBrutas.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, estado.DescuentoSalud.Equal(decimal.NewFromInt(40_000)), "salud 4%%")
	assert.True(t, estado.DescuentoReserva.Equal(decimal.NewFromInt(25_000)), "reserva 2.5%%")
	assert.True(t, estado.TotalDescuentos.Equal(decimal.NewFromInt(65_000)))
	assert.True(t, estado.ComisionesNetas.Equal(decimal.NewFromInt(935_000)))
	assert.Len(t, estado.Detalle, 2)
}

func TestEstadoComisiones_MesSinPagos(t *testing.T) {
	uc, _, _, _ := nuevoUseCase(
		facturaConPago("1", "A", "FAC-1", marzo, fechaPtr(marzo), 21_250),
	)
	estado, err := uc.EstadoComisiones("2025-07")
	require.NoError(t, err)

	assert.Equal(t, 0, estado.FacturasProcesadas)
	assert.True(t, estado.ComisionesNetas.IsZero())
	assert.Contains(t, estado.Alertas, "No hay facturas pagadas en este mes")
}

func TestEstadoComisiones_MesInvalido(t *testing.T) {
	uc, _, _, _ := nuevoUseCase()
	_, err := uc.EstadoComisiones("abril-2025")
	assert.Error(t, err)
}

func TestEstadoComisionesPDF_GeneraBytes(t *testing.T) {
	uc, _, _, pdfGen := nuevoUseCase(
		facturaConPago("1", "A", "FAC-1", marzo, fechaPtr(abril), 21_250),
	)
	pdfBytes, err := uc.EstadoComisionesPDF("2025-04")
	require.NoError(t, err)

	assert.True(t, pdfGen.llamado, "debe delegar en el generador")
	assert.NotEmpty(t, pdfBytes)
}

// ──────────────────────────────────────────────────────────────────────────────
// Meta y alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestProgresoMeta_SoloClientesPropios(t *testing.T) {
	propia := facturaConPago("1", "A", "FAC-1", marzo, nil, 21_250)
	propia.ClientePropio = true
	externa := facturaConPago("2", "B", "FAC-2", marzo, nil, 21_250)

	uc, _, metaRepo, _ := nuevoUseCase(propia, externa)
	metaRepo.metas["2025-03"] = &entity.Meta{
		Mes:        "2025-03",
		MetaVentas: decimal.NewFromInt(2_000_000),
	}

	out, err := uc.ProgresoMeta("2025-03")
	require.NoError(t, err)

	assert.True(t, out.VentasActuales.Equal(decimal.NewFromInt(1_190_000)),
		"solo cuentan ventas de clientes propios")
	assert.True(t, out.Progreso.Equal(decimal.RequireFromString("59.5")))
	assert.True(t, out.Faltante.Equal(decimal.NewFromInt(810_000)))
}

func TestActualizarMeta_Valida(t *testing.T) {
	uc, _, metaRepo, _ := nuevoUseCase()

	meta, err := uc.ActualizarMeta("2025-05", decimal.NewFromInt(50_000_000), 10)
	require.NoError(t, err)
	assert.Equal(t, "2025-05", meta.Mes)
	assert.NotNil(t, metaRepo.metas["2025-05"])

	_, err = uc.ActualizarMeta("mayo", decimal.NewFromInt(1), 1)
	assert.Error(t, err, "mes debe ser YYYY-MM")
}

func TestAlertas_VencidasYPorVencer(t *testing.T) {
	hoy := time.Now()

	vencida := facturaConPago("1", "A", "FAC-1", hoy.AddDate(0, 0, -60), nil, 21_250)
	vencida.FechaPagoMax = hoy.AddDate(0, 0, -10)

	porVencer := facturaConPago("2", "B", "FAC-2", hoy.AddDate(0, 0, -42), nil, 21_250)
	porVencer.FechaPagoMax = hoy.AddDate(0, 0, 3)

	lejana := facturaConPago("3", "C", "FAC-3", hoy, nil, 21_250)
	lejana.FechaPagoMax = hoy.AddDate(0, 0, 45)

	pagada := facturaConPago("4", "D", "FAC-4", hoy.AddDate(0, 0, -90), fechaPtr(hoy), 21_250)
	pagada.FechaPagoMax = hoy.AddDate(0, 0, -45)

	uc, _, _, _ := nuevoUseCase(vencida, porVencer, lejana, pagada)
	alertas, err := uc.Alertas()
	require.NoError(t, err)

	require.Len(t, alertas, 2, "solo la vencida y la próxima a vencer alertan")
	assert.Equal(t, "1", alertas[0].FacturaID, "la más vencida primero")
	assert.Equal(t, "vencida", alertas[0].Nivel)
	assert.Equal(t, "2", alertas[1].FacturaID)
	assert.Equal(t, "por_vencer", alertas[1].Nivel)
}
