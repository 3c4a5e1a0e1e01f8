// Package reportes contiene los roll-ups mensuales y por cliente sobre los
// campos ya derivados de las facturas. Aquí no vive ninguna regla de
// comisión: solo agrupación, suma y condiciones de calidad de datos.
package reportes

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

// EstadoPDFGenerator renderiza la liquidación mensual como PDF.
type EstadoPDFGenerator interface {
	GenerateEstadoPDF(estado *dto.EstadoComisionesMes) ([]byte, error)
}

// UseCase casos de uso de reportes.
type UseCase struct {
	facturaRepo repository.FacturaRepository
	metaRepo    repository.MetaRepository
	reglas      comision.Reglas
	pdfGen      EstadoPDFGenerator
}

// NewUseCase construye el caso de uso. pdfGen puede ser nil si la instancia
// no expone el endpoint de PDF.
func NewUseCase(
	facturaRepo repository.FacturaRepository,
	metaRepo repository.MetaRepository,
	reglas comision.Reglas,
	pdfGen EstadoPDFGenerator,
) *UseCase {
	return &UseCase{facturaRepo: facturaRepo, metaRepo: metaRepo, reglas: reglas, pdfGen: pdfGen}
}

// normalizarCliente es la llave de agrupación por cliente: minúsculas, sin
// tildes y sin espacios sobrantes, para que "Álvarez  SAS" y "alvarez sas"
// caigan en el mismo grupo.
var quitarTildes = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizarCliente(nombre string) string {
	limpio, _, err := transform.String(quitarTildes, nombre)
	if err != nil {
		limpio = nombre
	}
	return strings.Join(strings.Fields(strings.ToLower(limpio)), " ")
}

// acumulador de un grupo del reporte.
type grupo struct {
	ventas     decimal.Decimal
	comisiones decimal.Decimal
	facturas   map[string]struct{} // llaves factura_base, para contar únicas
}

func nuevoGrupo() *grupo {
	return &grupo{ventas: decimal.Zero, comisiones: decimal.Zero, facturas: map[string]struct{}{}}
}

func (g *grupo) sumar(f *entity.Factura, comisionCampo decimal.Decimal) {
	g.ventas = g.ventas.Add(f.Valor)
	g.comisiones = g.comisiones.Add(comisionCampo)
	g.facturas[f.FacturaBase()] = struct{}{}
}

func filasOrdenadas(grupos map[string]*grupo) []dto.FilaReporte {
	filas := make([]dto.FilaReporte, 0, len(grupos))
	for periodo, g := range grupos {
		filas = append(filas, dto.FilaReporte{
			Periodo:         periodo,
			TotalVentas:     g.ventas,
			TotalComisiones: g.comisiones,
			NumFacturas:     len(g.facturas),
		})
	}
	sort.Slice(filas, func(i, j int) bool { return filas[i].Periodo < filas[j].Periodo })
	return filas
}

// PorMesFactura agrupa ventas y comisiones por mes calendario de
// fecha_factura.
func (uc *UseCase) PorMesFactura() (*dto.ReporteResponse, error) {
	facturas, err := uc.facturaRepo.List(repository.FacturaFiltro{})
	if err != nil {
		return nil, err
	}
	grupos := map[string]*grupo{}
	for _, f := range facturas {
		if f.FechaFactura.IsZero() {
			continue // sin fecha de factura no hay periodo válido
		}
		mes := f.FechaFactura.Format("2006-01")
		if grupos[mes] == nil {
			grupos[mes] = nuevoGrupo()
		}
		grupos[mes].sumar(f, f.Comision)
	}
	return &dto.ReporteResponse{Filas: filasOrdenadas(grupos)}, nil
}

// PorMesCobro agrupa las facturas pagadas por mes de fecha_pago_real, sumando
// la comisión ajustada (la efectivamente ganada). Una factura marcada pagada
// sin fecha de pago es un problema de datos: se reporta en SinFechaPago en
// lugar de descartarse o caer en un periodo equivocado.
func (uc *UseCase) PorMesCobro() (*dto.ReporteResponse, error) {
	pagado := true
	facturas, err := uc.facturaRepo.List(repository.FacturaFiltro{Pagado: &pagado})
	if err != nil {
		return nil, err
	}
	grupos := map[string]*grupo{}
	var sinFecha []string
	for _, f := range facturas {
		if f.FechaPagoReal == nil {
			sinFecha = append(sinFecha, f.ID)
			continue
		}
		mes := f.FechaPagoReal.Format("2006-01")
		if grupos[mes] == nil {
			grupos[mes] = nuevoGrupo()
		}
		grupos[mes].sumar(f, f.ComisionAjustada)
	}
	return &dto.ReporteResponse{Filas: filasOrdenadas(grupos), SinFechaPago: sinFecha}, nil
}

// PorCliente agrupa por nombre de cliente normalizado.
func (uc *UseCase) PorCliente() (*dto.ReporteResponse, error) {
	facturas, err := uc.facturaRepo.List(repository.FacturaFiltro{})
	if err != nil {
		return nil, err
	}
	grupos := map[string]*grupo{}
	for _, f := range facturas {
		llave := normalizarCliente(f.Cliente)
		if llave == "" {
			llave = "(sin cliente)"
		}
		if grupos[llave] == nil {
			grupos[llave] = nuevoGrupo()
		}
		grupos[llave].sumar(f, f.Comision)
	}
	return &dto.ReporteResponse{Filas: filasOrdenadas(grupos)}, nil
}

// ProgresoMeta calcula el avance de la meta del mes sobre las ventas de
// clientes propios facturadas en ese mes.
func (uc *UseCase) ProgresoMeta(mes string) (*dto.ProgresoMeta, error) {
	if mes == "" {
		mes = time.Now().Format("2006-01")
	}
	meta, err := uc.metaRepo.GetByMes(mes)
	if err != nil {
		return nil, err
	}
	metaVentas := decimal.Zero
	if meta != nil {
		metaVentas = meta.MetaVentas
	}

	facturas, err := uc.facturaRepo.List(repository.FacturaFiltro{MesFactura: mes})
	if err != nil {
		return nil, err
	}
	ventas := decimal.Zero
	for _, f := range facturas {
		if f.ClientePropio {
			ventas = ventas.Add(f.Valor)
		}
	}

	progreso := decimal.Zero
	if metaVentas.IsPositive() {
		progreso = ventas.Div(metaVentas).Mul(decimal.NewFromInt(100)).Round(1)
	}
	faltante := metaVentas.Sub(ventas)
	if faltante.IsNegative() {
		faltante = decimal.Zero
	}
	return &dto.ProgresoMeta{
		Mes:            mes,
		MetaVentas:     metaVentas,
		VentasActuales: ventas,
		Progreso:       progreso,
		Faltante:       faltante,
	}, nil
}

// Umbral de "por vencer" para alertas.
const diasPorVencer = 5

// Alertas lista facturas sin pagar vencidas o próximas a vencer.
func (uc *UseCase) Alertas() ([]dto.AlertaFactura, error) {
	noPagado := false
	facturas, err := uc.facturaRepo.List(repository.FacturaFiltro{Pagado: &noPagado})
	if err != nil {
		return nil, err
	}
	hoy := time.Now()
	var alertas []dto.AlertaFactura
	for _, f := range facturas {
		uc.reglas.DerivarCampos(f, hoy)
		if f.DiasVencimiento == nil {
			continue
		}
		dias := *f.DiasVencimiento
		if dias > diasPorVencer {
			continue
		}
		nivel := "por_vencer"
		if dias < 0 {
			nivel = "vencida"
		}
		alertas = append(alertas, dto.AlertaFactura{
			FacturaID:       f.ID,
			Pedido:          f.Pedido,
			Cliente:         f.Cliente,
			Valor:           f.Valor,
			Comision:        f.Comision,
			DiasVencimiento: dias,
			Nivel:           nivel,
		})
	}
	sort.Slice(alertas, func(i, j int) bool { return alertas[i].DiasVencimiento < alertas[j].DiasVencimiento })
	return alertas, nil
}
