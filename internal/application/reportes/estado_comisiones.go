package reportes

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/application/ventas"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/repository"
)

// Descuentos de nómina sobre la comisión bruta del mes.
var (
	descuentoSalud   = decimal.NewFromFloat(0.04)  // 4%
	descuentoReserva = decimal.NewFromFloat(0.025) // 2.5%
)

// EstadoComisiones liquida las comisiones de un mes: suma la comisión
// ajustada de las facturas *pagadas* en ese mes (pago mes vencido) y resta
// los descuentos de salud y reserva.
func (uc *UseCase) EstadoComisiones(mes string) (*dto.EstadoComisionesMes, error) {
	if mes == "" {
		// Por defecto, el mes anterior al actual.
		mes = time.Now().AddDate(0, -1, 0).Format("2006-01")
	}
	if _, err := time.Parse("2006-01", mes); err != nil {
		return nil, domain.ErrFechaInvalida
	}

	pagado := true
	facturas, err := uc.facturaRepo.List(repository.FacturaFiltro{Pagado: &pagado})
	if err != nil {
		return nil, err
	}

	estado := &dto.EstadoComisionesMes{
		Mes:              mes,
		ComisionesBrutas: decimal.Zero,
		DescuentoSalud:   decimal.Zero,
		DescuentoReserva: decimal.Zero,
		TotalDescuentos:  decimal.Zero,
		ComisionesNetas:  decimal.Zero,
	}
	for _, f := range facturas {
		if f.FechaPagoReal == nil {
			estado.Alertas = append(estado.Alertas, "Factura pagada sin fecha de pago: "+f.ID)
			continue
		}
		if f.FechaPagoReal.Format("2006-01") != mes {
			continue
		}
		estado.ComisionesBrutas = estado.ComisionesBrutas.Add(f.ComisionAjustada)
		estado.FacturasProcesadas++
		estado.Detalle = append(estado.Detalle, *ventas.FacturaToResponse(f))
	}

	if estado.FacturasProcesadas == 0 {
		estado.Alertas = append(estado.Alertas, "No hay facturas pagadas en este mes")
		return estado, nil
	}

	estado.DescuentoSalud = estado.ComisionesBrutas.Mul(descuentoSalud).Round(2)
	estado.DescuentoReserva = estado.ComisionesBrutas.Mul(descuentoReserva).Round(2)
	estado.TotalDescuentos = estado.DescuentoSalud.Add(estado.DescuentoReserva)
	estado.ComisionesNetas = estado.ComisionesBrutas.Sub(estado.TotalDescuentos)
	return estado, nil
}

// EstadoComisionesPDF genera la liquidación del mes en PDF.
func (uc *UseCase) EstadoComisionesPDF(mes string) ([]byte, error) {
	estado, err := uc.EstadoComisiones(mes)
	if err != nil {
		return nil, err
	}
	if uc.pdfGen == nil {
		return nil, domain.ErrConflict // instancia sin generador de PDF
	}
	return uc.pdfGen.GenerateEstadoPDF(estado)
}
