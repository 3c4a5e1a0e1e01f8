package ventas

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JuanMV14/comisiones-sub000/internal/application/dto"
	"github.com/JuanMV14/comisiones-sub000/internal/domain"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
)

// CrearVenta registra una venta nueva: calcula las ventanas de pago, deriva
// los campos financieros y fija la comisión inicial con la tabla de
// porcentajes. La factura nace sin pagar y con comision_ajustada igual a la
// comisión inicial.
func (uc *UseCase) CrearVenta(in dto.NuevaVentaRequest) (*dto.FacturaResponse, error) {
	if in.Pedido == "" || in.Cliente == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Valor.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.ValorFlete.IsNegative() || in.ValorFlete.GreaterThan(in.Valor) {
		return nil, domain.ErrInvalidInput
	}
	fechaFactura, err := fechaISO(in.FechaFactura)
	if err != nil {
		return nil, err
	}

	numero := in.Factura
	if numero == "" {
		numero = "FAC-" + in.Pedido
	}
	fechaEst, fechaMax := uc.reglas.VentanasPago(fechaFactura, in.CondicionEspecial)

	now := time.Now()
	f := &entity.Factura{
		ID:                  uuid.New().String(),
		Pedido:              in.Pedido,
		Cliente:             in.Cliente,
		Factura:             numero,
		Valor:               in.Valor,
		ValorFlete:          in.ValorFlete,
		ClientePropio:       in.ClientePropio,
		DescuentoPieFactura: in.DescuentoPieFactura,
		DescuentoAdicional:  in.DescuentoAdicional,
		CondicionEspecial:   in.CondicionEspecial,
		CiudadDestino:       in.CiudadDestino,
		RecogidaLocal:       in.RecogidaLocal,
		Referencia:          in.Referencia,
		FechaFactura:        fechaFactura,
		FechaPagoEst:        fechaEst,
		FechaPagoMax:        fechaMax,
		Pagado:              false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	uc.reglas.DerivarCampos(f, now)

	calc := comision.Calcular(f.BaseComision, f.ClientePropio, tieneDescuentoAdicional(f))
	f.Porcentaje = calc.Porcentaje
	f.Comision = calc.Comision
	f.ComisionAjustada = calc.Comision
	f.ValorDevuelto = decimal.Zero

	if err := uc.facturaRepo.Create(f); err != nil {
		return nil, err
	}
	return FacturaToResponse(f), nil
}

// tieneDescuentoAdicional: cualquier descuento negociado aparte o descuento
// por volumen en líneas reduce el porcentaje a la mitad del nivel del
// cliente. El descuento a pie de factura no cuenta aquí.
func tieneDescuentoAdicional(f *entity.Factura) bool {
	return f.DescuentoAdicional.IsPositive() || f.DescuentoAplicado.IsPositive()
}
