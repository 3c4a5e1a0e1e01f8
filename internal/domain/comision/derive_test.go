package comision_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
	"github.com/JuanMV14/comisiones-sub000/internal/domain/entity"
)

var hoy = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// Venta típica: bruto 1.190.000 sin flete → neto 1.000.000, iva 190.000,
// base 850.000 (sin pie de factura).
func TestDerivarCampos_VentaTipica(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	f := &entity.Factura{
		Valor: decimal.NewFromInt(1_190_000),
	}
	reglas.DerivarCampos(f, hoy)

	assert.True(t, f.ValorNeto.Equal(decimal.NewFromInt(1_000_000)),
		"valor_neto esperado 1.000.000, obtenido %s", f.ValorNeto)
	assert.True(t, f.IVA.Equal(decimal.NewFromInt(190_000)),
		"iva esperado 190.000, obtenido %s", f.IVA)
	assert.True(t, f.BaseComision.Equal(decimal.NewFromInt(850_000)),
		"base_comision esperada 850.000, obtenida %s", f.BaseComision)
}

// El flete se excluye del neto: bruto 1.250.000 con flete 60.000 produce el
// mismo neto que la venta sin flete.
func TestDerivarCampos_FleteExcluido(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	f := &entity.Factura{
		Valor:      decimal.NewFromInt(1_250_000),
		ValorFlete: decimal.NewFromInt(60_000),
	}
	reglas.DerivarCampos(f, hoy)

	assert.True(t, f.ValorNeto.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, f.IVA.Equal(decimal.NewFromInt(190_000)))
}

// Con descuento a pie de factura la base es el neto completo, sin el 85%.
func TestDerivarCampos_PieDeFactura(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	f := &entity.Factura{
		Valor:               decimal.NewFromInt(1_190_000),
		DescuentoPieFactura: true,
	}
	reglas.DerivarCampos(f, hoy)

	assert.True(t, f.BaseComision.Equal(decimal.NewFromInt(1_000_000)),
		"con pie de factura la base es el neto, obtenida %s", f.BaseComision)
}

// Registro editado a mano: neto desactualizado que ya no cuadra con el bruto.
// La reparación recalcula neto e iva desde el bruto, con iva como residuo
// exacto para que valor = neto + iva + flete al centavo.
func TestDerivarCampos_ReparaInconsistencia(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	f := &entity.Factura{
		Valor:     decimal.NewFromInt(1_190_000),
		ValorNeto: decimal.NewFromInt(900_000),
		IVA:       decimal.NewFromInt(171_000),
	}
	reglas.DerivarCampos(f, hoy)

	assert.True(t, f.ValorNeto.Equal(decimal.NewFromInt(1_000_000)),
		"neto reparado desde el bruto, obtenido %s", f.ValorNeto)
	suma := f.ValorNeto.Add(f.IVA).Add(f.ValorFlete)
	assert.True(t, suma.Equal(f.Valor),
		"tras reparar, valor == neto + iva + flete exacto: %s != %s", suma, f.Valor)
}

// Una diferencia dentro de la tolerancia (1 peso) no dispara reparación.
func TestDerivarCampos_ToleranciaRespetada(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	f := &entity.Factura{
		Valor:     decimal.NewFromInt(1_190_001),
		ValorNeto: decimal.NewFromInt(1_000_000),
		IVA:       decimal.NewFromInt(190_000),
	}
	reglas.DerivarCampos(f, hoy)

	assert.True(t, f.ValorNeto.Equal(decimal.NewFromInt(1_000_000)),
		"diferencia de 1 peso no debe reparar, neto quedó %s", f.ValorNeto)
}

// IVA de respaldo: registro con neto pero bruto en cero (import parcial). El
// iva se estima como neto * 0.19.
func TestDerivarCampos_IVAFallback(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	// Tolerancia amplia para aislar el fallback de la reparación.
	reglas.ToleranciaConsistencia = decimal.NewFromInt(1_000_000)
	f := &entity.Factura{
		ValorNeto: decimal.NewFromInt(500_000),
	}
	reglas.DerivarCampos(f, hoy)

	assert.True(t, f.IVA.Equal(decimal.NewFromInt(95_000)),
		"iva de respaldo = neto * 0.19, obtenido %s", f.IVA)
}

// Idempotencia: derivar dos veces no cambia nada. Esta propiedad depende de
// que la reparación deje el iva como residuo exacto.
func TestDerivarCampos_Idempotente(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	f := &entity.Factura{
		Valor:      decimal.NewFromInt(1_234_567),
		ValorFlete: decimal.NewFromInt(45_000),
	}
	reglas.DerivarCampos(f, hoy)

	neto, iva, base := f.ValorNeto, f.IVA, f.BaseComision
	reglas.DerivarCampos(f, hoy)

	assert.True(t, f.ValorNeto.Equal(neto), "neto cambió en la segunda pasada")
	assert.True(t, f.IVA.Equal(iva), "iva cambió en la segunda pasada")
	assert.True(t, f.BaseComision.Equal(base), "base cambió en la segunda pasada")
}

// dias_vencimiento existe solo mientras la factura está sin pagar.
func TestDerivarCampos_DiasVencimiento(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	vence := hoy.AddDate(0, 0, 10)
	f := &entity.Factura{
		Valor:        decimal.NewFromInt(1_190_000),
		FechaPagoMax: vence,
	}
	reglas.DerivarCampos(f, hoy)

	require.NotNil(t, f.DiasVencimiento)
	assert.Equal(t, 10, *f.DiasVencimiento)

	// Pagada: el campo desaparece aunque tenga fecha máxima.
	f.Pagado = true
	reglas.DerivarCampos(f, hoy)
	assert.Nil(t, f.DiasVencimiento, "pagada no tiene días de vencimiento")
}

// Factura vencida: días negativos indican cuánto se pasó.
func TestDerivarCampos_DiasVencimientoNegativo(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	f := &entity.Factura{
		Valor:        decimal.NewFromInt(1_190_000),
		FechaPagoMax: hoy.AddDate(0, 0, -3),
	}
	reglas.DerivarCampos(f, hoy)

	require.NotNil(t, f.DiasVencimiento)
	assert.Equal(t, -3, *f.DiasVencimiento)
}
