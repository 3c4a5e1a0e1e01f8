package comision_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanMV14/comisiones-sub000/internal/domain/comision"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de porcentajes
// ──────────────────────────────────────────────────────────────────────────────

// La tabla 2x2 es el corazón del negocio: propio/externo contra con/sin
// descuento adicional. El descuento a pie de factura NO participa aquí.
func TestPorcentaje_Tabla2x2(t *testing.T) {
	casos := []struct {
		nombre        string
		propio        bool
		conDescuento  bool
		esperado      string
	}{
		{"propio sin descuento", true, false, "2.5"},
		{"propio con descuento", true, true, "1.5"},
		{"externo sin descuento", false, false, "1"},
		{"externo con descuento", false, true, "0.5"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			pct := comision.Porcentaje(c.propio, c.conDescuento)
			assert.True(t, pct.Equal(decimal.RequireFromString(c.esperado)),
				"porcentaje %s: esperado %s, obtenido %s", c.nombre, c.esperado, pct)
		})
	}
}

func TestBaseComision_SinPieDeFactura_Aplica85(t *testing.T) {
	neto := decimal.NewFromInt(1_000_000)
	base := comision.BaseComision(neto, false)
	assert.True(t, base.Equal(decimal.NewFromInt(850_000)),
		"sin pie de factura la base es neto * 0.85, obtenido %s", base)
}

func TestBaseComision_ConPieDeFactura_BaseEsNeto(t *testing.T) {
	neto := decimal.NewFromInt(1_000_000)
	base := comision.BaseComision(neto, true)
	assert.True(t, base.Equal(neto),
		"con descuento a pie de factura la base es el neto completo, obtenido %s", base)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventanas de pago
// ──────────────────────────────────────────────────────────────────────────────

func TestVentanasPago_SinCondicionEspecial(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	fecha := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	est, max := reglas.VentanasPago(fecha, false)
	assert.Equal(t, fecha.AddDate(0, 0, 35), est, "fecha estimada a 35 días")
	assert.Equal(t, fecha.AddDate(0, 0, 45), max, "fecha máxima a 45 días")
}

func TestVentanasPago_CondicionEspecial_AmbasA60(t *testing.T) {
	reglas := comision.ReglasPorDefecto()
	fecha := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	est, max := reglas.VentanasPago(fecha, true)
	assert.Equal(t, fecha.AddDate(0, 0, 60), est)
	assert.Equal(t, fecha.AddDate(0, 0, 60), max)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pérdida por pago tardío
// ──────────────────────────────────────────────────────────────────────────────

// El límite es estricto: 80 días conserva la comisión, 81 la pierde.
func TestPierdeComision_LimiteEstricto(t *testing.T) {
	reglas := comision.ReglasPorDefecto()

	assert.False(t, reglas.PierdeComision(80), "80 días exactos no pierde comisión")
	assert.True(t, reglas.PierdeComision(81), "81 días pierde comisión")
	assert.False(t, reglas.PierdeComision(0))
	assert.True(t, reglas.PierdeComision(200))
}

// ──────────────────────────────────────────────────────────────────────────────
// DiasEntre
// ──────────────────────────────────────────────────────────────────────────────

func TestDiasEntre_TruncaHoras(t *testing.T) {
	a := time.Date(2025, 1, 1, 23, 50, 0, 0, time.UTC)
	b := time.Date(2025, 1, 2, 0, 10, 0, 0, time.UTC)
	assert.Equal(t, 1, comision.DiasEntre(a, b),
		"la diferencia es de días calendario, no de periodos de 24h")
}

func TestDiasEntre_MismoDia(t *testing.T) {
	a := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, comision.DiasEntre(a, b))
}

func TestDiasEntre_Negativo(t *testing.T) {
	a := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, -5, comision.DiasEntre(a, b))
}

// ──────────────────────────────────────────────────────────────────────────────
// Calcular
// ──────────────────────────────────────────────────────────────────────────────

// Vector de referencia: venta de 1.190.000 con IVA, cliente propio sin
// descuentos → neto 1.000.000, base 850.000, comisión 21.250.
func TestCalcular_VectorReferencia(t *testing.T) {
	base := decimal.NewFromInt(850_000)
	res := comision.Calcular(base, true, false)

	require.True(t, res.Porcentaje.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, res.Comision.Equal(decimal.NewFromInt(21_250)),
		"comisión esperada 21.250, obtenida %s", res.Comision)
}

func TestCalcular_ExternoConDescuento(t *testing.T) {
	base := decimal.NewFromInt(850_000)
	res := comision.Calcular(base, false, true)

	require.True(t, res.Porcentaje.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, res.Comision.Equal(decimal.NewFromInt(4_250)),
		"comisión esperada 4.250, obtenida %s", res.Comision)
}

func TestCalcularConPorcentaje_BaseNegativaSeLlevaACero(t *testing.T) {
	res := comision.CalcularConPorcentaje(decimal.NewFromInt(-50_000), decimal.RequireFromString("2.5"))
	assert.True(t, res.Comision.IsZero(), "la comisión nunca es negativa")
	assert.True(t, res.BaseComision.IsZero())
}
